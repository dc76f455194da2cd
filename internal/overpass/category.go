package overpass

import (
	"fmt"
	"strings"
)

// CategorySpec selects elements whose tag Key equals Value
type CategorySpec struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (c CategorySpec) String() string {
	return c.Key + "=" + c.Value
}

// DefaultCategories are the roadside services searched when none are configured
var DefaultCategories = []CategorySpec{
	{Key: "amenity", Value: "fuel"},
	{Key: "amenity", Value: "restaurant"},
	{Key: "amenity", Value: "hospital"},
	{Key: "tourism", Value: "hotel"},
	{Key: "shop", Value: "car_repair"},
	{Key: "amenity", Value: "pharmacy"},
	{Key: "amenity", Value: "bank"},
	{Key: "amenity", Value: "atm"},
}

// ParseCategories parses a comma separated list of key=value pairs,
// e.g. "amenity=fuel,tourism=hotel". Duplicates are dropped.
func ParseCategories(s string) ([]CategorySpec, error) {
	var specs []CategorySpec
	seen := make(map[CategorySpec]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if !ok || !validTagToken(key) || !validTagToken(value) {
			return nil, fmt.Errorf("invalid category %q, want key=value", part)
		}
		spec := CategorySpec{Key: key, Value: value}
		if seen[spec] {
			continue
		}
		seen[spec] = true
		specs = append(specs, spec)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("no categories in %q", s)
	}
	return specs, nil
}

// validTagToken accepts OSM-style tag keys and values. Anything that could
// break out of a quoted Overpass string or regex is rejected.
func validTagToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == '-', r == ':', r == '.':
		default:
			return false
		}
	}
	return true
}
