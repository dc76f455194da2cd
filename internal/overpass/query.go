// Package overpass builds Overpass QL queries for roadside services and
// executes them against an Overpass interpreter endpoint.
package overpass

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/randytsao24/gorest/internal/apperr"
	"github.com/randytsao24/gorest/internal/geo"
)

// ServerTimeoutSeconds is the [timeout:N] budget sent to the interpreter
const ServerTimeoutSeconds = 25

var elementKinds = []string{"node", "way", "relation"}

// SearchRequest is a center point and a radius in meters
type SearchRequest struct {
	Center       geo.Coordinate
	RadiusMeters float64
}

// Query is a ready to send Overpass QL program
type Query struct {
	Text         string
	Center       geo.Coordinate
	RadiusMeters float64
}

func (q Query) String() string {
	return q.Text
}

// BuildQuery assembles a query for every element tagged with one of the given
// categories within the radius. Values sharing a key are merged into one anchored
// regex filter; key groups keep the order in which they first appear.
func BuildQuery(req SearchRequest, categories []CategorySpec) (Query, error) {
	if !isFinite(req.Center.Lat) || !isFinite(req.Center.Lon) {
		return Query{}, apperr.Invalid("coordinate must be finite")
	}
	if !isFinite(req.RadiusMeters) || req.RadiusMeters <= 0 {
		return Query{}, apperr.Invalid("radius must be a positive number")
	}
	if len(categories) == 0 {
		return Query{}, apperr.Invalid("at least one category is required")
	}

	var keys []string
	values := make(map[string][]string)
	for _, c := range categories {
		if !validTagToken(c.Key) || !validTagToken(c.Value) {
			return Query{}, apperr.Invalid("invalid category %q", c.String())
		}
		if _, ok := values[c.Key]; !ok {
			keys = append(keys, c.Key)
		}
		if !slices.Contains(values[c.Key], c.Value) {
			values[c.Key] = append(values[c.Key], c.Value)
		}
	}

	around := "(around:" + formatFloat(req.RadiusMeters) + "," +
		strconv.FormatFloat(req.Center.Lat, 'f', 6, 64) + "," +
		strconv.FormatFloat(req.Center.Lon, 'f', 6, 64) + ");"

	var b strings.Builder
	b.WriteString("[out:json][timeout:" + strconv.Itoa(ServerTimeoutSeconds) + "];\n(\n")
	for _, key := range keys {
		filter := tagFilter(key, values[key])
		for _, kind := range elementKinds {
			b.WriteString("  " + kind + filter + around + "\n")
		}
	}
	b.WriteString(");\nout center;\n")

	return Query{
		Text:         b.String(),
		Center:       req.Center,
		RadiusMeters: req.RadiusMeters,
	}, nil
}

func tagFilter(key string, values []string) string {
	if len(values) == 1 {
		return `["` + key + `"="` + values[0] + `"]`
	}
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = strings.ReplaceAll(v, ".", `\\.`)
	}
	return `["` + key + `"~"^(` + strings.Join(escaped, "|") + `)$"]`
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
