package nearby

import (
	"github.com/randytsao24/gorest/internal/geo"
	"github.com/randytsao24/gorest/internal/models"
	"github.com/randytsao24/gorest/internal/overpass"
)

const (
	// UnnamedPlaceholder is the name given to elements without a name tag
	UnnamedPlaceholder = "Unnamed"
	// UnknownCategory is the category of elements carrying none of the priority tags
	UnknownCategory = "unknown"
)

// CategoryTagPriority is the order in which tag families decide an element's
// category. The first family with a non-empty value wins, so an element tagged
// both amenity=restaurant and tourism=hotel is a restaurant.
var CategoryTagPriority = []string{"amenity", "tourism", "shop"}

// Normalize maps a raw element to a POI measured from center. It reports false
// when the element has no usable coordinate.
func Normalize(el overpass.Element, center geo.Coordinate) (models.POI, bool) {
	coord, ok := elementCoordinate(el)
	if !ok {
		return models.POI{}, false
	}

	name := el.Tag("name")
	if name == "" {
		name = UnnamedPlaceholder
	}

	return models.POI{
		ID:         el.ID,
		Type:       el.Type,
		Name:       name,
		Category:   Category(el),
		Lat:        coord.Lat,
		Lon:        coord.Lon,
		DistanceKm: geo.RoundKm(geo.Distance(center, coord)),
	}, true
}

// Category applies CategoryTagPriority to the element's tags
func Category(el overpass.Element) string {
	for _, key := range CategoryTagPriority {
		if v := el.Tag(key); v != "" {
			return v
		}
	}
	return UnknownCategory
}

// elementCoordinate prefers the element's own lat/lon and falls back to the
// center Overpass computes for ways and relations
func elementCoordinate(el overpass.Element) (geo.Coordinate, bool) {
	if c, ok := parseCoordinate(el.Lat, el.Lon); ok {
		return c, true
	}
	if el.Center != nil {
		return parseCoordinate(el.Center.Lat, el.Center.Lon)
	}
	return geo.Coordinate{}, false
}

func parseCoordinate(rawLat, rawLon []byte) (geo.Coordinate, bool) {
	lat, ok := overpass.ParseNumber(rawLat)
	if !ok {
		return geo.Coordinate{}, false
	}
	lon, ok := overpass.ParseNumber(rawLon)
	if !ok {
		return geo.Coordinate{}, false
	}
	c := geo.Coordinate{Lat: lat, Lon: lon}
	if !c.Valid() {
		return geo.Coordinate{}, false
	}
	return c, true
}
