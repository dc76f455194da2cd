package overpass

import (
	"encoding/json"
	"strconv"
)

// Element is a raw Overpass record. Coordinates stay undecoded so a bad value
// disqualifies only the element carrying it.
type Element struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    json.RawMessage   `json:"lat,omitempty"`
	Lon    json.RawMessage   `json:"lon,omitempty"`
	Center *Center           `json:"center,omitempty"`
	Tags   map[string]string `json:"tags,omitempty"`
}

// Center is the computed centroid Overpass returns for ways and relations
// when queried with "out center"
type Center struct {
	Lat json.RawMessage `json:"lat"`
	Lon json.RawMessage `json:"lon"`
}

// Tag returns the tag value for key, or "" when absent
func (e Element) Tag(key string) string {
	if e.Tags == nil {
		return ""
	}
	return e.Tags[key]
}

// ParseNumber decodes a JSON number, or a string holding one. Null, absent
// and anything else report false.
func ParseNumber(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	if n == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
