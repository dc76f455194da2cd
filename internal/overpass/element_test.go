package overpass

import (
	"encoding/json"
	"testing"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
		ok   bool
	}{
		{"number", `40.7128`, 40.7128, true},
		{"negative", `-74.006`, -74.006, true},
		{"numeric string", `"52.5"`, 52.5, true},
		{"absent", ``, 0, false},
		{"null", `null`, 0, false},
		{"text", `"north"`, 0, false},
		{"bool", `true`, 0, false},
		{"object", `{"lat":1}`, 0, false},
		{"overflow", `1e400`, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseNumber(json.RawMessage(tc.raw))
			if ok != tc.ok {
				t.Fatalf("ParseNumber(%s) ok = %t, want %t", tc.raw, ok, tc.ok)
			}
			if ok && got != tc.want {
				t.Errorf("ParseNumber(%s) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestElement_Tag(t *testing.T) {
	var el Element
	if el.Tag("name") != "" {
		t.Error("expected empty tag on element without tags")
	}
	if err := json.Unmarshal([]byte(`{"type":"node","id":1,"tags":{"name":"Shell"}}`), &el); err != nil {
		t.Fatalf("failed to decode element: %s", err)
	}
	if el.Tag("name") != "Shell" {
		t.Errorf("Tag(name) = %q, want Shell", el.Tag("name"))
	}
}
