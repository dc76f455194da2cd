package trips

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/randytsao24/gorest/internal/models"
)

func TestInput(t *testing.T) {
	t.Run("complete payload converts to a trip", func(t *testing.T) {
		var in Input
		payload := `{"start":"New York","destination":"Boston","vehicle":"car","distance":346.5,"duration":4.2,"stops":2}`
		if err := json.Unmarshal([]byte(payload), &in); err != nil {
			t.Fatalf("failed to decode payload: %s", err)
		}
		if missing := in.Missing(); len(missing) != 0 {
			t.Fatalf("expected no missing fields, got %v", missing)
		}
		trip, err := in.Trip()
		if err != nil {
			t.Fatalf("Trip failed: %s", err)
		}
		want := models.Trip{Start: "New York", Destination: "Boston", Vehicle: "car", Distance: 346.5, Duration: 4.2, Stops: 2}
		if diff := cmp.Diff(want, trip); diff != "" {
			t.Errorf("unexpected trip (-want +got):\n%s", diff)
		}
	})
	t.Run("zero values count as present", func(t *testing.T) {
		var in Input
		payload := `{"start":"","destination":"","vehicle":"","distance":0,"duration":0,"stops":0}`
		if err := json.Unmarshal([]byte(payload), &in); err != nil {
			t.Fatalf("failed to decode payload: %s", err)
		}
		if missing := in.Missing(); len(missing) != 0 {
			t.Errorf("expected no missing fields, got %v", missing)
		}
	})
	t.Run("missing fields are listed in order", func(t *testing.T) {
		var in Input
		if err := json.Unmarshal([]byte(`{"vehicle":"car"}`), &in); err != nil {
			t.Fatalf("failed to decode payload: %s", err)
		}
		want := []string{"start", "destination", "distance", "duration", "stops"}
		if diff := cmp.Diff(want, in.Missing()); diff != "" {
			t.Errorf("missing fields (-want +got):\n%s", diff)
		}
		if _, err := in.Trip(); !errors.Is(err, ErrInvalidTrip) {
			t.Errorf("expected ErrInvalidTrip, got %v", err)
		}
	})
}
