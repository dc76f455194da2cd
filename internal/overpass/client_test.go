package overpass

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/randytsao24/gorest/internal/apperr"
	"github.com/randytsao24/gorest/internal/logger"
)

const mixedFile = "testdata/interpreter_mixed.json"

func testLogger() *slog.Logger {
	return logger.New(slog.LevelDebug, "text", io.Discard)
}

func testQuery(t *testing.T) Query {
	t.Helper()
	q, err := BuildQuery(SearchRequest{Center: newYork, RadiusMeters: 2500}, DefaultCategories)
	if err != nil {
		t.Fatalf("failed to build query: %s", err)
	}
	return q
}

func newInterpreter(t *testing.T, fn http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(fn)
	t.Cleanup(srv.Close)
	return srv
}

func TestNewClient(t *testing.T) {
	c := NewClient("", 0, nil)
	if c.endpoint != DefaultEndpoint {
		t.Errorf("endpoint = %q, want %q", c.endpoint, DefaultEndpoint)
	}
	if c.timeout != DefaultTimeout {
		t.Errorf("timeout = %s, want %s", c.timeout, DefaultTimeout)
	}
}

func TestClient_Fetch(t *testing.T) {
	t.Run("posts the query as form data and decodes elements", func(t *testing.T) {
		var gotQuery, gotContentType, gotMethod string
		srv := newInterpreter(t, func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotContentType = r.Header.Get("Content-Type")
			body, _ := io.ReadAll(r.Body)
			form, _ := url.ParseQuery(string(body))
			gotQuery = form.Get("data")

			data, err := os.ReadFile(mixedFile)
			if err != nil {
				t.Errorf("failed to read fixture: %s", err)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(data)
		})

		q := testQuery(t)
		elements, err := NewClient(srv.URL, time.Second, testLogger()).Fetch(t.Context(), q)
		if err != nil {
			t.Fatalf("Fetch failed: %s", err)
		}
		if gotMethod != http.MethodPost {
			t.Errorf("method = %s, want POST", gotMethod)
		}
		if gotContentType != "application/x-www-form-urlencoded" {
			t.Errorf("content type = %q", gotContentType)
		}
		if gotQuery != q.Text {
			t.Errorf("interpreter received a different query:\n got: %q\nwant: %q", gotQuery, q.Text)
		}
		// the fixture holds one non-object entry which is skipped
		if len(elements) != 3 {
			t.Fatalf("expected 3 elements, got %d", len(elements))
		}
		if elements[0].ID != 1001 || elements[0].Tag("amenity") != "fuel" {
			t.Errorf("unexpected first element: %+v", elements[0])
		}
		if elements[1].Center == nil {
			t.Error("expected way element to carry a center")
		}
		if elements[2].Lat != nil {
			t.Errorf("expected element without lat, got %s", elements[2].Lat)
		}
	})
	t.Run("empty elements is a valid result", func(t *testing.T) {
		srv := newInterpreter(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"version":0.6,"elements":[]}`)
		})
		elements, err := NewClient(srv.URL, time.Second, testLogger()).Fetch(t.Context(), testQuery(t))
		if err != nil {
			t.Fatalf("Fetch failed: %s", err)
		}
		if len(elements) != 0 {
			t.Errorf("expected no elements, got %d", len(elements))
		}
	})
	t.Run("non-success status yields an upstream error", func(t *testing.T) {
		srv := newInterpreter(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "dispatcher overloaded", http.StatusInternalServerError)
		})
		_, err := NewClient(srv.URL, time.Second, testLogger()).Fetch(t.Context(), testQuery(t))
		if !errors.Is(err, apperr.ErrUpstreamError) {
			t.Fatalf("expected ErrUpstreamError, got %v", err)
		}
		var statusErr *apperr.UpstreamStatusError
		if !errors.As(err, &statusErr) {
			t.Fatal("expected an UpstreamStatusError")
		}
		if statusErr.StatusCode != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", statusErr.StatusCode)
		}
		if !strings.Contains(statusErr.Body, "dispatcher overloaded") {
			t.Errorf("expected body snippet in error, got %q", statusErr.Body)
		}
	})
	t.Run("unparsable body yields a malformed response error", func(t *testing.T) {
		bodies := map[string]string{
			"html":              "<html><body>runtime error</body></html>",
			"truncated json":    `{"elements":[{"type":"node"`,
			"missing elements":  `{"version":0.6}`,
			"elements not list": `{"elements":"nope"}`,
		}
		for name, body := range bodies {
			t.Run(name, func(t *testing.T) {
				srv := newInterpreter(t, func(w http.ResponseWriter, r *http.Request) {
					_, _ = io.WriteString(w, body)
				})
				_, err := NewClient(srv.URL, time.Second, testLogger()).Fetch(t.Context(), testQuery(t))
				if !errors.Is(err, apperr.ErrUpstreamMalformedResponse) {
					t.Errorf("expected ErrUpstreamMalformedResponse, got %v", err)
				}
			})
		}
	})
	t.Run("connection refused yields unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		endpoint := srv.URL
		srv.Close()

		_, err := NewClient(endpoint, time.Second, testLogger()).Fetch(t.Context(), testQuery(t))
		if !errors.Is(err, apperr.ErrUpstreamUnavailable) {
			t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
		}
	})
	t.Run("timeout yields unavailable", func(t *testing.T) {
		srv := newInterpreter(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		})
		_, err := NewClient(srv.URL, 50*time.Millisecond, testLogger()).Fetch(t.Context(), testQuery(t))
		if !errors.Is(err, apperr.ErrUpstreamUnavailable) {
			t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
		}
	})
	t.Run("caller cancellation abandons the call", func(t *testing.T) {
		srv := newInterpreter(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		})
		ctx, cancel := context.WithCancel(t.Context())
		time.AfterFunc(20*time.Millisecond, cancel)

		_, err := NewClient(srv.URL, 5*time.Second, testLogger()).Fetch(ctx, testQuery(t))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if !errors.Is(err, apperr.ErrUpstreamUnavailable) {
			t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
		}
	})
	t.Run("user agent is sent", func(t *testing.T) {
		var ua string
		srv := newInterpreter(t, func(w http.ResponseWriter, r *http.Request) {
			ua = r.Header.Get("User-Agent")
			_, _ = io.WriteString(w, `{"elements":[]}`)
		})
		if _, err := NewClient(srv.URL, time.Second, testLogger()).Fetch(t.Context(), testQuery(t)); err != nil {
			t.Fatalf("Fetch failed: %s", err)
		}
		if ua != UserAgent {
			t.Errorf("User-Agent = %q, want %q", ua, UserAgent)
		}
	})
}
