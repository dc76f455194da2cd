package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/randytsao24/gorest/internal/apperr"
	"github.com/randytsao24/gorest/internal/logger"
	"github.com/randytsao24/gorest/internal/metrics"
)

const (
	// DefaultEndpoint is the public Overpass interpreter
	DefaultEndpoint = "https://overpass-api.de/api/interpreter"
	// DefaultTimeout bounds a single interpreter call
	DefaultTimeout = 25 * time.Second

	maxBodyBytes  = 32 << 20
	maxErrorBytes = 512
)

// UserAgent is sent with every interpreter request
var UserAgent = "gorest/1.0 (+https://github.com/randytsao24/gorest)"

// Client executes queries against an Overpass interpreter
type Client struct {
	http     *http.Client
	endpoint string
	timeout  time.Duration
	logger   *slog.Logger
}

// NewClient creates a client for endpoint with the given per-call timeout.
// Zero values fall back to DefaultEndpoint and DefaultTimeout.
func NewClient(endpoint string, timeout time.Duration, l *slog.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if l == nil {
		l = slog.Default()
	}
	return &Client{
		http:     &http.Client{Timeout: timeout},
		endpoint: endpoint,
		timeout:  timeout,
		logger:   l,
	}
}

type interpreterResponse struct {
	Generator string             `json:"generator"`
	Remark    string             `json:"remark"`
	Elements  *[]json.RawMessage `json:"elements"`
}

// Fetch posts the query and returns the decoded elements. It never retries.
func (c *Client) Fetch(ctx context.Context, q Query) ([]Element, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	form := url.Values{}
	form.Set("data", q.Text)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %w", apperr.ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	start := time.Now()
	metrics.OverpassRequestsTotal.Inc()
	c.logger.Debug("overpass_request", "endpoint", c.endpoint, "radius_meters", q.RadiusMeters,
		"lat", q.Center.Lat, "lon", q.Center.Lon)

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.OverpassFailTotal.WithLabelValues("unavailable").Inc()
		c.logger.Warn("overpass_unavailable", logger.Err(err))
		return nil, fmt.Errorf("%w: %w", apperr.ErrUpstreamUnavailable, err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.logger.Debug("overpass_body_close_error", logger.Err(err))
		}
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
		metrics.OverpassFailTotal.WithLabelValues("status").Inc()
		c.logger.Warn("overpass_status_error", "status", resp.StatusCode)
		return nil, &apperr.UpstreamStatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		metrics.OverpassFailTotal.WithLabelValues("unavailable").Inc()
		return nil, fmt.Errorf("%w: reading response: %w", apperr.ErrUpstreamUnavailable, err)
	}

	var parsed interpreterResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		metrics.OverpassFailTotal.WithLabelValues("malformed").Inc()
		c.logger.Error("overpass_contract_violation", "reason", "undecodable body", logger.Err(err))
		return nil, fmt.Errorf("%w: decoding response: %w", apperr.ErrUpstreamMalformedResponse, err)
	}
	if parsed.Elements == nil {
		metrics.OverpassFailTotal.WithLabelValues("malformed").Inc()
		c.logger.Error("overpass_contract_violation", "reason", "missing elements")
		return nil, fmt.Errorf("%w: response has no elements field", apperr.ErrUpstreamMalformedResponse)
	}
	if parsed.Remark != "" {
		c.logger.Warn("overpass_remark", "remark", parsed.Remark)
	}

	elements := make([]Element, 0, len(*parsed.Elements))
	for i, raw := range *parsed.Elements {
		var el Element
		if err := json.Unmarshal(raw, &el); err != nil {
			metrics.SkippedElementsTotal.Inc()
			c.logger.Debug("overpass_element_skipped", "index", i, logger.Err(err))
			continue
		}
		elements = append(elements, el)
	}

	dur := time.Since(start).Milliseconds()
	metrics.OverpassDurationMs.Observe(float64(dur))
	metrics.OverpassElementsTotal.Add(float64(len(elements)))
	c.logger.Debug("overpass_response", "elements", len(elements), "duration_ms", dur)

	return elements, nil
}
