package aseag

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultBaseURL is the public ASEAG mobility broker.
	DefaultBaseURL = "https://mova.aseag.de"
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 10 * time.Second

	areaInformationPath = "/mbroker/rest/areainformation/"
	userAgent           = "aseag-nextbus/1.0 (+https://github.com/theoremus-urban-solutions/aseag-nextbus)"
)

// Client is a simple HTTP client for the area information endpoint.
// It performs exactly one request per Fetch and never retries.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another broker, e.g. an httptest server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a new ASEAG client
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AreaURL returns the endpoint for a stop area.
func (c *Client) AreaURL(stopID string) string {
	return c.baseURL + areaInformationPath + url.PathEscape(stopID)
}

// Fetch loads the current predictions for stopID.
// A payload with an unexpected shape yields an empty slice and no error.
func (c *Client) Fetch(ctx context.Context, stopID string) ([]RawPrediction, error) {
	reqURL := c.AreaURL(stopID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindTransport, StopID: stopID, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: KindTransport, StopID: stopID, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			Kind:       KindTransport,
			StopID:     stopID,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status code: %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Kind: KindTransport, StopID: stopID, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	predictions, dropped, err := ParseAreaInformation(body)
	if err != nil {
		return nil, &FetchError{Kind: KindMalformedPayload, StopID: stopID, Err: err}
	}
	if dropped > 0 {
		log.Debug().Str("stop", stopID).Int("dropped", dropped).Msg("Skipped unreadable departure entries")
	}

	return predictions, nil
}

// ParseAreaInformation unwraps an area information body.
// It fails only when body is not JSON. Entries that cannot be read are
// skipped and counted in dropped.
func ParseAreaInformation(body []byte) (predictions []RawPrediction, dropped int, err error) {
	if !json.Valid(body) {
		return nil, 0, fmt.Errorf("failed to decode area information JSON: invalid JSON (%d bytes)", len(body))
	}

	predictions = []RawPrediction{}

	var area areaInformation
	if err := json.Unmarshal(body, &area); err != nil || isNull(area.Departures) {
		return predictions, 0, nil
	}

	var list departureList
	if err := json.Unmarshal(area.Departures, &list); err != nil || isNull(list.Departures) {
		return predictions, 0, nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(list.Departures, &entries); err != nil {
		return predictions, 0, nil
	}

	for _, raw := range entries {
		var entry departureEntry
		if err := json.Unmarshal(raw, &entry); err != nil || isNull(entry.StopPrediction) {
			dropped++
			continue
		}
		var p RawPrediction
		if err := json.Unmarshal(entry.StopPrediction, &p); err != nil {
			dropped++
			continue
		}
		predictions = append(predictions, p)
	}

	return predictions, dropped, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
