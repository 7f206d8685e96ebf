// Package pandascore is the remote data source: it fetches esports match lists
// from the PandaScore REST API and maps them into domain matches.
package pandascore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rshade/esmatch/internal/logging"
	"github.com/rshade/esmatch/internal/match"
)

// Config controls how the client reaches the upstream API.
type Config struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client performs authenticated GET requests against the API.
type Client struct {
	baseURL    string
	token      string
	httpClient httpDoer
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		token:      cfg.Token,
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
	}
}

// Fetch GETs path and returns the raw body. The body must be a JSON array of
// matches; it is returned byte-for-byte so snapshots keep the upstream shape.
func (c *Client) Fetch(ctx context.Context, path string) (json.RawMessage, error) {
	log := logging.FromContext(ctx)
	path = normalizePath(path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	log.Debug().Ctx(ctx).
		Str("component", providerName).
		Str("operation", "fetch").
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api response")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Body:       strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Path: path, Err: err}
	}
	if _, err := decode(body); err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// DecodeMatches maps a raw /matches/* payload into domain matches, preserving order.
func DecodeMatches(raw json.RawMessage) ([]match.Match, error) {
	wire, err := decode(raw)
	if err != nil {
		return nil, err
	}
	out := make([]match.Match, 0, len(wire))
	for _, m := range wire {
		out = append(out, mapMatch(m))
	}
	return out, nil
}

func decode(raw []byte) ([]matchResponse, error) {
	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, "[") {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformedPayload)
	}
	var wire []matchResponse
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return wire, nil
}
