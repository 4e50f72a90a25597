// Package vega talks to the Vega AI suggestion backend, an external HTTP
// service. The API degrades to the scripted assistant when it is absent.
package vega

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the interface consumed by the remote assistant provider.
type Client interface {
	Suggest(ctx context.Context, req SuggestRequest) (*SuggestResponse, error)
	Health(ctx context.Context) error
}

// HTTPClient implements Client over HTTP.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// SuggestRequest mirrors the Vega backend's request schema.
type SuggestRequest struct {
	TripID          string   `json:"trip_id"`
	City            string   `json:"city"`
	Country         string   `json:"country"`
	Day             int      `json:"day"`
	TimeSlot        string   `json:"time_slot"`
	TotalBudget     float64  `json:"total_budget"`
	RemainingBudget float64  `json:"remaining_budget"`
	Preferences     []string `json:"preferences"`
	Adults          int      `json:"adults"`
	Children        int      `json:"children"`
}

// Suggestion is a single assistant suggestion.
type Suggestion struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Reason      string  `json:"reason"`
	PriceAdult  float64 `json:"estimated_price_adult"`
	PriceChild  float64 `json:"estimated_price_child"`
	Currency    string  `json:"currency"`
}

// SuggestResponse is the Vega backend's reply.
type SuggestResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}

// NewHTTPClient creates a Vega API client.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Suggest calls POST /api/ai/vega/suggest.
func (c *HTTPClient) Suggest(ctx context.Context, req SuggestRequest) (*SuggestResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal suggest request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/ai/vega/suggest", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build suggest request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("vega request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("vega returned status %d: %s", resp.StatusCode, string(payload))
	}

	var out SuggestResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode vega response: %w", err)
	}

	return &out, nil
}

// Health calls GET /health.
func (c *HTTPClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("vega health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("vega health returned status %d", resp.StatusCode)
	}
	return nil
}
