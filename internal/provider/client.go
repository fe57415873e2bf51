// Package provider talks to the upstream content provider the catalog can
// be synced from. The provider is reached via a base URL and a bearer
// token; calls go through a circuit breaker so a slow or failing upstream
// cannot pile up requests.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

// Video is a video as returned by the provider.
type Video struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Mood        string   `json:"mood"`
	CreatorID   string   `json:"creator_id"`
}

// listResponse is the enveloped form of the provider listing. The provider
// may also return a bare array.
type listResponse struct {
	Items []Video `json:"items"`
}

// Client is the content provider API client.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker[[]Video]
}

// NewClient creates a new provider client, or nil when no base URL is
// configured.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		return nil
	}

	cb := gobreaker.NewCircuitBreaker[[]Video](gobreaker.Settings{
		Name:        "content-provider",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Info("provider circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
		cb:      cb,
	}
}

// FetchVideos retrieves the provider's video listing.
func (c *Client) FetchVideos(ctx context.Context) ([]Video, error) {
	return c.cb.Execute(func() ([]Video, error) {
		return c.fetchVideos(ctx)
	})
}

func (c *Client) fetchVideos(ctx context.Context) ([]Video, error) {
	url := c.baseURL + "/videos"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("provider returned %d: %s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read provider response: %w", err)
	}

	// The provider returns either a bare array or {"items": [...]}.
	var videos []Video
	if err := json.Unmarshal(data, &videos); err == nil {
		return videos, nil
	}
	var wrapped listResponse
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("decode provider response: %w", err)
	}
	return wrapped.Items, nil
}
