package vimeo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client downloads caption tracks from the Vimeo player CDN
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	referer    string
	maxBytes   int64
}

// StatusError reports a non-OK response from the player CDN. Handlers use the
// code to distinguish an inaccessible track from a transport failure.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("track request returned status %d", e.Code)
}

// NewClient creates a new player CDN client
func NewClient(baseURL, userAgent, referer string, timeout time.Duration, maxBytes int64) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		userAgent:  userAgent,
		referer:    referer,
		maxBytes:   maxBytes,
	}
}

// FetchTextTrack downloads one caption track by its player-relative path,
// for example "/texttrack/227834924.vtt?token=...". A missing leading slash
// is added.
func (c *Client) FetchTextTrack(ctx context.Context, trackPath string) ([]byte, error) {
	if !strings.HasPrefix(trackPath, "/") {
		trackPath = "/" + trackPath
	}

	url := c.baseURL + trackPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build track request: %v", err)
	}

	// The player CDN rejects requests without a browser user agent and a
	// vimeo.com referer
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Referer", c.referer)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch track: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read track body: %v", err)
	}
	if int64(len(payload)) > c.maxBytes {
		return nil, fmt.Errorf("track larger than %d byte limit", c.maxBytes)
	}

	return payload, nil
}
