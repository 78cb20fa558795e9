package vimeo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// TextTrack is one caption track advertised by the player for a video. The
// JSON field names follow the player config entries, so a resolved track can
// be returned to clients as-is and its Path handed straight to FetchTextTrack.
type TextTrack struct {
	ID       int64  `json:"id"`
	Kind     string `json:"kind"`
	Label    string `json:"label"`
	Language string `json:"lang"`
	Path     string `json:"url"`
}

// Resolver discovers caption tracks by loading a video's embed page in
// headless Chrome and reading the player config
type Resolver struct {
	timeout time.Duration
}

// NewResolver creates a new track resolver
func NewResolver(timeout time.Duration) *Resolver {
	return &Resolver{timeout: timeout}
}

// playerConfigExpr reads the track list out of the player config. Missing
// intermediate objects resolve to an empty list.
const playerConfigExpr = `JSON.stringify(((window.playerConfig || {}).request || {}).text_tracks || [])`

// ListTextTracks loads the embed page for the given video URL in headless
// Chrome and returns the caption tracks the player advertises
func (r *Resolver) ListTextTracks(ctx context.Context, videoURL string) ([]TextTrack, error) {
	playerURL, err := PlayerURL(videoURL)
	if err != nil {
		return nil, err
	}

	// Create Chrome context
	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, r.timeout)
	defer cancel()

	log.Printf("Resolving text tracks: %s", playerURL)

	err = chromedp.Run(ctx,
		chromedp.Navigate(playerURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(2*time.Second), // Wait for player config to load
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load player page: %v", err)
	}

	var raw string
	err = chromedp.Run(ctx,
		chromedp.Evaluate(playerConfigExpr, &raw, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read player config: %v", err)
	}

	var tracks []TextTrack
	if err := json.Unmarshal([]byte(raw), &tracks); err != nil {
		return nil, fmt.Errorf("failed to decode track list: %v", err)
	}

	log.Printf("Found %d text track(s) for %s", len(tracks), playerURL)
	return tracks, nil
}

// PlayerURL turns a Vimeo video URL (or bare video ID) into its embed page URL
func PlayerURL(videoURL string) (string, error) {
	id := extractVideoID(videoURL)
	if id == "" {
		return "", fmt.Errorf("no video ID found in %q", videoURL)
	}
	return fmt.Sprintf("https://player.vimeo.com/video/%s", id), nil
}

// extractVideoID extracts the numeric video ID from various Vimeo URL formats
func extractVideoID(url string) string {
	// Pattern 1: https://player.vimeo.com/video/{ID}
	re1 := regexp.MustCompile(`player\.vimeo\.com/video/(\d+)`)
	if matches := re1.FindStringSubmatch(url); len(matches) > 1 {
		return matches[1]
	}

	// Pattern 2: https://vimeo.com/{ID}
	re2 := regexp.MustCompile(`vimeo\.com/(\d+)`)
	if matches := re2.FindStringSubmatch(url); len(matches) > 1 {
		return matches[1]
	}

	// Pattern 3: Direct numeric ID
	re3 := regexp.MustCompile(`^(\d+)$`)
	if matches := re3.FindStringSubmatch(url); len(matches) > 1 {
		return matches[1]
	}

	return ""
}
