package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/codebuildervaibhav/vimeo-transcript/internal/captions"
	"github.com/codebuildervaibhav/vimeo-transcript/internal/storage"
	"github.com/codebuildervaibhav/vimeo-transcript/internal/vimeo"
)

const sampleTrack = "WEBVTT\n\n1\n00:00:01.000 --> 00:00:04.000\nUh, hello world.\n\n2\n00:00:05.000 --> 00:00:08.000\num this is, hmm a test\n"

const cleanedSample = "hello world. this is, a test"

// testEnv wires the transcript pipeline against a stub CDN
type testEnv struct {
	app      *fiber.App
	registry *storage.Registry
	cdn      *httptest.Server
	requests *int
}

func newTestEnv(t *testing.T, trackBody string, trackStatus int) *testEnv {
	requests := 0
	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if trackStatus != http.StatusOK {
			w.WriteHeader(trackStatus)
			return
		}
		w.Write([]byte(trackBody))
	}))

	registry, err := storage.NewRegistry()
	if err != nil {
		cdn.Close()
		t.Fatalf("NewRegistry() error = %v", err)
	}

	client := vimeo.NewClient(cdn.URL, "Mozilla/5.0", "https://vimeo.com/", 5*time.Second, 1<<20)
	normalizer := captions.NewNormalizer(nil)

	app := fiber.New()
	app.Post("/transcript", NewTranscriptHandler(client, normalizer, registry).Handle)
	app.Get("/transcripts/:id/export/:format", NewExportHandler(registry).Handle)

	return &testEnv{app: app, registry: registry, cdn: cdn, requests: &requests}
}

func (e *testEnv) close() {
	e.cdn.Close()
	e.registry.Close()
}

func postTranscript(t *testing.T, app *fiber.App, body string) (*http.Response, map[string]any) {
	req := httptest.NewRequest("POST", "/transcript", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp, decoded
}

func TestTranscriptPipeline(t *testing.T) {
	env := newTestEnv(t, sampleTrack, http.StatusOK)
	defer env.close()

	resp, body := postTranscript(t, env.app, `{"path":"/texttrack/227834924.vtt?token=abc","name":"demo"}`)
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200 (body: %v)", resp.StatusCode, body)
	}

	if got := body["status"]; got != "ready" {
		t.Errorf("status = %v, want ready", got)
	}
	if got := body["text"]; got != cleanedSample {
		t.Errorf("text = %q, want %q", got, cleanedSample)
	}
	if got := body["word_count"]; got != float64(6) {
		t.Errorf("word_count = %v, want 6", got)
	}

	formats, _ := body["formats"].([]any)
	if len(formats) != 3 {
		t.Errorf("formats = %v, want 3 entries", formats)
	}

	if *env.requests != 1 {
		t.Errorf("track fetched %d times, want exactly 1", *env.requests)
	}

	id, _ := body["transcript_id"].(string)
	saved, err := env.registry.Get(id)
	if err != nil {
		t.Fatalf("Get(%q) error = %v", id, err)
	}
	if saved == nil {
		t.Fatalf("transcript %q not registered", id)
	}
	if saved.Text != cleanedSample {
		t.Errorf("registered text = %q, want %q", saved.Text, cleanedSample)
	}
	if saved.Name != "demo" {
		t.Errorf("registered name = %q, want %q", saved.Name, "demo")
	}
	if saved.TrackPath != "/texttrack/227834924.vtt?token=abc" {
		t.Errorf("registered track path = %q", saved.TrackPath)
	}
}

func TestTranscriptDefaultName(t *testing.T) {
	env := newTestEnv(t, sampleTrack, http.StatusOK)
	defer env.close()

	_, body := postTranscript(t, env.app, `{"path":"/texttrack/1.vtt"}`)
	if got := body["name"]; got != "subtitles" {
		t.Errorf("name = %v, want subtitles", got)
	}
}

func TestTranscriptMissingPath(t *testing.T) {
	env := newTestEnv(t, sampleTrack, http.StatusOK)
	defer env.close()

	resp, body := postTranscript(t, env.app, `{}`)
	if resp.StatusCode != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if got := body["code"]; got != "ERR_NO_PATH" {
		t.Errorf("code = %v, want ERR_NO_PATH", got)
	}
	if *env.requests != 0 {
		t.Errorf("CDN hit %d times for a rejected request", *env.requests)
	}
}

func TestTranscriptInvalidBody(t *testing.T) {
	env := newTestEnv(t, sampleTrack, http.StatusOK)
	defer env.close()

	resp, body := postTranscript(t, env.app, `{not json`)
	if resp.StatusCode != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if got := body["code"]; got != "ERR_INVALID_BODY" {
		t.Errorf("code = %v, want ERR_INVALID_BODY", got)
	}
}

func TestTranscriptTrackNotAccessible(t *testing.T) {
	env := newTestEnv(t, "", http.StatusForbidden)
	defer env.close()

	resp, body := postTranscript(t, env.app, `{"path":"/texttrack/1.vtt"}`)
	if resp.StatusCode != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if got := body["code"]; got != "ERR_TRACK_NOT_ACCESSIBLE" {
		t.Errorf("code = %v, want ERR_TRACK_NOT_ACCESSIBLE", got)
	}
	if got := body["error"]; got != "Failed to download file. Status code: 403" {
		t.Errorf("error = %q, want the status message", got)
	}
}

func TestTranscriptEmptyAfterCleaning(t *testing.T) {
	env := newTestEnv(t, "WEBVTT\n\n1\n00:00:01.000 --> 00:00:02.000\nuh um hmm\n", http.StatusOK)
	defer env.close()

	resp, body := postTranscript(t, env.app, `{"path":"/texttrack/1.vtt"}`)
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if got := body["status"]; got != "empty" {
		t.Errorf("status = %v, want empty", got)
	}

	formats, _ := body["formats"].([]any)
	if len(formats) != 0 {
		t.Errorf("formats = %v, want none for an empty transcript", formats)
	}

	count, err := env.registry.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("registry holds %d transcripts, want 0 after an empty result", count)
	}
}
