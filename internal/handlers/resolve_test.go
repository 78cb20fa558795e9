package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/codebuildervaibhav/vimeo-transcript/internal/vimeo"
)

func postResolve(t *testing.T, body string) (int, map[string]any) {
	app := fiber.New()
	app.Post("/resolve", NewResolveHandler(vimeo.NewResolver(5*time.Second)).Handle)

	req := httptest.NewRequest("POST", "/resolve", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.StatusCode, decoded
}

func TestResolveMissingURL(t *testing.T) {
	status, body := postResolve(t, `{}`)
	if status != 400 {
		t.Fatalf("status = %d, want 400", status)
	}
	if got := body["code"]; got != "ERR_NO_URL" {
		t.Errorf("code = %v, want ERR_NO_URL", got)
	}
}

func TestResolveInvalidURL(t *testing.T) {
	status, body := postResolve(t, `{"url":"https://example.com/watch?v=abc"}`)
	if status != 400 {
		t.Fatalf("status = %d, want 400", status)
	}
	if got := body["code"]; got != "ERR_INVALID_URL" {
		t.Errorf("code = %v, want ERR_INVALID_URL", got)
	}
}
