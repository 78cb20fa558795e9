package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/codebuildervaibhav/vimeo-transcript/internal/captions"
	"github.com/codebuildervaibhav/vimeo-transcript/internal/export"
	"github.com/codebuildervaibhav/vimeo-transcript/internal/storage"
	"github.com/codebuildervaibhav/vimeo-transcript/internal/types"
	"github.com/codebuildervaibhav/vimeo-transcript/internal/vimeo"
)

// TranscriptHandler turns a caption track path into a cleaned transcript
type TranscriptHandler struct {
	client     *vimeo.Client
	normalizer *captions.Normalizer
	registry   *storage.Registry
}

// NewTranscriptHandler creates a new transcript handler
func NewTranscriptHandler(client *vimeo.Client, normalizer *captions.Normalizer, registry *storage.Registry) *TranscriptHandler {
	return &TranscriptHandler{
		client:     client,
		normalizer: normalizer,
		registry:   registry,
	}
}

// TranscriptRequest represents the request body
type TranscriptRequest struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// Handle processes transcript requests
func (h *TranscriptHandler) Handle(c *fiber.Ctx) error {
	var req TranscriptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Invalid request body",
			"code":  "ERR_INVALID_BODY",
		})
	}

	if req.Path == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": "Subtitles path is required",
			"code":  "ERR_NO_PATH",
		})
	}

	// Default name if not provided
	if req.Name == "" {
		req.Name = "subtitles"
	}

	transcriptID := uuid.New().String()

	log.Printf("Fetching track for transcript %s: %s", transcriptID, req.Path)

	// Fetch the track once; everything downstream works on this payload
	payload, err := h.client.FetchTextTrack(c.Context(), req.Path)
	if err != nil {
		var statusErr *vimeo.StatusError
		if errors.As(err, &statusErr) {
			return c.Status(400).JSON(fiber.Map{
				"error": fmt.Sprintf("Failed to download file. Status code: %d", statusErr.Code),
				"code":  "ERR_TRACK_NOT_ACCESSIBLE",
			})
		}
		log.Printf("Failed to fetch track: %v", err)
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to fetch caption track",
			"code":  "ERR_FETCH_FAILED",
		})
	}

	spoken, err := captions.Parse(payload)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Caption track is not valid text",
			"code":  "ERR_INVALID_PAYLOAD",
		})
	}

	cleaned := h.normalizer.Normalize(spoken)
	if cleaned == "" {
		log.Printf("Transcript %s is empty after cleaning", transcriptID)
		return c.JSON(fiber.Map{
			"transcript_id": transcriptID,
			"status":        "empty",
			"message":       "Track contains no spoken text after cleaning",
			"formats":       []string{},
		})
	}

	transcript := &types.Transcript{
		ID:        transcriptID,
		Name:      req.Name,
		TrackPath: req.Path,
		Text:      cleaned,
		WordCount: len(strings.Fields(cleaned)),
		CreatedAt: time.Now(),
	}

	if err := h.registry.Save(transcript); err != nil {
		log.Printf("Failed to register transcript %s: %v", transcriptID, err)
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to register transcript",
			"code":  "ERR_REGISTRY_FAILED",
		})
	}

	log.Printf("Transcript %s ready (name: %s, words: %d)", transcriptID, transcript.Name, transcript.WordCount)

	return c.JSON(fiber.Map{
		"transcript_id": transcriptID,
		"status":        "ready",
		"name":          transcript.Name,
		"text":          cleaned,
		"word_count":    transcript.WordCount,
		"formats":       export.Formats(),
	})
}
