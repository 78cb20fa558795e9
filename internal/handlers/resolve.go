package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/codebuildervaibhav/vimeo-transcript/internal/vimeo"
)

// ResolveHandler lists the caption tracks of a Vimeo video
type ResolveHandler struct {
	resolver *vimeo.Resolver
}

// NewResolveHandler creates a new resolve handler
func NewResolveHandler(resolver *vimeo.Resolver) *ResolveHandler {
	return &ResolveHandler{
		resolver: resolver,
	}
}

// ResolveRequest represents the request body
type ResolveRequest struct {
	URL string `json:"url"`
}

// Handle processes track resolution requests
func (h *ResolveHandler) Handle(c *fiber.Ctx) error {
	var req ResolveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Invalid request body",
			"code":  "ERR_INVALID_BODY",
		})
	}

	if req.URL == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": "URL is required",
			"code":  "ERR_NO_URL",
		})
	}

	// Reject URLs without a video ID before spinning up Chrome
	playerURL, err := vimeo.PlayerURL(req.URL)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Invalid Vimeo URL",
			"code":  "ERR_INVALID_URL",
		})
	}

	tracks, err := h.resolver.ListTextTracks(c.Context(), req.URL)
	if err != nil {
		log.Printf("Failed to resolve tracks for %s: %v", req.URL, err)
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to resolve caption tracks",
			"code":  "ERR_RESOLVE_FAILED",
		})
	}

	if len(tracks) == 0 {
		return c.Status(404).JSON(fiber.Map{
			"error": "Video has no caption tracks",
			"code":  "ERR_NO_TRACKS",
		})
	}

	return c.JSON(fiber.Map{
		"player_url": playerURL,
		"tracks":     tracks,
	})
}
