package handlers

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/codebuildervaibhav/vimeo-transcript/internal/export"
	"github.com/codebuildervaibhav/vimeo-transcript/internal/storage"
)

// DriveHandler delivers rendered exports to Google Drive
type DriveHandler struct {
	driveClient *storage.DriveClient
	registry    *storage.Registry
}

// NewDriveHandler creates a new Drive delivery handler. A nil drive client
// means Drive is not configured and the handler reports it as unavailable.
func NewDriveHandler(driveClient *storage.DriveClient, registry *storage.Registry) *DriveHandler {
	return &DriveHandler{
		driveClient: driveClient,
		registry:    registry,
	}
}

// DriveRequest represents the request body
type DriveRequest struct {
	Format string `json:"format"`
}

// Handle processes Drive delivery requests
func (h *DriveHandler) Handle(c *fiber.Ctx) error {
	if h.driveClient == nil {
		return c.Status(503).JSON(fiber.Map{
			"error": "Google Drive is not configured",
			"code":  "ERR_DRIVE_DISABLED",
		})
	}

	// The body is optional, the format defaults to plain text
	var req DriveRequest
	if err := c.BodyParser(&req); err != nil {
		req = DriveRequest{}
	}
	if req.Format == "" {
		req.Format = export.FormatText
	}

	transcript, err := h.registry.Get(c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to load transcript",
			"code":  "ERR_REGISTRY_FAILED",
		})
	}
	if transcript == nil {
		return c.Status(404).JSON(fiber.Map{
			"error": "Transcript not found",
			"code":  "ERR_NOT_FOUND",
		})
	}

	payload, err := export.Render(req.Format, transcript.Text)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": fmt.Sprintf("Unsupported export format: %s", req.Format),
			"code":  "ERR_INVALID_FORMAT",
		})
	}

	filename := export.Filename(transcript.Name, req.Format)

	// Upload with retry
	var driveURL string
	for attempt := 1; attempt <= 3; attempt++ {
		driveURL, err = h.driveClient.Upload(filename, payload)
		if err == nil {
			break
		}
		log.Printf("Google Drive upload attempt %d/3 failed: %v", attempt, err)
		if attempt < 3 {
			time.Sleep(time.Duration(attempt*attempt) * time.Second) // Exponential backoff
		}
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Google Drive upload failed",
			"code":  "ERR_DRIVE_UPLOAD_FAILED",
		})
	}

	if err := h.registry.SetDriveURL(transcript.ID, driveURL); err != nil {
		log.Printf("Failed to record drive url for %s: %v", transcript.ID, err)
	}

	log.Printf("Transcript %s delivered to Google Drive: %s", transcript.ID, driveURL)

	return c.JSON(fiber.Map{
		"transcript_id": transcript.ID,
		"gdrive_url":    driveURL,
		"filename":      filename,
	})
}
