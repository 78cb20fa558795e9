package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/codebuildervaibhav/vimeo-transcript/internal/export"
	"github.com/codebuildervaibhav/vimeo-transcript/internal/storage"
)

// ExportHandler serves transcript downloads
type ExportHandler struct {
	registry *storage.Registry
}

// NewExportHandler creates a new export handler
func NewExportHandler(registry *storage.Registry) *ExportHandler {
	return &ExportHandler{
		registry: registry,
	}
}

// Handle renders a registered transcript in the requested format and serves
// it as an attachment
func (h *ExportHandler) Handle(c *fiber.Ctx) error {
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

	format := c.Params("format")

	payload, err := export.Render(format, transcript.Text)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": fmt.Sprintf("Unsupported export format: %s", format),
			"code":  "ERR_INVALID_FORMAT",
		})
	}

	filename := export.Filename(transcript.Name, format)

	c.Set("Content-Type", export.MIMEType(format))
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(payload)
}
