package handlers

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/codebuildervaibhav/vimeo-transcript/internal/captions"
)

// PreviewHandler cleans caption payloads pasted over a WebSocket connection
type PreviewHandler struct {
	normalizer *captions.Normalizer
}

// NewPreviewHandler creates a new preview handler
func NewPreviewHandler(normalizer *captions.Normalizer) *PreviewHandler {
	return &PreviewHandler{
		normalizer: normalizer,
	}
}

// previewResult is the reply sent for each pasted payload
type previewResult struct {
	Status    string `json:"status"`
	Text      string `json:"text,omitempty"`
	WordCount int    `json:"word_count"`
	Error     string `json:"error,omitempty"`
}

// Handle processes WebSocket connections. Each text message is one complete
// caption payload and gets one cleaned-transcript reply; nothing accumulates
// across messages.
func (h *PreviewHandler) Handle(c *websocket.Conn) {
	defer c.Close()

	connID := uuid.New().String()
	log.Printf("Preview connection established: %s", connID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("Preview connection %s closed: %v", connID, err)
			return
		}

		if messageType != websocket.TextMessage {
			continue
		}

		reply, err := json.Marshal(h.preview(message))
		if err != nil {
			log.Printf("Failed to encode preview reply: %v", err)
			continue
		}

		if err := c.WriteMessage(websocket.TextMessage, reply); err != nil {
			log.Printf("Preview write error on %s: %v", connID, err)
			return
		}
	}
}

// preview runs one request-scoped parse and normalize pass
func (h *PreviewHandler) preview(payload []byte) previewResult {
	spoken, err := captions.Parse(payload)
	if err != nil {
		return previewResult{
			Status: "error",
			Error:  "Caption payload is not valid text",
		}
	}

	cleaned := h.normalizer.Normalize(spoken)
	if cleaned == "" {
		return previewResult{Status: "empty"}
	}

	return previewResult{
		Status:    "ready",
		Text:      cleaned,
		WordCount: len(strings.Fields(cleaned)),
	}
}
