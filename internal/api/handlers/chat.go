package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/writedeck/writedeck-backend/internal/api/middleware"
	"github.com/writedeck/writedeck-backend/internal/services"
)

// heartbeatInterval is how often an SSE comment is written so intermediaries
// do not time out a connection that is waiting on the generator.
const heartbeatInterval = 15 * time.Second

// SendMessage handles the synchronous variant: the full turn runs without
// streaming and both persisted messages come back in one response.
func SendMessage(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, ok := middleware.GetWorkspaceID(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		var req struct {
			Content string `json:"content"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
		if req.Content == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Content is required",
			})
		}

		result, err := svc.Chat.SendMessage(c.Context(), workspaceID, c.Params("id"), req.Content)
		if err != nil {
			return errorResponse(c, err)
		}

		return c.JSON(result)
	}
}

// StreamMessage handles the SSE variant. Ownership failures surface as plain
// HTTP errors before the stream opens; everything after that arrives as
// events on the stream.
func StreamMessage(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, ok := middleware.GetWorkspaceID(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		var req struct {
			Content string `json:"content"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
		if req.Content == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Content is required",
			})
		}

		events, err := svc.Chat.StreamMessage(c.Context(), workspaceID, c.Params("id"), req.Content)
		if err != nil {
			return errorResponse(c, err)
		}

		c.Set("Content-Type", "text/event-stream")
		c.Set("Cache-Control", "no-cache")
		c.Set("Connection", "keep-alive")
		c.Set("X-Accel-Buffering", "no")

		c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
			relayEvents(w, events)
		})

		return nil
	}
}

// relayEvents serializes session events onto the SSE connection, interleaving
// heartbeats. A write failure means the client is gone; from then on the
// channel is still drained so the session engine can persist and settle, but
// nothing more is written.
func relayEvents(w *bufio.Writer, events <-chan services.StreamEvent) {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	clientGone := false

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if clientGone {
				continue
			}

			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				clientGone = true
				continue
			}
			if err := w.Flush(); err != nil {
				clientGone = true
			}

		case <-ticker.C:
			if clientGone {
				continue
			}
			if _, err := fmt.Fprintf(w, ": heartbeat\n\n"); err != nil {
				clientGone = true
				continue
			}
			if err := w.Flush(); err != nil {
				clientGone = true
			}
		}
	}
}
