package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/writedeck/writedeck-backend/internal/api/middleware"
	"github.com/writedeck/writedeck-backend/internal/services"
)

const maxTitleLength = 200

// CreateConversation creates a new conversation
func CreateConversation(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, ok := middleware.GetWorkspaceID(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		var req struct {
			Module string `json:"module"`
			Title  string `json:"title"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		if req.Module == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Module is required",
			})
		}
		if len(req.Title) > maxTitleLength {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Title is too long",
			})
		}

		conversation, err := svc.Conversation.Create(c.Context(), workspaceID, req.Module, req.Title)
		if err != nil {
			return errorResponse(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(conversation)
	}
}

// ListConversations returns the workspace's conversations
func ListConversations(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, ok := middleware.GetWorkspaceID(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		conversations, err := svc.Conversation.List(c.Context(), workspaceID, c.Query("module"))
		if err != nil {
			return errorResponse(c, err)
		}

		return c.JSON(fiber.Map{"conversations": conversations})
	}
}

// GetConversation returns a conversation and its messages
func GetConversation(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, ok := middleware.GetWorkspaceID(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		conversation, messages, err := svc.Conversation.GetWithMessages(c.Context(), workspaceID, c.Params("id"))
		if err != nil {
			return errorResponse(c, err)
		}

		return c.JSON(fiber.Map{
			"conversation": conversation,
			"messages":     messages,
		})
	}
}

// RenameConversation updates a conversation title
func RenameConversation(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, ok := middleware.GetWorkspaceID(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		var req struct {
			Title string `json:"title"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		if req.Title == "" || len(req.Title) > maxTitleLength {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Title must be between 1 and 200 characters",
			})
		}

		conversation, err := svc.Conversation.Rename(c.Context(), workspaceID, c.Params("id"), req.Title)
		if err != nil {
			return errorResponse(c, err)
		}

		return c.JSON(conversation)
	}
}

// DeleteConversation deletes a conversation and its messages
func DeleteConversation(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, ok := middleware.GetWorkspaceID(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		if err := svc.Conversation.Delete(c.Context(), workspaceID, c.Params("id")); err != nil {
			return errorResponse(c, err)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
