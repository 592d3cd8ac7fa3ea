package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/writedeck/writedeck-backend/internal/api/middleware"
	"github.com/writedeck/writedeck-backend/internal/services"
)

// GetWorkspace returns the caller's workspace profile, including usage
func GetWorkspace(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, ok := middleware.GetWorkspaceID(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		workspace, err := svc.Workspace.Get(c.Context(), workspaceID)
		if err != nil {
			return errorResponse(c, err)
		}

		return c.JSON(workspace)
	}
}

// UpdateVoice updates the workspace voice settings
func UpdateVoice(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, ok := middleware.GetWorkspaceID(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		var req services.VoiceUpdate
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		workspace, err := svc.Workspace.UpdateVoice(c.Context(), workspaceID, req)
		if err != nil {
			return errorResponse(c, err)
		}

		return c.JSON(workspace)
	}
}
