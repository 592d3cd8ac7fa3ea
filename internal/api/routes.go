package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/writedeck/writedeck-backend/internal/api/handlers"
	"github.com/writedeck/writedeck-backend/internal/api/middleware"
	"github.com/writedeck/writedeck-backend/internal/auth"
	"github.com/writedeck/writedeck-backend/internal/repository"
	"github.com/writedeck/writedeck-backend/internal/services"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, svc *services.Services, jwtService *auth.JWTService, workspaceRepo repository.WorkspaceRepository) {
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "writedeck-backend",
		})
	})

	authed := api.Group("", middleware.AuthRequired(jwtService, workspaceRepo))

	// Workspace profile and voice settings
	authed.Get("/workspace", handlers.GetWorkspace(svc))
	authed.Patch("/workspace/voice", handlers.UpdateVoice(svc))

	// Conversation management
	authed.Post("/conversations", handlers.CreateConversation(svc))
	authed.Get("/conversations", handlers.ListConversations(svc))
	authed.Get("/conversations/:id", handlers.GetConversation(svc))
	authed.Patch("/conversations/:id", handlers.RenameConversation(svc))
	authed.Delete("/conversations/:id", handlers.DeleteConversation(svc))

	// Turns: synchronous and streaming variants
	authed.Post("/conversations/:id/messages", handlers.SendMessage(svc))
	authed.Post("/conversations/:id/messages/stream", handlers.StreamMessage(svc))
}
