package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/writedeck/writedeck-backend/internal/auth"
	"github.com/writedeck/writedeck-backend/internal/repository"
)

const workspaceIDKey = "workspace_id"

// AuthRequired creates a middleware that resolves the caller's workspace from
// either a JWT access token or a workspace API key.
func AuthRequired(jwtService *auth.JWTService, workspaces repository.WorkspaceRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		credential := auth.ExtractTokenFromBearer(c.Get("Authorization"))
		if credential == "" {
			credential = c.Cookies("access_token")
		}

		if credential == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		if auth.IsAPIKey(credential) {
			workspaceID, secret, err := auth.ParseAPIKey(credential)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid API key",
				})
			}

			workspace, err := workspaces.Get(c.Context(), workspaceID)
			if err != nil || workspace == nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid API key",
				})
			}

			if err := auth.VerifyAPIKey(workspace.APIKeyHash, secret); err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid API key",
				})
			}

			c.Locals(workspaceIDKey, workspace.ID)
			return c.Next()
		}

		claims, err := jwtService.ValidateToken(credential)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		workspaceID, err := uuid.Parse(claims.WorkspaceID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token claims",
			})
		}

		c.Locals(workspaceIDKey, workspaceID)
		return c.Next()
	}
}

// GetWorkspaceID retrieves the authenticated workspace from the fiber context
func GetWorkspaceID(c *fiber.Ctx) (uuid.UUID, bool) {
	if id, ok := c.Locals(workspaceIDKey).(uuid.UUID); ok {
		return id, true
	}
	return uuid.Nil, false
}
