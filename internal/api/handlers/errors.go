package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/writedeck/writedeck-backend/internal/prompt"
	"github.com/writedeck/writedeck-backend/internal/services"
)

// errorResponse maps service errors onto HTTP statuses
func errorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Conversation not found",
		})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Conversation belongs to another workspace",
		})
	case errors.Is(err, services.ErrQuotaExceeded):
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
			"error": "Usage limit reached. Please upgrade your plan to continue.",
		})
	case errors.Is(err, prompt.ErrUnsupportedModule):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
