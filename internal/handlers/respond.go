package handlers

import (
	"errors"
	"fmt"
	"log"

	"fullcolombiano/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// handleServiceError maps the service error taxonomy onto HTTP statuses:
// validation 400, auth 401, permission 403, not found 404, anything else 500.
func handleServiceError(c *fiber.Ctx, err error) error {
	var vErr *apperrors.ValidationError
	if errors.As(err, &vErr) {
		body := fiber.Map{
			"message": "Validation failed",
			"error":   vErr.Message,
		}
		if vErr.Field != "" {
			body["errors"] = map[string]string{vErr.Field: vErr.Message}
		}
		return c.Status(fiber.StatusBadRequest).JSON(body)
	}

	var aErr *apperrors.AuthError
	if errors.As(err, &aErr) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication failed",
			"error":   aErr.Message,
		})
	}

	var pErr *apperrors.PermissionError
	if errors.As(err, &pErr) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Permission denied",
			"error":   pErr.Message,
		})
	}

	var nfErr *apperrors.NotFoundError
	if errors.As(err, &nfErr) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": nfErr.Error(),
		})
	}

	log.Printf("Unexpected error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal server error",
		"error":   err.Error(),
	})
}

// validationErrorResponse renders validator.Struct failures as a 400 with
// per-field messages.
func validationErrorResponse(c *fiber.Ctx, err error) error {
	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// actorID returns the authenticated user's ID placed in the locals by the
// JWT middleware, or "" for anonymous requests.
func actorID(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok {
		return id
	}
	return ""
}
