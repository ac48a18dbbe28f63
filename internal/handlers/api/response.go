package api

import (
	"github.com/gofiber/fiber/v3"
)

// Error taxonomy codes surfaced to callers. Raw internal error text never
// crosses this boundary.
const (
	CodeInvalidInput       = "invalid_input"
	CodePersistenceFailure = "persistence_failure"
	CodeNotFound           = "not_found"
	CodeInternal           = "internal_error"
)

// jsonSuccess returns a 200 response with data wrapped in the standard envelope.
func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonError returns an error response carrying a taxonomy code and a short
// human-readable message.
func jsonError(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}
