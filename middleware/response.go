package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse writes the {"error": message} body used by every endpoint.
func ErrorResponse(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"error": message,
	})
}

// ErrorHandler turns errors escaping handlers into JSON. *fiber.Error keeps
// its code and message; anything else becomes a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return ErrorResponse(c, fe.Code, fe.Message)
	}
	log.Printf("[HTTP] Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error")
}
