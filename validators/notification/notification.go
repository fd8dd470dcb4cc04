package notificationValidator

import (
	"internhub/middleware"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// MarkReadRequest is the body of POST /api/notifications/:user_id/mark-read
type MarkReadRequest struct {
	NotificationIDs []string `json:"notification_ids" validate:"omitempty,dive,required"`
	MarkAll         bool     `json:"mark_all"`
}

func UserParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := strings.TrimSpace(c.Params("user_id"))
		if userID == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "User ID is required")
		}

		c.Locals("userID", userID)
		return c.Next()
	}
}

func MarkRead() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(MarkReadRequest)
		if len(c.Body()) > 0 {
			if err := c.BodyParser(reqData); err != nil {
				return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
			}
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Notification IDs must not be empty")
		}
		if !reqData.MarkAll && len(reqData.NotificationIDs) == 0 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Provide notification_ids or set mark_all")
		}

		c.Locals("validatedMarkRead", reqData)
		return c.Next()
	}
}

func NotificationParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		notificationID := strings.TrimSpace(c.Params("notification_id"))
		if notificationID == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Notification ID is required")
		}

		c.Locals("notificationID", notificationID)
		return c.Next()
	}
}
