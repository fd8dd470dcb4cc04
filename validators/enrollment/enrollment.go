package enrollmentValidator

import (
	"internhub/middleware"
	"internhub/models"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// EnrollRequest is the body of POST /enroll
type EnrollRequest struct {
	UserID         models.FlexibleID `json:"user_id" validate:"required"`
	UserName       string            `json:"user_name"`
	UserEmail      string            `json:"user_email" validate:"required"`
	InternshipID   models.FlexibleID `json:"internship_id" validate:"required"`
	InternshipName string            `json:"internship_name"`
}

// StatusQuery identifies one (user, internship) pair
type StatusQuery struct {
	UserID       string
	InternshipID string
}

// TaskStatusParams identifies one task of an enrollment
type TaskStatusParams struct {
	InternshipID string
	UserID       string
	TaskID       string
}

func Enroll() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(EnrollRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		// Normalize inputs
		reqData.UserName = strings.TrimSpace(reqData.UserName)
		reqData.UserEmail = strings.TrimSpace(reqData.UserEmail)
		reqData.InternshipName = strings.TrimSpace(reqData.InternshipName)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Missing required fields")
		}

		c.Locals("validatedEnrollment", reqData)
		return c.Next()
	}
}

func EnrollmentStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := &StatusQuery{
			UserID:       strings.TrimSpace(c.Query("user_id")),
			InternshipID: strings.TrimSpace(c.Query("internship_id")),
		}
		if query.UserID == "" || query.InternshipID == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Missing user_id or internship_id")
		}

		c.Locals("validatedStatusQuery", query)
		return c.Next()
	}
}

func Candidates() fiber.Handler {
	return func(c *fiber.Ctx) error {
		internshipID := strings.TrimSpace(c.Params("internship_id"))
		if internshipID == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Internship ID is required")
		}

		c.Locals("internshipID", internshipID)
		return c.Next()
	}
}

func TaskStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := &TaskStatusParams{
			InternshipID: strings.TrimSpace(c.Params("internship_id")),
			UserID:       strings.TrimSpace(c.Params("user_id")),
			TaskID:       strings.TrimSpace(c.Params("task_id")),
		}

		errors := make(map[string]string)
		if params.InternshipID == "" {
			errors["internship_id"] = "Internship ID is required"
		}
		if params.UserID == "" {
			errors["user_id"] = "User ID is required"
		}
		if params.TaskID == "" {
			errors["task_id"] = "Task ID is required"
		}
		if len(errors) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  "Missing task identifiers",
				"fields": errors,
			})
		}

		c.Locals("validatedTaskStatus", params)
		return c.Next()
	}
}

func UserEnrollments() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := strings.TrimSpace(c.Query("user_id"))
		if userID == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Missing user_id")
		}

		c.Locals("userID", userID)
		return c.Next()
	}
}
