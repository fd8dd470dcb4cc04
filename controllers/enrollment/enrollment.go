package enrollmentController

import (
	"context"
	"errors"
	"internhub/middleware"
	"internhub/services/enrollment"
	enrollmentValidator "internhub/validators/enrollment"
	"log"

	"github.com/gofiber/fiber/v2"
)

// EnrollmentService is the part of the enrollment store the handlers use.
type EnrollmentService interface {
	Enroll(ctx context.Context, in enrollment.EnrollInput) (enrollment.EnrollResult, error)
	IsEnrolled(userID, internshipID string) bool
	ListCandidates(ctx context.Context, internshipID string) ([]enrollment.CandidateProgress, error)
	ListForUser(ctx context.Context, userID string) ([]enrollment.CandidateProgress, error)
	CompleteTask(ctx context.Context, internshipID, userID, taskID string) error
}

type Controller struct {
	store EnrollmentService
}

func New(store EnrollmentService) *Controller {
	return &Controller{store: store}
}

func (ctl *Controller) Enroll(c *fiber.Ctx) error {
	reqData := c.Locals("validatedEnrollment").(*enrollmentValidator.EnrollRequest)

	result, err := ctl.store.Enroll(c.UserContext(), enrollment.EnrollInput{
		UserID:         reqData.UserID.String(),
		UserName:       reqData.UserName,
		UserEmail:      reqData.UserEmail,
		InternshipID:   reqData.InternshipID.String(),
		InternshipName: reqData.InternshipName,
	})
	if err != nil {
		return respondError(c, "enroll", err)
	}

	if result.AlreadyEnrolled {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message":     "Already enrolled",
			"is_enrolled": true,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Enrollment successful",
		"enrollment": result.Enrollment,
	})
}

func (ctl *Controller) EnrollmentStatus(c *fiber.Ctx) error {
	query := c.Locals("validatedStatusQuery").(*enrollmentValidator.StatusQuery)

	return c.JSON(fiber.Map{
		"is_enrolled": ctl.store.IsEnrolled(query.UserID, query.InternshipID),
	})
}

func (ctl *Controller) Candidates(c *fiber.Ctx) error {
	internshipID := c.Locals("internshipID").(string)

	candidates, err := ctl.store.ListCandidates(c.UserContext(), internshipID)
	if err != nil {
		return respondError(c, "list candidates", err)
	}

	internshipName := "Internship"
	if len(candidates) > 0 && candidates[0].InternshipName != "" {
		internshipName = candidates[0].InternshipName
	}

	return c.JSON(fiber.Map{
		"internship_id":   internshipID,
		"internship_name": internshipName,
		"candidates":      candidates,
		"total_count":     len(candidates),
	})
}

func (ctl *Controller) CompleteTask(c *fiber.Ctx) error {
	params := c.Locals("validatedTaskStatus").(*enrollmentValidator.TaskStatusParams)

	err := ctl.store.CompleteTask(c.UserContext(), params.InternshipID, params.UserID, params.TaskID)
	if errors.Is(err, enrollment.ErrNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Task not found")
	}
	if err != nil {
		return respondError(c, "complete task", err)
	}

	return c.JSON(fiber.Map{
		"message": "Task marked as completed",
	})
}

func (ctl *Controller) UserEnrollments(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	enrollments, err := ctl.store.ListForUser(c.UserContext(), userID)
	if err != nil {
		return respondError(c, "list user enrollments", err)
	}

	return c.JSON(fiber.Map{
		"user_id":     userID,
		"enrollments": enrollments,
		"total_count": len(enrollments),
	})
}

func respondError(c *fiber.Ctx, op string, err error) error {
	switch {
	case errors.Is(err, enrollment.ErrValidation):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Missing required fields")
	case errors.Is(err, enrollment.ErrNotFound):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Not found")
	default:
		log.Printf("[HTTP] %s failed: %v", op, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
