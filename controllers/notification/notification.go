package notificationController

import (
	"context"
	"errors"
	"internhub/middleware"
	"internhub/models"
	"internhub/services/notification"
	notificationValidator "internhub/validators/notification"
	"log"

	"github.com/gofiber/fiber/v2"
)

// NotificationService is the part of the notification service the handlers use.
type NotificationService interface {
	ListForUser(ctx context.Context, userID string) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID string, ids []string, all bool) (int64, error)
	Delete(ctx context.Context, userID, notificationID string) error
	Clear(ctx context.Context, userID string) (int64, error)
}

type Controller struct {
	service NotificationService
}

func New(service NotificationService) *Controller {
	return &Controller{service: service}
}

func (ctl *Controller) List(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	notifications, err := ctl.service.ListForUser(c.UserContext(), userID)
	if err != nil {
		log.Printf("[HTTP] list notifications for %s failed: %v", userID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error")
	}

	unread, err := ctl.service.UnreadCount(c.UserContext(), userID)
	if err != nil {
		log.Printf("[HTTP] count unread notifications for %s failed: %v", userID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(fiber.Map{
		"notifications": notifications,
		"unread_count":  unread,
	})
}

func (ctl *Controller) MarkRead(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	reqData := c.Locals("validatedMarkRead").(*notificationValidator.MarkReadRequest)

	updated, err := ctl.service.MarkRead(c.UserContext(), userID, reqData.NotificationIDs, reqData.MarkAll)
	if err != nil {
		log.Printf("[HTTP] mark notifications read for %s failed: %v", userID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(fiber.Map{
		"message": "Notifications marked as read",
		"updated": updated,
	})
}

func (ctl *Controller) Delete(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	notificationID := c.Locals("notificationID").(string)

	err := ctl.service.Delete(c.UserContext(), userID, notificationID)
	if errors.Is(err, notification.ErrNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Notification not found")
	}
	if err != nil {
		log.Printf("[HTTP] delete notification %s failed: %v", notificationID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(fiber.Map{
		"message": "Notification deleted",
	})
}

func (ctl *Controller) Clear(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	deleted, err := ctl.service.Clear(c.UserContext(), userID)
	if err != nil {
		log.Printf("[HTTP] clear notifications for %s failed: %v", userID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(fiber.Map{
		"message": "Notifications cleared",
		"deleted": deleted,
	})
}
