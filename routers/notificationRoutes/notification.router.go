package notificationRoutes

import (
	notificationController "internhub/controllers/notification"
	notificationValidator "internhub/validators/notification"

	"github.com/gofiber/fiber/v2"
)

func SetupNotificationRoutes(app *fiber.App, ctl *notificationController.Controller) {
	notificationGroup := app.Group("/api/notifications/:user_id", notificationValidator.UserParam())

	notificationGroup.Get("/", ctl.List)
	notificationGroup.Post("/mark-read", notificationValidator.MarkRead(), ctl.MarkRead)
	notificationGroup.Delete("/delete/:notification_id", notificationValidator.NotificationParam(), ctl.Delete)
	notificationGroup.Delete("/clear", ctl.Clear)
}
