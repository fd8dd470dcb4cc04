package enrollmentRoutes

import (
	enrollmentController "internhub/controllers/enrollment"
	enrollmentValidator "internhub/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

func SetupEnrollmentRoutes(app *fiber.App, ctl *enrollmentController.Controller) {
	app.Post("/enroll", enrollmentValidator.Enroll(), ctl.Enroll)
	app.Get("/enrollment-status", enrollmentValidator.EnrollmentStatus(), ctl.EnrollmentStatus)
	app.Get("/enrollments", enrollmentValidator.UserEnrollments(), ctl.UserEnrollments)

	adminGroup := app.Group("/admin/internships/:internship_id")
	adminGroup.Get("/candidates", enrollmentValidator.Candidates(), ctl.Candidates)
	adminGroup.Patch("/candidates/:user_id/tasks/:task_id", enrollmentValidator.TaskStatus(), ctl.CompleteTask)
}
