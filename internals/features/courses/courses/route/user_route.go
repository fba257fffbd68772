package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lentera_backend/internals/features/courses/courses/controller"
)

func EnrollmentUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewEnrollmentController(db)

	enroll := api.Group("/enrollments")
	enroll.Post("/", ctrl.Enroll)
	enroll.Get("/", ctrl.GetMyEnrollments)
}
