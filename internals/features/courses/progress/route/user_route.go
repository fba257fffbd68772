package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lentera_backend/internals/features/courses/progress/controller"
)

// Harus login (AuthMiddleware dipasang di group /api/u)
func ProgressUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewProgressController(db)

	courses := api.Group("/courses")
	courses.Get("/:course_id/progress", ctrl.GetProgress)
	courses.Post("/:course_id/progress", ctrl.SetLessonCompletion)
}
