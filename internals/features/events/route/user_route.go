package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lentera_backend/internals/features/events/controller"
	"lentera_backend/internals/realtime"
)

// User login: daftar event & lihat registrasi sendiri
func EventUserRoutes(api fiber.Router, db *gorm.DB, hub *realtime.Hub) {
	ctrl := controller.NewEventRegistrationController(db, hub)

	events := api.Group("/events")
	events.Post("/:event_id/registrations", ctrl.Register)
	events.Get("/:event_id/registrations/me", ctrl.GetMyRegistration)
}
