package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lentera_backend/internals/features/events/controller"
	"lentera_backend/internals/middlewares"
	"lentera_backend/internals/realtime"
)

// Organizer: check-in, toggle kehadiran, roster, live view.
// Guard role organizer dipasang di group /api/a (lihat internals/route).
func EventAdminRoutes(api fiber.Router, db *gorm.DB, hub *realtime.Hub) {
	ctrl := controller.NewAttendanceController(db, hub)

	events := api.Group("/events")
	events.Post("/:event_id/check-in", middlewares.CheckInRateLimiter(), ctrl.CheckInByToken)
	events.Get("/:event_id/attendees", ctrl.ListAttendees)
	events.Get("/:event_id/live", realtime.UpgradeRequired, realtime.EventLive(hub))

	api.Put("/registrations/:id/attendance", ctrl.SetAttendance)
}
