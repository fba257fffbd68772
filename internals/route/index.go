// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	certificateRoute "lentera_backend/internals/features/certificates/route"
	courseRoute "lentera_backend/internals/features/courses/courses/route"
	progressRoute "lentera_backend/internals/features/courses/progress/route"
	eventRoute "lentera_backend/internals/features/events/route"

	"lentera_backend/internals/constants"
	authMiddleware "lentera_backend/internals/middlewares/auth"
	"lentera_backend/internals/realtime"
	"lentera_backend/internals/services/mailer"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, hub *realtime.Hub, sender mailer.Sender) {
	// ===================== PUBLIC =====================
	// Halaman verifikasi sertifikat — HARUS jalan tanpa session
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")
	certificateRoute.CertificatePublicRoutes(public, db)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRolesSlice(
			"❌ Hanya pengguna terautentikasi yang boleh mengakses fitur ini.",
			constants.AllowedRoles,
		),
	)
	courseRoute.EnrollmentUserRoutes(private, db)
	progressRoute.ProgressUserRoutes(private, db)
	certificateRoute.CertificateUserRoutes(private, db, sender)
	eventRoute.EventUserRoutes(private, db, hub)

	// ===================== ORGANIZER =====================
	log.Println("[INFO] Setting up ORGANIZER group...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRolesSlice(
			"❌ Hanya organizer yang boleh mengelola kehadiran event.",
			constants.OrganizerRoles,
		),
	)
	eventRoute.EventAdminRoutes(admin, db, hub)
}
