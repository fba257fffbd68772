package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lentera_backend/internals/features/certificates/controller"
	"lentera_backend/internals/middlewares"
)

// Publik: halaman verifikasi sertifikat, tanpa auth
func CertificatePublicRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewVerificationController(db)

	api.Get("/certificates/:number", middlewares.PublicVerifyRateLimiter(), ctrl.Resolve)
}
