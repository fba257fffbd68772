package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lentera_backend/internals/features/certificates/controller"
	"lentera_backend/internals/services/mailer"
)

// User login: generate & cek status sertifikat milik sendiri
func CertificateUserRoutes(api fiber.Router, db *gorm.DB, sender mailer.Sender) {
	ctrl := controller.NewCertificateController(db, sender)

	certs := api.Group("/certificates")
	certs.Post("/generate", ctrl.Generate)
	certs.Get("/status", ctrl.GetStatus)
}
