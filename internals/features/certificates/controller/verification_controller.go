package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lentera_backend/internals/features/certificates/service"
	helper "lentera_backend/internals/helpers"
)

// VerificationController melayani halaman verifikasi PUBLIK — tanpa session.
type VerificationController struct {
	DB *gorm.DB
}

func NewVerificationController(db *gorm.DB) *VerificationController {
	return &VerificationController{DB: db}
}

// ✅ GET /api/public/certificates/:number
// Nomor tidak dikenal → NOT_FOUND polos; tidak membedakan "ada tapi bukan
// milikmu" dari "tidak ada".
func (ctrl *VerificationController) Resolve(c *fiber.Ctx) error {
	number := c.Params("number")
	if number == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nomor sertifikat wajib diisi")
	}

	view, err := service.Resolve(ctrl.DB, number)
	if err != nil {
		if errors.Is(err, service.ErrCertificateNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Sertifikat tidak ditemukan")
		}
		log.Printf("[ERROR] Gagal resolve sertifikat %s: %v", number, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memverifikasi sertifikat")
	}

	// Halaman publik boleh agresif di-cache
	c.Set("Cache-Control", "public, max-age=300, stale-while-revalidate=600")
	return helper.JsonOK(c, "OK", view)
}
