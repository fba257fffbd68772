package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lentera_backend/internals/features/certificates/dto"
	"lentera_backend/internals/features/certificates/service"
	helper "lentera_backend/internals/helpers"
	"lentera_backend/internals/services/mailer"
)

type CertificateController struct {
	DB     *gorm.DB
	Mailer mailer.Sender
}

func NewCertificateController(db *gorm.DB, sender mailer.Sender) *CertificateController {
	return &CertificateController{DB: db, Mailer: sender}
}

// ✅ POST /api/u/certificates/generate
// Idempotent: dipicu otomatis saat course_completed jadi true, dan boleh
// di-retry client kapan pun — upsert key yang jaga konsistensinya.
func (ctrl *CertificateController) Generate(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.GenerateCertificateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid body")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "course_id dan enrollment_id wajib diisi")
	}

	result, err := service.Issue(ctrl.DB, ctrl.Mailer, userID, req.CourseID, req.EnrollmentID, req.ToIssueContext())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Course tidak ditemukan")
		case errors.Is(err, service.ErrEnrollmentNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Enrollment tidak ditemukan untuk akun ini")
		default:
			log.Printf("[ERROR] Gagal menerbitkan sertifikat: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menerbitkan sertifikat")
		}
	}

	return helper.JsonCreated(c, "Sertifikat diterbitkan", result)
}

// ✅ GET /api/u/certificates/status?course_id=...
// Read-only — dipakai client untuk menghindari trigger penerbitan ulang.
func (ctrl *CertificateController) GetStatus(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	courseID, err := uuid.Parse(c.Query("course_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "course_id tidak valid")
	}

	result, err := service.GetStatus(ctrl.DB, userID, courseID)
	if err != nil {
		log.Printf("[ERROR] Gagal ambil status sertifikat: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil status sertifikat")
	}

	return helper.JsonOK(c, "OK", fiber.Map{"certificate": result})
}
