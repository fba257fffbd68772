package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lentera_backend/internals/features/events/dto"
	"lentera_backend/internals/features/events/service"
	helper "lentera_backend/internals/helpers"
	"lentera_backend/internals/realtime"
)

// AttendanceController: operasi organizer pada kehadiran event.
type AttendanceController struct {
	DB  *gorm.DB
	Hub *realtime.Hub
}

func NewAttendanceController(db *gorm.DB, hub *realtime.Hub) *AttendanceController {
	return &AttendanceController{DB: db, Hub: hub}
}

// ✅ POST /api/a/events/:event_id/check-in
// Jalur scan kamera: device cukup tahu event + token hasil scan.
func (ctrl *AttendanceController) CheckInByToken(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "event_id tidak valid")
	}

	var req dto.CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid body")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "qr_token wajib diisi")
	}

	reg, err := service.CheckInByToken(ctrl.DB, ctrl.Hub, eventID, req.QRToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			return helper.JsonErrorCode(c, fiber.StatusNotFound, "INVALID_TOKEN", "Scan token tidak valid untuk event ini")
		case errors.Is(err, service.ErrAlreadyCheckedIn):
			// outcome yang diharapkan, bukan system error — laporkan
			// attended_at asli supaya UI bisa tampilkan info, bukan fault
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success":    false,
				"message":    "Registrasi sudah check-in sebelumnya",
				"error_code": "ALREADY_CHECKED_IN",
				"data":       dto.ToRegistrationResponse(reg, false),
			})
		default:
			log.Printf("[ERROR] Gagal check-in: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses check-in")
		}
	}

	return helper.JsonOK(c, "Check-in berhasil", dto.ToRegistrationResponse(reg, false))
}

// ✅ PUT /api/a/registrations/:id/attendance
// Override manual — tanpa guard idempotensi; call identik berulang memang no-op.
func (ctrl *AttendanceController) SetAttendance(c *fiber.Ctx) error {
	registrationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "registration id tidak valid")
	}

	var req dto.SetAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid body")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "attended wajib diisi")
	}

	reg, err := service.SetAttendance(ctrl.DB, ctrl.Hub, registrationID, *req.Attended)
	if err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Registrasi tidak ditemukan")
		}
		log.Printf("[ERROR] Gagal set attendance: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengubah kehadiran")
	}

	return helper.JsonUpdated(c, "Kehadiran diperbarui", dto.ToRegistrationResponse(reg, false))
}

// ✅ GET /api/a/events/:event_id/attendees — roster organizer
func (ctrl *AttendanceController) ListAttendees(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "event_id tidak valid")
	}

	rows, err := service.ListAttendees(ctrl.DB, eventID)
	if err != nil {
		log.Printf("[ERROR] Gagal ambil attendees: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar peserta")
	}

	// Token tidak pernah ikut di roster
	for i := range rows {
		rows[i].EventRegistrationQRToken = ""
	}

	return helper.JsonList(c, "OK", rows, nil)
}
