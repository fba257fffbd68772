package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lentera_backend/internals/features/events/dto"
	"lentera_backend/internals/features/events/model"
	"lentera_backend/internals/features/events/service"
	helper "lentera_backend/internals/helpers"
	"lentera_backend/internals/realtime"
)

type EventRegistrationController struct {
	DB  *gorm.DB
	Hub *realtime.Hub
}

func NewEventRegistrationController(db *gorm.DB, hub *realtime.Hub) *EventRegistrationController {
	return &EventRegistrationController{DB: db, Hub: hub}
}

// ✅ POST /api/u/events/:event_id/registrations
func (ctrl *EventRegistrationController) Register(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "event_id tidak valid")
	}

	var req dto.RegisterEventRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid body")
	}

	reg, err := service.Register(ctrl.DB, ctrl.Hub, eventID, userID, req.IsCollaborator)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Event tidak ditemukan")
		case errors.Is(err, service.ErrAlreadyRegistered):
			return helper.JsonErrorCode(c, fiber.StatusConflict, "ALREADY_REGISTERED", "Anda sudah terdaftar di event ini")
		case errors.Is(err, service.ErrEventFull):
			return helper.JsonErrorCode(c, fiber.StatusConflict, "EVENT_FULL", "Kapasitas event sudah penuh")
		case errors.Is(err, service.ErrEventPast):
			return helper.JsonErrorCode(c, fiber.StatusConflict, "EVENT_PAST", "Event sudah dimulai atau sudah lewat")
		default:
			log.Printf("[ERROR] Gagal menyimpan registrasi event: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan registrasi")
		}
	}

	// Token ikut di response — ini registrasi milik caller sendiri
	return helper.JsonCreated(c, "Registrasi berhasil", dto.ToRegistrationResponse(reg, true))
}

// ✅ GET /api/u/events/:event_id/registrations/me
// Dipakai banner kehadiran di sisi attendee.
func (ctrl *EventRegistrationController) GetMyRegistration(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "event_id tidak valid")
	}

	var reg model.EventRegistrationModel
	if err := ctrl.DB.Where(
		"event_registration_event_id = ? AND event_registration_user_id = ?", eventID, userID,
	).First(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Anda belum terdaftar di event ini")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil registrasi")
	}

	return helper.JsonOK(c, "OK", dto.ToRegistrationResponse(&reg, true))
}
