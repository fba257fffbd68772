package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lentera_backend/internals/features/courses/progress/dto"
	"lentera_backend/internals/features/courses/progress/service"
	helper "lentera_backend/internals/helpers"
)

type ProgressController struct {
	DB *gorm.DB
}

func NewProgressController(db *gorm.DB) *ProgressController {
	return &ProgressController{DB: db}
}

// ✅ GET /api/u/courses/:course_id/progress
func (ctrl *ProgressController) GetProgress(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	courseID, err := uuid.Parse(c.Params("course_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "course_id tidak valid")
	}

	records, stats, err := service.GetProgress(ctrl.DB, userID, courseID)
	if err != nil {
		log.Printf("[ERROR] Gagal ambil progress: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil progress")
	}

	return helper.JsonOK(c, "OK", dto.ProgressListResponse{
		Progress: dto.ToLessonProgressResponses(records),
		Stats:    stats,
	})
}

// ✅ POST /api/u/courses/:course_id/progress
// Saat stats.course_completed berubah jadi true, UI lanjut memanggil
// /certificates/generate — penulisan progress sendiri tetap bebas side effect.
func (ctrl *ProgressController) SetLessonCompletion(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	courseID, err := uuid.Parse(c.Params("course_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "course_id tidak valid")
	}

	var req dto.SetLessonCompletionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid body")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "module_id dan lesson_id wajib diisi")
	}

	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	}

	saved, stats, err := service.SetLessonCompletion(ctrl.DB, userID, courseID, req.ModuleID, req.LessonID, completed)
	if err != nil {
		if errors.Is(err, service.ErrNotEnrolled) {
			return helper.JsonErrorCode(c, fiber.StatusForbidden, "NOT_ENROLLED", "Anda belum terdaftar di course ini")
		}
		log.Printf("[ERROR] Gagal simpan progress: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan progress")
	}

	return helper.JsonOK(c, "Progress tersimpan", dto.ProgressWriteResponse{
		Progress: dto.ToLessonProgressResponse(saved),
		Stats:    stats,
	})
}
