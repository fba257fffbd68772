package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lentera_backend/internals/features/courses/courses/dto"
	"lentera_backend/internals/features/courses/courses/model"
	helper "lentera_backend/internals/helpers"
)

type EnrollmentController struct {
	DB *gorm.DB
}

func NewEnrollmentController(db *gorm.DB) *EnrollmentController {
	return &EnrollmentController{DB: db}
}

// ✅ POST /api/u/enrollments
func (ctrl *EnrollmentController) Enroll(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid body")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "course_id wajib diisi")
	}

	// Course harus ada & published
	var course model.CourseModel
	if err := ctrl.DB.
		Where("course_id = ? AND course_is_published = ?", req.CourseID, true).
		First(&course).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Course tidak ditemukan atau belum dipublikasikan")
	}

	// Sudah terdaftar?
	var existing model.EnrollmentModel
	if err := ctrl.DB.
		Where("enrollment_user_id = ? AND enrollment_course_id = ?", userID, req.CourseID).
		First(&existing).Error; err == nil {
		return helper.JsonErrorCode(c, fiber.StatusConflict, "ALREADY_REGISTERED", "Anda sudah terdaftar di course ini")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memeriksa pendaftaran")
	}

	enrollment := model.EnrollmentModel{
		EnrollmentID:       uuid.New(),
		EnrollmentUserID:   userID,
		EnrollmentCourseID: req.CourseID,
		EnrollmentStatus:   model.EnrollmentStatusActive,
	}
	if err := ctrl.DB.Create(&enrollment).Error; err != nil {
		log.Printf("[ERROR] Gagal menyimpan enrollment: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mendaftar ke course")
	}

	return helper.JsonCreated(c, "Berhasil mendaftar ke course", dto.ToEnrollmentResponse(&enrollment))
}

// ✅ GET /api/u/enrollments — daftar course milik user + judulnya
func (ctrl *EnrollmentController) GetMyEnrollments(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.EnrollmentModel{}).
		Where("enrollment_user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung enrollment")
	}

	var enrollments []model.EnrollmentModel
	if err := q.Order("enrollment_created_at desc").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&enrollments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil enrollment")
	}

	result := make([]dto.EnrollmentWithCourseResponse, 0, len(enrollments))
	for i := range enrollments {
		var course model.CourseModel
		ctrl.DB.Where("course_id = ?", enrollments[i].EnrollmentCourseID).First(&course)
		result = append(result, dto.EnrollmentWithCourseResponse{
			EnrollmentResponse: dto.ToEnrollmentResponse(&enrollments[i]),
			CourseTitle:        course.CourseTitle,
			CourseDescription:  course.CourseDescription,
		})
	}

	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "OK", result, &p)
}
