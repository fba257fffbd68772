package dto

import (
	"time"

	"github.com/google/uuid"

	"lentera_backend/internals/features/courses/courses/model"
)

type EnrollRequest struct {
	CourseID uuid.UUID `json:"course_id" validate:"required"`
}

type EnrollmentResponse struct {
	ID              uuid.UUID  `json:"enrollment_id"`
	CourseID        uuid.UUID  `json:"course_id"`
	UserID          uuid.UUID  `json:"user_id"`
	Status          string     `json:"status"`
	ProgressPercent int        `json:"progress_percent"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	EnrolledAt      time.Time  `json:"enrolled_at"`
}

type EnrollmentWithCourseResponse struct {
	EnrollmentResponse
	CourseTitle       string `json:"course_title"`
	CourseDescription string `json:"course_description"`
}

func ToEnrollmentResponse(m *model.EnrollmentModel) EnrollmentResponse {
	return EnrollmentResponse{
		ID:              m.EnrollmentID,
		CourseID:        m.EnrollmentCourseID,
		UserID:          m.EnrollmentUserID,
		Status:          m.EnrollmentStatus,
		ProgressPercent: m.EnrollmentProgressPercent,
		CompletedAt:     m.EnrollmentCompletedAt,
		EnrolledAt:      m.EnrollmentCreatedAt,
	}
}
