package dto

import (
	"time"

	"github.com/google/uuid"

	"lentera_backend/internals/features/courses/progress/model"
	"lentera_backend/internals/features/courses/progress/service"
)

// Request untuk menandai lesson selesai / belum selesai
type SetLessonCompletionRequest struct {
	ModuleID  uuid.UUID `json:"module_id" validate:"required"`
	LessonID  uuid.UUID `json:"lesson_id" validate:"required"`
	Completed *bool     `json:"completed"` // optional, default true
}

type LessonProgressResponse struct {
	ID          uuid.UUID  `json:"lesson_progress_id"`
	CourseID    uuid.UUID  `json:"course_id"`
	ModuleID    uuid.UUID  `json:"module_id"`
	LessonID    uuid.UUID  `json:"lesson_id"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type ProgressListResponse struct {
	Progress []LessonProgressResponse `json:"progress"`
	Stats    service.ProgressStats    `json:"stats"`
}

type ProgressWriteResponse struct {
	Progress LessonProgressResponse `json:"progress"`
	Stats    service.ProgressStats  `json:"stats"`
}

func ToLessonProgressResponse(m *model.LessonProgressModel) LessonProgressResponse {
	return LessonProgressResponse{
		ID:          m.LessonProgressID,
		CourseID:    m.LessonProgressCourseID,
		ModuleID:    m.LessonProgressModuleID,
		LessonID:    m.LessonProgressLessonID,
		Completed:   m.LessonProgressCompleted,
		CompletedAt: m.LessonProgressCompletedAt,
	}
}

func ToLessonProgressResponses(ms []model.LessonProgressModel) []LessonProgressResponse {
	out := make([]LessonProgressResponse, 0, len(ms))
	for i := range ms {
		out = append(out, ToLessonProgressResponse(&ms[i]))
	}
	return out
}
