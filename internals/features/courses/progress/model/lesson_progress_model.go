package model

import (
	"time"

	"github.com/google/uuid"
)

// LessonProgressModel: fakta penyelesaian per-lesson per-student.
// Maksimal SATU baris per (user, course, module, lesson) — ditegakkan lewat
// unique index komposit; penulisan selalu upsert (clause.OnConflict).
type LessonProgressModel struct {
	LessonProgressID       uuid.UUID `gorm:"column:lesson_progress_id;type:uuid;primaryKey" json:"lesson_progress_id"`
	LessonProgressUserID   uuid.UUID `gorm:"column:lesson_progress_user_id;type:uuid;not null;uniqueIndex:ux_lesson_progress_key" json:"lesson_progress_user_id"`
	LessonProgressCourseID uuid.UUID `gorm:"column:lesson_progress_course_id;type:uuid;not null;uniqueIndex:ux_lesson_progress_key;index" json:"lesson_progress_course_id"`
	LessonProgressModuleID uuid.UUID `gorm:"column:lesson_progress_module_id;type:uuid;not null;uniqueIndex:ux_lesson_progress_key" json:"lesson_progress_module_id"`
	LessonProgressLessonID uuid.UUID `gorm:"column:lesson_progress_lesson_id;type:uuid;not null;uniqueIndex:ux_lesson_progress_key" json:"lesson_progress_lesson_id"`

	// completed & completed_at selalu di-set bersamaan, tidak pernah terpisah
	LessonProgressCompleted   bool       `gorm:"column:lesson_progress_completed;not null;default:false" json:"lesson_progress_completed"`
	LessonProgressCompletedAt *time.Time `gorm:"column:lesson_progress_completed_at" json:"lesson_progress_completed_at,omitempty"`

	LessonProgressCreatedAt time.Time `gorm:"column:lesson_progress_created_at;autoCreateTime" json:"lesson_progress_created_at"`
	LessonProgressUpdatedAt time.Time `gorm:"column:lesson_progress_updated_at;autoUpdateTime" json:"lesson_progress_updated_at"`
}

func (LessonProgressModel) TableName() string {
	return "lesson_progress"
}
