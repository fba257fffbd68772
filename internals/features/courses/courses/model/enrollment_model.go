package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EnrollmentStatusActive    = "active"
	EnrollmentStatusCompleted = "completed"
)

// EnrollmentModel: mirror denormalisasi partisipasi student di course.
// completed_at & progress_percent diisi ulang dari progress stats — bukan source of truth.
type EnrollmentModel struct {
	EnrollmentID       uuid.UUID `gorm:"column:enrollment_id;type:uuid;primaryKey" json:"enrollment_id"`
	EnrollmentUserID   uuid.UUID `gorm:"column:enrollment_user_id;type:uuid;not null;uniqueIndex:ux_enrollments_user_course" json:"enrollment_user_id"`
	EnrollmentCourseID uuid.UUID `gorm:"column:enrollment_course_id;type:uuid;not null;uniqueIndex:ux_enrollments_user_course" json:"enrollment_course_id"`
	EnrollmentStatus   string    `gorm:"column:enrollment_status;type:varchar(30);not null;default:'active'" json:"enrollment_status"`

	EnrollmentProgressPercent int        `gorm:"column:enrollment_progress_percent;not null;default:0" json:"enrollment_progress_percent"`
	EnrollmentCompletedAt     *time.Time `gorm:"column:enrollment_completed_at" json:"enrollment_completed_at,omitempty"`

	EnrollmentCreatedAt time.Time      `gorm:"column:enrollment_created_at;autoCreateTime" json:"enrollment_created_at"`
	EnrollmentUpdatedAt time.Time      `gorm:"column:enrollment_updated_at;autoUpdateTime" json:"enrollment_updated_at"`
	EnrollmentDeletedAt gorm.DeletedAt `gorm:"column:enrollment_deleted_at;index" json:"enrollment_deleted_at,omitempty"`
}

func (EnrollmentModel) TableName() string {
	return "enrollments"
}
