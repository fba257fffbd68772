package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseModel struct {
	CourseID          uuid.UUID `gorm:"column:course_id;type:uuid;primaryKey" json:"course_id"`
	CourseTitle       string    `gorm:"column:course_title;type:varchar(255);not null" json:"course_title"`
	CourseSlug        string    `gorm:"column:course_slug;type:varchar(100);not null;uniqueIndex" json:"course_slug"`
	CourseDescription string    `gorm:"column:course_description;type:text" json:"course_description"`
	CourseIsPublished bool      `gorm:"column:course_is_published;not null;default:false" json:"course_is_published"`

	CourseCreatedAt time.Time      `gorm:"column:course_created_at;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt time.Time      `gorm:"column:course_updated_at;autoUpdateTime" json:"course_updated_at"`
	CourseDeletedAt gorm.DeletedAt `gorm:"column:course_deleted_at;index" json:"course_deleted_at,omitempty"`
}

func (CourseModel) TableName() string {
	return "courses"
}

// CourseModuleModel: urutan modul di dalam course.
// ID modul/lesson stabil selama tidak dihapus — jadi denominator progress
// dihitung dari struktur ini, bukan dari baris progress.
type CourseModuleModel struct {
	CourseModuleID       uuid.UUID `gorm:"column:course_module_id;type:uuid;primaryKey" json:"course_module_id"`
	CourseModuleCourseID uuid.UUID `gorm:"column:course_module_course_id;type:uuid;not null;index" json:"course_module_course_id"`
	CourseModuleTitle    string    `gorm:"column:course_module_title;type:varchar(255);not null" json:"course_module_title"`
	CourseModuleOrder    int       `gorm:"column:course_module_order;not null;default:0" json:"course_module_order"`

	CourseModuleCreatedAt time.Time      `gorm:"column:course_module_created_at;autoCreateTime" json:"course_module_created_at"`
	CourseModuleUpdatedAt time.Time      `gorm:"column:course_module_updated_at;autoUpdateTime" json:"course_module_updated_at"`
	CourseModuleDeletedAt gorm.DeletedAt `gorm:"column:course_module_deleted_at;index" json:"course_module_deleted_at,omitempty"`
}

func (CourseModuleModel) TableName() string {
	return "course_modules"
}

type CourseLessonModel struct {
	CourseLessonID       uuid.UUID `gorm:"column:course_lesson_id;type:uuid;primaryKey" json:"course_lesson_id"`
	CourseLessonModuleID uuid.UUID `gorm:"column:course_lesson_module_id;type:uuid;not null;index" json:"course_lesson_module_id"`
	CourseLessonCourseID uuid.UUID `gorm:"column:course_lesson_course_id;type:uuid;not null;index" json:"course_lesson_course_id"`
	CourseLessonTitle    string    `gorm:"column:course_lesson_title;type:varchar(255);not null" json:"course_lesson_title"`
	CourseLessonOrder    int       `gorm:"column:course_lesson_order;not null;default:0" json:"course_lesson_order"`

	CourseLessonCreatedAt time.Time      `gorm:"column:course_lesson_created_at;autoCreateTime" json:"course_lesson_created_at"`
	CourseLessonUpdatedAt time.Time      `gorm:"column:course_lesson_updated_at;autoUpdateTime" json:"course_lesson_updated_at"`
	CourseLessonDeletedAt gorm.DeletedAt `gorm:"column:course_lesson_deleted_at;index" json:"course_lesson_deleted_at,omitempty"`
}

func (CourseLessonModel) TableName() string {
	return "course_lessons"
}
