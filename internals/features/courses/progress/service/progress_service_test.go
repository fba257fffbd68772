package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	courseModel "lentera_backend/internals/features/courses/courses/model"
	"lentera_backend/internals/features/courses/progress/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&courseModel.CourseModel{},
		&courseModel.CourseModuleModel{},
		&courseModel.CourseLessonModel{},
		&courseModel.EnrollmentModel{},
		&model.LessonProgressModel{},
	))
	return db
}

// seedCourse membuat course + 1 modul + n lesson, plus enrollment aktif.
func seedCourse(t *testing.T, db *gorm.DB, userID uuid.UUID, lessons int) (uuid.UUID, uuid.UUID, []uuid.UUID) {
	t.Helper()
	courseID := uuid.New()
	require.NoError(t, db.Create(&courseModel.CourseModel{
		CourseID:          courseID,
		CourseTitle:       "Dasar-Dasar Go",
		CourseSlug:        "dasar-go-" + courseID.String()[:8],
		CourseIsPublished: true,
	}).Error)

	moduleID := uuid.New()
	require.NoError(t, db.Create(&courseModel.CourseModuleModel{
		CourseModuleID:       moduleID,
		CourseModuleCourseID: courseID,
		CourseModuleTitle:    "Modul 1",
	}).Error)

	lessonIDs := make([]uuid.UUID, 0, lessons)
	for i := 0; i < lessons; i++ {
		id := uuid.New()
		require.NoError(t, db.Create(&courseModel.CourseLessonModel{
			CourseLessonID:       id,
			CourseLessonModuleID: moduleID,
			CourseLessonCourseID: courseID,
			CourseLessonTitle:    "Lesson",
			CourseLessonOrder:    i,
		}).Error)
		lessonIDs = append(lessonIDs, id)
	}

	require.NoError(t, db.Create(&courseModel.EnrollmentModel{
		EnrollmentID:       uuid.New(),
		EnrollmentUserID:   userID,
		EnrollmentCourseID: courseID,
		EnrollmentStatus:   courseModel.EnrollmentStatusActive,
	}).Error)

	return courseID, moduleID, lessonIDs
}

func TestSetLessonCompletion_NotEnrolled(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()
	courseID, moduleID, lessonIDs := seedCourse(t, db, userID, 3)

	stranger := uuid.New()
	_, _, err := SetLessonCompletion(db, stranger, courseID, moduleID, lessonIDs[0], true)
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestSetLessonCompletion_PercentRounding(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()
	courseID, moduleID, lessonIDs := seedCourse(t, db, userID, 6)

	var stats ProgressStats
	var err error
	for i := 0; i < 4; i++ {
		_, stats, err = SetLessonCompletion(db, userID, courseID, moduleID, lessonIDs[i], true)
		require.NoError(t, err)
	}

	// 4/6 = 66.67% → dibulatkan ke 67
	assert.Equal(t, 6, stats.TotalLessons)
	assert.Equal(t, 4, stats.CompletedLesson)
	assert.Equal(t, 67, stats.ProgressPercent)
	assert.False(t, stats.CourseCompleted)
}

func TestSetLessonCompletion_CourseCompleted(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()
	courseID, moduleID, lessonIDs := seedCourse(t, db, userID, 3)

	var stats ProgressStats
	var err error
	for _, id := range lessonIDs {
		_, stats, err = SetLessonCompletion(db, userID, courseID, moduleID, id, true)
		require.NoError(t, err)
	}

	assert.Equal(t, 100, stats.ProgressPercent)
	assert.True(t, stats.CourseCompleted)
}

func TestSetLessonCompletion_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()
	courseID, moduleID, lessonIDs := seedCourse(t, db, userID, 3)

	first, stats1, err := SetLessonCompletion(db, userID, courseID, moduleID, lessonIDs[0], true)
	require.NoError(t, err)

	// Request ulang untuk lesson yang sama: tetap satu baris, id sama
	second, stats2, err := SetLessonCompletion(db, userID, courseID, moduleID, lessonIDs[0], true)
	require.NoError(t, err)

	assert.Equal(t, first.LessonProgressID, second.LessonProgressID)
	assert.Equal(t, stats1.CompletedLesson, stats2.CompletedLesson)

	var count int64
	require.NoError(t, db.Model(&model.LessonProgressModel{}).
		Where("lesson_progress_user_id = ? AND lesson_progress_course_id = ?", userID, courseID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSetLessonCompletion_Uncomplete(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()
	courseID, moduleID, lessonIDs := seedCourse(t, db, userID, 2)

	_, _, err := SetLessonCompletion(db, userID, courseID, moduleID, lessonIDs[0], true)
	require.NoError(t, err)

	row, stats, err := SetLessonCompletion(db, userID, courseID, moduleID, lessonIDs[0], false)
	require.NoError(t, err)

	assert.False(t, row.LessonProgressCompleted)
	assert.Nil(t, row.LessonProgressCompletedAt)
	assert.Equal(t, 0, stats.CompletedLesson)
	assert.Equal(t, 0, stats.ProgressPercent)
}

func TestGetProgress_ExcludesRemovedLessons(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()
	courseID, moduleID, lessonIDs := seedCourse(t, db, userID, 3)

	for _, id := range lessonIDs {
		_, _, err := SetLessonCompletion(db, userID, courseID, moduleID, id, true)
		require.NoError(t, err)
	}

	// Organizer menghapus satu lesson dari struktur course — baris progress
	// lama tidak boleh ikut dihitung di pembilang maupun penyebut.
	require.NoError(t, db.Unscoped().
		Delete(&courseModel.CourseLessonModel{}, "course_lesson_id = ?", lessonIDs[0]).Error)

	_, stats, err := GetProgress(db, userID, courseID)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalLessons)
	assert.Equal(t, 2, stats.CompletedLesson)
	assert.Equal(t, 100, stats.ProgressPercent)
	assert.LessOrEqual(t, stats.CompletedLesson, stats.TotalLessons)
}

func TestGetProgress_EmptyCourseStructure(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()
	courseID, moduleID, lessonIDs := seedCourse(t, db, userID, 1)

	_, _, err := SetLessonCompletion(db, userID, courseID, moduleID, lessonIDs[0], true)
	require.NoError(t, err)

	// Seluruh struktur hilang: fallback hitung dari baris progress mentah
	require.NoError(t, db.Unscoped().
		Delete(&courseModel.CourseLessonModel{}, "course_lesson_course_id = ?", courseID).Error)

	_, stats, err := GetProgress(db, userID, courseID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalLessons)
	assert.Equal(t, 1, stats.CompletedLesson)
	assert.Equal(t, 100, stats.ProgressPercent)
}

func TestGetProgress_NoRows(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()
	courseID, _, _ := seedCourse(t, db, userID, 4)

	records, stats, err := GetProgress(db, userID, courseID)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 4, stats.TotalLessons)
	assert.Equal(t, 0, stats.ProgressPercent)
	assert.False(t, stats.CourseCompleted)
}
