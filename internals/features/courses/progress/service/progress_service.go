package service

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	courseModel "lentera_backend/internals/features/courses/courses/model"
	"lentera_backend/internals/features/courses/progress/model"
)

var (
	ErrNotEnrolled    = errors.New("student tidak terdaftar di course ini")
	ErrCourseNotFound = errors.New("course tidak ditemukan")
)

// ProgressStats: agregat yang dikembalikan ke course viewer.
type ProgressStats struct {
	TotalLessons    int  `json:"total_lessons"`
	CompletedLesson int  `json:"completed_lessons"`
	ProgressPercent int  `json:"progress_percent"`
	CourseCompleted bool `json:"course_completed"`
}

// GetProgress mengambil semua baris progress milik (user, course) + statistiknya.
func GetProgress(db *gorm.DB, userID, courseID uuid.UUID) ([]model.LessonProgressModel, ProgressStats, error) {
	var records []model.LessonProgressModel
	if err := db.
		Where("lesson_progress_user_id = ? AND lesson_progress_course_id = ?", userID, courseID).
		Order("lesson_progress_created_at asc").
		Find(&records).Error; err != nil {
		return nil, ProgressStats{}, err
	}

	stats, err := computeStats(db, courseID, records)
	if err != nil {
		return nil, ProgressStats{}, err
	}
	return records, stats, nil
}

// SetLessonCompletion meng-upsert satu baris progress lalu menghitung ulang stats.
// Precondition: enrollment aktif harus ada (ErrNotEnrolled kalau tidak).
// completed & completed_at selalu ditulis bersamaan.
func SetLessonCompletion(db *gorm.DB, userID, courseID, moduleID, lessonID uuid.UUID, completed bool) (*model.LessonProgressModel, ProgressStats, error) {
	var enrollment courseModel.EnrollmentModel
	if err := db.
		Where("enrollment_user_id = ? AND enrollment_course_id = ?", userID, courseID).
		First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ProgressStats{}, ErrNotEnrolled
		}
		return nil, ProgressStats{}, err
	}

	var completedAt *time.Time
	if completed {
		now := time.Now()
		completedAt = &now
	}

	row := model.LessonProgressModel{
		LessonProgressID:          uuid.New(),
		LessonProgressUserID:      userID,
		LessonProgressCourseID:    courseID,
		LessonProgressModuleID:    moduleID,
		LessonProgressLessonID:    lessonID,
		LessonProgressCompleted:   completed,
		LessonProgressCompletedAt: completedAt,
	}

	// Upsert pada key komposit — dua request konkuren untuk key yang sama
	// berakhir last-write-wins, tanpa baris ganda.
	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "lesson_progress_user_id"},
			{Name: "lesson_progress_course_id"},
			{Name: "lesson_progress_module_id"},
			{Name: "lesson_progress_lesson_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"lesson_progress_completed",
			"lesson_progress_completed_at",
			"lesson_progress_updated_at",
		}),
	}).Create(&row).Error; err != nil {
		return nil, ProgressStats{}, err
	}

	// Baca balik baris efektif (id lama dipertahankan saat conflict)
	var saved model.LessonProgressModel
	if err := db.Where(
		"lesson_progress_user_id = ? AND lesson_progress_course_id = ? AND lesson_progress_module_id = ? AND lesson_progress_lesson_id = ?",
		userID, courseID, moduleID, lessonID,
	).First(&saved).Error; err != nil {
		return nil, ProgressStats{}, err
	}

	var records []model.LessonProgressModel
	if err := db.
		Where("lesson_progress_user_id = ? AND lesson_progress_course_id = ?", userID, courseID).
		Find(&records).Error; err != nil {
		return nil, ProgressStats{}, err
	}

	stats, err := computeStats(db, courseID, records)
	if err != nil {
		return nil, ProgressStats{}, err
	}
	return &saved, stats, nil
}

// computeStats: denominator = jumlah lesson di struktur course (authoritative).
// Baris progress untuk lesson yang sudah dihapus dari course TIDAK dihitung,
// baik di pembilang maupun penyebut. Kalau struktur course kosong, fallback
// degenerate: hitung dari baris progress mentah.
func computeStats(db *gorm.DB, courseID uuid.UUID, records []model.LessonProgressModel) (ProgressStats, error) {
	var lessonIDs []uuid.UUID
	if err := db.Model(&courseModel.CourseLessonModel{}).
		Where("course_lesson_course_id = ?", courseID).
		Pluck("course_lesson_id", &lessonIDs).Error; err != nil {
		return ProgressStats{}, err
	}

	var total, completed int
	if len(lessonIDs) > 0 {
		known := make(map[uuid.UUID]struct{}, len(lessonIDs))
		for _, id := range lessonIDs {
			known[id] = struct{}{}
		}
		total = len(lessonIDs)
		for i := range records {
			if _, ok := known[records[i].LessonProgressLessonID]; ok && records[i].LessonProgressCompleted {
				completed++
			}
		}
	} else {
		// degenerate: course tanpa struktur konten
		total = len(records)
		for i := range records {
			if records[i].LessonProgressCompleted {
				completed++
			}
		}
	}

	pct := 0
	if total > 0 {
		pct = int(math.Round(100 * float64(completed) / float64(total)))
	}

	return ProgressStats{
		TotalLessons:    total,
		CompletedLesson: completed,
		ProgressPercent: pct,
		CourseCompleted: pct >= 100,
	}, nil
}
