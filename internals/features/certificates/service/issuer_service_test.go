package service

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lentera_backend/internals/configs"
	"lentera_backend/internals/features/certificates/model"
	courseModel "lentera_backend/internals/features/courses/courses/model"
	userModel "lentera_backend/internals/features/users/model"
	"lentera_backend/internals/services/mailer"
)

func setupIssuerDB(t *testing.T) *gorm.DB {
	t.Helper()
	configs.PublicBaseURL = "http://localhost:3000"
	configs.CertNumberPrefix = "LENTERA"

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&courseModel.CourseModel{},
		&courseModel.EnrollmentModel{},
		&model.CredentialModel{},
		&model.CertificateModel{},
	))
	return db
}

func seedEnrollment(t *testing.T, db *gorm.DB) (userID, courseID, enrollmentID uuid.UUID) {
	t.Helper()
	userID = uuid.New()
	require.NoError(t, db.Create(&userModel.UserModel{
		UserID:       userID,
		UserName:     "Siti Rahma",
		UserEmail:    "siti-" + userID.String()[:8] + "@example.com",
		UserRole:     "user",
		UserIsActive: true,
	}).Error)

	courseID = uuid.New()
	require.NoError(t, db.Create(&courseModel.CourseModel{
		CourseID:          courseID,
		CourseTitle:       "Pemrograman Backend",
		CourseSlug:        "backend-" + courseID.String()[:8],
		CourseIsPublished: true,
	}).Error)

	enrollmentID = uuid.New()
	require.NoError(t, db.Create(&courseModel.EnrollmentModel{
		EnrollmentID:       enrollmentID,
		EnrollmentUserID:   userID,
		EnrollmentCourseID: courseID,
		EnrollmentStatus:   courseModel.EnrollmentStatusActive,
	}).Error)
	return userID, courseID, enrollmentID
}

func TestIssue_CreatesCredentialAndCertificate(t *testing.T) {
	db := setupIssuerDB(t)
	userID, courseID, enrollmentID := seedEnrollment(t, db)
	sender := mailer.NewDummySender()

	res, err := Issue(db, sender, userID, courseID, enrollmentID, IssueContext{
		StudentName:  "Siti Rahma",
		StudentEmail: "siti@example.com",
		Locale:       "id",
	})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^LENTERA-\d+-[0-9A-Z]{9}$`), res.CertificateNumber)
	assert.Contains(t, res.VerificationURL, "/api/public/certificates/"+res.CertificateNumber)
	assert.True(t, res.ExpiresAt.After(res.IssuedAt))

	var cred model.CredentialModel
	require.NoError(t, db.First(&cred, "credential_user_id = ?", userID).Error)
	assert.Equal(t, model.CredentialStatusCompleted, cred.CredentialStatus)
	assert.False(t, cred.CredentialIsStale)

	var meta model.CredentialMetadata
	require.NoError(t, json.Unmarshal(cred.CredentialMetadata, &meta))
	assert.Equal(t, model.MetadataVersion, meta.Version)
	assert.Equal(t, "Siti Rahma", meta.ParticipantName)
	assert.Equal(t, "Pemrograman Backend", meta.CourseTitle)
	assert.Equal(t, res.VerificationURL, meta.VerificationURL)

	// Mirror enrollment ikut ter-update
	var enr courseModel.EnrollmentModel
	require.NoError(t, db.First(&enr, "enrollment_id = ?", enrollmentID).Error)
	assert.Equal(t, courseModel.EnrollmentStatusCompleted, enr.EnrollmentStatus)
	assert.Equal(t, 100, enr.EnrollmentProgressPercent)
	assert.NotNil(t, enr.EnrollmentCompletedAt)

	assert.Equal(t, 1, sender.SentCount())
}

func TestIssue_IdempotentPreservesNumber(t *testing.T) {
	db := setupIssuerDB(t)
	userID, courseID, enrollmentID := seedEnrollment(t, db)

	first, err := Issue(db, nil, userID, courseID, enrollmentID, IssueContext{StudentName: "Siti"})
	require.NoError(t, err)

	second, err := Issue(db, nil, userID, courseID, enrollmentID, IssueContext{StudentName: "Siti"})
	require.NoError(t, err)

	// Nomor dicetak sekali, credential id stabil, tidak ada baris ganda
	assert.Equal(t, first.CertificateNumber, second.CertificateNumber)
	assert.Equal(t, first.CredentialID, second.CredentialID)

	var credCount, certCount int64
	require.NoError(t, db.Model(&model.CredentialModel{}).Count(&credCount).Error)
	require.NoError(t, db.Model(&model.CertificateModel{}).Count(&certCount).Error)
	assert.EqualValues(t, 1, credCount)
	assert.EqualValues(t, 1, certCount)
}

func TestIssue_EnrollmentNotFound(t *testing.T) {
	db := setupIssuerDB(t)
	userID, courseID, _ := seedEnrollment(t, db)

	_, err := Issue(db, nil, userID, courseID, uuid.New(), IssueContext{})
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
}

func TestIssue_CourseNotFound(t *testing.T) {
	db := setupIssuerDB(t)
	_, err := Issue(db, nil, uuid.New(), uuid.New(), uuid.New(), IssueContext{})
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestIssue_WrongOwner(t *testing.T) {
	db := setupIssuerDB(t)
	_, courseID, enrollmentID := seedEnrollment(t, db)

	// Enrollment orang lain tidak bisa dipakai untuk menerbitkan
	_, err := Issue(db, nil, uuid.New(), courseID, enrollmentID, IssueContext{})
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
}

func TestIssue_EmailFailureDoesNotFailIssuance(t *testing.T) {
	db := setupIssuerDB(t)
	userID, courseID, enrollmentID := seedEnrollment(t, db)

	sender := mailer.NewDummySender()
	sender.FailNext = true

	res, err := Issue(db, sender, userID, courseID, enrollmentID, IssueContext{
		StudentName:  "Siti",
		StudentEmail: "siti@example.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.CertificateNumber)
	assert.Equal(t, 0, sender.SentCount())

	// Credential & certificate tetap tersimpan walau email gagal
	var certCount int64
	require.NoError(t, db.Model(&model.CertificateModel{}).Count(&certCount).Error)
	assert.EqualValues(t, 1, certCount)
}

func TestIssue_EventContextSnapshot(t *testing.T) {
	db := setupIssuerDB(t)
	userID, courseID, enrollmentID := seedEnrollment(t, db)

	eventID := uuid.New()
	_, err := Issue(db, nil, userID, courseID, enrollmentID, IssueContext{
		StudentName: "Siti",
		Event: &EventContext{
			EventID:       eventID,
			EventTitle:    "Workshop Go Nasional",
			OrganizerName: "Komunitas Go Indonesia",
		},
	})
	require.NoError(t, err)

	var cred model.CredentialModel
	require.NoError(t, db.First(&cred, "credential_user_id = ?", userID).Error)

	var meta model.CredentialMetadata
	require.NoError(t, json.Unmarshal(cred.CredentialMetadata, &meta))
	require.NotNil(t, meta.EventID)
	assert.Equal(t, eventID, *meta.EventID)
	assert.Equal(t, "Workshop Go Nasional", meta.EventTitle)
	assert.Equal(t, "Komunitas Go Indonesia", meta.OrganizerName)
}

func TestGetStatus(t *testing.T) {
	db := setupIssuerDB(t)
	userID, courseID, enrollmentID := seedEnrollment(t, db)

	// Belum pernah terbit → nil tanpa error
	res, err := GetStatus(db, userID, courseID)
	require.NoError(t, err)
	assert.Nil(t, res)

	issued, err := Issue(db, nil, userID, courseID, enrollmentID, IssueContext{StudentName: "Siti"})
	require.NoError(t, err)

	res, err = GetStatus(db, userID, courseID)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, issued.CertificateNumber, res.CertificateNumber)
	assert.Equal(t, issued.CredentialID, res.CredentialID)
	assert.Equal(t, issued.VerificationURL, res.VerificationURL)
}

func TestGenerateCertificateNumber_Format(t *testing.T) {
	configs.CertNumberPrefix = "LENTERA"
	re := regexp.MustCompile(`^LENTERA-\d+-[0-9A-Z]{9}$`)
	seen := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		n := GenerateCertificateNumber()
		assert.Regexp(t, re, n)
		_, dup := seen[n]
		assert.False(t, dup, "nomor harus unik: %s", n)
		seen[n] = struct{}{}
	}
}
