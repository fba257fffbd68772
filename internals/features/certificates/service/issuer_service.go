package service

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lentera_backend/internals/configs"
	"lentera_backend/internals/features/certificates/model"
	courseModel "lentera_backend/internals/features/courses/courses/model"
	"lentera_backend/internals/services/mailer"
)

var (
	ErrEnrollmentNotFound = errors.New("enrollment tidak ditemukan untuk student ini")
	ErrCourseNotFound     = errors.New("course tidak ditemukan")
)

const credentialValidity = 365 * 24 * time.Hour

// EventContext: konteks event opsional yang ikut di-snapshot ke metadata.
type EventContext struct {
	EventID       uuid.UUID `json:"event_id"`
	EventTitle    string    `json:"event_title"`
	OrganizerName string    `json:"organizer_name"`
}

// IssueContext: data pemanggil yang ikut penerbitan.
type IssueContext struct {
	Locale       string
	StudentName  string
	StudentEmail string
	Event        *EventContext
}

// CertificateResult: hasil penerbitan / status query.
type CertificateResult struct {
	CertificateNumber string    `json:"certificate_number"`
	CredentialID      uuid.UUID `json:"credential_id"`
	VerificationURL   string    `json:"verification_url"`
	QRImage           string    `json:"qr_image"`
	IssuedAt          time.Time `json:"issued_at"`
	ExpiresAt         time.Time `json:"expires_at"`
}

// Issue menerbitkan (atau menerbitkan ulang) credential + certificate untuk
// (user, course). Aman dipanggil berulang: credential di-upsert pada key
// (user, course), certificate 1:1 pada credential id, dan nomor certificate
// dipertahankan kalau sudah pernah dicetak. Notifikasi email best-effort —
// gagal kirim hanya di-log, tidak pernah menggagalkan penerbitan.
func Issue(db *gorm.DB, sender mailer.Sender, userID, courseID, enrollmentID uuid.UUID, ictx IssueContext) (*CertificateResult, error) {
	var course courseModel.CourseModel
	if err := db.First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	var enrollment courseModel.EnrollmentModel
	if err := db.Where(
		"enrollment_id = ? AND enrollment_user_id = ? AND enrollment_course_id = ?",
		enrollmentID, userID, courseID,
	).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}

	now := time.Now()
	expiresAt := now.Add(credentialValidity)

	// Nomor dipertahankan kalau certificate sudah ada untuk credential ini.
	number := ""
	var existingCred model.CredentialModel
	err := db.Where(
		"credential_user_id = ? AND credential_course_id = ?", userID, courseID,
	).First(&existingCred).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil {
		var existingCert model.CertificateModel
		if cerr := db.First(&existingCert, "certificate_credential_id = ?", existingCred.CredentialID).Error; cerr == nil {
			number = existingCert.CertificateNumber
		} else if !errors.Is(cerr, gorm.ErrRecordNotFound) {
			return nil, cerr
		}
	}
	if number == "" {
		number = GenerateCertificateNumber()
	}

	verificationURL := fmt.Sprintf("%s/api/public/certificates/%s", configs.PublicBaseURL, number)
	qrImage, qrErr := GenerateQRDataURL(verificationURL)
	if qrErr != nil {
		// QR itu cache — kalau gagal dibuat, reader publik akan regenerate on the fly
		log.Printf("[ERROR] Gagal generate QR untuk %s: %v", number, qrErr)
	}

	participantName := ictx.StudentName
	if participantName == "" {
		participantName = lookupUserName(db, userID)
	}

	meta := model.CredentialMetadata{
		Version:         model.MetadataVersion,
		ParticipantName: participantName,
		CourseTitle:     course.CourseTitle,
		VerificationURL: verificationURL,
		QRImage:         qrImage,
		Locale:          ictx.Locale,
	}
	if ictx.Event != nil {
		id := ictx.Event.EventID
		meta.EventID = &id
		meta.EventTitle = ictx.Event.EventTitle
		meta.OrganizerName = ictx.Event.OrganizerName
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}

	var credentialID uuid.UUID
	txErr := db.Transaction(func(tx *gorm.DB) error {
		cred := model.CredentialModel{
			CredentialID:        uuid.New(),
			CredentialUserID:    userID,
			CredentialCourseID:  courseID,
			CredentialStatus:    model.CredentialStatusCompleted,
			CredentialIssuedAt:  now,
			CredentialExpiresAt: expiresAt,
			CredentialIsStale:   false,
			CredentialMetadata:  datatypes.JSON(metaJSON),
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "credential_user_id"},
				{Name: "credential_course_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"credential_status",
				"credential_issued_at",
				"credential_expires_at",
				"credential_is_stale",
				"credential_metadata",
				"credential_updated_at",
			}),
		}).Create(&cred).Error; err != nil {
			return err
		}

		// Ambil id efektif (id lama dipertahankan saat conflict)
		var saved model.CredentialModel
		if err := tx.Where(
			"credential_user_id = ? AND credential_course_id = ?", userID, courseID,
		).First(&saved).Error; err != nil {
			return err
		}
		credentialID = saved.CredentialID

		cert := model.CertificateModel{
			CertificateID:           uuid.New(),
			CertificateCredentialID: credentialID,
			CertificateNumber:       number,
			CertificateIssuedAt:     now,
			CertificateExpiresAt:    expiresAt,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "certificate_credential_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"certificate_issued_at",
				"certificate_expires_at",
				"certificate_updated_at",
			}),
		}).Create(&cert).Error; err != nil {
			return err
		}

		// Mirror denormalisasi di enrollment (bukan source of truth)
		return tx.Model(&courseModel.EnrollmentModel{}).
			Where("enrollment_id = ?", enrollmentID).
			Updates(map[string]interface{}{
				"enrollment_status":           courseModel.EnrollmentStatusCompleted,
				"enrollment_progress_percent": 100,
				"enrollment_completed_at":     now,
			}).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	// Notifikasi best-effort — certificate + halaman verifikasi yang jadi
	// source of truth, bukan emailnya.
	if ictx.StudentEmail != "" && sender != nil {
		notifyIssued(sender, ictx.StudentEmail, participantName, course.CourseTitle, number, verificationURL)
	}

	return &CertificateResult{
		CertificateNumber: number,
		CredentialID:      credentialID,
		VerificationURL:   verificationURL,
		QRImage:           qrImage,
		IssuedAt:          now,
		ExpiresAt:         expiresAt,
	}, nil
}

// GetStatus membaca pasangan credential/certificate tanpa mutasi apa pun.
// Mengembalikan nil kalau belum pernah diterbitkan.
func GetStatus(db *gorm.DB, userID, courseID uuid.UUID) (*CertificateResult, error) {
	var cred model.CredentialModel
	if err := db.Where(
		"credential_user_id = ? AND credential_course_id = ?", userID, courseID,
	).First(&cred).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var cert model.CertificateModel
	if err := db.First(&cert, "certificate_credential_id = ?", cred.CredentialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var meta model.CredentialMetadata
	_ = json.Unmarshal(cred.CredentialMetadata, &meta)

	return &CertificateResult{
		CertificateNumber: cert.CertificateNumber,
		CredentialID:      cred.CredentialID,
		VerificationURL:   meta.VerificationURL,
		QRImage:           meta.QRImage,
		IssuedAt:          cert.CertificateIssuedAt,
		ExpiresAt:         cert.CertificateExpiresAt,
	}, nil
}

// GenerateCertificateNumber: PREFIX-<epochMillis>-<9 char base36>.
func GenerateCertificateNumber() string {
	return fmt.Sprintf("%s-%d-%s", configs.CertNumberPrefix, time.Now().UnixMilli(), randBase36(9))
}

const base36Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func randBase36(n int) string {
	out := make([]byte, n)
	max := big.NewInt(int64(len(base36Chars)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand hampir mustahil gagal; fallback ke huruf pertama
			out[i] = base36Chars[0]
			continue
		}
		out[i] = base36Chars[idx.Int64()]
	}
	return string(out)
}

func lookupUserName(db *gorm.DB, userID uuid.UUID) string {
	var name string
	db.Table("users").Where("user_id = ?", userID).Pluck("user_name", &name)
	return name
}

func notifyIssued(sender mailer.Sender, email, name, courseTitle, number, url string) {
	msg := mailer.Message{
		ToName:    name,
		ToAddress: email,
		Subject:   "Sertifikat Anda sudah terbit 🎉",
		TextBody: fmt.Sprintf(
			"Halo %s,\n\nSelamat! Sertifikat untuk course %q sudah terbit.\nNomor: %s\nVerifikasi: %s\n",
			name, courseTitle, number, url,
		),
		HTMLBody: fmt.Sprintf(
			"<p>Halo %s,</p><p>Selamat! Sertifikat untuk course <b>%s</b> sudah terbit.</p><p>Nomor: <b>%s</b><br>Verifikasi: <a href=%q>%s</a></p>",
			name, courseTitle, number, url, url,
		),
	}
	if err := sender.Send(msg); err != nil {
		log.Printf("[WARNING] Gagal kirim notifikasi sertifikat %s: %v", number, err)
	}
}
