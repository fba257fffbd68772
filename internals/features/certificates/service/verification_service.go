package service

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lentera_backend/internals/features/certificates/model"
)

var ErrCertificateNotFound = errors.New("certificate tidak ditemukan")

// VerificationView: fakta yang boleh tampil di halaman verifikasi publik.
// Hanya bersumber dari snapshot metadata (fallback join live) — tidak pernah
// membocorkan identifier internal atau data student lain.
type VerificationView struct {
	ParticipantName   string     `json:"participant_name"`
	CourseName        string     `json:"course_name"`
	EventName         string     `json:"event_name,omitempty"`
	OrganizerName     string     `json:"organizer_name,omitempty"`
	IssueDate         time.Time  `json:"issue_date"`
	ExpiresAt         time.Time  `json:"expires_at"`
	CertificateNumber string     `json:"certificate_number"`
	QRImage           string     `json:"qr_image"`
	VerificationURL   string     `json:"verification_url"`
}

// Resolve menjalankan read path publik: nomor certificate → fakta verifikasi.
// Jalan tanpa session — akses data pakai handle service-level, bukan per-user.
func Resolve(db *gorm.DB, certificateNumber string) (*VerificationView, error) {
	var cert model.CertificateModel
	if err := db.First(&cert, "certificate_number = ?", certificateNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCertificateNotFound
		}
		return nil, err
	}

	var cred model.CredentialModel
	if err := db.First(&cred, "credential_id = ?", cert.CertificateCredentialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCertificateNotFound
		}
		return nil, err
	}

	var meta model.CredentialMetadata
	_ = json.Unmarshal(cred.CredentialMetadata, &meta)

	view := &VerificationView{
		ParticipantName:   meta.ParticipantName,
		CourseName:        meta.CourseTitle,
		EventName:         meta.EventTitle,
		OrganizerName:     meta.OrganizerName,
		IssueDate:         cert.CertificateIssuedAt,
		ExpiresAt:         cert.CertificateExpiresAt,
		CertificateNumber: cert.CertificateNumber,
		QRImage:           meta.QRImage,
		VerificationURL:   meta.VerificationURL,
	}

	// Fallback chain: snapshot dulu, join live kalau snapshot bolong
	// (record lama sebelum metadata ber-versi).
	if view.ParticipantName == "" {
		view.ParticipantName = pluckString(db, "users", "user_name", "user_id", cred.CredentialUserID)
	}
	if view.CourseName == "" {
		view.CourseName = pluckString(db, "courses", "course_title", "course_id", cred.CredentialCourseID)
	}
	if view.VerificationURL == "" {
		view.VerificationURL = meta.VerificationURL
	}

	// QR hilang dari cache → regenerate on the fly, jangan gagalkan read
	if view.QRImage == "" && view.VerificationURL != "" {
		if qr, err := GenerateQRDataURL(view.VerificationURL); err == nil {
			view.QRImage = qr
		} else {
			log.Printf("[WARNING] Gagal regenerate QR untuk %s: %v", certificateNumber, err)
		}
	}

	return view, nil
}

func pluckString(db *gorm.DB, table, column, keyColumn string, id uuid.UUID) string {
	var v string
	db.Table(table).Where(keyColumn+" = ?", id).Pluck(column, &v)
	return v
}
