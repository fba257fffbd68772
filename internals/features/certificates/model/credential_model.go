package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const CredentialStatusCompleted = "completed"

// CredentialModel ("microcredential"): catatan internal bahwa student
// menyelesaikan course. Maksimal SATU baris per (user, course) — penerbitan
// ulang selalu upsert, tidak pernah menduplikasi.
type CredentialModel struct {
	CredentialID       uuid.UUID `gorm:"column:credential_id;type:uuid;primaryKey" json:"credential_id"`
	CredentialUserID   uuid.UUID `gorm:"column:credential_user_id;type:uuid;not null;uniqueIndex:ux_credentials_user_course" json:"credential_user_id"`
	CredentialCourseID uuid.UUID `gorm:"column:credential_course_id;type:uuid;not null;uniqueIndex:ux_credentials_user_course" json:"credential_course_id"`
	CredentialStatus   string    `gorm:"column:credential_status;type:varchar(30);not null;default:'completed'" json:"credential_status"`

	CredentialIssuedAt  time.Time `gorm:"column:credential_issued_at;not null" json:"credential_issued_at"`
	CredentialExpiresAt time.Time `gorm:"column:credential_expires_at;not null" json:"credential_expires_at"`
	CredentialIsStale   bool      `gorm:"column:credential_is_stale;not null;default:false" json:"credential_is_stale"`

	// Snapshot denormalisasi saat penerbitan (lihat CredentialMetadata) —
	// halaman verifikasi publik tidak bergantung pada data course/profil live.
	CredentialMetadata datatypes.JSON `gorm:"column:credential_metadata;type:jsonb" json:"credential_metadata"`

	CredentialCreatedAt time.Time `gorm:"column:credential_created_at;autoCreateTime" json:"credential_created_at"`
	CredentialUpdatedAt time.Time `gorm:"column:credential_updated_at;autoUpdateTime" json:"credential_updated_at"`
}

func (CredentialModel) TableName() string {
	return "credentials"
}

// CredentialMetadata: dokumen snapshot ber-versi di kolom credential_metadata.
// Jangan tambah field tanpa menaikkan MetadataVersion.
type CredentialMetadata struct {
	Version         int        `json:"version"`
	ParticipantName string     `json:"participant_name"`
	CourseTitle     string     `json:"course_title"`
	EventID         *uuid.UUID `json:"event_id,omitempty"`
	EventTitle      string     `json:"event_title,omitempty"`
	OrganizerName   string     `json:"organizer_name,omitempty"`
	VerificationURL string     `json:"verification_url"`
	QRImage         string     `json:"qr_image,omitempty"` // data URL PNG
	Locale          string     `json:"locale,omitempty"`
}

const MetadataVersion = 1
