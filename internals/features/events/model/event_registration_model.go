package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventRegistrationModel: niat hadir seorang user di satu event, membawa
// scan token. Maksimal SATU registrasi per (event, user). is_attended
// monotonic di jalur scan — hanya toggle manual organizer yang bisa reset.
type EventRegistrationModel struct {
	EventRegistrationID      uuid.UUID `gorm:"column:event_registration_id;type:uuid;primaryKey" json:"event_registration_id"`
	EventRegistrationEventID uuid.UUID `gorm:"column:event_registration_event_id;type:uuid;not null;uniqueIndex:ux_event_registrations_event_user;index" json:"event_registration_event_id"`
	EventRegistrationUserID  uuid.UUID `gorm:"column:event_registration_user_id;type:uuid;not null;uniqueIndex:ux_event_registrations_event_user" json:"event_registration_user_id"`

	// Bearer secret: token acak high-entropy, lookup selalu exact match
	// scoped per event. Strukturnya tidak membawa makna apa pun.
	EventRegistrationQRToken string `gorm:"column:event_registration_qr_token;type:varchar(64);not null;uniqueIndex" json:"event_registration_qr_token"`

	EventRegistrationIsCollaborator bool       `gorm:"column:event_registration_is_collaborator;not null;default:false" json:"event_registration_is_collaborator"`
	EventRegistrationIsAttended     bool       `gorm:"column:event_registration_is_attended;not null;default:false" json:"event_registration_is_attended"`
	EventRegistrationAttendedAt     *time.Time `gorm:"column:event_registration_attended_at" json:"event_registration_attended_at,omitempty"`

	EventRegistrationRegisteredAt time.Time      `gorm:"column:event_registration_registered_at;autoCreateTime" json:"event_registration_registered_at"`
	EventRegistrationUpdatedAt    time.Time      `gorm:"column:event_registration_updated_at;autoUpdateTime" json:"event_registration_updated_at"`
	EventRegistrationDeletedAt    gorm.DeletedAt `gorm:"column:event_registration_deleted_at;index" json:"event_registration_deleted_at,omitempty"`
}

func (EventRegistrationModel) TableName() string {
	return "event_registrations"
}
