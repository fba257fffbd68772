package dto

import (
	"time"

	"github.com/google/uuid"

	"lentera_backend/internals/features/events/model"
)

type RegisterEventRequest struct {
	IsCollaborator bool `json:"is_collaborator"`
}

type CheckInRequest struct {
	QRToken string `json:"qr_token" validate:"required"`
}

type SetAttendanceRequest struct {
	Attended *bool `json:"attended" validate:"required"`
}

type RegistrationResponse struct {
	ID             uuid.UUID  `json:"event_registration_id"`
	EventID        uuid.UUID  `json:"event_id"`
	UserID         uuid.UUID  `json:"user_id"`
	QRToken        string     `json:"qr_token,omitempty"` // hanya untuk pemilik registrasi
	IsCollaborator bool       `json:"is_collaborator"`
	IsAttended     bool       `json:"is_attended"`
	AttendedAt     *time.Time `json:"attended_at,omitempty"`
	RegisteredAt   time.Time  `json:"registered_at"`
}

// ToRegistrationResponse: includeToken=false untuk view organizer/roster —
// token adalah bearer secret milik registrant.
func ToRegistrationResponse(m *model.EventRegistrationModel, includeToken bool) RegistrationResponse {
	resp := RegistrationResponse{
		ID:             m.EventRegistrationID,
		EventID:        m.EventRegistrationEventID,
		UserID:         m.EventRegistrationUserID,
		IsCollaborator: m.EventRegistrationIsCollaborator,
		IsAttended:     m.EventRegistrationIsAttended,
		AttendedAt:     m.EventRegistrationAttendedAt,
		RegisteredAt:   m.EventRegistrationRegisteredAt,
	}
	if includeToken {
		resp.QRToken = m.EventRegistrationQRToken
	}
	return resp
}
