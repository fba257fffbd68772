package dto

import (
	"github.com/google/uuid"

	"lentera_backend/internals/features/certificates/service"
)

type GenerateCertificateRequest struct {
	CourseID     uuid.UUID             `json:"course_id" validate:"required"`
	EnrollmentID uuid.UUID             `json:"enrollment_id" validate:"required"`
	Locale       string                `json:"locale"`
	StudentName  string                `json:"student_name"`
	StudentEmail string                `json:"student_email" validate:"omitempty,email"`
	EventContext *EventContextRequest  `json:"event_context"`
}

type EventContextRequest struct {
	EventID       uuid.UUID `json:"event_id" validate:"required"`
	EventTitle    string    `json:"event_title"`
	OrganizerName string    `json:"organizer_name"`
}

func (r *GenerateCertificateRequest) ToIssueContext() service.IssueContext {
	ictx := service.IssueContext{
		Locale:       r.Locale,
		StudentName:  r.StudentName,
		StudentEmail: r.StudentEmail,
	}
	if r.EventContext != nil {
		ictx.Event = &service.EventContext{
			EventID:       r.EventContext.EventID,
			EventTitle:    r.EventContext.EventTitle,
			OrganizerName: r.EventContext.OrganizerName,
		}
	}
	return ictx
}
