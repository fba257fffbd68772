package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type EventModel struct {
	EventID          uuid.UUID `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id"`
	EventTitle       string    `gorm:"column:event_title;type:varchar(255);not null" json:"event_title"`
	EventSlug        string    `gorm:"column:event_slug;type:varchar(100);not null;uniqueIndex" json:"event_slug"`
	EventDescription string    `gorm:"column:event_description;type:text" json:"event_description"`
	EventLocation    string    `gorm:"column:event_location;type:varchar(255)" json:"event_location"`

	EventOrganizerID uuid.UUID      `gorm:"column:event_organizer_id;type:uuid;not null;index" json:"event_organizer_id"`
	EventStartsAt    time.Time      `gorm:"column:event_starts_at;not null" json:"event_starts_at"`
	EventTags        pq.StringArray `gorm:"column:event_tags;type:text[]" json:"event_tags,omitempty"`

	// 0 = tanpa batas kapasitas
	EventMaxAttendees int `gorm:"column:event_max_attendees;not null;default:0" json:"event_max_attendees"`

	EventCreatedAt time.Time      `gorm:"column:event_created_at;autoCreateTime" json:"event_created_at"`
	EventUpdatedAt time.Time      `gorm:"column:event_updated_at;autoUpdateTime" json:"event_updated_at"`
	EventDeletedAt gorm.DeletedAt `gorm:"column:event_deleted_at;index" json:"event_deleted_at,omitempty"`
}

func (EventModel) TableName() string {
	return "events"
}
