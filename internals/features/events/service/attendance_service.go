package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lentera_backend/internals/features/events/model"
	"lentera_backend/internals/realtime"
)

var (
	ErrEventNotFound        = errors.New("event tidak ditemukan")
	ErrAlreadyRegistered    = errors.New("sudah terdaftar di event ini")
	ErrEventFull            = errors.New("kapasitas event sudah penuh")
	ErrEventPast            = errors.New("event sudah lewat")
	ErrInvalidToken         = errors.New("scan token tidak valid untuk event ini")
	ErrAlreadyCheckedIn     = errors.New("registrasi sudah check-in")
	ErrRegistrationNotFound = errors.New("registrasi tidak ditemukan")
)

const MsgRegistrationUpdated = "registration.updated"

// NewScanToken: bearer secret acak 48 hex char. Tidak meng-embed identitas
// apa pun — kerahasiaan token yang menjaga jalur check-in, bukan strukturnya.
func NewScanToken() string {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		// darurat: fallback ke uuid (tetap unik, entropi lebih rendah)
		return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")[:48]
	}
	return hex.EncodeToString(b)
}

// Register: UNREGISTERED → REGISTERED.
// Precondition: belum terdaftar, event belum mulai, kapasitas belum penuh.
func Register(db *gorm.DB, hub *realtime.Hub, eventID, userID uuid.UUID, isCollaborator bool) (*model.EventRegistrationModel, error) {
	var event model.EventModel
	if err := db.First(&event, "event_id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if time.Now().After(event.EventStartsAt) {
		return nil, ErrEventPast
	}

	reg := model.EventRegistrationModel{
		EventRegistrationID:             uuid.New(),
		EventRegistrationEventID:        eventID,
		EventRegistrationUserID:         userID,
		EventRegistrationQRToken:        NewScanToken(),
		EventRegistrationIsCollaborator: isCollaborator,
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		var existing model.EventRegistrationModel
		err := tx.Where(
			"event_registration_event_id = ? AND event_registration_user_id = ?", eventID, userID,
		).First(&existing).Error
		if err == nil {
			return ErrAlreadyRegistered
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if event.EventMaxAttendees > 0 {
			var count int64
			if err := tx.Model(&model.EventRegistrationModel{}).
				Where("event_registration_event_id = ?", eventID).
				Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(event.EventMaxAttendees) {
				return ErrEventFull
			}
		}

		if err := tx.Create(&reg).Error; err != nil {
			// race dengan request kembar: unique index yang menang
			if isUniqueViolation(err) {
				return ErrAlreadyRegistered
			}
			return err
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	publishRegistration(hub, &reg)
	return &reg, nil
}

// CheckInByToken: REGISTERED → ATTENDED via token hasil scan.
// Lookup exact match DI-SCOPE event — token event lain tidak pernah cocok.
// Scan kedua untuk token yang sama dapat ErrAlreadyCheckedIn bersama record
// lama (attended_at asli tidak berubah).
func CheckInByToken(db *gorm.DB, hub *realtime.Hub, eventID uuid.UUID, token string) (*model.EventRegistrationModel, error) {
	var reg model.EventRegistrationModel
	if err := db.Where(
		"event_registration_event_id = ? AND event_registration_qr_token = ?", eventID, token,
	).First(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if reg.EventRegistrationIsAttended {
		return &reg, ErrAlreadyCheckedIn
	}

	now := time.Now()
	res := db.Model(&model.EventRegistrationModel{}).
		Where("event_registration_id = ? AND event_registration_is_attended = ?", reg.EventRegistrationID, false).
		Updates(map[string]interface{}{
			"event_registration_is_attended": true,
			"event_registration_attended_at": now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// double-tap / kamera dobel: writer lain keburu check-in duluan
		if err := db.First(&reg, "event_registration_id = ?", reg.EventRegistrationID).Error; err != nil {
			return nil, err
		}
		return &reg, ErrAlreadyCheckedIn
	}

	reg.EventRegistrationIsAttended = true
	reg.EventRegistrationAttendedAt = &now

	publishRegistration(hub, &reg)
	return &reg, nil
}

// SetAttendance: override manual organizer — satu-satunya jalur yang boleh
// menurunkan ATTENDED kembali ke REGISTERED.
func SetAttendance(db *gorm.DB, hub *realtime.Hub, registrationID uuid.UUID, attended bool) (*model.EventRegistrationModel, error) {
	var reg model.EventRegistrationModel
	if err := db.First(&reg, "event_registration_id = ?", registrationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}

	var attendedAt *time.Time
	if attended {
		now := time.Now()
		attendedAt = &now
	}

	if err := db.Model(&model.EventRegistrationModel{}).
		Where("event_registration_id = ?", registrationID).
		Updates(map[string]interface{}{
			"event_registration_is_attended": attended,
			"event_registration_attended_at": attendedAt,
		}).Error; err != nil {
		return nil, err
	}

	reg.EventRegistrationIsAttended = attended
	reg.EventRegistrationAttendedAt = attendedAt

	publishRegistration(hub, &reg)
	return &reg, nil
}

// AttendeeView: baris roster organizer (registrasi + display data user).
type AttendeeView struct {
	model.EventRegistrationModel
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

func ListAttendees(db *gorm.DB, eventID uuid.UUID) ([]AttendeeView, error) {
	var rows []AttendeeView
	err := db.Table("event_registrations").
		Select("event_registrations.*, users.user_name, users.user_email").
		Joins("LEFT JOIN users ON users.user_id = event_registrations.event_registration_user_id").
		Where("event_registrations.event_registration_event_id = ? AND event_registrations.event_registration_deleted_at IS NULL", eventID).
		Order("event_registrations.event_registration_registered_at asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// publishRegistration: fan-out realtime fire-and-forget relatif terhadap
// response caller — hub.Publish tidak pernah blocking.
func publishRegistration(hub *realtime.Hub, reg *model.EventRegistrationModel) {
	if hub == nil {
		return
	}
	hub.Publish(reg.EventRegistrationEventID.String(), realtime.Message{
		Type:    MsgRegistrationUpdated,
		Payload: reg,
	})
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
