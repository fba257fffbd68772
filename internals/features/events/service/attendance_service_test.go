package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lentera_backend/internals/features/events/model"
	userModel "lentera_backend/internals/features/users/model"
	"lentera_backend/internals/realtime"
)

func setupEventDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&model.EventModel{},
		&model.EventRegistrationModel{},
	))
	return db
}

func seedEvent(t *testing.T, db *gorm.DB, startsAt time.Time, maxAttendees int) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Create(&model.EventModel{
		EventID:           id,
		EventTitle:        "Seminar Nasional",
		EventSlug:         "seminar-" + id.String()[:8],
		EventOrganizerID:  uuid.New(),
		EventStartsAt:     startsAt,
		EventMaxAttendees: maxAttendees,
	}).Error)
	return id
}

func TestNewScanToken(t *testing.T) {
	a := NewScanToken()
	b := NewScanToken()
	assert.Len(t, a, 48)
	assert.Len(t, b, 48)
	assert.NotEqual(t, a, b)
	// Token tidak membawa identitas apa pun
	assert.NotContains(t, a, "EVENT")
	assert.NotContains(t, a, "USER")
}

func TestRegister_HappyPath(t *testing.T) {
	db := setupEventDB(t)
	eventID := seedEvent(t, db, time.Now().Add(24*time.Hour), 0)
	userID := uuid.New()

	reg, err := Register(db, nil, eventID, userID, false)
	require.NoError(t, err)

	assert.Equal(t, eventID, reg.EventRegistrationEventID)
	assert.Equal(t, userID, reg.EventRegistrationUserID)
	assert.Len(t, reg.EventRegistrationQRToken, 48)
	assert.False(t, reg.EventRegistrationIsAttended)
	assert.Nil(t, reg.EventRegistrationAttendedAt)
}

func TestRegister_Duplicate(t *testing.T) {
	db := setupEventDB(t)
	eventID := seedEvent(t, db, time.Now().Add(24*time.Hour), 0)
	userID := uuid.New()

	_, err := Register(db, nil, eventID, userID, false)
	require.NoError(t, err)

	_, err = Register(db, nil, eventID, userID, false)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	var count int64
	require.NoError(t, db.Model(&model.EventRegistrationModel{}).
		Where("event_registration_event_id = ?", eventID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRegister_EventFull(t *testing.T) {
	db := setupEventDB(t)
	eventID := seedEvent(t, db, time.Now().Add(24*time.Hour), 2)

	_, err := Register(db, nil, eventID, uuid.New(), false)
	require.NoError(t, err)
	_, err = Register(db, nil, eventID, uuid.New(), false)
	require.NoError(t, err)

	_, err = Register(db, nil, eventID, uuid.New(), false)
	assert.ErrorIs(t, err, ErrEventFull)
}

func TestRegister_EventPast(t *testing.T) {
	db := setupEventDB(t)
	eventID := seedEvent(t, db, time.Now().Add(-1*time.Hour), 0)

	_, err := Register(db, nil, eventID, uuid.New(), false)
	assert.ErrorIs(t, err, ErrEventPast)
}

func TestRegister_EventNotFound(t *testing.T) {
	db := setupEventDB(t)
	_, err := Register(db, nil, uuid.New(), uuid.New(), false)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestCheckInByToken(t *testing.T) {
	db := setupEventDB(t)
	eventID := seedEvent(t, db, time.Now().Add(24*time.Hour), 0)

	reg, err := Register(db, nil, eventID, uuid.New(), false)
	require.NoError(t, err)

	checked, err := CheckInByToken(db, nil, eventID, reg.EventRegistrationQRToken)
	require.NoError(t, err)
	assert.True(t, checked.EventRegistrationIsAttended)
	require.NotNil(t, checked.EventRegistrationAttendedAt)
	firstAttendedAt := *checked.EventRegistrationAttendedAt

	// Scan kedua: ErrAlreadyCheckedIn + record lama dengan attended_at asli
	again, err := CheckInByToken(db, nil, eventID, reg.EventRegistrationQRToken)
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
	require.NotNil(t, again)
	assert.True(t, again.EventRegistrationIsAttended)
	require.NotNil(t, again.EventRegistrationAttendedAt)
	assert.WithinDuration(t, firstAttendedAt, *again.EventRegistrationAttendedAt, time.Second)
}

func TestCheckInByToken_InvalidToken(t *testing.T) {
	db := setupEventDB(t)
	eventID := seedEvent(t, db, time.Now().Add(24*time.Hour), 0)

	_, err := CheckInByToken(db, nil, eventID, "bukan-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCheckInByToken_ScopedPerEvent(t *testing.T) {
	db := setupEventDB(t)
	eventA := seedEvent(t, db, time.Now().Add(24*time.Hour), 0)
	eventB := seedEvent(t, db, time.Now().Add(24*time.Hour), 0)

	reg, err := Register(db, nil, eventA, uuid.New(), false)
	require.NoError(t, err)

	// Token event A tidak pernah valid untuk event B
	_, err = CheckInByToken(db, nil, eventB, reg.EventRegistrationQRToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// ...dan registrasi A tetap belum check-in
	var fresh model.EventRegistrationModel
	require.NoError(t, db.First(&fresh, "event_registration_id = ?", reg.EventRegistrationID).Error)
	assert.False(t, fresh.EventRegistrationIsAttended)
}

func TestSetAttendance_ManualOverride(t *testing.T) {
	db := setupEventDB(t)
	eventID := seedEvent(t, db, time.Now().Add(24*time.Hour), 0)

	reg, err := Register(db, nil, eventID, uuid.New(), false)
	require.NoError(t, err)

	// Organizer set hadir tanpa scan
	set, err := SetAttendance(db, nil, reg.EventRegistrationID, true)
	require.NoError(t, err)
	assert.True(t, set.EventRegistrationIsAttended)
	assert.NotNil(t, set.EventRegistrationAttendedAt)

	// ...lalu koreksi kembali ke belum hadir
	unset, err := SetAttendance(db, nil, reg.EventRegistrationID, false)
	require.NoError(t, err)
	assert.False(t, unset.EventRegistrationIsAttended)
	assert.Nil(t, unset.EventRegistrationAttendedAt)

	var fresh model.EventRegistrationModel
	require.NoError(t, db.First(&fresh, "event_registration_id = ?", reg.EventRegistrationID).Error)
	assert.False(t, fresh.EventRegistrationIsAttended)
	assert.Nil(t, fresh.EventRegistrationAttendedAt)
}

func TestSetAttendance_NotFound(t *testing.T) {
	db := setupEventDB(t)
	_, err := SetAttendance(db, nil, uuid.New(), true)
	assert.ErrorIs(t, err, ErrRegistrationNotFound)
}

func TestListAttendees(t *testing.T) {
	db := setupEventDB(t)
	eventID := seedEvent(t, db, time.Now().Add(24*time.Hour), 0)

	userID := uuid.New()
	require.NoError(t, db.Create(&userModel.UserModel{
		UserID:       userID,
		UserName:     "Budi",
		UserEmail:    "budi@example.com",
		UserRole:     "user",
		UserIsActive: true,
	}).Error)

	_, err := Register(db, nil, eventID, userID, false)
	require.NoError(t, err)
	_, err = Register(db, nil, eventID, uuid.New(), true)
	require.NoError(t, err)

	rows, err := ListAttendees(db, eventID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Budi", rows[0].UserName)
	assert.True(t, rows[1].EventRegistrationIsCollaborator)
}

func TestCheckIn_PublishesToHub(t *testing.T) {
	db := setupEventDB(t)
	eventID := seedEvent(t, db, time.Now().Add(24*time.Hour), 0)
	hub := realtime.NewHub()

	sub := hub.Subscribe(eventID.String())
	defer hub.Unsubscribe(sub)

	reg, err := Register(db, hub, eventID, uuid.New(), false)
	require.NoError(t, err)

	msg := <-sub.C
	assert.Equal(t, MsgRegistrationUpdated, msg.Type)
	assert.Equal(t, eventID.String(), msg.Topic)

	_, err = CheckInByToken(db, hub, eventID, reg.EventRegistrationQRToken)
	require.NoError(t, err)

	msg = <-sub.C
	payload, ok := msg.Payload.(*model.EventRegistrationModel)
	require.True(t, ok)
	assert.True(t, payload.EventRegistrationIsAttended)
}
