package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(AllModels()...))
	return db
}

func TestSessionJSONColumnsRoundTrip(t *testing.T) {
	db := openTestDB(t)

	withSalon := Session{
		UserID:      "u1",
		SealedToken: "sealed",
		UserData:    datatypes.NewJSONType(User{ID: "u1", Name: "Olivia", Role: RoleOwner}),
		SalonData:   datatypes.NewJSONType(&Salon{ID: "s1", Name: "Glow", Phone: "+15550001"}),
		ExpiresAt:   time.Now().Add(time.Hour),
	}
	noSalon := Session{
		UserID:      "u2",
		SealedToken: "sealed",
		UserData:    datatypes.NewJSONType(User{ID: "u2", Name: "Sam", Role: RoleOwner}),
		SalonData:   datatypes.NewJSONType[*Salon](nil),
		ExpiresAt:   time.Now().Add(time.Hour),
	}
	require.NoError(t, db.Create(&withSalon).Error)
	require.NoError(t, db.Create(&noSalon).Error)

	var loaded Session
	require.NoError(t, db.First(&loaded, "id = ?", withSalon.ID).Error)
	assert.Equal(t, "Olivia", loaded.User().Name)
	require.NotNil(t, loaded.Salon())
	assert.Equal(t, "+15550001", loaded.Salon().Phone)

	loaded = Session{}
	require.NoError(t, db.First(&loaded, "id = ?", noSalon.ID).Error)
	assert.Equal(t, "Sam", loaded.User().Name)
	assert.Nil(t, loaded.Salon())
}

func TestBookingDraftSlotsRoundTrip(t *testing.T) {
	db := openTestDB(t)

	draft := BookingDraft{
		SessionID: uuid.New(),
		SalonID:   "s1",
		Step:      2,
		Slots: datatypes.JSONSlice[AvailabilitySlot]{
			{Time: "09:00", Available: true},
			{Time: "09:30", Available: false},
		},
	}
	empty := BookingDraft{SessionID: uuid.New(), SalonID: "s1"}
	require.NoError(t, db.Create(&draft).Error)
	require.NoError(t, db.Create(&empty).Error)

	var loaded BookingDraft
	require.NoError(t, db.First(&loaded, "id = ?", draft.ID).Error)
	assert.Equal(t, []AvailabilitySlot{{Time: "09:00", Available: true}, {Time: "09:30", Available: false}}, []AvailabilitySlot(loaded.Slots))

	loaded = BookingDraft{}
	require.NoError(t, db.First(&loaded, "id = ?", empty.ID).Error)
	assert.Empty(t, loaded.Slots)
}
