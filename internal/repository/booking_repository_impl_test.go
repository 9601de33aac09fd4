package repository

import (
	"testing"
	"time"

	"borewell-booking/internal/domain/entity"
	"borewell-booking/internal/infrastructure/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLiteConnection(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newBooking(name string, createdAt time.Time) *entity.Booking {
	return &entity.Booking{
		Name:         name,
		VillageName:  "Kondapur",
		DistrictName: "Guntur",
		MobileNumber: "9876543210",
		Email:        "farmer@example.com",
		Feet:         300,
		ServiceType:  entity.ServiceTypeDrilling,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

func TestBookingRepositoryCreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository()

	oldBore := 150
	booking := newBooking("Ravi", time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC))
	booking.OldBoreFeet = &oldBore
	require.NoError(t, repo.Create(db, booking))
	assert.NotEqual(t, uuid.Nil, booking.ID)
	assert.Equal(t, entity.BookingStatusPending, booking.Status)

	found, err := repo.FindByID(db, booking.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, booking.ID, found.ID)
	assert.Equal(t, "Ravi", found.Name)
	assert.Equal(t, 300, found.Feet)
	require.NotNil(t, found.OldBoreFeet)
	assert.Equal(t, 150, *found.OldBoreFeet)
	assert.True(t, found.CreatedAt.Equal(booking.CreatedAt))
	assert.True(t, found.UpdatedAt.Equal(found.CreatedAt))
}

func TestBookingRepositoryFindByIDMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository()

	found, err := repo.FindByID(db, uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestBookingRepositoryCreateAssignsUniqueIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository()

	seen := make(map[uuid.UUID]bool)
	base := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 20; i++ {
		b := newBooking("Lead", base.Add(time.Duration(i)*time.Second))
		require.NoError(t, repo.Create(db, b))
		assert.False(t, seen[b.ID], "duplicate id %s", b.ID)
		seen[b.ID] = true
	}
}

func TestBookingRepositoryFindAllNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository()

	t1 := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	first := newBooking("first", t1)
	second := newBooking("second", t1.Add(time.Hour))
	third := newBooking("third", t1.Add(2*time.Hour))
	for _, b := range []*entity.Booking{second, first, third} {
		require.NoError(t, repo.Create(db, b))
	}

	all, err := repo.FindAll(db)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Name)
	assert.Equal(t, "second", all[1].Name)
	assert.Equal(t, "first", all[2].Name)
}

func TestBookingRepositoryUpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository()

	created := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	booking := newBooking("Ravi", created)
	require.NoError(t, repo.Create(db, booking))

	updatedAt := created.Add(30 * time.Minute)
	affected, err := repo.UpdateStatus(db, booking.ID, entity.BookingStatusQuoted, updatedAt)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	found, err := repo.FindByID(db, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusQuoted, found.Status)
	assert.True(t, found.UpdatedAt.Equal(updatedAt))
	assert.True(t, found.CreatedAt.Equal(created))

	affected, err = repo.UpdateStatus(db, uuid.New(), entity.BookingStatusQuoted, updatedAt)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestBookingRepositoryFindByIDForUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookingRepository()

	booking := newBooking("Ravi", time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(db, booking))

	err := db.Transaction(func(tx *gorm.DB) error {
		found, err := repo.FindByIDForUpdate(tx, booking.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, booking.ID, found.ID)

		missing, err := repo.FindByIDForUpdate(tx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, missing)
		return nil
	})
	require.NoError(t, err)
}

func TestAuditLogRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAuditLogRepository()

	first, second := uuid.NewString(), uuid.NewString()
	entries := []entity.AuditLog{
		{Action: entity.AuditActionBookingCreate, EntityType: entity.AuditEntityBooking, EntityID: first},
		{Action: entity.AuditActionBookingCreate, EntityType: entity.AuditEntityBooking, EntityID: second},
		{Action: entity.AuditActionBookingStatusUpdate, EntityType: entity.AuditEntityBooking, EntityID: first,
			Metadata: entity.JSON{"new_value": map[string]interface{}{"status": "quoted"}}},
	}
	for i := range entries {
		require.NoError(t, repo.Create(db, &entries[i]))
	}

	logs, err := repo.FindAll(db, entity.AuditLogFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, entity.AuditActionBookingStatusUpdate, logs[0].Action)
	assert.Equal(t, map[string]interface{}{"status": "quoted"}, logs[0].Metadata["new_value"])

	history, err := repo.FindAll(db, entity.AuditLogFilter{EntityType: entity.AuditEntityBooking, EntityID: first})
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, entity.AuditActionBookingStatusUpdate, history[0].Action)
	assert.Equal(t, entity.AuditActionBookingCreate, history[1].Action)

	creates, err := repo.FindAll(db, entity.AuditLogFilter{Action: entity.AuditActionBookingCreate})
	require.NoError(t, err)
	assert.Len(t, creates, 2)

	none, err := repo.FindAll(db, entity.AuditLogFilter{EntityID: uuid.NewString()})
	require.NoError(t, err)
	assert.Empty(t, none)

	found, err := repo.FindByID(db, logs[2].ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, first, found.EntityID)

	missing, err := repo.FindByID(db, 9999)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}
