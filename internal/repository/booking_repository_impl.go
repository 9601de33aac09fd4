package repository

import (
	"errors"
	"time"

	"borewell-booking/internal/domain/entity"
	domainRepo "borewell-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type bookingRepository struct{}

func NewBookingRepository() domainRepo.BookingRepository {
	return &bookingRepository{}
}

func (r *bookingRepository) Create(db *gorm.DB, booking *entity.Booking) error {
	return db.Create(booking).Error
}

func (r *bookingRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// FindByIDForUpdate locks the row until tx ends, so status updates of one
// booking commit in the order they read it. SQLite ignores the lock clause;
// its single writer already serialises the transactions.
func (r *bookingRepository) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	return r.FindByID(tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

// FindAll returns every booking, newest first. The id tiebreak keeps equal timestamps in a stable order.
func (r *bookingRepository) FindAll(db *gorm.DB) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Order("created_at DESC").Order("id DESC").Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateStatus writes status and updated_at for one booking.
// Returns affected rows: 0 means no booking has that id.
func (r *bookingRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.BookingStatus, updatedAt time.Time) (int64, error) {
	result := db.Model(&entity.Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": updatedAt,
		})
	return result.RowsAffected, result.Error
}
