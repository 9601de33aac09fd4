package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"borewell-booking/internal/converter"
	"borewell-booking/internal/delivery/dto"
	"borewell-booking/internal/domain/entity"
	"borewell-booking/internal/domain/repository"
	"borewell-booking/internal/service"
	"borewell-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrInvalidStatus   = fmt.Errorf("invalid status. Must be one of: %s", joinStatuses(entity.BookingStatuses))
)

type BookingUsecase interface {
	CreateBooking(ctx context.Context, raw map[string]interface{}) (*dto.BookingCreatedResponse, error)
	GetAllBookings(ctx context.Context) ([]dto.BookingResponse, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, error)
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error)
}

type bookingUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	validator     *validator.CustomValidator
	bookingRepo   repository.BookingRepository
	auditService  service.AuditService
	bookingCache  service.BookingCache
	notifications service.NotificationService
	now           func() time.Time
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	bookingRepo repository.BookingRepository,
	auditService service.AuditService,
	bookingCache service.BookingCache,
	notifications service.NotificationService,
) BookingUsecase {
	return &bookingUsecase{
		db:            db,
		log:           log,
		validator:     validator,
		bookingRepo:   bookingRepo,
		auditService:  auditService,
		bookingCache:  bookingCache,
		notifications: notifications,
		now:           time.Now,
	}
}

// timestamp is truncated to microseconds, the precision postgres keeps.
func (u *bookingUsecase) timestamp() time.Time {
	return u.now().UTC().Truncate(time.Microsecond)
}

// CreateBooking runs the intake path.
//
// Flow:
// 1. Validate and normalise the raw submission (no store access on failure)
// 2. Insert booking + audit entry in one transaction
// 3. Cache the committed booking
// 4. Hand the booking to the notification dispatcher without waiting for it
func (u *bookingUsecase) CreateBooking(ctx context.Context, raw map[string]interface{}) (*dto.BookingCreatedResponse, error) {
	// Step 1: Validate
	req, err := ParseBookingIntake(u.validator, raw)
	if err != nil {
		return nil, err
	}

	booking := converter.CreateRequestToBooking(req)
	now := u.timestamp()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	// Step 2: Persist
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.bookingRepo.Create(tx, booking); err != nil {
		u.log.Errorf("Failed to create booking: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, entity.AuditActionBookingCreate, entity.AuditEntityBooking, booking.ID.String(), converter.BookingToResponse(booking)); err != nil {
		// Don't fail the transaction for audit log errors
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Errorf("Failed commit transaction: %+v", err)
		return nil, err
	}

	// Step 3: Cache
	u.bookingCache.Set(ctx, booking)

	// Step 4: Notify (fire-and-forget)
	u.notifications.DispatchBookingCreated(*booking)

	u.log.Infof("Booking created: id=%s, service=%s, district=%s", booking.ID, booking.ServiceType, booking.DistrictName)
	return converter.BookingToCreatedResponse(booking), nil
}

// GetAllBookings returns every booking, newest first
func (u *bookingUsecase) GetAllBookings(ctx context.Context) ([]dto.BookingResponse, error) {
	bookings, err := u.bookingRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find bookings: %+v", err)
		return nil, err
	}

	return converter.BookingsToResponses(bookings), nil
}

func (u *bookingUsecase) GetBooking(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, error) {
	if cached, ok := u.bookingCache.Get(ctx, id); ok {
		return converter.BookingToResponse(cached), nil
	}

	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", id, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	u.bookingCache.Set(ctx, booking)
	return converter.BookingToResponse(booking), nil
}

// UpdateBookingStatus sets a new follow-up status. Concurrent updates of the
// same booking are last-write-wins: the row lock orders them, and every commit
// carries a later UpdatedAt than the one it replaced, which is also the order
// the cache accepts them in.
func (u *bookingUsecase) UpdateBookingStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error) {
	status := entity.BookingStatus(req.Status)
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	booking, err := u.bookingRepo.FindByIDForUpdate(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", id, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	previous := booking.Status
	oldValue := map[string]interface{}{"status": previous, "updatedAt": booking.UpdatedAt}

	booking.SetStatus(status, u.timestamp())

	affected, err := u.bookingRepo.UpdateStatus(tx, id, booking.Status, booking.UpdatedAt)
	if err != nil {
		u.log.Errorf("Failed to update booking %s status: %+v", id, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrBookingNotFound
	}

	newValue := map[string]interface{}{"status": booking.Status, "updatedAt": booking.UpdatedAt}
	if err := u.auditService.LogUpdate(ctx, tx, entity.AuditActionBookingStatusUpdate, entity.AuditEntityBooking, id.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Errorf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.bookingCache.Set(ctx, booking)
	u.notifications.DispatchStatusChanged(*booking, previous)

	u.log.Infof("Booking status updated: id=%s, %s -> %s", id, previous, booking.Status)
	return converter.BookingToResponse(booking), nil
}

func joinStatuses(statuses []entity.BookingStatus) string {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
