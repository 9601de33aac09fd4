package usecase

import (
	"context"
	"errors"

	"borewell-booking/internal/converter"
	"borewell-booking/internal/delivery/dto"
	"borewell-booking/internal/domain/entity"
	"borewell-booking/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAuditLogNotFound = errors.New("audit log not found")
	ErrInvalidAction    = errors.New("invalid audit action")
)

type AuditLogUsecase interface {
	GetAllAuditLogs(ctx context.Context, query *dto.AuditLogQuery) (*dto.AuditLogListResponse, error)
	GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error)
	GetBookingHistory(ctx context.Context, bookingID uuid.UUID) (*dto.BookingHistoryResponse, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
	bookingRepo  repository.BookingRepository
}

func NewAuditLogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
	bookingRepo repository.BookingRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
		bookingRepo:  bookingRepo,
	}
}

// GetAllAuditLogs lists entries newest first, optionally narrowed to one
// booking and/or one action.
func (u *auditLogUsecase) GetAllAuditLogs(ctx context.Context, query *dto.AuditLogQuery) (*dto.AuditLogListResponse, error) {
	if query.Action != "" && !entity.IsAuditAction(query.Action) {
		return nil, ErrInvalidAction
	}

	logs, err := u.auditLogRepo.FindAll(u.db.WithContext(ctx), converter.AuditQueryToFilter(query))
	if err != nil {
		u.log.Warnf("Failed to find audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: len(logs),
	}, nil
}

func (u *auditLogUsecase) GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	auditLog, err := u.auditLogRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find audit log: %+v", err)
		return nil, err
	}
	if auditLog == nil {
		return nil, ErrAuditLogNotFound
	}

	return converter.AuditLogToResponse(auditLog), nil
}

// GetBookingHistory returns the current status of a booking together with
// every recorded change to it.
func (u *auditLogUsecase) GetBookingHistory(ctx context.Context, bookingID uuid.UUID) (*dto.BookingHistoryResponse, error) {
	db := u.db.WithContext(ctx)

	booking, err := u.bookingRepo.FindByID(db, bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	logs, err := u.auditLogRepo.FindAll(db, entity.AuditLogFilter{
		EntityType: entity.AuditEntityBooking,
		EntityID:   bookingID.String(),
	})
	if err != nil {
		u.log.Warnf("Failed to find history of booking %s: %+v", bookingID, err)
		return nil, err
	}

	return &dto.BookingHistoryResponse{
		BookingID: booking.ID,
		Status:    string(booking.Status),
		Logs:      converter.AuditLogsToResponses(logs),
		Total:     len(logs),
	}, nil
}
