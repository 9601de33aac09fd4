package dto

import (
	"time"

	"borewell-booking/internal/domain/entity"

	"github.com/google/uuid"
)

// Request DTOs

// AuditLogQuery holds the optional listing filters from the query string.
type AuditLogQuery struct {
	BookingID *uuid.UUID
	Action    string
}

// Response DTOs

type AuditLogResponse struct {
	ID         int64       `json:"id"`
	Action     string      `json:"action"`
	EntityType string      `json:"entityType"`
	EntityID   string      `json:"entityId"`
	Metadata   entity.JSON `json:"metadata"`
	CreatedAt  time.Time   `json:"createdAt"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int                `json:"total"`
}

// BookingHistoryResponse is the change history of one booking, newest first.
type BookingHistoryResponse struct {
	BookingID uuid.UUID          `json:"bookingId"`
	Status    string             `json:"status"`
	Logs      []AuditLogResponse `json:"logs"`
	Total     int                `json:"total"`
}
