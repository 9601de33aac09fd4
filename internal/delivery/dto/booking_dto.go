package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// CreateBookingRequest is the intake payload after validation and normalisation.
type CreateBookingRequest struct {
	Name         string
	VillageName  string
	DistrictName string
	MobileNumber string
	Email        string
	Feet         int
	OldBoreFeet  *int
	ServiceType  string
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

// Response DTOs

type BookingResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	VillageName  string    `json:"villageName"`
	DistrictName string    `json:"districtName"`
	MobileNumber string    `json:"mobileNumber"`
	Email        string    `json:"email"`
	Feet         int       `json:"feet"`
	OldBoreFeet  *int      `json:"oldBoreFeet,omitempty"`
	ServiceType  string    `json:"serviceType"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BookingCreatedResponse is the short acknowledgement returned to the visitor.
type BookingCreatedResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
