package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingStatus represents the follow-up state of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusContacted BookingStatus = "contacted"
	BookingStatusQuoted    BookingStatus = "quoted"
	BookingStatusCompleted BookingStatus = "completed"
)

// BookingStatuses lists every accepted status in display order.
var BookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusContacted,
	BookingStatusQuoted,
	BookingStatusCompleted,
}

// IsValid checks the status against the four known values
func (s BookingStatus) IsValid() bool {
	for _, known := range BookingStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ServiceType is the category of work requested
type ServiceType string

const (
	ServiceTypeDrilling     ServiceType = "drilling"
	ServiceTypePressing     ServiceType = "pressing"
	ServiceTypeConsultation ServiceType = "consultation"
)

// ParseServiceType maps unknown or empty values to drilling.
func ParseServiceType(s string) ServiceType {
	switch st := ServiceType(s); st {
	case ServiceTypeDrilling, ServiceTypePressing, ServiceTypeConsultation:
		return st
	default:
		return ServiceTypeDrilling
	}
}

const (
	MinDepthFeet = 1
	MaxDepthFeet = 1000
)

// Booking represents one borewell service request
type Booking struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string        `gorm:"type:varchar(255);not null" json:"name"`
	VillageName  string        `gorm:"type:varchar(255);not null" json:"villageName"`
	DistrictName string        `gorm:"type:varchar(255);not null" json:"districtName"`
	MobileNumber string        `gorm:"type:varchar(10);not null" json:"mobileNumber"`
	Email        string        `gorm:"type:varchar(255);not null" json:"email"`
	Feet         int           `gorm:"not null;check:chk_bookings_feet,feet BETWEEN 1 AND 1000" json:"feet"`
	OldBoreFeet  *int          `gorm:"check:chk_bookings_old_bore_feet,old_bore_feet BETWEEN 1 AND 1000" json:"oldBoreFeet,omitempty"`
	ServiceType  ServiceType   `gorm:"type:varchar(20);not null;default:'drilling'" json:"serviceType"`
	Status       BookingStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt    time.Time     `gorm:"autoCreateTime:false;not null;index" json:"createdAt"`
	UpdatedAt    time.Time     `gorm:"autoUpdateTime:false;not null" json:"updatedAt"`
}

func (Booking) TableName() string {
	return "bookings"
}

// BeforeCreate assigns the identifier and creation defaults
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = BookingStatusPending
	}
	if b.ServiceType == "" {
		b.ServiceType = ServiceTypeDrilling
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = b.CreatedAt
	}
	return nil
}

// IsPending checks if nobody has followed up on the booking yet
func (b *Booking) IsPending() bool {
	return b.Status == BookingStatusPending
}

// SetStatus changes the status and moves UpdatedAt forward, never backwards.
func (b *Booking) SetStatus(status BookingStatus, now time.Time) {
	if !now.After(b.UpdatedAt) {
		now = b.UpdatedAt.Add(time.Microsecond)
	}
	b.Status = status
	b.UpdatedAt = now
}
