package converter

import (
	"testing"
	"time"

	"borewell-booking/internal/delivery/dto"
	"borewell-booking/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCreateRequestToBookingDefaults(t *testing.T) {
	oldBore := 120
	req := &dto.CreateBookingRequest{
		Name:         "Ravi",
		VillageName:  "Kondapur",
		DistrictName: "Guntur",
		MobileNumber: "9876543210",
		Email:        "ravi@example.com",
		Feet:         400,
		OldBoreFeet:  &oldBore,
		ServiceType:  "maintenance",
	}

	booking := CreateRequestToBooking(req)
	assert.Equal(t, entity.ServiceTypeDrilling, booking.ServiceType)
	assert.Equal(t, entity.BookingStatusPending, booking.Status)
	assert.Equal(t, 120, *booking.OldBoreFeet)

	// the entity must not alias the request's pointer
	oldBore = 999
	assert.Equal(t, 120, *booking.OldBoreFeet)
}

func TestBookingToCreatedResponse(t *testing.T) {
	created := time.Date(2026, 4, 2, 7, 30, 0, 0, time.UTC)
	booking := &entity.Booking{ID: uuid.New(), Name: "Ravi", Status: entity.BookingStatusPending, CreatedAt: created}

	resp := BookingToCreatedResponse(booking)
	assert.Equal(t, booking.ID, resp.ID)
	assert.Equal(t, "Ravi", resp.Name)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, created, resp.CreatedAt)

	assert.Nil(t, BookingToCreatedResponse(nil))
	assert.Nil(t, BookingToResponse(nil))
}

func TestBookingsToResponses(t *testing.T) {
	bookings := []entity.Booking{
		{ID: uuid.New(), Name: "a", ServiceType: entity.ServiceTypePressing},
		{ID: uuid.New(), Name: "b", ServiceType: entity.ServiceTypeConsultation},
	}

	responses := BookingsToResponses(bookings)
	assert.Len(t, responses, 2)
	assert.Equal(t, "a", responses[0].Name)
	assert.Equal(t, "pressing", responses[0].ServiceType)
	assert.Equal(t, "consultation", responses[1].ServiceType)
	assert.Nil(t, responses[0].OldBoreFeet)
}
