package converter

import (
	"borewell-booking/internal/delivery/dto"
	"borewell-booking/internal/domain/entity"
)

// BookingToResponse converts a Booking entity to BookingResponse DTO
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	response := &dto.BookingResponse{
		ID:           booking.ID,
		Name:         booking.Name,
		VillageName:  booking.VillageName,
		DistrictName: booking.DistrictName,
		MobileNumber: booking.MobileNumber,
		Email:        booking.Email,
		Feet:         booking.Feet,
		ServiceType:  string(booking.ServiceType),
		Status:       string(booking.Status),
		CreatedAt:    booking.CreatedAt,
		UpdatedAt:    booking.UpdatedAt,
	}

	if booking.OldBoreFeet != nil {
		oldBore := *booking.OldBoreFeet
		response.OldBoreFeet = &oldBore
	}

	return response
}

// BookingsToResponses converts a slice of Booking entities to slice of BookingResponse DTOs
func BookingsToResponses(bookings []entity.Booking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = *BookingToResponse(&bookings[i])
	}
	return responses
}

// BookingToCreatedResponse keeps only the fields echoed back after intake
func BookingToCreatedResponse(booking *entity.Booking) *dto.BookingCreatedResponse {
	if booking == nil {
		return nil
	}

	return &dto.BookingCreatedResponse{
		ID:        booking.ID,
		Name:      booking.Name,
		Status:    string(booking.Status),
		CreatedAt: booking.CreatedAt,
	}
}

// CreateRequestToBooking builds the entity that is handed to the store
func CreateRequestToBooking(req *dto.CreateBookingRequest) *entity.Booking {
	booking := &entity.Booking{
		Name:         req.Name,
		VillageName:  req.VillageName,
		DistrictName: req.DistrictName,
		MobileNumber: req.MobileNumber,
		Email:        req.Email,
		Feet:         req.Feet,
		ServiceType:  entity.ParseServiceType(req.ServiceType),
		Status:       entity.BookingStatusPending,
	}
	if req.OldBoreFeet != nil {
		oldBore := *req.OldBoreFeet
		booking.OldBoreFeet = &oldBore
	}
	return booking
}
