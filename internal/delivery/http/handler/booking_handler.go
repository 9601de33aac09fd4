package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"borewell-booking/internal/delivery/dto"
	"borewell-booking/internal/usecase"
	"borewell-booking/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const invalidStatusMessage = "Invalid status. Must be one of: pending, contacted, quoted, completed"

type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	exposeErrors   bool
}

// NewBookingHandler builds the booking endpoints. exposeErrors sends storage
// error detail to the client and is only set in development.
func NewBookingHandler(bookingUsecase usecase.BookingUsecase, exposeErrors bool) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		exposeErrors:   exposeErrors,
	}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var raw map[string]interface{}
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&raw); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.bookingUsecase.CreateBooking(r.Context(), raw)
	if err != nil {
		var intakeErr *usecase.IntakeError
		if errors.As(err, &intakeErr) {
			response.BadRequest(w, intakeErr.Message, intakeErr)
			return
		}
		response.ServerError(w, "Internal server error", err, h.exposeErrors)
		return
	}

	response.Success(w, http.StatusCreated, "Booking created successfully", booking)
}

func (h *BookingHandler) GetAllBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingUsecase.GetAllBookings(r.Context())
	if err != nil {
		response.ServerError(w, "Error fetching bookings", err, h.exposeErrors)
		return
	}

	response.Success(w, http.StatusOK, "", bookings)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid booking ID", nil)
		return
	}

	booking, err := h.bookingUsecase.GetBooking(r.Context(), bookingID)
	if err != nil {
		if errors.Is(err, usecase.ErrBookingNotFound) {
			response.NotFound(w, "Booking not found")
			return
		}
		response.ServerError(w, "Error fetching booking", err, h.exposeErrors)
		return
	}

	response.Success(w, http.StatusOK, "", booking)
}

func (h *BookingHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid booking ID", nil)
		return
	}

	var req dto.UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.bookingUsecase.UpdateBookingStatus(r.Context(), bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidStatus):
			response.BadRequest(w, invalidStatusMessage, nil)
		case errors.Is(err, usecase.ErrBookingNotFound):
			response.NotFound(w, "Booking not found")
		default:
			response.ServerError(w, "Error updating booking status", err, h.exposeErrors)
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking status updated successfully", booking)
}
