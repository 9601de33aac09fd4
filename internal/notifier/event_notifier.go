package notifier

import (
	"context"
	"time"

	"borewell-booking/internal/domain/entity"
)

const (
	RoutingKeyBookingCreated       = "booking.created"
	RoutingKeyBookingStatusUpdated = "booking.status_updated"
)

// Publisher is satisfied by the broker client.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// BookingEvent carries enough of the booking for downstream consumers
// (CRM sync, WhatsApp bots) to act without querying the store.
type BookingEvent struct {
	BookingID      string `json:"bookingId"`
	Name           string `json:"name"`
	VillageName    string `json:"villageName"`
	DistrictName   string `json:"districtName"`
	MobileNumber   string `json:"mobileNumber"`
	Email          string `json:"email"`
	Feet           int    `json:"feet"`
	OldBoreFeet    *int   `json:"oldBoreFeet,omitempty"`
	ServiceType    string `json:"serviceType"`
	Status         string `json:"status"`
	PreviousStatus string `json:"previousStatus,omitempty"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

func NewBookingEvent(booking entity.Booking) BookingEvent {
	return BookingEvent{
		BookingID:    booking.ID.String(),
		Name:         booking.Name,
		VillageName:  booking.VillageName,
		DistrictName: booking.DistrictName,
		MobileNumber: booking.MobileNumber,
		Email:        booking.Email,
		Feet:         booking.Feet,
		OldBoreFeet:  booking.OldBoreFeet,
		ServiceType:  string(booking.ServiceType),
		Status:       string(booking.Status),
		CreatedAt:    booking.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:    booking.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// EventNotifier publishes booking lifecycle events to the message broker.
type EventNotifier struct {
	publisher Publisher
}

func NewEventNotifier(publisher Publisher) *EventNotifier {
	return &EventNotifier{publisher: publisher}
}

func (n *EventNotifier) Channel() string {
	return ChannelEvent
}

func (n *EventNotifier) Notify(ctx context.Context, booking entity.Booking) Result {
	if err := n.publisher.PublishJSON(ctx, RoutingKeyBookingCreated, NewBookingEvent(booking)); err != nil {
		return failed(ChannelEvent, err)
	}
	return delivered(ChannelEvent, "")
}

func (n *EventNotifier) NotifyStatusChange(ctx context.Context, booking entity.Booking, previous entity.BookingStatus) Result {
	event := NewBookingEvent(booking)
	event.PreviousStatus = string(previous)
	if err := n.publisher.PublishJSON(ctx, RoutingKeyBookingStatusUpdated, event); err != nil {
		return failed(ChannelEvent, err)
	}
	return delivered(ChannelEvent, "")
}
