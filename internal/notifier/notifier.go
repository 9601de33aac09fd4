// Package notifier delivers new-booking alerts to the business owner.
// Every channel reports its outcome as a Result instead of returning an error,
// so a failed delivery can never reach the request path.
package notifier

import (
	"context"

	"borewell-booking/internal/domain/entity"
)

const (
	ChannelEmail = "email"
	ChannelEvent = "event"
	ChannelLog   = "log"
)

// Result is the outcome of one delivery attempt on one channel.
type Result struct {
	Channel   string `json:"channel"`
	Delivered bool   `json:"delivered"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

func delivered(channel, messageID string) Result {
	return Result{Channel: channel, Delivered: true, MessageID: messageID}
}

func failed(channel string, err error) Result {
	return Result{Channel: channel, Error: err.Error()}
}

// Notifier announces a newly persisted booking.
type Notifier interface {
	Channel() string
	Notify(ctx context.Context, booking entity.Booking) Result
}

// StatusNotifier is implemented by channels that also announce status changes.
type StatusNotifier interface {
	NotifyStatusChange(ctx context.Context, booking entity.Booking, previous entity.BookingStatus) Result
}
