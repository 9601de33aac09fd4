package service

import (
	"context"
	"fmt"
	"time"

	"borewell-booking/internal/domain/entity"
	"borewell-booking/internal/notifier"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
)

// NotificationService announces bookings over every configured channel.
//
// Dispatch methods return immediately; delivery runs on a background task
// with its own timeout and its outcome is only logged. Notify is the
// synchronous form, used by the background task and by tests.
type NotificationService interface {
	Notify(ctx context.Context, booking entity.Booking) []notifier.Result
	DispatchBookingCreated(booking entity.Booking)
	DispatchStatusChanged(booking entity.Booking, previous entity.BookingStatus)
	// Wait blocks until every dispatched task has finished.
	Wait()
}

type notificationService struct {
	log       *logrus.Logger
	notifiers []notifier.Notifier
	timeout   time.Duration
	tasks     conc.WaitGroup
}

func NewNotificationService(log *logrus.Logger, timeout time.Duration, notifiers ...notifier.Notifier) NotificationService {
	return &notificationService{
		log:       log,
		notifiers: notifiers,
		timeout:   timeout,
	}
}

func (s *notificationService) Notify(ctx context.Context, booking entity.Booking) []notifier.Result {
	results := make([]notifier.Result, 0, len(s.notifiers))
	for _, n := range s.notifiers {
		results = append(results, s.guard(n.Channel(), func() notifier.Result {
			return n.Notify(ctx, booking)
		}))
	}
	return results
}

func (s *notificationService) notifyStatusChange(ctx context.Context, booking entity.Booking, previous entity.BookingStatus) []notifier.Result {
	var results []notifier.Result
	for _, n := range s.notifiers {
		sn, ok := n.(notifier.StatusNotifier)
		if !ok {
			continue
		}
		results = append(results, s.guard(n.Channel(), func() notifier.Result {
			return sn.NotifyStatusChange(ctx, booking, previous)
		}))
	}
	return results
}

// DispatchBookingCreated takes the booking by value so the caller may keep mutating its copy.
func (s *notificationService) DispatchBookingCreated(booking entity.Booking) {
	s.tasks.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		s.report("booking.created", booking, s.Notify(ctx, booking))
	})
}

func (s *notificationService) DispatchStatusChanged(booking entity.Booking, previous entity.BookingStatus) {
	s.tasks.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		s.report("booking.status_updated", booking, s.notifyStatusChange(ctx, booking, previous))
	})
}

func (s *notificationService) Wait() {
	if recovered := s.tasks.WaitAndRecover(); recovered != nil {
		s.log.Errorf("Notification task panicked: %v", recovered.Value)
	}
}

// guard turns a panicking channel into a failed Result.
func (s *notificationService) guard(channel string, fn func() notifier.Result) notifier.Result {
	var result notifier.Result
	var pc panics.Catcher
	pc.Try(func() { result = fn() })
	if recovered := pc.Recovered(); recovered != nil {
		return notifier.Result{Channel: channel, Error: fmt.Sprintf("panic: %v", recovered.Value)}
	}
	return result
}

func (s *notificationService) report(event string, booking entity.Booking, results []notifier.Result) {
	for _, r := range results {
		entry := s.log.WithFields(logrus.Fields{
			"event":      event,
			"booking_id": booking.ID.String(),
			"channel":    r.Channel,
		})
		if r.Delivered {
			entry.WithField("message_id", r.MessageID).Info("Notification delivered")
			continue
		}
		entry.Errorf("Failed to send notification: %s", r.Error)
	}
}
