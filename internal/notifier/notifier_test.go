package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"borewell-booking/internal/domain/entity"
	"borewell-booking/internal/infrastructure/mailer"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []mailer.Message
	err  error
}

func (s *fakeSender) Send(ctx context.Context, msg mailer.Message) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.sent = append(s.sent, msg)
	return "<42@borewell>", nil
}

type fakePublisher struct {
	keys   []string
	events []BookingEvent
	err    error
}

func (p *fakePublisher) PublishJSON(ctx context.Context, key string, v any) error {
	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, key)
	p.events = append(p.events, v.(BookingEvent))
	return nil
}

func testBooking() entity.Booking {
	return entity.Booking{
		ID:           uuid.MustParse("6f1c1d1e-2b3a-4c5d-8e9f-0a1b2c3d4e5f"),
		Name:         "Ravi Kumar",
		VillageName:  "Kondapur",
		DistrictName: "Guntur",
		MobileNumber: "9876543210",
		Email:        "ravi@example.com",
		Feet:         450,
		ServiceType:  entity.ServiceTypePressing,
		Status:       entity.BookingStatusPending,
		CreatedAt:    time.Date(2026, 6, 1, 4, 30, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2026, 6, 1, 4, 30, 0, 0, time.UTC),
	}
}

func TestServiceLabel(t *testing.T) {
	assert.Equal(t, "🏗️ Bore Drilling", ServiceLabel(entity.ServiceTypeDrilling))
	assert.Equal(t, "🔧 Pressing Service", ServiceLabel(entity.ServiceTypePressing))
	assert.Equal(t, "📞 Consultation", ServiceLabel(entity.ServiceTypeConsultation))
	assert.Equal(t, "🏗️ Borewell Service", ServiceLabel("rebore"))
}

func TestRenderBookingEmail(t *testing.T) {
	booking := testBooking()

	subject, body, err := RenderBookingEmail(booking, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "🔧 Pressing Service Request - Ravi Kumar", subject)
	for _, want := range []string{
		booking.ID.String(), "Ravi Kumar", "Kondapur", "Guntur", "tel:9876543210",
		"mailto:ravi@example.com", "450 feet", "pressing", "pending", "https://wa.me/919876543210",
	} {
		assert.Contains(t, body, want)
	}
	assert.NotContains(t, body, "Current Bore Depth")

	booking.UpdatedAt = booking.CreatedAt.Add(26 * time.Hour)
	_, body, err = RenderBookingEmail(booking, time.UTC)
	require.NoError(t, err)
	assert.Contains(t, body, "01 Jun 2026, 04:30 AM UTC")
	assert.Contains(t, body, "Last Updated:</td><td style=\"padding: 10px;\">02 Jun 2026, 06:30 AM UTC")

	oldBore := 120
	booking.OldBoreFeet = &oldBore
	_, body, err = RenderBookingEmail(booking, time.UTC)
	require.NoError(t, err)
	assert.Contains(t, body, "Current Bore Depth")
	assert.Contains(t, body, "120 feet")
}

func TestRenderBookingEmailEscapesInput(t *testing.T) {
	booking := testBooking()
	booking.Name = `<script>alert(1)</script>`

	_, body, err := RenderBookingEmail(booking, nil)
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}

func TestEmailNotifier(t *testing.T) {
	sender := &fakeSender{}
	n := NewEmailNotifier(sender, "owner@gmail.com", "owner@gmail.com", time.UTC)

	result := n.Notify(context.Background(), testBooking())
	assert.Equal(t, Result{Channel: ChannelEmail, Delivered: true, MessageID: "<42@borewell>"}, result)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "owner@gmail.com", sender.sent[0].To)
	assert.Equal(t, "🔧 Pressing Service Request - Ravi Kumar", sender.sent[0].Subject)
}

func TestEmailNotifierFailures(t *testing.T) {
	n := NewEmailNotifier(&fakeSender{err: errors.New("535 5.7.8 Username and Password not accepted")}, "a@b.com", "a@b.com", time.UTC)
	result := n.Notify(context.Background(), testBooking())
	assert.False(t, result.Delivered)
	assert.Contains(t, result.Error, "535")

	n = NewEmailNotifier(&fakeSender{}, "a@b.com", "", time.UTC)
	result = n.Notify(context.Background(), testBooking())
	assert.False(t, result.Delivered)
	assert.Contains(t, result.Error, "OWNER_EMAIL")
}

func TestEventNotifier(t *testing.T) {
	pub := &fakePublisher{}
	n := NewEventNotifier(pub)

	booking := testBooking()
	assert.True(t, n.Notify(context.Background(), booking).Delivered)

	booking.Status = entity.BookingStatusContacted
	assert.True(t, n.NotifyStatusChange(context.Background(), booking, entity.BookingStatusPending).Delivered)

	assert.Equal(t, []string{RoutingKeyBookingCreated, RoutingKeyBookingStatusUpdated}, pub.keys)
	assert.Empty(t, pub.events[0].PreviousStatus)
	assert.Equal(t, "pending", pub.events[1].PreviousStatus)
	assert.Equal(t, "contacted", pub.events[1].Status)

	raw, err := json.Marshal(pub.events[0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"bookingId":"6f1c1d1e-2b3a-4c5d-8e9f-0a1b2c3d4e5f"`)
	assert.NotContains(t, string(raw), "oldBoreFeet")

	pub.err = errors.New("channel/connection is not open")
	result := n.Notify(context.Background(), booking)
	assert.False(t, result.Delivered)
	assert.Equal(t, ChannelEvent, result.Channel)
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	result := NewLogNotifier(log).Notify(context.Background(), testBooking())
	assert.Equal(t, Result{Channel: ChannelLog, Delivered: true}, result)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "9876543210", entry["mobile"])
	assert.Equal(t, "warning", entry["level"])
}
