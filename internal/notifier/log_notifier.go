package notifier

import (
	"context"

	"borewell-booking/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

// LogNotifier stands in for email when SMTP credentials are missing, so new
// leads still show up in the service log.
type LogNotifier struct {
	log *logrus.Logger
}

func NewLogNotifier(log *logrus.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Channel() string {
	return ChannelLog
}

func (n *LogNotifier) Notify(ctx context.Context, booking entity.Booking) Result {
	fields := logrus.Fields{
		"booking_id":   booking.ID.String(),
		"name":         booking.Name,
		"village":      booking.VillageName,
		"district":     booking.DistrictName,
		"mobile":       booking.MobileNumber,
		"email":        booking.Email,
		"feet":         booking.Feet,
		"service_type": booking.ServiceType,
	}
	if booking.OldBoreFeet != nil {
		fields["old_bore_feet"] = *booking.OldBoreFeet
	}
	n.log.WithFields(fields).Warnf("Email not configured, new booking: %s", ServiceLabel(booking.ServiceType))
	return delivered(ChannelLog, "")
}
