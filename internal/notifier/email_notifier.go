package notifier

import (
	"context"
	"errors"
	"time"

	"borewell-booking/internal/domain/entity"
	"borewell-booking/internal/infrastructure/mailer"
)

// EmailNotifier mails the business owner about each new booking.
type EmailNotifier struct {
	sender mailer.Sender
	from   string
	to     string
	loc    *time.Location
}

func NewEmailNotifier(sender mailer.Sender, from, to string, loc *time.Location) *EmailNotifier {
	return &EmailNotifier{sender: sender, from: from, to: to, loc: loc}
}

func (n *EmailNotifier) Channel() string {
	return ChannelEmail
}

func (n *EmailNotifier) Notify(ctx context.Context, booking entity.Booking) Result {
	if n.to == "" {
		return failed(ChannelEmail, errors.New("no recipient configured (OWNER_EMAIL)"))
	}

	subject, body, err := RenderBookingEmail(booking, n.loc)
	if err != nil {
		return failed(ChannelEmail, err)
	}

	messageID, err := n.sender.Send(ctx, mailer.Message{
		From:     n.from,
		To:       n.to,
		Subject:  subject,
		HTMLBody: body,
	})
	if err != nil {
		return failed(ChannelEmail, err)
	}

	return delivered(ChannelEmail, messageID)
}
