package notifier

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"borewell-booking/internal/domain/entity"
)

const emailDateLayout = "02 Jan 2006, 03:04 PM MST"

const fallbackServiceLabel = "🏗️ Borewell Service"

var serviceLabels = map[entity.ServiceType]string{
	entity.ServiceTypeDrilling:     "🏗️ Bore Drilling",
	entity.ServiceTypePressing:     "🔧 Pressing Service",
	entity.ServiceTypeConsultation: "📞 Consultation",
}

// ServiceLabel returns the display label for a service type.
func ServiceLabel(st entity.ServiceType) string {
	if label, ok := serviceLabels[st]; ok {
		return label
	}
	return fallbackServiceLabel
}

var bookingEmailTemplate = template.Must(template.New("booking").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background: #667eea; padding: 20px; text-align: center; border-radius: 10px 10px 0 0;">
    <h1 style="color: white; margin: 0; font-size: 24px;">ProDrill - New Booking</h1>
  </div>
  <div style="background: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px;">
    <h2 style="color: #333; margin-top: 0;">{{.ServiceLabel}}</h2>
    <table style="width: 100%; border-collapse: collapse;">
      <tr><td style="padding: 10px; font-weight: bold;">Booking ID:</td><td style="padding: 10px;">{{.ID}}</td></tr>
      <tr><td style="padding: 10px; font-weight: bold;">Name:</td><td style="padding: 10px;">{{.Name}}</td></tr>
      <tr><td style="padding: 10px; font-weight: bold;">Village:</td><td style="padding: 10px;">{{.Village}}</td></tr>
      <tr><td style="padding: 10px; font-weight: bold;">District:</td><td style="padding: 10px;">{{.District}}</td></tr>
      <tr><td style="padding: 10px; font-weight: bold;">Mobile:</td><td style="padding: 10px;"><a href="tel:{{.Mobile}}">{{.Mobile}}</a></td></tr>
      <tr><td style="padding: 10px; font-weight: bold;">Email:</td><td style="padding: 10px;"><a href="mailto:{{.Email}}">{{.Email}}</a></td></tr>
      <tr><td style="padding: 10px; font-weight: bold;">Depth Required:</td><td style="padding: 10px;">{{.Feet}} feet</td></tr>
      {{- if .OldBoreFeet}}
      <tr><td style="padding: 10px; font-weight: bold;">Current Bore Depth:</td><td style="padding: 10px;">{{.OldBoreFeet}} feet</td></tr>
      {{- end}}
      <tr><td style="padding: 10px; font-weight: bold;">Service:</td><td style="padding: 10px;">{{.ServiceType}}</td></tr>
      <tr><td style="padding: 10px; font-weight: bold;">Status:</td><td style="padding: 10px;">{{.Status}}</td></tr>
      <tr><td style="padding: 10px; font-weight: bold;">Date:</td><td style="padding: 10px;">{{.Date}}</td></tr>
      <tr><td style="padding: 10px; font-weight: bold;">Last Updated:</td><td style="padding: 10px;">{{.Updated}}</td></tr>
    </table>
    <p style="margin-top: 20px; font-weight: bold;">Action Required: Please contact the customer within 24 hours</p>
    <p style="text-align: center;">
      <a href="tel:{{.Mobile}}">Call Now</a> &middot; <a href="{{.WhatsAppURL}}">WhatsApp</a>
    </p>
  </div>
</div>`))

type bookingEmailData struct {
	ServiceLabel string
	ID           string
	Name         string
	Village      string
	District     string
	Mobile       string
	Email        string
	Feet         int
	OldBoreFeet  int
	ServiceType  string
	Status       string
	Date         string
	Updated      string
	WhatsAppURL  string
}

// RenderBookingEmail builds the owner notification subject and HTML body.
func RenderBookingEmail(booking entity.Booking, loc *time.Location) (subject, body string, err error) {
	if loc == nil {
		loc = time.UTC
	}

	label := ServiceLabel(booking.ServiceType)
	data := bookingEmailData{
		ServiceLabel: label,
		ID:           booking.ID.String(),
		Name:         booking.Name,
		Village:      booking.VillageName,
		District:     booking.DistrictName,
		Mobile:       booking.MobileNumber,
		Email:        booking.Email,
		Feet:         booking.Feet,
		ServiceType:  string(booking.ServiceType),
		Status:       string(booking.Status),
		Date:         booking.CreatedAt.In(loc).Format(emailDateLayout),
		Updated:      booking.UpdatedAt.In(loc).Format(emailDateLayout),
		WhatsAppURL:  "https://wa.me/91" + booking.MobileNumber,
	}
	if booking.OldBoreFeet != nil {
		data.OldBoreFeet = *booking.OldBoreFeet
	}

	var buf bytes.Buffer
	if err := bookingEmailTemplate.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render booking email: %w", err)
	}

	return fmt.Sprintf("%s Request - %s", label, booking.Name), buf.String(), nil
}
