// Command mailcheck checks the SMTP settings by logging in and sending one
// test message to OWNER_EMAIL.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"borewell-booking/config"
	"borewell-booking/internal/infrastructure/mailer"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	logrus.Infof("EMAIL_USER: %s", valueOr(cfg.Mail.User, "NOT SET"))
	logrus.Infof("EMAIL_PASS: %s", mask(cfg.Mail.Password))
	logrus.Infof("OWNER_EMAIL: %s", valueOr(cfg.Mail.OwnerEmail, "NOT SET"))

	if !cfg.Mail.Enabled() || cfg.Mail.OwnerEmail == "" {
		logrus.Error("EMAIL_USER, EMAIL_PASS and OWNER_EMAIL must all be set")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.Notify.Timeout)
	defer cancel()

	sender := mailer.NewSMTPSender(cfg.Mail, cfg.Notify.Timeout)
	if err := sender.Verify(ctx); err != nil {
		fail(err)
	}
	logrus.Infof("Connected to %s:%d", cfg.Mail.Host, cfg.Mail.Port)

	messageID, err := sender.Send(ctx, mailer.Message{
		From:     cfg.Mail.User,
		To:       cfg.Mail.OwnerEmail,
		Subject:  "BoreWell email configuration test",
		HTMLBody: fmt.Sprintf("<p>Email notifications are working.</p><p>Sent at %s</p>", time.Now().Format(time.RFC1123)),
	})
	if err != nil {
		fail(err)
	}

	logrus.Infof("Test email sent, message id %s", messageID)
}

func fail(err error) {
	logrus.Errorf("Email test failed: %v", err)
	if isAuthError(err) {
		logrus.Error("Authentication was rejected. For Gmail, enable 2-step verification and use an App Password (https://myaccount.google.com/apppasswords) as EMAIL_PASS")
	}
	os.Exit(1)
}

func isAuthError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "535") ||
		strings.Contains(msg, "invalid login") ||
		strings.Contains(msg, "authentication")
}

func mask(secret string) string {
	if secret == "" {
		return "NOT SET"
	}
	return strings.Repeat("*", len(secret))
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
