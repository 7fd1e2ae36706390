package notification

import (
	"context"
	"errors"
	"fmt"

	"salonhub/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// DefaultNotificationService fans a booking message out to email, SMS and push.
type DefaultNotificationService struct {
	users    UserLookup
	settings SettingsLookup
	email    EmailSender
	sms      SMSSender
	push     PushSender
}

func NewDefaultNotificationService(users UserLookup, settings SettingsLookup, email EmailSender, sms SMSSender, push PushSender) (*DefaultNotificationService, error) {
	if users == nil || settings == nil {
		return nil, fmt.Errorf("notification service initialization error: user or settings lookup is nil")
	}
	return &DefaultNotificationService{users: users, settings: settings, email: email, sms: sms, push: push}, nil
}

func (s *DefaultNotificationService) NotifyBookingConfirmation(ctx context.Context, b *models.Booking) error {
	cfg, err := s.settings.GetNotificationSettings(ctx)
	if err != nil {
		return err
	}
	if !cfg.BookingConfirmations {
		return nil
	}
	return s.deliver(ctx, cfg, b, confirmationMessage(b), "booking_confirmation")
}

func (s *DefaultNotificationService) NotifyBookingReminder(ctx context.Context, b *models.Booking) error {
	if b.Status != models.BookingUpcoming {
		return nil
	}
	cfg, err := s.settings.GetNotificationSettings(ctx)
	if err != nil {
		return err
	}
	if !cfg.Reminders {
		return nil
	}
	return s.deliver(ctx, cfg, b, reminderMessage(b), "booking_reminder")
}

// deliver tries every enabled channel and joins the failures.
func (s *DefaultNotificationService) deliver(ctx context.Context, cfg models.NotificationSettings, b *models.Booking, msg message, kind string) error {
	var errs []error

	if cfg.EmailEnabled && b.EmailConfirmation && b.CustomerEmail != "" && s.email != nil {
		if err := s.email.Send(b.CustomerEmail, msg.Title, msg.Body); err != nil {
			errs = append(errs, fmt.Errorf("email: %w", err))
		}
	}
	if cfg.SMSEnabled && b.SMSConfirmation && b.CustomerPhone != "" && s.sms != nil {
		if err := s.sms.Send(ctx, b.CustomerPhone, msg.Body); err != nil {
			errs = append(errs, fmt.Errorf("sms (%s): %w", s.sms.ProviderID(), err))
		}
	}
	if cfg.PushEnabled && b.CustomerID != "" && s.push != nil {
		data := map[string]string{"type": kind, "bookingId": b.ID}
		if err := s.SendUserPushNotification(ctx, b.CustomerID, msg.Title, msg.Body, data); err != nil && !errors.Is(err, ErrNoPushTarget) {
			errs = append(errs, fmt.Errorf("push: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		zap.L().Warn("booking notification partially failed",
			zap.String("booking", b.ID), zap.String("kind", kind), zap.Error(err))
		return err
	}
	return nil
}

// ErrNoPushTarget is returned when the user has no registered device.
var ErrNoPushTarget = errors.New("user has no FCM token")

// SendUserPushNotification looks up a user's FCM token and sends a push.
func (s *DefaultNotificationService) SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error {
	if s.push == nil {
		return errors.New("push sender not configured")
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("could not find user %s: %w", userID, err)
	}
	if u.FCMToken == "" {
		return ErrNoPushTarget
	}
	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["role"]; !ok {
		data["role"] = u.Role
	}

	msg := &messaging.Message{
		Token:        u.FCMToken,
		Notification: &messaging.Notification{Title: title, Body: body},
		Data:         data,
		Android: &messaging.AndroidConfig{
			Priority:     "high",
			Notification: &messaging.AndroidNotification{ChannelID: "bookings", Sound: "default"},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{"apns-priority": "10", "apns-push-type": "alert"},
			Payload: &messaging.APNSPayload{Aps: &messaging.Aps{Sound: "default"}},
		},
	}
	if _, err := s.push.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}
