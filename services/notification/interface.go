package notification

import (
	"context"

	"salonhub/models"

	"firebase.google.com/go/v4/messaging"
)

// NotificationService sends booking messages over the enabled channels.
type NotificationService interface {
	NotifyBookingConfirmation(ctx context.Context, b *models.Booking) error
	NotifyBookingReminder(ctx context.Context, b *models.Booking) error
	SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error
}

// EmailSender delivers a plain-text email.
type EmailSender interface {
	Send(to, subject, body string) error
}

// SMSSender delivers a text message.
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
	ProviderID() string
}

// PushSender is satisfied by *messaging.Client.
type PushSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// UserLookup resolves push targets.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// SettingsLookup returns the effective notification switches.
type SettingsLookup interface {
	GetNotificationSettings(ctx context.Context) (models.NotificationSettings, error)
}
