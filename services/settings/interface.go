package settings

import (
	"context"
	"errors"

	"salonhub/models"
	"salonhub/services/schedule"
)

var (
	ErrNotFound     = errors.New("setting not found")
	ErrInvalidHour  = errors.New("hour must be between 0 and 23")
	ErrSealerNeeded = errors.New("SETTINGS_ENCRYPTION_KEY is required to store secret keys")
)

// SettingsService manages branding, notification switches, payment method
// configuration and the per-branch booking hours.
type SettingsService interface {
	GetBranding(ctx context.Context) (*models.Branding, error)
	SaveBranding(ctx context.Context, b models.Branding) (*models.Branding, error)
	GetNotificationSettings(ctx context.Context) (models.NotificationSettings, error)
	SaveNotificationSettings(ctx context.Context, n models.NotificationSettings) (*models.NotificationSettings, error)

	ListPaymentMethods(ctx context.Context) ([]models.PaymentMethod, error)
	CreatePaymentMethod(ctx context.Context, pm models.PaymentMethod) (*models.PaymentMethod, error)
	UpdatePaymentMethod(ctx context.Context, id string, pm models.PaymentMethod) (*models.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, id string) error

	EnabledHours(ctx context.Context, branchID string) (schedule.EnabledHours, error)
	SaveHours(ctx context.Context, branchID string, hours schedule.EnabledHours) (schedule.EnabledHours, error)
	ToggleHour(ctx context.Context, branchID string, hour int) (schedule.EnabledHours, error)
	DisableAllHours(ctx context.Context, branchID string) (schedule.EnabledHours, error)
	EnableAllHours(ctx context.Context, branchID string) (schedule.EnabledHours, error)
}
