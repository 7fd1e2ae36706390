package models

import "time"

// Settings document ids in the settings collection.
const (
	SettingsBranding      = "branding"
	SettingsNotifications = "notifications"
)

// Branding is the storefront identity shown on pages and invoices.
type Branding struct {
	ID             string    `bson:"id" json:"-"`
	CompanyName    string    `bson:"companyName" json:"companyName" validate:"required"`
	Tagline        string    `bson:"tagline,omitempty" json:"tagline,omitempty"`
	LogoURL        string    `bson:"logoUrl,omitempty" json:"logoUrl,omitempty"`
	PrimaryColor   string    `bson:"primaryColor,omitempty" json:"primaryColor,omitempty" validate:"omitempty,hexcolor"`
	SecondaryColor string    `bson:"secondaryColor,omitempty" json:"secondaryColor,omitempty" validate:"omitempty,hexcolor"`
	ContactEmail   string    `bson:"contactEmail,omitempty" json:"contactEmail,omitempty" validate:"omitempty,email"`
	ContactPhone   string    `bson:"contactPhone,omitempty" json:"contactPhone,omitempty"`
	Address        string    `bson:"address,omitempty" json:"address,omitempty"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// NotificationSettings switches outbound channels on or off globally.
type NotificationSettings struct {
	ID                   string    `bson:"id" json:"-"`
	EmailEnabled         bool      `bson:"emailEnabled" json:"emailEnabled"`
	SMSEnabled           bool      `bson:"smsEnabled" json:"smsEnabled"`
	PushEnabled          bool      `bson:"pushEnabled" json:"pushEnabled"`
	BookingConfirmations bool      `bson:"bookingConfirmations" json:"bookingConfirmations"`
	Reminders            bool      `bson:"reminders" json:"reminders"`
	ReminderLeadMinutes  int       `bson:"reminderLeadMinutes" json:"reminderLeadMinutes" validate:"gte=0,lte=10080"`
	UpdatedAt            time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// DefaultNotificationSettings applies when no document has been saved yet.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		ID:                   SettingsNotifications,
		EmailEnabled:         true,
		PushEnabled:          true,
		BookingConfirmations: true,
		Reminders:            true,
		ReminderLeadMinutes:  120,
	}
}

// PaymentMethod is opaque payment configuration. Keys are stored, never used
// to charge. SecretKey is sealed at rest and masked on the way out.
type PaymentMethod struct {
	DocMeta `bson:",inline"`

	Name      string `bson:"name" json:"name" validate:"required"`
	Type      string `bson:"type" json:"type" validate:"required,oneof=stripe paypal cash card other"`
	Enabled   bool   `bson:"enabled" json:"enabled"`
	Mode      string `bson:"mode,omitempty" json:"mode,omitempty" validate:"omitempty,oneof=test live"`
	PublicKey string `bson:"publicKey,omitempty" json:"publicKey,omitempty"`
	SecretKey string `bson:"secretKey,omitempty" json:"secretKey,omitempty"`
}

// BookingHours is the persisted enabled-hours map for one branch.
type BookingHours struct {
	BranchID  string          `bson:"branchId" json:"branchId"`
	Hours     map[string]bool `bson:"hours" json:"hours"`
	UpdatedAt time.Time       `bson:"updatedAt" json:"updatedAt,omitzero"`
}
