package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSOrigins       string `mapstructure:"CORS_ORIGINS"`

	// Document store.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Session tokens.
	JWTSecret     string `mapstructure:"JWT_SECRET"`
	TokenTTLHours int    `mapstructure:"TOKEN_TTL_HOURS"`

	// Redis configuration.
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB    int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB     int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB    int    `mapstructure:"REDIS_QUEUE_DB"`
	CacheTTLSeconds int    `mapstructure:"CACHE_TTL_SECONDS"`

	// Firebase (identity + push).
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// Uploads: "cloudinary" or "firebase".
	StorageProvider       string `mapstructure:"STORAGE_PROVIDER"`
	FirebaseStorageBucket string `mapstructure:"FIREBASE_STORAGE_BUCKET"`

	// Cloudinary uploads.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`

	// Outbound notifications.
	SMTPHost        string `mapstructure:"SMTP_HOST"`
	SMTPPort        string `mapstructure:"SMTP_PORT"`
	SMTPFrom        string `mapstructure:"SMTP_FROM"`
	SMSWebhookURL   string `mapstructure:"SMS_WEBHOOK_URL"`
	SMSWebhookToken string `mapstructure:"SMS_WEBHOOK_TOKEN"`

	// Settings secrets (payment method keys) are sealed with this key.
	SettingsEncryptionKey string `mapstructure:"SETTINGS_ENCRYPTION_KEY"`

	// Salon locale.
	SalonTimezone string  `mapstructure:"SALON_TIMEZONE"`
	Currency      string  `mapstructure:"CURRENCY"`
	TaxRate       float64 `mapstructure:"TAX_RATE"`

	// Background schedules (robfig/cron spec strings).
	StatusAuditSchedule    string `mapstructure:"STATUS_AUDIT_SCHEDULE"`
	RatingsRefreshSchedule string `mapstructure:"RATINGS_REFRESH_SCHEDULE"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "salonhub")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("TOKEN_TTL_HOURS", 24)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("CACHE_TTL_SECONDS", 300)
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "config/firebase-service-account.json")
	viper.SetDefault("STORAGE_PROVIDER", "cloudinary")
	viper.SetDefault("FIREBASE_STORAGE_BUCKET", "")
	viper.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	viper.SetDefault("CLOUDINARY_API_KEY", "")
	viper.SetDefault("CLOUDINARY_API_SECRET", "")
	viper.SetDefault("SMTP_HOST", "localhost")
	viper.SetDefault("SMTP_PORT", "1025")
	viper.SetDefault("SMTP_FROM", "bookings@salonhub.local")
	viper.SetDefault("SMS_WEBHOOK_URL", "")
	viper.SetDefault("SMS_WEBHOOK_TOKEN", "")
	viper.SetDefault("SETTINGS_ENCRYPTION_KEY", "")
	viper.SetDefault("SALON_TIMEZONE", "UTC")
	viper.SetDefault("CURRENCY", "USD")
	viper.SetDefault("TAX_RATE", 0.0)
	viper.SetDefault("STATUS_AUDIT_SCHEDULE", "0 2 * * *")
	viper.SetDefault("RATINGS_REFRESH_SCHEDULE", "30 2 * * *")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// TokenTTL is the lifetime of issued session tokens.
func TokenTTL() time.Duration {
	if AppConfig.TokenTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(AppConfig.TokenTTLHours) * time.Hour
}

// CacheTTL is the expiry applied to cached read models.
func CacheTTL() time.Duration {
	if AppConfig.CacheTTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(AppConfig.CacheTTLSeconds) * time.Second
}

// Location resolves SALON_TIMEZONE, falling back to UTC.
func Location() *time.Location {
	if AppConfig.SalonTimezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(AppConfig.SalonTimezone)
	if err != nil {
		log.Printf("invalid SALON_TIMEZONE %q, using UTC: %v", AppConfig.SalonTimezone, err)
		return time.UTC
	}
	return loc
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(AppConfig.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
