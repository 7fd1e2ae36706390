package settings

import (
	"context"
	"time"

	recordsRepo "salonhub/database/repository/records"
	settingsRepo "salonhub/database/repository/settings"
	"salonhub/models"
	"salonhub/utils"

	"go.uber.org/zap"
)

// DefaultSettingsService implements SettingsService. Reads go through the
// JSON cache; every write drops the affected keys.
type DefaultSettingsService struct {
	repo     settingsRepo.SettingsRepository
	payments recordsRepo.RecordRepository[models.PaymentMethod]
	cache    utils.JSONCache
	sealer   *utils.Sealer
	ttl      time.Duration
	logger   *zap.Logger
}

// NewSettingsService wires the service. cache and sealer may be nil: without
// a cache every read hits the store, and without a sealer secret keys are
// rejected.
func NewSettingsService(repo settingsRepo.SettingsRepository, payments recordsRepo.RecordRepository[models.PaymentMethod],
	cache utils.JSONCache, sealer *utils.Sealer, ttl time.Duration, logger *zap.Logger) *DefaultSettingsService {
	if cache == nil {
		cache = (*utils.RedisJSONCache)(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultSettingsService{
		repo:     repo,
		payments: payments,
		cache:    cache,
		sealer:   sealer,
		ttl:      ttl,
		logger:   logger,
	}
}

func (s *DefaultSettingsService) cacheGet(ctx context.Context, key string, out any) bool {
	hit, err := s.cache.GetJSON(ctx, key, out)
	if err != nil {
		s.logger.Warn("settings cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (s *DefaultSettingsService) cacheSet(ctx context.Context, key string, v any) {
	if err := s.cache.SetJSON(ctx, key, v, s.ttl); err != nil {
		s.logger.Warn("settings cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *DefaultSettingsService) cacheDrop(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn("settings cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func settingsKey(id string) string {
	return utils.SettingsCachePrefix + id
}

// GetBranding returns the saved branding, or an empty document.
func (s *DefaultSettingsService) GetBranding(ctx context.Context) (*models.Branding, error) {
	var cached models.Branding
	if s.cacheGet(ctx, settingsKey(models.SettingsBranding), &cached) {
		return &cached, nil
	}
	b, err := s.repo.GetBranding(ctx)
	if err != nil {
		return nil, err
	}
	if b == nil {
		b = &models.Branding{ID: models.SettingsBranding}
	}
	s.cacheSet(ctx, settingsKey(models.SettingsBranding), b)
	return b, nil
}

func (s *DefaultSettingsService) SaveBranding(ctx context.Context, b models.Branding) (*models.Branding, error) {
	if err := utils.ValidateStruct(b); err != nil {
		return nil, err
	}
	if err := s.repo.SaveBranding(ctx, &b); err != nil {
		return nil, err
	}
	s.cacheDrop(ctx, settingsKey(models.SettingsBranding))
	return &b, nil
}

// GetNotificationSettings falls back to the defaults until a document is saved.
func (s *DefaultSettingsService) GetNotificationSettings(ctx context.Context) (models.NotificationSettings, error) {
	var cached models.NotificationSettings
	if s.cacheGet(ctx, settingsKey(models.SettingsNotifications), &cached) {
		return cached, nil
	}
	n, err := s.repo.GetNotifications(ctx)
	if err != nil {
		return models.NotificationSettings{}, err
	}
	out := models.DefaultNotificationSettings()
	if n != nil {
		out = *n
	}
	s.cacheSet(ctx, settingsKey(models.SettingsNotifications), out)
	return out, nil
}

func (s *DefaultSettingsService) SaveNotificationSettings(ctx context.Context, n models.NotificationSettings) (*models.NotificationSettings, error) {
	if err := utils.ValidateStruct(n); err != nil {
		return nil, err
	}
	if err := s.repo.SaveNotifications(ctx, &n); err != nil {
		return nil, err
	}
	s.cacheDrop(ctx, settingsKey(models.SettingsNotifications))
	return &n, nil
}

// ReminderLead is the configured reminder lead time; the default applies
// when settings cannot be read.
func (s *DefaultSettingsService) ReminderLead(ctx context.Context) time.Duration {
	n, err := s.GetNotificationSettings(ctx)
	if err != nil {
		s.logger.Warn("using default reminder lead", zap.Error(err))
		n = models.DefaultNotificationSettings()
	}
	return time.Duration(n.ReminderLeadMinutes) * time.Minute
}
