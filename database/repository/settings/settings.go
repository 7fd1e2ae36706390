package settingsRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salonhub/database"
	"salonhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// SettingsRepository stores the singleton settings documents and the
// per-branch booking hours. Getters return nil, nil when nothing is saved.
type SettingsRepository interface {
	GetBranding(ctx context.Context) (*models.Branding, error)
	SaveBranding(ctx context.Context, b *models.Branding) error
	GetNotifications(ctx context.Context) (*models.NotificationSettings, error)
	SaveNotifications(ctx context.Context, n *models.NotificationSettings) error
	GetBookingHours(ctx context.Context, branchID string) (*models.BookingHours, error)
	SaveBookingHours(ctx context.Context, h *models.BookingHours) error
}

type mongoSettingsRepo struct {
	settings *mongo.Collection
	hours    *mongo.Collection
}

// NewMongoSettingsRepo returns a SettingsRepository backed by MongoDB.
func NewMongoSettingsRepo() SettingsRepository {
	db := database.DB()
	repo := &mongoSettingsRepo{
		settings: db.Collection(database.SettingsCollection),
		hours:    db.Collection(database.BookingHoursCollection),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := repo.hours.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "branchId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		zap.L().Warn("failed to create booking hours index", zap.Error(err))
	}
	return repo
}

func (r *mongoSettingsRepo) findOne(ctx context.Context, coll *mongo.Collection, filter bson.M, out any) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := coll.FindOne(ctx, filter).Decode(out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *mongoSettingsRepo) upsert(ctx context.Context, coll *mongo.Collection, filter bson.M, doc any) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := coll.ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true))
	return err
}

func (r *mongoSettingsRepo) GetBranding(ctx context.Context) (*models.Branding, error) {
	var b models.Branding
	found, err := r.findOne(ctx, r.settings, bson.M{"id": models.SettingsBranding}, &b)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch branding: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &b, nil
}

func (r *mongoSettingsRepo) SaveBranding(ctx context.Context, b *models.Branding) error {
	b.ID = models.SettingsBranding
	b.UpdatedAt = time.Now()
	if err := r.upsert(ctx, r.settings, bson.M{"id": b.ID}, b); err != nil {
		return fmt.Errorf("failed to save branding: %w", err)
	}
	return nil
}

func (r *mongoSettingsRepo) GetNotifications(ctx context.Context) (*models.NotificationSettings, error) {
	var n models.NotificationSettings
	found, err := r.findOne(ctx, r.settings, bson.M{"id": models.SettingsNotifications}, &n)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notification settings: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &n, nil
}

func (r *mongoSettingsRepo) SaveNotifications(ctx context.Context, n *models.NotificationSettings) error {
	n.ID = models.SettingsNotifications
	n.UpdatedAt = time.Now()
	if err := r.upsert(ctx, r.settings, bson.M{"id": n.ID}, n); err != nil {
		return fmt.Errorf("failed to save notification settings: %w", err)
	}
	return nil
}

func (r *mongoSettingsRepo) GetBookingHours(ctx context.Context, branchID string) (*models.BookingHours, error) {
	var h models.BookingHours
	found, err := r.findOne(ctx, r.hours, bson.M{"branchId": branchID}, &h)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking hours for %s: %w", branchID, err)
	}
	if !found {
		return nil, nil
	}
	return &h, nil
}

func (r *mongoSettingsRepo) SaveBookingHours(ctx context.Context, h *models.BookingHours) error {
	h.UpdatedAt = time.Now()
	if err := r.upsert(ctx, r.hours, bson.M{"branchId": h.BranchID}, h); err != nil {
		return fmt.Errorf("failed to save booking hours for %s: %w", h.BranchID, err)
	}
	return nil
}
