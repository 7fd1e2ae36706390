package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"salonhub/database"
	recordsRepo "salonhub/database/repository/records"
	"salonhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// bookingDoc mirrors the uuid into _id so change-stream delete events,
// which only carry the document key, can be mapped back to a booking id.
type bookingDoc struct {
	MongoID        string `bson:"_id"`
	models.Booking `bson:",inline"`
}

// NewMongoBookingRepo creates a booking repository and ensures its indexes.
func NewMongoBookingRepo() BookingRepository {
	repo := &MongoBookingRepo{coll: database.DB().Collection(database.BookingsCollection)}
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("failed to create booking indexes", zap.Error(err))
	}
	return repo
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, d)
}

func (r *MongoBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, bookingDoc{MongoID: b.ID, Booking: *b}); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) Update(ctx context.Context, b *models.Booking) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	b.UpdatedAt = time.Now()
	set, err := recordsRepo.SetDoc(b)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": b.ID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update booking %s: %w", b.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s: %w", b.ID, mongo.ErrNoDocuments)
	}
	return nil
}

func (r *MongoBookingRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete booking %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("booking %s: %w", id, mongo.ErrNoDocuments)
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	var b models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &b, nil
}

func (r *MongoBookingRepo) SetStatus(ctx context.Context, id, status string) error {
	return r.setFields(ctx, id, bson.M{"status": status})
}

func (r *MongoBookingRepo) SetInvoiceURL(ctx context.Context, id, url string) error {
	return r.setFields(ctx, id, bson.M{"invoiceUrl": url})
}

func (r *MongoBookingRepo) setFields(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	fields["updatedAt"] = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s: %w", id, mongo.ErrNoDocuments)
	}
	return nil
}
