package staffRepo

import (
	"context"
	"fmt"
	"time"

	"salonhub/database"
	recordsRepo "salonhub/database/repository/records"
	"salonhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StaffRepository adds the staff-specific queries to the shared CRUD surface.
type StaffRepository interface {
	recordsRepo.RecordRepository[models.Staff]

	// ListActive returns active staff ordered by name. branchID "" or "all"
	// matches every branch.
	ListActive(ctx context.Context, branchID string) ([]models.Staff, error)
	// RatingsFromFeedbacks averages feedback ratings per staff id.
	RatingsFromFeedbacks(ctx context.Context) ([]models.StaffRating, error)
	SetRating(ctx context.Context, id string, average float64, count int) error
}

type mongoStaffRepo struct {
	*recordsRepo.MongoRecordRepo[models.Staff, *models.Staff]
	coll      *mongo.Collection
	feedbacks *mongo.Collection
}

// NewMongoStaffRepo returns a StaffRepository backed by MongoDB.
func NewMongoStaffRepo() StaffRepository {
	db := database.DB()
	return &mongoStaffRepo{
		MongoRecordRepo: recordsRepo.NewMongoRecordRepo[models.Staff, *models.Staff](
			database.StaffCollection,
			[]string{"name", "rating", "status"},
			mongo.IndexModel{Keys: bson.D{{Key: "branchId", Value: 1}, {Key: "status", Value: 1}}},
		),
		coll:      db.Collection(database.StaffCollection),
		feedbacks: db.Collection(database.FeedbacksCollection),
	}
}

func (r *mongoStaffRepo) ListActive(ctx context.Context, branchID string) ([]models.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Documents written before status existed count as active.
	filter := bson.M{"status": bson.M{"$ne": models.StatusInactive}}
	if branchID != "" && branchID != "all" {
		filter["branchId"] = branchID
	}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list active staff: %w", err)
	}
	defer cursor.Close(ctx)

	staff := []models.Staff{}
	if err := cursor.All(ctx, &staff); err != nil {
		return nil, fmt.Errorf("failed to decode staff: %w", err)
	}
	return staff, nil
}

func (r *mongoStaffRepo) RatingsFromFeedbacks(ctx context.Context) ([]models.StaffRating, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := bson.A{
		bson.M{"$match": bson.M{"staffId": bson.M{"$nin": bson.A{nil, ""}}}},
		bson.M{"$group": bson.M{
			"_id":     "$staffId",
			"average": bson.M{"$avg": "$rating"},
			"count":   bson.M{"$sum": 1},
		}},
	}
	cursor, err := r.feedbacks.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate staff ratings: %w", err)
	}
	defer cursor.Close(ctx)

	out := []models.StaffRating{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode staff ratings: %w", err)
	}
	return out, nil
}

func (r *mongoStaffRepo) SetRating(ctx context.Context, id string, average float64, count int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"rating": average, "reviewCount": count, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set rating for staff %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("staff %s: %w", id, mongo.ErrNoDocuments)
	}
	return nil
}
