package recordsRepo

import (
	"context"
	"fmt"
	"time"

	"salonhub/database"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoRecordRepo implements RecordRepository for any DocMeta document.
type MongoRecordRepo[T any, P Record[T]] struct {
	coll     *mongo.Collection
	name     string
	sortable map[string]bool
}

// NewMongoRecordRepo binds a repository to a collection. sortable lists the
// fields List may sort on; "createdAt" is always allowed.
func NewMongoRecordRepo[T any, P Record[T]](collection string, sortable []string, indexes ...mongo.IndexModel) *MongoRecordRepo[T, P] {
	repo := &MongoRecordRepo[T, P]{
		coll:     database.DB().Collection(collection),
		name:     collection,
		sortable: map[string]bool{"createdAt": true},
	}
	for _, f := range sortable {
		repo.sortable[f] = true
	}
	if err := repo.ensureIndexes(indexes); err != nil {
		zap.L().Warn("failed to create indexes", zap.String("collection", collection), zap.Error(err))
	}
	return repo
}

func (r *MongoRecordRepo[T, P]) ensureIndexes(extra []mongo.IndexModel) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := append([]mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}, extra...)
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, d)
}

// Create stamps a uuid (when empty) and the audit times, then inserts.
func (r *MongoRecordRepo[T, P]) Create(ctx context.Context, doc *T) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	meta := P(doc).Meta()
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	now := time.Now()
	meta.CreatedAt = now
	meta.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create %s record: %w", r.name, err)
	}
	return nil
}

// Update replaces every field except createdAt.
func (r *MongoRecordRepo[T, P]) Update(ctx context.Context, doc *T) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	meta := P(doc).Meta()
	meta.UpdatedAt = time.Now()

	set, err := SetDoc(doc)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": meta.ID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update %s record %s: %w", r.name, meta.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s record %s: %w", r.name, meta.ID, mongo.ErrNoDocuments)
	}
	return nil
}

// SetDoc encodes v for a $set, leaving out createdAt.
func SetDoc(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	delete(doc, "createdAt")
	delete(doc, "_id")
	return doc, nil
}

func (r *MongoRecordRepo[T, P]) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s record %s: %w", r.name, id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s record %s: %w", r.name, id, mongo.ErrNoDocuments)
	}
	return nil
}

func (r *MongoRecordRepo[T, P]) DeleteWhere(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete %s records: %w", r.name, err)
	}
	return res.DeletedCount, nil
}

func (r *MongoRecordRepo[T, P]) GetByID(ctx context.Context, id string) (*T, error) {
	return r.FindOne(ctx, bson.M{"id": id})
}

func (r *MongoRecordRepo[T, P]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc T
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to fetch %s record: %w", r.name, err)
	}
	return &doc, nil
}

func (r *MongoRecordRepo[T, P]) Count(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	if filter == nil {
		filter = bson.M{}
	}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s records: %w", r.name, err)
	}
	return n, nil
}
