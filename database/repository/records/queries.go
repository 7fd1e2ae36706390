package recordsRepo

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BuildFilter merges the equality filter with the search clause.
func BuildFilter(opts ListOptions) bson.M {
	filter := bson.M{}
	for k, v := range opts.Filter {
		filter[k] = v
	}
	q := strings.TrimSpace(opts.Search)
	if q == "" || len(opts.SearchFields) == 0 {
		return filter
	}
	re := bson.M{"$regex": regexp.QuoteMeta(q), "$options": "i"}
	or := make(bson.A, 0, len(opts.SearchFields))
	for _, f := range opts.SearchFields {
		or = append(or, bson.M{f: re})
	}
	filter["$or"] = or
	return filter
}

// List returns matching records sorted by opts.SortBy (default createdAt).
func (r *MongoRecordRepo[T, P]) List(ctx context.Context, opts ListOptions) ([]T, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	sortBy := opts.SortBy
	if !r.sortable[sortBy] {
		sortBy = "createdAt"
	}
	dir := 1
	if opts.Desc {
		dir = -1
	}
	findOpts := options.Find().SetSort(bson.D{{Key: sortBy, Value: dir}})
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	cursor, err := r.coll.Find(ctx, BuildFilter(opts), findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s records: %w", r.name, err)
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s records: %w", r.name, err)
	}
	return out, nil
}
