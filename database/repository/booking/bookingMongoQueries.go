package bookingRepo

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"salonhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var sortFields = map[string]string{
	"date":         "date",
	"createdAt":    "createdAt",
	"totalPrice":   "totalPrice",
	"customerName": "customerName",
	"time":         "time",
}

// dateRange matches [start, end) across the stored date shapes: native
// datetime, ISO string, epoch-seconds object and bare epoch number. ISO
// strings may carry any offset, so their window is one day wider on each
// side; callers narrow the result with inRange or exactStringDays.
func dateRange(start, end time.Time) bson.M {
	loc := models.DayLocation()
	startDay := start.In(loc).AddDate(0, 0, -1).Format(models.DayLayout)
	endDay := end.In(loc).AddDate(0, 0, 1).Format(models.DayLayout)
	secs := bson.M{"$gte": start.Unix(), "$lt": end.Unix()}
	return bson.M{"$or": bson.A{
		bson.M{"date": bson.M{"$gte": start, "$lt": end}},
		bson.M{"date": bson.M{"$type": "string", "$gte": startDay, "$lt": endDay}},
		bson.M{"date.seconds": secs},
		bson.M{"date._seconds": secs},
		bson.M{"date": bson.M{"$type": "number", "$gte": start.Unix(), "$lt": end.Unix()}},
	}}
}

// inRange keeps bookings whose decoded date falls in [start, end).
func inRange(bookings []models.Booking, start, end time.Time) []models.Booking {
	out := bookings[:0]
	for _, b := range bookings {
		if !b.Date.IsZero() && !b.Date.Before(start) && b.Date.Before(end) {
			out = append(out, b)
		}
	}
	return out
}

// exactStringDays is the aggregation counterpart of inRange: string dates
// are resolved to a salon-zone day and compared against [start, end).
// Date-only strings are already days; other strings are parsed by the server.
func exactStringDays(start, end time.Time) bson.M {
	loc := models.DayLocation()
	day := bson.M{"$cond": bson.M{
		"if":   bson.M{"$lte": bson.A{bson.M{"$strLenCP": "$date"}, 10}},
		"then": "$date",
		"else": bson.M{"$dateToString": bson.M{
			"date":     bson.M{"$dateFromString": bson.M{"dateString": "$date", "onError": nil}},
			"format":   "%Y-%m-%d",
			"timezone": loc.String(),
		}},
	}}
	return bson.M{"$expr": bson.M{"$or": bson.A{
		bson.M{"$ne": bson.A{bson.M{"$type": "$date"}, "string"}},
		bson.M{"$and": bson.A{
			bson.M{"$gte": bson.A{day, start.In(loc).Format(models.DayLayout)}},
			bson.M{"$lt": bson.A{day, end.In(loc).Format(models.DayLayout)}},
		}},
	}}}
}

func branchMatch(branchID string) bool {
	return branchID != "" && branchID != "all"
}

func (r *MongoBookingRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Booking, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) ListByDay(ctx context.Context, day, branchID string) ([]models.Booking, error) {
	d, err := models.ParseDay(day)
	if err != nil {
		return nil, err
	}
	start, end := d.Time, d.AddDate(0, 0, 1)
	filter := dateRange(start, end)
	if branchMatch(branchID) {
		filter["branchId"] = branchID
	}
	bookings, err := r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "time", Value: 1}}))
	if err != nil {
		return nil, err
	}
	return inRange(bookings, start, end), nil
}

func (r *MongoBookingRepo) List(ctx context.Context, f models.BookingFilter) ([]models.Booking, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if branchMatch(f.BranchID) {
		filter["branchId"] = f.BranchID
	}
	if f.CustomerID != "" {
		filter["customerId"] = f.CustomerID
	}

	var and bson.A
	ranged := f.From != "" || f.To != ""
	start := time.Unix(0, 0)
	end := time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)
	if ranged {
		if f.From != "" {
			d, err := models.ParseDay(f.From)
			if err != nil {
				return nil, err
			}
			start = d.Time
		}
		if f.To != "" {
			d, err := models.ParseDay(f.To)
			if err != nil {
				return nil, err
			}
			end = d.AddDate(0, 0, 1)
		}
		and = append(and, dateRange(start, end))
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		re := containsRegex(q)
		and = append(and, bson.M{"$or": bson.A{
			bson.M{"customerName": re},
			bson.M{"customerEmail": re},
			bson.M{"customerPhone": re},
		}})
	}
	if len(and) > 0 {
		filter["$and"] = and
	}

	field, ok := sortFields[f.SortBy]
	if !ok {
		field = "date"
	}
	dir := 1
	if f.Desc {
		dir = -1
	}
	opts := options.Find().SetSort(bson.D{{Key: field, Value: dir}, {Key: "time", Value: dir}})
	bookings, err := r.find(ctx, filter, opts)
	if err != nil || !ranged {
		return bookings, err
	}
	return inRange(bookings, start, end), nil
}

func containsRegex(q string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(q), "$options": "i"}
}

func (r *MongoBookingRepo) ListStaleUpcoming(ctx context.Context, cutoff time.Time) ([]models.Booking, error) {
	start := time.Unix(0, 0)
	filter := dateRange(start, cutoff)
	filter["status"] = models.BookingUpcoming
	bookings, err := r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	return inRange(bookings, start, cutoff), nil
}

func (r *MongoBookingRepo) Aggregate(ctx context.Context, from, to time.Time, branchID string) ([]models.BookingAggregate, error) {
	ctx, cancel := withTimeout(ctx, 10*time.Second)
	defer cancel()

	match := dateRange(from, to)
	if branchMatch(branchID) {
		match["branchId"] = branchID
	}
	pipeline := bson.A{
		bson.M{"$match": match},
		bson.M{"$match": exactStringDays(from, to)},
		bson.M{"$group": bson.M{
			"_id":     bson.M{"status": "$status", "staff": "$staff"},
			"count":   bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$totalPrice"},
			"minutes": bson.M{"$sum": "$totalDuration"},
		}},
		bson.M{"$project": bson.M{
			"_id":     0,
			"status":  "$_id.status",
			"staff":   bson.M{"$ifNull": bson.A{"$_id.staff", ""}},
			"count":   1,
			"revenue": 1,
			"minutes": 1,
		}},
		bson.M{"$sort": bson.D{{Key: "status", Value: 1}, {Key: "staff", Value: 1}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate bookings: %w", err)
	}
	defer cursor.Close(ctx)

	out := []models.BookingAggregate{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode booking aggregates: %w", err)
	}
	return out, nil
}
