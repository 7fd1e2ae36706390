package bookingRepo

import (
	"context"
	"fmt"

	"salonhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type changeEvent struct {
	OperationType string          `bson:"operationType"`
	DocumentKey   bson.Raw        `bson:"documentKey"`
	FullDocument  *models.Booking `bson:"fullDocument"`
}

// Watch opens a change stream on the bookings collection. Change streams
// need a replica set; the error from Watch says so when run standalone.
func (r *MongoBookingRepo) Watch(ctx context.Context) (<-chan models.BookingEvent, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"operationType": bson.M{"$in": bson.A{"insert", "update", "replace", "delete"}}}}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)

	stream, err := r.coll.Watch(ctx, pipeline, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to watch bookings: %w", err)
	}

	events := make(chan models.BookingEvent, 16)
	go func() {
		defer close(events)
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			out := decodeChange(stream.Decode)
			select {
			case events <- out:
			case <-ctx.Done():
				return
			}
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			zap.L().Error("booking change stream stopped", zap.Error(err))
		}
	}()
	return events, nil
}

// decodeChange turns one change document into an event. A document that
// cannot be decoded becomes a resync so live views reload instead of
// missing the change.
func decodeChange(decode func(any) error) models.BookingEvent {
	var ev changeEvent
	if err := decode(&ev); err != nil {
		zap.L().Warn("failed to decode booking change", zap.Error(err))
		return models.BookingEvent{Op: models.OpResync}
	}
	return toBookingEvent(ev)
}

func toBookingEvent(ev changeEvent) models.BookingEvent {
	out := models.BookingEvent{Op: ev.OperationType, Booking: ev.FullDocument}
	if ev.FullDocument != nil {
		out.ID = ev.FullDocument.ID
		return out
	}
	if ev.DocumentKey != nil {
		if id, ok := ev.DocumentKey.Lookup("_id").StringValueOK(); ok {
			out.ID = id
		}
	}
	return out
}
