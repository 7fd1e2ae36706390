package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salonhub/models"
	"salonhub/services/tasks"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// BookingLoader loads the booking a task refers to.
type BookingLoader interface {
	GetByID(ctx context.Context, id string) (*models.Booking, error)
}

// Notifier sends the booking messages.
type Notifier interface {
	NotifyBookingConfirmation(ctx context.Context, b *models.Booking) error
	NotifyBookingReminder(ctx context.Context, b *models.Booking) error
}

// TaskHandlers processes booking tasks.
type TaskHandlers struct {
	bookings BookingLoader
	notifier Notifier
	loc      *time.Location
	logger   *zap.Logger
}

func NewTaskHandlers(bookings BookingLoader, notifier Notifier, loc *time.Location, logger *zap.Logger) *TaskHandlers {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskHandlers{bookings: bookings, notifier: notifier, loc: loc, logger: logger}
}

// load returns nil when the booking no longer exists; the task is then dropped.
func (h *TaskHandlers) load(ctx context.Context, t *asynq.Task) (*models.Booking, tasks.BookingPayload, error) {
	p, err := tasks.ParseBookingPayload(t)
	if err != nil {
		return nil, p, fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	b, err := h.bookings.GetByID(ctx, p.BookingID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.logger.Info("booking gone, dropping task", zap.String("type", t.Type()), zap.String("bookingId", p.BookingID))
		return nil, p, nil
	}
	if err != nil {
		return nil, p, err
	}
	return b, p, nil
}

func (h *TaskHandlers) HandleConfirmation(ctx context.Context, t *asynq.Task) error {
	b, _, err := h.load(ctx, t)
	if err != nil || b == nil {
		return err
	}
	if err := h.notifier.NotifyBookingConfirmation(ctx, b); err != nil {
		h.logger.Warn("confirmation delivery failed", zap.String("bookingId", b.ID), zap.Error(err))
		return err
	}
	return nil
}

// HandleReminder skips bookings that were cancelled or moved since the
// reminder was scheduled.
func (h *TaskHandlers) HandleReminder(ctx context.Context, t *asynq.Task) error {
	b, p, err := h.load(ctx, t)
	if err != nil || b == nil {
		return err
	}
	if b.Status != models.BookingUpcoming {
		h.logger.Debug("reminder skipped, booking not upcoming", zap.String("bookingId", b.ID), zap.String("status", b.Status))
		return nil
	}
	at, ok := tasks.AppointmentTime(b, h.loc)
	if !ok || (!p.ScheduledFor.IsZero() && !at.Equal(p.ScheduledFor)) {
		h.logger.Debug("reminder skipped, booking rescheduled", zap.String("bookingId", b.ID))
		return nil
	}
	if err := h.notifier.NotifyBookingReminder(ctx, b); err != nil {
		h.logger.Warn("reminder delivery failed", zap.String("bookingId", b.ID), zap.Error(err))
		return err
	}
	return nil
}

// Mux routes task types to their handlers.
func (h *TaskHandlers) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingConfirmation, h.HandleConfirmation)
	mux.HandleFunc(tasks.TypeBookingReminder, h.HandleReminder)
	return mux
}

// StartWorker runs the asynq server in the background, retrying start-up
// with backoff. The returned server is shut down by the caller.
func StartWorker(opt asynq.RedisClientOpt, h *TaskHandlers, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: 10,
		Queues:      map[string]int{"default": 1},
		Logger:      logger.Sugar(),
	})
	mux := h.Mux()

	go func() {
		logger.Info("starting task worker")
		const maxAttempts = 5
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			if errors.Is(err, asynq.ErrServerClosed) {
				return
			}
			logger.Error("task worker failed to start", zap.Int("attempt", attempt), zap.Error(err))
			time.Sleep(time.Duration(attempt*2) * time.Second)
		}
		logger.Error("task worker gave up after max attempts")
	}()
	return srv
}
