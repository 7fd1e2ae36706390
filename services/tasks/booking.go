package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"salonhub/models"

	"github.com/hibiken/asynq"
)

const (
	TypeBookingConfirmation = "booking:confirmation"
	TypeBookingReminder     = "booking:reminder"
)

// BookingPayload identifies the booking a task is about. ScheduledFor pins a
// reminder to the appointment time it was created for, so a reminder for a
// since-rescheduled booking is dropped by the worker.
type BookingPayload struct {
	BookingID    string    `json:"bookingId"`
	ScheduledFor time.Time `json:"scheduledFor,omitzero"`
}

func NewConfirmationTask(bookingID string) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(BookingPayload{BookingID: bookingID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingConfirmation, b)
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.Timeout(30 * time.Second)}
	return task, opts, nil
}

func NewReminderTask(bookingID string, appointment, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(BookingPayload{BookingID: bookingID, ScheduledFor: appointment})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.MaxRetry(3),
		asynq.TaskID(fmt.Sprintf("reminder:%s:%d", bookingID, appointment.Unix())),
	}
	return task, opts, nil
}

func ParseBookingPayload(t *asynq.Task) (BookingPayload, error) {
	var p BookingPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid booking payload: %w", err)
	}
	if p.BookingID == "" {
		return p, errors.New("booking payload without id")
	}
	return p, nil
}

// AppointmentTime combines the booking day and "HH:MM" time in loc.
func AppointmentTime(b *models.Booking, loc *time.Location) (time.Time, bool) {
	if b.Date.IsZero() {
		return time.Time{}, false
	}
	at, err := time.ParseInLocation("2006-01-02 15:04", b.Date.Day()+" "+b.Time, loc)
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// BookingScheduler enqueues the confirmation and reminder for a booking.
type BookingScheduler struct {
	client   Enqueuer
	loc      *time.Location
	leadTime func(ctx context.Context) time.Duration
	now      func() time.Time
}

// NewBookingScheduler builds a scheduler. leadTime returns how long before the
// appointment the reminder fires.
func NewBookingScheduler(client Enqueuer, loc *time.Location, leadTime func(ctx context.Context) time.Duration) *BookingScheduler {
	return &BookingScheduler{client: client, loc: loc, leadTime: leadTime, now: time.Now}
}

func (s *BookingScheduler) ScheduleConfirmation(ctx context.Context, b *models.Booking) error {
	task, opts, err := NewConfirmationTask(b.ID)
	if err != nil {
		return err
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue confirmation: %w", err)
	}
	return nil
}

// ScheduleReminder enqueues a reminder unless the booking is not upcoming or
// the fire time has already passed. Re-enqueueing the same appointment is a no-op.
func (s *BookingScheduler) ScheduleReminder(ctx context.Context, b *models.Booking) error {
	if b.Status != models.BookingUpcoming {
		return nil
	}
	at, ok := AppointmentTime(b, s.loc)
	if !ok {
		return nil
	}
	fireAt := at.Add(-s.leadTime(ctx))
	if !fireAt.After(s.now()) {
		return nil
	}
	task, opts, err := NewReminderTask(b.ID, at, fireAt)
	if err != nil {
		return err
	}
	_, err = s.client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}
