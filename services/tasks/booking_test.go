package tasks

import (
	"context"
	"testing"
	"time"

	"salonhub/models"

	"github.com/hibiken/asynq"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, t *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, t)
	return &asynq.TaskInfo{}, nil
}

func upcoming(day, at string) *models.Booking {
	b := &models.Booking{Time: at, Status: models.BookingUpcoming}
	b.ID = "b1"
	b.Date, _ = models.ParseDay(day)
	return b
}

func newScheduler(f *fakeEnqueuer, now time.Time) *BookingScheduler {
	s := NewBookingScheduler(f, time.UTC, func(context.Context) time.Duration { return 2 * time.Hour })
	s.now = func() time.Time { return now }
	return s
}

func TestScheduleReminder(t *testing.T) {
	f := &fakeEnqueuer{}
	s := newScheduler(f, time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
	if err := s.ScheduleReminder(context.Background(), upcoming("2025-06-01", "14:00")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.tasks) != 1 || f.tasks[0].Type() != TypeBookingReminder {
		t.Fatalf("expected one reminder task, got %v", f.tasks)
	}
	p, err := ParseBookingPayload(f.tasks[0])
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	want := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	if p.BookingID != "b1" || !p.ScheduledFor.Equal(want) {
		t.Fatalf("unexpected payload %+v", p)
	}
}

func TestScheduleReminderSkips(t *testing.T) {
	now := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)
	cases := map[string]*models.Booking{
		"inside lead time": upcoming("2025-06-01", "14:00"),
		"bad time":         upcoming("2025-06-02", "later"),
	}
	cancelled := upcoming("2025-06-05", "14:00")
	cancelled.Status = models.BookingCancelled
	cases["cancelled"] = cancelled

	for name, b := range cases {
		f := &fakeEnqueuer{}
		if err := newScheduler(f, now).ScheduleReminder(context.Background(), b); err != nil {
			t.Fatalf("%s: unexpected error %v", name, err)
		}
		if len(f.tasks) != 0 {
			t.Fatalf("%s: expected no task", name)
		}
	}
}

func TestScheduleReminderConflictIsNoop(t *testing.T) {
	f := &fakeEnqueuer{err: asynq.ErrTaskIDConflict}
	s := newScheduler(f, time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
	if err := s.ScheduleReminder(context.Background(), upcoming("2025-06-01", "14:00")); err != nil {
		t.Fatalf("conflict should be ignored, got %v", err)
	}
}

func TestParseBookingPayloadRejectsEmpty(t *testing.T) {
	if _, err := ParseBookingPayload(asynq.NewTask(TypeBookingConfirmation, []byte(`{}`))); err == nil {
		t.Fatalf("expected error")
	}
}
