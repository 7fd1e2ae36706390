package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"salonhub/models"
	"salonhub/services/staff"
	"salonhub/services/tasks"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeLoader map[string]*models.Booking

func (f fakeLoader) GetByID(_ context.Context, id string) (*models.Booking, error) {
	b, ok := f[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, mongo.ErrNoDocuments)
	}
	return b, nil
}

type countingNotifier struct {
	confirmations, reminders int
	err                      error
}

func (n *countingNotifier) NotifyBookingConfirmation(context.Context, *models.Booking) error {
	n.confirmations++
	return n.err
}

func (n *countingNotifier) NotifyBookingReminder(context.Context, *models.Booking) error {
	n.reminders++
	return n.err
}

func booking(t *testing.T, id, day, at, status string) *models.Booking {
	t.Helper()
	d, err := models.ParseDay(day)
	if err != nil {
		t.Fatalf("parse day: %v", err)
	}
	b := &models.Booking{Date: d, Time: at, Status: status}
	b.ID = id
	return b
}

func reminderTask(t *testing.T, id string, at time.Time) *asynq.Task {
	t.Helper()
	task, _, err := tasks.NewReminderTask(id, at, at.Add(-time.Hour))
	if err != nil {
		t.Fatalf("reminder task: %v", err)
	}
	return task
}

func TestHandleConfirmation(t *testing.T) {
	n := &countingNotifier{}
	h := NewTaskHandlers(fakeLoader{"b1": booking(t, "b1", "2025-06-01", "14:00", models.BookingUpcoming)}, n, time.UTC, nil)

	task, _, _ := tasks.NewConfirmationTask("b1")
	if err := h.HandleConfirmation(context.Background(), task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.confirmations != 1 {
		t.Fatalf("expected one confirmation, got %d", n.confirmations)
	}

	gone, _, _ := tasks.NewConfirmationTask("missing")
	if err := h.HandleConfirmation(context.Background(), gone); err != nil {
		t.Fatalf("missing booking should drop the task, got %v", err)
	}
	if n.confirmations != 1 {
		t.Fatalf("no message expected for a deleted booking")
	}
}

func TestHandleConfirmationBadPayloadSkipsRetry(t *testing.T) {
	h := NewTaskHandlers(fakeLoader{}, &countingNotifier{}, time.UTC, nil)
	raw, _ := json.Marshal(map[string]string{"other": "x"})
	err := h.HandleConfirmation(context.Background(), asynq.NewTask(tasks.TypeBookingConfirmation, raw))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}

func TestHandleConfirmationReturnsDeliveryError(t *testing.T) {
	n := &countingNotifier{err: errors.New("smtp down")}
	h := NewTaskHandlers(fakeLoader{"b1": booking(t, "b1", "2025-06-01", "14:00", models.BookingUpcoming)}, n, time.UTC, nil)
	task, _, _ := tasks.NewConfirmationTask("b1")
	if err := h.HandleConfirmation(context.Background(), task); err == nil {
		t.Fatalf("expected delivery error to reach asynq")
	}
}

func TestHandleReminder(t *testing.T) {
	at := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	cases := []struct {
		name    string
		booking *models.Booking
		want    int
	}{
		{"upcoming at scheduled time", booking(t, "b1", "2025-06-01", "14:00", models.BookingUpcoming), 1},
		{"cancelled", booking(t, "b1", "2025-06-01", "14:00", models.BookingCancelled), 0},
		{"moved to another time", booking(t, "b1", "2025-06-01", "15:30", models.BookingUpcoming), 0},
		{"moved to another day", booking(t, "b1", "2025-06-02", "14:00", models.BookingUpcoming), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := &countingNotifier{}
			h := NewTaskHandlers(fakeLoader{"b1": tc.booking}, n, time.UTC, nil)
			if err := h.HandleReminder(context.Background(), reminderTask(t, "b1", at)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n.reminders != tc.want {
				t.Fatalf("expected %d reminders, got %d", tc.want, n.reminders)
			}
		})
	}
}

type fakeStale struct {
	bookings []models.Booking
	err      error
}

func (f fakeStale) StaleUpcoming(context.Context) ([]models.Booking, error) {
	return f.bookings, f.err
}

type fakeRatings struct{ calls int }

func (f *fakeRatings) RefreshRatings(context.Context) (staff.RefreshResult, error) {
	f.calls++
	return staff.RefreshResult{Updated: 1}, nil
}

func TestAuditStatuses(t *testing.T) {
	b := booking(t, "old", "2025-05-01", "10:00", models.BookingUpcoming)
	j := NewJobs(fakeStale{bookings: []models.Booking{*b}}, &fakeRatings{}, nil)
	if n := j.AuditStatuses(context.Background()); n != 1 {
		t.Fatalf("expected 1 stale booking, got %d", n)
	}

	failing := NewJobs(fakeStale{err: errors.New("db down")}, &fakeRatings{}, nil)
	if n := failing.AuditStatuses(context.Background()); n != 0 {
		t.Fatalf("expected 0 on failure, got %d", n)
	}
}

func TestStartSchedulerRejectsBadSpec(t *testing.T) {
	r := &fakeRatings{}
	j := NewJobs(fakeStale{}, r, nil)
	if _, err := StartScheduler(context.Background(), j, "not a spec", "0 3 * * *"); err == nil {
		t.Fatalf("expected invalid cron spec error")
	}

	c, err := StartScheduler(context.Background(), j, "0 2 * * *", "30 2 * * *")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Entries()) != 2 {
		t.Fatalf("expected two entries, got %d", len(c.Entries()))
	}
	<-c.Stop().Done()

	j.RefreshRatings(context.Background())
	if r.calls != 1 {
		t.Fatalf("expected one refresh, got %d", r.calls)
	}
}
