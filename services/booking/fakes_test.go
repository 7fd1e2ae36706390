package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"salonhub/models"
	"salonhub/services/schedule"

	"go.mongodb.org/mongo-driver/mongo"
)

// memRepo is an in-memory BookingRepository.
type memRepo struct {
	mu      sync.Mutex
	items   map[string]models.Booking
	creates int
}

func newMemRepo(seed ...models.Booking) *memRepo {
	r := &memRepo{items: map[string]models.Booking{}}
	for _, b := range seed {
		r.items[b.ID] = b
	}
	return r
}

func (r *memRepo) Create(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	r.items[b.ID] = *b
	return nil
}

func (r *memRepo) Update(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[b.ID]; !ok {
		return fmt.Errorf("booking %s: %w", b.ID, mongo.ErrNoDocuments)
	}
	r.items[b.ID] = *b
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("booking %s: %w", id, mongo.ErrNoDocuments)
	}
	delete(r.items, id)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, mongo.ErrNoDocuments)
	}
	return &b, nil
}

func (r *memRepo) SetStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.items[id]
	if !ok {
		return fmt.Errorf("booking %s: %w", id, mongo.ErrNoDocuments)
	}
	b.Status = status
	r.items[id] = b
	return nil
}

func (r *memRepo) SetInvoiceURL(_ context.Context, id, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.items[id]
	if !ok {
		return fmt.Errorf("booking %s: %w", id, mongo.ErrNoDocuments)
	}
	b.InvoiceURL = url
	r.items[id] = b
	return nil
}

func (r *memRepo) List(_ context.Context, f models.BookingFilter) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Booking{}
	for _, b := range r.items {
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *memRepo) ListByDay(_ context.Context, day, branchID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Booking{}
	for _, b := range r.items {
		if b.Date.Day() != day {
			continue
		}
		if branchID != schedule.AllBranches && b.BranchID != branchID {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *memRepo) ListStaleUpcoming(context.Context, time.Time) ([]models.Booking, error) {
	return nil, nil
}

func (r *memRepo) Aggregate(context.Context, time.Time, time.Time, string) ([]models.BookingAggregate, error) {
	return nil, nil
}

func (r *memRepo) Watch(context.Context) (<-chan models.BookingEvent, error) {
	return nil, fmt.Errorf("not supported")
}

type fakeStaff struct{ names []string }

func (f fakeStaff) ListActive(context.Context, string) ([]models.Staff, error) {
	out := make([]models.Staff, 0, len(f.names))
	for _, n := range f.names {
		out = append(out, models.Staff{Name: n})
	}
	return out, nil
}

type fakeBranches struct{}

func (fakeBranches) GetByID(_ context.Context, id string) (*models.Branch, error) {
	if id == "B1" {
		return &models.Branch{Name: "Downtown"}, nil
	}
	return nil, mongo.ErrNoDocuments
}

type fakeHours struct{ hours schedule.EnabledHours }

func (f fakeHours) EnabledHours(context.Context, string) (schedule.EnabledHours, error) {
	return f.hours.Clone(), nil
}

type fakeTasks struct {
	confirmations, reminders int
}

func (f *fakeTasks) ScheduleConfirmation(context.Context, *models.Booking) error {
	f.confirmations++
	return nil
}

func (f *fakeTasks) ScheduleReminder(context.Context, *models.Booking) error {
	f.reminders++
	return nil
}

type recordingPublisher struct{ events []models.BookingEvent }

func (p *recordingPublisher) Publish(ev models.BookingEvent) {
	p.events = append(p.events, ev)
}
