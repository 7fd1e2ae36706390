package booking

import (
	"sort"
	"sync"

	"salonhub/models"
	"salonhub/services/schedule"
)

// ApplyResult says what a change event did to a LiveDay.
type ApplyResult int

const (
	Unchanged ApplyResult = iota
	Changed
	// Resync means the event could not be mapped to a booking id and the
	// day should be reloaded from the store.
	Resync
)

// LiveDay is the set of bookings for one day and branch filter, keyed by
// booking id. A locally created booking and its later change-stream echo
// occupy the same key, so the echo replaces rather than duplicates it.
type LiveDay struct {
	mu       sync.Mutex
	day      string
	branch   string
	bookings map[string]models.Booking
}

func NewLiveDay(day, branch string) *LiveDay {
	return &LiveDay{day: day, branch: normalizeBranch(branch), bookings: map[string]models.Booking{}}
}

func (l *LiveDay) Day() string    { return l.day }
func (l *LiveDay) Branch() string { return l.branch }

func (l *LiveDay) belongs(b models.Booking) bool {
	if b.Date.Day() != l.day {
		return false
	}
	return l.branch == schedule.AllBranches || b.BranchID == l.branch
}

// Seed replaces the contents with bookings belonging to this day.
func (l *LiveDay) Seed(bookings []models.Booking) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.bookings = make(map[string]models.Booking, len(bookings))
	for _, b := range bookings {
		if b.ID != "" && l.belongs(b) {
			l.bookings[b.ID] = b
		}
	}
}

// Apply folds one change event in. A booking moved to another day or
// branch is removed.
func (l *LiveDay) Apply(ev models.BookingEvent) ApplyResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := ev.ID
	if id == "" && ev.Booking != nil {
		id = ev.Booking.ID
	}
	if id == "" {
		return Resync
	}

	_, had := l.bookings[id]
	if ev.Op == "delete" || ev.Booking == nil {
		if !had {
			return Unchanged
		}
		delete(l.bookings, id)
		return Changed
	}

	b := *ev.Booking
	b.ID = id
	if !l.belongs(b) {
		if !had {
			return Unchanged
		}
		delete(l.bookings, id)
		return Changed
	}
	l.bookings[id] = b
	return Changed
}

// Snapshot returns the bookings ordered by time then id.
func (l *LiveDay) Snapshot() []models.Booking {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Booking, 0, len(l.bookings))
	for _, b := range l.bookings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (l *LiveDay) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.bookings)
}
