package schedule

import (
	"testing"

	"salonhub/models"
)

func TestNewDayViewTotals(t *testing.T) {
	bookings := []models.Booking{
		booking(t, "a", "2025-06-01", "09:00", "B1", "Alice"),
		booking(t, "b", "2025-06-01", "09:00", "B1", "Ghost"),
		booking(t, "c", "2025-06-01", "15:00", "B1", "Alice"),
	}
	view := NewDayView(DayViewInput{
		Date:       "2025-06-01",
		BranchID:   "B1",
		Hours:      EnabledHours{"15": false},
		StaffNames: []string{"Alice", "Bob"},
		Bookings:   bookings,
	})

	if len(view.Slots) != 46 {
		t.Fatalf("expected 46 slots, got %d", len(view.Slots))
	}
	if got := view.Summary["Alice"]; got.Bookings != 1 || got.Price != 30 || got.Duration != 45 {
		t.Fatalf("unexpected Alice summary %+v", got)
	}
	if got := view.Summary[Unassigned]; got.Bookings != 1 {
		t.Fatalf("unexpected unassigned summary %+v", got)
	}
	if got := view.Summary["Bob"]; got.Bookings != 0 {
		t.Fatalf("unexpected Bob summary %+v", got)
	}
	if view.Total.Bookings != 2 || view.Total.Price != 60 {
		t.Fatalf("unexpected total %+v", view.Total)
	}
	if got := view.Cell("09:00", "Alice"); len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("unexpected cell %v", got)
	}
	if view.Cell("15:00", "Alice") != nil {
		t.Fatalf("disabled slot should not be on the grid")
	}
}

func TestNewDayViewDefaults(t *testing.T) {
	view := NewDayView(DayViewInput{Date: "2025-06-01"})
	if view.BranchID != AllBranches {
		t.Fatalf("expected branch %q, got %q", AllBranches, view.BranchID)
	}
	if len(view.Slots) != 48 || len(view.Columns) != 1 || view.Columns[0] != Unassigned {
		t.Fatalf("unexpected defaults: %d slots, columns %v", len(view.Slots), view.Columns)
	}
}
