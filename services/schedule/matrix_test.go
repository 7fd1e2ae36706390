package schedule

import (
	"testing"

	"salonhub/models"
)

func booking(t *testing.T, id, day, at, branch, staff string) models.Booking {
	t.Helper()
	d, err := models.ParseDay(day)
	if err != nil {
		t.Fatalf("parse %s: %v", day, err)
	}
	b := models.Booking{
		Date:     d,
		Time:     at,
		BranchID: branch,
		Staff:    staff,
		Services: []models.ServiceLine{{Name: "Cut", Duration: 45, Price: 30, Quantity: 1}},
	}
	b.ID = id
	return b
}

func TestMatrixCompleteWithoutBookings(t *testing.T) {
	slots := DefaultTimeSlots()
	staff := []string{"Alice", "Bob"}
	m := BuildScheduleMatrix(MatrixInput{Slots: slots, StaffNames: staff, Date: "2025-06-01", BranchID: AllBranches, Hours: AllEnabled()})
	if len(m) != len(slots) {
		t.Fatalf("expected %d rows, got %d", len(slots), len(m))
	}
	for _, s := range slots {
		row := m[s]
		if len(row) != len(staff)+1 {
			t.Fatalf("slot %s has %d columns", s, len(row))
		}
		for _, col := range Columns(staff) {
			cell, ok := row[col]
			if !ok || cell == nil {
				t.Fatalf("slot %s column %s missing or nil", s, col)
			}
		}
	}
}

func TestMatrixPlacesBookingUnderStaff(t *testing.T) {
	hours := EnabledHours{"14": true}
	b := booking(t, "b1", "2025-06-01", "14:00", "B1", "Alice")
	m := BuildScheduleMatrix(MatrixInput{
		Bookings:   []models.Booking{b},
		Slots:      FilterSlots(DefaultTimeSlots(), hours),
		StaffNames: []string{"Alice", "Bob"},
		Date:       "2025-06-01",
		BranchID:   "B1",
		Hours:      hours,
	})
	if got := m["14:00"]["Alice"]; len(got) != 1 || got[0].ID != "b1" {
		t.Fatalf("expected b1 under Alice, got %v", got)
	}
	if got := m["14:00"][Unassigned]; len(got) != 0 {
		t.Fatalf("expected empty unassigned, got %v", got)
	}
}

func TestMatrixUnknownStaffIsUnassigned(t *testing.T) {
	cases := []string{"Former Employee", "", "alice"}
	for _, staff := range cases {
		b := booking(t, "b1", "2025-06-01", "10:00", "B1", staff)
		m := BuildScheduleMatrix(MatrixInput{
			Bookings:   []models.Booking{b},
			Slots:      DefaultTimeSlots(),
			StaffNames: []string{"Alice"},
			Date:       "2025-06-01",
			BranchID:   AllBranches,
			Hours:      AllEnabled(),
		})
		if got := m["10:00"][Unassigned]; len(got) != 1 {
			t.Fatalf("staff %q: expected unassigned booking, got %v", staff, got)
		}
		if got := m["10:00"]["Alice"]; len(got) != 0 {
			t.Fatalf("staff %q: leaked into Alice", staff)
		}
	}
}

func TestMatrixDisabledHourExcludes(t *testing.T) {
	hours := EnabledHours{"14": false}
	slots := FilterSlots(DefaultTimeSlots(), hours)
	for _, s := range slots {
		if s == "14:00" {
			t.Fatalf("14:00 should be filtered out")
		}
	}
	b := booking(t, "b1", "2025-06-01", "14:00", "B1", "Alice")
	m := BuildScheduleMatrix(MatrixInput{
		Bookings:   []models.Booking{b},
		Slots:      slots,
		StaffNames: []string{"Alice"},
		Date:       "2025-06-01",
		BranchID:   AllBranches,
		Hours:      hours,
	})
	for slot, row := range m {
		for col, cell := range row {
			if len(cell) != 0 {
				t.Fatalf("booking leaked into %s/%s", slot, col)
			}
		}
	}
}

func TestMatrixFilters(t *testing.T) {
	in := []models.Booking{
		booking(t, "other-day", "2025-06-02", "10:00", "B1", "Alice"),
		booking(t, "other-branch", "2025-06-01", "10:00", "B2", "Alice"),
		booking(t, "off-grid", "2025-06-01", "10:15", "B1", "Alice"),
		booking(t, "kept", "2025-06-01", "10:00", "B1", "Alice"),
	}
	m := BuildScheduleMatrix(MatrixInput{
		Bookings:   in,
		Slots:      DefaultTimeSlots(),
		StaffNames: []string{"Alice"},
		Date:       "2025-06-01",
		BranchID:   "B1",
		Hours:      AllEnabled(),
	})
	got := m["10:00"]["Alice"]
	if len(got) != 1 || got[0].ID != "kept" {
		t.Fatalf("expected only kept booking, got %v", got)
	}
	if _, ok := m["10:15"]; ok {
		t.Fatalf("off-grid time must not create a row")
	}

	all := BuildScheduleMatrix(MatrixInput{
		Bookings:   in,
		Slots:      DefaultTimeSlots(),
		StaffNames: []string{"Alice"},
		Date:       "2025-06-01",
		BranchID:   AllBranches,
		Hours:      AllEnabled(),
	})
	if got := all["10:00"]["Alice"]; len(got) != 2 {
		t.Fatalf("branch all should include both branches, got %d", len(got))
	}
}
