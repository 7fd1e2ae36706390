package schedule

import (
	"salonhub/models"
)

// Unassigned is the synthetic column for bookings whose staff name does not
// match any known staff member.
const Unassigned = "Unassigned"

// AllBranches is the branch filter value that matches every branch.
const AllBranches = "all"

// ScheduleMatrix maps slot label -> staff column -> bookings in that cell.
type ScheduleMatrix map[string]map[string][]models.Booking

// MatrixInput is everything BuildScheduleMatrix reads.
type MatrixInput struct {
	Bookings   []models.Booking
	Slots      []string // already filtered by enabled hours
	StaffNames []string
	Date       string // yyyy-MM-dd
	BranchID   string // AllBranches or a branch id
	Hours      EnabledHours
}

// Includes reports whether a booking belongs on the grid for this input:
// same calendar day, branch filter match, and an enabled hour.
func (in MatrixInput) Includes(b models.Booking) bool {
	if b.Date.Day() != in.Date {
		return false
	}
	if in.BranchID != "" && in.BranchID != AllBranches && b.BranchID != in.BranchID {
		return false
	}
	h, ok := HourOf(b.Time)
	if !ok {
		return false
	}
	return in.Hours.IsEnabled(h)
}

// BuildScheduleMatrix buckets the day's bookings into slot × staff cells.
//
// Every requested slot gets a non-nil entry for every staff name plus
// Unassigned. A booking whose staff field is not an exact match for a known
// name lands in Unassigned. A booking whose time is not one of the requested
// slot labels is not placed.
func BuildScheduleMatrix(in MatrixInput) ScheduleMatrix {
	known := make(map[string]struct{}, len(in.StaffNames))
	for _, name := range in.StaffNames {
		known[name] = struct{}{}
	}

	matrix := make(ScheduleMatrix, len(in.Slots))
	for _, slot := range in.Slots {
		row := make(map[string][]models.Booking, len(in.StaffNames)+1)
		for _, name := range in.StaffNames {
			row[name] = []models.Booking{}
		}
		row[Unassigned] = []models.Booking{}
		matrix[slot] = row
	}

	for _, b := range in.Bookings {
		if !in.Includes(b) {
			continue
		}
		row, ok := matrix[b.Time]
		if !ok {
			continue
		}
		col := Unassigned
		if _, ok := known[b.Staff]; ok {
			col = b.Staff
		}
		row[col] = append(row[col], b)
	}
	return matrix
}

// Columns returns the column order used by the matrix: staff then Unassigned.
func Columns(staffNames []string) []string {
	cols := make([]string, 0, len(staffNames)+1)
	cols = append(cols, staffNames...)
	return append(cols, Unassigned)
}
