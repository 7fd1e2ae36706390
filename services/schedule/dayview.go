package schedule

import "salonhub/models"

// ColumnSummary is the booking count and summed totals of one grid column.
type ColumnSummary struct {
	Bookings int     `json:"bookings"`
	Price    float64 `json:"price"`
	Duration float64 `json:"duration"`
}

// DayView is the full calendar state for one day and branch filter.
type DayView struct {
	Date     string                   `json:"date"`
	BranchID string                   `json:"branchId"`
	Hours    EnabledHours             `json:"hours"`
	Slots    []string                 `json:"slots"`
	Columns  []string                 `json:"columns"`
	Matrix   ScheduleMatrix           `json:"matrix"`
	Summary  map[string]ColumnSummary `json:"summary"`
	Total    ColumnSummary            `json:"total"`
}

// DayViewInput is what NewDayView composes.
type DayViewInput struct {
	Date       string
	BranchID   string
	Hours      EnabledHours
	StaffNames []string
	Bookings   []models.Booking
}

// NewDayView filters the default slots by the enabled hours, builds the
// matrix and sums what ended up on the grid.
func NewDayView(in DayViewInput) DayView {
	hours := in.Hours
	if hours == nil {
		hours = AllEnabled()
	}
	branch := in.BranchID
	if branch == "" {
		branch = AllBranches
	}
	slots := FilterSlots(DefaultTimeSlots(), hours)
	matrix := BuildScheduleMatrix(MatrixInput{
		Bookings:   in.Bookings,
		Slots:      slots,
		StaffNames: in.StaffNames,
		Date:       in.Date,
		BranchID:   branch,
		Hours:      hours,
	})

	cols := Columns(in.StaffNames)
	view := DayView{
		Date:     in.Date,
		BranchID: branch,
		Hours:    hours,
		Slots:    slots,
		Columns:  cols,
		Matrix:   matrix,
		Summary:  make(map[string]ColumnSummary, len(cols)),
	}
	for _, col := range cols {
		view.Summary[col] = ColumnSummary{}
	}
	for _, slot := range slots {
		for col, cell := range matrix[slot] {
			s := view.Summary[col]
			for _, b := range cell {
				t := ComputeTotals(b.Services)
				s.Bookings++
				s.Price += t.Price
				s.Duration += t.Duration
			}
			view.Summary[col] = s
		}
	}
	for _, s := range view.Summary {
		view.Total.Bookings += s.Bookings
		view.Total.Price += s.Price
		view.Total.Duration += s.Duration
	}
	return view
}

// Cell returns the bookings at slot × column, or nil when the slot is not on
// the grid.
func (v DayView) Cell(slot, column string) []models.Booking {
	row, ok := v.Matrix[slot]
	if !ok {
		return nil
	}
	return row[column]
}
