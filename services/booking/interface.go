package booking

import (
	"context"

	"salonhub/models"
	"salonhub/services/schedule"
)

// BookingService is the booking use-case surface.
type BookingService interface {
	Create(ctx context.Context, in models.BookingInput) (*models.Booking, error)
	Update(ctx context.Context, id string, in models.BookingInput) (*models.Booking, error)
	Get(ctx context.Context, id string) (*models.Booking, error)
	List(ctx context.Context, f models.BookingFilter) ([]models.Booking, error)
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id, status string) (*models.Booking, error)

	// DaySchedule builds the calendar view for a day and branch filter.
	DaySchedule(ctx context.Context, day, branchID string) (*schedule.DayView, error)
	// AvailableSlots lists the slot labels bookable at a branch.
	AvailableSlots(ctx context.Context, branchID string) ([]string, error)
	// OpenLiveDay seeds a LiveDay from the store.
	OpenLiveDay(ctx context.Context, day, branchID string) (*LiveDay, error)
	// ViewOf renders a LiveDay's current bookings as a DayView.
	ViewOf(ctx context.Context, live *LiveDay) (*schedule.DayView, error)
}

// StaffDirectory lists the grid's staff columns.
type StaffDirectory interface {
	ListActive(ctx context.Context, branchID string) ([]models.Staff, error)
}

// BranchLookup resolves branch display names.
type BranchLookup interface {
	GetByID(ctx context.Context, id string) (*models.Branch, error)
}

// HoursProvider returns the persisted enabled hours for a branch.
type HoursProvider interface {
	EnabledHours(ctx context.Context, branchID string) (schedule.EnabledHours, error)
}

// TaskScheduler enqueues follow-up work for a saved booking.
type TaskScheduler interface {
	ScheduleConfirmation(ctx context.Context, b *models.Booking) error
	ScheduleReminder(ctx context.Context, b *models.Booking) error
}

// Publisher receives locally originated booking events.
type Publisher interface {
	Publish(ev models.BookingEvent)
}
