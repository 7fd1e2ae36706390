package bookingRepo

import (
	"context"
	"time"

	"salonhub/models"
)

// BookingRepository defines the persistence operations on bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	Update(ctx context.Context, b *models.Booking) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	SetStatus(ctx context.Context, id, status string) error
	SetInvoiceURL(ctx context.Context, id, url string) error

	// List applies the filter's equality, range, search and sort options.
	List(ctx context.Context, f models.BookingFilter) ([]models.Booking, error)
	// ListByDay returns every booking stored for the calendar day, in any of
	// the stored date shapes. branchID "" or "all" matches every branch.
	ListByDay(ctx context.Context, day, branchID string) ([]models.Booking, error)
	// ListStaleUpcoming returns bookings still "upcoming" dated before cutoff.
	ListStaleUpcoming(ctx context.Context, cutoff time.Time) ([]models.Booking, error)
	// Aggregate groups bookings in [from, to) by status and staff.
	Aggregate(ctx context.Context, from, to time.Time, branchID string) ([]models.BookingAggregate, error)

	// Watch streams insert/update/replace/delete events until ctx is done.
	Watch(ctx context.Context) (<-chan models.BookingEvent, error)
}
