package booking

import (
	"context"
	"fmt"

	"salonhub/models"
	"salonhub/services/schedule"
)

func (s *DefaultBookingService) columns(ctx context.Context, branchID string) ([]string, error) {
	staff, err := s.staff.ListActive(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load staff: %w", err)
	}
	names := make([]string, 0, len(staff))
	seen := make(map[string]bool, len(staff))
	for _, st := range staff {
		if st.Name == "" || seen[st.Name] {
			continue
		}
		seen[st.Name] = true
		names = append(names, st.Name)
	}
	return names, nil
}

func (s *DefaultBookingService) view(ctx context.Context, day, branchID string, bookings []models.Booking) (*schedule.DayView, error) {
	hours, err := s.hours.EnabledHours(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking hours: %w", err)
	}
	names, err := s.columns(ctx, branchID)
	if err != nil {
		return nil, err
	}
	v := schedule.NewDayView(schedule.DayViewInput{
		Date:       day,
		BranchID:   branchID,
		Hours:      hours,
		StaffNames: names,
		Bookings:   bookings,
	})
	return &v, nil
}

func normalizeBranch(branchID string) string {
	if branchID == "" {
		return schedule.AllBranches
	}
	return branchID
}

func (s *DefaultBookingService) DaySchedule(ctx context.Context, day, branchID string) (*schedule.DayView, error) {
	if _, err := models.ParseDay(day); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	branchID = normalizeBranch(branchID)
	bookings, err := s.repo.ListByDay(ctx, day, branchID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, day, branchID, bookings)
}

func (s *DefaultBookingService) AvailableSlots(ctx context.Context, branchID string) ([]string, error) {
	hours, err := s.hours.EnabledHours(ctx, normalizeBranch(branchID))
	if err != nil {
		return nil, fmt.Errorf("failed to load booking hours: %w", err)
	}
	return schedule.FilterSlots(schedule.DefaultTimeSlots(), hours), nil
}

func (s *DefaultBookingService) OpenLiveDay(ctx context.Context, day, branchID string) (*LiveDay, error) {
	if _, err := models.ParseDay(day); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	branchID = normalizeBranch(branchID)
	live := NewLiveDay(day, branchID)
	if err := s.Reload(ctx, live); err != nil {
		return nil, err
	}
	return live, nil
}

// Reload reseeds live from the store.
func (s *DefaultBookingService) Reload(ctx context.Context, live *LiveDay) error {
	bookings, err := s.repo.ListByDay(ctx, live.Day(), live.Branch())
	if err != nil {
		return err
	}
	live.Seed(bookings)
	return nil
}

func (s *DefaultBookingService) ViewOf(ctx context.Context, live *LiveDay) (*schedule.DayView, error) {
	return s.view(ctx, live.Day(), live.Branch(), live.Snapshot())
}
