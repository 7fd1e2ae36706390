package settings

import (
	"context"
	"fmt"

	"salonhub/models"
	"salonhub/services/schedule"
	"salonhub/utils"

	"go.uber.org/zap"
)

func hoursKey(branchID string) string {
	return utils.HoursCachePrefix + branchID
}

func branchOrAll(branchID string) string {
	if branchID == "" {
		return schedule.AllBranches
	}
	return branchID
}

// stored returns the branch's own document, if any.
func (s *DefaultSettingsService) stored(ctx context.Context, branchID string) (schedule.EnabledHours, bool, error) {
	doc, err := s.repo.GetBookingHours(ctx, branchID)
	if err != nil {
		return nil, false, err
	}
	if doc == nil {
		return nil, false, nil
	}
	return schedule.EnabledHours(doc.Hours).Clone(), true, nil
}

// EnabledHours resolves a branch's hours: its own document, else the "all"
// document, else every hour enabled.
func (s *DefaultSettingsService) EnabledHours(ctx context.Context, branchID string) (schedule.EnabledHours, error) {
	branchID = branchOrAll(branchID)
	var cached schedule.EnabledHours
	if s.cacheGet(ctx, hoursKey(branchID), &cached) && cached != nil {
		return cached, nil
	}

	hours, ok, err := s.stored(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if !ok && branchID != schedule.AllBranches {
		hours, ok, err = s.stored(ctx, schedule.AllBranches)
		if err != nil {
			return nil, err
		}
	}
	if !ok {
		hours = schedule.AllEnabled()
	}
	s.cacheSet(ctx, hoursKey(branchID), hours)
	return hours, nil
}

// SaveHours persists hours for the branch. Keys outside "0".."23" are dropped.
func (s *DefaultSettingsService) SaveHours(ctx context.Context, branchID string, hours schedule.EnabledHours) (schedule.EnabledHours, error) {
	branchID = branchOrAll(branchID)
	clean := schedule.AllEnabled()
	for k, v := range hours {
		h, ok := schedule.HourOf(k + ":00")
		if !ok {
			continue
		}
		clean.Set(h, v)
	}
	doc := &models.BookingHours{BranchID: branchID, Hours: clean}
	if err := s.repo.SaveBookingHours(ctx, doc); err != nil {
		return nil, err
	}
	s.invalidateHours(ctx, branchID)
	return clean, nil
}

// invalidateHours drops the branch key, or every key when the shared "all"
// document changed since branches fall back to it.
func (s *DefaultSettingsService) invalidateHours(ctx context.Context, branchID string) {
	if branchID != schedule.AllBranches {
		s.cacheDrop(ctx, hoursKey(branchID))
		return
	}
	if err := s.cache.DeletePrefix(ctx, utils.HoursCachePrefix); err != nil {
		s.logger.Warn("hours cache invalidation failed", zap.Error(err))
		s.cacheDrop(ctx, hoursKey(branchID))
	}
}

func (s *DefaultSettingsService) edit(ctx context.Context, branchID string, fn func(schedule.EnabledHours)) (schedule.EnabledHours, error) {
	hours, err := s.EnabledHours(ctx, branchID)
	if err != nil {
		return nil, err
	}
	hours = hours.Clone()
	fn(hours)
	return s.SaveHours(ctx, branchID, hours)
}

func (s *DefaultSettingsService) ToggleHour(ctx context.Context, branchID string, hour int) (schedule.EnabledHours, error) {
	if hour < 0 || hour >= schedule.HoursInDay {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHour, hour)
	}
	return s.edit(ctx, branchID, func(h schedule.EnabledHours) { h.Toggle(hour) })
}

func (s *DefaultSettingsService) DisableAllHours(ctx context.Context, branchID string) (schedule.EnabledHours, error) {
	return s.edit(ctx, branchID, schedule.EnabledHours.DisableAll)
}

func (s *DefaultSettingsService) EnableAllHours(ctx context.Context, branchID string) (schedule.EnabledHours, error) {
	return s.edit(ctx, branchID, schedule.EnabledHours.EnableAll)
}
