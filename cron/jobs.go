package cron

import (
	"context"
	"time"

	"salonhub/models"
	"salonhub/services/staff"

	robfig "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StaleSource lists bookings still "upcoming" after their day has passed.
type StaleSource interface {
	StaleUpcoming(ctx context.Context) ([]models.Booking, error)
}

// RatingsRefresher recomputes staff ratings from feedbacks.
type RatingsRefresher interface {
	RefreshRatings(ctx context.Context) (staff.RefreshResult, error)
}

const jobTimeout = 2 * time.Minute

// Jobs holds the periodic maintenance work.
type Jobs struct {
	stale   StaleSource
	ratings RatingsRefresher
	logger  *zap.Logger
}

func NewJobs(stale StaleSource, ratings RatingsRefresher, logger *zap.Logger) *Jobs {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Jobs{stale: stale, ratings: ratings, logger: logger}
}

// AuditStatuses logs bookings whose status was never moved off "upcoming".
// It never changes a status.
func (j *Jobs) AuditStatuses(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	stale, err := j.stale.StaleUpcoming(ctx)
	if err != nil {
		j.logger.Error("status audit failed", zap.Error(err))
		return 0
	}
	for _, b := range stale {
		j.logger.Warn("booking still upcoming after its day",
			zap.String("bookingId", b.ID),
			zap.String("date", b.Date.Day()),
			zap.String("time", b.Time),
			zap.String("branchId", b.BranchID))
	}
	j.logger.Info("status audit done", zap.Int("stale", len(stale)))
	return len(stale)
}

func (j *Jobs) RefreshRatings(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	if _, err := j.ratings.RefreshRatings(ctx); err != nil {
		j.logger.Error("ratings refresh failed", zap.Error(err))
	}
}

// StartScheduler registers the jobs on their cron specs and starts the
// scheduler. Stop it with Stop(); jobs see ctx for cancellation.
func StartScheduler(ctx context.Context, j *Jobs, auditSpec, ratingsSpec string) (*robfig.Cron, error) {
	c := robfig.New(robfig.WithChain(robfig.Recover(robfig.DefaultLogger)))

	if _, err := c.AddFunc(auditSpec, func() { j.AuditStatuses(ctx) }); err != nil {
		return nil, err
	}
	if _, err := c.AddFunc(ratingsSpec, func() { j.RefreshRatings(ctx) }); err != nil {
		return nil, err
	}
	c.Start()
	j.logger.Info("cron scheduler started",
		zap.String("statusAudit", auditSpec), zap.String("ratingsRefresh", ratingsSpec))
	return c, nil
}
