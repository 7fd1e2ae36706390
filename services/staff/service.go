package staff

import (
	"context"
	"errors"
	"math"
	"time"

	staffRepo "salonhub/database/repository/staff"
	"salonhub/models"
	"salonhub/services/catalog"
	"salonhub/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// StaffService is staff CRUD plus the grid's column source and the rating
// refresh.
type StaffService struct {
	*catalog.Collection[models.Staff, *models.Staff]
	repo   staffRepo.StaffRepository
	logger *zap.Logger
}

func NewStaffService(repo staffRepo.StaffRepository, cache utils.JSONCache, ttl time.Duration, logger *zap.Logger) *StaffService {
	if logger == nil {
		logger = zap.NewNop()
	}
	col := catalog.NewCollection[models.Staff, *models.Staff]("staff", repo,
		catalog.Fields{Search: []string{"name", "email", "phone"}, Branch: "branchId", Status: "status"},
		cache, ttl, logger).
		WithPrepare(func(s *models.Staff) {
			if s.Status == "" {
				s.Status = models.StatusActive
			}
		})
	return &StaffService{Collection: col, repo: repo, logger: logger}
}

// ListActive returns active staff for a branch ("" or "all" for every branch).
func (s *StaffService) ListActive(ctx context.Context, branchID string) ([]models.Staff, error) {
	return s.repo.ListActive(ctx, branchID)
}

// RefreshResult summarizes a rating refresh.
type RefreshResult struct {
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// RefreshRatings recomputes every staff member's rating from feedbacks.
// Feedbacks naming a deleted staff id are skipped.
func (s *StaffService) RefreshRatings(ctx context.Context) (RefreshResult, error) {
	var res RefreshResult
	ratings, err := s.repo.RatingsFromFeedbacks(ctx)
	if err != nil {
		return res, err
	}
	for _, r := range ratings {
		avg := math.Round(r.Average*10) / 10
		if err := s.repo.SetRating(ctx, r.StaffID, avg, r.Count); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				res.Skipped++
				continue
			}
			return res, err
		}
		res.Updated++
	}
	if res.Updated > 0 {
		// Listings carry ratings.
		s.Invalidate(ctx)
	}
	s.logger.Info("staff ratings refreshed", zap.Int("updated", res.Updated), zap.Int("skipped", res.Skipped))
	return res, nil
}
