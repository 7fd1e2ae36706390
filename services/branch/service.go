package branch

import (
	"context"
	"time"

	recordsRepo "salonhub/database/repository/records"
	"salonhub/models"
	"salonhub/services/catalog"
	"salonhub/utils"

	"go.uber.org/zap"
)

// BranchService is branch CRUD plus the public active listing.
type BranchService struct {
	*catalog.Collection[models.Branch, *models.Branch]
}

func NewBranchService(repo recordsRepo.RecordRepository[models.Branch], cache utils.JSONCache, ttl time.Duration, logger *zap.Logger) *BranchService {
	col := catalog.NewCollection[models.Branch, *models.Branch]("branches", repo,
		catalog.Fields{Search: []string{"name", "city", "address"}, Status: "status"},
		cache, ttl, logger).
		WithPrepare(func(b *models.Branch) {
			if b.Status == "" {
				b.Status = models.StatusActive
			}
		})
	return &BranchService{Collection: col}
}

// ListActive returns active branches sorted by name.
func (s *BranchService) ListActive(ctx context.Context) ([]models.Branch, error) {
	return s.List(ctx, models.ListQuery{Status: models.StatusActive, SortBy: "name"})
}

// GetByID resolves a branch for display names.
func (s *BranchService) GetByID(ctx context.Context, id string) (*models.Branch, error) {
	return s.Get(ctx, id)
}
