package staff

import (
	"context"
	"fmt"
	"testing"
	"time"

	recordsRepo "salonhub/database/repository/records"
	"salonhub/database/repository/records/recordstest"
	"salonhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeRepo layers the staff-specific calls over the in-memory records store.
type fakeRepo struct {
	*recordstest.Memory[models.Staff, *models.Staff]
	ratings []models.StaffRating
	set     map[string]float64
}

func (f *fakeRepo) ListActive(ctx context.Context, branchID string) ([]models.Staff, error) {
	filter := bson.M{"status": bson.M{"$ne": models.StatusInactive}}
	if branchID != "" && branchID != "all" {
		filter["branchId"] = branchID
	}
	return f.List(ctx, recordsRepo.ListOptions{Filter: filter})
}

func (f *fakeRepo) RatingsFromFeedbacks(context.Context) ([]models.StaffRating, error) {
	return f.ratings, nil
}

func (f *fakeRepo) SetRating(ctx context.Context, id string, average float64, count int) error {
	if _, err := f.GetByID(ctx, id); err != nil {
		return fmt.Errorf("staff %s: %w", id, mongo.ErrNoDocuments)
	}
	f.set[id] = average
	return nil
}

func TestRefreshRatings(t *testing.T) {
	alice := models.Staff{Name: "Alice", BranchID: "B1"}
	alice.ID = "s1"
	repo := &fakeRepo{
		Memory: recordstest.NewMemory[models.Staff, *models.Staff](alice),
		ratings: []models.StaffRating{
			{StaffID: "s1", Average: 4.666, Count: 3},
			{StaffID: "gone", Average: 2, Count: 1},
		},
		set: map[string]float64{},
	}
	svc := NewStaffService(repo, nil, time.Minute, nil)

	res, err := svc.RefreshRatings(context.Background())
	if err != nil {
		t.Fatalf("RefreshRatings: %v", err)
	}
	if res.Updated != 1 || res.Skipped != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	if repo.set["s1"] != 4.7 {
		t.Fatalf("expected rounded rating 4.7, got %v", repo.set["s1"])
	}
}

func TestCreateDefaultsActive(t *testing.T) {
	repo := &fakeRepo{Memory: recordstest.NewMemory[models.Staff, *models.Staff](), set: map[string]float64{}}
	svc := NewStaffService(repo, nil, time.Minute, nil)

	s, err := svc.Create(context.Background(), models.Staff{Name: "Bob", BranchID: "B1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.Status != models.StatusActive {
		t.Fatalf("expected active status, got %q", s.Status)
	}
	if _, err := svc.Create(context.Background(), models.Staff{Name: "NoBranch"}); err == nil {
		t.Fatalf("expected branch validation error")
	}
}

func TestListActive(t *testing.T) {
	a := models.Staff{Name: "Alice", BranchID: "B1", Status: models.StatusActive}
	a.ID = "a"
	b := models.Staff{Name: "Bob", BranchID: "B2", Status: models.StatusActive}
	b.ID = "b"
	c := models.Staff{Name: "Cara", BranchID: "B1", Status: models.StatusInactive}
	c.ID = "c"
	repo := &fakeRepo{Memory: recordstest.NewMemory[models.Staff, *models.Staff](a, b, c), set: map[string]float64{}}
	svc := NewStaffService(repo, nil, time.Minute, nil)

	got, err := svc.ListActive(context.Background(), "B1")
	if err != nil || len(got) != 1 || got[0].Name != "Alice" {
		t.Fatalf("ListActive(B1) = %+v, %v", got, err)
	}
	all, _ := svc.ListActive(context.Background(), "all")
	if len(all) != 2 {
		t.Fatalf("expected two active staff, got %d", len(all))
	}
}
