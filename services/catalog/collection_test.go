package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"salonhub/database/repository/records/recordstest"
	"salonhub/models"
	"salonhub/utils"
)

type mapCache map[string][]byte

func (c mapCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	data, ok := c[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, out)
}

func (c mapCache) SetJSON(_ context.Context, key string, v any, _ time.Duration) error {
	data, err := json.Marshal(v)
	c[key] = data
	return err
}

func (c mapCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c, k)
	}
	return nil
}

func (c mapCache) DeletePrefix(_ context.Context, prefix string) error {
	for k := range c {
		if strings.HasPrefix(k, prefix) {
			delete(c, k)
		}
	}
	return nil
}

func newServices(cache utils.JSONCache) (*Collection[models.Service, *models.Service], *recordstest.Memory[models.Service, *models.Service]) {
	repo := recordstest.NewMemory[models.Service, *models.Service]()
	col := NewCollection[models.Service, *models.Service]("services", repo,
		Fields{Search: []string{"name"}, Category: "category", Status: "status"}, cache, time.Minute, nil).
		WithPrepare(func(s *models.Service) { defaultStatus(&s.Status) })
	return col, repo
}

func TestCollectionCreateValidatesAndDefaults(t *testing.T) {
	col, _ := newServices(mapCache{})
	ctx := context.Background()

	_, err := col.Create(ctx, models.Service{Price: -1})
	var fe utils.FieldErrors
	if !errors.As(err, &fe) || fe["name"] == "" || fe["price"] == "" {
		t.Fatalf("expected name and price errors, got %v", err)
	}

	s, err := col.Create(ctx, models.Service{Name: "Cut", Category: "hair", Price: 30, Duration: 45})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.ID == "" || s.Status != models.StatusActive {
		t.Fatalf("expected id and active status, got %+v", s)
	}
}

func TestCollectionListCacheInvalidation(t *testing.T) {
	cache := mapCache{}
	col, _ := newServices(cache)
	ctx := context.Background()

	col.Create(ctx, models.Service{Name: "Cut", Category: "hair"})
	first, err := col.List(ctx, models.ListQuery{Category: "hair"})
	if err != nil || len(first) != 1 {
		t.Fatalf("List = %v, %v", first, err)
	}
	if len(cache) != 1 {
		t.Fatalf("expected one cached listing, got %d", len(cache))
	}

	col.Create(ctx, models.Service{Name: "Color", Category: "hair"})
	if len(cache) != 0 {
		t.Fatalf("write must drop cached listings")
	}
	second, _ := col.List(ctx, models.ListQuery{Category: "hair"})
	if len(second) != 2 {
		t.Fatalf("expected fresh listing, got %d", len(second))
	}

	hits, _ := col.List(ctx, models.ListQuery{Search: "COL"})
	if len(hits) != 1 || hits[0].Name != "Color" {
		t.Fatalf("unexpected search result %+v", hits)
	}
}

func TestCollectionUpdateKeepsIdentity(t *testing.T) {
	col, repo := newServices(nil)
	ctx := context.Background()

	s, _ := col.Create(ctx, models.Service{Name: "Cut"})
	updated, err := col.Update(ctx, s.ID, models.Service{Name: "Long cut", Price: 40})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ID != s.ID || !updated.CreatedAt.Equal(s.CreatedAt) {
		t.Fatalf("identity lost: %+v", updated)
	}
	stored, _ := repo.GetByID(ctx, s.ID)
	if stored.Name != "Long cut" || stored.Status != models.StatusActive {
		t.Fatalf("unexpected stored doc %+v", stored)
	}
}

func TestCollectionNotFound(t *testing.T) {
	col, _ := newServices(nil)
	ctx := context.Background()
	if _, err := col.Get(ctx, "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get: %v", err)
	}
	if _, err := col.Update(ctx, "x", models.Service{Name: "n"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update: %v", err)
	}
	if err := col.Delete(ctx, "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete: %v", err)
	}
}
