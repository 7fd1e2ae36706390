package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"salonhub/database/repository/records/recordstest"
	"salonhub/models"
)

func newCart(t *testing.T, products ...models.Product) *Cart {
	t.Helper()
	prodRepo := recordstest.NewMemory[models.Product, *models.Product](products...)
	col := NewCollection[models.Product, *models.Product]("products", prodRepo, Fields{}, nil, time.Minute, nil)
	return NewCart(recordstest.NewMemory[models.CartItem, *models.CartItem](), col)
}

func product(id, name string, price float64, stock int, status string) models.Product {
	p := models.Product{Name: name, Price: models.Number(price), Stock: stock, Status: status}
	p.ID = id
	return p
}

func TestCartAddMergesLines(t *testing.T) {
	cart := newCart(t, product("p1", "Shampoo", 12.5, 5, models.StatusActive))
	ctx := context.Background()

	if _, err := cart.Add(ctx, "c1", "p1", 2); err != nil {
		t.Fatalf("Add: %v", err)
	}
	item, err := cart.Add(ctx, "c1", "p1", 1)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if item.Quantity != 3 || item.Name != "Shampoo" || item.Price != 12.5 {
		t.Fatalf("unexpected line %+v", item)
	}
	lines, _ := cart.List(ctx, "c1")
	if len(lines) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(lines))
	}
	if other, _ := cart.List(ctx, "c2"); len(other) != 0 {
		t.Fatalf("cart leaked across customers")
	}
}

func TestCartStockAndStatus(t *testing.T) {
	cart := newCart(t,
		product("p1", "Shampoo", 10, 2, models.StatusActive),
		product("p2", "Old", 10, 9, models.StatusInactive))
	ctx := context.Background()

	if _, err := cart.Add(ctx, "c1", "p1", 3); !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}
	if _, err := cart.Add(ctx, "c1", "p2", 1); !errors.Is(err, ErrProductInactive) {
		t.Fatalf("expected ErrProductInactive, got %v", err)
	}
	if _, err := cart.Add(ctx, "c1", "nope", 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCartRemoveOwnLinesOnly(t *testing.T) {
	cart := newCart(t, product("p1", "Shampoo", 10, 5, models.StatusActive))
	ctx := context.Background()

	item, _ := cart.Add(ctx, "c1", "p1", 1)
	if err := cart.Remove(ctx, "c2", item.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("another customer removed the line: %v", err)
	}
	if err := cart.Remove(ctx, "c1", item.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := cart.Clear(ctx, "c1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
}
