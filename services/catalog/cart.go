package catalog

import (
	"context"
	"errors"
	"fmt"

	recordsRepo "salonhub/database/repository/records"
	"salonhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrOutOfStock      = errors.New("product is out of stock")
	ErrProductInactive = errors.New("product is not available")
)

// Cart keeps per-customer product lines. Price and name are copied from the
// product when a line is added.
type Cart struct {
	repo     recordsRepo.RecordRepository[models.CartItem]
	products *Collection[models.Product, *models.Product]
}

func NewCart(repo recordsRepo.RecordRepository[models.CartItem], products *Collection[models.Product, *models.Product]) *Cart {
	return &Cart{repo: repo, products: products}
}

func (c *Cart) List(ctx context.Context, customerID string) ([]models.CartItem, error) {
	return c.repo.List(ctx, recordsRepo.ListOptions{Filter: bson.M{"customerId": customerID}})
}

// Add puts quantity of a product in the cart, merging with an existing line.
func (c *Cart) Add(ctx context.Context, customerID, productID string, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		quantity = 1
	}
	product, err := c.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Status == models.StatusInactive {
		return nil, ErrProductInactive
	}

	existing, err := c.repo.FindOne(ctx, bson.M{"customerId": customerID, "productId": productID})
	switch {
	case err == nil:
		if existing.Quantity+quantity > product.Stock {
			return nil, fmt.Errorf("%w: %s", ErrOutOfStock, product.Name)
		}
		existing.Quantity += quantity
		existing.Price = product.Price
		if err := c.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	case !errors.Is(err, mongo.ErrNoDocuments):
		return nil, err
	}

	if quantity > product.Stock {
		return nil, fmt.Errorf("%w: %s", ErrOutOfStock, product.Name)
	}
	item := &models.CartItem{
		CustomerID: customerID,
		ProductID:  productID,
		Name:       product.Name,
		Price:      product.Price,
		Quantity:   quantity,
		ImageURL:   product.ImageURL,
	}
	if err := c.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Remove deletes one line owned by customerID.
func (c *Cart) Remove(ctx context.Context, customerID, itemID string) error {
	n, err := c.repo.DeleteWhere(ctx, bson.M{"id": itemID, "customerId": customerID})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: cart item %s", ErrNotFound, itemID)
	}
	return nil
}

func (c *Cart) Clear(ctx context.Context, customerID string) error {
	_, err := c.repo.DeleteWhere(ctx, bson.M{"customerId": customerID})
	return err
}
