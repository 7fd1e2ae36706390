package catalog

import (
	"strings"
	"time"

	"salonhub/database/repository"
	recordsRepo "salonhub/database/repository/records"
	"salonhub/models"
	"salonhub/utils"

	"go.uber.org/zap"
)

// Catalog bundles the back-office collections served by generic CRUD.
type Catalog struct {
	Services   *Collection[models.Service, *models.Service]
	Products   *Collection[models.Product, *models.Product]
	Categories *Collection[models.Category, *models.Category]
	Expenses   *Collection[models.Expense, *models.Expense]
	Feedbacks  *Collection[models.Feedback, *models.Feedback]
	Customers  *Collection[models.Customer, *models.Customer]
	Roles      *Collection[models.Role, *models.Role]
	Cart       *Cart
}

func defaultStatus(s *string) {
	if strings.TrimSpace(*s) == "" {
		*s = models.StatusActive
	}
}

// NewServices is the services collection; new services default to active.
func NewServices(repo recordsRepo.RecordRepository[models.Service], cache utils.JSONCache, ttl time.Duration, logger *zap.Logger) *Collection[models.Service, *models.Service] {
	return NewCollection[models.Service, *models.Service]("services", repo,
		Fields{Search: []string{"name", "description", "category"}, Category: "category", Branch: "branchIds", Status: "status"},
		cache, ttl, logger).
		WithPrepare(func(s *models.Service) { defaultStatus(&s.Status) })
}

// NewProducts is the products collection; new products default to active.
func NewProducts(repo recordsRepo.RecordRepository[models.Product], cache utils.JSONCache, ttl time.Duration, logger *zap.Logger) *Collection[models.Product, *models.Product] {
	return NewCollection[models.Product, *models.Product]("products", repo,
		Fields{Search: []string{"name", "description", "category"}, Category: "category", Status: "status"},
		cache, ttl, logger).
		WithPrepare(func(p *models.Product) { defaultStatus(&p.Status) })
}

func New(repos *repository.Repositories, cache utils.JSONCache, ttl time.Duration, logger *zap.Logger) *Catalog {
	services := NewServices(repos.Services, cache, ttl, logger)
	products := NewProducts(repos.Products, cache, ttl, logger)

	return &Catalog{
		Services: services,
		Products: products,
		Categories: NewCollection[models.Category, *models.Category]("categories", repos.Categories,
			Fields{Search: []string{"name", "description"}, Category: "type"}, cache, ttl, logger),
		Expenses: NewCollection[models.Expense, *models.Expense]("expenses", repos.Expenses,
			Fields{Search: []string{"title", "notes"}, Category: "category", Branch: "branchId"}, cache, ttl, logger),
		Feedbacks: NewCollection[models.Feedback, *models.Feedback]("feedbacks", repos.Feedbacks,
			Fields{Search: []string{"customerName", "comment", "staffName"}, Branch: "branchId"}, cache, ttl, logger),
		Customers: NewCollection[models.Customer, *models.Customer]("customers", repos.Customers,
			Fields{Search: []string{"name", "email", "phone"}}, cache, ttl, logger),
		Roles: NewCollection[models.Role, *models.Role]("roles", repos.Roles,
			Fields{Search: []string{"name"}}, cache, ttl, logger),
		Cart: NewCart(repos.Cart, products),
	}
}
