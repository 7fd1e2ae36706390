package recordsRepo

import (
	"context"

	"salonhub/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Record constrains P to be a pointer to T that exposes DocMeta.
type Record[T any] interface {
	*T
	models.Document
}

// ListOptions narrows a listing. Search matches any of SearchFields,
// case-insensitively. SortBy must be one of the repository's sortable fields.
type ListOptions struct {
	Filter       bson.M
	Search       string
	SearchFields []string
	SortBy       string
	Desc         bool
	Limit        int64
}

// RecordRepository is the CRUD surface shared by the back-office collections.
type RecordRepository[T any] interface {
	Create(ctx context.Context, doc *T) error
	Update(ctx context.Context, doc *T) error
	Delete(ctx context.Context, id string) error
	DeleteWhere(ctx context.Context, filter bson.M) (int64, error)
	GetByID(ctx context.Context, id string) (*T, error)
	FindOne(ctx context.Context, filter bson.M) (*T, error)
	List(ctx context.Context, opts ListOptions) ([]T, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
}
