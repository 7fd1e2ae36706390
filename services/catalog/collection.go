package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	recordsRepo "salonhub/database/repository/records"
	"salonhub/models"
	"salonhub/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var ErrNotFound = errors.New("record not found")

// Fields names the document fields a ListQuery maps onto. Empty names
// disable the matching query parameter.
type Fields struct {
	Search   []string
	Category string
	Branch   string
	Status   string
}

// Collection is validated, cached CRUD over one back-office collection.
// Listings are cached under catalog:<name>: and dropped on every write.
type Collection[T any, P recordsRepo.Record[T]] struct {
	name    string
	repo    recordsRepo.RecordRepository[T]
	fields  Fields
	cache   utils.JSONCache
	ttl     time.Duration
	logger  *zap.Logger
	prepare func(*T)
}

func NewCollection[T any, P recordsRepo.Record[T]](name string, repo recordsRepo.RecordRepository[T], fields Fields,
	cache utils.JSONCache, ttl time.Duration, logger *zap.Logger) *Collection[T, P] {
	if cache == nil {
		cache = (*utils.RedisJSONCache)(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collection[T, P]{name: name, repo: repo, fields: fields, cache: cache, ttl: ttl, logger: logger}
}

// WithPrepare sets a hook that normalizes documents before validation.
func (c *Collection[T, P]) WithPrepare(fn func(*T)) *Collection[T, P] {
	c.prepare = fn
	return c
}

// Name is the collection name used in cache keys and errors.
func (c *Collection[T, P]) Name() string {
	return c.name
}

func (c *Collection[T, P]) prefix() string {
	return utils.CatalogCachePrefix + c.name + ":"
}

func (c *Collection[T, P]) notFound(err error, id string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: %s %s", ErrNotFound, c.name, id)
	}
	return err
}

// Invalidate drops every cached listing of the collection.
func (c *Collection[T, P]) Invalidate(ctx context.Context) {
	if err := c.cache.DeletePrefix(ctx, c.prefix()); err != nil {
		c.logger.Warn("catalog cache invalidation failed", zap.String("collection", c.name), zap.Error(err))
	}
}

// Options translates a ListQuery into repository options.
func (c *Collection[T, P]) Options(q models.ListQuery) recordsRepo.ListOptions {
	filter := bson.M{}
	if q.Category != "" && c.fields.Category != "" {
		filter[c.fields.Category] = q.Category
	}
	if q.BranchID != "" && c.fields.Branch != "" {
		filter[c.fields.Branch] = q.BranchID
	}
	if q.Status != "" && c.fields.Status != "" {
		filter[c.fields.Status] = q.Status
	}
	return recordsRepo.ListOptions{
		Filter:       filter,
		Search:       strings.TrimSpace(q.Search),
		SearchFields: c.fields.Search,
		SortBy:       q.SortBy,
		Desc:         q.Desc,
	}
}

func (c *Collection[T, P]) List(ctx context.Context, q models.ListQuery) ([]T, error) {
	keyData, _ := json.Marshal(q)
	key := c.prefix() + "list:" + string(keyData)

	var cached []T
	if hit, err := c.cache.GetJSON(ctx, key, &cached); err != nil {
		c.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
	} else if hit {
		return cached, nil
	}

	docs, err := c.repo.List(ctx, c.Options(q))
	if err != nil {
		return nil, err
	}
	if err := c.cache.SetJSON(ctx, key, docs, c.ttl); err != nil {
		c.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
	return docs, nil
}

// Find lists without the cache, for callers that filter on arbitrary fields.
func (c *Collection[T, P]) Find(ctx context.Context, opts recordsRepo.ListOptions) ([]T, error) {
	return c.repo.List(ctx, opts)
}

func (c *Collection[T, P]) Get(ctx context.Context, id string) (*T, error) {
	doc, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, c.notFound(err, id)
	}
	return doc, nil
}

func (c *Collection[T, P]) check(doc *T) error {
	if c.prepare != nil {
		c.prepare(doc)
	}
	return utils.ValidateStruct(doc)
}

func (c *Collection[T, P]) Create(ctx context.Context, doc T) (*T, error) {
	P(&doc).Meta().ID = ""
	if err := c.check(&doc); err != nil {
		return nil, err
	}
	if err := c.repo.Create(ctx, &doc); err != nil {
		return nil, err
	}
	c.Invalidate(ctx)
	return &doc, nil
}

// Update replaces the document; id and createdAt come from the stored copy.
func (c *Collection[T, P]) Update(ctx context.Context, id string, doc T) (*T, error) {
	existing, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	meta := P(&doc).Meta()
	meta.ID = id
	meta.CreatedAt = P(existing).Meta().CreatedAt
	if err := c.check(&doc); err != nil {
		return nil, err
	}
	if err := c.repo.Update(ctx, &doc); err != nil {
		return nil, c.notFound(err, id)
	}
	c.Invalidate(ctx)
	return &doc, nil
}

func (c *Collection[T, P]) Delete(ctx context.Context, id string) error {
	if err := c.repo.Delete(ctx, id); err != nil {
		return c.notFound(err, id)
	}
	c.Invalidate(ctx)
	return nil
}
