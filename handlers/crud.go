package handlers

import (
	"context"
	"net/http"

	"salonhub/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecordStore is cached, validated CRUD over one collection.
type RecordStore[T any] interface {
	List(ctx context.Context, q models.ListQuery) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, doc T) (*T, error)
	Update(ctx context.Context, id string, doc T) (*T, error)
	Delete(ctx context.Context, id string) error
}

// CRUDHandler serves a back-office collection.
type CRUDHandler[T any] struct {
	Store RecordStore[T]
	Name  string
}

func NewCRUDHandler[T any](name string, store RecordStore[T]) *CRUDHandler[T] {
	return &CRUDHandler[T]{Store: store, Name: name}
}

func (h *CRUDHandler[T]) List(c *gin.Context) {
	var q models.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	h.list(c, q)
}

// ListActive is the public listing: only active documents.
func (h *CRUDHandler[T]) ListActive(c *gin.Context) {
	var q models.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	q.Status = models.StatusActive
	h.list(c, q)
}

func (h *CRUDHandler[T]) list(c *gin.Context, q models.ListQuery) {
	docs, err := h.Store.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	if docs == nil {
		docs = []T{}
	}
	c.JSON(http.StatusOK, docs)
}

func (h *CRUDHandler[T]) Get(c *gin.Context) {
	doc, err := h.Store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *CRUDHandler[T]) Create(c *gin.Context) {
	var doc T
	if err := c.ShouldBindJSON(&doc); err != nil {
		badRequest(c, err)
		return
	}
	created, err := h.Store.Create(c.Request.Context(), doc)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("record created", zap.String("collection", h.Name))
	c.JSON(http.StatusCreated, created)
}

func (h *CRUDHandler[T]) Update(c *gin.Context) {
	var doc T
	if err := c.ShouldBindJSON(&doc); err != nil {
		badRequest(c, err)
		return
	}
	updated, err := h.Store.Update(c.Request.Context(), c.Param("id"), doc)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CRUDHandler[T]) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Store.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("record deleted", zap.String("collection", h.Name), zap.String("id", id))
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// Register mounts the CRUD routes on g.
func (h *CRUDHandler[T]) Register(g *gin.RouterGroup) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
