package handlers

import (
	"context"
	"net/http"

	"salonhub/middleware"
	"salonhub/models"

	"github.com/gin-gonic/gin"
)

// CartStore is the signed-in customer's cart.
type CartStore interface {
	List(ctx context.Context, customerID string) ([]models.CartItem, error)
	Add(ctx context.Context, customerID, productID string, quantity int) (*models.CartItem, error)
	Remove(ctx context.Context, customerID, itemID string) error
	Clear(ctx context.Context, customerID string) error
}

type CartHandler struct {
	Cart CartStore
}

func NewCartHandler(cart CartStore) *CartHandler {
	return &CartHandler{Cart: cart}
}

func (h *CartHandler) List(c *gin.Context) {
	items, err := h.Cart.List(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	if items == nil {
		items = []models.CartItem{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *CartHandler) Add(c *gin.Context) {
	var req struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}
	item, err := h.Cart.Add(c.Request.Context(), c.GetString(middleware.CtxUserID), req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Remove handles DELETE /api/me/cart/:id; without an id the cart is cleared.
func (h *CartHandler) Remove(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserID)
	var err error
	if id := c.Param("id"); id != "" {
		err = h.Cart.Remove(c.Request.Context(), uid, id)
	} else {
		err = h.Cart.Clear(c.Request.Context(), uid)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
}

// FeedbackHandler accepts customer feedback.
type FeedbackHandler struct {
	Feedbacks interface {
		Create(ctx context.Context, doc models.Feedback) (*models.Feedback, error)
	}
}

func (h *FeedbackHandler) Submit(c *gin.Context) {
	var fb models.Feedback
	if err := c.ShouldBindJSON(&fb); err != nil {
		badRequest(c, err)
		return
	}
	if fb.CustomerEmail == "" {
		fb.CustomerEmail = c.GetString(middleware.CtxEmail)
	}
	created, err := h.Feedbacks.Create(c.Request.Context(), fb)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}
