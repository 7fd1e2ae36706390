package handlers

import (
	"context"
	"net/http"

	"salonhub/models"

	"github.com/gin-gonic/gin"
)

// BranchListHandler serves the public list of active branches.
type BranchListHandler struct {
	Branches interface {
		ListActive(ctx context.Context) ([]models.Branch, error)
	}
}

func (h *BranchListHandler) List(c *gin.Context) {
	out, err := h.Branches.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if out == nil {
		out = []models.Branch{}
	}
	c.JSON(http.StatusOK, out)
}
