package handlers

import (
	"context"
	"net/http"

	"salonhub/models"
	"salonhub/services/staff"

	"github.com/gin-gonic/gin"
)

// RatingsRefresher recomputes staff ratings.
type RatingsRefresher interface {
	RefreshRatings(ctx context.Context) (staff.RefreshResult, error)
}

// StaffHandler is staff CRUD plus the on-demand rating refresh.
type StaffHandler struct {
	*CRUDHandler[models.Staff]
	Ratings RatingsRefresher
}

func NewStaffHandler(svc *staff.StaffService) *StaffHandler {
	return &StaffHandler{CRUDHandler: NewCRUDHandler[models.Staff]("staff", svc), Ratings: svc}
}

// RefreshRatings handles POST /api/admin/staff/ratings/refresh.
func (h *StaffHandler) RefreshRatings(c *gin.Context) {
	res, err := h.Ratings.RefreshRatings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
