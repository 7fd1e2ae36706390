package handlers

import (
	"context"
	"net/http"

	"salonhub/models"

	"github.com/gin-gonic/gin"
)

// Summarizer builds the back-office summary report.
type Summarizer interface {
	Summary(ctx context.Context, from, to, branchID string) (*models.ReportSummary, error)
}

type ReportHandler struct {
	Reports Summarizer
}

func NewReportHandler(r Summarizer) *ReportHandler {
	return &ReportHandler{Reports: r}
}

// Summary handles GET /api/admin/reports/summary?from=&to=&branch=.
func (h *ReportHandler) Summary(c *gin.Context) {
	sum, err := h.Reports.Summary(c.Request.Context(), c.Query("from"), c.Query("to"), c.DefaultQuery("branch", "all"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}
