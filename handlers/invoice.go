package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Invoicer renders and publishes booking invoices.
type Invoicer interface {
	PDF(ctx context.Context, bookingID string) ([]byte, string, error)
	Publish(ctx context.Context, bookingID string) (string, error)
}

type InvoiceHandler struct {
	Invoices Invoicer
}

func NewInvoiceHandler(inv Invoicer) *InvoiceHandler {
	return &InvoiceHandler{Invoices: inv}
}

// Download handles GET /api/admin/bookings/:id/invoice.
func (h *InvoiceHandler) Download(c *gin.Context) {
	data, name, err := h.Invoices.PDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/pdf", data)
}

// Publish handles POST /api/admin/bookings/:id/invoice.
func (h *InvoiceHandler) Publish(c *gin.Context) {
	url, err := h.Invoices.Publish(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoiceUrl": url})
}
