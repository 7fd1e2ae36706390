package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"salonhub/middleware"
	"salonhub/models"
	"salonhub/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves customer and back-office booking endpoints.
type BookingHandler struct {
	Bookings booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Bookings: svc}
}

func bindBooking(c *gin.Context) (models.BookingInput, bool) {
	var in models.BookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return in, false
	}
	return in, true
}

// CreateOwn books for the signed-in customer. The customer id comes from the
// session, the status always starts as upcoming and payment state is left
// to the back office.
func (h *BookingHandler) CreateOwn(c *gin.Context) {
	in, ok := bindBooking(c)
	if !ok {
		return
	}
	in.CustomerID = c.GetString(middleware.CtxUserID)
	in.Status = models.BookingUpcoming
	in.PaymentStatus = models.PaymentPending
	in.Tip, in.Discount = 0, 0
	in.CardLast4 = ""
	if in.CustomerEmail == "" {
		in.CustomerEmail = c.GetString(middleware.CtxEmail)
	}
	h.create(c, in)
}

func (h *BookingHandler) Create(c *gin.Context) {
	in, ok := bindBooking(c)
	if !ok {
		return
	}
	h.create(c, in)
}

func (h *BookingHandler) create(c *gin.Context, in models.BookingInput) {
	b, err := h.Bookings.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("booking created", zap.String("bookingId", b.ID), zap.String("branchId", b.BranchID))
	c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) MyBookings(c *gin.Context) {
	f := models.BookingFilter{
		CustomerID: c.GetString(middleware.CtxUserID),
		Status:     c.Query("status"),
		SortBy:     "date",
		Desc:       true,
	}
	h.list(c, f)
}

// List handles GET /api/admin/bookings?status=&branch=&from=&to=&search=&sort=&desc=.
func (h *BookingHandler) List(c *gin.Context) {
	desc, _ := strconv.ParseBool(c.DefaultQuery("desc", "false"))
	f := models.BookingFilter{
		Status:   c.Query("status"),
		BranchID: c.Query("branch"),
		From:     c.Query("from"),
		To:       c.Query("to"),
		Search:   strings.TrimSpace(c.Query("search")),
		SortBy:   c.Query("sort"),
		Desc:     desc,
	}
	if f.BranchID == "all" {
		f.BranchID = ""
	}
	h.list(c, f)
}

func (h *BookingHandler) list(c *gin.Context, f models.BookingFilter) {
	out, err := h.Bookings.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	if out == nil {
		out = []models.Booking{}
	}
	c.JSON(http.StatusOK, out)
}

func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.Bookings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Update(c *gin.Context) {
	in, ok := bindBooking(c)
	if !ok {
		return
	}
	b, err := h.Bookings.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Bookings.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("booking deleted", zap.String("bookingId", id))
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted"})
}

func (h *BookingHandler) SetStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.Bookings.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
