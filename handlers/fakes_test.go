package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"salonhub/middleware"
	"salonhub/models"
	"salonhub/services/booking"
	"salonhub/services/schedule"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// asUser stands in for JWTAuthMiddleware.
func asUser(uid, email, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxUserID, uid)
		c.Set(middleware.CtxEmail, email)
		c.Set(middleware.CtxRole, role)
		c.Next()
	}
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type fakeBookings struct {
	created []models.BookingInput
	filters []models.BookingFilter
	stored  map[string]models.Booking
	err     error
}

func (f *fakeBookings) Create(_ context.Context, in models.BookingInput) (*models.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, in)
	b := &models.Booking{CustomerID: in.CustomerID, CustomerName: in.CustomerName, Status: in.Status}
	b.ID = fmt.Sprintf("b%d", len(f.created))
	return b, nil
}

func (f *fakeBookings) Update(_ context.Context, id string, in models.BookingInput) (*models.Booking, error) {
	b, err := f.Get(context.Background(), id)
	if err != nil {
		return nil, err
	}
	b.CustomerName = in.CustomerName
	return b, nil
}

func (f *fakeBookings) Get(_ context.Context, id string) (*models.Booking, error) {
	b, ok := f.stored[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", booking.ErrNotFound, id)
	}
	return &b, nil
}

func (f *fakeBookings) List(_ context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	f.filters = append(f.filters, filter)
	return nil, f.err
}

func (f *fakeBookings) Delete(_ context.Context, id string) error {
	if _, ok := f.stored[id]; !ok {
		return fmt.Errorf("%w: %s", booking.ErrNotFound, id)
	}
	delete(f.stored, id)
	return nil
}

func (f *fakeBookings) SetStatus(_ context.Context, id, status string) (*models.Booking, error) {
	if !models.ValidBookingStatus(status) {
		return nil, fmt.Errorf("%w: %q", booking.ErrInvalidStatus, status)
	}
	b, err := f.Get(context.Background(), id)
	if err != nil {
		return nil, err
	}
	b.Status = status
	return b, nil
}

func (f *fakeBookings) DaySchedule(context.Context, string, string) (*schedule.DayView, error) {
	return nil, nil
}

func (f *fakeBookings) AvailableSlots(context.Context, string) ([]string, error) {
	return nil, nil
}

func (f *fakeBookings) OpenLiveDay(context.Context, string, string) (*booking.LiveDay, error) {
	return nil, nil
}

func (f *fakeBookings) ViewOf(context.Context, *booking.LiveDay) (*schedule.DayView, error) {
	return nil, nil
}
