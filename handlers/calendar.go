package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"salonhub/models"
	"salonhub/services/booking"
	"salonhub/services/schedule"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DaySchedule is the part of the booking service the calendar needs.
type DaySchedule interface {
	DaySchedule(ctx context.Context, day, branchID string) (*schedule.DayView, error)
	AvailableSlots(ctx context.Context, branchID string) ([]string, error)
	OpenLiveDay(ctx context.Context, day, branchID string) (*booking.LiveDay, error)
	Reload(ctx context.Context, live *booking.LiveDay) error
	ViewOf(ctx context.Context, live *booking.LiveDay) (*schedule.DayView, error)
}

// EventSource is satisfied by *booking.Broker.
type EventSource interface {
	Subscribe() (<-chan models.BookingEvent, func())
}

// HoursStore edits the persisted enabled hours of a branch.
type HoursStore interface {
	EnabledHours(ctx context.Context, branchID string) (schedule.EnabledHours, error)
	SaveHours(ctx context.Context, branchID string, hours schedule.EnabledHours) (schedule.EnabledHours, error)
	ToggleHour(ctx context.Context, branchID string, hour int) (schedule.EnabledHours, error)
	DisableAllHours(ctx context.Context, branchID string) (schedule.EnabledHours, error)
	EnableAllHours(ctx context.Context, branchID string) (schedule.EnabledHours, error)
}

// CalendarHandler serves the day view, its live stream and booking hours.
type CalendarHandler struct {
	Schedule  DaySchedule
	Events    EventSource
	Hours     HoursStore
	Heartbeat time.Duration
}

func NewCalendarHandler(s DaySchedule, events EventSource, hours HoursStore) *CalendarHandler {
	return &CalendarHandler{Schedule: s, Events: events, Hours: hours, Heartbeat: 25 * time.Second}
}

// Day handles GET /api/admin/calendar/day?date=&branch=.
func (h *CalendarHandler) Day(c *gin.Context) {
	view, err := h.Schedule.DaySchedule(c.Request.Context(), c.Query("date"), c.DefaultQuery("branch", schedule.AllBranches))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Slots handles GET /api/schedule/slots?branch=.
func (h *CalendarHandler) Slots(c *gin.Context) {
	slots, err := h.Schedule.AvailableSlots(c.Request.Context(), c.DefaultQuery("branch", schedule.AllBranches))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// Stream sends the day view as a "day" event on connect and again after
// every booking change that touches the day. A "resync" event, or one that
// cannot be mapped to a booking, reloads the day from the store.
func (h *CalendarHandler) Stream(c *gin.Context) {
	ctx := c.Request.Context()
	logger := getLogger(c)

	// Subscribe before seeding so no change between the two is lost.
	events, cancel := h.Events.Subscribe()
	defer cancel()

	live, err := h.Schedule.OpenLiveDay(ctx, c.Query("date"), c.DefaultQuery("branch", schedule.AllBranches))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	send := func() bool {
		view, err := h.Schedule.ViewOf(ctx, live)
		if err != nil {
			logger.Error("day view render failed", zap.String("date", live.Day()), zap.Error(err))
			return false
		}
		c.SSEvent("day", view)
		c.Writer.Flush()
		return true
	}
	reload := func() bool {
		if err := h.Schedule.Reload(ctx, live); err != nil {
			logger.Error("day reload failed", zap.String("date", live.Day()), zap.Error(err))
			return false
		}
		return send()
	}

	if !send() {
		return
	}
	heartbeat := time.NewTicker(h.Heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Op == models.OpResync {
				if !reload() {
					return
				}
				continue
			}
			switch live.Apply(ev) {
			case booking.Changed:
				if !send() {
					return
				}
			case booking.Resync:
				if !reload() {
					return
				}
			}
		case <-heartbeat.C:
			c.SSEvent("ping", time.Now().Unix())
			c.Writer.Flush()
		}
	}
}

func (h *CalendarHandler) GetHours(c *gin.Context) {
	hours, err := h.Hours.EnabledHours(c.Request.Context(), c.Param("branchId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hours)
}

func (h *CalendarHandler) PutHours(c *gin.Context) {
	var hours schedule.EnabledHours
	if err := c.ShouldBindJSON(&hours); err != nil {
		badRequest(c, err)
		return
	}
	saved, err := h.Hours.SaveHours(c.Request.Context(), c.Param("branchId"), hours)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *CalendarHandler) ToggleHour(c *gin.Context) {
	hour, err := strconv.Atoi(c.Param("hour"))
	if err != nil {
		badRequest(c, err)
		return
	}
	hours, err := h.Hours.ToggleHour(c.Request.Context(), c.Param("branchId"), hour)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hours)
}

func (h *CalendarHandler) DisableAll(c *gin.Context) {
	hours, err := h.Hours.DisableAllHours(c.Request.Context(), c.Param("branchId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hours)
}

func (h *CalendarHandler) EnableAll(c *gin.Context) {
	hours, err := h.Hours.EnableAllHours(c.Request.Context(), c.Param("branchId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hours)
}
