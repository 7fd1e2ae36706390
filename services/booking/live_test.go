package booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"salonhub/models"
)

func liveBooking(t *testing.T, id, day, branch, at string) models.Booking {
	t.Helper()
	b := models.Booking{BranchID: branch, Time: at, Staff: "Alice"}
	b.ID = id
	d, err := models.ParseDay(day)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	b.Date = d
	return b
}

func TestLiveDayDedupesLocalCreateAndEcho(t *testing.T) {
	live := NewLiveDay("2025-06-01", "B1")
	local := liveBooking(t, "b1", "2025-06-01", "B1", "14:00")

	if r := live.Apply(models.BookingEvent{Op: "insert", ID: "b1", Booking: &local}); r != Changed {
		t.Fatalf("expected Changed, got %v", r)
	}
	echo := local
	echo.TotalPrice = 50
	live.Apply(models.BookingEvent{Op: "insert", ID: "b1", Booking: &echo})

	if live.Len() != 1 {
		t.Fatalf("echo duplicated the booking: %d entries", live.Len())
	}
	if got := live.Snapshot()[0]; got.TotalPrice != 50 {
		t.Fatalf("echo should replace the local copy, got %+v", got)
	}
}

func TestLiveDayDeleteAndMove(t *testing.T) {
	live := NewLiveDay("2025-06-01", "all")
	live.Seed([]models.Booking{
		liveBooking(t, "a", "2025-06-01", "B1", "09:00"),
		liveBooking(t, "b", "2025-06-01", "B2", "10:00"),
		liveBooking(t, "other", "2025-06-02", "B1", "10:00"),
	})
	if live.Len() != 2 {
		t.Fatalf("seed should keep only the day's bookings, got %d", live.Len())
	}

	if r := live.Apply(models.BookingEvent{Op: "delete", ID: "a"}); r != Changed || live.Len() != 1 {
		t.Fatalf("delete by id failed: %v %d", r, live.Len())
	}
	if r := live.Apply(models.BookingEvent{Op: "delete", ID: "a"}); r != Unchanged {
		t.Fatalf("second delete should be Unchanged, got %v", r)
	}

	moved := liveBooking(t, "b", "2025-06-03", "B2", "10:00")
	if r := live.Apply(models.BookingEvent{Op: "update", ID: "b", Booking: &moved}); r != Changed || live.Len() != 0 {
		t.Fatalf("moved booking should leave the day: %v %d", r, live.Len())
	}
	if r := live.Apply(models.BookingEvent{Op: "delete"}); r != Resync {
		t.Fatalf("event without id should request resync, got %v", r)
	}
}

func TestLiveDayBranchFilter(t *testing.T) {
	live := NewLiveDay("2025-06-01", "B1")
	other := liveBooking(t, "x", "2025-06-01", "B2", "09:00")
	if r := live.Apply(models.BookingEvent{Op: "insert", ID: "x", Booking: &other}); r != Unchanged {
		t.Fatalf("other branch should be ignored, got %v", r)
	}
}

func TestServicePublishesIntoLiveDay(t *testing.T) {
	repo := newMemRepo()
	broker := NewBroker(repo, nil)
	svc := NewBookingService(repo, fakeStaff{names: []string{"Alice"}}, fakeBranches{}, fakeHours{}, WithPublisher(broker))

	events, cancel := broker.Subscribe()
	defer cancel()

	ctx := context.Background()
	live, err := svc.OpenLiveDay(ctx, "2025-06-01", "B1")
	if err != nil {
		t.Fatalf("OpenLiveDay: %v", err)
	}
	created, err := svc.Create(ctx, validInput(t))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	select {
	case ev := <-events:
		live.Apply(ev)
	case <-time.After(time.Second):
		t.Fatalf("no event published")
	}
	// The store echo of the same insert.
	echo := *created
	live.Apply(models.BookingEvent{Op: "insert", ID: created.ID, Booking: &echo})

	view, err := svc.ViewOf(ctx, live)
	if err != nil {
		t.Fatalf("ViewOf: %v", err)
	}
	if view.Total.Bookings != 1 {
		t.Fatalf("expected exactly one booking on the grid, got %d", view.Total.Bookings)
	}
}

func TestBrokerUnsubscribe(t *testing.T) {
	broker := NewBroker(newMemRepo(), nil)
	_, cancel := broker.Subscribe()
	if broker.Subscribers() != 1 {
		t.Fatalf("expected one subscriber")
	}
	cancel()
	cancel()
	if broker.Subscribers() != 0 {
		t.Fatalf("expected no subscribers")
	}
	broker.Publish(models.BookingEvent{Op: "delete", ID: "x"})
}

func TestBrokerOverflowQueuesResync(t *testing.T) {
	broker := NewBroker(newMemRepo(), nil)
	events, cancel := broker.Subscribe()
	defer cancel()

	for i := 0; i < 40; i++ {
		broker.Publish(models.BookingEvent{Op: "insert", ID: fmt.Sprintf("b%d", i)})
	}

	var got []models.BookingEvent
	for len(got) < cap(events)+1 {
		select {
		case ev := <-events:
			got = append(got, ev)
			continue
		default:
		}
		break
	}
	if len(got) != cap(events) {
		t.Fatalf("expected a full buffer of %d, got %d", cap(events), len(got))
	}
	if last := got[len(got)-1]; last.Op != models.OpResync {
		t.Fatalf("expected the newest entry to be a resync marker, got %+v", last)
	}
	resyncs := 0
	for _, ev := range got {
		if ev.Op == models.OpResync {
			resyncs++
		}
	}
	// 8 overflows, each evicting the oldest event: b8..b31 survive.
	if resyncs != 8 || got[0].ID != "b8" {
		t.Fatalf("expected b8 first and 8 resync markers, got %s first and %d markers", got[0].ID, resyncs)
	}
}
