package bookingRepo

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"salonhub/models"

	"go.mongodb.org/mongo-driver/bson"
)

func withZone(t *testing.T, loc *time.Location) {
	t.Helper()
	models.SetDayLocation(loc)
	t.Cleanup(func() { models.SetDayLocation(time.UTC) })
}

func bookingAt(t *testing.T, id, raw string) models.Booking {
	t.Helper()
	var d models.BookingDate
	if err := json.Unmarshal([]byte(`"`+raw+`"`), &d); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	b := models.Booking{Date: d}
	b.ID = id
	return b
}

func stringWindow(t *testing.T, filter bson.M) bson.M {
	t.Helper()
	for _, clause := range filter["$or"].(bson.A) {
		cond, ok := clause.(bson.M)["date"].(bson.M)
		if ok && cond["$type"] == "string" {
			return cond
		}
	}
	t.Fatalf("no string clause in %v", filter)
	return nil
}

func TestDateRangeWidensStringWindow(t *testing.T) {
	withZone(t, time.FixedZone("EST", -5*3600))

	day, _ := models.ParseDay("2025-05-31")
	w := stringWindow(t, dateRange(day.Time, day.AddDate(0, 0, 1)))

	// Stored UTC string that falls on 05-31 in the salon zone.
	stored := "2025-06-01T02:00:00Z"
	if !(stored >= w["$gte"].(string) && stored < w["$lt"].(string)) {
		t.Fatalf("string window %v misses %q", w, stored)
	}
}

func TestInRangeUsesSalonDay(t *testing.T) {
	withZone(t, time.FixedZone("EST", -5*3600))

	late := bookingAt(t, "late", "2025-06-01T02:00:00Z")
	if late.Date.Day() != "2025-05-31" {
		t.Fatalf("expected salon day 2025-05-31, got %s", late.Date.Day())
	}

	cases := []struct {
		day  string
		want []string
	}{
		{"2025-05-31", []string{"late", "plain-31"}},
		{"2025-06-01", []string{"plain-01"}},
	}
	for _, tc := range cases {
		t.Run(tc.day, func(t *testing.T) {
			fetched := []models.Booking{
				bookingAt(t, "late", "2025-06-01T02:00:00Z"),
				bookingAt(t, "plain-31", "2025-05-31"),
				bookingAt(t, "plain-01", "2025-06-01"),
				{},
			}
			d, _ := models.ParseDay(tc.day)
			got := inRange(fetched, d.Time, d.AddDate(0, 0, 1))
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %+v", tc.want, got)
			}
			for i, id := range tc.want {
				if got[i].ID != id {
					t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
				}
			}
		})
	}
}

func TestDecodeChangeFailureRequestsResync(t *testing.T) {
	ev := decodeChange(func(any) error { return errors.New("bad document") })
	if ev.Op != models.OpResync {
		t.Fatalf("expected resync, got %+v", ev)
	}

	ok := decodeChange(func(v any) error {
		b := &models.Booking{}
		b.ID = "b1"
		v.(*changeEvent).OperationType = "insert"
		v.(*changeEvent).FullDocument = b
		return nil
	})
	if ok.Op != "insert" || ok.ID != "b1" {
		t.Fatalf("unexpected event %+v", ok)
	}
}
