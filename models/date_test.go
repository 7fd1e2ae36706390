package models

import (
	"encoding/json"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

type dated struct {
	Date BookingDate `bson:"date" json:"date"`
}

func TestBookingDateDecodesStoredShapes(t *testing.T) {
	want := "2025-06-01"
	ts := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	docs := map[string]bson.M{
		"datetime":       {"date": ts},
		"iso day":        {"date": "2025-06-01"},
		"rfc3339":        {"date": "2025-06-01T10:00:00Z"},
		"seconds object": {"date": bson.M{"seconds": ts.Unix(), "nanoseconds": 0}},
		"underscore":     {"date": bson.M{"_seconds": ts.Unix(), "_nanoseconds": 0}},
		"epoch number":   {"date": ts.Unix()},
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			raw, err := bson.Marshal(doc)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var out dated
			if err := bson.Unmarshal(raw, &out); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := out.Date.Day(); got != want {
				t.Fatalf("got %q, want %q", got, want)
			}
		})
	}
}

func TestBookingDateWritesDatetime(t *testing.T) {
	d, err := ParseDay("2025-06-01")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	raw, err := bson.Marshal(dated{Date: d})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	v := bson.Raw(raw).Lookup("date")
	if v.Type != bson.TypeDateTime {
		t.Fatalf("expected datetime, got %s", v.Type)
	}
}

func TestBookingDateJSON(t *testing.T) {
	inputs := []string{
		`{"date":"2025-06-01"}`,
		`{"date":{"seconds":1748772000}}`,
		`{"date":{"_seconds":1748772000,"_nanoseconds":5}}`,
		`{"date":1748772000}`,
	}
	for _, in := range inputs {
		var out dated
		if err := json.Unmarshal([]byte(in), &out); err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		if got := out.Date.Day(); got != "2025-06-01" {
			t.Fatalf("%s: got %q", in, got)
		}
	}

	b, err := json.Marshal(dated{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"date":null}` {
		t.Fatalf("unexpected zero encoding %s", b)
	}
}

func TestBookingDateRejectsGarbage(t *testing.T) {
	var out dated
	if err := json.Unmarshal([]byte(`{"date":"next tuesday"}`), &out); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := ParseDay("2025-13-01"); err == nil {
		t.Fatalf("expected error for bad month")
	}
}
