package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// DayLayout is the canonical calendar-day format ("yyyy-MM-dd").
const DayLayout = "2006-01-02"

var dayLocation = time.UTC

// SetDayLocation sets the zone used to resolve calendar days.
func SetDayLocation(loc *time.Location) {
	if loc != nil {
		dayLocation = loc
	}
}

// DayLocation returns the zone used to resolve calendar days.
func DayLocation() *time.Location {
	return dayLocation
}

// BookingDate is the single timestamp type used for scheduled dates.
//
// Stored documents carry one of three shapes: a native datetime, an ISO-8601
// string, or an epoch-seconds object ({seconds, nanoseconds} or the
// underscore-prefixed variant). All of them decode into the same value and are
// always written back as a native datetime.
type BookingDate struct {
	time.Time
}

func NewBookingDate(t time.Time) BookingDate {
	return BookingDate{Time: t}
}

// ParseDay parses a "yyyy-MM-dd" string in the salon zone.
func ParseDay(s string) (BookingDate, error) {
	t, err := time.ParseInLocation(DayLayout, strings.TrimSpace(s), dayLocation)
	if err != nil {
		return BookingDate{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return BookingDate{Time: t}, nil
}

// Day formats the date as "yyyy-MM-dd" in the salon zone, or "" when unset.
func (d BookingDate) Day() string {
	if d.IsZero() {
		return ""
	}
	return d.In(dayLocation).Format(DayLayout)
}

func parseDateString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation(DayLayout, s, dayLocation); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, dayLocation); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognised date string %q", s)
}

func fromEpoch(seconds float64, nanos int64) time.Time {
	whole, frac := math.Modf(seconds)
	return time.Unix(int64(whole), int64(frac*1e9)+nanos).UTC()
}

// MarshalBSONValue always writes a native datetime.
func (d BookingDate) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if d.IsZero() {
		return bson.TypeNull, nil, nil
	}
	return bson.MarshalValue(d.Time)
}

// UnmarshalBSONValue accepts datetime, timestamp, string, epoch number and
// epoch-seconds subdocument encodings.
func (d *BookingDate) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeNull, bson.TypeUndefined:
		d.Time = time.Time{}
	case bson.TypeDateTime:
		d.Time = raw.Time()
	case bson.TypeTimestamp:
		secs, _ := raw.Timestamp()
		d.Time = time.Unix(int64(secs), 0).UTC()
	case bson.TypeString:
		parsed, err := parseDateString(raw.StringValue())
		if err != nil {
			return err
		}
		d.Time = parsed
	case bson.TypeInt32, bson.TypeInt64, bson.TypeDouble:
		secs, _ := rawNumber(raw)
		d.Time = fromEpoch(secs, 0)
	case bson.TypeEmbeddedDocument:
		doc := raw.Document()
		secs, ok := lookupNumber(doc, "seconds", "_seconds")
		if !ok {
			return fmt.Errorf("date object without seconds field")
		}
		nanos, _ := lookupNumber(doc, "nanoseconds", "_nanoseconds")
		d.Time = fromEpoch(secs, int64(nanos))
	default:
		return fmt.Errorf("cannot decode BSON %s into BookingDate", t)
	}
	return nil
}

func lookupNumber(doc bson.Raw, keys ...string) (float64, bool) {
	for _, k := range keys {
		v, err := doc.LookupErr(k)
		if err != nil {
			continue
		}
		if n, ok := rawNumber(v); ok {
			return n, true
		}
	}
	return 0, false
}

func rawNumber(v bson.RawValue) (float64, bool) {
	switch v.Type {
	case bson.TypeInt32:
		n, ok := v.Int32OK()
		return float64(n), ok
	case bson.TypeInt64:
		n, ok := v.Int64OK()
		return float64(n), ok
	case bson.TypeDouble:
		return v.DoubleOK()
	}
	return 0, false
}

// MarshalJSON renders the calendar day.
func (d BookingDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Day())
}

// UnmarshalJSON accepts a date string, epoch seconds, or an epoch-seconds object.
func (d *BookingDate) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		parsed, err := parseDateString(s)
		if err != nil {
			return err
		}
		d.Time = parsed
	case '{':
		var obj map[string]float64
		if err := json.Unmarshal(b, &obj); err != nil {
			return fmt.Errorf("invalid date object: %w", err)
		}
		secs, ok := obj["seconds"]
		if !ok {
			secs, ok = obj["_seconds"]
		}
		if !ok {
			return fmt.Errorf("date object without seconds field")
		}
		nanos := obj["nanoseconds"]
		if nanos == 0 {
			nanos = obj["_nanoseconds"]
		}
		d.Time = fromEpoch(secs, int64(nanos))
	default:
		var secs float64
		if err := json.Unmarshal(b, &secs); err != nil {
			return fmt.Errorf("invalid date value: %w", err)
		}
		d.Time = fromEpoch(secs, 0)
	}
	return nil
}
