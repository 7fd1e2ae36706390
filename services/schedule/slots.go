// Package schedule holds the pure day-calendar computations: slot labels,
// enabled-hours filtering, the staff × slot schedule matrix, booking form
// validation and totals. Nothing here performs I/O.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// Default grid: every 30 minutes from 00:00 through 23:30.
const (
	DefaultStartMinute = 0
	DefaultEndMinute   = 1410
	DefaultStepMinutes = 30
)

// GenerateTimeSlots returns "HH:MM" labels for start, start+step, ... up to
// and including end. A non-positive step or end before start yields no slots.
func GenerateTimeSlots(start, end, step int) []string {
	if step <= 0 || end < start {
		return []string{}
	}
	slots := make([]string, 0, (end-start)/step+1)
	for m := start; m <= end; m += step {
		slots = append(slots, FormatMinute(m))
	}
	return slots
}

// DefaultTimeSlots is GenerateTimeSlots over the default 30-minute day grid.
func DefaultTimeSlots() []string {
	return GenerateTimeSlots(DefaultStartMinute, DefaultEndMinute, DefaultStepMinutes)
}

// FormatMinute renders minutes-from-midnight as "HH:MM".
func FormatMinute(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// HourOf parses the hour component (text before the first colon) of a time
// string such as "14:00" or "9:30".
func HourOf(t string) (int, bool) {
	head, _, _ := strings.Cut(strings.TrimSpace(t), ":")
	if head == "" {
		return 0, false
	}
	h, err := strconv.Atoi(head)
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	return h, true
}
