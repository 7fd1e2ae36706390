package schedule

import "strconv"

// HoursInDay is the number of hour keys ("0".."23") an EnabledHours map knows.
const HoursInDay = 24

// EnabledHours maps an hour key ("0".."23") to whether its slots are bookable.
// A missing key means enabled: only an explicit false disables an hour.
type EnabledHours map[string]bool

// AllEnabled returns an empty map, which enables every hour.
func AllEnabled() EnabledHours {
	return EnabledHours{}
}

func hourKey(h int) string {
	return strconv.Itoa(h)
}

// IsEnabled reports whether hour h is bookable.
func (e EnabledHours) IsEnabled(h int) bool {
	v, ok := e[hourKey(h)]
	return !ok || v
}

// SlotEnabled reports whether the hour of slot label t is bookable. Labels
// without a parseable hour are treated as enabled.
func (e EnabledHours) SlotEnabled(t string) bool {
	h, ok := HourOf(t)
	if !ok {
		return true
	}
	return e.IsEnabled(h)
}

// Set writes an explicit value for hour h.
func (e EnabledHours) Set(h int, enabled bool) {
	e[hourKey(h)] = enabled
}

// Toggle flips hour h and returns its new value.
func (e EnabledHours) Toggle(h int) bool {
	next := !e.IsEnabled(h)
	e.Set(h, next)
	return next
}

// DisableAll writes an explicit false for every hour of the day.
func (e EnabledHours) DisableAll() {
	for h := 0; h < HoursInDay; h++ {
		e.Set(h, false)
	}
}

// EnableAll writes an explicit true for every hour of the day.
func (e EnabledHours) EnableAll() {
	for h := 0; h < HoursInDay; h++ {
		e.Set(h, true)
	}
}

// Clone copies the map so callers can edit without aliasing.
func (e EnabledHours) Clone() EnabledHours {
	out := make(EnabledHours, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// FilterSlots keeps the slots whose hour is enabled, preserving order.
func FilterSlots(slots []string, hours EnabledHours) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		if hours.SlotEnabled(s) {
			out = append(out, s)
		}
	}
	return out
}
