package schedule

import "salonhub/models"

// Blank-row defaults for a newly added service line.
const (
	DefaultLineDuration = 30
	DefaultLinePrice    = 0
	DefaultLineQuantity = 1
)

// Totals is the derived price and duration of a booking.
type Totals struct {
	Price    float64 `json:"price"`
	Duration float64 `json:"duration"`
}

// NewServiceLine returns a blank row with the default duration, price and quantity.
func NewServiceLine() models.ServiceLine {
	return models.ServiceLine{
		Duration: DefaultLineDuration,
		Price:    DefaultLinePrice,
		Quantity: DefaultLineQuantity,
	}
}

// ComputeTotals sums price×quantity and duration×quantity over the lines.
// Values that failed to decode are already zero, so partial rows are safe.
func ComputeTotals(lines []models.ServiceLine) Totals {
	var t Totals
	for _, l := range lines {
		q := l.Quantity.Float()
		t.Price += l.Price.Float() * q
		t.Duration += l.Duration.Float() * q
	}
	return t
}

// ApplyTotals recomputes b's stored totals from its service lines.
func ApplyTotals(b *models.Booking) {
	t := ComputeTotals(b.Services)
	b.TotalPrice = t.Price
	b.TotalDuration = t.Duration
}
