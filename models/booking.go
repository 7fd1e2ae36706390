package models

// Booking status values. Status is operator-set; nothing transitions it.
const (
	BookingUpcoming  = "upcoming"
	BookingPast      = "past"
	BookingCancelled = "cancelled"
)

// Payment status values.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// ValidBookingStatus reports whether s is one of the known status tags.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingUpcoming, BookingPast, BookingCancelled:
		return true
	}
	return false
}

// ServiceLine is one service row on a booking.
type ServiceLine struct {
	ServiceID string `bson:"serviceId,omitempty" json:"serviceId,omitempty"`
	Name      string `bson:"name" json:"name"`
	Category  string `bson:"category,omitempty" json:"category,omitempty"`
	Duration  Number `bson:"duration" json:"duration"` // minutes
	Price     Number `bson:"price" json:"price"`
	Quantity  Number `bson:"quantity" json:"quantity"`
}

// Booking is a customer appointment document.
type Booking struct {
	DocMeta `bson:",inline"`

	CustomerID    string `bson:"customerId,omitempty" json:"customerId,omitempty"`
	CustomerName  string `bson:"customerName" json:"customerName"`
	CustomerEmail string `bson:"customerEmail,omitempty" json:"customerEmail,omitempty"`
	CustomerPhone string `bson:"customerPhone" json:"customerPhone"`

	Services []ServiceLine `bson:"services" json:"services"`
	Date     BookingDate   `bson:"date" json:"date"`
	Time     string        `bson:"time" json:"time"` // "HH:MM"

	BranchID   string `bson:"branchId" json:"branchId"`
	BranchName string `bson:"branchName,omitempty" json:"branchName,omitempty"`
	Staff      string `bson:"staff,omitempty" json:"staff,omitempty"` // staff display name
	StaffID    string `bson:"staffId,omitempty" json:"staffId,omitempty"`

	// Derived from Services on every write.
	TotalPrice    float64 `bson:"totalPrice" json:"totalPrice"`
	TotalDuration float64 `bson:"totalDuration" json:"totalDuration"`

	Status string `bson:"status" json:"status"`

	PaymentMethod string  `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	PaymentStatus string  `bson:"paymentStatus,omitempty" json:"paymentStatus,omitempty"`
	Tip           float64 `bson:"tip,omitempty" json:"tip,omitempty"`
	Discount      float64 `bson:"discount,omitempty" json:"discount,omitempty"`
	CardLast4     string  `bson:"cardLast4,omitempty" json:"cardLast4,omitempty"`
	TaxNumber     string  `bson:"taxNumber,omitempty" json:"taxNumber,omitempty"`

	EmailConfirmation bool `bson:"emailConfirmation" json:"emailConfirmation"`
	SMSConfirmation   bool `bson:"smsConfirmation" json:"smsConfirmation"`

	Notes      string `bson:"notes,omitempty" json:"notes,omitempty"`
	InvoiceURL string `bson:"invoiceUrl,omitempty" json:"invoiceUrl,omitempty"`
}

// BookingInput is the create/edit form payload. Totals are never accepted
// from the client.
type BookingInput struct {
	CustomerID    string        `json:"customerId"`
	CustomerName  string        `json:"customerName"`
	CustomerEmail string        `json:"customerEmail"`
	CustomerPhone string        `json:"customerPhone"`
	Services      []ServiceLine `json:"services"`
	Date          BookingDate   `json:"date"`
	Time          string        `json:"time"`
	BranchID      string        `json:"branchId"`
	Staff         string        `json:"staff"`
	StaffID       string        `json:"staffId"`
	Status        string        `json:"status"`

	PaymentMethod string  `json:"paymentMethod"`
	PaymentStatus string  `json:"paymentStatus"`
	Tip           float64 `json:"tip"`
	Discount      float64 `json:"discount"`
	CardLast4     string  `json:"cardLast4"`
	TaxNumber     string  `json:"taxNumber"`

	EmailConfirmation bool   `json:"emailConfirmation"`
	SMSConfirmation   bool   `json:"smsConfirmation"`
	Notes             string `json:"notes"`
}

// BookingFilter narrows booking listings. Empty fields match everything.
type BookingFilter struct {
	Status     string
	BranchID   string
	CustomerID string
	From       string // yyyy-MM-dd, inclusive
	To         string // yyyy-MM-dd, inclusive
	Search     string // customer name/email/phone substring
	SortBy     string // "date" (default), "createdAt", "totalPrice", "customerName"
	Desc       bool
}

// OpResync tells live views to reload the day from the store.
const OpResync = "resync"

// BookingEvent is a change observed on the bookings collection.
type BookingEvent struct {
	Op      string   `json:"op"` // "insert", "update", "replace", "delete", "resync"
	ID      string   `json:"id"`
	Booking *Booking `json:"booking,omitempty"`
}
