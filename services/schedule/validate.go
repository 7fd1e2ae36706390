package schedule

import (
	"strings"

	"salonhub/models"
)

// ValidationError is the first failing booking-form rule.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"error"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Booking form messages, in rule order.
const (
	MsgCustomerName = "Customer name is required"
	MsgPhone        = "Phone number is required"
	MsgDate         = "Please select a date"
	MsgTime         = "Please select a time"
	MsgBranch       = "Please select a branch"
	MsgStaff        = "Please select a staff member"
	MsgNoServices   = "Please add at least one service"
	MsgServiceName  = "Every service needs a name"
	MsgHourDisabled = "The selected time is outside the enabled booking hours"
)

// BookingForm is the field state the validator reads.
type BookingForm struct {
	CustomerName string
	Phone        string
	Date         models.BookingDate
	Time         string
	BranchID     string
	Staff        string
	Services     []models.ServiceLine
}

// FormFromInput adapts a booking payload to the validator's view.
func FormFromInput(in models.BookingInput) BookingForm {
	return BookingForm{
		CustomerName: in.CustomerName,
		Phone:        in.CustomerPhone,
		Date:         in.Date,
		Time:         in.Time,
		BranchID:     in.BranchID,
		Staff:        in.Staff,
		Services:     in.Services,
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ValidateBookingForm returns the first failing rule, or nil.
func ValidateBookingForm(f BookingForm, hours EnabledHours) error {
	if blank(f.CustomerName) {
		return &ValidationError{Field: "customerName", Message: MsgCustomerName}
	}
	if blank(f.Phone) {
		return &ValidationError{Field: "customerPhone", Message: MsgPhone}
	}
	if f.Date.IsZero() {
		return &ValidationError{Field: "date", Message: MsgDate}
	}
	if blank(f.Time) {
		return &ValidationError{Field: "time", Message: MsgTime}
	}
	if blank(f.BranchID) {
		return &ValidationError{Field: "branchId", Message: MsgBranch}
	}
	if blank(f.Staff) {
		return &ValidationError{Field: "staff", Message: MsgStaff}
	}
	if len(f.Services) == 0 {
		return &ValidationError{Field: "services", Message: MsgNoServices}
	}
	for _, s := range f.Services {
		if blank(s.Name) {
			return &ValidationError{Field: "services", Message: MsgServiceName}
		}
	}
	if !hours.SlotEnabled(f.Time) {
		return &ValidationError{Field: "time", Message: MsgHourDisabled}
	}
	return nil
}
