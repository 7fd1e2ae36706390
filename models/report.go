package models

// BookingAggregate is one status × staff group of bookings in a date range.
type BookingAggregate struct {
	Status  string  `bson:"status" json:"status"`
	Staff   string  `bson:"staff" json:"staff"`
	Count   int     `bson:"count" json:"count"`
	Revenue float64 `bson:"revenue" json:"revenue"`
	Minutes float64 `bson:"minutes" json:"minutes"`
}

// ReportSummary is the back-office overview for a date range.
type ReportSummary struct {
	From          string             `json:"from"`
	To            string             `json:"to"`
	BranchID      string             `json:"branchId"`
	Currency      string             `json:"currency"`
	Bookings      int                `json:"bookings"`
	ByStatus      map[string]int     `json:"byStatus"`
	Revenue       string             `json:"revenue"`
	Expenses      string             `json:"expenses"`
	Net           string             `json:"net"`
	BookedMinutes float64            `json:"bookedMinutes"`
	ByStaff       []StaffPerformance `json:"byStaff"`
	StaleUpcoming int                `json:"staleUpcoming"`
}

// StaffPerformance is one staff row of the summary.
type StaffPerformance struct {
	Staff    string `json:"staff"`
	Bookings int    `json:"bookings"`
	Revenue  string `json:"revenue"`
}
