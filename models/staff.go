package models

// Staff is an assignable team member; the day grid's column axis.
type Staff struct {
	DocMeta `bson:",inline"`

	Name            string   `bson:"name" json:"name" validate:"required"`
	Email           string   `bson:"email,omitempty" json:"email,omitempty" validate:"omitempty,email"`
	Phone           string   `bson:"phone,omitempty" json:"phone,omitempty"`
	BranchID        string   `bson:"branchId" json:"branchId" validate:"required"`
	Status          string   `bson:"status" json:"status" validate:"omitempty,oneof=active inactive"`
	Rating          float64  `bson:"rating" json:"rating"`
	ReviewCount     int      `bson:"reviewCount" json:"reviewCount"`
	Specializations []string `bson:"specializations,omitempty" json:"specializations,omitempty"`
	ImageURL        string   `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
}

// StaffRating is the aggregate of feedback ratings for one staff member.
type StaffRating struct {
	StaffID string  `bson:"_id" json:"staffId"`
	Average float64 `bson:"average" json:"average"`
	Count   int     `bson:"count" json:"count"`
}

// Branch is a salon location.
type Branch struct {
	DocMeta `bson:",inline"`

	Name       string `bson:"name" json:"name" validate:"required"`
	Address    string `bson:"address,omitempty" json:"address,omitempty"`
	City       string `bson:"city,omitempty" json:"city,omitempty"`
	State      string `bson:"state,omitempty" json:"state,omitempty"`
	PostalCode string `bson:"postalCode,omitempty" json:"postalCode,omitempty"`
	Country    string `bson:"country,omitempty" json:"country,omitempty"`
	Phone      string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email      string `bson:"email,omitempty" json:"email,omitempty" validate:"omitempty,email"`
	Status     string `bson:"status" json:"status" validate:"omitempty,oneof=active inactive"`
}
