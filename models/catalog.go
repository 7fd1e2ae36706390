package models

// Service is a bookable salon treatment.
type Service struct {
	DocMeta `bson:",inline"`

	Name        string   `bson:"name" json:"name" validate:"required"`
	Category    string   `bson:"category" json:"category"`
	Duration    Number   `bson:"duration" json:"duration" validate:"gte=0"`
	Price       Number   `bson:"price" json:"price" validate:"gte=0"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL    string   `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	BranchIDs   []string `bson:"branchIds,omitempty" json:"branchIds,omitempty"`
	Status      string   `bson:"status" json:"status" validate:"omitempty,oneof=active inactive"`
}

// Product is a retail item.
type Product struct {
	DocMeta `bson:",inline"`

	Name        string `bson:"name" json:"name" validate:"required"`
	Category    string `bson:"category" json:"category"`
	Price       Number `bson:"price" json:"price" validate:"gte=0"`
	Stock       int    `bson:"stock" json:"stock" validate:"gte=0"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL    string `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Status      string `bson:"status" json:"status" validate:"omitempty,oneof=active inactive"`
}

// Category groups services or products.
type Category struct {
	DocMeta `bson:",inline"`

	Name        string `bson:"name" json:"name" validate:"required"`
	Type        string `bson:"type" json:"type" validate:"required,oneof=service product"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL    string `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
}

// Expense is a back-office cost entry.
type Expense struct {
	DocMeta `bson:",inline"`

	Title         string      `bson:"title" json:"title" validate:"required"`
	Category      string      `bson:"category" json:"category"`
	Amount        Number      `bson:"amount" json:"amount" validate:"gte=0"`
	BranchID      string      `bson:"branchId,omitempty" json:"branchId,omitempty"`
	Date          BookingDate `bson:"date" json:"date"`
	PaymentMethod string      `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	Notes         string      `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Feedback is a customer review.
type Feedback struct {
	DocMeta `bson:",inline"`

	CustomerName  string `bson:"customerName" json:"customerName" validate:"required"`
	CustomerEmail string `bson:"customerEmail,omitempty" json:"customerEmail,omitempty" validate:"omitempty,email"`
	BookingID     string `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	StaffID       string `bson:"staffId,omitempty" json:"staffId,omitempty"`
	StaffName     string `bson:"staffName,omitempty" json:"staffName,omitempty"`
	BranchID      string `bson:"branchId,omitempty" json:"branchId,omitempty"`
	Rating        int    `bson:"rating" json:"rating" validate:"min=1,max=5"`
	Comment       string `bson:"comment,omitempty" json:"comment,omitempty"`
}

// CartItem is one product line in a customer's cart.
type CartItem struct {
	DocMeta `bson:",inline"`

	CustomerID string `bson:"customerId" json:"customerId" validate:"required"`
	ProductID  string `bson:"productId" json:"productId" validate:"required"`
	Name       string `bson:"name" json:"name"`
	Price      Number `bson:"price" json:"price"`
	Quantity   int    `bson:"quantity" json:"quantity" validate:"min=1"`
	ImageURL   string `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
}

// ListQuery is the common search/sort shape for catalog listings.
type ListQuery struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	BranchID string `form:"branch"`
	Status   string `form:"status"`
	SortBy   string `form:"sort"`
	Desc     bool   `form:"desc"`
}
