package models

// Role strings issued by the identity collaborator.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleCustomer   = "customer"
)

// ValidRole reports whether r is a known role string.
func ValidRole(r string) bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleCustomer:
		return true
	}
	return false
}

// User is an account document; its id is the identity-provider uid.
type User struct {
	DocMeta `bson:",inline"`

	Email    string `bson:"email" json:"email" validate:"required,email"`
	Name     string `bson:"name" json:"name"`
	Role     string `bson:"role" json:"role" validate:"required,oneof=super_admin admin customer"`
	BranchID string `bson:"branchId,omitempty" json:"branchId,omitempty"`
	Status   string `bson:"status" json:"status"`
	FCMToken string `bson:"fcmToken,omitempty" json:"-"`
}

// Customer is the customer profile linked to a user account.
type Customer struct {
	DocMeta `bson:",inline"`

	UserID  string `bson:"userId,omitempty" json:"userId,omitempty"`
	Name    string `bson:"name" json:"name" validate:"required"`
	Email   string `bson:"email,omitempty" json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `bson:"phone,omitempty" json:"phone,omitempty"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`
}

// Role describes a role string; gating is by name only.
type Role struct {
	DocMeta `bson:",inline"`

	Name        string   `bson:"name" json:"name" validate:"required"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	Permissions []string `bson:"permissions,omitempty" json:"permissions,omitempty"`
}

// RegistrationRequest is the customer sign-up payload.
type RegistrationRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
}

// SessionResponse is returned after a successful token exchange.
type SessionResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
	User      User   `json:"user"`
}
