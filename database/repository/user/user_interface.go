package userRepo

import (
	"context"

	"salonhub/models"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by identity-provider uid.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail returns nil, nil when no user has the email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// List retrieves users, optionally narrowed to one role.
	List(ctx context.Context, role string) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	SetRole(ctx context.Context, id, role string) error
	SetFCMToken(ctx context.Context, id, token string) error
}
