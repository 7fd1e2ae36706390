package user

import (
	"context"
	"errors"

	"salonhub/models"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrEmailTaken   = errors.New("a user with this email already exists")
	ErrInvalidRole  = errors.New("invalid role")
	ErrInvalidToken = errors.New("invalid identity token")
)

// UserService covers registration, session exchange and user administration.
type UserService interface {
	Register(ctx context.Context, req models.RegistrationRequest) (*models.SessionResponse, error)
	ExchangeSession(ctx context.Context, idToken string) (*models.SessionResponse, error)
	RevokeSession(ctx context.Context, token string) error

	GetUser(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context, role string) ([]models.User, error)
	SetRole(ctx context.Context, id, role string) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
	SetFCMToken(ctx context.Context, id, token string) error
}

// IdentityProvider is the account backend (Firebase Auth in production).
type IdentityProvider interface {
	CreateUser(ctx context.Context, email, password, displayName string) (uid string, err error)
	DeleteUser(ctx context.Context, uid string) error
	VerifyIDToken(ctx context.Context, idToken string) (uid, email string, err error)
	SetRoleClaim(ctx context.Context, uid, role string) error
}
