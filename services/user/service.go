package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	recordsRepo "salonhub/database/repository/records"
	userRepo "salonhub/database/repository/user"
	"salonhub/models"
	"salonhub/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo      userRepo.UserRepository
	Customers recordsRepo.RecordRepository[models.Customer]
	Identity  IdentityProvider
	Sessions  utils.SessionStore
	TokenTTL  time.Duration
	Logger    *zap.Logger
}

func (s *DefaultUserService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func notFound(err error, id string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return err
}

// issue signs a session token and records its hash for revocation.
func (s *DefaultUserService) issue(ctx context.Context, u *models.User) (*models.SessionResponse, error) {
	token, err := utils.GenerateToken(u.ID, u.Email, u.Role, s.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.Sessions.Save(ctx, utils.HashToken(token), u.ID, s.TokenTTL); err != nil {
		return nil, err
	}
	return &models.SessionResponse{Token: token, ExpiresIn: int64(s.TokenTTL.Seconds()), User: *u}, nil
}

// step is one completed registration write and its undo.
type step struct {
	name string
	undo func(context.Context) error
}

// rollback undoes completed steps in reverse order. Undo failures are logged
// and joined onto cause.
func (s *DefaultUserService) rollback(ctx context.Context, done []step, cause error) error {
	errs := []error{cause}
	for i := len(done) - 1; i >= 0; i-- {
		if err := done[i].undo(ctx); err != nil {
			s.logger().Error("registration rollback failed", zap.String("step", done[i].name), zap.Error(err))
			errs = append(errs, fmt.Errorf("rollback %s: %w", done[i].name, err))
		}
	}
	return errors.Join(errs...)
}

// Register creates the identity account, the users document and the customer
// profile in that order. A failure undoes whatever already succeeded.
func (s *DefaultUserService) Register(ctx context.Context, req models.RegistrationRequest) (*models.SessionResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || req.Name == "" {
		return nil, fmt.Errorf("name and email are required")
	}
	if err := VerifyPasswordComplexity(req.Password); err != nil {
		return nil, err
	}
	existing, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	var done []step

	uid, err := s.Identity.CreateUser(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	done = append(done, step{"identity", func(ctx context.Context) error { return s.Identity.DeleteUser(ctx, uid) }})

	u := &models.User{Email: req.Email, Name: req.Name, Role: models.RoleCustomer, Status: models.StatusActive}
	u.ID = uid
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, s.rollback(ctx, done, fmt.Errorf("failed to save user: %w", err))
	}
	done = append(done, step{"user", func(ctx context.Context) error { return s.Repo.Delete(ctx, uid) }})

	customer := &models.Customer{UserID: uid, Name: req.Name, Email: req.Email, Phone: strings.TrimSpace(req.Phone)}
	if err := s.Customers.Create(ctx, customer); err != nil {
		return nil, s.rollback(ctx, done, fmt.Errorf("failed to save customer profile: %w", err))
	}

	if err := s.Identity.SetRoleClaim(ctx, uid, u.Role); err != nil {
		s.logger().Warn("failed to set role claim", zap.String("uid", uid), zap.Error(err))
	}
	s.logger().Info("customer registered", zap.String("uid", uid))
	return s.issue(ctx, u)
}

// ExchangeSession trades a verified identity token for an app session. A
// first sign-in without a users document creates a customer account.
func (s *DefaultUserService) ExchangeSession(ctx context.Context, idToken string) (*models.SessionResponse, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, ErrInvalidToken
	}
	uid, email, err := s.Identity.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	u, err := s.Repo.GetByID(ctx, uid)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		u = &models.User{Email: strings.ToLower(email), Role: models.RoleCustomer, Status: models.StatusActive}
		u.ID = uid
		if err := s.Repo.Create(ctx, u); err != nil {
			return nil, fmt.Errorf("failed to save user: %w", err)
		}
	case err != nil:
		return nil, err
	}
	if u.Status == models.StatusInactive {
		return nil, fmt.Errorf("%w: account disabled", ErrInvalidToken)
	}
	return s.issue(ctx, u)
}

func (s *DefaultUserService) RevokeSession(ctx context.Context, token string) error {
	return s.Sessions.Revoke(ctx, utils.HashToken(token))
}

func (s *DefaultUserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, id)
	}
	return u, nil
}

func (s *DefaultUserService) ListUsers(ctx context.Context, role string) ([]models.User, error) {
	if role != "" && !models.ValidRole(role) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	return s.Repo.List(ctx, role)
}

// SetRole updates the stored role. Existing sessions keep their old role
// claim until they expire.
func (s *DefaultUserService) SetRole(ctx context.Context, id, role string) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	if err := s.Repo.SetRole(ctx, id, role); err != nil {
		return nil, notFound(err, id)
	}
	if err := s.Identity.SetRoleClaim(ctx, id, role); err != nil {
		s.logger().Warn("failed to set role claim", zap.String("uid", id), zap.Error(err))
	}
	return s.GetUser(ctx, id)
}

func (s *DefaultUserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return notFound(err, id)
	}
	if err := s.Identity.DeleteUser(ctx, id); err != nil {
		s.logger().Warn("failed to delete identity account", zap.String("uid", id), zap.Error(err))
	}
	return nil
}

func (s *DefaultUserService) SetFCMToken(ctx context.Context, id, token string) error {
	if err := s.Repo.SetFCMToken(ctx, id, token); err != nil {
		return notFound(err, id)
	}
	return nil
}
