package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"salonhub/database/repository/records/recordstest"
	"salonhub/models"
	"salonhub/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

type fakeIdentity struct {
	created   []string
	deleted   []string
	deleteErr error
	verifyUID string
	verifyErr error
}

func (f *fakeIdentity) CreateUser(_ context.Context, email, _, _ string) (string, error) {
	uid := "uid-" + email
	f.created = append(f.created, uid)
	return uid, nil
}

func (f *fakeIdentity) DeleteUser(_ context.Context, uid string) error {
	f.deleted = append(f.deleted, uid)
	return f.deleteErr
}

func (f *fakeIdentity) VerifyIDToken(_ context.Context, _ string) (string, string, error) {
	return f.verifyUID, "New@Example.com", f.verifyErr
}

func (f *fakeIdentity) SetRoleClaim(context.Context, string, string) error { return nil }

type fakeUsers struct {
	users     map[string]models.User
	createErr error
	deleted   []string
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[string]models.User{}}
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, mongo.ErrNoDocuments)
	}
	return &u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) List(_ context.Context, role string) ([]models.User, error) {
	out := []models.User{}
	for _, u := range f.users {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUsers) Update(_ context.Context, u *models.User) error {
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	if _, ok := f.users[id]; !ok {
		return fmt.Errorf("user %s: %w", id, mongo.ErrNoDocuments)
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUsers) SetRole(_ context.Context, id, role string) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, mongo.ErrNoDocuments)
	}
	u.Role = role
	f.users[id] = u
	return nil
}

func (f *fakeUsers) SetFCMToken(_ context.Context, id, token string) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, mongo.ErrNoDocuments)
	}
	u.FCMToken = token
	f.users[id] = u
	return nil
}

type memSessions map[string]string

func (m memSessions) Save(_ context.Context, hash, uid string, _ time.Duration) error {
	m[hash] = uid
	return nil
}

func (m memSessions) Active(_ context.Context, hash string) (string, bool, error) {
	uid, ok := m[hash]
	return uid, ok, nil
}

func (m memSessions) Revoke(_ context.Context, hash string) error {
	delete(m, hash)
	return nil
}

type harness struct {
	svc       *DefaultUserService
	identity  *fakeIdentity
	users     *fakeUsers
	customers *recordstest.Memory[models.Customer, *models.Customer]
	sessions  memSessions
}

func newHarness() *harness {
	h := &harness{
		identity:  &fakeIdentity{},
		users:     newFakeUsers(),
		customers: recordstest.NewMemory[models.Customer, *models.Customer](),
		sessions:  memSessions{},
	}
	h.svc = &DefaultUserService{
		Repo:      h.users,
		Customers: h.customers,
		Identity:  h.identity,
		Sessions:  h.sessions,
		TokenTTL:  time.Hour,
	}
	return h
}

var validRegistration = models.RegistrationRequest{
	Name:     "Jane Doe",
	Email:    "Jane@Example.com",
	Phone:    "555-0100",
	Password: "Secret123",
}

func TestRegisterCreatesAllRecords(t *testing.T) {
	h := newHarness()
	resp, err := h.svc.Register(context.Background(), validRegistration)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.User.Email != "jane@example.com" || resp.User.Role != models.RoleCustomer {
		t.Fatalf("unexpected user %+v", resp.User)
	}
	if h.customers.Len() != 1 || len(h.users.users) != 1 {
		t.Fatalf("expected user and customer documents")
	}
	claims, err := utils.ParseSessionToken(resp.Token)
	if err != nil || claims.Subject != resp.User.ID {
		t.Fatalf("bad token: %+v, %v", claims, err)
	}
	if _, ok := h.sessions[utils.HashToken(resp.Token)]; !ok {
		t.Fatalf("session hash not stored")
	}
}

func TestRegisterCompensatesOnCustomerFailure(t *testing.T) {
	h := newHarness()
	h.customers.Err = errors.New("insert failed")

	_, err := h.svc.Register(context.Background(), validRegistration)
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(h.users.users) != 0 {
		t.Fatalf("users document left behind")
	}
	if len(h.identity.deleted) != 1 || h.identity.deleted[0] != h.identity.created[0] {
		t.Fatalf("identity account not removed: %+v", h.identity)
	}
	if len(h.users.deleted) != 1 {
		t.Fatalf("expected users rollback before identity rollback")
	}
}

func TestRegisterCompensatesOnUserFailure(t *testing.T) {
	h := newHarness()
	h.users.createErr = errors.New("duplicate key")

	_, err := h.svc.Register(context.Background(), validRegistration)
	if err == nil || !strings.Contains(err.Error(), "duplicate key") {
		t.Fatalf("expected cause in error, got %v", err)
	}
	if len(h.identity.deleted) != 1 {
		t.Fatalf("identity account not removed")
	}
	if len(h.users.deleted) != 0 {
		t.Fatalf("users document was never written and must not be deleted")
	}
}

func TestRegisterJoinsRollbackFailures(t *testing.T) {
	h := newHarness()
	h.customers.Err = errors.New("insert failed")
	h.identity.deleteErr = errors.New("identity unavailable")

	_, err := h.svc.Register(context.Background(), validRegistration)
	if err == nil || !strings.Contains(err.Error(), "insert failed") || !strings.Contains(err.Error(), "identity unavailable") {
		t.Fatalf("expected joined errors, got %v", err)
	}
}

func TestRegisterRejects(t *testing.T) {
	h := newHarness()
	weak := validRegistration
	weak.Password = "password"
	if _, err := h.svc.Register(context.Background(), weak); err == nil {
		t.Fatalf("expected password complexity error")
	}

	if _, err := h.svc.Register(context.Background(), validRegistration); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := h.svc.Register(context.Background(), validRegistration); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if len(h.identity.created) != 1 {
		t.Fatalf("rejected registrations must not create accounts")
	}
}

func TestExchangeSessionCreatesCustomerOnFirstSignIn(t *testing.T) {
	h := newHarness()
	h.identity.verifyUID = "u1"

	resp, err := h.svc.ExchangeSession(context.Background(), "id-token")
	if err != nil {
		t.Fatalf("ExchangeSession: %v", err)
	}
	if resp.User.ID != "u1" || resp.User.Email != "new@example.com" || resp.User.Role != models.RoleCustomer {
		t.Fatalf("unexpected user %+v", resp.User)
	}

	if err := h.svc.RevokeSession(context.Background(), resp.Token); err != nil {
		t.Fatalf("RevokeSession: %v", err)
	}
	if len(h.sessions) != 0 {
		t.Fatalf("session not revoked")
	}
}

func TestExchangeSessionRejects(t *testing.T) {
	h := newHarness()
	if _, err := h.svc.ExchangeSession(context.Background(), " "); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	h.identity.verifyErr = ErrInvalidToken
	if _, err := h.svc.ExchangeSession(context.Background(), "bad"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSetRole(t *testing.T) {
	h := newHarness()
	u := models.User{Email: "a@b.co", Role: models.RoleCustomer}
	u.ID = "u1"
	h.users.users["u1"] = u

	if _, err := h.svc.SetRole(context.Background(), "u1", "owner"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	got, err := h.svc.SetRole(context.Background(), "u1", models.RoleAdmin)
	if err != nil || got.Role != models.RoleAdmin {
		t.Fatalf("SetRole = %+v, %v", got, err)
	}
	if _, err := h.svc.SetRole(context.Background(), "nobody", models.RoleAdmin); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
