package user

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
)

// FirebaseIdentity adapts the Firebase Auth client.
type FirebaseIdentity struct {
	client *auth.Client
}

func NewFirebaseIdentity(client *auth.Client) *FirebaseIdentity {
	return &FirebaseIdentity{client: client}
}

func (f *FirebaseIdentity) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)
	rec, err := f.client.CreateUser(ctx, params)
	if err != nil {
		return "", fmt.Errorf("firebase: create user: %w", err)
	}
	return rec.UID, nil
}

func (f *FirebaseIdentity) DeleteUser(ctx context.Context, uid string) error {
	if err := f.client.DeleteUser(ctx, uid); err != nil {
		return fmt.Errorf("firebase: delete user %s: %w", uid, err)
	}
	return nil
}

func (f *FirebaseIdentity) VerifyIDToken(ctx context.Context, idToken string) (string, string, error) {
	tok, err := f.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	email, _ := tok.Claims["email"].(string)
	return tok.UID, email, nil
}

func (f *FirebaseIdentity) SetRoleClaim(ctx context.Context, uid, role string) error {
	if err := f.client.SetCustomUserClaims(ctx, uid, map[string]interface{}{"role": role}); err != nil {
		return fmt.Errorf("firebase: set claims for %s: %w", uid, err)
	}
	return nil
}
