package utils

import (
	"errors"
	"testing"
)

type sample struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Kind  string `json:"kind" validate:"omitempty,oneof=service product"`
}

func TestValidateStructFieldNames(t *testing.T) {
	err := ValidateStruct(sample{Email: "nope", Kind: "other"})
	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	cases := map[string]string{
		"name":  "name is required",
		"email": "email must be a valid email address",
		"kind":  "kind must be one of: service product",
	}
	for field, want := range cases {
		if fe[field] != want {
			t.Errorf("%s: got %q, want %q", field, fe[field], want)
		}
	}
}

func TestValidateStructOK(t *testing.T) {
	if err := ValidateStruct(sample{Name: "Cut", Email: "a@b.co"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
