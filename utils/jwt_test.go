package utils

import (
	"testing"
	"time"

	"salonhub/config"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	defer func() { config.AppConfig.JWTSecret = "" }()

	token, err := GenerateToken("uid-1", "a@b.c", "admin", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	claims, err := ParseSessionToken(token)
	if err != nil {
		t.Fatalf("ParseSessionToken: %v", err)
	}
	if claims.Subject != "uid-1" || claims.Email != "a@b.c" || claims.Role != "admin" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestSessionTokenRejections(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	defer func() { config.AppConfig.JWTSecret = "" }()

	expired, err := GenerateToken("uid-1", "", "customer", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ParseSessionToken(expired); err == nil {
		t.Fatalf("expected expired token to fail")
	}

	token, _ := GenerateToken("uid-1", "", "customer", time.Hour)
	config.AppConfig.JWTSecret = "other-secret"
	if _, err := ParseSessionToken(token); err == nil {
		t.Fatalf("expected signature mismatch to fail")
	}
}

func TestHashTokenStable(t *testing.T) {
	if HashToken("abc") != HashToken("abc") || HashToken("abc") == HashToken("abd") {
		t.Fatalf("hash not deterministic or collides")
	}
	if len(HashToken("abc")) != 64 {
		t.Fatalf("expected hex sha256")
	}
}
