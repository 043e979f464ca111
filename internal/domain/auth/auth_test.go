package auth

import (
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("super-secret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	if err := CheckPassword(hash, "super-secret"); err != nil {
		t.Fatalf("expected password to match, got %v", err)
	}

	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	secret := "test-secret"
	claims := Claims{UserID: 42, Email: "user@example.com", Role: RoleAdmin}

	token, err := GenerateToken(secret, claims, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	parsed, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if parsed.UserID != claims.UserID || parsed.Email != claims.Email || parsed.Role != claims.Role {
		t.Fatalf("claims mismatch: %+v", parsed)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret-a", Claims{UserID: 1, Email: "a@b.c", Role: RoleUser}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	if _, err := ParseToken("secret-b", token); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken("secret", Claims{UserID: 1, Email: "a@b.c", Role: RoleUser}, -time.Minute)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	if _, err := ParseToken("secret", token); err == nil {
		t.Fatal("expected expiry error")
	}
}
