package security

import (
	"testing"
	"time"
)

func TestTokenMintAndParse(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.Mint(42, "user@example.com")
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("Email = %q, want user@example.com", claims.Email)
	}
	if claims.ID == "" {
		t.Error("expected non-empty token ID")
	}
}

func TestTokenParseRejectsWrongSecret(t *testing.T) {
	m := NewTokenManager("secret-a", time.Hour)
	token, err := m.Mint(1, "a@example.com")
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}

	other := NewTokenManager("secret-b", time.Hour)
	if _, err := other.Parse(token); err == nil {
		t.Error("Parse() accepted token signed with a different secret")
	}
}

func TestTokenParseRejectsExpired(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute)
	token, err := m.Mint(1, "a@example.com")
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}

	if _, err := m.Parse(token); err == nil {
		t.Error("Parse() accepted an expired token")
	}
}

func TestTokenParseRejectsGarbage(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	if _, err := m.Parse("not-a-token"); err == nil {
		t.Error("Parse() accepted garbage input")
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Error("hash equals plaintext")
	}
	if !CheckPassword("correct horse battery staple", hash) {
		t.Error("CheckPassword() rejected the right password")
	}
	if CheckPassword("wrong password", hash) {
		t.Error("CheckPassword() accepted the wrong password")
	}
}
