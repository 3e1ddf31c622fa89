package security

import (
	"testing"
	"time"

	"scholarhub/internal/common"
)

func TestJWTRoundTrip(t *testing.T) {
	provider := NewJWTProvider("test-secret")
	userID := common.NewUUID()

	token, expiresAt, err := provider.Generate(userID, "student", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("token already expired")
	}

	claims, err := provider.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != userID.String() {
		t.Fatalf("user id mismatch: %q != %q", claims.UserID, userID)
	}
	if claims.Role != "student" {
		t.Fatalf("role mismatch: %q", claims.Role)
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	token, _, err := NewJWTProvider("secret-a").Generate(common.NewUUID(), "admin", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := NewJWTProvider("secret-b").Parse(token); err == nil {
		t.Fatalf("token accepted with wrong secret")
	}
}

func TestJWTRejectsExpired(t *testing.T) {
	provider := NewJWTProvider("test-secret")
	token, _, err := provider.Generate(common.NewUUID(), "student", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := provider.Parse(token); err == nil {
		t.Fatalf("expired token accepted")
	}
}
