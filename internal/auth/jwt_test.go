package auth

import (
	"testing"
	"time"

	"github.com/SAP-F-2025/wellness-service/internal/models"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)

	token, err := issuer.Issue(&models.User{
		ID:    42,
		Name:  "Asha",
		Email: "asha@example.com",
		Role:  models.RoleStudent,
	})
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if claims.UserID != 42 || claims.Name != "Asha" || claims.Email != "asha@example.com" || claims.Role != models.RoleStudent {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestSessionTokenExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret", -time.Minute)

	token, err := issuer.Issue(&models.User{ID: 1, Role: models.RoleParent})
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	if _, err := issuer.Parse(token); err == nil {
		t.Fatalf("expected expired token to fail parsing")
	}
}

func TestSessionTokenWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret-a", time.Minute).Issue(&models.User{ID: 1, Role: models.RoleStudent})
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	if _, err := NewTokenIssuer("secret-b", time.Minute).Parse(token); err == nil {
		t.Fatalf("expected signature mismatch to fail parsing")
	}
}
