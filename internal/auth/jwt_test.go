package auth

import (
	"testing"

	"github.com/kiirei2000/Hardware-Inventory-Tracker/internal/model"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret-key"

	token, err := GenerateToken(secret, 1, "admin", model.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	if claims.UserID != 1 || claims.Username != "admin" || claims.Role != model.RoleAdmin {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.ID == "" {
		t.Error("expected a JTI in the claims")
	}
}

func TestTokenIDsUnique(t *testing.T) {
	secret := "test-secret-key"
	t1, _ := GenerateToken(secret, 1, "admin", model.RoleAdmin)
	t2, _ := GenerateToken(secret, 1, "admin", model.RoleAdmin)

	c1, err := ValidateToken(secret, t1)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	c2, err := ValidateToken(secret, t2)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	// Each mint gets its own JTI; revoking one must not revoke the other.
	if c1.ID == c2.ID {
		t.Errorf("expected distinct token IDs, both %q", c1.ID)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, _ := GenerateToken("secret1", 1, "admin", model.RoleAdmin)

	if _, err := ValidateToken("secret2", token); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestValidateTokenInvalid(t *testing.T) {
	if _, err := ValidateToken("secret", "not-a-token"); err == nil {
		t.Error("expected error for invalid token")
	}
}
