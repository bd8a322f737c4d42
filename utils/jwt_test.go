package utils

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken("user-1", "user@example.com", "user", "Sales Manager", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q, expected %q", claims.UserID, "user-1")
	}
	if claims.Email != "user@example.com" {
		t.Errorf("Email = %q, expected %q", claims.Email, "user@example.com")
	}
	if claims.Role != "user" {
		t.Errorf("Role = %q, expected %q", claims.Role, "user")
	}
	if claims.CustomRole != "Sales Manager" {
		t.Errorf("CustomRole = %q, expected %q", claims.CustomRole, "Sales Manager")
	}
	if claims.Issuer != "sapkit" {
		t.Errorf("Issuer = %q, expected %q", claims.Issuer, "sapkit")
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("user-1", "user@example.com", "user", "", "secret-a", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ValidateToken(token, "secret-b"); err == nil {
		t.Error("expected validation error with wrong secret, got nil")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := GenerateToken("user-1", "user@example.com", "user", "", "secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ValidateToken(token, "secret"); err == nil {
		t.Error("expected validation error for expired token, got nil")
	}
}

func TestValidateToken_TamperedRole(t *testing.T) {
	token, err := GenerateToken("user-1", "user@example.com", "user", "", "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	// Sửa payload mà không ký lại -> signature check phải fail
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token format: %q", token)
	}
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	if _, err := ValidateToken(tampered, "secret"); err == nil {
		t.Error("expected validation error for tampered token, got nil")
	}
}
