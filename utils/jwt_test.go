package utils

import (
	"testing"
	"time"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "secret-de-test"

	token, err := GenerateToken("507f1f77bcf86cd799439011", "user@example.com", secret)
	if err != nil {
		t.Fatalf("GenerateToken() erreur inattendue: %v", err)
	}
	if token == "" {
		t.Fatal("GenerateToken() a retourné un token vide")
	}

	claims, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("ValidateToken() erreur inattendue: %v", err)
	}
	if claims.UserID != "507f1f77bcf86cd799439011" {
		t.Errorf("UserID = %q, attendu %q", claims.UserID, "507f1f77bcf86cd799439011")
	}
	if claims.Email != "user@example.com" {
		t.Errorf("Email = %q, attendu %q", claims.Email, "user@example.com")
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) <= 0 {
		t.Error("le token devrait expirer dans le futur")
	}
}

func TestValidateTokenInvalide(t *testing.T) {
	secret := "secret-de-test"

	autreToken, err := GenerateToken("id", "user@example.com", "autre-secret")
	if err != nil {
		t.Fatalf("GenerateToken() erreur inattendue: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"token vide", ""},
		{"token malformé", "not.a.token"},
		{"token signé avec un autre secret", autreToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateToken(tt.token, secret); err == nil {
				t.Error("ValidateToken() devrait retourner une erreur")
			}
		})
	}
}
