package auth

import (
	"testing"
	"time"

	"github.com/VehicleRegistry/VehicleRegistry/internal/common/config"
	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParseAccessToken(t *testing.T) {
	cfg := config.AuthConfig{
		Enabled:   true,
		JWTSecret: "test-secret",
	}

	token, exp, err := GenerateAccessToken(cfg, "admin@example.com", []string{"Adm"}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if exp.Before(time.Now()) {
		t.Fatalf("expected exp in future")
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.Email != "admin@example.com" {
		t.Fatalf("email mismatch: %s", claims.Email)
	}
	if claims.Subject != "admin@example.com" {
		t.Fatalf("subject mismatch: %s", claims.Subject)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "Adm" {
		t.Fatalf("roles mismatch: %#v", claims.Roles)
	}
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	cfg := config.AuthConfig{JWTSecret: "secret-a"}
	token, _, err := GenerateAccessToken(cfg, "admin@example.com", []string{"Adm"}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := ParseAccessToken(config.AuthConfig{JWTSecret: "secret-b"}, token); err == nil {
		t.Fatalf("expected error for wrong secret")
	}
}

func TestParseAccessTokenExpired(t *testing.T) {
	cfg := config.AuthConfig{JWTSecret: "test-secret"}

	// 手工签一个已过期的 token（过期时间早于 now-leeway）
	now := time.Now()
	c := Claims{
		Email: "admin@example.com",
		Roles: []string{"Adm"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin@example.com",
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := ParseAccessToken(cfg, token); err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestGenerateAccessTokenRequiresSecret(t *testing.T) {
	_, _, err := GenerateAccessToken(config.AuthConfig{}, "admin@example.com", []string{"Adm"}, time.Hour)
	if err == nil {
		t.Fatalf("expected error for empty jwt_secret")
	}
}
