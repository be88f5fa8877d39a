package auth

import (
	"testing"
	"time"

	"github.com/example/todo-app/internal/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:     "test-secret-key",
		Issuer:     "test-issuer",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}
}

func TestTokenManager_IssueAndVerifyAccess(t *testing.T) {
	manager := NewTokenManager(testJWTConfig())

	token, err := manager.IssueAccessToken("user-123", "test@example.com")
	if err != nil {
		t.Fatalf("IssueAccessToken() error = %v", err)
	}
	if token == "" {
		t.Fatal("IssueAccessToken() returned empty token")
	}

	claims, err := manager.VerifyAccess(token)
	if err != nil {
		t.Fatalf("VerifyAccess() error = %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("claims.UserID = %v, want user-123", claims.UserID)
	}
	if claims.Email != "test@example.com" {
		t.Errorf("claims.Email = %v, want test@example.com", claims.Email)
	}
	if claims.TokenType != "access" {
		t.Errorf("claims.TokenType = %v, want access", claims.TokenType)
	}
	if claims.Issuer != "test-issuer" {
		t.Errorf("claims.Issuer = %v, want test-issuer", claims.Issuer)
	}
}

func TestTokenManager_IssueAndVerifyRefresh(t *testing.T) {
	manager := NewTokenManager(testJWTConfig())

	token, err := manager.IssueRefreshToken("user-456", "refresh@example.com")
	if err != nil {
		t.Fatalf("IssueRefreshToken() error = %v", err)
	}

	claims, err := manager.VerifyRefresh(token)
	if err != nil {
		t.Fatalf("VerifyRefresh() error = %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("claims.TokenType = %v, want refresh", claims.TokenType)
	}
}

func TestTokenManager_TokenTypeMismatch(t *testing.T) {
	manager := NewTokenManager(testJWTConfig())

	access, err := manager.IssueAccessToken("user-1", "a@example.com")
	if err != nil {
		t.Fatalf("IssueAccessToken() error = %v", err)
	}
	refresh, err := manager.IssueRefreshToken("user-1", "a@example.com")
	if err != nil {
		t.Fatalf("IssueRefreshToken() error = %v", err)
	}

	if _, err := manager.VerifyRefresh(access); err == nil {
		t.Error("VerifyRefresh(access token) expected error, got nil")
	}
	if _, err := manager.VerifyAccess(refresh); err == nil {
		t.Error("VerifyAccess(refresh token) expected error, got nil")
	}
}

func TestTokenManager_InvalidTokens(t *testing.T) {
	manager := NewTokenManager(testJWTConfig())

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "garbage token", token: "not-a-jwt"},
		{name: "malformed segments", token: "aaa.bbb.ccc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := manager.VerifyAccess(tt.token); err == nil {
				t.Errorf("VerifyAccess(%q) expected error, got nil", tt.token)
			}
		})
	}
}

func TestTokenManager_WrongSecret(t *testing.T) {
	manager := NewTokenManager(testJWTConfig())

	otherCfg := testJWTConfig()
	otherCfg.Secret = "a-different-secret"
	other := NewTokenManager(otherCfg)

	token, err := manager.IssueAccessToken("user-1", "a@example.com")
	if err != nil {
		t.Fatalf("IssueAccessToken() error = %v", err)
	}

	if _, err := other.VerifyAccess(token); err == nil {
		t.Error("VerifyAccess() with wrong secret expected error, got nil")
	}
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessTTL = -time.Minute
	manager := NewTokenManager(cfg)

	token, err := manager.IssueAccessToken("user-1", "a@example.com")
	if err != nil {
		t.Fatalf("IssueAccessToken() error = %v", err)
	}

	_, err = manager.VerifyAccess(token)
	if err == nil {
		t.Fatal("VerifyAccess() on expired token expected error, got nil")
	}
	if err != ErrExpiredToken {
		t.Errorf("VerifyAccess() error = %v, want %v", err, ErrExpiredToken)
	}
}
