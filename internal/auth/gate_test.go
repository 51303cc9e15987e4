package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xelth-com/sapmockgo/internal/config"
	"github.com/xelth-com/sapmockgo/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:   "test-secret-key-12345",
		TokenExpiry: time.Hour,
		RequireAuth: true,
	}
}

func TestPasswordHashing(t *testing.T) {
	password := "secret123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if hash == password {
		t.Error("Hash should not match plaintext password")
	}

	if !CheckPasswordHash(password, hash) {
		t.Error("Password should match hash")
	}
	if CheckPasswordHash("wrongpassword", hash) {
		t.Error("Wrong password should not match hash")
	}
}

func TestAuthenticateIssuesToken(t *testing.T) {
	gate := NewGate(testConfig())

	resp := gate.Authenticate(context.Background(), Credentials{Username: "test_user", Password: "test_password"})
	if !resp.Success {
		t.Fatalf("Authentication failed: %+v", resp.Error)
	}

	token, _ := resp.Data["token"].(string)
	if token == "" {
		t.Fatal("Token should not be empty")
	}
	if _, ok := resp.Data["expires_at"].(string); !ok {
		t.Error("expires_at should be present")
	}

	if err := gate.Authorize(context.Background(), token); err != nil {
		t.Errorf("Fresh token should authorize: %v", err)
	}
}

func TestAuthenticateRejectsMissingCredentials(t *testing.T) {
	gate := NewGate(testConfig())

	tests := []Credentials{
		{},
		{Username: "test_user"},
		{Password: "test_password"},
	}
	for _, creds := range tests {
		resp := gate.Authenticate(context.Background(), creds)
		if resp.Success {
			t.Fatalf("Expected failure for %+v", creds)
		}
		if resp.Error.Code != models.CodeAuthInvalidCredentials {
			t.Errorf("Expected %s, got %s", models.CodeAuthInvalidCredentials, resp.Error.Code)
		}
	}
}

func TestAuthorizeRejectsUnknownToken(t *testing.T) {
	gate := NewGate(testConfig())

	if err := gate.Authorize(context.Background(), "not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Expected ErrTokenInvalid, got %v", err)
	}
	if err := gate.Authorize(context.Background(), ""); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Expected ErrTokenInvalid for empty token, got %v", err)
	}
}

func TestAuthorizeRejectsExpiredToken(t *testing.T) {
	cfg := testConfig()
	cfg.TokenExpiry = -time.Minute
	gate := NewGate(cfg)

	resp := gate.Authenticate(context.Background(), Credentials{Username: "u", Password: "p"})
	if !resp.Success {
		t.Fatalf("Authentication failed: %+v", resp.Error)
	}
	token, _ := resp.Data["token"].(string)

	if err := gate.Authorize(context.Background(), token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Expected ErrTokenExpired, got %v", err)
	}

	// Expired tokens are evicted; a second check sees an unknown token.
	if err := gate.Authorize(context.Background(), token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Expected ErrTokenInvalid after eviction, got %v", err)
	}
}

func TestAuthorizePassThroughWhenDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.RequireAuth = false
	gate := NewGate(cfg)

	if err := gate.Authorize(context.Background(), ""); err != nil {
		t.Errorf("Gate should pass through with auth disabled: %v", err)
	}
}

func TestPinnedCredentials(t *testing.T) {
	hash, err := HashPassword("letmein")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	cfg := testConfig()
	cfg.SimUsername = "harness"
	cfg.SimPasswordHash = hash
	gate := NewGate(cfg)
	ctx := context.Background()

	if resp := gate.Authenticate(ctx, Credentials{Username: "harness", Password: "letmein"}); !resp.Success {
		t.Errorf("Pinned credentials should authenticate: %+v", resp.Error)
	}
	if resp := gate.Authenticate(ctx, Credentials{Username: "harness", Password: "wrong"}); resp.Success {
		t.Error("Wrong password should be rejected")
	}
	if resp := gate.Authenticate(ctx, Credentials{Username: "other", Password: "letmein"}); resp.Success {
		t.Error("Wrong username should be rejected")
	}
}

func TestResetRevokesTokens(t *testing.T) {
	gate := NewGate(testConfig())
	ctx := context.Background()

	resp := gate.Authenticate(ctx, Credentials{Username: "u", Password: "p"})
	token, _ := resp.Data["token"].(string)
	if gate.ActiveTokens() != 1 {
		t.Fatalf("Expected 1 active token, got %d", gate.ActiveTokens())
	}

	gate.Reset()

	if gate.ActiveTokens() != 0 {
		t.Errorf("Expected 0 active tokens, got %d", gate.ActiveTokens())
	}
	if err := gate.Authorize(ctx, token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Revoked token should be invalid, got %v", err)
	}
}
