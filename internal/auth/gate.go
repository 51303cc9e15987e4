package auth

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/xelth-com/sapmockgo/internal/config"
	"github.com/xelth-com/sapmockgo/internal/models"
)

// Credentials is the authenticate input.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenRecord tracks an issued capability token.
type TokenRecord struct {
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Authorization failure reasons, distinguished so callers can report
// expired tokens separately from unknown ones.
var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("expired token")
)

// Gate issues and validates opaque capability tokens. Tokens are signed JWTs
// for wire realism, but authorization only consults the gate's own registry;
// claims are never trusted on their own.
type Gate struct {
	cfg *config.Config

	mu     sync.RWMutex
	tokens map[string]TokenRecord
}

// NewGate creates a gate with an empty token registry.
func NewGate(cfg *config.Config) *Gate {
	return &Gate{
		cfg:    cfg,
		tokens: make(map[string]TokenRecord),
	}
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

// CheckPasswordHash compares a password with a hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Authenticate validates credentials and issues a session token.
func (g *Gate) Authenticate(ctx context.Context, creds Credentials) models.Response {
	if creds.Username == "" || creds.Password == "" {
		return models.ErrorResponse(models.CodeAuthInvalidCredentials, "Invalid credentials")
	}

	// Pinned credentials, when configured.
	if g.cfg.SimUsername != "" && g.cfg.SimPasswordHash != "" {
		if creds.Username != g.cfg.SimUsername || !CheckPasswordHash(creds.Password, g.cfg.SimPasswordHash) {
			return models.ErrorResponse(models.CodeAuthInvalidCredentials, "Invalid credentials")
		}
	}

	now := time.Now().UTC()
	expiresAt := now.Add(g.cfg.TokenExpiry)

	claims := jwt.MapClaims{
		"sub": creds.Username,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(g.cfg.JWTSecret))
	if err != nil {
		// Signing only fails on a broken key setup; that is a defect,
		// not a business outcome.
		return models.ErrorResponse(models.CodeAuthUnexpected, "Token signing failed: "+err.Error())
	}

	g.mu.Lock()
	g.tokens[signed] = TokenRecord{
		Username:  creds.Username,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}
	g.mu.Unlock()

	log.Printf("Authentication successful for user: %s", creds.Username)

	return models.SuccessResponse(map[string]interface{}{
		"token":      signed,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

// Authorize checks that a token was issued by this gate and has not expired.
// Side-effect-free apart from evicting the token once it has expired.
func (g *Gate) Authorize(ctx context.Context, token string) error {
	if !g.cfg.RequireAuth {
		return nil
	}
	if token == "" {
		return ErrTokenInvalid
	}

	g.mu.RLock()
	record, ok := g.tokens[token]
	g.mu.RUnlock()
	if !ok {
		return ErrTokenInvalid
	}

	if time.Now().UTC().After(record.ExpiresAt) {
		g.mu.Lock()
		delete(g.tokens, token)
		g.mu.Unlock()
		return ErrTokenExpired
	}
	return nil
}

// ActiveTokens returns the number of live tokens in the registry.
func (g *Gate) ActiveTokens() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.tokens)
}

// Reset revokes every issued token.
func (g *Gate) Reset() {
	g.mu.Lock()
	g.tokens = make(map[string]TokenRecord)
	g.mu.Unlock()
}
