// Package session resolves the current user from a signed session token.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/julianstephens/bujo/internal/constants"
	bujoerrors "github.com/julianstephens/bujo/internal/errors"
	"github.com/julianstephens/bujo/internal/keyring"
	"github.com/julianstephens/bujo/internal/models"
)

// Token errors
var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrExpiredToken = errors.New("session expired")
	ErrMissingClaim = errors.New("missing required claim")
	ErrNoSecret     = errors.New("session secret is not configured")
)

// Provider resolves the user behind the current session.
// Implementations return errors.ErrNotAuthenticated when there is no session.
type Provider interface {
	CurrentUser(ctx context.Context) (models.User, error)
}

// TokenSource yields the raw session token, or "" when none is stored.
type TokenSource func() (string, error)

// claims is the token payload. Metadata mirrors the user_metadata of the hosted backend.
type claims struct {
	Email    string              `json:"email,omitempty"`
	Metadata models.UserMetadata `json:"user_metadata"`
	jwt.RegisteredClaims
}

// Manager issues and verifies HS256 session tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
	source TokenSource
	now    func() time.Time
}

// NewManager creates a session manager. A zero ttl uses the default session lifetime.
func NewManager(secret []byte, ttl time.Duration, source TokenSource) *Manager {
	if ttl <= 0 {
		ttl = constants.DefaultSessionTTL
	}
	if source == nil {
		source = DefaultTokenSource
	}
	return &Manager{secret: secret, ttl: ttl, source: source, now: time.Now}
}

// DefaultTokenSource reads BUJO_SESSION_TOKEN, then the OS keyring.
func DefaultTokenSource() (string, error) {
	if token := os.Getenv(constants.EnvSessionToken); token != "" {
		return token, nil
	}
	token, err := keyring.GetSessionToken()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return token, nil
}

// ResolveSecret returns the configured signing secret or the one kept in the
// OS keyring, generating and storing a new one on first use.
func ResolveSecret(configured string) ([]byte, error) {
	if configured != "" {
		return []byte(configured), nil
	}

	secret, err := keyring.GetSessionSecret()
	if err == nil {
		return []byte(secret), nil
	}
	if !errors.Is(err, keyring.ErrNotFound) {
		return nil, err
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to generate session secret: %w", err)
	}
	secret = hex.EncodeToString(buf)
	if err := keyring.SetSessionSecret(secret); err != nil {
		return nil, err
	}
	return []byte(secret), nil
}

// Issue signs a session token for the user.
func (m *Manager) Issue(user models.User) (string, error) {
	if len(m.secret) == 0 {
		return "", ErrNoSecret
	}
	if user.ID == "" {
		return "", fmt.Errorf("%w: sub", ErrMissingClaim)
	}
	now := m.now()
	c := claims{
		Email:    user.Email,
		Metadata: user.Metadata,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    constants.AppName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(m.secret)
}

// Verify validates the token and returns the user it was issued for.
func (m *Manager) Verify(tokenString string) (models.User, error) {
	if len(m.secret) == 0 {
		return models.User{}, ErrNoSecret
	}

	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.User{}, ErrExpiredToken
		}
		return models.User{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return models.User{}, ErrInvalidToken
	}
	if c.Subject == "" {
		return models.User{}, fmt.Errorf("%w: sub", ErrMissingClaim)
	}

	return models.User{ID: c.Subject, Email: c.Email, Metadata: c.Metadata}, nil
}

// CurrentUser resolves the stored session. No token means not authenticated;
// an unreadable or expired token is reported as not authenticated with the cause attached.
func (m *Manager) CurrentUser(ctx context.Context) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	token, err := m.source()
	if err != nil {
		return models.User{}, fmt.Errorf("failed to read session: %w", err)
	}
	if token == "" {
		return models.User{}, bujoerrors.ErrNotAuthenticated
	}
	user, err := m.Verify(token)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", bujoerrors.ErrNotAuthenticated, err)
	}
	return user, nil
}

// Static is a Provider with a fixed user. A nil user means "signed out".
type Static struct {
	User *models.User
}

func (s Static) CurrentUser(ctx context.Context) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	if s.User == nil {
		return models.User{}, bujoerrors.ErrNotAuthenticated
	}
	return *s.User, nil
}
