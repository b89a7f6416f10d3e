// Package auth exchanges the single shared dashboard password for a
// time-limited fernet session token and verifies that token on every
// request. The session is an explicit object threaded through the HTTP
// layer, not ambient global state.
package auth

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/apperrors"
)

// Manager issues and verifies session tokens.
type Manager struct {
	password string
	key      *fernet.Key
	ttl      time.Duration
}

// NewManager creates a Manager for the configured password and token TTL.
// When encodedKey is empty a fresh key is generated; existing sessions are
// then invalidated on restart, which is acceptable for a single-family
// deployment.
func NewManager(password, encodedKey string, ttl time.Duration) (*Manager, error) {
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}

	var key *fernet.Key
	if encodedKey == "" {
		key = &fernet.Key{}
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate fernet key: %w", err)
		}
	} else {
		decoded, err := fernet.DecodeKey(encodedKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decode fernet key: %w", err)
		}
		key = decoded
	}

	return &Manager{
		password: password,
		key:      key,
		ttl:      ttl,
	}, nil
}

// Session is the result of a successful login.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login exchanges the shared password for a session token.
// Returns ErrInvalidPassword when the password does not match.
func (m *Manager) Login(password string) (Session, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(m.password)) != 1 {
		return Session{}, apperrors.ErrInvalidPassword
	}

	token, err := fernet.EncryptAndSign([]byte("dashboard"), m.key)
	if err != nil {
		return Session{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return Session{
		Token:     string(token),
		ExpiresAt: time.Now().Add(m.ttl),
	}, nil
}

// Verify checks a session token's signature and TTL.
// Returns ErrSessionExpired for missing, malformed, or expired tokens; the
// caller escalates that to the session-expiry flow.
func (m *Manager) Verify(token string) error {
	if token == "" {
		return apperrors.ErrSessionExpired
	}
	if fernet.VerifyAndDecrypt([]byte(token), m.ttl, []*fernet.Key{m.key}) == nil {
		return apperrors.ErrSessionExpired
	}
	return nil
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}
