// Package session keeps authenticated sessions. A session is created at
// login, hydrated from its bearer token on every request, and torn down at
// logout. Sessions live in Redis in postgres mode and under a single key of
// the local store in local mode.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"laporrt/backend/internal/models"

	"github.com/google/uuid"
)

// ErrInvalidToken is returned when a token does not verify, has expired, or
// refers to a session that no longer exists.
var ErrInvalidToken = errors.New("invalid or expired session token")

// Session binds a bearer token to the authenticated account.
// Account never carries the credential.
type Session struct {
	ID        string         `json:"id"`
	Account   models.Account `json:"account"`
	ExpiresAt time.Time      `json:"expiresAt"`
	Token     string         `json:"-"`
}

// Store persists sessions by id.
type Store interface {
	Save(ctx context.Context, s *Session, ttl time.Duration) error
	// Load returns (nil, nil) when the session is absent or expired.
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// Manager issues and resolves sessions.
type Manager struct {
	store  Store
	tokens *Tokens
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(store Store, tokens *Tokens, ttl time.Duration) *Manager {
	return &Manager{store: store, tokens: tokens, ttl: ttl, now: time.Now}
}

// Start persists a new session for account and returns it with its token.
func (m *Manager) Start(ctx context.Context, account models.Account) (*Session, error) {
	now := m.now()
	s := &Session{
		ID:        uuid.New().String(),
		Account:   account.Public(),
		ExpiresAt: now.Add(m.ttl),
	}
	token, err := m.tokens.Issue(s, now)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}
	s.Token = token
	if err := m.store.Save(ctx, s, m.ttl); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return s, nil
}

// Hydrate resolves a bearer token into its live session.
func (m *Manager) Hydrate(ctx context.Context, token string) (*Session, error) {
	claims, err := m.tokens.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	s, err := m.store.Load(ctx, claims.SessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if s == nil || s.Account.ID != claims.Subject || !m.now().Before(s.ExpiresAt) {
		return nil, ErrInvalidToken
	}
	s.Token = token
	return s, nil
}

// End tears down the session behind token. Unknown, expired and malformed
// tokens are ignored.
func (m *Manager) End(ctx context.Context, token string) error {
	claims, err := m.tokens.ParseUnverifiedExpiry(token)
	if err != nil {
		return nil
	}
	return m.store.Delete(ctx, claims.SessionID)
}
