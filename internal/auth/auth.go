// Package auth registers accounts, authenticates them into sessions and
// holds the role capabilities checked by every workflow service.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"laporrt/backend/internal/apperr"
	"laporrt/backend/internal/config"
	"laporrt/backend/internal/models"
	"laporrt/backend/internal/session"
	"laporrt/backend/internal/storage"
)

var (
	ErrEmailTaken    = errors.New("email already registered")
	ErrUnknownEmail  = errors.New("email not registered")
	ErrWrongPassword = errors.New("wrong password")
	ErrSelfDelete    = errors.New("cannot delete own account")
)

// Registration is the input of Register. A requested role is ignored.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// Service handles accounts and sessions.
type Service struct {
	Storage  storage.Storage
	Sessions *session.Manager
	Hasher   Hasher
	now      func() time.Time
}

func NewService(s storage.Storage, sessions *session.Manager, hasher Hasher) *Service {
	return &Service{Storage: s, Sessions: sessions, Hasher: hasher, now: time.Now}
}

// IsAdmin reports whether the account may manage reports and the ledger.
func IsAdmin(a *models.Account) bool {
	return a != nil && (a.Role == models.RoleAdmin || a.Role == models.RoleKetuaRT)
}

// IsKetuaRT reports whether the account may decide documents and delete reports.
func IsKetuaRT(a *models.Account) bool {
	return a != nil && a.Role == models.RoleKetuaRT
}

// RequireAdmin returns apperr.ErrForbidden unless IsAdmin(a).
func RequireAdmin(a *models.Account) error {
	if !IsAdmin(a) {
		return apperr.ErrForbidden
	}
	return nil
}

// RequireKetuaRT returns apperr.ErrForbidden unless IsKetuaRT(a).
func RequireKetuaRT(a *models.Account) error {
	if !IsKetuaRT(a) {
		return apperr.ErrForbidden
	}
	return nil
}

// Register creates a resident account. The returned account has no credential.
func (s *Service) Register(ctx context.Context, reg Registration) (*models.Account, error) {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = storage.NormalizeEmail(reg.Email)
	switch {
	case reg.Name == "":
		return nil, apperr.Validation("name is required")
	case reg.Email == "" || !strings.Contains(reg.Email, "@"):
		return nil, apperr.Validation("a valid email is required")
	case len(reg.Password) < config.MinPasswordLength:
		return nil, apperr.Validation("password must be at least %d characters", config.MinPasswordLength)
	}

	existing, err := s.Storage.GetAccountByEmail(ctx, reg.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.Hasher.Hash(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &models.Account{
		ID:        models.GenerateID("USR"),
		Name:      reg.Name,
		Email:     reg.Email,
		Password:  hash,
		Phone:     strings.TrimSpace(reg.Phone),
		Address:   strings.TrimSpace(reg.Address),
		Role:      models.RoleWarga,
		CreatedAt: s.now(),
	}
	if err := s.Storage.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create account: %w", err)
	}
	public := account.Public()
	return &public, nil
}

// Login verifies the credential and starts a session.
func (s *Service) Login(ctx context.Context, email, password string) (*session.Session, error) {
	account, err := s.Storage.GetAccountByEmail(ctx, storage.NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if account == nil {
		return nil, ErrUnknownEmail
	}
	if !s.Hasher.Verify(account.Password, password) {
		return nil, ErrWrongPassword
	}
	return s.Sessions.Start(ctx, *account)
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.Sessions.End(ctx, token)
}

// Current returns the account behind token, or nil when there is no live
// session. The account is re-read so role changes and deletions apply at once.
func (s *Service) Current(ctx context.Context, token string) (*models.Account, error) {
	sess, err := s.Sessions.Hydrate(ctx, token)
	if errors.Is(err, session.ErrInvalidToken) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	account, err := s.Storage.GetAccountByID(ctx, sess.Account.ID)
	if err != nil || account == nil {
		return nil, err
	}
	public := account.Public()
	return &public, nil
}

// ListAccounts returns every account without credentials.
func (s *Service) ListAccounts(ctx context.Context, actor *models.Account) ([]models.Account, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	accounts, err := s.Storage.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		accounts[i] = accounts[i].Public()
	}
	return accounts, nil
}

func (s *Service) ChangeRole(ctx context.Context, actor *models.Account, id string, role models.Role) (*models.Account, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, apperr.Validation("unknown role %q", role)
	}
	account, err := s.Storage.UpdateAccount(ctx, id, models.Fields{"role": role})
	if err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	if account == nil {
		return nil, apperr.NotFound("account", id)
	}
	public := account.Public()
	return &public, nil
}

// DeleteAccount removes an account. Deleting a missing id succeeds.
func (s *Service) DeleteAccount(ctx context.Context, actor *models.Account, id string) error {
	if err := RequireAdmin(actor); err != nil {
		return err
	}
	if actor.ID == id {
		return ErrSelfDelete
	}
	return s.Storage.DeleteAccount(ctx, id)
}
