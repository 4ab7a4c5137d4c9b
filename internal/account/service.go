// Package account manages the user directory: login, administration and the
// default accounts created on first start.
package account

import (
	"context"       // Context for repository calls
	"crypto/subtle" // Constant-time PIN comparison
	"errors"        // Sentinel comparison
	"strings"       // Username trimming

	"pizza_pos/internal/domain" // Domain models and errors

	"github.com/sirupsen/logrus" // Structured logging
)

// Repository is the durable user directory. Every write commits as one unit.
type Repository interface {
	FindByUsername(ctx context.Context, username string) (domain.Account, error)
	FindByID(ctx context.Context, id uint) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Create(ctx context.Context, a *domain.Account) error
	// Update replaces username, PIN and admin flag of the account currently
	// named username. It rejects renames onto another account and demoting
	// the last admin.
	Update(ctx context.Context, username string, changes domain.Account) (domain.Account, error)
	UpdatePIN(ctx context.Context, username, pin string) error
	// Delete removes the account unless it is the last admin
	Delete(ctx context.Context, username string) error
	Count(ctx context.Context, isAdmin bool) (int64, error)
}

// Default accounts created by Seed
const (
	DefaultAdminUsername    = "admin"
	DefaultAdminPIN         = "1234"
	DefaultEmployeeUsername = "employee"
	DefaultEmployeePIN      = "5678"
)

// Service implements the account operations
type Service struct {
	repo Repository
}

// NewService returns a Service backed by repo
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate checks a username and PIN. The PIN format is validated before
// any lookup. Both failures satisfy domain.IsAuthFailure.
func (s *Service) Authenticate(ctx context.Context, username, pin string) (domain.Account, error) {
	username = strings.TrimSpace(username)
	pin = strings.TrimSpace(pin)
	if !domain.ValidPIN(pin) {
		return domain.Account{}, domain.ErrInvalidPinFormat
	}
	if username == "" {
		return domain.Account{}, domain.ErrInvalidCredentials
	}
	acct, err := s.repo.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return domain.Account{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.Account{}, err
	}
	if subtle.ConstantTimeCompare([]byte(acct.PIN), []byte(pin)) != 1 {
		return domain.Account{}, domain.ErrInvalidCredentials
	}
	return acct, nil
}

func validate(username, pin string) error {
	if username == "" {
		return domain.ErrUsernameRequired
	}
	if !domain.ValidPIN(pin) {
		return domain.ErrInvalidPinFormat
	}
	return nil
}

// Create adds an account
func (s *Service) Create(ctx context.Context, username, pin string, isAdmin bool) (domain.Account, error) {
	username = strings.TrimSpace(username)
	pin = strings.TrimSpace(pin)
	if err := validate(username, pin); err != nil {
		return domain.Account{}, err
	}
	acct := domain.Account{Username: username, PIN: pin, IsAdmin: isAdmin}
	if err := s.repo.Create(ctx, &acct); err != nil {
		return domain.Account{}, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":  acct.ID,       // New account ID
		"username": acct.Username, // Username
		"is_admin": acct.IsAdmin,  // Administrator flag
	}).Info("Account created")
	return acct, nil
}

// Update edits the account named existing
func (s *Service) Update(ctx context.Context, existing, newUsername, newPIN string, newIsAdmin bool) (domain.Account, error) {
	newUsername = strings.TrimSpace(newUsername)
	newPIN = strings.TrimSpace(newPIN)
	if err := validate(newUsername, newPIN); err != nil {
		return domain.Account{}, err
	}
	acct, err := s.repo.Update(ctx, existing, domain.Account{Username: newUsername, PIN: newPIN, IsAdmin: newIsAdmin})
	if err != nil {
		return domain.Account{}, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":      acct.ID,       // Account ID
		"old_username": existing,      // Previous username
		"username":     acct.Username, // Current username
		"is_admin":     acct.IsAdmin,  // Administrator flag
	}).Info("Account updated")
	return acct, nil
}

// Delete removes the account named username on behalf of caller.
// Callers cannot delete themselves.
func (s *Service) Delete(ctx context.Context, caller domain.Account, username string) error {
	if username == caller.Username {
		return domain.ErrSelfDeletion
	}
	if err := s.repo.Delete(ctx, username); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"username":   username,        // Deleted account
		"deleted_by": caller.Username, // Acting admin
	}).Info("Account deleted")
	return nil
}

// ResetPIN replaces the PIN of username
func (s *Service) ResetPIN(ctx context.Context, username, pin string) error {
	pin = strings.TrimSpace(pin)
	if !domain.ValidPIN(pin) {
		return domain.ErrInvalidPinFormat
	}
	if err := s.repo.UpdatePIN(ctx, username, pin); err != nil {
		return err
	}
	logrus.WithField("username", username).Info("PIN reset")
	return nil
}

// List returns every account ordered by username
func (s *Service) List(ctx context.Context) ([]domain.Account, error) {
	return s.repo.List(ctx)
}

// Get returns the account with the given ID
func (s *Service) Get(ctx context.Context, id uint) (domain.Account, error) {
	return s.repo.FindByID(ctx, id)
}

// Seed creates the default admin and employee accounts when no account of
// that role exists
func (s *Service) Seed(ctx context.Context) error {
	defaults := []struct {
		admin    bool
		username string
		pin      string
	}{
		{true, DefaultAdminUsername, DefaultAdminPIN},
		{false, DefaultEmployeeUsername, DefaultEmployeePIN},
	}
	for _, d := range defaults {
		n, err := s.repo.Count(ctx, d.admin)
		if err != nil {
			return err
		}
		if n > 0 {
			continue // Role already present
		}
		if _, err := s.Create(ctx, d.username, d.pin, d.admin); err != nil {
			return err
		}
		logrus.WithField("username", d.username).Warn("Seeded default account, change its PIN")
	}
	return nil
}
