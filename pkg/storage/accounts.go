package storage

import (
	"context"
	"time"

	"github.com/chris/sportsbook-ledger/pkg/models"
)

// AccountStore defines the interface for managing accounts.
type AccountStore interface {
	// GetAccount retrieves an account by its ID.
	GetAccount(ctx context.Context, accountID string) (*models.Account, error)

	// CreateAccount creates a new account with an empty wallet.
	CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error)

	// DeleteAccount deletes an account.
	DeleteAccount(ctx context.Context, accountID string) error

	// ListAccounts retrieves all accounts.
	ListAccounts(ctx context.Context) ([]models.Account, error)

	// UpdateAccount applies an operator edit and returns the updated account.
	UpdateAccount(ctx context.Context, accountID string, update AccountUpdate) (*models.Account, error)
}

// AccountUpdate carries the operator-editable fields of an account. Nil fields are left unchanged.
type AccountUpdate struct {
	Role       *models.Role
	IsVerified *bool
	UpdatedAt  time.Time
}

// Apply copies the set fields onto a.
func (u AccountUpdate) Apply(a *models.Account) {
	if u.Role != nil {
		a.Role = *u.Role
	}
	if u.IsVerified != nil {
		a.IsVerified = *u.IsVerified
	}
	a.UpdatedAt = u.UpdatedAt
}
