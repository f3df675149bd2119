package storage

import (
	"context"

	"github.com/chris/sportsbook-ledger/pkg/models"
)

// WalletStore defines the interface for mutating wallet balances.
type WalletStore interface {
	GetAccount(ctx context.Context, accountID string) (*models.Account, error)

	// ApplyWalletEntry adds entry.Amount (signed) to the account balance and appends
	// entry to the ledger in one atomic write. A negative amount larger than the
	// balance fails with ErrInsufficientFunds.
	ApplyWalletEntry(ctx context.Context, accountID string, entry *models.Transaction) (*models.Account, error)
}
