package storage

import (
	"context"

	"github.com/chris/sportsbook-ledger/pkg/models"
)

// TransactionReader defines the interface for reading the ledger.
type TransactionReader interface {
	// ListTransactions returns one page of an account's ledger, newest first, and the total match count.
	ListTransactions(ctx context.Context, filter TransactionFilter, page Page) ([]models.Transaction, int, error)
}
