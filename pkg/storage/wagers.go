package storage

import (
	"context"
	"time"

	"github.com/chris/sportsbook-ledger/pkg/models"
)

// WagerReader defines the interface for reading wagers.
type WagerReader interface {
	// GetWager retrieves a wager by its ID.
	GetWager(ctx context.Context, wagerID string) (*models.Wager, error)

	// ListWagers returns one page of matching wagers, newest first, and the total match count.
	ListWagers(ctx context.Context, filter WagerFilter, page Page) ([]models.Wager, int, error)

	// ListPendingWagersByEvent retrieves every pending wager placed on an event.
	ListPendingWagersByEvent(ctx context.Context, eventID string) ([]models.Wager, error)

	// GetStalePendingWagers retrieves wagers that have been pending for longer than maxAge.
	GetStalePendingWagers(ctx context.Context, maxAge time.Duration) ([]models.Wager, error)
}

// WagerPlacer defines the interface for recording a new wager.
type WagerPlacer interface {
	// PlaceWager atomically debits the stake, creates the wager and appends its
	// bet_placed ledger entry. It fails with ErrInsufficientFunds or ErrEventClosed
	// when the balance or the event status no longer allow the bet.
	PlaceWager(ctx context.Context, wager *models.Wager, entry *models.Transaction) (*models.Account, error)
}

// WagerStore combines the reader and placer interfaces.
type WagerStore interface {
	WagerReader
	WagerPlacer
}
