package storage

import (
	"context"

	"github.com/chris/sportsbook-ledger/pkg/models"
)

// SettlementStore defines the privileged interface for settling a wager.
// The wager update, the balance credit and the ledger entry are written atomically,
// and the write only succeeds while the wager is still pending.
type SettlementStore interface {
	SettleWager(ctx context.Context, settlement *models.Settlement) (*models.Wager, error)
}
