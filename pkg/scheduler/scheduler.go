package scheduler

import (
	"context"

	"github.com/chris/sportsbook-ledger/pkg/models"
)

//go:generate go run github.com/vektra/mockery/v2 --name=Scheduler --output=mocks --outpkg=mocks

// Scheduler defines the interface for a component that queues settlement commands for asynchronous processing.
type Scheduler interface {
	// ScheduleSettlement enqueues a command to settle one wager.
	ScheduleSettlement(ctx context.Context, cmd models.SettlementCommand) error
}
