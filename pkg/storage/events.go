package storage

import (
	"context"

	"github.com/chris/sportsbook-ledger/pkg/models"
)

// EventStore defines the interface for the event catalog.
type EventStore interface {
	GetEvent(ctx context.Context, eventID string) (*models.Event, error)
	CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error)
	UpdateEvent(ctx context.Context, event *models.Event) (*models.Event, error)
	DeleteEvent(ctx context.Context, eventID string) error

	// ListEvents returns one page of matching events ordered by date, and the total match count.
	ListEvents(ctx context.Context, filter EventFilter, page Page) ([]models.Event, int, error)
}
