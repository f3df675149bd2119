// Package catalog manages the events that wagers are placed against.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chris/sportsbook-ledger/pkg/models"
	"github.com/chris/sportsbook-ledger/pkg/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrInvalidEvent = errors.New("invalid event")
	// ErrEventFinished is returned when a completed or cancelled event would be reopened.
	ErrEventFinished = errors.New("event is already finished")
)

//go:generate go run github.com/vektra/mockery/v2 --name=Settler --output=mocks --outpkg=mocks

// Settler resolves the pending wagers of a finished event.
type Settler interface {
	SettleEvent(ctx context.Context, eventID string) (int, error)
}

// EventInput carries the editable fields of an event.
type EventInput struct {
	Title       string
	League      string
	Description string
	Date        time.Time
	Time        string
	Competitors []models.Competitor
	Venue       string
	IsFeatured  bool
	IsPopular   bool
	Status      models.EventStatus
	Result      *models.EventResult
}

// Service is the event catalog.
type Service struct {
	store   storage.EventStore
	settler Settler
	log     *zap.Logger
	now     func() time.Time
}

// NewService creates a Service. When settler is nil, finishing an event does not settle its wagers.
func NewService(store storage.EventStore, settler Settler, log *zap.Logger) *Service {
	return &Service{store: store, settler: settler, log: log, now: time.Now}
}

// Validate checks the fields every stored event must have.
func (in EventInput) Validate() error {
	var problems []string
	if strings.TrimSpace(in.Title) == "" {
		problems = append(problems, "title is required")
	}
	if strings.TrimSpace(in.League) == "" {
		problems = append(problems, "league is required")
	}
	if in.Date.IsZero() {
		problems = append(problems, "date is required")
	}
	if strings.TrimSpace(in.Time) == "" {
		problems = append(problems, "time is required")
	}
	for i, c := range in.Competitors {
		if strings.TrimSpace(c.Name) == "" {
			problems = append(problems, fmt.Sprintf("competitor %d: name is required", i))
		}
		if odds, err := decimal.NewFromString(c.Odds); err != nil || !odds.IsPositive() {
			problems = append(problems, fmt.Sprintf("competitor %d: odds must be a positive decimal", i))
		}
	}
	if in.Status != "" && !in.Status.Valid() {
		problems = append(problems, fmt.Sprintf("status %q is not one of upcoming, live, completed, cancelled", in.Status))
	}
	if in.Status == models.EventCompleted && (in.Result == nil || strings.TrimSpace(in.Result.Winner) == "") {
		problems = append(problems, "result.winner is required for a completed event")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidEvent, strings.Join(problems, "; "))
	}
	return nil
}

func (s *Service) Get(ctx context.Context, eventID string) (*models.Event, error) {
	return s.store.GetEvent(ctx, eventID)
}

func (s *Service) List(ctx context.Context, filter storage.EventFilter, page storage.Page) ([]models.Event, int, error) {
	return s.store.ListEvents(ctx, filter, page)
}

// Create stores a new event. Status defaults to upcoming.
func (s *Service) Create(ctx context.Context, in EventInput) (*models.Event, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = models.EventUpcoming
	}

	now := s.now().UTC()
	event := &models.Event{Id: uuid.New().String(), CreatedAt: now}
	apply(event, in, now)

	created, err := s.store.CreateEvent(ctx, event)
	if err != nil {
		return nil, err
	}
	s.log.Info("event created", zap.String("event_id", created.Id), zap.String("league", created.League))
	return created, nil
}

// Update replaces the editable fields of an event. Moving an open event to completed
// or cancelled settles its pending wagers; a finished event cannot be reopened.
func (s *Service) Update(ctx context.Context, eventID string, in EventInput) (*models.Event, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	current, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = current.Status
	}
	if !current.Status.AcceptsWagers() {
		if in.Status != current.Status {
			return nil, fmt.Errorf("event %s is %s: %w", eventID, current.Status, ErrEventFinished)
		}
		// Wagers were settled against the recorded result.
		if in.Result == nil {
			in.Result = current.Result
		} else if resultOf(in.Result) != resultOf(current.Result) {
			return nil, fmt.Errorf("result of %s event %s cannot change: %w", current.Status, eventID, ErrEventFinished)
		}
	}

	wasOpen := current.Status.AcceptsWagers()
	apply(current, in, s.now().UTC())
	updated, err := s.store.UpdateEvent(ctx, current)
	if err != nil {
		return nil, err
	}

	if wasOpen && !updated.Status.AcceptsWagers() {
		s.settleFinished(ctx, updated)
	}
	return updated, nil
}

func (s *Service) settleFinished(ctx context.Context, event *models.Event) {
	if s.settler == nil {
		return
	}
	n, err := s.settler.SettleEvent(ctx, event.Id)
	if err != nil {
		s.log.Error("failed to settle finished event", zap.String("event_id", event.Id), zap.Error(err))
		return
	}
	s.log.Info("settled finished event", zap.String("event_id", event.Id), zap.Int("wagers", n))
}

// Settle settles the pending wagers of an already finished event.
func (s *Service) Settle(ctx context.Context, eventID string) (int, error) {
	if s.settler == nil {
		return 0, errors.New("settlement is not configured")
	}
	return s.settler.SettleEvent(ctx, eventID)
}

func (s *Service) Delete(ctx context.Context, eventID string) error {
	if err := s.store.DeleteEvent(ctx, eventID); err != nil {
		return err
	}
	s.log.Info("event deleted", zap.String("event_id", eventID))
	return nil
}

func resultOf(r *models.EventResult) models.EventResult {
	if r == nil {
		return models.EventResult{}
	}
	return *r
}

func apply(e *models.Event, in EventInput, now time.Time) {
	e.Title = in.Title
	e.League = in.League
	e.Description = in.Description
	e.Date = in.Date
	e.Time = in.Time
	e.Competitors = in.Competitors
	e.Venue = in.Venue
	e.IsFeatured = in.IsFeatured
	e.IsPopular = in.IsPopular
	e.Status = in.Status
	e.Result = in.Result
	e.UpdatedAt = now
}
