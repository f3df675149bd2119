package betting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chris/sportsbook-ledger/pkg/eventbus"
	"github.com/chris/sportsbook-ledger/pkg/metrics"
	"github.com/chris/sportsbook-ledger/pkg/models"
	"github.com/chris/sportsbook-ledger/pkg/storage"
	"github.com/chris/sportsbook-ledger/pkg/websockets"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultBetType = "single"

var minStake = decimal.New(1, -2)

// Reserver guards placements that carry an idempotency key.
type Reserver interface {
	Reserve(ctx context.Context, accountID, key, wagerID string) (existing string, claimed bool, err error)
	Release(ctx context.Context, accountID, key string) error
}

// PlaceWagerInput is a validated-at-the-boundary placement request.
type PlaceWagerInput struct {
	AccountID      string
	EventID        string
	Selection      string
	Odds           string
	Stake          models.Money
	IdempotencyKey string
}

// Placement is the outcome of PlaceWager.
type Placement struct {
	Wager    *models.Wager
	Wallet   models.Wallet
	Replayed bool
}

// WagerStore is what the wager service needs from storage.
type WagerStore interface {
	storage.AccountStore
	storage.EventStore
	storage.WagerStore
}

// WagerService accepts wagers.
type WagerService struct {
	store     WagerStore
	keys      Reserver
	events    eventbus.Publisher
	publisher websockets.Publisher
	metrics   *metrics.Metrics
	log       *zap.Logger
	now       func() time.Time
	newID     func() string
}

// NewWagerService creates a WagerService. keys may be nil, in which case idempotency keys are ignored.
func NewWagerService(store WagerStore, keys Reserver, events eventbus.Publisher, publisher websockets.Publisher, m *metrics.Metrics, log *zap.Logger) *WagerService {
	return &WagerService{
		store:     store,
		keys:      keys,
		events:    events,
		publisher: publisher,
		metrics:   m,
		log:       log,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
}

// PlaceWager validates the request, then records the wager, the stake debit and
// the bet_placed ledger entry in one atomic write.
func (s *WagerService) PlaceWager(ctx context.Context, in PlaceWagerInput) (*Placement, error) {
	wagerID := s.newID()

	if in.IdempotencyKey != "" && s.keys != nil {
		existing, claimed, err := s.keys.Reserve(ctx, in.AccountID, in.IdempotencyKey, wagerID)
		if err != nil {
			return nil, err
		}
		if !claimed {
			return s.replay(ctx, in.AccountID, existing)
		}
	}

	placement, err := s.place(ctx, wagerID, in)
	if err != nil {
		s.metrics.PlacementFailures.WithLabelValues(failureReason(err)).Inc()
		if in.IdempotencyKey != "" && s.keys != nil {
			if relErr := s.keys.Release(ctx, in.AccountID, in.IdempotencyKey); relErr != nil {
				s.log.Error("failed to release idempotency key", zap.String("wager_id", wagerID), zap.Error(relErr))
			}
		}
		return nil, err
	}

	return placement, nil
}

func (s *WagerService) place(ctx context.Context, wagerID string, in PlaceWagerInput) (*Placement, error) {
	event, err := s.store.GetEvent(ctx, in.EventID)
	if err != nil {
		return nil, err
	}
	if !event.Status.AcceptsWagers() {
		return nil, fmt.Errorf("event %s is %s: %w", event.Id, event.Status, storage.ErrEventClosed)
	}

	if in.Stake.LessThan(minStake) {
		return nil, ErrInvalidStake
	}
	odds, err := decimal.NewFromString(in.Odds)
	if err != nil || !odds.IsPositive() {
		return nil, ErrInvalidOdds
	}
	if in.Selection == "" {
		return nil, ErrInvalidSelection
	}
	if competitor, ok := event.Competitor(in.Selection); ok {
		if current, err := decimal.NewFromString(competitor.Odds); err == nil && !current.Equal(odds) {
			return nil, &OddsChangedError{Selection: in.Selection, Requested: in.Odds, Current: competitor.Odds}
		}
	}

	account, err := s.store.GetAccount(ctx, in.AccountID)
	if err != nil {
		return nil, err
	}
	if account.Wallet.Balance.LessThan(in.Stake.Decimal) {
		return nil, fmt.Errorf("account %s: %w", account.Id, storage.ErrInsufficientFunds)
	}

	now := s.now().UTC()
	currency := account.Wallet.Currency
	if currency == "" {
		currency = models.DefaultCurrency
	}

	wager := &models.Wager{
		Id:                wagerID,
		AccountId:         account.Id,
		EventId:           event.Id,
		Event:             event.Summary(),
		Selection:         in.Selection,
		Odds:              in.Odds,
		Stake:             in.Stake,
		PotentialWinnings: models.NewMoney(in.Stake.Mul(odds)),
		Status:            models.WagerPending,
		Result:            models.ResultNone,
		SettledAmount:     models.ZeroMoney,
		BetType:           defaultBetType,
		IsLiveBet:         event.Status == models.EventLive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	entry := &models.Transaction{
		Id:          uuid.New().String(),
		AccountId:   account.Id,
		WagerId:     wager.Id,
		Type:        models.TxBetPlaced,
		Amount:      in.Stake.Negated(),
		Currency:    currency,
		Status:      models.TxCompleted,
		Description: fmt.Sprintf("Bet placed on %s - %s", event.Title, in.Selection),
		CreatedAt:   now,
	}

	updated, err := s.store.PlaceWager(ctx, wager, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to place wager: %w", err)
	}

	s.metrics.WagersPlaced.Inc()
	s.metrics.Stakes.Observe(in.Stake.InexactFloat64())
	s.metrics.WalletOperations.WithLabelValues(string(models.TxBetPlaced)).Inc()

	log := s.log.With(zap.String("wager_id", wager.Id), zap.String("account_id", account.Id))
	if err := s.events.PublishWagerPlaced(ctx, eventbus.NewWagerPlaced(wager)); err != nil {
		log.Error("failed to publish wager placed event", zap.Error(err))
	}
	if err := s.publisher.Publish(ctx, websockets.WalletUpdate(entry, updated)); err != nil {
		log.Error("failed to publish wallet update", zap.Error(err))
	}
	log.Info("wager placed", zap.String("stake", in.Stake.String()), zap.String("odds", in.Odds))

	return &Placement{Wager: wager, Wallet: updated.Wallet}, nil
}

func (s *WagerService) replay(ctx context.Context, accountID, wagerID string) (*Placement, error) {
	wager, err := s.store.GetWager(ctx, wagerID)
	if errors.Is(err, storage.ErrWagerNotFound) {
		return nil, ErrRequestInProgress
	}
	if err != nil {
		return nil, err
	}
	account, err := s.store.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &Placement{Wager: wager, Wallet: account.Wallet, Replayed: true}, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, storage.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, storage.ErrEventClosed):
		return "event_closed"
	case errors.Is(err, storage.ErrEventNotFound), errors.Is(err, storage.ErrAccountNotFound):
		return "not_found"
	case errors.Is(err, ErrOddsChanged):
		return "odds_changed"
	case errors.Is(err, ErrInvalidStake), errors.Is(err, ErrInvalidOdds), errors.Is(err, ErrInvalidSelection):
		return "invalid"
	}
	return "error"
}
