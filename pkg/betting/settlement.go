package betting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chris/sportsbook-ledger/pkg/eventbus"
	"github.com/chris/sportsbook-ledger/pkg/metrics"
	"github.com/chris/sportsbook-ledger/pkg/models"
	"github.com/chris/sportsbook-ledger/pkg/scheduler"
	"github.com/chris/sportsbook-ledger/pkg/storage"
	"github.com/chris/sportsbook-ledger/pkg/websockets"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SettlementStore is what the settlement service needs from storage.
type SettlementStore interface {
	storage.WagerReader
	storage.SettlementStore
	GetEvent(ctx context.Context, eventID string) (*models.Event, error)
	GetAccount(ctx context.Context, accountID string) (*models.Account, error)
}

// SettlementService resolves pending wagers.
type SettlementService struct {
	store     SettlementStore
	scheduler scheduler.Scheduler
	events    eventbus.Publisher
	publisher websockets.Publisher
	metrics   *metrics.Metrics
	log       *zap.Logger
	now       func() time.Time
}

// NewSettlementService creates a SettlementService. With a nil scheduler, event-wide
// settlement runs inline instead of going through the queue.
func NewSettlementService(store SettlementStore, sched scheduler.Scheduler, events eventbus.Publisher, publisher websockets.Publisher, m *metrics.Metrics, log *zap.Logger) *SettlementService {
	return &SettlementService{
		store:     store,
		scheduler: sched,
		events:    events,
		publisher: publisher,
		metrics:   m,
		log:       log,
		now:       time.Now,
	}
}

// payout is the money movement and ledger entry implied by a target status.
type payout struct {
	amount      models.Money
	txType      models.TransactionType
	description string
	result      models.WagerResult
}

func payoutFor(w *models.Wager, status models.WagerStatus, cashout *models.Money) (payout, error) {
	switch status {
	case models.WagerWon:
		return payout{w.PotentialWinnings, models.TxBetWon, "Bet won: " + w.Selection, models.ResultWin}, nil
	case models.WagerLost:
		return payout{models.ZeroMoney, models.TxBetLost, "Bet lost: " + w.Selection, models.ResultLoss}, nil
	case models.WagerCanceled:
		return payout{w.Stake, models.TxBetCanceled, "Bet canceled: Stake refunded", models.ResultVoid}, nil
	case models.WagerVoid:
		return payout{w.Stake, models.TxBetVoid, "Bet void: Stake refunded", models.ResultVoid}, nil
	case models.WagerCashout:
		if cashout == nil || !cashout.IsPositive() || cashout.GreaterThan(w.PotentialWinnings.Decimal) {
			return payout{}, ErrInvalidAmount
		}
		return payout{*cashout, models.TxCashout, "Cashout: " + w.Selection, models.ResultNone}, nil
	}
	return payout{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
}

// SettleWager moves a pending wager to a terminal status. The wager update, the
// balance credit and the ledger entry are committed together, and only while the
// wager is still pending.
func (s *SettlementService) SettleWager(ctx context.Context, cmd models.SettlementCommand) (*models.Wager, error) {
	wager, err := s.store.GetWager(ctx, cmd.WagerId)
	if err != nil {
		return nil, err
	}
	if wager.Status.Terminal() {
		return nil, fmt.Errorf("wager %s is %s: %w", wager.Id, wager.Status, storage.ErrAlreadySettled)
	}
	if !cmd.Result.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidResult, cmd.Result)
	}

	p, err := payoutFor(wager, cmd.Status, cmd.Amount)
	if err != nil {
		return nil, err
	}
	result := cmd.Result
	if result == models.ResultNone {
		result = p.result
	}

	now := s.now().UTC()
	currency := models.DefaultCurrency
	account, err := s.store.GetAccount(ctx, wager.AccountId)
	if err != nil {
		return nil, err
	}
	if account.Wallet.Currency != "" {
		currency = account.Wallet.Currency
	}

	entry := &models.Transaction{
		Id:          uuid.New().String(),
		AccountId:   wager.AccountId,
		WagerId:     wager.Id,
		Type:        p.txType,
		Amount:      p.amount,
		Currency:    currency,
		Status:      models.TxCompleted,
		Description: p.description,
		CreatedAt:   now,
	}

	settled, err := s.store.SettleWager(ctx, &models.Settlement{
		Wager:       wager,
		Status:      cmd.Status,
		Result:      result,
		Amount:      p.amount,
		Transaction: entry,
		SettledAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to settle wager: %w", err)
	}

	s.metrics.WagersSettled.WithLabelValues(string(settled.Status)).Inc()
	s.metrics.WalletOperations.WithLabelValues(string(p.txType)).Inc()
	s.notify(ctx, settled, entry)

	return settled, nil
}

func (s *SettlementService) notify(ctx context.Context, settled *models.Wager, entry *models.Transaction) {
	log := s.log.With(zap.String("wager_id", settled.Id), zap.String("account_id", settled.AccountId))
	log.Info("wager settled", zap.String("status", string(settled.Status)), zap.String("amount", settled.SettledAmount.String()))

	if err := s.events.PublishWagerSettled(ctx, eventbus.NewWagerSettled(settled)); err != nil {
		log.Error("failed to publish wager settled event", zap.Error(err))
	}

	err := s.publisher.Publish(ctx, websockets.Message{
		Type:      websockets.MessageTypeWagerSettled,
		AccountID: settled.AccountId,
		Payload: websockets.WagerSettledPayload{
			WagerID:       settled.Id,
			Status:        settled.Status,
			Result:        settled.Result,
			SettledAmount: settled.SettledAmount,
		},
	})
	if err != nil {
		log.Error("failed to publish wager settled message", zap.Error(err))
	}

	if !entry.Amount.IsPositive() {
		return
	}
	account, err := s.store.GetAccount(ctx, settled.AccountId)
	if err != nil {
		log.Error("failed to get account for wallet update", zap.Error(err))
		return
	}
	if err := s.publisher.Publish(ctx, websockets.WalletUpdate(entry, account)); err != nil {
		log.Error("failed to publish wallet update", zap.Error(err))
	}
}

// HandleCommand applies a queued settlement command. A wager that was already
// settled counts as success, so redelivered messages are harmless.
func (s *SettlementService) HandleCommand(ctx context.Context, cmd models.SettlementCommand) error {
	_, err := s.SettleWager(ctx, cmd)
	if errors.Is(err, storage.ErrAlreadySettled) {
		s.log.Info("wager already settled, skipping", zap.String("wager_id", cmd.WagerId))
		return nil
	}
	return err
}

// CommandsForEvent derives the settlement command of each pending wager on a finished event.
// On a completed event the selection naming the winner wins and every other selection loses;
// on a cancelled event every wager is refunded.
func CommandsForEvent(event *models.Event, wagers []models.Wager) ([]models.SettlementCommand, error) {
	switch event.Status {
	case models.EventCompleted:
		if event.Result == nil || event.Result.Winner == "" {
			return nil, fmt.Errorf("event %s: %w", event.Id, ErrMissingResult)
		}
	case models.EventCancelled:
	default:
		return nil, fmt.Errorf("event %s is %s: %w", event.Id, event.Status, ErrEventNotFinished)
	}

	cmds := make([]models.SettlementCommand, 0, len(wagers))
	for _, w := range wagers {
		if w.Status != models.WagerPending {
			continue
		}
		cmd := models.SettlementCommand{WagerId: w.Id}
		switch {
		case event.Status == models.EventCancelled:
			cmd.Status, cmd.Result = models.WagerCanceled, models.ResultVoid
		case w.Selection == event.Result.Winner:
			cmd.Status, cmd.Result = models.WagerWon, models.ResultWin
		default:
			cmd.Status, cmd.Result = models.WagerLost, models.ResultLoss
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

// SettleEvent settles every pending wager of a completed or cancelled event. It returns
// the number of commands that were queued (or applied, without a scheduler).
func (s *SettlementService) SettleEvent(ctx context.Context, eventID string) (int, error) {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return 0, err
	}
	wagers, err := s.store.ListPendingWagersByEvent(ctx, eventID)
	if err != nil {
		return 0, err
	}
	cmds, err := CommandsForEvent(event, wagers)
	if err != nil {
		return 0, err
	}
	return s.dispatch(ctx, cmds)
}

// ReconcileStale re-dispatches wagers that are still pending maxAge after placement
// although their event has finished. Events that are still open are left alone.
func (s *SettlementService) ReconcileStale(ctx context.Context, maxAge time.Duration) (int, error) {
	stale, err := s.store.GetStalePendingWagers(ctx, maxAge)
	if err != nil {
		return 0, err
	}

	byEvent := make(map[string][]models.Wager)
	var order []string
	for _, w := range stale {
		if _, ok := byEvent[w.EventId]; !ok {
			order = append(order, w.EventId)
		}
		byEvent[w.EventId] = append(byEvent[w.EventId], w)
	}

	var cmds []models.SettlementCommand
	for _, eventID := range order {
		event, err := s.store.GetEvent(ctx, eventID)
		if err != nil {
			s.log.Error("failed to get event for stale wagers", zap.String("event_id", eventID), zap.Error(err))
			continue
		}
		eventCmds, err := CommandsForEvent(event, byEvent[eventID])
		if err != nil {
			continue
		}
		cmds = append(cmds, eventCmds...)
	}

	return s.dispatch(ctx, cmds)
}

func (s *SettlementService) dispatch(ctx context.Context, cmds []models.SettlementCommand) (int, error) {
	var (
		done int
		errs []error
	)
	for _, cmd := range cmds {
		var err error
		if s.scheduler != nil {
			err = s.scheduler.ScheduleSettlement(ctx, cmd)
		} else {
			err = s.HandleCommand(ctx, cmd)
		}
		if err != nil {
			s.log.Error("failed to dispatch settlement", zap.String("wager_id", cmd.WagerId), zap.Error(err))
			errs = append(errs, fmt.Errorf("wager %s: %w", cmd.WagerId, err))
			continue
		}
		done++
	}
	return done, errors.Join(errs...)
}
