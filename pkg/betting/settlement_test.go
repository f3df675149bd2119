package betting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chris/sportsbook-ledger/pkg/models"
	schedmocks "github.com/chris/sportsbook-ledger/pkg/scheduler/mocks"
	"github.com/chris/sportsbook-ledger/pkg/storage"
	"github.com/chris/sportsbook-ledger/pkg/websockets"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSettleWager(t *testing.T) {
	t.Run("Won Credits Potential Winnings", func(t *testing.T) {
		f := newFixture(t, 500)
		w := f.place(t, "Lakers", "2.20", 50)

		settled, err := f.settlement.SettleWager(context.Background(), models.SettlementCommand{WagerId: w.Id, Status: models.WagerWon})

		require.NoError(t, err)
		assert.Equal(t, models.WagerWon, settled.Status)
		assert.Equal(t, models.ResultWin, settled.Result)
		assert.Equal(t, "110", settled.SettledAmount.String())
		require.NotNil(t, settled.SettledAt)
		assert.Equal(t, "560", f.balance(t))

		txs := f.ledger(t)
		require.Len(t, txs, 2)
		assert.Equal(t, models.TxBetWon, txs[0].Type)
		assert.Equal(t, "110", txs[0].Amount.String())
		assert.Equal(t, "Bet won: Lakers", txs[0].Description)
		assert.Equal(t, w.Id, txs[0].WagerId)

		require.Len(t, f.events.settled, 1)
		assert.Equal(t, models.WagerWon, f.events.settled[0].Status)
		require.Len(t, f.publisher.Messages, 3)
		assert.Equal(t, websockets.MessageTypeWagerSettled, f.publisher.Messages[1].Type)
		assert.Equal(t, websockets.MessageTypeWalletUpdate, f.publisher.Messages[2].Type)
		assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.WagersSettled.WithLabelValues("won")))
	})

	t.Run("Lost Writes Zero Entry", func(t *testing.T) {
		f := newFixture(t, 500)
		w := f.place(t, "Lakers", "2.20", 50)

		settled, err := f.settlement.SettleWager(context.Background(), models.SettlementCommand{WagerId: w.Id, Status: models.WagerLost})

		require.NoError(t, err)
		assert.Equal(t, models.ResultLoss, settled.Result)
		assert.True(t, settled.SettledAmount.IsZero())
		assert.Equal(t, "450", f.balance(t))

		txs := f.ledger(t)
		require.Len(t, txs, 2)
		assert.Equal(t, models.TxBetLost, txs[0].Type)
		assert.Equal(t, "Bet lost: Lakers", txs[0].Description)
		assert.Len(t, f.publisher.Messages, 2)
	})

	t.Run("Canceled Refunds Stake", func(t *testing.T) {
		f := newFixture(t, 500)
		w := f.place(t, "Lakers", "2.20", 50)

		settled, err := f.settlement.SettleWager(context.Background(), models.SettlementCommand{WagerId: w.Id, Status: models.WagerCanceled})

		require.NoError(t, err)
		assert.Equal(t, models.ResultVoid, settled.Result)
		assert.Equal(t, "50", settled.SettledAmount.String())
		assert.Equal(t, "500", f.balance(t))
		assert.Equal(t, "Bet canceled: Stake refunded", f.ledger(t)[0].Description)
	})

	t.Run("Void Refunds Stake", func(t *testing.T) {
		f := newFixture(t, 500)
		w := f.place(t, "Lakers", "2.20", 50)

		_, err := f.settlement.SettleWager(context.Background(), models.SettlementCommand{WagerId: w.Id, Status: models.WagerVoid})

		require.NoError(t, err)
		assert.Equal(t, "500", f.balance(t))
		assert.Equal(t, models.TxBetVoid, f.ledger(t)[0].Type)
	})

	t.Run("Cashout Pays Agreed Amount", func(t *testing.T) {
		f := newFixture(t, 500)
		w := f.place(t, "Lakers", "2.20", 50)

		settled, err := f.settlement.SettleWager(context.Background(), models.SettlementCommand{
			WagerId: w.Id, Status: models.WagerCashout, Amount: money(t, "80.50"),
		})

		require.NoError(t, err)
		assert.Equal(t, models.WagerCashout, settled.Status)
		assert.Equal(t, "530.5", f.balance(t))
		assert.Equal(t, models.TxCashout, f.ledger(t)[0].Type)
		assert.Equal(t, "Cashout: Lakers", f.ledger(t)[0].Description)
	})

	t.Run("Explicit Result Is Kept", func(t *testing.T) {
		f := newFixture(t, 500)
		w := f.place(t, "Lakers", "2.20", 50)

		settled, err := f.settlement.SettleWager(context.Background(), models.SettlementCommand{
			WagerId: w.Id, Status: models.WagerVoid, Result: models.ResultPush,
		})

		require.NoError(t, err)
		assert.Equal(t, models.ResultPush, settled.Result)
	})

	invalid := []struct {
		name string
		cmd  func(id string) models.SettlementCommand
		want error
	}{
		{"Cashout Without Amount", func(id string) models.SettlementCommand {
			return models.SettlementCommand{WagerId: id, Status: models.WagerCashout}
		}, ErrInvalidAmount},
		{"Cashout Above Potential Winnings", func(id string) models.SettlementCommand {
			return models.SettlementCommand{WagerId: id, Status: models.WagerCashout, Amount: money(t, "110.01")}
		}, ErrInvalidAmount},
		{"Cashout Of Zero", func(id string) models.SettlementCommand {
			return models.SettlementCommand{WagerId: id, Status: models.WagerCashout, Amount: money(t, "0")}
		}, ErrInvalidAmount},
		{"Pending Is Not A Settlement", func(id string) models.SettlementCommand {
			return models.SettlementCommand{WagerId: id, Status: models.WagerPending}
		}, ErrInvalidStatus},
		{"Unknown Status", func(id string) models.SettlementCommand {
			return models.SettlementCommand{WagerId: id, Status: "refunded"}
		}, ErrInvalidStatus},
		{"Unknown Result", func(id string) models.SettlementCommand {
			return models.SettlementCommand{WagerId: id, Status: models.WagerWon, Result: "draw"}
		}, ErrInvalidResult},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, 500)
			w := f.place(t, "Lakers", "2.20", 50)

			_, err := f.settlement.SettleWager(context.Background(), tc.cmd(w.Id))

			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, "450", f.balance(t))
			assert.Len(t, f.ledger(t), 1)
		})
	}

	t.Run("Second Settlement Rejected", func(t *testing.T) {
		f := newFixture(t, 500)
		w := f.place(t, "Lakers", "2.20", 50)
		_, err := f.settlement.SettleWager(context.Background(), models.SettlementCommand{WagerId: w.Id, Status: models.WagerWon})
		require.NoError(t, err)

		_, err = f.settlement.SettleWager(context.Background(), models.SettlementCommand{WagerId: w.Id, Status: models.WagerWon})

		assert.ErrorIs(t, err, storage.ErrAlreadySettled)
		assert.Equal(t, "560", f.balance(t))
		assert.Len(t, f.ledger(t), 2)
	})

	t.Run("Unknown Wager", func(t *testing.T) {
		f := newFixture(t, 500)

		_, err := f.settlement.SettleWager(context.Background(), models.SettlementCommand{WagerId: "missing", Status: models.WagerWon})

		assert.ErrorIs(t, err, storage.ErrWagerNotFound)
	})
}

func TestHandleCommand(t *testing.T) {
	f := newFixture(t, 500)
	w := f.place(t, "Lakers", "2.20", 50)
	cmd := models.SettlementCommand{WagerId: w.Id, Status: models.WagerWon, Result: models.ResultWin}

	require.NoError(t, f.settlement.HandleCommand(context.Background(), cmd))
	// Redelivery is a no-op.
	require.NoError(t, f.settlement.HandleCommand(context.Background(), cmd))

	assert.Equal(t, "560", f.balance(t))
	assert.Len(t, f.events.settled, 1)

	err := f.settlement.HandleCommand(context.Background(), models.SettlementCommand{WagerId: "missing", Status: models.WagerWon})
	assert.ErrorIs(t, err, storage.ErrWagerNotFound)
}

func TestCommandsForEvent(t *testing.T) {
	wagers := []models.Wager{
		{Id: "w1", Selection: "Lakers", Status: models.WagerPending},
		{Id: "w2", Selection: "Celtics", Status: models.WagerPending},
		{Id: "w3", Selection: "Lakers", Status: models.WagerWon},
	}

	t.Run("Completed", func(t *testing.T) {
		event := &models.Event{Id: "e", Status: models.EventCompleted, Result: &models.EventResult{Winner: "Lakers"}}

		cmds, err := CommandsForEvent(event, wagers)

		require.NoError(t, err)
		assert.Equal(t, []models.SettlementCommand{
			{WagerId: "w1", Status: models.WagerWon, Result: models.ResultWin},
			{WagerId: "w2", Status: models.WagerLost, Result: models.ResultLoss},
		}, cmds)
	})

	t.Run("Cancelled", func(t *testing.T) {
		cmds, err := CommandsForEvent(&models.Event{Id: "e", Status: models.EventCancelled}, wagers)

		require.NoError(t, err)
		require.Len(t, cmds, 2)
		for _, cmd := range cmds {
			assert.Equal(t, models.WagerCanceled, cmd.Status)
			assert.Equal(t, models.ResultVoid, cmd.Result)
		}
	})

	t.Run("Completed Without Winner", func(t *testing.T) {
		_, err := CommandsForEvent(&models.Event{Id: "e", Status: models.EventCompleted}, wagers)
		assert.ErrorIs(t, err, ErrMissingResult)
	})

	t.Run("Still Open", func(t *testing.T) {
		_, err := CommandsForEvent(&models.Event{Id: "e", Status: models.EventLive}, wagers)
		assert.ErrorIs(t, err, ErrEventNotFinished)
	})
}

func TestSettleEvent(t *testing.T) {
	t.Run("Inline", func(t *testing.T) {
		f := newFixture(t, 500)
		f.place(t, "Lakers", "2.20", 50)
		f.place(t, "Celtics", "1.75", 20)
		f.setEventStatus(t, models.EventCompleted, "Lakers")

		n, err := f.settlement.SettleEvent(context.Background(), "event-1")

		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, "540", f.balance(t))
		pending, err := f.store.ListPendingWagersByEvent(context.Background(), "event-1")
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("Cancelled Refunds Everything", func(t *testing.T) {
		f := newFixture(t, 500)
		f.place(t, "Lakers", "2.20", 50)
		f.place(t, "Celtics", "1.75", 20)
		f.setEventStatus(t, models.EventCancelled, "")

		n, err := f.settlement.SettleEvent(context.Background(), "event-1")

		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, "500", f.balance(t))
	})

	t.Run("Queued Through Scheduler", func(t *testing.T) {
		f := newFixture(t, 500)
		w := f.place(t, "Lakers", "2.20", 50)
		f.setEventStatus(t, models.EventCompleted, "Lakers")

		sched := schedmocks.NewScheduler(t)
		sched.On("ScheduleSettlement", mock.Anything, models.SettlementCommand{
			WagerId: w.Id, Status: models.WagerWon, Result: models.ResultWin,
		}).Return(nil).Once()
		svc := NewSettlementService(f.store, sched, f.events, f.publisher, f.metrics, zap.NewNop())

		n, err := svc.SettleEvent(context.Background(), "event-1")

		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, "450", f.balance(t))
	})

	t.Run("Scheduler Failure Is Reported", func(t *testing.T) {
		f := newFixture(t, 500)
		f.place(t, "Lakers", "2.20", 50)
		f.place(t, "Celtics", "1.75", 20)
		f.setEventStatus(t, models.EventCompleted, "Lakers")

		sched := schedmocks.NewScheduler(t)
		sched.On("ScheduleSettlement", mock.Anything, mock.MatchedBy(func(cmd models.SettlementCommand) bool {
			return cmd.Status == models.WagerWon
		})).Return(errors.New("queue unavailable"))
		sched.On("ScheduleSettlement", mock.Anything, mock.Anything).Return(nil)
		svc := NewSettlementService(f.store, sched, f.events, f.publisher, f.metrics, zap.NewNop())

		n, err := svc.SettleEvent(context.Background(), "event-1")

		assert.Equal(t, 1, n)
		assert.ErrorContains(t, err, "queue unavailable")
	})

	t.Run("Open Event", func(t *testing.T) {
		f := newFixture(t, 500)
		f.place(t, "Lakers", "2.20", 50)

		_, err := f.settlement.SettleEvent(context.Background(), "event-1")

		assert.ErrorIs(t, err, ErrEventNotFinished)
		assert.Equal(t, "450", f.balance(t))
	})

	t.Run("Unknown Event", func(t *testing.T) {
		f := newFixture(t, 500)

		_, err := f.settlement.SettleEvent(context.Background(), "missing")

		assert.ErrorIs(t, err, storage.ErrEventNotFound)
	})
}

func TestReconcileStale(t *testing.T) {
	f := newFixture(t, 500)
	f.place(t, "Lakers", "2.20", 50)
	_, err := f.store.CreateEvent(context.Background(), &models.Event{
		Id: "event-2", Title: "Heat vs Bulls", League: "NBA", Status: models.EventUpcoming,
		Competitors: []models.Competitor{{Name: "Heat", Odds: "1.90"}, {Name: "Bulls", Odds: "1.90"}},
	})
	require.NoError(t, err)
	_, err = f.wagers.PlaceWager(context.Background(), PlaceWagerInput{
		AccountID: "user-1", EventID: "event-2", Selection: "Heat", Odds: "1.90", Stake: models.MoneyFromInt(10),
	})
	require.NoError(t, err)
	f.setEventStatus(t, models.EventCompleted, "Lakers")

	n, err := f.settlement.ReconcileStale(context.Background(), 20*time.Minute)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "550", f.balance(t))
	pending, _, err := f.store.ListWagers(context.Background(), storage.WagerFilter{Status: models.WagerPending}, storage.Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "event-2", pending[0].EventId)
}
