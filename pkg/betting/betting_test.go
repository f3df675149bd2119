package betting

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/chris/sportsbook-ledger/pkg/eventbus"
	"github.com/chris/sportsbook-ledger/pkg/metrics"
	"github.com/chris/sportsbook-ledger/pkg/models"
	"github.com/chris/sportsbook-ledger/pkg/storage"
	"github.com/chris/sportsbook-ledger/pkg/storage/memory"
	"github.com/chris/sportsbook-ledger/pkg/websockets"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type recordingEvents struct {
	mu      sync.Mutex
	placed  []eventbus.WagerPlaced
	settled []eventbus.WagerSettled
}

func (r *recordingEvents) PublishWagerPlaced(_ context.Context, e eventbus.WagerPlaced) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.placed = append(r.placed, e)
	return nil
}

func (r *recordingEvents) PublishWagerSettled(_ context.Context, e eventbus.WagerSettled) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settled = append(r.settled, e)
	return nil
}

// fakeKeys mimics the Redis keeper with a map.
type fakeKeys struct {
	mu       sync.Mutex
	held     map[string]string
	released []string
}

func newFakeKeys() *fakeKeys {
	return &fakeKeys{held: make(map[string]string)}
}

func (f *fakeKeys) Reserve(_ context.Context, accountID, key, wagerID string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := accountID + ":" + key
	if existing, ok := f.held[k]; ok {
		return existing, false, nil
	}
	f.held[k] = wagerID
	return wagerID, true, nil
}

func (f *fakeKeys) Release(_ context.Context, accountID, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.held, accountID+":"+key)
	f.released = append(f.released, key)
	return nil
}

type fixture struct {
	store      *memory.Store
	keys       *fakeKeys
	events     *recordingEvents
	publisher  *websockets.RecordingPublisher
	metrics    *metrics.Metrics
	wagers     *WagerService
	settlement *SettlementService
}

func newFixture(t *testing.T, balance int64) *fixture {
	t.Helper()

	f := &fixture{
		store:     memory.New(),
		keys:      newFakeKeys(),
		events:    &recordingEvents{},
		publisher: &websockets.RecordingPublisher{},
		metrics:   metrics.NewNop(),
	}
	ctx := context.Background()

	_, err := f.store.CreateAccount(ctx, &models.Account{
		Id:     "user-1",
		Role:   models.RoleUser,
		Wallet: models.Wallet{Balance: models.MoneyFromInt(balance), Currency: "USD"},
	})
	require.NoError(t, err)

	_, err = f.store.CreateEvent(ctx, &models.Event{
		Id:     "event-1",
		Title:  "Lakers vs Celtics",
		League: "NBA",
		Date:   fixedNow.Add(24 * time.Hour),
		Time:   "19:30",
		Competitors: []models.Competitor{
			{Name: "Lakers", Odds: "2.20"},
			{Name: "Celtics", Odds: "1.75"},
		},
		Status: models.EventUpcoming,
	})
	require.NoError(t, err)

	f.wagers = NewWagerService(f.store, f.keys, f.events, f.publisher, f.metrics, zap.NewNop())
	f.wagers.now = func() time.Time { return fixedNow }
	f.settlement = NewSettlementService(f.store, nil, f.events, f.publisher, f.metrics, zap.NewNop())
	f.settlement.now = func() time.Time { return fixedNow.Add(3 * time.Hour) }
	return f
}

func (f *fixture) balance(t *testing.T) string {
	t.Helper()
	account, err := f.store.GetAccount(context.Background(), "user-1")
	require.NoError(t, err)
	return account.Wallet.Balance.String()
}

func (f *fixture) ledger(t *testing.T) []models.Transaction {
	t.Helper()
	txs, _, err := f.store.ListTransactions(context.Background(), storage.TransactionFilter{AccountID: "user-1"}, storage.Page{Number: 1, Limit: 100})
	require.NoError(t, err)
	return txs
}

func (f *fixture) setEventStatus(t *testing.T, status models.EventStatus, winner string) {
	t.Helper()
	event, err := f.store.GetEvent(context.Background(), "event-1")
	require.NoError(t, err)
	event.Status = status
	if winner != "" {
		event.Result = &models.EventResult{Winner: winner}
	}
	_, err = f.store.UpdateEvent(context.Background(), event)
	require.NoError(t, err)
}

func (f *fixture) place(t *testing.T, selection, odds string, stake int64) *models.Wager {
	t.Helper()
	p, err := f.wagers.PlaceWager(context.Background(), PlaceWagerInput{
		AccountID: "user-1",
		EventID:   "event-1",
		Selection: selection,
		Odds:      odds,
		Stake:     models.MoneyFromInt(stake),
	})
	require.NoError(t, err)
	return p.Wager
}

func money(t *testing.T, s string) *models.Money {
	t.Helper()
	m, err := models.ParseMoney(s)
	require.NoError(t, err, fmt.Sprintf("parse %q", s))
	return &m
}
