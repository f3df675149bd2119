// Package memory provides an in-process Storage used for local development and tests.
// Every write that touches more than one record happens under a single lock, so it
// has the same all-or-nothing behaviour as the DynamoDB transactions.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/chris/sportsbook-ledger/pkg/models"
	"github.com/chris/sportsbook-ledger/pkg/storage"
)

// Store implements storage.Storage on top of maps.
type Store struct {
	mu           sync.RWMutex
	accounts     map[string]models.Account
	events       map[string]models.Event
	wagers       map[string]models.Wager
	transactions []models.Transaction
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		accounts: make(map[string]models.Account),
		events:   make(map[string]models.Event),
		wagers:   make(map[string]models.Wager),
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

func (s *Store) GetAccount(_ context.Context, accountID string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", accountID, storage.ErrAccountNotFound)
	}
	return &account, nil
}

func (s *Store) CreateAccount(_ context.Context, account *models.Account) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[account.Id]; ok {
		return nil, fmt.Errorf("account %s: %w", account.Id, storage.ErrAccountExists)
	}
	s.accounts[account.Id] = *account
	created := *account
	return &created, nil
}

func (s *Store) DeleteAccount(_ context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[accountID]; !ok {
		return fmt.Errorf("account %s: %w", accountID, storage.ErrAccountNotFound)
	}
	delete(s.accounts, accountID)
	return nil
}

func (s *Store) ListAccounts(_ context.Context) ([]models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]models.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		accounts = append(accounts, a)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].CreatedAt.After(accounts[j].CreatedAt)
	})
	return accounts, nil
}

func (s *Store) UpdateAccount(_ context.Context, accountID string, update storage.AccountUpdate) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", accountID, storage.ErrAccountNotFound)
	}
	update.Apply(&account)
	s.accounts[accountID] = account
	return &account, nil
}

func (s *Store) GetEvent(_ context.Context, eventID string) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	event, ok := s.events[eventID]
	if !ok {
		return nil, fmt.Errorf("event %s: %w", eventID, storage.ErrEventNotFound)
	}
	return copyEvent(event), nil
}

func (s *Store) CreateEvent(_ context.Context, event *models.Event) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[event.Id]; ok {
		return nil, fmt.Errorf("event %s already exists", event.Id)
	}
	s.events[event.Id] = *copyEvent(*event)
	return copyEvent(*event), nil
}

func (s *Store) UpdateEvent(_ context.Context, event *models.Event) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[event.Id]; !ok {
		return nil, fmt.Errorf("event %s: %w", event.Id, storage.ErrEventNotFound)
	}
	s.events[event.Id] = *copyEvent(*event)
	return copyEvent(*event), nil
}

func (s *Store) DeleteEvent(_ context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[eventID]; !ok {
		return fmt.Errorf("event %s: %w", eventID, storage.ErrEventNotFound)
	}
	delete(s.events, eventID)
	return nil
}

func (s *Store) ListEvents(_ context.Context, filter storage.EventFilter, page storage.Page) ([]models.Event, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.Event, 0, len(s.events))
	for _, e := range s.events {
		if filter.Match(&e) {
			matched = append(matched, *copyEvent(e))
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Id < matched[j].Id
		}
		return matched[i].Date.Before(matched[j].Date)
	})
	return storage.Slice(matched, page), len(matched), nil
}

func (s *Store) GetWager(_ context.Context, wagerID string) (*models.Wager, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wager, ok := s.wagers[wagerID]
	if !ok {
		return nil, fmt.Errorf("wager %s: %w", wagerID, storage.ErrWagerNotFound)
	}
	return &wager, nil
}

func (s *Store) ListWagers(_ context.Context, filter storage.WagerFilter, page storage.Page) ([]models.Wager, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.Wager, 0)
	for _, w := range s.wagers {
		if filter.Match(&w) {
			matched = append(matched, w)
		}
	}
	sortNewestFirst(matched)
	return storage.Slice(matched, page), len(matched), nil
}

func (s *Store) ListPendingWagersByEvent(_ context.Context, eventID string) ([]models.Wager, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pending []models.Wager
	for _, w := range s.wagers {
		if w.EventId == eventID && w.Status == models.WagerPending {
			pending = append(pending, w)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	return pending, nil
}

func (s *Store) GetStalePendingWagers(_ context.Context, maxAge time.Duration) ([]models.Wager, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := time.Now().UTC().Add(-maxAge)
	var stale []models.Wager
	for _, w := range s.wagers {
		if w.Status == models.WagerPending && w.CreatedAt.Before(cutoff) {
			stale = append(stale, w)
		}
	}
	return stale, nil
}

func (s *Store) PlaceWager(_ context.Context, wager *models.Wager, entry *models.Transaction) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[wager.EventId]
	if !ok || !event.Status.AcceptsWagers() {
		return nil, fmt.Errorf("event %s: %w", wager.EventId, storage.ErrEventClosed)
	}
	account, ok := s.accounts[wager.AccountId]
	if !ok || account.Wallet.Balance.LessThan(wager.Stake.Decimal) {
		return nil, fmt.Errorf("account %s: %w", wager.AccountId, storage.ErrInsufficientFunds)
	}
	if _, ok := s.wagers[wager.Id]; ok {
		return nil, fmt.Errorf("wager %s already exists", wager.Id)
	}

	account.Wallet.Balance = account.Wallet.Balance.Minus(wager.Stake)
	account.Version++
	account.UpdatedAt = wager.CreatedAt
	s.accounts[account.Id] = account
	s.wagers[wager.Id] = *wager
	s.transactions = append(s.transactions, *entry)

	return &account, nil
}

func (s *Store) SettleWager(_ context.Context, settlement *models.Settlement) (*models.Wager, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wager, ok := s.wagers[settlement.Wager.Id]
	if !ok || wager.Status != models.WagerPending {
		return nil, fmt.Errorf("wager %s: %w", settlement.Wager.Id, storage.ErrAlreadySettled)
	}

	if settlement.Amount.IsPositive() {
		account, ok := s.accounts[wager.AccountId]
		if !ok {
			return nil, fmt.Errorf("account %s: %w", wager.AccountId, storage.ErrAccountNotFound)
		}
		account.Wallet.Balance = account.Wallet.Balance.Plus(settlement.Amount)
		account.Version++
		account.UpdatedAt = settlement.SettledAt
		s.accounts[account.Id] = account
	}

	settledAt := settlement.SettledAt
	wager.Status = settlement.Status
	wager.Result = settlement.Result
	wager.SettledAmount = settlement.Amount
	wager.SettledAt = &settledAt
	wager.UpdatedAt = settledAt
	s.wagers[wager.Id] = wager
	s.transactions = append(s.transactions, *settlement.Transaction)

	return &wager, nil
}

func (s *Store) ApplyWalletEntry(_ context.Context, accountID string, entry *models.Transaction) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", accountID, storage.ErrAccountNotFound)
	}
	balance := account.Wallet.Balance.Plus(entry.Amount)
	if balance.IsNegative() {
		return nil, fmt.Errorf("account %s: %w", accountID, storage.ErrInsufficientFunds)
	}

	account.Wallet.Balance = balance
	account.Version++
	account.UpdatedAt = entry.CreatedAt
	s.accounts[accountID] = account
	s.transactions = append(s.transactions, *entry)

	return &account, nil
}

func (s *Store) ListTransactions(_ context.Context, filter storage.TransactionFilter, page storage.Page) ([]models.Transaction, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.Transaction, 0)
	// Walk backwards so entries written in the same instant keep newest-first order.
	for i := len(s.transactions) - 1; i >= 0; i-- {
		if filter.Match(&s.transactions[i]) {
			matched = append(matched, s.transactions[i])
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return storage.Slice(matched, page), len(matched), nil
}

func copyEvent(e models.Event) *models.Event {
	e.Competitors = append([]models.Competitor(nil), e.Competitors...)
	if e.Result != nil {
		result := *e.Result
		e.Result = &result
	}
	return &e
}

func sortNewestFirst(wagers []models.Wager) {
	sort.SliceStable(wagers, func(i, j int) bool {
		if wagers[i].CreatedAt.Equal(wagers[j].CreatedAt) {
			return wagers[i].Id > wagers[j].Id
		}
		return wagers[i].CreatedAt.After(wagers[j].CreatedAt)
	})
}
