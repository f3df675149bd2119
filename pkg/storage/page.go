package storage

import (
	"strings"

	"github.com/chris/sportsbook-ledger/pkg/models"
)

// Page selects a 1-based page of a result set.
type Page struct {
	Number int
	Limit  int
}

// Normalize fills in defaults for missing or out-of-range values.
func (p Page) Normalize(defaultLimit int) Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	return p
}

// Slice returns the window of items selected by p.
func Slice[T any](items []T, p Page) []T {
	start := (p.Number - 1) * p.Limit
	if start >= len(items) {
		return []T{}
	}
	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// WagerFilter narrows wager listings. Empty fields match everything.
type WagerFilter struct {
	AccountID string
	EventID   string
	Status    models.WagerStatus
}

// Match reports whether w passes the filter.
func (f WagerFilter) Match(w *models.Wager) bool {
	return (f.AccountID == "" || w.AccountId == f.AccountID) &&
		(f.EventID == "" || w.EventId == f.EventID) &&
		(f.Status == "" || w.Status == f.Status)
}

// TransactionFilter narrows ledger listings. AccountID is required.
type TransactionFilter struct {
	AccountID string
	Type      models.TransactionType
	Status    models.TransactionStatus
}

// Match reports whether tx passes the filter.
func (f TransactionFilter) Match(tx *models.Transaction) bool {
	return tx.AccountId == f.AccountID &&
		(f.Type == "" || tx.Type == f.Type) &&
		(f.Status == "" || tx.Status == f.Status)
}

// EventFilter narrows catalog listings.
type EventFilter struct {
	League   string
	Status   models.EventStatus
	Featured bool
	Popular  bool
}

// Match reports whether e passes the filter.
func (f EventFilter) Match(e *models.Event) bool {
	return (f.League == "" || e.League == f.League) &&
		(f.Status == "" || e.Status == f.Status) &&
		(!f.Featured || e.IsFeatured) &&
		(!f.Popular || e.IsPopular)
}

// AccountFilter narrows account listings. Search matches the id, username or email
// case-insensitively.
type AccountFilter struct {
	Role   models.Role
	Search string
}

// Match reports whether a passes the filter.
func (f AccountFilter) Match(a *models.Account) bool {
	if f.Role != "" && a.Role != f.Role {
		return false
	}
	if f.Search == "" {
		return true
	}
	needle := strings.ToLower(f.Search)
	for _, field := range []string{a.Id, a.Username, a.Email} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
