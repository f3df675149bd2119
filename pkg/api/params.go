package api

import (
	"fmt"
	"net/url"

	"github.com/chris/sportsbook-ledger/pkg/models"
	"github.com/chris/sportsbook-ledger/pkg/storage"
	"github.com/oapi-codegen/runtime"
)

// ListParams are the query parameters shared by the list endpoints.
type ListParams struct {
	PageNumber *int    `form:"page"`
	Limit      *int    `form:"limit"`
	Status     *string `form:"status"`
	Type       *string `form:"type"`
	League     *string `form:"league"`
	User       *string `form:"user"`
	Event      *string `form:"event"`
	Role       *string `form:"role"`
	Search     *string `form:"search"`

	Featured *bool `form:"featured"`
	Popular  *bool `form:"popular"`
}

// BindListParams reads the optional list parameters from the query string.
func BindListParams(query url.Values) (ListParams, error) {
	var p ListParams
	bindings := []struct {
		name string
		dest any
	}{
		{"page", &p.PageNumber},
		{"limit", &p.Limit},
		{"status", &p.Status},
		{"type", &p.Type},
		{"league", &p.League},
		{"user", &p.User},
		{"event", &p.Event},
		{"role", &p.Role},
		{"search", &p.Search},
		{"featured", &p.Featured},
		{"popular", &p.Popular},
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", true, false, b.name, query, b.dest); err != nil {
			return ListParams{}, fmt.Errorf("invalid format for parameter %s: %w", b.name, err)
		}
	}
	return p, nil
}

// Page returns the requested page, falling back to defaultLimit.
func (p ListParams) Page(defaultLimit int) storage.Page {
	page := storage.Page{}
	if p.PageNumber != nil {
		page.Number = *p.PageNumber
	}
	if p.Limit != nil {
		page.Limit = *p.Limit
	}
	return page.Normalize(defaultLimit)
}

func deref[T ~string](v *string) T {
	if v == nil {
		return ""
	}
	return T(*v)
}

func derefBool(v *bool) bool {
	return v != nil && *v
}

// WagerFilter returns the wager filter the parameters describe.
func (p ListParams) WagerFilter() storage.WagerFilter {
	return storage.WagerFilter{
		AccountID: deref[string](p.User),
		EventID:   deref[string](p.Event),
		Status:    deref[models.WagerStatus](p.Status),
	}
}

// TransactionFilter returns the ledger filter for accountID.
func (p ListParams) TransactionFilter(accountID string) storage.TransactionFilter {
	return storage.TransactionFilter{
		AccountID: accountID,
		Type:      deref[models.TransactionType](p.Type),
		Status:    deref[models.TransactionStatus](p.Status),
	}
}

// EventFilter returns the catalog filter the parameters describe.
func (p ListParams) EventFilter() storage.EventFilter {
	return storage.EventFilter{
		League:   deref[string](p.League),
		Status:   deref[models.EventStatus](p.Status),
		Featured: derefBool(p.Featured),
		Popular:  derefBool(p.Popular),
	}
}

// AccountFilter returns the account filter the parameters describe.
func (p ListParams) AccountFilter() storage.AccountFilter {
	return storage.AccountFilter{
		Role:   deref[models.Role](p.Role),
		Search: deref[string](p.Search),
	}
}
