package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/chris/sportsbook-ledger/pkg/betting"
	"github.com/chris/sportsbook-ledger/pkg/catalog"
	"github.com/chris/sportsbook-ledger/pkg/models"
	"github.com/chris/sportsbook-ledger/pkg/storage"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("account x: %w", storage.ErrInsufficientFunds), http.StatusBadRequest},
		{storage.ErrEventClosed, http.StatusBadRequest},
		{storage.ErrAlreadySettled, http.StatusBadRequest},
		{betting.ErrInvalidStake, http.StatusBadRequest},
		{catalog.ErrInvalidEvent, http.StatusBadRequest},
		{fmt.Errorf("event 1: %w", storage.ErrEventNotFound), http.StatusNotFound},
		{storage.ErrWagerNotFound, http.StatusNotFound},
		{&betting.OddsChangedError{Selection: "A", Requested: "2", Current: "3"}, http.StatusConflict},
		{betting.ErrRequestInProgress, http.StatusConflict},
		{storage.ErrAccountExists, http.StatusConflict},
		{ErrForbidden, http.StatusForbidden},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFor(tc.err), tc.err.Error())
	}
}

func TestNewList(t *testing.T) {
	list := NewList([]int{1, 2}, 5, storage.Page{Number: 1, Limit: 2})

	assert.Equal(t, 2, list.Count)
	assert.Equal(t, 5, list.Total)
	assert.Equal(t, Pagination{Page: 1, Limit: 2, Pages: 3}, list.Pagination)

	empty := NewList[int](nil, 0, storage.Page{Number: 1, Limit: 10})
	assert.NotNil(t, empty.Data)
	assert.Equal(t, 0, empty.Pagination.Pages)
}

func TestBindListParams(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		p, err := BindListParams(url.Values{})

		require.NoError(t, err)
		assert.Equal(t, storage.Page{Number: 1, Limit: 10}, p.Page(10))
		assert.Equal(t, storage.WagerFilter{}, p.WagerFilter())
	})

	t.Run("Values", func(t *testing.T) {
		p, err := BindListParams(url.Values{
			"page": {"2"}, "limit": {"5"}, "status": {"pending"}, "user": {"user-1"},
			"league": {"NBA"}, "featured": {"true"},
		})

		require.NoError(t, err)
		assert.Equal(t, storage.Page{Number: 2, Limit: 5}, p.Page(10))
		assert.Equal(t, storage.WagerFilter{AccountID: "user-1", Status: models.WagerPending}, p.WagerFilter())
		assert.Equal(t, storage.EventFilter{League: "NBA", Status: "pending", Featured: true}, p.EventFilter())
	})

	t.Run("Account Filter", func(t *testing.T) {
		p, err := BindListParams(url.Values{"role": {"admin"}, "search": {"Ops"}})

		require.NoError(t, err)
		filter := p.AccountFilter()
		assert.Equal(t, storage.AccountFilter{Role: models.RoleAdmin, Search: "Ops"}, filter)
		assert.True(t, filter.Match(&models.Account{Role: models.RoleAdmin, Email: "ops@example.com"}))
		assert.False(t, filter.Match(&models.Account{Role: models.RoleUser, Email: "ops@example.com"}))
		assert.False(t, filter.Match(&models.Account{Role: models.RoleAdmin, Username: "root"}))
	})

	t.Run("Bad Integer", func(t *testing.T) {
		_, err := BindListParams(url.Values{"page": {"first"}})

		assert.ErrorContains(t, err, "invalid format for parameter page")
	})
}

func TestValidationError(t *testing.T) {
	err := validator.New().Struct(SettleBetRequest{Status: "pending"})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))

	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "field Status must be one of won lost canceled void cashout", resp.Error)
}
