package ledger_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chris/sportsbook-ledger/pkg/api"
	"github.com/chris/sportsbook-ledger/pkg/handlers/ledger"
	"github.com/chris/sportsbook-ledger/pkg/models"
	"github.com/chris/sportsbook-ledger/pkg/storage"
	"github.com/chris/sportsbook-ledger/pkg/storage/mocks"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func request(accountID, query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/accounts/"+accountID+"/transactions"+query, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", accountID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestListLedgerEntries(t *testing.T) {
	account := &models.Account{Id: "user-1", Wallet: models.Wallet{Balance: models.MoneyFromInt(80), Currency: "USD"}}

	t.Run("Success", func(t *testing.T) {
		mockStorage := mocks.NewStorage(t)
		expectedEntries := []models.Transaction{
			{Id: uuid.New().String(), AccountId: "user-1", Type: models.TxBetWon, Amount: models.MoneyFromInt(30), CreatedAt: time.Now()},
			{Id: uuid.New().String(), AccountId: "user-1", Type: models.TxBetPlaced, Amount: models.MoneyFromInt(-50), CreatedAt: time.Now().Add(-time.Minute)},
		}
		mockStorage.On("GetAccount", mock.Anything, "user-1").Return(account, nil)
		mockStorage.On("ListTransactions", mock.Anything,
			storage.TransactionFilter{AccountID: "user-1", Type: models.TxBetWon},
			storage.Page{Number: 1, Limit: 20}).Return(expectedEntries, 2, nil)

		h := ledger.NewLedgerHandler(mockStorage, zap.NewNop())
		rr := httptest.NewRecorder()

		h.ListLedgerEntries(rr, request("user-1", "?type=bet_won"))

		assert.Equal(t, http.StatusOK, rr.Code)
		var body api.List[models.Transaction]
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Len(t, body.Data, 2)
		assert.Equal(t, expectedEntries[0].Id, body.Data[0].Id)
		assert.Equal(t, 1, body.Pagination.Pages)
	})

	t.Run("Unknown Account", func(t *testing.T) {
		mockStorage := mocks.NewStorage(t)
		mockStorage.On("GetAccount", mock.Anything, "ghost").Return(nil, storage.ErrAccountNotFound)

		h := ledger.NewLedgerHandler(mockStorage, zap.NewNop())
		rr := httptest.NewRecorder()

		h.ListLedgerEntries(rr, request("ghost", ""))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockStorage := mocks.NewStorage(t)
		mockStorage.On("GetAccount", mock.Anything, "user-1").Return(account, nil)
		mockStorage.On("ListTransactions", mock.Anything, mock.Anything, mock.Anything).Return(nil, 0, errors.New("query failed"))

		h := ledger.NewLedgerHandler(mockStorage, zap.NewNop())
		rr := httptest.NewRecorder()

		h.ListLedgerEntries(rr, request("user-1", ""))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "failed to retrieve ledger entries")
	})

	t.Run("Invalid Limit", func(t *testing.T) {
		h := ledger.NewLedgerHandler(mocks.NewStorage(t), zap.NewNop())
		rr := httptest.NewRecorder()

		h.ListLedgerEntries(rr, request("user-1", "?limit=ten"))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
