package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chris/sportsbook-ledger/pkg/betting"
	"github.com/chris/sportsbook-ledger/pkg/catalog"
	"github.com/chris/sportsbook-ledger/pkg/eventbus"
	"github.com/chris/sportsbook-ledger/pkg/metrics"
	"github.com/chris/sportsbook-ledger/pkg/middleware"
	"github.com/chris/sportsbook-ledger/pkg/models"
	"github.com/chris/sportsbook-ledger/pkg/storage/memory"
	"github.com/chris/sportsbook-ledger/pkg/wallet"
	"github.com/chris/sportsbook-ledger/pkg/websockets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testAPI struct {
	handler http.Handler
	auth    *middleware.Authenticator
	store   *memory.Store
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	log := zap.NewNop()
	store := memory.New()
	ctx := context.Background()
	for _, a := range []models.Account{
		{Id: "user-1", Role: models.RoleUser, Wallet: models.Wallet{Balance: models.MoneyFromInt(500), Currency: "USD"}},
		{Id: "admin-1", Role: models.RoleAdmin, Wallet: models.Wallet{Balance: models.ZeroMoney, Currency: "USD"}},
	} {
		_, err := store.CreateAccount(ctx, &a)
		require.NoError(t, err)
	}
	_, err := store.CreateEvent(ctx, &models.Event{
		Id: "event-1", Title: "Lakers vs Celtics", League: "NBA", Time: "19:30", Status: models.EventUpcoming,
		Date:        time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
		Competitors: []models.Competitor{{Name: "Lakers", Odds: "2.20"}, {Name: "Celtics", Odds: "1.75"}},
	})
	require.NoError(t, err)

	m := metrics.NewNop()
	hub := websockets.NewHub(log)
	settlement := betting.NewSettlementService(store, nil, eventbus.NoOpPublisher{}, hub, m, log)
	auth := middleware.NewAuthenticator("test-secret")

	h := NewRouter(Dependencies{
		Store:          store,
		Placer:         betting.NewWagerService(store, nil, eventbus.NoOpPublisher{}, hub, m, log),
		Settler:        settlement,
		Wallet:         wallet.NewService(store, hub, m, log),
		Catalog:        catalog.NewService(store, settlement, log),
		Connections:    hub,
		Auth:           auth,
		SeedBalance:    models.MoneyFromInt(1000),
		Currency:       "USD",
		AllowedOrigins: []string{"*"},
		Log:            log,
	})
	return &testAPI{handler: h, auth: auth, store: store}
}

func (a *testAPI) do(t *testing.T, method, path, accountID string, role models.Role, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if accountID != "" {
		token, err := a.auth.Issue(accountID, role, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	return rr
}

func TestRoutesRequireToken(t *testing.T) {
	a := newTestAPI(t)

	for _, path := range []string{"/api/bets", "/api/wallet", "/api/accounts/user-1", "/api/accounts/stats/overview", "/ws"} {
		rr := a.do(t, http.MethodGet, path, "", "", "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}

	rr := a.do(t, http.MethodPost, "/api/events", "", "", `{}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCatalogReadsArePublic(t *testing.T) {
	a := newTestAPI(t)

	rr := a.do(t, http.MethodGet, "/api/events", "", "", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"total":1`)

	rr = a.do(t, http.MethodGet, "/api/events/event-1", "", "", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"Lakers vs Celtics"`)

	rr = a.do(t, http.MethodDelete, "/api/events/event-1", "", "", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAdminRoutes(t *testing.T) {
	a := newTestAPI(t)

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/bets/admin/all", ""},
		{http.MethodPut, "/api/bets/wager-1/settle", `{"status":"won"}`},
		{http.MethodPut, "/api/wallet/bonus/user-1", `{"amount":"10"}`},
		{http.MethodPost, "/api/events", `{}`},
		{http.MethodPut, "/api/events/event-1", `{}`},
		{http.MethodDelete, "/api/events/event-1", ""},
		{http.MethodPost, "/api/events/event-1/settle", ""},
		{http.MethodGet, "/api/accounts", ""},
		{http.MethodPost, "/api/accounts", `{}`},
		{http.MethodPut, "/api/accounts/user-1", `{"role":"admin"}`},
		{http.MethodDelete, "/api/accounts/user-1", ""},
		{http.MethodGet, "/api/accounts/user-1/transactions", ""},
	}
	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rr := a.do(t, tc.method, tc.path, "user-1", models.RoleUser, tc.body)
			assert.Equal(t, http.StatusForbidden, rr.Code)
		})
	}
}

func TestBetLifecycle(t *testing.T) {
	a := newTestAPI(t)

	rr := a.do(t, http.MethodPost, "/api/bets", "user-1", models.RoleUser,
		`{"eventId":"event-1","selection":"Lakers","odds":"2.20","stake":50}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var placed struct {
		Data   models.Wager  `json:"data"`
		Wallet models.Wallet `json:"wallet"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &placed))
	assert.Equal(t, "450", placed.Wallet.Balance.String())
	assert.Equal(t, "110", placed.Data.PotentialWinnings.String())

	rr = a.do(t, http.MethodGet, "/api/bets/"+placed.Data.Id, "user-1", models.RoleUser, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = a.do(t, http.MethodPut, "/api/events/event-1", "admin-1", models.RoleAdmin, `{
		"title":"Lakers vs Celtics","league":"NBA","date":"2024-06-02T00:00:00Z","time":"19:30",
		"competitors":[{"name":"Lakers","odds":"2.20"},{"name":"Celtics","odds":"1.75"}],
		"status":"completed","result":{"winner":"Lakers"}}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = a.do(t, http.MethodGet, "/api/wallet", "user-1", models.RoleUser, "")
	assert.JSONEq(t, `{"data":{"balance":"560","currency":"USD"}}`, rr.Body.String())

	rr = a.do(t, http.MethodGet, "/api/wallet/transactions", "user-1", models.RoleUser, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var ledger struct {
		Total int                  `json:"total"`
		Data  []models.Transaction `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ledger))
	require.Equal(t, 2, ledger.Total)
	assert.ElementsMatch(t,
		[]models.TransactionType{models.TxBetPlaced, models.TxBetWon},
		[]models.TransactionType{ledger.Data[0].Type, ledger.Data[1].Type})

	rr = a.do(t, http.MethodPut, "/api/bets/"+placed.Data.Id+"/settle", "admin-1", models.RoleAdmin, `{"status":"lost"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = a.do(t, http.MethodGet, "/api/accounts/user-1/transactions?type=bet_won", "admin-1", models.RoleAdmin, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"total":1`)

	rr = a.do(t, http.MethodPut, "/api/events/event-1", "admin-1", models.RoleAdmin, `{
		"title":"Lakers vs Celtics","league":"NBA","date":"2024-06-02T00:00:00Z","time":"19:30",
		"competitors":[{"name":"Lakers","odds":"2.20"},{"name":"Celtics","odds":"1.75"}],
		"status":"completed","result":{"winner":"Celtics"}}`)
	assert.Equal(t, http.StatusConflict, rr.Code, rr.Body.String())

	rr = a.do(t, http.MethodGet, "/api/accounts/stats/overview", "user-1", models.RoleUser, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"won_bets":1`)
	assert.Contains(t, rr.Body.String(), `"profit":"60"`)
}

func TestAccountRoutes(t *testing.T) {
	a := newTestAPI(t)

	rr := a.do(t, http.MethodPost, "/api/accounts", "admin-1", models.RoleAdmin, `{"id":"user-9","username":"newbie"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"balance":"1000"`)

	rr = a.do(t, http.MethodGet, "/api/accounts/user-9", "user-9", models.RoleUser, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = a.do(t, http.MethodGet, "/api/accounts/user-1", "user-9", models.RoleUser, "")
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestCORSPreflight(t *testing.T) {
	a := newTestAPI(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/bets", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Idempotency-Key")
	rr := httptest.NewRecorder()

	a.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}
