// Package handlers assembles the HTTP API from the per-resource handlers.
package handlers

import (
	"net/http"

	"github.com/chris/sportsbook-ledger/pkg/handlers/accounts"
	"github.com/chris/sportsbook-ledger/pkg/handlers/bets"
	"github.com/chris/sportsbook-ledger/pkg/handlers/events"
	"github.com/chris/sportsbook-ledger/pkg/handlers/ledger"
	"github.com/chris/sportsbook-ledger/pkg/handlers/transactions"
	"github.com/chris/sportsbook-ledger/pkg/handlers/wallets"
	ws "github.com/chris/sportsbook-ledger/pkg/handlers/websockets"
	"github.com/chris/sportsbook-ledger/pkg/middleware"
	"github.com/chris/sportsbook-ledger/pkg/models"
	"github.com/chris/sportsbook-ledger/pkg/storage"
	"github.com/chris/sportsbook-ledger/pkg/websockets"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Dependencies are the services the API is built from.
type Dependencies struct {
	Store       storage.ApiStore
	Placer      bets.Placer
	Settler     bets.Settler
	Wallet      wallets.Wallet
	Catalog     events.Catalog
	Connections websockets.ConnectionManager
	Auth        *middleware.Authenticator

	SeedBalance    models.Money
	Currency       string
	AllowedOrigins []string
	Log            *zap.Logger
}

// NewRouter builds the API router. Every route below /api except the catalog reads
// requires a bearer token.
func NewRouter(d Dependencies) http.Handler {
	betsHandler := bets.NewBetsHandler(d.Store, d.Placer, d.Settler, d.Log)
	walletsHandler := wallets.NewWalletsHandler(d.Wallet, d.Log)
	txHandler := transactions.NewTransactionsHandler(d.Store, d.Log)
	ledgerHandler := ledger.NewLedgerHandler(d.Store, d.Log)
	eventsHandler := events.NewEventsHandler(d.Catalog, d.Log)
	accountsHandler := accounts.NewAccountsHandler(d.Store, d.SeedBalance, d.Currency, d.Log)
	wsHandler := ws.NewHandler(d.Connections, d.AllowedOrigins, d.Log)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.NewStructuredLogger(d.Log))
	r.Use(chimw.Recoverer)

	r.Route("/api", func(r chi.Router) {
		// The catalog is readable before login.
		r.Get("/events", eventsHandler.ListEvents)
		r.Get("/events/{id}", eventsHandler.GetEvent)

		r.Group(func(r chi.Router) {
			r.Use(d.Auth.Authenticate)

			r.Route("/bets", func(r chi.Router) {
				r.Post("/", betsHandler.PlaceBet)
				r.Get("/", betsHandler.ListBets)
				r.With(middleware.RequireRole(models.RoleAdmin)).Get("/admin/all", betsHandler.ListAllBets)
				r.Get("/{id}", betsHandler.GetBet)
				r.With(middleware.RequireRole(models.RoleAdmin)).Put("/{id}/settle", betsHandler.SettleBet)
			})

			r.Route("/wallet", func(r chi.Router) {
				r.Get("/", walletsHandler.GetWallet)
				r.Post("/deposit", walletsHandler.Deposit)
				r.Post("/withdraw", walletsHandler.Withdraw)
				r.Get("/transactions", txHandler.ListTransactions)
				r.With(middleware.RequireRole(models.RoleAdmin)).Put("/bonus/{userId}", walletsHandler.Bonus)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin))
				r.Post("/events", eventsHandler.CreateEvent)
				r.Put("/events/{id}", eventsHandler.UpdateEvent)
				r.Delete("/events/{id}", eventsHandler.DeleteEvent)
				r.Post("/events/{id}/settle", eventsHandler.SettleEvent)
			})

			r.Route("/accounts", func(r chi.Router) {
				r.Get("/stats/overview", accountsHandler.Overview)
				r.Get("/{id}", accountsHandler.GetAccount)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(models.RoleAdmin))
					r.Get("/", accountsHandler.ListAccounts)
					r.Post("/", accountsHandler.CreateAccount)
					r.Put("/{id}", accountsHandler.UpdateAccount)
					r.Delete("/{id}", accountsHandler.DeleteAccount)
					r.Get("/{id}/transactions", ledgerHandler.ListLedgerEntries)
				})
			})
		})
	})

	r.With(d.Auth.Authenticate).Get("/ws", wsHandler.ServeHTTP)

	c := cors.New(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Idempotency-Key"},
		AllowCredentials: true,
	})
	return c.Handler(r)
}
