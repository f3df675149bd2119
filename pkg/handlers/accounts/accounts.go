package accounts

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/chris/sportsbook-ledger/pkg/api"
	"github.com/chris/sportsbook-ledger/pkg/middleware"
	"github.com/chris/sportsbook-ledger/pkg/models"
	"github.com/chris/sportsbook-ledger/pkg/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const defaultLimit = 10

// Store is what the account handlers read and write.
type Store interface {
	storage.AccountStore
	storage.WagerReader
	storage.TransactionReader
}

// AccountsHandler holds the dependencies for account-related handlers.
type AccountsHandler struct {
	Store       Store
	SeedBalance models.Money
	Currency    string
	log         *zap.Logger
	validator   *validator.Validate
	now         func() time.Time
}

// NewAccountsHandler creates a new AccountsHandler. New wallets start with seed in currency.
func NewAccountsHandler(store Store, seed models.Money, currency string, log *zap.Logger) *AccountsHandler {
	if currency == "" {
		currency = models.DefaultCurrency
	}
	return &AccountsHandler{
		Store:       store,
		SeedBalance: seed,
		Currency:    strings.ToUpper(currency),
		log:         log,
		validator:   validator.New(),
		now:         time.Now,
	}
}

// CreateAccount handles POST /accounts.
func (h *AccountsHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.accounts.CreateAccount"
	log := h.log.With(zap.String("op", op), zap.String("request_id", middleware.RequestID(r)))

	var req api.CreateAccountRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", zap.Error(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.Error("failed to decode request body", http.StatusBadRequest))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		var validateErr validator.ValidationErrors
		errors.As(err, &validateErr)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.ValidationError(validateErr))
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	now := h.now().UTC()
	account := &models.Account{
		Id:        req.ID,
		Username:  req.Username,
		Email:     req.Email,
		Role:      role,
		Wallet:    models.Wallet{Balance: h.SeedBalance, Currency: h.Currency},
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := h.Store.CreateAccount(r.Context(), account)
	if err != nil {
		log.Info("account rejected", zap.String("account_id", req.ID), zap.Error(err))
		api.RenderError(w, r, err, "failed to create account")
		return
	}

	log.Info("account created", zap.String("account_id", created.Id), zap.String("role", string(created.Role)))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, api.Data[*models.Account]{Data: created})
}

// ListAccounts handles GET /accounts?role&search&page&limit.
func (h *AccountsHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	params, err := api.BindListParams(r.URL.Query())
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.Error(err.Error(), http.StatusBadRequest))
		return
	}
	page := params.Page(defaultLimit)
	filter := params.AccountFilter()

	accounts, err := h.Store.ListAccounts(r.Context())
	if err != nil {
		h.log.Error("failed to list accounts", zap.String("op", "handlers.accounts.ListAccounts"), zap.Error(err))
		api.RenderError(w, r, err, "failed to retrieve accounts")
		return
	}

	matched := make([]models.Account, 0, len(accounts))
	for i := range accounts {
		if filter.Match(&accounts[i]) {
			matched = append(matched, accounts[i])
		}
	}
	render.JSON(w, r, api.NewList(storage.Slice(matched, page), len(matched), page))
}

// GetAccount handles GET /accounts/{id}. Bettors may only read their own account.
func (h *AccountsHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFrom(r.Context())
	accountID := chi.URLParam(r, "id")

	if accountID != claims.Subject && !claims.IsAdmin() {
		api.RenderError(w, r, api.ErrForbidden, "")
		return
	}

	account, err := h.Store.GetAccount(r.Context(), accountID)
	if err != nil {
		api.RenderError(w, r, err, "failed to retrieve account")
		return
	}
	wagers, err := h.wagerHistory(r.Context(), accountID)
	if err != nil {
		h.log.Error("failed to load wagers", zap.String("op", "handlers.accounts.GetAccount"), zap.String("account_id", accountID), zap.Error(err))
		api.RenderError(w, r, err, "failed to retrieve account")
		return
	}
	render.JSON(w, r, api.Data[api.AccountDetail]{Data: api.AccountDetail{Account: account, Stats: accountStats(wagers)}})
}

// UpdateAccount handles PUT /accounts/{id}. Only the role and the verification flag can change.
func (h *AccountsHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.accounts.UpdateAccount"
	log := h.log.With(zap.String("op", op), zap.String("request_id", middleware.RequestID(r)))
	accountID := chi.URLParam(r, "id")

	var req api.UpdateAccountRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", zap.Error(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.Error("failed to decode request body", http.StatusBadRequest))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		var validateErr validator.ValidationErrors
		errors.As(err, &validateErr)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.ValidationError(validateErr))
		return
	}

	updated, err := h.Store.UpdateAccount(r.Context(), accountID, storage.AccountUpdate{
		Role:       req.Role,
		IsVerified: req.IsVerified,
		UpdatedAt:  h.now().UTC(),
	})
	if err != nil {
		log.Info("account update rejected", zap.String("account_id", accountID), zap.Error(err))
		api.RenderError(w, r, err, "failed to update account")
		return
	}

	log.Info("account updated", zap.String("account_id", accountID), zap.String("role", string(updated.Role)), zap.Bool("verified", updated.IsVerified))
	render.JSON(w, r, api.Data[*models.Account]{Data: updated})
}

// Overview handles GET /accounts/stats/overview for the calling account.
func (h *AccountsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.accounts.Overview"
	claims, _ := middleware.ClaimsFrom(r.Context())
	log := h.log.With(zap.String("op", op), zap.String("account_id", claims.Subject))

	wagers, err := h.wagerHistory(r.Context(), claims.Subject)
	if err != nil {
		log.Error("failed to load wagers", zap.Error(err))
		api.RenderError(w, r, err, "failed to retrieve stats")
		return
	}
	recentTx, _, err := h.Store.ListTransactions(r.Context(),
		storage.TransactionFilter{AccountID: claims.Subject},
		storage.Page{Number: 1, Limit: recentLimit})
	if err != nil {
		log.Error("failed to load transactions", zap.Error(err))
		api.RenderError(w, r, err, "failed to retrieve stats")
		return
	}

	overview := api.StatsOverview{
		BettingStats:   bettingStats(wagers),
		FinancialStats: financialStats(accountStats(wagers)),
		RecentActivity: api.RecentActivity{
			Bets:         storage.Slice(wagers, storage.Page{Number: 1, Limit: recentLimit}),
			Transactions: recentTx,
		},
	}
	render.JSON(w, r, api.Data[api.StatsOverview]{Data: overview})
}

// DeleteAccount handles DELETE /accounts/{id}.
func (h *AccountsHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")

	if err := h.Store.DeleteAccount(r.Context(), accountID); err != nil {
		api.RenderError(w, r, err, "failed to delete account")
		return
	}
	h.log.Info("account deleted", zap.String("account_id", accountID))
	render.NoContent(w, r)
}
