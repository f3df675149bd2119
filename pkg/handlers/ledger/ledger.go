package ledger

import (
	"context"
	"net/http"

	"github.com/chris/sportsbook-ledger/pkg/api"
	"github.com/chris/sportsbook-ledger/pkg/models"
	"github.com/chris/sportsbook-ledger/pkg/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

const defaultLimit = 20

// Store is the data the ledger audit reads.
type Store interface {
	GetAccount(ctx context.Context, accountID string) (*models.Account, error)
	storage.TransactionReader
}

// LedgerHandler lets operators audit the ledger of any account.
type LedgerHandler struct {
	Store Store
	log   *zap.Logger
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(store Store, log *zap.Logger) *LedgerHandler {
	return &LedgerHandler{Store: store, log: log}
}

// ListLedgerEntries handles GET /accounts/{id}/transactions.
func (h *LedgerHandler) ListLedgerEntries(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")

	params, err := api.BindListParams(r.URL.Query())
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.Error(err.Error(), http.StatusBadRequest))
		return
	}

	if _, err := h.Store.GetAccount(r.Context(), accountID); err != nil {
		api.RenderError(w, r, err, "failed to retrieve account")
		return
	}

	page := params.Page(defaultLimit)
	entries, total, err := h.Store.ListTransactions(r.Context(), params.TransactionFilter(accountID), page)
	if err != nil {
		h.log.Error("failed to list ledger entries", zap.String("op", "handlers.ledger.ListLedgerEntries"), zap.String("account_id", accountID), zap.Error(err))
		api.RenderError(w, r, err, "failed to retrieve ledger entries")
		return
	}

	render.JSON(w, r, api.NewList(entries, total, page))
}
