package transactions

import (
	"net/http"

	"github.com/chris/sportsbook-ledger/pkg/api"
	"github.com/chris/sportsbook-ledger/pkg/middleware"
	"github.com/chris/sportsbook-ledger/pkg/storage"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

const defaultLimit = 10

// TransactionsHandler serves the caller's own ledger.
type TransactionsHandler struct {
	Store storage.TransactionReader
	log   *zap.Logger
}

// NewTransactionsHandler creates a new TransactionsHandler.
func NewTransactionsHandler(store storage.TransactionReader, log *zap.Logger) *TransactionsHandler {
	return &TransactionsHandler{Store: store, log: log}
}

// ListTransactions handles GET /wallet/transactions?type&status&page&limit.
func (h *TransactionsHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFrom(r.Context())

	params, err := api.BindListParams(r.URL.Query())
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.Error(err.Error(), http.StatusBadRequest))
		return
	}
	page := params.Page(defaultLimit)

	txs, total, err := h.Store.ListTransactions(r.Context(), params.TransactionFilter(claims.Subject), page)
	if err != nil {
		h.log.Error("failed to list transactions", zap.String("op", "handlers.transactions.ListTransactions"), zap.Error(err))
		api.RenderError(w, r, err, "failed to retrieve transactions")
		return
	}

	render.JSON(w, r, api.NewList(txs, total, page))
}
