package wallets

import (
	"context"
	"errors"
	"net/http"

	"github.com/chris/sportsbook-ledger/pkg/api"
	"github.com/chris/sportsbook-ledger/pkg/middleware"
	"github.com/chris/sportsbook-ledger/pkg/models"
	"github.com/chris/sportsbook-ledger/pkg/wallet"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Wallet is the part of the wallet service the handlers call.
type Wallet interface {
	Balance(ctx context.Context, accountID string) (models.Wallet, error)
	Deposit(ctx context.Context, accountID string, amount models.Money, paymentMethod string) (*wallet.Result, error)
	Withdraw(ctx context.Context, accountID string, amount models.Money, withdrawalMethod string) (*wallet.Result, error)
	Bonus(ctx context.Context, accountID string, amount models.Money, reason string) (*wallet.Result, error)
}

// WalletsHandler holds the dependencies for wallet-related handlers.
type WalletsHandler struct {
	Wallet    Wallet
	log       *zap.Logger
	validator *validator.Validate
}

// NewWalletsHandler creates a new WalletsHandler.
func NewWalletsHandler(w Wallet, log *zap.Logger) *WalletsHandler {
	return &WalletsHandler{Wallet: w, log: log, validator: validator.New()}
}

// GetWallet handles GET /wallet.
func (h *WalletsHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFrom(r.Context())

	balance, err := h.Wallet.Balance(r.Context(), claims.Subject)
	if err != nil {
		h.log.Error("failed to get wallet", zap.String("op", "handlers.wallets.GetWallet"), zap.Error(err))
		api.RenderError(w, r, err, "failed to retrieve wallet")
		return
	}

	render.JSON(w, r, api.Data[models.Wallet]{Data: balance})
}

// Deposit handles POST /wallet/deposit.
func (h *WalletsHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFrom(r.Context())

	var req api.DepositRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.Wallet.Deposit(r.Context(), claims.Subject, req.Amount, req.PaymentMethod)
	h.respond(w, r, "handlers.wallets.Deposit", result, err)
}

// Withdraw handles POST /wallet/withdraw.
func (h *WalletsHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFrom(r.Context())

	var req api.WithdrawRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.Wallet.Withdraw(r.Context(), claims.Subject, req.Amount, req.WithdrawalMethod)
	h.respond(w, r, "handlers.wallets.Withdraw", result, err)
}

// Bonus handles PUT /wallet/bonus/{userId}.
func (h *WalletsHandler) Bonus(w http.ResponseWriter, r *http.Request) {
	var req api.BonusRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.Wallet.Bonus(r.Context(), chi.URLParam(r, "userId"), req.Amount, req.Reason)
	h.respond(w, r, "handlers.wallets.Bonus", result, err)
}

func (h *WalletsHandler) decode(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := render.DecodeJSON(r.Body, req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.Error("failed to decode request body", http.StatusBadRequest))
		return false
	}
	if err := h.validator.Struct(req); err != nil {
		var validateErr validator.ValidationErrors
		errors.As(err, &validateErr)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.ValidationError(validateErr))
		return false
	}
	return true
}

func (h *WalletsHandler) respond(w http.ResponseWriter, r *http.Request, op string, result *wallet.Result, err error) {
	if err != nil {
		h.log.Info("wallet operation rejected", zap.String("op", op), zap.String("request_id", middleware.RequestID(r)), zap.Error(err))
		api.RenderError(w, r, err, "failed to update wallet")
		return
	}
	render.JSON(w, r, api.Data[*wallet.Result]{Data: result})
}
