package bets

import (
	"context"
	"errors"
	"net/http"

	"github.com/chris/sportsbook-ledger/pkg/api"
	"github.com/chris/sportsbook-ledger/pkg/betting"
	"github.com/chris/sportsbook-ledger/pkg/middleware"
	"github.com/chris/sportsbook-ledger/pkg/models"
	"github.com/chris/sportsbook-ledger/pkg/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	defaultLimit      = 10
	defaultAdminLimit = 20
)

// Placer accepts new wagers.
type Placer interface {
	PlaceWager(ctx context.Context, in betting.PlaceWagerInput) (*betting.Placement, error)
}

// Settler resolves a pending wager.
type Settler interface {
	SettleWager(ctx context.Context, cmd models.SettlementCommand) (*models.Wager, error)
}

// BetsHandler holds the dependencies for bet-related handlers.
type BetsHandler struct {
	Store     storage.WagerReader
	Placer    Placer
	Settler   Settler
	log       *zap.Logger
	validator *validator.Validate
}

// NewBetsHandler creates a new BetsHandler.
func NewBetsHandler(store storage.WagerReader, placer Placer, settler Settler, log *zap.Logger) *BetsHandler {
	return &BetsHandler{Store: store, Placer: placer, Settler: settler, log: log, validator: validator.New()}
}

// PlaceBet handles POST /bets.
func (h *BetsHandler) PlaceBet(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.bets.PlaceBet"
	log := h.log.With(zap.String("op", op), zap.String("request_id", middleware.RequestID(r)))

	claims, _ := middleware.ClaimsFrom(r.Context())

	var req api.PlaceBetRequest
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

	placement, err := h.Placer.PlaceWager(r.Context(), betting.PlaceWagerInput{
		AccountID:      claims.Subject,
		EventID:        req.EventID,
		Selection:      req.Selection,
		Odds:           req.Odds,
		Stake:          req.Stake,
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
	})
	if err != nil {
		log.Info("wager rejected", zap.String("account_id", claims.Subject), zap.Error(err))
		api.RenderError(w, r, err, "failed to place bet")
		return
	}

	status := http.StatusCreated
	if placement.Replayed {
		status = http.StatusOK
	}
	render.Status(r, status)
	render.JSON(w, r, api.PlaceBetResponse{Data: placement.Wager, Wallet: placement.Wallet})
}

// ListBets handles GET /bets for the caller's own wagers.
func (h *BetsHandler) ListBets(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFrom(r.Context())

	params, err := api.BindListParams(r.URL.Query())
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.Error(err.Error(), http.StatusBadRequest))
		return
	}

	filter := storage.WagerFilter{AccountID: claims.Subject, Status: params.WagerFilter().Status}
	h.list(w, r, filter, params.Page(defaultLimit))
}

// ListAllBets handles GET /bets/admin/all.
func (h *BetsHandler) ListAllBets(w http.ResponseWriter, r *http.Request) {
	params, err := api.BindListParams(r.URL.Query())
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.Error(err.Error(), http.StatusBadRequest))
		return
	}

	h.list(w, r, params.WagerFilter(), params.Page(defaultAdminLimit))
}

func (h *BetsHandler) list(w http.ResponseWriter, r *http.Request, filter storage.WagerFilter, page storage.Page) {
	wagers, total, err := h.Store.ListWagers(r.Context(), filter, page)
	if err != nil {
		h.log.Error("failed to list wagers", zap.String("op", "handlers.bets.list"), zap.Error(err))
		api.RenderError(w, r, err, "failed to retrieve bets")
		return
	}

	render.JSON(w, r, api.NewList(wagers, total, page))
}

// GetBet handles GET /bets/{id}. Only the owner or an admin may read a wager.
func (h *BetsHandler) GetBet(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFrom(r.Context())

	wager, err := h.Store.GetWager(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.RenderError(w, r, err, "failed to retrieve bet")
		return
	}
	if wager.AccountId != claims.Subject && !claims.IsAdmin() {
		api.RenderError(w, r, api.ErrForbidden, "")
		return
	}

	render.JSON(w, r, api.Data[*models.Wager]{Data: wager})
}

// SettleBet handles PUT /bets/{id}/settle.
func (h *BetsHandler) SettleBet(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.bets.SettleBet"
	log := h.log.With(zap.String("op", op), zap.String("request_id", middleware.RequestID(r)))

	var req api.SettleBetRequest
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

	settled, err := h.Settler.SettleWager(r.Context(), models.SettlementCommand{
		WagerId: chi.URLParam(r, "id"),
		Status:  req.Status,
		Result:  req.Result,
		Amount:  req.Amount,
	})
	if err != nil {
		log.Info("settlement rejected", zap.String("wager_id", chi.URLParam(r, "id")), zap.Error(err))
		api.RenderError(w, r, err, "failed to settle bet")
		return
	}

	render.JSON(w, r, api.Data[*models.Wager]{Data: settled})
}
