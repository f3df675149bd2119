package events

import (
	"context"
	"errors"
	"net/http"

	"github.com/chris/sportsbook-ledger/pkg/api"
	"github.com/chris/sportsbook-ledger/pkg/catalog"
	"github.com/chris/sportsbook-ledger/pkg/middleware"
	"github.com/chris/sportsbook-ledger/pkg/models"
	"github.com/chris/sportsbook-ledger/pkg/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const defaultLimit = 10

// Catalog is the part of the event catalog the handlers call.
type Catalog interface {
	Get(ctx context.Context, eventID string) (*models.Event, error)
	List(ctx context.Context, filter storage.EventFilter, page storage.Page) ([]models.Event, int, error)
	Create(ctx context.Context, in catalog.EventInput) (*models.Event, error)
	Update(ctx context.Context, eventID string, in catalog.EventInput) (*models.Event, error)
	Delete(ctx context.Context, eventID string) error
	Settle(ctx context.Context, eventID string) (int, error)
}

// EventsHandler holds the dependencies for event-related handlers.
type EventsHandler struct {
	Catalog   Catalog
	log       *zap.Logger
	validator *validator.Validate
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(c Catalog, log *zap.Logger) *EventsHandler {
	return &EventsHandler{Catalog: c, log: log, validator: validator.New()}
}

// ListEvents handles GET /events?league&status&featured&popular&page&limit.
func (h *EventsHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	params, err := api.BindListParams(r.URL.Query())
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.Error(err.Error(), http.StatusBadRequest))
		return
	}
	page := params.Page(defaultLimit)

	events, total, err := h.Catalog.List(r.Context(), params.EventFilter(), page)
	if err != nil {
		h.log.Error("failed to list events", zap.String("op", "handlers.events.ListEvents"), zap.Error(err))
		api.RenderError(w, r, err, "failed to retrieve events")
		return
	}

	render.JSON(w, r, api.NewList(events, total, page))
}

// GetEvent handles GET /events/{id}.
func (h *EventsHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.Catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.RenderError(w, r, err, "failed to retrieve event")
		return
	}
	render.JSON(w, r, api.Data[*models.Event]{Data: event})
}

// CreateEvent handles POST /events.
func (h *EventsHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req api.EventRequest
	if !h.decode(w, r, &req) {
		return
	}

	event, err := h.Catalog.Create(r.Context(), req.ToInput())
	if err != nil {
		h.log.Info("event rejected", zap.String("op", "handlers.events.CreateEvent"), zap.String("request_id", middleware.RequestID(r)), zap.Error(err))
		api.RenderError(w, r, err, "failed to create event")
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, api.Data[*models.Event]{Data: event})
}

// UpdateEvent handles PUT /events/{id}. Finishing an event settles its pending wagers.
func (h *EventsHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req api.EventRequest
	if !h.decode(w, r, &req) {
		return
	}

	eventID := chi.URLParam(r, "id")
	event, err := h.Catalog.Update(r.Context(), eventID, req.ToInput())
	if err != nil {
		h.log.Info("event update rejected", zap.String("op", "handlers.events.UpdateEvent"), zap.String("event_id", eventID), zap.Error(err))
		api.RenderError(w, r, err, "failed to update event")
		return
	}

	render.JSON(w, r, api.Data[*models.Event]{Data: event})
}

// DeleteEvent handles DELETE /events/{id}.
func (h *EventsHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		api.RenderError(w, r, err, "failed to delete event")
		return
	}
	render.NoContent(w, r)
}

// SettleEvent handles POST /events/{id}/settle.
func (h *EventsHandler) SettleEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")

	n, err := h.Catalog.Settle(r.Context(), eventID)
	if err != nil {
		h.log.Error("failed to settle event", zap.String("op", "handlers.events.SettleEvent"), zap.String("event_id", eventID), zap.Int("settled", n), zap.Error(err))
		api.RenderError(w, r, err, "failed to settle event")
		return
	}

	render.JSON(w, r, api.Data[api.SettleEventResponse]{Data: api.SettleEventResponse{EventID: eventID, Settled: n}})
}

func (h *EventsHandler) decode(w http.ResponseWriter, r *http.Request, req any) bool {
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
