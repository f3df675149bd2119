package websockets

import (
	"net/http"
	"slices"

	"github.com/chris/sportsbook-ledger/pkg/middleware"
	"github.com/chris/sportsbook-ledger/pkg/websockets"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handler upgrades authenticated requests to websocket connections that receive
// the caller's wallet and settlement updates.
type Handler struct {
	connManager websockets.ConnectionManager
	upgrader    websocket.Upgrader
	log         *zap.Logger
}

// NewHandler creates a new Handler. An origin list containing "*" accepts any origin.
func NewHandler(connManager websockets.ConnectionManager, allowedOrigins []string, log *zap.Logger) *Handler {
	return &Handler{
		connManager: connManager,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
			},
		},
		log: log,
	}
}

// ServeHTTP handles GET /ws. The route must sit behind the authenticator.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("failed to upgrade connection", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := r.Context()
	connectionID, err := h.connManager.AddConnection(ctx, claims.Subject, conn)
	if err != nil {
		h.log.Error("failed to save connection", zap.String("account_id", claims.Subject), zap.Error(err))
		return
	}
	log := h.log.With(zap.String("connection_id", connectionID), zap.String("account_id", claims.Subject))
	log.Info("client connected")

	defer func() {
		log.Info("client disconnected")
		if err := h.connManager.RemoveConnection(ctx, connectionID); err != nil {
			log.Error("failed to delete connection", zap.Error(err))
		}
	}()

	// Clients do not send anything; reading is how a closed connection is noticed.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Info("unexpected close error", zap.Error(err))
			}
			return
		}
	}
}
