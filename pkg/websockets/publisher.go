package websockets

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// defaultWriteWait bounds a single push to one client.
const defaultWriteWait = 10 * time.Second

type connection struct {
	id        string
	accountID string
	conn      Conn
	mu        sync.Mutex // gorilla connections allow one concurrent writer
}

// Hub tracks the open websocket connections of each account and pushes messages to them.
type Hub struct {
	log       *zap.Logger
	writeWait time.Duration
	mu        sync.RWMutex
	byID      map[string]*connection
	byAccount map[string]map[string]*connection
}

// NewHub creates an empty Hub.
func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		log:       log,
		writeWait: defaultWriteWait,
		byID:      make(map[string]*connection),
		byAccount: make(map[string]map[string]*connection),
	}
}

// Make sure we conform to the interfaces
var (
	_ Publisher         = (*Hub)(nil)
	_ ConnectionManager = (*Hub)(nil)
)

// AddConnection registers conn for accountID and returns its connection ID.
func (h *Hub) AddConnection(_ context.Context, accountID string, conn Conn) (string, error) {
	c := &connection{id: uuid.New().String(), accountID: accountID, conn: conn}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.byID[c.id] = c
	if _, ok := h.byAccount[accountID]; !ok {
		h.byAccount[accountID] = make(map[string]*connection)
	}
	h.byAccount[accountID][c.id] = c

	return c.id, nil
}

// RemoveConnection forgets a connection. Unknown IDs are ignored.
func (h *Hub) RemoveConnection(_ context.Context, connectionID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.byID[connectionID]
	if !ok {
		return nil
	}
	delete(h.byID, connectionID)
	if set, ok := h.byAccount[c.accountID]; ok {
		delete(set, connectionID)
		if len(set) == 0 {
			delete(h.byAccount, c.accountID)
		}
	}
	return nil
}

// Publish sends message to every connection of message.AccountID.
// Each write must finish within the hub's write wait or before ctx expires, whichever
// comes first. Connections that fail to accept the write are closed and dropped.
func (h *Hub) Publish(ctx context.Context, message Message) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	h.mu.RLock()
	targets := make([]*connection, 0, len(h.byAccount[message.AccountID]))
	for _, c := range h.byAccount[message.AccountID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := h.write(ctx, c, payload); err != nil {
			h.log.Info("stale connection found, deleting", zap.String("connection_id", c.id), zap.Error(err))
			_ = c.conn.Close()
			if err := h.RemoveConnection(ctx, c.id); err != nil {
				h.log.Error("failed to delete stale connection", zap.Error(err))
			}
		}
	}

	return nil
}

func (h *Hub) write(ctx context.Context, c *connection, payload []byte) error {
	deadline := time.Now().Add(h.writeWait)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// Connections returns the number of open connections for accountID.
func (h *Hub) Connections(accountID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byAccount[accountID])
}
