package websockets

import (
	"context"
	"time"
)

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	SetWriteDeadline(t time.Time) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// ConnectionManager defines the interface for tracking the live connections of each account.
type ConnectionManager interface {
	AddConnection(ctx context.Context, accountID string, conn Conn) (string, error)
	RemoveConnection(ctx context.Context, connectionID string) error
}

// Publisher defines the interface for pushing messages to an account's connected clients.
type Publisher interface {
	Publish(ctx context.Context, message Message) error
}
