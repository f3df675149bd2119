package websockets

import "context"

// NoOpPublisher is a publisher that drops every message.
type NoOpPublisher struct{}

// Publish does nothing.
func (p *NoOpPublisher) Publish(ctx context.Context, message Message) error {
	return nil
}

// RecordingPublisher keeps every published message, for tests.
type RecordingPublisher struct {
	Messages []Message
}

// Publish appends message.
func (p *RecordingPublisher) Publish(ctx context.Context, message Message) error {
	p.Messages = append(p.Messages, message)
	return nil
}
