package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// Publisher emits wager lifecycle events.
type Publisher interface {
	PublishWagerPlaced(ctx context.Context, e WagerPlaced) error
	PublishWagerSettled(ctx context.Context, e WagerSettled) error
}

// Writer is the part of *kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// NewWriter creates a writer without a fixed topic; each message names its own.
func NewWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
}

// KafkaPublisher writes events as JSON, keyed by wager ID so a wager's events stay ordered.
type KafkaPublisher struct {
	Writer       Writer
	PlacedTopic  string
	SettledTopic string
	now          func() time.Time
}

// NewKafkaPublisher creates a KafkaPublisher.
func NewKafkaPublisher(w Writer, placedTopic, settledTopic string) *KafkaPublisher {
	return &KafkaPublisher{Writer: w, PlacedTopic: placedTopic, SettledTopic: settledTopic, now: time.Now}
}

// Make sure we conform to the interface
var _ Publisher = (*KafkaPublisher)(nil)

func (p *KafkaPublisher) PublishWagerPlaced(ctx context.Context, e WagerPlaced) error {
	e.TsUnixMs = p.now().UnixMilli()
	return p.write(ctx, p.PlacedTopic, e.WagerID, e)
}

func (p *KafkaPublisher) PublishWagerSettled(ctx context.Context, e WagerSettled) error {
	e.TsUnixMs = p.now().UnixMilli()
	return p.write(ctx, p.SettledTopic, e.WagerID, e)
}

func (p *KafkaPublisher) write(ctx context.Context, topic, key string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", topic, err)
	}

	err = p.Writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: b,
		Time:  p.now(),
	})
	if err != nil {
		return fmt.Errorf("failed to write %s event to kafka: %w", topic, err)
	}
	return nil
}

// NoOpPublisher drops every event. It is used when no brokers are configured.
type NoOpPublisher struct{}

func (NoOpPublisher) PublishWagerPlaced(context.Context, WagerPlaced) error   { return nil }
func (NoOpPublisher) PublishWagerSettled(context.Context, WagerSettled) error { return nil }
