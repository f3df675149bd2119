package main

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"github.com/chris/sportsbook-ledger/pkg/models"
	"go.uber.org/zap"
)

// commandHandler applies one settlement command.
type commandHandler interface {
	HandleCommand(ctx context.Context, cmd models.SettlementCommand) error
}

type handler struct {
	settler commandHandler
	log     *zap.Logger
}

func newHandler(settler commandHandler, log *zap.Logger) *handler {
	return &handler{settler: settler, log: log}
}

// HandleRequest settles every command in the batch and reports the messages that
// failed so SQS redelivers only those. Malformed messages are dropped.
func (h *handler) HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) (events.SQSEventResponse, error) {
	var resp events.SQSEventResponse

	for _, message := range sqsEvent.Records {
		log := h.log.With(zap.String("message_id", message.MessageId))

		var cmd models.SettlementCommand
		if err := json.Unmarshal([]byte(message.Body), &cmd); err != nil || cmd.WagerId == "" {
			log.Error("discarding malformed settlement command", zap.String("body", message.Body), zap.Error(err))
			continue
		}

		log = log.With(zap.String("wager_id", cmd.WagerId), zap.String("status", string(cmd.Status)))
		if err := h.settler.HandleCommand(ctx, cmd); err != nil {
			log.Error("failed to settle wager", zap.Error(err))
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: message.MessageId})
			continue
		}
		log.Info("settled wager")
	}

	return resp, nil
}
