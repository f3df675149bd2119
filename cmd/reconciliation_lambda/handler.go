package main

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// reconciler re-dispatches settlement for wagers stuck in pending.
type reconciler interface {
	ReconcileStale(ctx context.Context, maxAge time.Duration) (int, error)
}

type handler struct {
	reconciler reconciler
	maxAge     time.Duration
	log        *zap.Logger
}

func newHandler(r reconciler, maxAge time.Duration, log *zap.Logger) *handler {
	return &handler{reconciler: r, maxAge: maxAge, log: log}
}

// HandleRequest is triggered by an EventBridge schedule. A partial failure is returned
// so the invocation is marked failed; commands already enqueued stay enqueued.
func (h *handler) HandleRequest(ctx context.Context) error {
	h.log.Info("starting reconciliation of stale wagers", zap.Duration("max_age", h.maxAge))

	n, err := h.reconciler.ReconcileStale(ctx, h.maxAge)
	if err != nil {
		h.log.Error("reconciliation finished with errors", zap.Int("enqueued", n), zap.Error(err))
		return err
	}

	h.log.Info("reconciliation finished", zap.Int("enqueued", n))
	return nil
}
