package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeReconciler struct {
	n      int
	err    error
	maxAge time.Duration
}

func (f *fakeReconciler) ReconcileStale(_ context.Context, maxAge time.Duration) (int, error) {
	f.maxAge = maxAge
	return f.n, f.err
}

func TestHandleRequest(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		r := &fakeReconciler{n: 3}

		err := newHandler(r, 20*time.Minute, zap.New(core)).HandleRequest(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 20*time.Minute, r.maxAge)
		entries := logs.FilterMessage("reconciliation finished").All()
		if assert.Len(t, entries, 1) {
			assert.Equal(t, int64(3), entries[0].ContextMap()["enqueued"])
		}
	})

	t.Run("Partial Failure", func(t *testing.T) {
		r := &fakeReconciler{n: 1, err: errors.New("queue unavailable")}

		err := newHandler(r, time.Minute, zap.NewNop()).HandleRequest(context.Background())

		assert.EqualError(t, err, "queue unavailable")
	})
}
