package notify

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaymarand/ovgi-dispatch/internal/domain/dispatch"
)

func TestInMemoryRunChangeNotifier(t *testing.T) {
	t.Run("delivers published messages to subscriber", func(t *testing.T) {
		notifier := NewInMemoryRunChangeNotifier(nil)
		defer notifier.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		received := make(chan dispatch.RunChangeMessage, 1)
		go func() {
			_ = notifier.Subscribe(ctx, func(msg dispatch.RunChangeMessage) {
				received <- msg
			})
		}()

		// Give the subscriber a moment to register
		time.Sleep(20 * time.Millisecond)

		runID := uuid.New()
		err := notifier.Publish(context.Background(), dispatch.NewRunChangeMessage(dispatch.RunChangeInsert, runID))
		require.NoError(t, err)

		select {
		case msg := <-received:
			assert.Equal(t, "active_delivery_runs", msg.Table)
			assert.Equal(t, dispatch.RunChangeInsert, msg.Action)
			assert.Equal(t, runID, msg.RunID)
			assert.False(t, msg.Timestamp.IsZero())
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for run change message")
		}
	})

	t.Run("publish without subscribers succeeds", func(t *testing.T) {
		notifier := NewInMemoryRunChangeNotifier(nil)
		defer notifier.Close()

		err := notifier.Publish(context.Background(), dispatch.NewRunChangeMessage(dispatch.RunChangeUpdate, uuid.New()))
		assert.NoError(t, err)
	})

	t.Run("cancelled context ends subscription", func(t *testing.T) {
		notifier := NewInMemoryRunChangeNotifier(nil)
		defer notifier.Close()

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- notifier.Subscribe(ctx, func(dispatch.RunChangeMessage) {})
		}()

		time.Sleep(20 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(time.Second):
			t.Fatal("subscription did not stop after cancel")
		}
	})

	t.Run("close disconnects subscribers and rejects publishes", func(t *testing.T) {
		notifier := NewInMemoryRunChangeNotifier(nil)

		ctx := context.Background()
		done := make(chan error, 1)
		go func() {
			done <- notifier.Subscribe(ctx, func(dispatch.RunChangeMessage) {})
		}()

		time.Sleep(20 * time.Millisecond)
		require.NoError(t, notifier.Close())

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("subscription did not stop after close")
		}

		err := notifier.Publish(ctx, dispatch.NewRunChangeMessage(dispatch.RunChangeDelete, uuid.New()))
		assert.Error(t, err)
	})
}
