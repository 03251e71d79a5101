package notifyhub

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swapdesk/pkg/types/notify"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestHub_NotifyAndConsume(t *testing.T) {
	ch := make(chan []byte, 1)
	received := make(chan []byte, 1)

	hub := New(
		WithChannel(ch),
		WithContext(context.Background()),
		WithTopic("notifications"),
		WithLogger(discardLogger),
		WithHandler(func(msg []byte) error {
			received <- msg
			return nil
		}),
	)
	require.NoError(t, hub.Subscribe())

	hub.Notify(notify.LevelSuccess, "Swap executed successfully!")

	select {
	case msg := <-received:
		var n notify.Notification
		require.NoError(t, json.Unmarshal(msg, &n))
		assert.Equal(t, notify.LevelSuccess, n.Level)
		assert.Equal(t, "Swap executed successfully!", n.Message)
		assert.Equal(t, 3*time.Second, n.Duration)
		assert.Equal(t, notify.PositionTopRight, n.Position)
	case <-time.After(2 * time.Second):
		t.Fatal("did not receive notification in time")
	}
}

func TestHub_NotifyOptions(t *testing.T) {
	ch := make(chan []byte, 1)

	hub := New(
		WithChannel(ch),
		WithContext(context.Background()),
		WithTopic("notifications"),
		WithLogger(discardLogger),
	)

	hub.Notify(notify.LevelError, "Swap failed. Please try again.",
		notify.WithDuration(5*time.Second),
		notify.WithPosition(notify.PositionTopCenter),
	)

	var n notify.Notification
	require.NoError(t, json.Unmarshal(<-ch, &n))
	assert.Equal(t, 5*time.Second, n.Duration)
	assert.Equal(t, notify.PositionTopCenter, n.Position)
}

func TestHub_NotifyDoesNotBlockWhenFull(t *testing.T) {
	ch := make(chan []byte, 1)

	hub := New(
		WithChannel(ch),
		WithContext(context.Background()),
		WithTopic("notifications"),
		WithLogger(discardLogger),
	)

	done := make(chan struct{})
	go func() {
		hub.Notify(notify.LevelInfo, "first")
		hub.Notify(notify.LevelInfo, "second")
		hub.Notify(notify.LevelInfo, "third")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on a full channel")
	}
	assert.Len(t, ch, 1)
}

func TestHub_SubscribeWithoutHandler(t *testing.T) {
	hub := New(
		WithChannel(make(chan []byte, 1)),
		WithContext(context.Background()),
		WithTopic("notifications"),
		WithLogger(discardLogger),
	)
	assert.ErrorIs(t, hub.Subscribe(), ErrInvalidHubConfig)
}

func TestHub_SubscribeInvalidConfig(t *testing.T) {
	hub := New(
		WithContext(context.Background()),
		WithTopic("notifications"),
		WithLogger(discardLogger),
		WithHandler(func([]byte) error { return nil }),
	)
	assert.ErrorIs(t, hub.Subscribe(), ErrInvalidHubConfig)
}
