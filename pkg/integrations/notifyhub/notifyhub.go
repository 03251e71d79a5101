package notifyhub

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"swapdesk/pkg/types/notify"
)

var ErrInvalidHubConfig = errors.New("invalid notification hub config")

var _ notify.Notifier = (*Hub)(nil)

// Hub fans session notifications out through a channel to a delivery
// handler (typically an SSE pump). Notify never blocks; when the channel
// is full the notification is dropped.
type Hub struct {
	topic           string
	ch              chan []byte
	ctx             context.Context
	logger          *slog.Logger
	handler         func([]byte) error
	defaultDuration time.Duration
	position        string
}

type Option func(*Hub)

func WithContext(ctx context.Context) Option {
	return func(h *Hub) {
		h.ctx = ctx
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(h *Hub) {
		h.logger = l
	}
}

func WithTopic(topic string) Option {
	return func(h *Hub) {
		h.topic = topic
	}
}

func WithChannel(ch chan []byte) Option {
	return func(h *Hub) {
		h.ch = ch
	}
}

func WithHandler(fn func([]byte) error) Option {
	return func(h *Hub) {
		h.handler = fn
	}
}

func WithDefaultDuration(d time.Duration) Option {
	return func(h *Hub) {
		h.defaultDuration = d
	}
}

func WithPosition(p string) Option {
	return func(h *Hub) {
		h.position = p
	}
}

func (h *Hub) IsValid() error {
	switch {
	case h.ctx == nil:
		return errors.Wrap(ErrInvalidHubConfig, "ctx cannot be nil")
	case h.logger == nil:
		return errors.Wrap(ErrInvalidHubConfig, "logger cannot be nil")
	case h.topic == "":
		return errors.Wrap(ErrInvalidHubConfig, "topic cannot be empty")
	case h.ch == nil:
		return errors.Wrap(ErrInvalidHubConfig, "channel cannot be nil")
	default:
		return nil
	}
}

func New(opts ...Option) *Hub {
	h := &Hub{
		defaultDuration: 3 * time.Second,
		position:        notify.PositionTopRight,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

func (h *Hub) Notify(level notify.Level, message string, opts ...notify.Option) {
	n := notify.Notification{
		Level:    level,
		Message:  message,
		Duration: h.defaultDuration,
		Position: h.position,
		At:       time.Now(),
	}
	for _, opt := range opts {
		opt(&n)
	}

	payload, err := json.Marshal(n)
	if err != nil {
		h.logger.Error("failed to marshal notification", "topic", h.topic, "error", err)
		return
	}

	select {
	case h.ch <- payload:
	default:
		h.logger.Warn("notification channel full, dropping message", "topic", h.topic)
	}
}

func (h *Hub) Subscribe() error {
	if err := h.IsValid(); err != nil {
		return err
	}
	if h.handler == nil {
		return errors.Wrap(ErrInvalidHubConfig, "handler cannot be nil")
	}

	go func() {
		for {
			select {
			case msg := <-h.ch:
				if err := h.handler(msg); err != nil {
					h.logger.Error("notification handler error", "topic", h.topic, "error", err)
				}
			case <-h.ctx.Done():
				return
			}
		}
	}()

	return nil
}
