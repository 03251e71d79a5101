package notify

import "time"

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

const (
	PositionTopRight    = "top-right"
	PositionTopCenter   = "top-center"
	PositionBottomRight = "bottom-right"
)

// Notification is a fire-and-forget UI message. Delivery is never
// inspected by the sender.
type Notification struct {
	Level    Level         `json:"level"`
	Message  string        `json:"message"`
	Duration time.Duration `json:"duration"`
	Position string        `json:"position"`
	At       time.Time     `json:"at"`
}

type Option func(*Notification)

func WithDuration(d time.Duration) Option {
	return func(n *Notification) {
		n.Duration = d
	}
}

func WithPosition(p string) Option {
	return func(n *Notification) {
		n.Position = p
	}
}

type Notifier interface {
	Notify(level Level, message string, opts ...Option)
}
