package service

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"swapdesk/internal/swap"
	"swapdesk/pkg/debounce"
	"swapdesk/pkg/types/cache"
	"swapdesk/pkg/types/notify"
)

var (
	ErrInvalidSessionServiceConfig = errors.New("invalid session service config")
	ErrSessionNotFound             = errors.New("session not found")
)

// SessionService creates and resolves swap sessions. Sessions live in a
// TTL cache; an abandoned session simply ages out. Resolving a session
// re-stores it, so the TTL acts as an idle timeout.
type SessionService struct {
	logger        *slog.Logger
	notifier      notify.Notifier
	sessions      cache.Cache[string, *swap.Session]
	debounceDelay time.Duration
	executeDelay  time.Duration
}

type SessionServiceOption func(*SessionService)

func WithSessionServiceLogger(l *slog.Logger) SessionServiceOption {
	return func(s *SessionService) {
		s.logger = l
	}
}

func WithSessionServiceNotifier(n notify.Notifier) SessionServiceOption {
	return func(s *SessionService) {
		s.notifier = n
	}
}

func WithSessionStore(c cache.Cache[string, *swap.Session]) SessionServiceOption {
	return func(s *SessionService) {
		s.sessions = c
	}
}

func WithSessionDebounceDelay(d time.Duration) SessionServiceOption {
	return func(s *SessionService) {
		s.debounceDelay = d
	}
}

func WithSessionExecuteDelay(d time.Duration) SessionServiceOption {
	return func(s *SessionService) {
		s.executeDelay = d
	}
}

func (s *SessionService) IsValid() error {
	switch {
	case s.logger == nil:
		return errors.Wrap(ErrInvalidSessionServiceConfig, "logger cannot be nil")
	case s.notifier == nil:
		return errors.Wrap(ErrInvalidSessionServiceConfig, "notifier cannot be nil")
	case s.sessions == nil:
		return errors.Wrap(ErrInvalidSessionServiceConfig, "session store cannot be nil")
	case s.debounceDelay <= 0:
		return errors.Wrap(ErrInvalidSessionServiceConfig, "debounce delay must be positive")
	case s.executeDelay < 0:
		return errors.Wrap(ErrInvalidSessionServiceConfig, "execute delay cannot be negative")
	default:
		return nil
	}
}

func NewSessionService(opts ...SessionServiceOption) (*SessionService, error) {
	s := &SessionService{
		debounceDelay: swap.DefaultDebounceDelay,
		executeDelay:  swap.DefaultExecuteDelay,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, s.IsValid()
}

func (s *SessionService) Create() (*swap.Session, error) {
	debouncer, err := debounce.New(s.debounceDelay)
	if err != nil {
		return nil, err
	}

	session, err := swap.NewSession(
		swap.WithSessionID(uuid.NewString()),
		swap.WithSessionLogger(s.logger),
		swap.WithSessionNotifier(s.notifier),
		swap.WithSessionDebouncer(debouncer),
		swap.WithSessionExecuteDelay(s.executeDelay),
	)
	if err != nil {
		return nil, err
	}

	s.sessions.Set(session.ID(), session)
	s.logger.Debug("session created", "id", session.ID())
	return session, nil
}

// Get resolves a live session and refreshes its idle timeout.
func (s *SessionService) Get(id string) (*swap.Session, error) {
	session, ok := s.sessions.Get(id)
	if !ok {
		s.sessions.Delete(id)
		return nil, errors.Wrap(ErrSessionNotFound, id)
	}
	s.sessions.Set(id, session)
	return session, nil
}

func (s *SessionService) Delete(id string) {
	s.sessions.Delete(id)
}
