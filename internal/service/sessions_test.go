package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swapdesk/internal/swap"
	"swapdesk/pkg/integrations/memcache"
	"swapdesk/pkg/types/notify"
)

type noopNotifier struct {
	mu    sync.Mutex
	count int
}

func (n *noopNotifier) Notify(notify.Level, string, ...notify.Option) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.count++
}

func newSessionService(t *testing.T, ttl time.Duration) *SessionService {
	t.Helper()
	svc, err := NewSessionService(
		WithSessionServiceLogger(discardLogger),
		WithSessionServiceNotifier(&noopNotifier{}),
		WithSessionStore(memcache.New[string, *swap.Session](ttl)),
		WithSessionDebounceDelay(20*time.Millisecond),
		WithSessionExecuteDelay(10*time.Millisecond),
	)
	require.NoError(t, err)
	return svc
}

func TestNewSessionService_InvalidConfig(t *testing.T) {
	store := memcache.New[string, *swap.Session](time.Minute)
	notifier := &noopNotifier{}

	tests := []struct {
		name string
		opts []SessionServiceOption
	}{
		{"no logger", []SessionServiceOption{
			WithSessionServiceNotifier(notifier),
			WithSessionStore(store),
		}},
		{"no notifier", []SessionServiceOption{
			WithSessionServiceLogger(discardLogger),
			WithSessionStore(store),
		}},
		{"no store", []SessionServiceOption{
			WithSessionServiceLogger(discardLogger),
			WithSessionServiceNotifier(notifier),
		}},
		{"bad debounce delay", []SessionServiceOption{
			WithSessionServiceLogger(discardLogger),
			WithSessionServiceNotifier(notifier),
			WithSessionStore(store),
			WithSessionDebounceDelay(-time.Second),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSessionService(tt.opts...)
			assert.ErrorIs(t, err, ErrInvalidSessionServiceConfig)
		})
	}
}

func TestSessionService_CreateAndGet(t *testing.T) {
	svc := newSessionService(t, time.Minute)

	session, err := svc.Create()
	require.NoError(t, err)
	require.NotEmpty(t, session.ID())

	got, err := svc.Get(session.ID())
	require.NoError(t, err)
	assert.Same(t, session, got)
}

func TestSessionService_GetUnknown(t *testing.T) {
	svc := newSessionService(t, time.Minute)

	_, err := svc.Get("no-such-session")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionService_Delete(t *testing.T) {
	svc := newSessionService(t, time.Minute)

	session, err := svc.Create()
	require.NoError(t, err)

	svc.Delete(session.ID())
	_, err = svc.Get(session.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionService_IdleSessionsExpire(t *testing.T) {
	svc := newSessionService(t, 30*time.Millisecond)

	session, err := svc.Create()
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	_, err = svc.Get(session.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionService_GetRefreshesIdleTimeout(t *testing.T) {
	svc := newSessionService(t, 50*time.Millisecond)

	session, err := svc.Create()
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)
	_, err = svc.Get(session.ID())
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)
	_, err = svc.Get(session.ID())
	assert.NoError(t, err)
}

func TestSessionService_SessionsAreIndependent(t *testing.T) {
	svc := newSessionService(t, time.Minute)

	a, err := svc.Create()
	require.NoError(t, err)
	b, err := svc.Create()
	require.NoError(t, err)

	require.NotEqual(t, a.ID(), b.ID())
	require.True(t, a.SetFromAmount("10"))
	assert.Equal(t, "", b.FromAmount())
}
