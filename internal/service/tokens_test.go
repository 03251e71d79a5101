package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swapdesk/internal/models"
	"swapdesk/pkg/integrations/memcache"
	"swapdesk/pkg/types/pricefeed"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type stubSource struct {
	mu      sync.Mutex
	samples []pricefeed.Sample
	err     error
	calls   int
}

func (s *stubSource) Fetch(_ context.Context) ([]pricefeed.Sample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.samples, nil
}

func (s *stubSource) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *stubSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func feedSamples() []pricefeed.Sample {
	return []pricefeed.Sample{
		{Currency: "ETH", Price: 1645.93, Date: time.Date(2023, 8, 29, 9, 1, 0, 0, time.UTC)},
		{Currency: "USDC", Price: 0.989832, Date: time.Date(2023, 8, 29, 9, 1, 0, 0, time.UTC)},
		{Currency: "USDC", Price: 1.000048, Date: time.Date(2023, 8, 29, 9, 4, 0, 0, time.UTC)},
		{Currency: "BROKEN", Price: 0, Date: time.Date(2023, 8, 29, 9, 1, 0, 0, time.UTC)},
		{Currency: "SWTH", Price: 0.004039, Date: time.Date(2023, 8, 29, 9, 0, 0, 0, time.UTC)},
	}
}

func newTokenService(t *testing.T, src pricefeed.Source, ttl time.Duration) *TokenService {
	t.Helper()
	svc, err := NewTokenService(
		WithTokenLogger(discardLogger),
		WithTokenCache(memcache.New[string, []models.Token](ttl)),
		WithTokenSource(src),
		WithTokenIconBaseURL("https://icons.example.com/tokens"),
	)
	require.NoError(t, err)
	return svc
}

func TestNewTokenService_InvalidConfig(t *testing.T) {
	src := &stubSource{}
	store := memcache.New[string, []models.Token](time.Minute)

	tests := []struct {
		name string
		opts []TokenOption
	}{
		{"no logger", []TokenOption{
			WithTokenCache(store),
			WithTokenSource(src),
		}},
		{"no cache", []TokenOption{
			WithTokenLogger(discardLogger),
			WithTokenSource(src),
		}},
		{"no source", []TokenOption{
			WithTokenLogger(discardLogger),
			WithTokenCache(store),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTokenService(tt.opts...)
			assert.ErrorIs(t, err, ErrInvalidTokenServiceConfig)
		})
	}
}

func TestTokenService_GetTokensDedupes(t *testing.T) {
	svc := newTokenService(t, &stubSource{samples: feedSamples()}, time.Minute)

	tokens, err := svc.GetTokens(context.Background())
	require.NoError(t, err)
	require.Len(t, tokens, 3)

	// sorted by currency, zero-price sample dropped
	assert.Equal(t, "ETH", tokens[0].Currency)
	assert.Equal(t, "SWTH", tokens[1].Currency)
	assert.Equal(t, "USDC", tokens[2].Currency)

	// latest USDC sample wins
	assert.InDelta(t, 1.000048, tokens[2].Price, 1e-9)
	assert.Equal(t, time.Date(2023, 8, 29, 9, 4, 0, 0, time.UTC), tokens[2].LastUpdated)

	assert.Equal(t, "https://icons.example.com/tokens/ETH.svg", tokens[0].IconURL)
}

func TestTokenService_GetTokensCaches(t *testing.T) {
	src := &stubSource{samples: feedSamples()}
	svc := newTokenService(t, src, time.Minute)

	_, err := svc.GetTokens(context.Background())
	require.NoError(t, err)
	_, err = svc.GetTokens(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, src.callCount())
}

func TestTokenService_GetTokensRefreshesAfterTTL(t *testing.T) {
	src := &stubSource{samples: feedSamples()}
	svc := newTokenService(t, src, 20*time.Millisecond)

	_, err := svc.GetTokens(context.Background())
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	_, err = svc.GetTokens(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, src.callCount())
}

func TestTokenService_StaleFallback(t *testing.T) {
	src := &stubSource{samples: feedSamples()}
	svc := newTokenService(t, src, 20*time.Millisecond)

	fresh, err := svc.GetTokens(context.Background())
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)
	src.setErr(pricefeed.ErrUnavailable)

	stale, err := svc.GetTokens(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fresh, stale)
	assert.Equal(t, 2, src.callCount())
}

func TestTokenService_FetchFailureWithoutCache(t *testing.T) {
	src := &stubSource{err: pricefeed.ErrUnavailable}
	svc := newTokenService(t, src, time.Minute)

	_, err := svc.GetTokens(context.Background())
	assert.ErrorIs(t, err, pricefeed.ErrUnavailable)
}

func TestTokenService_GetToken(t *testing.T) {
	svc := newTokenService(t, &stubSource{samples: feedSamples()}, time.Minute)

	tok, err := svc.GetToken(context.Background(), "eth")
	require.NoError(t, err)
	assert.Equal(t, "ETH", tok.Currency)
	assert.InDelta(t, 1645.93, tok.Price, 1e-9)

	_, err = svc.GetToken(context.Background(), "DOGE")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}
