package service

import (
	"context"
	"log/slog"
	"sort"

	"github.com/pkg/errors"

	"swapdesk/internal/models"
	"swapdesk/pkg/icons"
	"swapdesk/pkg/types/cache"
	"swapdesk/pkg/types/pricefeed"
)

const tokensCacheKey = "tokens"

// MsgFetchFailed is surfaced when the feed is down and no stale data
// exists to fall back on.
const MsgFetchFailed = "Failed to fetch price data. Please try again."

var (
	ErrInvalidTokenServiceConfig = errors.New("invalid token service config")
	ErrTokenNotFound             = errors.New("token not found")
)

// TokenService owns the token list: it fetches the feed, deduplicates
// samples per currency keeping the most recent, caches the result, and
// serves stale data when a refresh fails.
//
// Concurrent cache-miss callers may each trigger a fetch; the later
// cache write wins. Refreshes are not coalesced.
type TokenService struct {
	logger      *slog.Logger
	cache       cache.Cache[string, []models.Token]
	source      pricefeed.Source
	iconBaseURL string
}

type TokenOption func(*TokenService)

func WithTokenLogger(l *slog.Logger) TokenOption {
	return func(s *TokenService) {
		s.logger = l
	}
}

func WithTokenCache(c cache.Cache[string, []models.Token]) TokenOption {
	return func(s *TokenService) {
		s.cache = c
	}
}

func WithTokenSource(src pricefeed.Source) TokenOption {
	return func(s *TokenService) {
		s.source = src
	}
}

func WithTokenIconBaseURL(url string) TokenOption {
	return func(s *TokenService) {
		s.iconBaseURL = url
	}
}

func (s *TokenService) IsValid() error {
	switch {
	case s.logger == nil:
		return errors.Wrap(ErrInvalidTokenServiceConfig, "logger cannot be nil")
	case s.cache == nil:
		return errors.Wrap(ErrInvalidTokenServiceConfig, "cache cannot be nil")
	case s.source == nil:
		return errors.Wrap(ErrInvalidTokenServiceConfig, "source cannot be nil")
	default:
		return nil
	}
}

func NewTokenService(opts ...TokenOption) (*TokenService, error) {
	s := &TokenService{iconBaseURL: icons.DefaultBaseURL}

	for _, opt := range opts {
		opt(s)
	}

	return s, s.IsValid()
}

// GetTokens returns the cached token list while it is fresh, refreshing
// from the feed otherwise. A failed refresh falls back to the stale
// list when one exists.
func (s *TokenService) GetTokens(ctx context.Context) ([]models.Token, error) {
	if tokens, ok := s.cache.Get(tokensCacheKey); ok {
		return tokens, nil
	}

	samples, err := s.source.Fetch(ctx)
	if err != nil {
		if tokens, age, ok := s.cache.GetStale(tokensCacheKey); ok {
			s.logger.Warn("price feed refresh failed, serving stale tokens",
				"age", age, "error", err)
			return tokens, nil
		}
		return nil, errors.Wrap(err, "refreshing token list")
	}

	tokens := s.dedupe(samples)
	s.cache.Set(tokensCacheKey, tokens)
	s.logger.Debug("token list refreshed", "count", len(tokens))
	return tokens, nil
}

// GetToken looks one currency up in the GetTokens result.
func (s *TokenService) GetToken(ctx context.Context, currency string) (*models.Token, error) {
	tokens, err := s.GetTokens(ctx)
	if err != nil {
		return nil, err
	}

	currency = icons.Normalize(currency)
	for i := range tokens {
		if tokens[i].Currency == currency {
			return &tokens[i], nil
		}
	}
	return nil, errors.Wrap(ErrTokenNotFound, currency)
}

// dedupe groups samples by currency keeping the sample with the latest
// date, drops non-positive prices, and attaches icon URLs.
func (s *TokenService) dedupe(samples []pricefeed.Sample) []models.Token {
	latest := make(map[string]pricefeed.Sample)
	for _, sample := range samples {
		if sample.Price <= 0 {
			continue
		}
		cur := icons.Normalize(sample.Currency)
		if best, ok := latest[cur]; !ok || sample.Date.After(best.Date) {
			latest[cur] = sample
		}
	}

	tokens := make([]models.Token, 0, len(latest))
	for cur, sample := range latest {
		tokens = append(tokens, models.Token{
			Currency:    cur,
			Price:       sample.Price,
			LastUpdated: sample.Date,
			IconURL:     icons.URL(s.iconBaseURL, cur),
		})
	}

	sort.Slice(tokens, func(i, j int) bool {
		return tokens[i].Currency < tokens[j].Currency
	})
	return tokens
}
