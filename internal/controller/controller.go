package controller

import (
	"github.com/pkg/errors"

	"swapdesk/internal/service"
)

var ErrInvalidControllerConfig = errors.New("invalid controller config")

type Controller struct {
	tokens      *service.TokenService
	sessions    *service.SessionService
	defaultFrom string
	defaultTo   string
}

type Option func(*Controller)

func WithTokenService(s *service.TokenService) Option {
	return func(c *Controller) {
		c.tokens = s
	}
}

func WithSessionService(s *service.SessionService) Option {
	return func(c *Controller) {
		c.sessions = s
	}
}

func WithDefaultPair(from, to string) Option {
	return func(c *Controller) {
		c.defaultFrom = from
		c.defaultTo = to
	}
}

func (c *Controller) IsValid() error {
	switch {
	case c.tokens == nil:
		return errors.Wrap(ErrInvalidControllerConfig, "token service cannot be nil")
	case c.sessions == nil:
		return errors.Wrap(ErrInvalidControllerConfig, "session service cannot be nil")
	default:
		return nil
	}
}

func New(opts ...Option) (*Controller, error) {
	c := &Controller{}
	for _, opt := range opts {
		opt(c)
	}
	return c, c.IsValid()
}
