package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"swapdesk/internal/controller"
	"swapdesk/internal/service"
)

var (
	ErrNilEngine         = errors.New("engine is required")
	ErrNilTokenService   = errors.New("token service is required")
	ErrNilSessionService = errors.New("session service is required")
)

type Handler struct {
	engine      *gin.Engine
	tokens      *service.TokenService
	sessions    *service.SessionService
	notifCh     <-chan []byte
	defaultFrom string
	defaultTo   string
}

func (h *Handler) IsValid() error {
	if h.engine == nil {
		return ErrNilEngine
	}
	if h.tokens == nil {
		return ErrNilTokenService
	}
	if h.sessions == nil {
		return ErrNilSessionService
	}
	return nil
}

type Option func(*Handler)

func WithEngine(engine *gin.Engine) Option {
	return func(h *Handler) {
		h.engine = engine
	}
}

func WithTokenService(s *service.TokenService) Option {
	return func(h *Handler) {
		h.tokens = s
	}
}

func WithSessionService(s *service.SessionService) Option {
	return func(h *Handler) {
		h.sessions = s
	}
}

func WithNotificationChannel(ch <-chan []byte) Option {
	return func(h *Handler) {
		h.notifCh = ch
	}
}

func WithDefaultPair(from, to string) Option {
	return func(h *Handler) {
		h.defaultFrom = from
		h.defaultTo = to
	}
}

func New(opts ...Option) (*Handler, error) {
	h := &Handler{}
	for _, opt := range opts {
		opt(h)
	}
	if err := h.IsValid(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Handler) Setup() error {
	ctrl, err := controller.New(
		controller.WithTokenService(h.tokens),
		controller.WithSessionService(h.sessions),
		controller.WithDefaultPair(h.defaultFrom, h.defaultTo),
	)
	if err != nil {
		return err
	}

	h.engine.GET("/health", controller.Health)

	api := h.engine.Group("/api")

	tokens := api.Group("/tokens")
	tokens.GET("", ctrl.ListTokens)
	tokens.GET("/:currency", ctrl.GetToken)

	api.POST("/quotes", ctrl.CreateQuote)

	sessions := api.Group("/sessions")
	sessions.POST("", ctrl.CreateSession)
	sessions.GET("/:id", ctrl.GetSession)
	sessions.DELETE("/:id", ctrl.DeleteSession)
	sessions.PUT("/:id/from-token", ctrl.SetFromToken)
	sessions.PUT("/:id/to-token", ctrl.SetToToken)
	sessions.PUT("/:id/from-amount", ctrl.SetFromAmount)
	sessions.PUT("/:id/to-amount", ctrl.SetToAmount)
	sessions.POST("/:id/swap-tokens", ctrl.SwapTokens)
	sessions.POST("/:id/reset", ctrl.ResetSession)
	sessions.POST("/:id/execute", ctrl.ExecuteSwap)

	if h.notifCh != nil {
		api.GET("/notifications/stream", controller.SSENotifications(h.notifCh))
	}

	return nil
}
