package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "swapdesk/docs"
	"swapdesk/internal/config"
	"swapdesk/internal/handler"
	"swapdesk/internal/models"
	"swapdesk/internal/service"
	"swapdesk/internal/swap"
	"swapdesk/pkg/integrations/memcache"
	"swapdesk/pkg/integrations/notifyhub"
	"swapdesk/pkg/integrations/pricefeed/livefeed"
	"swapdesk/pkg/integrations/pricefeed/mockfeed"
	"swapdesk/pkg/types/pricefeed"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title SwapDesk API
// @version 1.0
// @description Currency swap quoting and session API

// @host localhost:8080
// @BasePath /

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	var source pricefeed.Source
	switch cfg.PriceFeedMode {
	case pricefeed.ModeMock:
		source = mockfeed.New()
	default:
		source = livefeed.New(cfg.PriceFeedURL)
	}

	notifCh := make(chan []byte, 10)
	sseCh := make(chan []byte, 10)
	hub := notifyhub.New(
		notifyhub.WithContext(ctx),
		notifyhub.WithLogger(logger),
		notifyhub.WithTopic("notifications"),
		notifyhub.WithChannel(notifCh),
		notifyhub.WithHandler(func(data []byte) error {
			select {
			case sseCh <- data:
			default:
				logger.Warn("sseCh full, dropping notification")
			}
			return nil
		}),
	)
	if err := hub.Subscribe(); err != nil {
		log.Fatal("Failed to start notification hub:", err)
	}

	tokenSvc, err := service.NewTokenService(
		service.WithTokenLogger(logger),
		service.WithTokenCache(memcache.New[string, []models.Token](cfg.CacheTTL)),
		service.WithTokenSource(source),
		service.WithTokenIconBaseURL(cfg.IconBaseURL),
	)
	if err != nil {
		log.Fatal("Failed to create token service:", err)
	}

	sessionSvc, err := service.NewSessionService(
		service.WithSessionServiceLogger(logger),
		service.WithSessionServiceNotifier(hub),
		service.WithSessionStore(memcache.New[string, *swap.Session](cfg.SessionTTL)),
		service.WithSessionDebounceDelay(cfg.DebounceDelay),
		service.WithSessionExecuteDelay(cfg.ExecuteDelay),
	)
	if err != nil {
		log.Fatal("Failed to create session service:", err)
	}

	// warm the token cache so the first request does not pay the fetch
	warmCtx, warmCancel := context.WithTimeout(ctx, 15*time.Second)
	if _, err := tokenSvc.GetTokens(warmCtx); err != nil {
		logger.Warn("initial price fetch failed", "error", err)
	}
	warmCancel()

	r := gin.Default()

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	h, err := handler.New(
		handler.WithEngine(r),
		handler.WithTokenService(tokenSvc),
		handler.WithSessionService(sessionSvc),
		handler.WithNotificationChannel(sseCh),
		handler.WithDefaultPair(cfg.DefaultFromCurrency, cfg.DefaultToCurrency),
	)
	if err != nil {
		log.Fatal("Failed to create handler:", err)
	}
	if err := h.Setup(); err != nil {
		log.Fatal("Failed to setup routes:", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		logger.Info("shutting down...")
		cancel()
		os.Exit(0)
	}()

	logger.Info("starting SwapDesk", "addr", cfg.ListenAddr, "feed", cfg.PriceFeedMode)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
