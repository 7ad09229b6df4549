package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/dharmasatrya/flightbooking/internal/api"
	"github.com/dharmasatrya/flightbooking/internal/config"
	"github.com/dharmasatrya/flightbooking/internal/handler"
	"github.com/dharmasatrya/flightbooking/internal/payment"
	"github.com/dharmasatrya/flightbooking/internal/ratelimit"
	"github.com/dharmasatrya/flightbooking/internal/session"
	"github.com/dharmasatrya/flightbooking/internal/ui"
	"github.com/dharmasatrya/flightbooking/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.App.LogPath, cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	store, err := openStore(cfg)
	if err != nil {
		zlog.Fatal("failed to open session store", zap.String("backend", cfg.Session.Backend), zap.Error(err))
	}
	defer store.Close()
	zlog.Info("session store ready", zap.String("backend", cfg.Session.Backend))

	sess := session.New(store)
	recorder := ui.NewRecorder(ui.AfterFunc)

	limiter := ratelimit.NewEndpointLimiter(cfg.API.RateLimits())
	for _, group := range ratelimit.Groups() {
		lim, _ := limiter.Limit(group)
		zlog.Debug("endpoint pacing", zap.String("group", group), zap.Float64("rps", lim.RPS), zap.Int("burst", lim.Burst))
	}

	client := api.NewClient(api.Config{
		BaseURL: cfg.API.BaseURL,
		Prefix:  cfg.API.Prefix,
		Timeout: cfg.API.Timeout,
	}, sess, zlog, api.WithLimiter(limiter), api.WithNavigator(recorder))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	uiHandler := handler.NewUIHandler(ctx, handler.Config{
		Client:    client,
		Session:   sess,
		Recorder:  recorder,
		Scheduler: ui.AfterFunc,
		Logger:    zlog,
		PaymentOpts: []payment.Option{
			payment.WithProcessingDelay(cfg.Payment.ProcessingDelay),
		},
	})
	defer uiHandler.Close()

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	uiHandler.Register(e)

	go func() {
		zlog.Info("starting flight booking server",
			zap.String("port", cfg.App.Port),
			zap.String("api", cfg.API.BaseURL+cfg.API.Prefix),
		)
		if err := e.Start(":" + cfg.App.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zlog.Error("shutdown failed", zap.Error(err))
	}
}

func openStore(cfg *config.Config) (session.Store, error) {
	switch cfg.Session.Backend {
	case config.SessionBackendMemory:
		return session.NewMemoryStore(), nil
	case config.SessionBackendRedis:
		rc := session.DefaultRedisConfig()
		rc.Host = cfg.Redis.Host
		rc.Port = cfg.Redis.Port
		rc.Password = cfg.Redis.Password
		rc.DB = cfg.Redis.DB
		rc.TTL = cfg.Redis.TTL
		return session.NewRedisStore(rc)
	default:
		return session.NewFileStore(cfg.Session.File)
	}
}
