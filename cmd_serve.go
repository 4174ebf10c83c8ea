package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpLayer "frt-offers/http"
	"frt-offers/repository"
	"frt-offers/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the offer HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func runServer(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Tracing.OTLPEndpoint, cfg.Tracing.ServiceName)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("tracing shutdown", zap.Error(err))
		}
	}()

	a, err := newApp(ctx, cfg, logger, true)
	if err != nil {
		logger.Error("refusing to start: reference data invalid", zap.Error(err))
		return err
	}
	defer a.Close()

	if cfg.Data.Dir != "" && cfg.Data.Watch {
		watcher, err := repository.NewReferenceWatcher(cfg.Data.Dir, a.store, cfg.GetReloadDebounce(), logger.Named("watcher"))
		if err != nil {
			return err
		}
		if err := watcher.Start(ctx); err != nil {
			return err
		}
		defer watcher.Stop()
	}

	var limiter *httpLayer.RateLimiter
	if cfg.RateLimit.Capacity > 0 {
		limiter = httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.GetRateLimitWindow())
		defer limiter.Stop()
	}

	router := httpLayer.NewRouter(
		httpLayer.NewOfferHandler(a.offers, logger),
		httpLayer.NewCatalogHandler(a.offers, a.store, logger),
		limiter,
		logger.Named("http"),
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
		IdleTimeout:  cfg.GetIdleTimeout(),
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("offer API listening", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		logger.Error("server failed", zap.Error(err))
		return err
	case <-ctx.Done():
		logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
		return err
	}

	logger.Info("server exited")
	return nil
}
