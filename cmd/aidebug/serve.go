package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/stevennight/ai-debug-tool/internal/cache"
	"github.com/stevennight/ai-debug-tool/internal/client"
	"github.com/stevennight/ai-debug-tool/internal/convert"
	"github.com/stevennight/ai-debug-tool/internal/handler"
	"github.com/stevennight/ai-debug-tool/internal/metrics"
	"github.com/stevennight/ai-debug-tool/internal/service"

	_ "github.com/stevennight/ai-debug-tool/docs"
	httpSwagger "github.com/swaggo/http-swagger"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Expose the debug endpoints over local HTTP",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log := logrus.StandardLogger()

	rasterizer, err := rasterizerByName(cfg.Convert.Rasterizer)
	if err != nil {
		return err
	}
	converter := convert.New(rasterizer, convert.Options{
		MaxDimensionPx: cfg.Convert.MaxDimensionPx,
		DPI:            cfg.Convert.DPI,
		JPEGQuality:    cfg.Convert.JPEGQuality,
	}, log)

	chatService := service.New(log, converter, client.New(log), cfg.API)

	if cfg.CacheEnable {
		chatService.SetCache(cache.New(
			cfg.Redis.Addr,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Redis.TTL,
		))
		log.Info("set redis as response cache")
	}

	h := handler.NewChatHandler(chatService)

	r := chi.NewRouter()
	r.Use([]func(http.Handler) http.Handler{
		middleware.Logger,
		middleware.Recoverer,
		middleware.Throttle(cfg.Server.ThrottleLimit),
		middleware.Timeout(cfg.Server.Timeout),
		metrics.Middleware,
	}...)

	r.Post("/v1/chat", h.Chat)
	r.Post("/v1/chat/stream", h.ChatStream)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Server.Port).Info("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}
