package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rksiitd1/amazing-dashboard/cmd/showcase/cli"
	"github.com/rksiitd1/amazing-dashboard/internal/app"
	"github.com/rksiitd1/amazing-dashboard/internal/chart/echarts"
	"github.com/rksiitd1/amazing-dashboard/internal/chart/raster"
	"github.com/rksiitd1/amazing-dashboard/internal/chart/svg"
	"github.com/rksiitd1/amazing-dashboard/internal/observability"
	"github.com/rksiitd1/amazing-dashboard/internal/shared"
	"github.com/rksiitd1/amazing-dashboard/internal/showcase"
	showcasehttp "github.com/rksiitd1/amazing-dashboard/internal/showcase/http"
	"github.com/rksiitd1/amazing-dashboard/internal/view"
)

// downloadsPerMinute bounds the chart and CSV downloads per client.
const downloadsPerMinute = 30

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(serve)
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, cli.ErrExit) {
			slog.Default().Error("showcase", slog.Any("error", err))
		}
		os.Exit(1)
	}
}

func serve(ctx context.Context) error {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return nil
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		return err
	}

	logger := app.NewLogger(cfg)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		return err
	}

	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret, cfg.IsProduction())
	metrics := observability.NewMetrics()
	service := showcase.NewService(cfg.LocaleTag())

	showcaseHandler := showcasehttp.NewHandler(
		logger,
		service,
		templates,
		csrfManager,
		showcasehttp.Renderers{
			Inline:      svg.Renderer{},
			PNG:         raster.Renderer{MaxXTicks: 12},
			Interactive: echarts.Renderer{AssetsHost: cfg.EChartsAssetsHost},
		},
		metrics,
		showcasehttp.Options{
			PageTitle:       cfg.PageTitle,
			UploadMaxBytes:  cfg.UploadMaxBytes,
			DownloadsPerMin: downloadsPerMinute,
			AssetsHost:      cfg.EChartsAssetsHost,
		},
	)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		CSRFManager:     csrfManager,
		ShowcaseHandler: showcaseHandler,
		Metrics:         metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-serveErr:
		logger.Error("http server", slog.Any("error", err))
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
		return err
	}
	return nil
}
