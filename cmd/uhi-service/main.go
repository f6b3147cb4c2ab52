package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/urban-heat-service/internal/adapter/httpadapter"
	"github.com/couchcryptid/urban-heat-service/internal/config"
	"github.com/couchcryptid/urban-heat-service/internal/model"
	"github.com/couchcryptid/urban-heat-service/internal/observability"
	"github.com/couchcryptid/urban-heat-service/internal/predict"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// The model must exist before the listener is bound.
	m, err := model.Train(model.TrainOptions{Seed: cfg.ModelSeed, Samples: cfg.ModelSamples})
	if err != nil {
		logger.Error("failed to build model", "error", err)
		os.Exit(1)
	}
	w := m.Weights()
	logger.Info("model trained",
		"seed", cfg.ModelSeed,
		"samples", m.Samples(),
		"w_lat", w.Lat,
		"w_lon", w.Lon,
		"w_avg_temp", w.AvgTemp,
		"intercept", m.Intercept(),
		"r_squared", m.RSquared(),
	)
	metrics.ModelRSquared.Set(m.RSquared())
	metrics.ModelTrainingSamples.Set(float64(m.Samples()))

	svc := predict.New(m, logger, metrics, nil)
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			serveErr <- err
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	metrics.ModelReady.Set(0)

	select {
	case <-serveErr:
		logger.Error("exiting after server failure")
		os.Exit(1)
	default:
	}

	logger.Info("shutdown complete")
}
