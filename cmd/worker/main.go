package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agrovision/crop-disease-api/internal/bootstrap"
	"github.com/agrovision/crop-disease-api/internal/config"
	"github.com/agrovision/crop-disease-api/internal/observability/logging"
	"github.com/agrovision/crop-disease-api/internal/observability/metrics"
)

const serviceName = "crop-disease-worker"

func main() {
	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger(serviceName, cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics(serviceName)
	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: workerMetrics.Handler(),
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("worker metrics server error", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	slog.Info("worker subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeScanRequested(ctx, func(handlerCtx context.Context, scanID string) error {
		processCtx, cancel := context.WithTimeout(handlerCtx, 2*time.Minute)
		defer cancel()

		if scan, err := app.Repo.GetByID(processCtx, scanID); err == nil {
			workerMetrics.ObserveQueueLag(serviceName, time.Since(scan.CreatedAt))
		}

		workerMetrics.StartScan()
		start := time.Now()
		processErr := app.ProcessUC.ProcessByID(processCtx, scanID)
		workerMetrics.FinishScan(serviceName, time.Since(start), processErr)
		return processErr
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}
