package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"love-vs-grades-go/internal/api"
	"love-vs-grades-go/internal/config"
	"love-vs-grades-go/internal/dataset"
	"love-vs-grades-go/internal/logger"
	"love-vs-grades-go/internal/metrics"
	"love-vs-grades-go/internal/pipeline"
	"love-vs-grades-go/internal/processor"
	"love-vs-grades-go/internal/progress"
	"love-vs-grades-go/internal/sheets"
)

func main() {
	cfg := config.Load()

	log := logger.New()
	log.WithField("service", "love-vs-grades-go").Info("starting service")

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("service terminated")
	}
	log.Info("service stopped")
}

func run(cfg config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.MustNewMetrics(reg)

	store, closeStore, err := progress.Open(cfg.ProgressBackend, cfg.ProgressDir, cfg.RedisAddr, log)
	if err != nil {
		return fmt.Errorf("progress store: %w", err)
	}
	defer closeStore()
	log.WithField("backend", cfg.ProgressBackend).Info("progress store ready")

	client := sheets.New(cfg.SheetURL, cfg.IPLookupURL, cfg.IPLookupTimeout, cfg.HTTPTimeout, log)

	var src pipeline.Source
	var sink processor.Sink
	switch {
	case cfg.SheetURL != "":
		src, sink = client, client
		log.Info("reading responses from the sheet endpoint")
	case cfg.DatasetPath != "":
		src = dataset.NewXLSXSource(cfg.DatasetPath, log)
		log.WithField("dataset_path", cfg.DatasetPath).Warn("SHEET_URL not set, serving insights from workbook; submissions are not stored")
	default:
		src = emptySource{}
		log.Warn("neither SHEET_URL nor DATASET_PATH set, insights will be empty")
	}

	refresher := pipeline.NewRefresher(src, cfg.RefreshInterval, m, log)
	proc := processor.New(sink, store, m, log)
	h := api.NewHandler(refresher, store, proc, m, log, cfg.InsightsPassword)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.NewRouter(h, cfg.CORSOrigins, reg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return refresher.Run(gctx)
	})
	g.Go(func() error {
		log.WithField("addr", addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("http shutdown")
		}
		if err := proc.Wait(shutdownCtx); err != nil {
			log.WithError(err).Warn("pending submissions dropped")
		}
		return nil
	})
	return g.Wait()
}

type emptySource struct{}

func (emptySource) Fetch(context.Context) ([]any, error) { return []any{}, nil }
