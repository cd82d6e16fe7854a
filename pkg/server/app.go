package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	drepo "StockSage/internal/domain/repository"
	"StockSage/pkg/config"
	xhttp "StockSage/pkg/http"
	"StockSage/pkg/logger"
	"StockSage/pkg/queue"
)

// App encapsulates the application lifecycle: the intake queue with its
// worker pool, the webhook HTTP server, and the optional outcome publisher.
type App struct {
	cfg        *config.Config
	log        *logger.Logger
	q          queue.Runner
	httpServer *xhttp.Server
	publisher  drepo.OutcomePublisher // optional, may be nil
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	lgr *logger.Logger,
	q queue.Runner,
	handler xhttp.Handler,
	publisher drepo.OutcomePublisher,
) *App {
	httpServer := xhttp.NewServer(lgr, handler,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
	)

	return &App{
		cfg:        cfg,
		log:        lgr,
		q:          q,
		httpServer: httpServer,
		publisher:  publisher,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	if err := a.q.Start(); err != nil {
		a.log.Error("queue start error", logger.Error(err))
		return err
	}

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", logger.Error(err))
		return err
	}

	a.log.Info("stocksage started",
		logger.String("env", a.cfg.Environment),
		logger.Int("port", a.cfg.Server.Port),
		logger.String("queue_backend", a.cfg.Queue.Backend),
		logger.Int("workers", a.cfg.Queue.Workers))

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services. In-flight analyses past the
// shutdown timeout are abandoned.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error("http shutdown error", logger.Error(err))
	}

	if err := a.q.Stop(ctx); err != nil {
		a.log.Warn("queue stop error", logger.Error(err))
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Warn("publisher close error", logger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
