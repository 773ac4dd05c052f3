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

	"github.com/google/uuid"

	"github.com/example/agenda/internal/application"
	"github.com/example/agenda/internal/config"
	httptransport "github.com/example/agenda/internal/http"
	"github.com/example/agenda/internal/ics"
	"github.com/example/agenda/internal/logging"
)

type serveOptions struct {
	Addr string
}

func runServe(parent context.Context, o *serveOptions) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if o.Addr != "" {
		cfg.HTTPAddr = o.Addr
	}
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	service := application.NewAgendaServiceWithLogger(uuid.NewString, time.Now, cfg.Calendar(), logger)
	server := newServer(cfg, service, logger, time.Now)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("agenda API listening", "addr", server.Addr, "week_start", cfg.WeekStart.String(), "timezone", cfg.Location.String())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		return err
	}
	return nil
}

// newServer wires the HTTP transport around service. The export DTSTAMP is
// pinned to the start time so unchanged feeds keep their ETag.
func newServer(cfg config.Config, service *application.AgendaService, logger *slog.Logger, now func() time.Time) *http.Server {
	started := now()

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Events: httptransport.NewEventHandler(service, logger),
		Notes:  httptransport.NewNoteHandler(service, logger),
		Views: httptransport.NewViewHandler(service, httptransport.ViewOptions{
			Palette: cfg.TypeColors,
			Export: ics.Options{
				Duration: cfg.EventDuration,
				Now:      func() time.Time { return started },
			},
			Now: now,
		}, logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
			httptransport.Recoverer(logger),
		},
	})

	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
