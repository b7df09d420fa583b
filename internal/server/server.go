package server

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-med-tracker/internal/config"
	"github.com/MKhiriev/go-med-tracker/internal/handler"
	"github.com/MKhiriev/go-med-tracker/internal/logger"
)

type server struct {
	httpServer *httpServer
	background Background
	logger     *logger.Logger
}

// NewServer builds the HTTP server over handlers. background may be nil.
func NewServer(handlers *handler.Handlers, background Background, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		background: background,
		logger:     logger,
	}, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.run(ctx); err != nil {
		s.logger.Err(err).Msg("error running server")
	}
}

// Shutdown stops accepting requests, drains in-flight ones, then stops the
// background jobs.
func (s *server) Shutdown() {
	if s.httpServer != nil {
		s.httpServer.Shutdown()
	}

	if s.background != nil {
		s.background.Stop()
	}
}

func (s *server) run(ctx context.Context) error {
	if s.httpServer == nil {
		return errNoServersToRun
	}

	if s.background != nil {
		if err := s.background.Start(); err != nil {
			return fmt.Errorf("error starting workers: %w", err)
		}
	}

	s.logger.Info().Str("address", s.httpServer.server.Addr).Msg("Launching HTTP server")
	served := make(chan struct{})
	go func() {
		s.httpServer.RunServer()
		close(served)
	}()

	// a listener failure ends the run as well as a signal
	select {
	case <-ctx.Done():
	case <-served:
	}

	s.Shutdown()
	<-served
	s.logger.Info().Msg("server Shutdown gracefully")

	return nil
}
