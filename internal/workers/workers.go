package workers

import (
	"fmt"

	"github.com/MKhiriev/go-med-tracker/internal/config"
	"github.com/MKhiriev/go-med-tracker/internal/logger"
	"github.com/MKhiriev/go-med-tracker/internal/service"
	"github.com/MKhiriev/go-med-tracker/internal/utils"
)

type Workers struct {
	workers []Worker
	started int
}

// NewWorkers builds every configured background job.
func NewWorkers(services *service.Services, cfg config.Workers, clock utils.Clock, logger *logger.Logger) (*Workers, error) {
	cleanup, err := NewSessionCleanupWorker(services.SessionService, cfg.SessionCleanupSchedule, clock, logger)
	if err != nil {
		return nil, fmt.Errorf("session cleanup worker: %w", err)
	}

	return &Workers{workers: []Worker{cleanup}}, nil
}

// Start starts the workers in order. If one fails, the ones already started
// are stopped again and the error is returned.
func (w *Workers) Start() error {
	for i, worker := range w.workers {
		if err := worker.Start(); err != nil {
			w.started = i
			w.Stop()
			return err
		}
	}
	w.started = len(w.workers)
	return nil
}

// Stop stops started workers in reverse order.
func (w *Workers) Stop() {
	for i := w.started - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
	w.started = 0
}
