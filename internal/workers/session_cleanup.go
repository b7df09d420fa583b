// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-med-tracker/internal/logger"
	"github.com/MKhiriev/go-med-tracker/internal/service"
	"github.com/MKhiriev/go-med-tracker/internal/utils"
	"github.com/robfig/cron/v3"
)

const (
	sweepTimeout = 30 * time.Second
	stopTimeout  = 5 * time.Second
)

var errAlreadyStarted = errors.New("worker already started")

// SessionCleanupWorker periodically deletes sessions that expired or were
// revoked longer ago than the configured grace period.
type SessionCleanupWorker struct {
	sessions service.SessionService
	schedule string
	clock    utils.Clock
	cron     *cron.Cron
	running  bool
	logger   *logger.Logger
}

// NewSessionCleanupWorker validates schedule, which accepts standard
// five-field cron expressions as well as descriptors such as "@every 5m".
func NewSessionCleanupWorker(sessions service.SessionService, schedule string, clock utils.Clock, logger *logger.Logger) (*SessionCleanupWorker, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	w := &SessionCleanupWorker{
		sessions: sessions,
		schedule: schedule,
		clock:    clock,
		cron:     cron.New(),
		logger:   logger,
	}
	if _, err := w.cron.AddFunc(schedule, w.run); err != nil {
		return nil, fmt.Errorf("error scheduling session cleanup: %w", err)
	}

	return w, nil
}

func (w *SessionCleanupWorker) Start() error {
	if w.running {
		return errAlreadyStarted
	}

	w.cron.Start()
	w.running = true
	w.logger.Info().Str("schedule", w.schedule).Msg("session cleanup worker started")
	return nil
}

func (w *SessionCleanupWorker) Stop() {
	if !w.running {
		return
	}
	w.running = false

	select {
	case <-w.cron.Stop().Done():
		w.logger.Info().Msg("session cleanup worker stopped")
	case <-time.After(stopTimeout):
		w.logger.Warn().Msg("session cleanup still running after stop timeout")
	}
}

// Sweep runs one cleanup pass with the current time as the cutoff.
func (w *SessionCleanupWorker) Sweep(ctx context.Context) (int64, error) {
	return w.sessions.Cleanup(ctx, w.clock.Now())
}

func (w *SessionCleanupWorker) run() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	ctx = w.logger.WithContext(ctx)

	deleted, err := w.Sweep(ctx)
	if err != nil {
		w.logger.Err(err).Str("func", "SessionCleanupWorker.run").Msg("session cleanup failed")
		return
	}

	w.logger.Debug().Int64("deleted", deleted).Msg("session cleanup finished")
}
