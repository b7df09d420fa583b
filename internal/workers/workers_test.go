// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingWorker appends lifecycle events to a shared log.
type recordingWorker struct {
	name     string
	startErr error
	log      *[]string
}

func (r *recordingWorker) Start() error {
	*r.log = append(*r.log, "start "+r.name)
	return r.startErr
}

func (r *recordingWorker) Stop() {
	*r.log = append(*r.log, "stop "+r.name)
}

func TestWorkers_StartStopOrder(t *testing.T) {
	var log []string
	ws := &Workers{workers: []Worker{
		&recordingWorker{name: "a", log: &log},
		&recordingWorker{name: "b", log: &log},
	}}

	require.NoError(t, ws.Start())
	ws.Stop()

	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, log)
}

func TestWorkers_StartFailureStopsStarted(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	ws := &Workers{workers: []Worker{
		&recordingWorker{name: "a", log: &log},
		&recordingWorker{name: "b", log: &log, startErr: boom},
		&recordingWorker{name: "c", log: &log},
	}}

	err := ws.Start()

	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"start a", "start b", "stop a"}, log)
}

func TestWorkers_StopWithoutStart(t *testing.T) {
	var log []string
	ws := &Workers{workers: []Worker{&recordingWorker{name: "a", log: &log}}}

	ws.Stop()
	(&Workers{}).Stop()

	assert.Empty(t, log)
}
