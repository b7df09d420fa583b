// Package audit records security-relevant authentication events.
//
// Services emit an [Event] for every register, login, logout and demo
// outcome through an injected [Recorder]. Recorders never fail the caller:
// [Safe] swallows panics raised by a sink.
package audit

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-med-tracker/internal/logger"
)

//go:generate mockgen -source=audit.go -destination=../mock/audit_recorder_mock.go -package=mock

// Event names.
const (
	RegisterSuccess = "auth.register.success"
	RegisterFailure = "auth.register.failure"
	LoginSuccess    = "auth.login.success"
	LoginFailure    = "auth.login.failure"
	LoginLocked     = "auth.login.locked"
	AccountLocked   = "auth.account.locked"
	Logout          = "auth.logout"
	DemoStarted     = "auth.demo.started"
	SessionExpired  = "auth.session.expired"
)

// Event is a named audit record with free-form fields.
type Event struct {
	Name   string
	Fields map[string]any
}

// NewEvent returns an event with no fields.
func NewEvent(name string) Event {
	return Event{Name: name, Fields: make(map[string]any)}
}

// With returns e with key set to value. The receiver is modified in place.
func (e Event) With(key string, value any) Event {
	if e.Fields == nil {
		e.Fields = make(map[string]any)
	}
	e.Fields[key] = value
	return e
}

// Recorder receives audit events.
type Recorder interface {
	Record(ctx context.Context, event Event)
}

// Nop returns a Recorder that drops every event.
func Nop() Recorder {
	return nopRecorder{}
}

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, Event) {}

// logRecorder writes events as structured log lines.
type logRecorder struct {
	logger *logger.Logger
}

// NewLogRecorder returns a Recorder that writes each event to log at info
// level with an "audit" marker.
func NewLogRecorder(log *logger.Logger) Recorder {
	return &logRecorder{logger: log}
}

// Record prefers the request-scoped logger from ctx so the entry carries the
// request's trace_id.
func (r *logRecorder) Record(ctx context.Context, event Event) {
	log := logger.FromContext(ctx)
	if log.GetLevel() == zerolog.Disabled {
		log = r.logger
	}

	log.Info().
		Bool("audit", true).
		Str("event", event.Name).
		Fields(event.Fields).
		Send()
}

// Counter counts events by name. It is the in-process metrics sink.
type Counter struct {
	mu     sync.Mutex
	counts map[string]int64
}

// NewCounter returns an empty Counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int64)}
}

func (c *Counter) Record(_ context.Context, event Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counts[event.Name]++
}

// Count returns how many events named name were recorded.
func (c *Counter) Count(name string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.counts[name]
}

// Snapshot returns a copy of all counters.
func (c *Counter) Snapshot() map[string]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]int64, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}

type multiRecorder []Recorder

// Multi fans each event out to all recorders. Every recorder is isolated by
// [Safe], so one failing sink does not starve the others.
func Multi(recorders ...Recorder) Recorder {
	m := make(multiRecorder, 0, len(recorders))
	for _, r := range recorders {
		if r != nil {
			m = append(m, Safe(r))
		}
	}
	return m
}

func (m multiRecorder) Record(ctx context.Context, event Event) {
	for _, r := range m {
		r.Record(ctx, event)
	}
}

type safeRecorder struct {
	next Recorder
}

// Safe wraps next so that a panic inside it is logged and discarded.
func Safe(next Recorder) Recorder {
	if next == nil {
		return Nop()
	}
	if s, ok := next.(*safeRecorder); ok {
		return s
	}
	return &safeRecorder{next: next}
}

func (s *safeRecorder) Record(ctx context.Context, event Event) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.FromContext(ctx).Error().
				Str("func", "audit.safeRecorder.Record").
				Str("event", event.Name).
				Interface("panic", rec).
				Msg("audit recorder panicked")
		}
	}()

	s.next.Record(ctx, event)
}
