package service

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-med-tracker/internal/config"
	"github.com/MKhiriev/go-med-tracker/models"
)

var testEpoch = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

// ─────────────────────────────────────────────
// Fakes
// ─────────────────────────────────────────────

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func (c *fakeClock) Set(now time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

// plainHasher stores passwords as "plain:<password>".
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "plain:" + password, nil }

func (plainHasher) Verify(password, encodedHash string) bool {
	return encodedHash != "" && encodedHash == "plain:"+password
}

func testConfig() *config.StructuredConfig {
	return &config.StructuredConfig{
		App: config.App{
			TokenSignKey:  "test-sign-key",
			TokenIssuer:   "go-med-tracker",
			TokenDuration: time.Hour,
			Version:       "1.2.3",
		},
		Auth: config.Auth{
			IdleTimeout:         30 * time.Minute,
			LockoutThreshold:    5,
			LockoutDuration:     15 * time.Minute,
			SessionCleanupGrace: 10 * time.Minute,
		},
	}
}
