// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "sync"

// inflightGuard rejects a second concurrent submission for the same key
// (e.g. a double-clicked login). It only covers a single process.
type inflightGuard struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newInflightGuard() *inflightGuard {
	return &inflightGuard{keys: make(map[string]struct{})}
}

// TryAcquire marks key busy. When ok is false the key is already held and
// release is a no-op. Callers must defer release; calling it more than once
// is safe.
func (g *inflightGuard) TryAcquire(key string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.keys[key]; busy {
		return func() {}, false
	}
	g.keys[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.keys, key)
			g.mu.Unlock()
		})
	}, true
}

// Len returns the number of keys currently held.
func (g *inflightGuard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.keys)
}
