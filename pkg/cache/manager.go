/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package cache provides short-lived read-through caches for device reads.
// Any mutation anywhere in the system clears every family at once.
package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/carverauto/fleetsync/pkg/hashutil"
	"github.com/carverauto/fleetsync/pkg/logger"
)

// Entry is a cached payload. Data is shared between readers and must be
// treated as immutable.
type Entry struct {
	Data      interface{}
	ETag      string
	StoredAt  time.Time
	ExpiresAt time.Time
}

// Stats are cumulative counters since the manager was created.
type Stats struct {
	Hits          uint64
	Misses        uint64
	Sets          uint64
	Invalidations uint64
	Entries       int
}

// Loader produces a fresh payload for a cache miss.
type Loader func(ctx context.Context) (interface{}, error)

type setOptions struct {
	etag string
	ttl  time.Duration
}

// SetOption customises a single Set call.
type SetOption func(*setOptions)

// WithETag stores a precomputed ETag instead of hashing the payload.
func WithETag(etag string) SetOption {
	return func(o *setOptions) { o.etag = etag }
}

// WithTTL overrides the family TTL for one entry.
func WithTTL(ttl time.Duration) SetOption {
	return func(o *setOptions) { o.ttl = ttl }
}

// Manager holds every cache family behind one lock.
type Manager struct {
	mu         sync.RWMutex
	families   map[string]FamilyConfig
	entries    map[string]Entry
	generation uint64
	group      singleflight.Group
	nowFn      func() time.Time
	logger     logger.Logger

	hits          atomic.Uint64
	misses        atomic.Uint64
	sets          atomic.Uint64
	invalidations atomic.Uint64
}

// NewManager validates cfg and returns an empty manager.
func NewManager(cfg Config, log logger.Logger) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	families := make(map[string]FamilyConfig, len(cfg.Families))
	for name, fc := range cfg.Families {
		families[name] = fc
	}

	return &Manager{
		families: families,
		entries:  make(map[string]Entry),
		nowFn:    time.Now,
		logger:   log,
	}, nil
}

// SetNowFn overrides the clock used for expiry. Intended for tests.
func (m *Manager) SetNowFn(now func() time.Time) {
	if now == nil {
		return
	}

	m.mu.Lock()
	m.nowFn = now
	m.mu.Unlock()
}

// familyOf returns the family for a cache name. Names are either a bare
// family ("devices") or a family-scoped key ("enrichment:<device_id>").
func familyOf(name string) string {
	family, _, _ := strings.Cut(name, ":")
	return family
}

// Get returns the entry for name when present and unexpired.
func (m *Manager) Get(name string) (Entry, bool) {
	m.mu.RLock()
	entry, ok := m.entries[name]
	now := m.nowFn()
	m.mu.RUnlock()

	if !ok || !now.Before(entry.ExpiresAt) {
		m.misses.Add(1)
		return Entry{}, false
	}

	m.hits.Add(1)

	return entry, true
}

// Set stores data under name with a fresh expiry and returns the stored entry.
func (m *Manager) Set(name string, data interface{}, opts ...SetOption) (Entry, error) {
	var o setOptions
	for _, opt := range opts {
		opt(&o)
	}

	entry, _, err := m.store(name, data, o, nil)

	return entry, err
}

// setIfGeneration stores data only while no InvalidateAll has happened since
// gen was read. The entry is returned either way; stored reports whether it
// was kept.
func (m *Manager) setIfGeneration(name string, data interface{}, gen uint64) (entry Entry, stored bool, err error) {
	return m.store(name, data, setOptions{}, &gen)
}

func (m *Manager) store(name string, data interface{}, o setOptions, gen *uint64) (Entry, bool, error) {
	m.mu.RLock()
	fc, ok := m.families[familyOf(name)]
	m.mu.RUnlock()

	if !ok {
		return Entry{}, false, fmt.Errorf("%w: %s", ErrUnknownFamily, name)
	}

	etag := o.etag
	if etag == "" && fc.ETag {
		var err error

		etag, err = hashutil.ETagJSON(data)
		if err != nil {
			return Entry{}, false, fmt.Errorf("compute etag for %s: %w", name, err)
		}
	}

	ttl := fc.TTL.Std()
	if o.ttl > 0 {
		ttl = o.ttl
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != nil && *gen != m.generation {
		return Entry{Data: data, ETag: etag}, false, nil
	}

	now := m.nowFn()
	entry := Entry{Data: data, ETag: etag, StoredAt: now, ExpiresAt: now.Add(ttl)}
	m.entries[name] = entry
	m.sets.Add(1)

	return entry, true, nil
}

// InvalidateAll drops every entry of every family.
func (m *Manager) InvalidateAll() {
	m.mu.Lock()
	dropped := len(m.entries)
	m.entries = make(map[string]Entry)
	m.generation++
	m.mu.Unlock()

	m.invalidations.Add(1)

	if dropped > 0 {
		m.logger.Debug().Int("entries", dropped).Msg("Cache invalidated")
	}
}

// GetOrLoad returns the cached entry for name or calls load once, even when
// many goroutines miss at the same time. A load that overlaps InvalidateAll
// is returned to its callers but not stored.
func (m *Manager) GetOrLoad(ctx context.Context, name string, load Loader) (Entry, error) {
	if load == nil {
		return Entry{}, ErrNilLoader
	}

	if entry, ok := m.Get(name); ok {
		return entry, nil
	}

	v, err, _ := m.group.Do(name, func() (interface{}, error) {
		if entry, ok := m.Get(name); ok {
			return entry, nil
		}

		m.mu.RLock()
		gen := m.generation
		m.mu.RUnlock()

		data, err := load(ctx)
		if err != nil {
			return nil, err
		}

		entry, stored, err := m.setIfGeneration(name, data, gen)
		if err != nil {
			return nil, err
		}

		if !stored {
			m.logger.Debug().Str("cache", name).Msg("Discarding load that raced with invalidation")
		}

		return entry, nil
	})
	if err != nil {
		return Entry{}, fmt.Errorf("load %s: %w", name, err)
	}

	return v.(Entry), nil
}

// Matches reports whether ifNoneMatch matches the ETag of the cached entry,
// so a conditional read can answer "not modified".
func (m *Manager) Matches(name, ifNoneMatch string) bool {
	entry, ok := m.Get(name)
	if !ok || entry.ETag == "" {
		return false
	}

	return hashutil.MatchesIfNoneMatch(ifNoneMatch, entry.ETag)
}

// Stats returns a snapshot of the cache counters.
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	n := len(m.entries)
	m.mu.RUnlock()

	return Stats{
		Hits:          m.hits.Load(),
		Misses:        m.misses.Load(),
		Sets:          m.sets.Load(),
		Invalidations: m.invalidations.Load(),
		Entries:       n,
	}
}
