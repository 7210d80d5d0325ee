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

package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/fleetsync/pkg/logger"
	"github.com/carverauto/fleetsync/pkg/models"
)

func newTestManager(t *testing.T) (*Manager, *time.Time) {
	t.Helper()

	m, err := NewManager(DefaultConfig(), logger.NewTestLogger())
	require.NoError(t, err)

	now := time.Unix(1_700_000_000, 0)
	m.SetNowFn(func() time.Time { return now })

	return m, &now
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{Families: map[string]FamilyConfig{FamilyDevices: {TTL: models.Duration(time.Second)}}}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, time.Second, cfg.Families[FamilyDevices].TTL.Std())
	assert.Equal(t, 7*24*time.Hour, cfg.Families[FamilyGroups].TTL.Std())

	bad := Config{Families: map[string]FamilyConfig{"custom": {}}}
	require.ErrorIs(t, bad.Validate(), ErrInvalidTTL)
}

func TestGetSetExpiry(t *testing.T) {
	m, now := newTestManager(t)

	_, ok := m.Get(FamilyDevices)
	assert.False(t, ok)

	stored, err := m.Set(FamilyDevices, []string{"a", "b"})
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ETag)
	assert.Equal(t, now.Add(30*time.Second), stored.ExpiresAt)

	entry, ok := m.Get(FamilyDevices)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, entry.Data)

	*now = now.Add(29 * time.Second)
	_, ok = m.Get(FamilyDevices)
	assert.True(t, ok)

	*now = now.Add(time.Second)
	_, ok = m.Get(FamilyDevices)
	assert.False(t, ok)
}

func TestSetFamilies(t *testing.T) {
	m, _ := newTestManager(t)

	entry, err := m.Set(FamilyEnrichment+":dev-1", map[string]int{"clients": 3})
	require.NoError(t, err)
	assert.Empty(t, entry.ETag, "enrichment entries carry no etag")

	entry, err = m.Set(FamilyEnrichment+":dev-2", "x", WithETag(`"abc"`), WithTTL(time.Second))
	require.NoError(t, err)
	assert.Equal(t, `"abc"`, entry.ETag)
	assert.Equal(t, entry.StoredAt.Add(time.Second), entry.ExpiresAt)

	_, err = m.Set("unknown", 1)
	require.ErrorIs(t, err, ErrUnknownFamily)
}

func TestInvalidateAllClearsEveryFamily(t *testing.T) {
	m, _ := newTestManager(t)

	for _, name := range []string{FamilyDevices, FamilyEnrichment + ":d1", FamilyGroups} {
		_, err := m.Set(name, name)
		require.NoError(t, err)
	}

	m.InvalidateAll()

	for _, name := range []string{FamilyDevices, FamilyEnrichment + ":d1", FamilyGroups} {
		_, ok := m.Get(name)
		assert.False(t, ok, name)
	}

	stats := m.Stats()
	assert.Equal(t, uint64(1), stats.Invalidations)
	assert.Equal(t, 0, stats.Entries)
}

func TestMatches(t *testing.T) {
	m, _ := newTestManager(t)

	entry, err := m.Set(FamilyDevices, []int{1, 2, 3})
	require.NoError(t, err)

	assert.True(t, m.Matches(FamilyDevices, entry.ETag))
	assert.True(t, m.Matches(FamilyDevices, "W/"+entry.ETag))
	assert.False(t, m.Matches(FamilyDevices, `"stale"`))

	m.InvalidateAll()
	assert.False(t, m.Matches(FamilyDevices, entry.ETag))
}

func TestGetOrLoadCollapsesConcurrentMisses(t *testing.T) {
	m, _ := newTestManager(t)

	var (
		calls   atomic.Int32
		release = make(chan struct{})
		wg      sync.WaitGroup
	)

	load := func(context.Context) (interface{}, error) {
		calls.Add(1)
		<-release

		return "fresh", nil
	}

	const callers = 10

	results := make([]Entry, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			entry, err := m.GetOrLoad(context.Background(), FamilyDevices, load)
			assert.NoError(t, err)

			results[i] = entry
		}(i)
	}

	// let the callers pile up on the in-flight load
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, calls.Load(), int32(2))

	for _, r := range results {
		assert.Equal(t, "fresh", r.Data)
	}

	entry, ok := m.Get(FamilyDevices)
	require.True(t, ok)
	assert.Equal(t, "fresh", entry.Data)
}

func TestGetOrLoadDropsRacedInvalidation(t *testing.T) {
	m, _ := newTestManager(t)

	entry, err := m.GetOrLoad(context.Background(), FamilyDevices, func(context.Context) (interface{}, error) {
		m.InvalidateAll()
		return "stale", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "stale", entry.Data)
	assert.NotEmpty(t, entry.ETag)

	_, ok := m.Get(FamilyDevices)
	assert.False(t, ok)
}

func TestSetIfGenerationRejectsInvalidatedLoad(t *testing.T) {
	m, _ := newTestManager(t)

	m.mu.RLock()
	gen := m.generation
	m.mu.RUnlock()

	m.InvalidateAll()

	entry, stored, err := m.setIfGeneration(FamilyDevices, "stale", gen)
	require.NoError(t, err)
	assert.False(t, stored)
	assert.Equal(t, "stale", entry.Data)
	assert.NotEmpty(t, entry.ETag)

	_, ok := m.Get(FamilyDevices)
	assert.False(t, ok)

	m.mu.RLock()
	gen = m.generation
	m.mu.RUnlock()

	_, stored, err = m.setIfGeneration(FamilyDevices, "fresh", gen)
	require.NoError(t, err)
	assert.True(t, stored)

	entry, ok = m.Get(FamilyDevices)
	require.True(t, ok)
	assert.Equal(t, "fresh", entry.Data)
}

func TestGetOrLoadErrors(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.GetOrLoad(context.Background(), FamilyDevices, nil)
	require.ErrorIs(t, err, ErrNilLoader)

	errBoom := errors.New("boom")
	_, err = m.GetOrLoad(context.Background(), FamilyDevices, func(context.Context) (interface{}, error) {
		return nil, errBoom
	})
	require.ErrorIs(t, err, errBoom)

	_, ok := m.Get(FamilyDevices)
	assert.False(t, ok)
}

func TestStatsCounters(t *testing.T) {
	m, _ := newTestManager(t)

	m.Get(FamilyGroups)
	_, err := m.Set(FamilyGroups, "g")
	require.NoError(t, err)
	m.Get(FamilyGroups)

	stats := m.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, uint64(1), stats.Sets)
	assert.Equal(t, 1, stats.Entries)
}
