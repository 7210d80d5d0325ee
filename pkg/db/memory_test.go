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

package db

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/fleetsync/pkg/models"
)

func TestMemoryStoreResolveDevice(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.ResolveDevice(ctx, models.DeviceIdentity{DeviceID: "  "})
	require.ErrorIs(t, err, ErrDeviceIDRequired)

	d, err := store.ResolveDevice(ctx, models.DeviceIdentity{DeviceID: "d1", Name: "Router 55", MACAddress: "aa"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusOffline, d.CurrentStatus)

	// An empty name never clobbers a stored one.
	d, err = store.ResolveDevice(ctx, models.DeviceIdentity{DeviceID: "d1", FirmwareVersion: "2.1"})
	require.NoError(t, err)
	assert.Equal(t, "Router 55", d.Name)
	assert.Equal(t, "aa", d.MACAddress)
	assert.Equal(t, "2.1", d.FirmwareVersion)
}

func TestMemoryStoreAppendTelemetryKeepsLastSeenMonotonic(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.ResolveDevice(ctx, models.DeviceIdentity{DeviceID: "d1"})
	require.NoError(t, err)

	t1 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	t0 := t1.Add(-time.Hour)

	for _, ts := range []time.Time{t1, t0} {
		ts := ts
		rec := &models.TelemetryRecord{DeviceID: "d1", Timestamp: ts, Status: models.StatusOnline}
		require.NoError(t, store.AppendTelemetry(ctx, rec, models.DeviceState{
			DeviceID: "d1", Status: models.StatusOnline, LastSeen: &ts,
		}))
		assert.NotZero(t, rec.ID)
	}

	d, err := store.GetDevice(ctx, "d1")
	require.NoError(t, err)
	require.NotNil(t, d.LastSeen)
	assert.True(t, d.LastSeen.Equal(t1))

	latest, err := store.LatestTelemetry(ctx, "d1")
	require.NoError(t, err)
	assert.True(t, latest.Timestamp.Equal(t1))
	assert.Equal(t, models.SourcePoll, latest.Source)
}

func TestMemoryStoreAppendTelemetryIgnoresOlderState(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.ResolveDevice(ctx, models.DeviceIdentity{DeviceID: "d1"})
	require.NoError(t, err)

	t1 := time.Date(2025, 3, 1, 12, 10, 0, 0, time.UTC)
	t0 := t1.Add(-5 * time.Minute)

	require.NoError(t, store.AppendTelemetry(ctx,
		&models.TelemetryRecord{DeviceID: "d1", Timestamp: t1, Status: models.StatusOnline, TotalTxBytes: 500},
		models.DeviceState{DeviceID: "d1", Status: models.StatusOnline, TotalTxBytes: 500, ObservedAt: t1}))

	require.NoError(t, store.AppendTelemetry(ctx,
		&models.TelemetryRecord{DeviceID: "d1", Timestamp: t0, Status: models.StatusOffline, TotalTxBytes: 100},
		models.DeviceState{DeviceID: "d1", Status: models.StatusOffline, TotalTxBytes: 100, ObservedAt: t0}))

	d, err := store.GetDevice(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusOnline, d.CurrentStatus)
	assert.Equal(t, int64(500), d.TotalTxBytes)
	assert.Len(t, store.Telemetry("d1"), 2)
}

func TestMemoryStoreLatestTelemetryNone(t *testing.T) {
	store := NewMemoryStore()

	rec, err := store.LatestTelemetry(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, rec)

	has, err := store.HasTelemetry(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestMemoryStoreLockInsertIsExclusive(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now()

	const workers = 32

	var (
		wg   sync.WaitGroup
		wins atomic.Int32
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			ok, err := store.InsertLockIfAbsent(ctx, models.LockRow{
				JobName: "poll", HolderID: string(rune('a' + i)), AcquiredAt: now,
			})
			assert.NoError(t, err)

			if ok {
				wins.Add(1)
			}
		}(i)
	}

	wg.Wait()
	assert.Equal(t, int32(1), wins.Load())
}

func TestMemoryStoreReplaceLockIf(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	old := models.LockRow{JobName: "poll", HolderID: "a", AcquiredAt: time.Unix(100, 0)}

	_, err := store.InsertLockIfAbsent(ctx, old)
	require.NoError(t, err)

	ok, err := store.ReplaceLockIf(ctx, old, "b", time.Unix(200, 0))
	require.NoError(t, err)
	assert.True(t, ok)

	// The second reclaimer observed the same stale row and must lose.
	ok, err = store.ReplaceLockIf(ctx, old, "c", time.Unix(201, 0))
	require.NoError(t, err)
	assert.False(t, ok)

	row, err := store.GetLock(ctx, "poll")
	require.NoError(t, err)
	assert.Equal(t, "b", row.HolderID)

	_, err = store.GetLock(ctx, "other")
	require.ErrorIs(t, err, ErrLockNotFound)
}

func TestMemoryStoreMergeGroup(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	seen := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, id := range []string{"keep", "gone"} {
		_, err := store.ResolveDevice(ctx, models.DeviceIdentity{DeviceID: id, Name: "Router 55"})
		require.NoError(t, err)
	}

	require.NoError(t, store.SetExternalTaskID(ctx, "gone", "task-9"))
	require.NoError(t, store.AppendTelemetry(ctx,
		&models.TelemetryRecord{DeviceID: "gone", Timestamp: seen, Status: models.StatusOnline},
		models.DeviceState{DeviceID: "gone", Status: models.StatusOnline, LastSeen: &seen}))

	dup, err := store.HasDuplicateNames(ctx)
	require.NoError(t, err)
	assert.True(t, dup)

	_, err = store.MergeGroup(ctx, "keep", nil)
	require.ErrorIs(t, err, ErrEmptyMergeGroup)

	_, err = store.MergeGroup(ctx, "keep", []string{"keep"})
	require.ErrorIs(t, err, ErrSurvivorIsLoser)

	moved, err := store.MergeGroup(ctx, "keep", []string{"gone"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), moved)

	_, err = store.GetDevice(ctx, "gone")
	require.ErrorIs(t, err, ErrDeviceNotFound)

	keep, err := store.GetDevice(ctx, "keep")
	require.NoError(t, err)
	require.NotNil(t, keep.ExternalTaskID)
	assert.Equal(t, "task-9", *keep.ExternalTaskID)
	require.NotNil(t, keep.LastSeen)
	assert.True(t, keep.LastSeen.Equal(seen))
	assert.Len(t, store.Telemetry("keep"), 1)

	dup, err = store.HasDuplicateNames(ctx)
	require.NoError(t, err)
	assert.False(t, dup)
}

func TestMemoryStoreSummariesSkipUnnamed(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.ResolveDevice(ctx, models.DeviceIdentity{DeviceID: "named", Name: "AP"})
	require.NoError(t, err)
	_, err = store.ResolveDevice(ctx, models.DeviceIdentity{DeviceID: "blank"})
	require.NoError(t, err)

	sums, err := store.ListDeviceSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, sums, 1)
	assert.Equal(t, "named", sums[0].DeviceID)

	without, err := store.ListDevicesWithoutTask(ctx)
	require.NoError(t, err)
	assert.Len(t, without, 2)
}
