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

package fleetview

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/fleetsync/pkg/cache"
	"github.com/carverauto/fleetsync/pkg/db"
	"github.com/carverauto/fleetsync/pkg/logger"
	"github.com/carverauto/fleetsync/pkg/models"
)

func newCache(t *testing.T) *cache.Manager {
	t.Helper()

	m, err := cache.NewManager(cache.DefaultConfig(), logger.NewTestLogger())
	require.NoError(t, err)

	return m
}

func seedDevice(t *testing.T, store *db.MemoryStore, id, name string, tx int64) {
	t.Helper()

	ctx := context.Background()

	_, err := store.ResolveDevice(ctx, models.DeviceIdentity{DeviceID: id, Name: name})
	require.NoError(t, err)

	seen := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rec := &models.TelemetryRecord{DeviceID: id, Timestamp: seen, Status: models.StatusOnline, TotalTxBytes: tx}

	require.NoError(t, store.AppendTelemetry(ctx, rec, models.DeviceState{
		DeviceID:     id,
		Status:       models.StatusOnline,
		TotalTxBytes: tx,
		LastSeen:     &seen,
	}))
}

func TestDevicesReadsThroughCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	c := newCache(t)

	devices := []models.Device{{DeviceID: "a", Name: "Router A"}, {DeviceID: "b", Name: "Router B"}}
	store.EXPECT().ListDevices(gomock.Any()).Return(devices, nil).Times(2)

	svc := NewService(store, c, logger.NewTestLogger())

	first, err := svc.Devices(context.Background())
	require.NoError(t, err)
	assert.Len(t, first.Devices, 2)
	assert.NotEmpty(t, first.ETag)

	second, err := svc.Devices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.ETag, second.ETag)

	_, notModified, err := svc.DevicesIfNoneMatch(context.Background(), first.ETag)
	require.NoError(t, err)
	assert.True(t, notModified)

	c.InvalidateAll()

	list, notModified, err := svc.DevicesIfNoneMatch(context.Background(), first.ETag)
	require.NoError(t, err)
	assert.False(t, notModified)
	assert.Equal(t, first.ETag, list.ETag)
}

func TestDevicesPropagatesStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	boom := errors.New("pool closed")

	store.EXPECT().ListDevices(gomock.Any()).Return(nil, boom)

	svc := NewService(store, newCache(t), logger.NewTestLogger())

	_, err := svc.Devices(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestDeviceDetailJoinsLatestTelemetry(t *testing.T) {
	store := db.NewMemoryStore()
	seedDevice(t, store, "d1", "Router 1", 4096)

	svc := NewService(store, newCache(t), logger.NewTestLogger())

	detail, err := svc.DeviceDetail(context.Background(), " d1 ")
	require.NoError(t, err)
	assert.Equal(t, "Router 1", detail.Device.Name)
	require.NotNil(t, detail.Latest)
	assert.Equal(t, int64(4096), detail.Latest.TotalTxBytes)

	_, err = svc.DeviceDetail(context.Background(), "missing")
	require.ErrorIs(t, err, db.ErrDeviceNotFound)

	_, err = svc.DeviceDetail(context.Background(), "  ")
	require.ErrorIs(t, err, ErrDeviceIDRequired)
}

func TestDeviceDetailWithoutTelemetry(t *testing.T) {
	store := db.NewMemoryStore()

	_, err := store.ResolveDevice(context.Background(), models.DeviceIdentity{DeviceID: "quiet", Name: "Quiet"})
	require.NoError(t, err)

	svc := NewService(store, newCache(t), logger.NewTestLogger())

	detail, err := svc.DeviceDetail(context.Background(), "quiet")
	require.NoError(t, err)
	assert.Nil(t, detail.Latest)
}

func TestDuplicateGroups(t *testing.T) {
	store := db.NewMemoryStore()
	seedDevice(t, store, "111111111", "Router 55", 1)
	seedDevice(t, store, "r55", "router 55 ", 2)
	seedDevice(t, store, "solo", "Solo", 3)

	c := newCache(t)
	svc := NewService(store, c, logger.NewTestLogger())

	groups, err := svc.DuplicateGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "router 55", groups[0].Key)
	assert.Len(t, groups[0].Members, 2)

	// Served from cache until invalidated.
	seedDevice(t, store, "solo-2", "solo", 4)

	groups, err = svc.DuplicateGroups(context.Background())
	require.NoError(t, err)
	assert.Len(t, groups, 1)

	c.InvalidateAll()

	groups, err = svc.DuplicateGroups(context.Background())
	require.NoError(t, err)
	assert.Len(t, groups, 2)
}

func TestUnexpectedCacheEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := NewMockCache(ctrl)

	c.EXPECT().GetOrLoad(gomock.Any(), cache.FamilyDevices, gomock.Any()).Return(cache.Entry{Data: "stale"}, nil)

	svc := NewService(NewMockStore(ctrl), c, logger.NewTestLogger())

	_, err := svc.Devices(context.Background())
	require.ErrorIs(t, err, errUnexpectedEntry)
}
