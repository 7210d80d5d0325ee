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
	"maps"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/carverauto/fleetsync/pkg/models"
)

// MemoryStore is an in-process Store used by tests and single-node dry runs.
// Every method holds the store mutex for its whole duration, which gives the
// same per-statement atomicity the Postgres store relies on.
type MemoryStore struct {
	mu      sync.Mutex
	devices map[string]*models.Device
	records []models.TelemetryRecord
	locks   map[string]models.LockRow
	nextID  int64
	nowFn   func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		devices: make(map[string]*models.Device),
		locks:   make(map[string]models.LockRow),
		nowFn:   time.Now,
	}
}

// SetNowFn overrides the clock used for created/updated timestamps.
func (m *MemoryStore) SetNowFn(fn func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nowFn = fn
}

func copyDevice(d *models.Device) models.Device {
	out := *d

	if d.LastSeen != nil {
		ts := *d.LastSeen
		out.LastSeen = &ts
	}

	if d.ExternalTaskID != nil {
		id := *d.ExternalTaskID
		out.ExternalTaskID = &id
	}

	return out
}

func copyRecord(r *models.TelemetryRecord) models.TelemetryRecord {
	out := *r
	out.Signal = maps.Clone(r.Signal)
	out.Location = maps.Clone(r.Location)

	return out
}

func (m *MemoryStore) ResolveDevice(_ context.Context, identity models.DeviceIdentity) (*models.Device, error) {
	if strings.TrimSpace(identity.DeviceID) == "" {
		return nil, ErrDeviceIDRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.nowFn()

	d, ok := m.devices[identity.DeviceID]
	if !ok {
		d = &models.Device{
			DeviceID:      identity.DeviceID,
			CurrentStatus: models.StatusOffline,
			CreatedAt:     now,
		}
		m.devices[identity.DeviceID] = d
	}

	if strings.TrimSpace(identity.Name) != "" {
		d.Name = identity.Name
	}

	if identity.MACAddress != "" {
		d.MACAddress = identity.MACAddress
	}

	if identity.FirmwareVersion != "" {
		d.FirmwareVersion = identity.FirmwareVersion
	}

	d.UpdatedAt = now
	out := copyDevice(d)

	return &out, nil
}

func (m *MemoryStore) GetDevice(_ context.Context, deviceID string) (*models.Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.devices[deviceID]
	if !ok {
		return nil, ErrDeviceNotFound
	}

	out := copyDevice(d)

	return &out, nil
}

func (m *MemoryStore) ListDevices(_ context.Context) ([]models.Device, error) {
	return m.filterDevices(func(*models.Device) bool { return true }), nil
}

func (m *MemoryStore) ListDevicesWithoutTask(_ context.Context) ([]models.Device, error) {
	return m.filterDevices(func(d *models.Device) bool { return d.ExternalTaskID == nil }), nil
}

func (m *MemoryStore) filterDevices(keep func(*models.Device) bool) []models.Device {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Device

	for _, id := range slices.Sorted(maps.Keys(m.devices)) {
		if d := m.devices[id]; keep(d) {
			out = append(out, copyDevice(d))
		}
	}

	return out
}

func (m *MemoryStore) SetExternalTaskID(_ context.Context, deviceID, taskID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.devices[deviceID]
	if !ok {
		return ErrDeviceNotFound
	}

	d.ExternalTaskID = &taskID
	d.UpdatedAt = m.nowFn()

	return nil
}

func (m *MemoryStore) LatestTelemetry(_ context.Context, deviceID string) (*models.TelemetryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var latest *models.TelemetryRecord

	for i := range m.records {
		r := &m.records[i]
		if r.DeviceID != deviceID {
			continue
		}

		if latest == nil || r.Timestamp.After(latest.Timestamp) ||
			(r.Timestamp.Equal(latest.Timestamp) && r.ID > latest.ID) {
			latest = r
		}
	}

	if latest == nil {
		return nil, nil
	}

	out := copyRecord(latest)

	return &out, nil
}

func (m *MemoryStore) HasTelemetry(_ context.Context, deviceID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.records {
		if m.records[i].DeviceID == deviceID {
			return true, nil
		}
	}

	return false, nil
}

func (m *MemoryStore) AppendTelemetry(_ context.Context, rec *models.TelemetryRecord, state models.DeviceState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.devices[state.DeviceID]
	if !ok {
		return ErrDeviceNotFound
	}

	if _, ok := m.devices[rec.DeviceID]; !ok {
		return ErrDeviceNotFound
	}

	m.nextID++
	rec.ID = m.nextID

	if rec.Source == "" {
		rec.Source = models.SourcePoll
	}

	if !m.hasNewerRecordLocked(state.DeviceID, state.ObservedAt) {
		d.CurrentStatus = state.Status
		d.TotalTxBytes = state.TotalTxBytes
		d.TotalRxBytes = state.TotalRxBytes
	}

	m.records = append(m.records, copyRecord(rec))

	if state.LastSeen != nil && (d.LastSeen == nil || state.LastSeen.After(*d.LastSeen)) {
		ts := *state.LastSeen
		d.LastSeen = &ts
	}

	d.UpdatedAt = m.nowFn()

	return nil
}

func (m *MemoryStore) hasNewerRecordLocked(deviceID string, ts time.Time) bool {
	if ts.IsZero() {
		return false
	}

	for i := range m.records {
		if m.records[i].DeviceID == deviceID && m.records[i].Timestamp.After(ts) {
			return true
		}
	}

	return false
}

// Telemetry returns the device's records in insertion order.
func (m *MemoryStore) Telemetry(deviceID string) []models.TelemetryRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.TelemetryRecord

	for i := range m.records {
		if m.records[i].DeviceID == deviceID {
			out = append(out, copyRecord(&m.records[i]))
		}
	}

	return out
}

// TelemetryCount returns the total number of stored records.
func (m *MemoryStore) TelemetryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.records)
}

func (m *MemoryStore) InsertLockIfAbsent(_ context.Context, row models.LockRow) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.locks[row.JobName]; ok {
		return false, nil
	}

	m.locks[row.JobName] = row

	return true, nil
}

func (m *MemoryStore) GetLock(_ context.Context, jobName string) (*models.LockRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.locks[jobName]
	if !ok {
		return nil, ErrLockNotFound
	}

	return &row, nil
}

func (m *MemoryStore) ReplaceLockIf(
	_ context.Context, expected models.LockRow, holderID string, acquiredAt time.Time,
) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.locks[expected.JobName]
	if !ok || row.HolderID != expected.HolderID || !row.AcquiredAt.Equal(expected.AcquiredAt) {
		return false, nil
	}

	m.locks[expected.JobName] = models.LockRow{
		JobName:    expected.JobName,
		HolderID:   holderID,
		AcquiredAt: acquiredAt,
	}

	return true, nil
}

func (m *MemoryStore) ListDeviceSummaries(_ context.Context) ([]models.DeviceSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := make(map[string]int64, len(m.devices))
	for i := range m.records {
		counts[m.records[i].DeviceID]++
	}

	var out []models.DeviceSummary

	for _, id := range slices.Sorted(maps.Keys(m.devices)) {
		d := m.devices[id]
		if strings.TrimSpace(d.Name) == "" {
			continue
		}

		out = append(out, models.DeviceSummary{Device: copyDevice(d), RecordCount: counts[id]})
	}

	return out, nil
}

func (m *MemoryStore) HasDuplicateNames(_ context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[string]struct{}, len(m.devices))

	for _, d := range m.devices {
		key := strings.ToLower(strings.TrimSpace(d.Name))
		if key == "" {
			continue
		}

		if _, ok := seen[key]; ok {
			return true, nil
		}

		seen[key] = struct{}{}
	}

	return false, nil
}

func (m *MemoryStore) MergeGroup(_ context.Context, survivorID string, loserIDs []string) (int64, error) {
	if len(loserIDs) == 0 {
		return 0, ErrEmptyMergeGroup
	}

	if slices.Contains(loserIDs, survivorID) {
		return 0, ErrSurvivorIsLoser
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	survivor, ok := m.devices[survivorID]
	if !ok {
		return 0, ErrDeviceNotFound
	}

	losers := slices.Clone(loserIDs)
	sort.Strings(losers)

	for _, id := range losers {
		loser, ok := m.devices[id]
		if !ok {
			continue
		}

		if loser.LastSeen != nil && (survivor.LastSeen == nil || loser.LastSeen.After(*survivor.LastSeen)) {
			ts := *loser.LastSeen
			survivor.LastSeen = &ts
		}

		if survivor.ExternalTaskID == nil && loser.ExternalTaskID != nil {
			taskID := *loser.ExternalTaskID
			survivor.ExternalTaskID = &taskID
		}
	}

	var moved int64

	for i := range m.records {
		if slices.Contains(losers, m.records[i].DeviceID) {
			m.records[i].DeviceID = survivorID
			moved++
		}
	}

	for _, id := range losers {
		delete(m.devices, id)
	}

	survivor.UpdatedAt = m.nowFn()

	return moved, nil
}
