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

// Package fleetview serves cached read models of the device fleet: the
// device list, per-device detail joined with the latest telemetry, and the
// current duplicate-name groups.
package fleetview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/carverauto/fleetsync/pkg/cache"
	"github.com/carverauto/fleetsync/pkg/dedup"
	"github.com/carverauto/fleetsync/pkg/logger"
	"github.com/carverauto/fleetsync/pkg/models"
)

var (
	ErrDeviceIDRequired = errors.New("device id is required")
	errUnexpectedEntry  = errors.New("unexpected cache entry type")
)

const enrichmentPrefix = cache.FamilyEnrichment + ":"

// DeviceList is the cached device listing with its validator.
type DeviceList struct {
	Devices []models.Device
	ETag    string
}

// DeviceDetail joins a device with its most recent telemetry record.
// Latest is nil for devices that never reported.
type DeviceDetail struct {
	Device models.Device
	Latest *models.TelemetryRecord
}

type Service struct {
	store  Store
	cache  Cache
	logger logger.Logger
}

func NewService(store Store, c Cache, log logger.Logger) *Service {
	return &Service{store: store, cache: c, logger: log}
}

// Devices returns every device ordered by id.
func (s *Service) Devices(ctx context.Context) (DeviceList, error) {
	entry, err := s.cache.GetOrLoad(ctx, cache.FamilyDevices, func(ctx context.Context) (interface{}, error) {
		return s.store.ListDevices(ctx)
	})
	if err != nil {
		return DeviceList{}, err
	}

	devices, ok := entry.Data.([]models.Device)
	if !ok {
		return DeviceList{}, fmt.Errorf("%w: %T", errUnexpectedEntry, entry.Data)
	}

	return DeviceList{Devices: devices, ETag: entry.ETag}, nil
}

// DevicesIfNoneMatch answers a conditional read. When ifNoneMatch matches
// the cached listing it reports notModified without touching storage.
func (s *Service) DevicesIfNoneMatch(ctx context.Context, ifNoneMatch string) (list DeviceList, notModified bool, err error) {
	if ifNoneMatch != "" && s.cache.Matches(cache.FamilyDevices, ifNoneMatch) {
		return DeviceList{}, true, nil
	}

	list, err = s.Devices(ctx)

	return list, false, err
}

func (s *Service) DeviceDetail(ctx context.Context, deviceID string) (*DeviceDetail, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return nil, ErrDeviceIDRequired
	}

	entry, err := s.cache.GetOrLoad(ctx, enrichmentPrefix+deviceID, func(ctx context.Context) (interface{}, error) {
		device, err := s.store.GetDevice(ctx, deviceID)
		if err != nil {
			return nil, err
		}

		latest, err := s.store.LatestTelemetry(ctx, deviceID)
		if err != nil {
			return nil, fmt.Errorf("latest telemetry: %w", err)
		}

		return &DeviceDetail{Device: *device, Latest: latest}, nil
	})
	if err != nil {
		return nil, err
	}

	detail, ok := entry.Data.(*DeviceDetail)
	if !ok {
		return nil, fmt.Errorf("%w: %T", errUnexpectedEntry, entry.Data)
	}

	return detail, nil
}

// DuplicateGroups returns devices sharing a normalized name, ordered by key.
func (s *Service) DuplicateGroups(ctx context.Context) ([]dedup.Group, error) {
	entry, err := s.cache.GetOrLoad(ctx, cache.FamilyGroups, func(ctx context.Context) (interface{}, error) {
		summaries, err := s.store.ListDeviceSummaries(ctx)
		if err != nil {
			return nil, err
		}

		groups := dedup.GroupByName(summaries)
		s.logger.Debug().Int("groups", len(groups)).Msg("Recomputed duplicate name groups")

		return groups, nil
	})
	if err != nil {
		return nil, err
	}

	groups, ok := entry.Data.([]dedup.Group)
	if !ok {
		return nil, fmt.Errorf("%w: %T", errUnexpectedEntry, entry.Data)
	}

	return groups, nil
}
