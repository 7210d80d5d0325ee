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

//go:generate mockgen -destination=mock_fleetview.go -package=fleetview github.com/carverauto/fleetsync/pkg/fleetview Store,Cache

package fleetview

import (
	"context"

	"github.com/carverauto/fleetsync/pkg/cache"
	"github.com/carverauto/fleetsync/pkg/models"
)

// Store is the read side of device storage.
type Store interface {
	ListDevices(ctx context.Context) ([]models.Device, error)
	GetDevice(ctx context.Context, deviceID string) (*models.Device, error)
	LatestTelemetry(ctx context.Context, deviceID string) (*models.TelemetryRecord, error)
	ListDeviceSummaries(ctx context.Context) ([]models.DeviceSummary, error)
}

// Cache is the subset of cache.Manager the views read through.
type Cache interface {
	GetOrLoad(ctx context.Context, name string, load cache.Loader) (cache.Entry, error)
	Matches(name, ifNoneMatch string) bool
}
