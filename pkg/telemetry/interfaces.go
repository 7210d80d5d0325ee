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

//go:generate mockgen -destination=mock_telemetry.go -package=telemetry github.com/carverauto/fleetsync/pkg/telemetry Store,Notifier,CacheInvalidator

package telemetry

import (
	"context"

	"github.com/carverauto/fleetsync/pkg/models"
)

// Store is the persistence the processor needs.
type Store interface {
	ResolveDevice(ctx context.Context, identity models.DeviceIdentity) (*models.Device, error)
	LatestTelemetry(ctx context.Context, deviceID string) (*models.TelemetryRecord, error)
	AppendTelemetry(ctx context.Context, rec *models.TelemetryRecord, state models.DeviceState) error
}

// Notifier receives status transitions. Delivery is best effort.
type Notifier interface {
	NotifyStatusChange(ctx context.Context, event models.StatusChanged) error
}

// CacheInvalidator drops cached read models after a write.
type CacheInvalidator interface {
	InvalidateAll()
}
