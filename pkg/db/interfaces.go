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
	"time"

	"github.com/carverauto/fleetsync/pkg/models"
)

// Store is the full persistence surface used by the service. Consumers depend
// on the narrower interfaces declared in their own packages.
type Store interface {
	ResolveDevice(ctx context.Context, identity models.DeviceIdentity) (*models.Device, error)
	GetDevice(ctx context.Context, deviceID string) (*models.Device, error)
	ListDevices(ctx context.Context) ([]models.Device, error)
	ListDevicesWithoutTask(ctx context.Context) ([]models.Device, error)
	SetExternalTaskID(ctx context.Context, deviceID, taskID string) error

	LatestTelemetry(ctx context.Context, deviceID string) (*models.TelemetryRecord, error)
	HasTelemetry(ctx context.Context, deviceID string) (bool, error)
	AppendTelemetry(ctx context.Context, rec *models.TelemetryRecord, state models.DeviceState) error

	InsertLockIfAbsent(ctx context.Context, row models.LockRow) (bool, error)
	GetLock(ctx context.Context, jobName string) (*models.LockRow, error)
	ReplaceLockIf(ctx context.Context, expected models.LockRow, holderID string, acquiredAt time.Time) (bool, error)

	ListDeviceSummaries(ctx context.Context) ([]models.DeviceSummary, error)
	HasDuplicateNames(ctx context.Context) (bool, error)
	MergeGroup(ctx context.Context, survivorID string, loserIDs []string) (int64, error)
}

var (
	_ Store = (*PostgresStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
