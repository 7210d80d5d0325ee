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

//go:generate mockgen -destination=mock_sync.go -package=sync github.com/carverauto/fleetsync/pkg/sync FleetAPI,Ingester,BaselineStore,Deduplicator,TaskTracker,CacheInvalidator,Locker,Runner

package sync

import (
	"context"

	"github.com/carverauto/fleetsync/pkg/fleet"
	"github.com/carverauto/fleetsync/pkg/models"
	"github.com/carverauto/fleetsync/pkg/telemetry"
	"github.com/carverauto/fleetsync/pkg/tracker"
)

// FleetAPI is the vendor API the engine polls.
type FleetAPI interface {
	ListDevicesWithMonitoring(ctx context.Context) ([]fleet.RawDevice, error)
	GetDeviceMonitoring(ctx context.Context, deviceID string) (map[string]interface{}, error)
	EstimateMonthlyCallBudget(ctx context.Context) (fleet.CallBudget, error)
}

// Ingester stores one observation and exposes the extraction rules used to
// build observations from raw payloads.
type Ingester interface {
	Ingest(ctx context.Context, obs models.Observation) (*telemetry.IngestResult, error)
	Rules() *telemetry.ExtractionRules
}

// BaselineStore answers whether a device already has stored telemetry.
type BaselineStore interface {
	HasTelemetry(ctx context.Context, deviceID string) (bool, error)
}

type Deduplicator interface {
	AutoMerge(ctx context.Context) (models.MergeSummary, bool, error)
}

type TaskTracker interface {
	CreateMissingTasks(ctx context.Context) (tracker.CreateResult, error)
}

type CacheInvalidator interface {
	InvalidateAll()
}

// Locker claims the scheduled job across replicas.
type Locker interface {
	AcquireWithRetry(ctx context.Context, job string) (bool, error)
}

// Runner executes one poll cycle.
type Runner interface {
	RunSyncCycle(ctx context.Context) (*models.SyncRun, error)
}
