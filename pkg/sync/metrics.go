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

package sync

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	syncMeterName = "fleetsync.sync"

	metricRunsName           = "fleetsync_sync_runs_total"
	metricDevicesName        = "fleetsync_sync_devices_total"
	metricRunDurationName    = "fleetsync_sync_run_duration_ms"
	metricRateLimitAbortName = "fleetsync_sync_rate_limit_aborts_total"
	metricIngestWarningsName = "fleetsync_sync_ingest_warnings_total"
)

// Run outcomes used as the "outcome" attribute.
const (
	outcomeCompleted      = "completed"
	outcomeAborted        = "aborted"
	outcomeFailed         = "failed"
	outcomeSkippedQuota   = "skipped_quota"
	outcomeSkippedOverlap = "skipped_overlap"
)

var (
	//nolint:gochecknoglobals // instruments are process-wide singletons
	syncMetricsOnce sync.Once
	//nolint:gochecknoglobals // instruments are process-wide singletons
	syncInstruments struct {
		runs           metric.Int64Counter
		devices        metric.Int64Counter
		runDuration    metric.Int64Histogram
		rateLimitAbort metric.Int64Counter
		ingestWarnings metric.Int64Counter
	}
)

// initSyncMetrics registers instruments against the global meter. Until a
// meter provider is installed they are no-ops.
func initSyncMetrics() {
	meter := otel.Meter(syncMeterName)

	var err error

	syncInstruments.runs, err = meter.Int64Counter(
		metricRunsName,
		metric.WithDescription("Sync runs by outcome"),
	)
	if err != nil {
		otel.Handle(err)
	}

	syncInstruments.devices, err = meter.Int64Counter(
		metricDevicesName,
		metric.WithDescription("Devices processed by sync runs, by result"),
	)
	if err != nil {
		otel.Handle(err)
	}

	syncInstruments.runDuration, err = meter.Int64Histogram(
		metricRunDurationName,
		metric.WithDescription("Wall clock duration of sync runs"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		otel.Handle(err)
	}

	syncInstruments.rateLimitAbort, err = meter.Int64Counter(
		metricRateLimitAbortName,
		metric.WithDescription("Sync runs cut short by a vendor rate limit"),
	)
	if err != nil {
		otel.Handle(err)
	}

	syncInstruments.ingestWarnings, err = meter.Int64Counter(
		metricIngestWarningsName,
		metric.WithDescription("Non-fatal ingest warnings such as failed status notifications"),
	)
	if err != nil {
		otel.Handle(err)
	}
}

func recordRunMetrics(ctx context.Context, outcome string, duration time.Duration, success, failed int) {
	syncMetricsOnce.Do(initSyncMetrics)

	outcomeAttr := metric.WithAttributes(attribute.String("outcome", outcome))

	if syncInstruments.runs != nil {
		syncInstruments.runs.Add(ctx, 1, outcomeAttr)
	}

	if syncInstruments.runDuration != nil && duration > 0 {
		syncInstruments.runDuration.Record(ctx, duration.Milliseconds(), outcomeAttr)
	}

	if syncInstruments.devices != nil {
		if success > 0 {
			syncInstruments.devices.Add(ctx, int64(success), metric.WithAttributes(attribute.String("result", "success")))
		}

		if failed > 0 {
			syncInstruments.devices.Add(ctx, int64(failed), metric.WithAttributes(attribute.String("result", "error")))
		}
	}

	if outcome == outcomeAborted && syncInstruments.rateLimitAbort != nil {
		syncInstruments.rateLimitAbort.Add(ctx, 1)
	}
}

func recordIngestWarnings(ctx context.Context, n int) {
	if n == 0 {
		return
	}

	syncMetricsOnce.Do(initSyncMetrics)

	if syncInstruments.ingestWarnings != nil {
		syncInstruments.ingestWarnings.Add(ctx, int64(n))
	}
}
