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

// Package sync runs the scheduled poll of the vendor fleet API: it walks
// every device once per cycle, throttled and quota aware, and hands each
// observation to the telemetry processor.
package sync

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/carverauto/fleetsync/pkg/fleet"
	"github.com/carverauto/fleetsync/pkg/logger"
	"github.com/carverauto/fleetsync/pkg/models"
)

const tracerName = "fleetsync/sync"

// EngineState is the phase of the current (or last) run.
type EngineState string

const (
	StateIdle        EngineState = "idle"
	StateFetching    EngineState = "fetching"
	StateProcessing  EngineState = "processing"
	StateReconciling EngineState = "reconciling"
	StateAborted     EngineState = "aborted"
)

// Engine owns the poll cycle. One Engine exists per process; the in-flight
// flag lives on the instance, so overlapping triggers within the process
// are refused while replicas are kept apart by the job lock.
type Engine struct {
	cfg      Config
	fleet    FleetAPI
	ingester Ingester
	baseline BaselineStore
	dedup    Deduplicator
	tasks    TaskTracker
	cache    CacheInvalidator
	clock    Clock
	logger   logger.Logger
	tracer   trace.Tracer

	running atomic.Bool
	state   atomic.Value

	mu      sync.Mutex
	history []models.SyncRun
}

// EngineOption configures optional collaborators.
type EngineOption func(*Engine)

func WithDeduplicator(d Deduplicator) EngineOption {
	return func(e *Engine) { e.dedup = d }
}

func WithTaskTracker(t TaskTracker) EngineOption {
	return func(e *Engine) { e.tasks = t }
}

func WithCache(c CacheInvalidator) EngineOption {
	return func(e *Engine) { e.cache = c }
}

// WithClock replaces the wall clock. Intended for tests.
func WithClock(c Clock) EngineOption {
	return func(e *Engine) { e.clock = c }
}

// NewEngine validates cfg and wires the engine.
func NewEngine(
	cfg Config, api FleetAPI, ingester Ingester, baseline BaselineStore, log logger.Logger, opts ...EngineOption,
) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch {
	case api == nil:
		return nil, errFleetRequired
	case ingester == nil:
		return nil, errIngesterRequired
	case baseline == nil:
		return nil, errBaselineRequired
	}

	e := &Engine{
		cfg:      cfg,
		fleet:    api,
		ingester: ingester,
		baseline: baseline,
		clock:    realClock{},
		logger:   log,
		tracer:   otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.state.Store(StateIdle)

	return e, nil
}

// State returns the phase of the run in progress, or how the last run ended.
func (e *Engine) State() EngineState {
	return e.state.Load().(EngineState)
}

func (e *Engine) setState(s EngineState) {
	e.state.Store(s)
}

// SyncHistory returns the runs recorded within the retention window, oldest first.
func (e *Engine) SyncHistory() []models.SyncRun {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pruneHistoryLocked(e.clock.Now())

	out := make([]models.SyncRun, len(e.history))
	copy(out, e.history)

	return out
}

func (e *Engine) recordHistory(run *models.SyncRun) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.history = append(e.history, *run)
	e.pruneHistoryLocked(e.clock.Now())
}

func (e *Engine) pruneHistoryLocked(now time.Time) {
	cutoff := now.Add(-e.cfg.HistoryRetention.Std())

	keep := 0
	for keep < len(e.history) && e.history[keep].StartedAt.Before(cutoff) {
		keep++
	}

	if keep > 0 {
		e.history = append(e.history[:0:0], e.history[keep:]...)
	}
}

// RunSyncCycle polls the fleet API once and ingests every device. A run
// that overlaps one already in flight, or that would push the account past
// its quota threshold, returns immediately with Skipped set. Only a failed
// device listing returns an error; per-device failures are counted.
func (e *Engine) RunSyncCycle(ctx context.Context) (*models.SyncRun, error) {
	run := &models.SyncRun{ID: uuid.NewString(), StartedAt: e.clock.Now().UTC()}

	if !e.running.CompareAndSwap(false, true) {
		run.Skipped = true
		run.SkipReason = models.SkipReasonAlreadyRunning

		e.logger.Info().Str("run_id", run.ID).Msg("Sync already running, skipping trigger")
		recordRunMetrics(ctx, outcomeSkippedOverlap, 0, 0, 0)

		return run, nil
	}
	defer e.running.Store(false)

	ctx, span := e.tracer.Start(ctx, "sync.RunSyncCycle", trace.WithAttributes(attribute.String("run_id", run.ID)))
	defer span.End()

	if e.overQuota(ctx) {
		run.Skipped = true
		run.SkipReason = models.SkipReasonQuota
		e.finish(ctx, span, run, outcomeSkippedQuota)

		return run, nil
	}

	e.setState(StateFetching)

	devices, err := e.fleet.ListDevicesWithMonitoring(ctx)
	if err != nil {
		run.Warnings = append(run.Warnings, "fetch devices: "+err.Error())
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch devices failed")
		e.finish(ctx, span, run, outcomeFailed)
		e.setState(StateIdle)

		return run, fmt.Errorf("list fleet devices: %w", err)
	}

	run.TotalDevices = len(devices)

	e.setState(StateProcessing)
	e.processDevices(ctx, devices, run)

	e.setState(StateReconciling)
	e.reconcile(ctx, run)

	outcome := outcomeCompleted
	if run.AbortedForRateLimit {
		outcome = outcomeAborted
	}

	e.finish(ctx, span, run, outcome)

	if run.AbortedForRateLimit {
		e.setState(StateAborted)
	} else {
		e.setState(StateIdle)
	}

	return run, nil
}

// overQuota reports whether monthly usage exceeds the threshold. An
// estimator failure is logged and the run proceeds.
func (e *Engine) overQuota(ctx context.Context) bool {
	budget, err := e.fleet.EstimateMonthlyCallBudget(ctx)
	if err != nil {
		e.logger.Warn().Err(err).Msg("Unable to estimate call budget, continuing")
		return false
	}

	if budget.Limit <= 0 {
		return false
	}

	if ratio := budget.Ratio(); ratio > e.cfg.QuotaThreshold {
		e.logger.Warn().
			Int64("used", budget.Used).
			Int64("limit", budget.Limit).
			Float64("threshold", e.cfg.QuotaThreshold).
			Msg("Monthly call budget nearly exhausted, skipping sync")

		return true
	}

	return false
}

func (e *Engine) processDevices(ctx context.Context, devices []fleet.RawDevice, run *models.SyncRun) {
	breaker := NewCircuitBreaker("fleet-api", e.logger)
	rules := e.ingester.Rules()

	for i, raw := range devices {
		obs, err := rules.Extract(raw, models.SourcePoll)
		if err != nil {
			run.ErrorCount++
			e.logger.Warn().Err(err).Int("index", i).Msg("Skipping unreadable device entry")

			continue
		}

		if i > 0 {
			if err := e.clock.Sleep(ctx, e.delayFor(ctx, obs.DeviceID)); err != nil {
				run.Warnings = append(run.Warnings, "run interrupted: "+err.Error())
				break
			}
		}

		err = breaker.Execute(func() error {
			return e.processDevice(ctx, raw, obs)
		})
		if err != nil {
			run.ErrorCount++

			if IsRateLimited(err) {
				run.AbortedForRateLimit = true
				e.setState(StateAborted)
				e.logger.Warn().
					Err(err).
					Str("device_id", obs.DeviceID).
					Int("remaining", len(devices)-i-1).
					Msg("Rate limited by fleet API, aborting run")

				break
			}

			e.logger.Warn().Err(err).Str("device_id", obs.DeviceID).Msg("Failed to sync device")

			continue
		}

		run.SuccessCount++
	}
}

// delayFor picks the pause before a device: longer for devices without a
// stored baseline.
func (e *Engine) delayFor(ctx context.Context, deviceID string) time.Duration {
	if deviceID == "" {
		return e.cfg.ColdStartDelay.Std()
	}

	has, err := e.baseline.HasTelemetry(ctx, deviceID)
	if err != nil {
		e.logger.Debug().Err(err).Str("device_id", deviceID).Msg("Baseline lookup failed, using cold start delay")
		return e.cfg.ColdStartDelay.Std()
	}

	if has {
		return e.cfg.WarmDelay.Std()
	}

	return e.cfg.ColdStartDelay.Std()
}

func (e *Engine) processDevice(ctx context.Context, raw fleet.RawDevice, obs models.Observation) error {
	if !raw.HasMonitoring() && obs.DeviceID != "" {
		monitoring, err := e.fleet.GetDeviceMonitoring(ctx, obs.DeviceID)
		if err != nil {
			return fmt.Errorf("fetch monitoring: %w", err)
		}

		obs, err = e.ingester.Rules().Extract(raw.WithMonitoring(monitoring), models.SourcePoll)
		if err != nil {
			return err
		}
	}

	res, err := e.ingester.Ingest(ctx, obs)
	if err != nil {
		return err
	}

	recordIngestWarnings(ctx, len(res.Warnings))

	return nil
}

// reconcile runs the best-effort post-run steps. Their failures become run
// warnings and never fail the run.
func (e *Engine) reconcile(ctx context.Context, run *models.SyncRun) {
	if e.dedup != nil && !e.cfg.DisableAutoMerge {
		summary, ran, err := e.dedup.AutoMerge(ctx)

		switch {
		case err != nil:
			run.Warnings = append(run.Warnings, "merge duplicates: "+err.Error())
		case ran && summary.FailedGroups > 0:
			run.Warnings = append(run.Warnings, fmt.Sprintf("merge duplicates: %d group(s) failed", summary.FailedGroups))
		}
	}

	if e.tasks != nil && !e.cfg.DisableTasks {
		if _, err := e.tasks.CreateMissingTasks(ctx); err != nil {
			run.Warnings = append(run.Warnings, "create missing tasks: "+err.Error())
		}
	}

	if e.cache != nil {
		e.cache.InvalidateAll()
	}
}

func (e *Engine) finish(ctx context.Context, span trace.Span, run *models.SyncRun, outcome string) {
	duration := e.clock.Now().Sub(run.StartedAt)
	if duration < 0 {
		duration = 0
	}

	run.DurationMs = duration.Milliseconds()

	e.recordHistory(run)
	recordRunMetrics(ctx, outcome, duration, run.SuccessCount, run.ErrorCount)

	span.SetAttributes(
		attribute.String("outcome", outcome),
		attribute.Int("total_devices", run.TotalDevices),
		attribute.Int("success_count", run.SuccessCount),
		attribute.Int("error_count", run.ErrorCount),
	)

	ev := e.logger.Info()
	if outcome == outcomeFailed || outcome == outcomeAborted {
		ev = e.logger.Warn()
	}

	ev.Str("run_id", run.ID).
		Str("outcome", outcome).
		Int("total_devices", run.TotalDevices).
		Int("success_count", run.SuccessCount).
		Int("error_count", run.ErrorCount).
		Int64("duration_ms", run.DurationMs).
		Strs("warnings", run.Warnings).
		Msg("Sync run finished")
}
