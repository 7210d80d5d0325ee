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

// Package telemetry turns device observations from any ingress channel into
// stored telemetry records and device state.
package telemetry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/carverauto/fleetsync/pkg/logger"
	"github.com/carverauto/fleetsync/pkg/models"
)

// Outcome classifies an ingest call.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeOKWithWarning
	OutcomeErr
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeOKWithWarning:
		return "ok_with_warning"
	case OutcomeErr:
		return "error"
	default:
		return "unknown"
	}
}

// IngestResult describes a stored observation. Warnings hold failures that
// did not prevent the write, such as a notifier being unreachable.
type IngestResult struct {
	Device       *models.Device
	Record       *models.TelemetryRecord
	StatusChange *models.StatusChanged
	Warnings     []error
	// Late is set when the observation predates the device's latest record.
	Late bool
}

// Outcome reports OK or OKWithWarning for a stored observation.
func (r *IngestResult) Outcome() Outcome {
	if len(r.Warnings) > 0 {
		return OutcomeOKWithWarning
	}

	return OutcomeOK
}

// OutcomeOf folds an Ingest return pair into a single Outcome.
func OutcomeOf(res *IngestResult, err error) Outcome {
	if err != nil || res == nil {
		return OutcomeErr
	}

	return res.Outcome()
}

// Processor applies the ingest pipeline: resolve the device, reconcile
// counters against the latest record, store the record, advance device state
// and emit status transitions.
type Processor struct {
	store     Store
	notifiers []Notifier
	cache     CacheInvalidator
	rules     *ExtractionRules
	logger    logger.Logger
	nowFn     func() time.Time
}

// Option configures a Processor.
type Option func(*Processor)

// WithNotifier adds a status change notifier.
func WithNotifier(n Notifier) Option {
	return func(p *Processor) {
		if n != nil {
			p.notifiers = append(p.notifiers, n)
		}
	}
}

// WithCache invalidates c after every successful write.
func WithCache(c CacheInvalidator) Option {
	return func(p *Processor) { p.cache = c }
}

// WithExtractionRules replaces the default payload extraction rules.
func WithExtractionRules(r *ExtractionRules) Option {
	return func(p *Processor) {
		if r != nil {
			p.rules = r
		}
	}
}

// WithNowFn overrides the clock used when an observation carries no timestamp.
func WithNowFn(fn func() time.Time) Option {
	return func(p *Processor) { p.nowFn = fn }
}

// NewProcessor creates a Processor backed by store.
func NewProcessor(store Store, log logger.Logger, opts ...Option) *Processor {
	p := &Processor{
		store:  store,
		rules:  DefaultExtractionRules(),
		logger: log,
		nowFn:  time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Rules returns the extraction rules used by IngestRaw.
func (p *Processor) Rules() *ExtractionRules {
	return p.rules
}

// IngestRaw extracts an observation from a vendor payload and ingests it.
func (p *Processor) IngestRaw(
	ctx context.Context, payload map[string]interface{}, source models.ObservationSource,
) (*IngestResult, error) {
	obs, err := p.rules.Extract(payload, source)
	if err != nil {
		return nil, &ValidationError{Field: "payload", Reason: err.Error()}
	}

	return p.Ingest(ctx, obs)
}

// Ingest stores one observation. Validation failures are returned before any
// write as *ValidationError. Storage failures are returned wrapped. A failed
// status change notification is reported in IngestResult.Warnings.
func (p *Processor) Ingest(ctx context.Context, obs models.Observation) (*IngestResult, error) {
	obs.DeviceID = strings.TrimSpace(obs.DeviceID)
	if obs.DeviceID == "" {
		return nil, &ValidationError{Field: "device_id", Reason: "is required"}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	device, err := p.store.ResolveDevice(ctx, models.DeviceIdentity{
		DeviceID:        obs.DeviceID,
		Name:            obs.Name,
		MACAddress:      obs.MACAddress,
		FirmwareVersion: obs.FirmwareVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("resolve device: %w", err)
	}

	previous, err := p.store.LatestTelemetry(ctx, obs.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("load baseline: %w", err)
	}

	counters := ReconcileCounters(&obs, previous)
	status := models.NormalizeStatus(obs.RawStatus)

	recordTime := obs.Timestamp
	if !obs.HasTimestamp() {
		recordTime = p.nowFn().UTC()
	}

	rec := &models.TelemetryRecord{
		DeviceID:        obs.DeviceID,
		Timestamp:       recordTime,
		Status:          status,
		TotalTxBytes:    counters.TxBytes,
		TotalRxBytes:    counters.RxBytes,
		CountersCarried: counters.Carried,
		Signal:          obs.Signal,
		Location:        obs.Location,
		Source:          obs.Source,
	}

	// A record older than the baseline is history: it is stored but must not
	// rewind the device row or be compared against newer state.
	late := previous != nil && recordTime.Before(previous.Timestamp)

	state := models.DeviceState{
		DeviceID:     obs.DeviceID,
		Status:       status,
		TotalTxBytes: counters.TxBytes,
		TotalRxBytes: counters.RxBytes,
		ObservedAt:   recordTime,
	}

	// last_seen only reflects a confirmed-online moment reported by the source.
	if status.IsOnline() && obs.HasTimestamp() {
		seen := obs.Timestamp
		state.LastSeen = &seen
	}

	if err := p.store.AppendTelemetry(ctx, rec, state); err != nil {
		return nil, fmt.Errorf("store telemetry: %w", err)
	}

	if p.cache != nil {
		p.cache.InvalidateAll()
	}

	if !late {
		device.CurrentStatus = status
		device.TotalTxBytes = counters.TxBytes
		device.TotalRxBytes = counters.RxBytes
	}

	if state.LastSeen != nil && (device.LastSeen == nil || state.LastSeen.After(*device.LastSeen)) {
		device.LastSeen = state.LastSeen
	}

	result := &IngestResult{Device: device, Record: rec, Late: late}

	if late {
		p.logger.Debug().
			Str("device_id", obs.DeviceID).
			Time("observed_at", recordTime).
			Time("baseline_at", previous.Timestamp).
			Msg("Stored out-of-order observation without touching device state")
	}

	if !late && previous != nil && previous.Status != status {
		result.StatusChange = &models.StatusChanged{
			DeviceID: obs.DeviceID,
			Previous: previous.Status,
			Current:  status,
			At:       recordTime,
		}

		result.Warnings = p.notify(ctx, *result.StatusChange)
	}

	if counters.Carried && previous != nil {
		p.logger.Debug().
			Str("device_id", obs.DeviceID).
			Int64("tx_bytes", counters.TxBytes).
			Int64("rx_bytes", counters.RxBytes).
			Msg("Carried counters forward from baseline")
	}

	return result, nil
}

func (p *Processor) notify(ctx context.Context, event models.StatusChanged) []error {
	var warnings []error

	for _, n := range p.notifiers {
		if err := n.NotifyStatusChange(ctx, event); err != nil {
			p.logger.Warn().
				Err(err).
				Str("device_id", event.DeviceID).
				Str("previous", event.Previous.String()).
				Str("current", event.Current.String()).
				Msg("Status change notification failed")

			warnings = append(warnings, fmt.Errorf("notify status change for %s: %w", event.DeviceID, err))
		}
	}

	return warnings
}
