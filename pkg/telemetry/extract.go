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

package telemetry

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/carverauto/fleetsync/pkg/models"
)

// Logical observation fields that extraction rules can populate.
const (
	FieldDeviceID  = "device_id"
	FieldName      = "name"
	FieldMAC       = "mac"
	FieldFirmware  = "firmware"
	FieldStatus    = "status"
	FieldTimestamp = "timestamp"
	FieldTxBytes   = "tx_bytes"
	FieldRxBytes   = "rx_bytes"
	FieldSignal    = "signal"
	FieldLocation  = "location"
)

// FieldRule lists dotted payload paths for one logical field, highest
// priority first. The first path holding a usable value wins.
type FieldRule struct {
	Field string   `json:"field" yaml:"field"`
	Paths []string `json:"paths" yaml:"paths"`
}

// ExtractionRules maps vendor payloads of differing shapes onto Observations.
type ExtractionRules struct {
	rules map[string][]string
}

// DefaultFieldRules returns the built-in rule set.
func DefaultFieldRules() []FieldRule {
	return []FieldRule{
		{Field: FieldDeviceID, Paths: []string{"device_id", "deviceId", "id", "serial_number", "serial"}},
		{Field: FieldName, Paths: []string{"name", "device_name", "hostname"}},
		{Field: FieldMAC, Paths: []string{"mac_address", "mac"}},
		{Field: FieldFirmware, Paths: []string{"firmware_version", "firmware", "fw_version"}},
		{Field: FieldStatus, Paths: []string{"status", "online", "monitoring.status", "monitoring.online", "state"}},
		{Field: FieldTimestamp, Paths: []string{
			"timestamp", "last_seen", "monitoring.timestamp", "monitoring.last_seen", "monitoring.updated_at",
		}},
		{Field: FieldTxBytes, Paths: []string{
			"total_tx_bytes", "tx_bytes", "monitoring.total_tx_bytes", "monitoring.tx_bytes", "monitoring.wan.tx_bytes",
		}},
		{Field: FieldRxBytes, Paths: []string{
			"total_rx_bytes", "rx_bytes", "monitoring.total_rx_bytes", "monitoring.rx_bytes", "monitoring.wan.rx_bytes",
		}},
		{Field: FieldSignal, Paths: []string{"signal", "monitoring.signal", "monitoring.cellular"}},
		{Field: FieldLocation, Paths: []string{"location", "gps", "monitoring.location", "monitoring.gps"}},
	}
}

//nolint:gochecknoglobals // immutable set of known field names
var knownFields = map[string]struct{}{
	FieldDeviceID: {}, FieldName: {}, FieldMAC: {}, FieldFirmware: {}, FieldStatus: {},
	FieldTimestamp: {}, FieldTxBytes: {}, FieldRxBytes: {}, FieldSignal: {}, FieldLocation: {},
}

// DefaultExtractionRules returns rules built from DefaultFieldRules.
func DefaultExtractionRules() *ExtractionRules {
	rules, _ := NewExtractionRules(nil)

	return rules
}

// NewExtractionRules starts from the defaults and replaces the paths of every
// field named in overrides.
func NewExtractionRules(overrides []FieldRule) (*ExtractionRules, error) {
	r := &ExtractionRules{rules: make(map[string][]string)}

	for _, rule := range DefaultFieldRules() {
		r.rules[rule.Field] = rule.Paths
	}

	for _, rule := range overrides {
		if _, ok := knownFields[rule.Field]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, rule.Field)
		}

		if len(rule.Paths) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrRuleWithoutPath, rule.Field)
		}

		r.rules[rule.Field] = append([]string(nil), rule.Paths...)
	}

	return r, nil
}

// Paths returns the ordered paths configured for field.
func (r *ExtractionRules) Paths(field string) []string {
	return append([]string(nil), r.rules[field]...)
}

// Extract builds an Observation from payload. Missing fields are left at their
// zero value; validation happens at ingest.
func (r *ExtractionRules) Extract(payload map[string]interface{}, source models.ObservationSource) (models.Observation, error) {
	if payload == nil {
		return models.Observation{}, ErrNilPayload
	}

	obs := models.Observation{Source: source}

	if v, ok := r.first(payload, FieldDeviceID, asString); ok {
		obs.DeviceID = v.(string)
	}

	if v, ok := r.first(payload, FieldName, asString); ok {
		obs.Name = v.(string)
	}

	if v, ok := r.first(payload, FieldMAC, asString); ok {
		obs.MACAddress = v.(string)
	}

	if v, ok := r.first(payload, FieldFirmware, asString); ok {
		obs.FirmwareVersion = v.(string)
	}

	if v, ok := r.first(payload, FieldStatus, asAny); ok {
		obs.RawStatus = v
	}

	if v, ok := r.first(payload, FieldTimestamp, asTimestamp); ok {
		obs.Timestamp = v.(time.Time)
	}

	if v, ok := r.first(payload, FieldTxBytes, asCounter); ok {
		n := v.(int64)
		obs.TxBytes = &n
	}

	if v, ok := r.first(payload, FieldRxBytes, asCounter); ok {
		n := v.(int64)
		obs.RxBytes = &n
	}

	if v, ok := r.first(payload, FieldSignal, asObject); ok {
		obs.Signal = v.(map[string]interface{})
	}

	if v, ok := r.first(payload, FieldLocation, asObject); ok {
		obs.Location = v.(map[string]interface{})
	}

	return obs, nil
}

// coercer converts a raw value, reporting false when it is unusable.
type coercer func(raw interface{}) (interface{}, bool)

func (r *ExtractionRules) first(payload map[string]interface{}, field string, coerce coercer) (interface{}, bool) {
	for _, path := range r.rules[field] {
		raw, ok := lookupPath(payload, path)
		if !ok {
			continue
		}

		if v, ok := coerce(raw); ok {
			return v, true
		}
	}

	return nil, false
}

func lookupPath(payload map[string]interface{}, path string) (interface{}, bool) {
	var current interface{} = payload

	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}

		current, ok = m[part]
		if !ok || current == nil {
			return nil, false
		}
	}

	return current, true
}

func asAny(raw interface{}) (interface{}, bool) {
	if s, ok := raw.(string); ok && strings.TrimSpace(s) == "" {
		return nil, false
	}

	return raw, true
}

func asString(raw interface{}) (interface{}, bool) {
	var s string

	switch v := raw.(type) {
	case string:
		s = strings.TrimSpace(v)
	case json.Number:
		s = v.String()
	case float64:
		if v != math.Trunc(v) {
			return nil, false
		}

		s = strconv.FormatInt(int64(v), 10)
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	default:
		return nil, false
	}

	if s == "" {
		return nil, false
	}

	return s, true
}

func asCounter(raw interface{}) (interface{}, bool) {
	n, ok := toInt64(raw)
	if !ok || n < 0 {
		return nil, false
	}

	return n, true
}

func toInt64(raw interface{}) (int64, bool) {
	switch v := raw.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}

		f, err := v.Float64()
		if err != nil {
			return 0, false
		}

		return int64(f), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}

		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}

		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}

		return int64(f), true
	}

	return 0, false
}

func asTimestamp(raw interface{}) (interface{}, bool) {
	ts := models.ParseTimestamp(raw)
	if ts.IsZero() {
		return nil, false
	}

	return ts, true
}

func asObject(raw interface{}) (interface{}, bool) {
	m, ok := raw.(map[string]interface{})
	if !ok || len(m) == 0 {
		return nil, false
	}

	return m, true
}
