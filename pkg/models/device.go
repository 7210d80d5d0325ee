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

package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// DeviceStatus is the normalized connectivity state of a device.
type DeviceStatus string

const (
	StatusOnline  DeviceStatus = "online"
	StatusOffline DeviceStatus = "offline"
)

// onlineTokens are the string spellings vendors use for a reachable device.
//
//nolint:gochecknoglobals // read-only lookup table
var onlineTokens = map[string]struct{}{
	"online":    {},
	"up":        {},
	"connected": {},
	"active":    {},
	"alive":     {},
	"true":      {},
	"yes":       {},
	"on":        {},
	"1":         {},
}

// NormalizeStatus maps any vendor status representation onto exactly one of
// StatusOnline or StatusOffline. Truthy values (true, non-zero numbers and
// online-like strings) are online; everything else, including nil, is offline.
func NormalizeStatus(raw interface{}) DeviceStatus {
	switch v := raw.(type) {
	case nil:
		return StatusOffline
	case DeviceStatus:
		return NormalizeStatus(string(v))
	case bool:
		if v {
			return StatusOnline
		}
	case string:
		if _, ok := onlineTokens[strings.ToLower(strings.TrimSpace(v))]; ok {
			return StatusOnline
		}
	case json.Number:
		if f, err := v.Float64(); err == nil && f != 0 && !math.IsNaN(f) {
			return StatusOnline
		}
	case float64:
		if v != 0 && !math.IsNaN(v) {
			return StatusOnline
		}
	case float32:
		if v != 0 {
			return StatusOnline
		}
	case int:
		if v != 0 {
			return StatusOnline
		}
	case int32:
		if v != 0 {
			return StatusOnline
		}
	case int64:
		if v != 0 {
			return StatusOnline
		}
	case uint64:
		if v != 0 {
			return StatusOnline
		}
	}

	return StatusOffline
}

// IsOnline reports whether the status is StatusOnline.
func (s DeviceStatus) IsOnline() bool {
	return s == StatusOnline
}

func (s DeviceStatus) String() string {
	return string(s)
}

// Device is the canonical identity row for a managed field device.
type Device struct {
	DeviceID        string       `json:"device_id"`
	Name            string       `json:"name"`
	MACAddress      string       `json:"mac_address,omitempty"`
	FirmwareVersion string       `json:"firmware_version,omitempty"`
	CurrentStatus   DeviceStatus `json:"current_status"`
	// LastSeen only moves forward and only reflects a confirmed-online moment.
	LastSeen       *time.Time `json:"last_seen,omitempty"`
	TotalTxBytes   int64      `json:"total_tx_bytes"`
	TotalRxBytes   int64      `json:"total_rx_bytes"`
	ExternalTaskID *string    `json:"external_task_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// DeviceIdentity carries the descriptive fields taken from an observation when
// a device row is resolved or created.
type DeviceIdentity struct {
	DeviceID        string
	Name            string
	MACAddress      string
	FirmwareVersion string
}

// DeviceState is the mutable state written back to the device row after a
// telemetry record has been stored.
type DeviceState struct {
	DeviceID     string
	Status       DeviceStatus
	TotalTxBytes int64
	TotalRxBytes int64
	// LastSeen is nil when the observation must not advance last_seen.
	LastSeen *time.Time
	// ObservedAt is the timestamp of the record being stored. Status and
	// counters are left alone when the device already has a newer record.
	ObservedAt time.Time
}

// DeviceSummary pairs a device with the number of telemetry records it owns.
type DeviceSummary struct {
	Device
	RecordCount int64 `json:"record_count"`
}

// StatusChanged is emitted when a device's normalized status differs from the
// status of its previous telemetry record.
type StatusChanged struct {
	DeviceID string       `json:"device_id"`
	Previous DeviceStatus `json:"previous"`
	Current  DeviceStatus `json:"current"`
	At       time.Time    `json:"at"`
}

// ParseTimestamp interprets vendor timestamps: RFC3339 strings, unix seconds
// or unix milliseconds. The zero time is returned when nothing usable is found.
func ParseTimestamp(raw interface{}) time.Time {
	switch v := raw.(type) {
	case time.Time:
		return v
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}
		}

		if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return ts
		}

		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return unixAuto(n)
		}
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return unixAuto(n)
		}
	case float64:
		return unixAuto(int64(v))
	case int64:
		return unixAuto(v)
	case int:
		return unixAuto(int64(v))
	}

	return time.Time{}
}

// unixMillisThreshold separates second and millisecond epochs (year 2286 in seconds).
const unixMillisThreshold = 10_000_000_000

func unixAuto(n int64) time.Time {
	if n <= 0 {
		return time.Time{}
	}

	if n >= unixMillisThreshold {
		return time.UnixMilli(n).UTC()
	}

	return time.Unix(n, 0).UTC()
}
