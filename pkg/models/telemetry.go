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

import "time"

// ObservationSource identifies the ingress channel an observation came from.
type ObservationSource string

const (
	SourcePoll ObservationSource = "poll"
	SourcePush ObservationSource = "push"
)

// Observation is a single device report normalized into the canonical shape,
// regardless of which ingress channel produced it.
type Observation struct {
	DeviceID        string      `json:"device_id"`
	Name            string      `json:"name,omitempty"`
	MACAddress      string      `json:"mac_address,omitempty"`
	FirmwareVersion string      `json:"firmware_version,omitempty"`
	RawStatus       interface{} `json:"status,omitempty"`
	// Timestamp is the zero time when the source did not report one.
	Timestamp time.Time `json:"timestamp,omitempty"`
	// TxBytes and RxBytes are nil when the counter was absent from the payload.
	TxBytes  *int64                 `json:"total_tx_bytes,omitempty"`
	RxBytes  *int64                 `json:"total_rx_bytes,omitempty"`
	Signal   map[string]interface{} `json:"signal,omitempty"`
	Location map[string]interface{} `json:"location,omitempty"`
	Source   ObservationSource      `json:"source,omitempty"`
}

// HasTimestamp reports whether the source supplied a concrete observation time.
func (o *Observation) HasTimestamp() bool {
	return !o.Timestamp.IsZero()
}

// TelemetryRecord is an immutable, append-only telemetry sample.
type TelemetryRecord struct {
	ID           int64        `json:"id"`
	DeviceID     string       `json:"device_id"`
	Timestamp    time.Time    `json:"timestamp"`
	Status       DeviceStatus `json:"status"`
	TotalTxBytes int64        `json:"total_tx_bytes"`
	TotalRxBytes int64        `json:"total_rx_bytes"`
	// CountersCarried marks records whose counters were carried forward from
	// the previous record because the device reported none.
	CountersCarried bool                   `json:"counters_carried"`
	Signal          map[string]interface{} `json:"signal,omitempty"`
	Location        map[string]interface{} `json:"location,omitempty"`
	Source          ObservationSource      `json:"source,omitempty"`
}
