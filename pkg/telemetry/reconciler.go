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

import "github.com/carverauto/fleetsync/pkg/models"

// Counters are the cumulative byte totals to store for an observation.
type Counters struct {
	TxBytes int64
	RxBytes int64
	// Carried is set when both values came from the baseline.
	Carried bool
}

// ReconcileCounters decides which cumulative counters to persist.
//
// A non-zero reported value on either side means the device is reporting and
// its values are trusted as-is; a side that is absent from the payload falls
// back to the baseline while a reported zero is kept. When both sides are zero
// or absent the baseline is carried forward (zero without a baseline). A real
// counter reset to zero is indistinguishable from missing data and is carried
// forward too.
func ReconcileCounters(obs *models.Observation, baseline *models.TelemetryRecord) Counters {
	var baseTx, baseRx int64
	if baseline != nil {
		baseTx, baseRx = baseline.TotalTxBytes, baseline.TotalRxBytes
	}

	if !isNonZero(obs.TxBytes) && !isNonZero(obs.RxBytes) {
		return Counters{TxBytes: baseTx, RxBytes: baseRx, Carried: true}
	}

	out := Counters{TxBytes: baseTx, RxBytes: baseRx}

	if obs.TxBytes != nil {
		out.TxBytes = *obs.TxBytes
	}

	if obs.RxBytes != nil {
		out.RxBytes = *obs.RxBytes
	}

	return out
}

func isNonZero(v *int64) bool {
	return v != nil && *v != 0
}

// UsageDelta is the traffic between two cumulative readings. A decrease is
// treated as zero usage rather than negative.
func UsageDelta(previous, current int64) int64 {
	if current <= previous {
		return 0
	}

	return current - previous
}
