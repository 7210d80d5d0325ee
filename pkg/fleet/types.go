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

package fleet

// RawDevice is one device entry exactly as the fleet API returned it.
// Numbers are decoded as json.Number.
type RawDevice map[string]interface{}

// MonitoringKey holds the monitoring block inside a device entry.
const MonitoringKey = "monitoring"

// HasMonitoring reports whether the listing already carried monitoring data.
func (d RawDevice) HasMonitoring() bool {
	m, ok := d[MonitoringKey].(map[string]interface{})

	return ok && len(m) > 0
}

// WithMonitoring returns a shallow copy of d with its monitoring block replaced.
func (d RawDevice) WithMonitoring(monitoring map[string]interface{}) RawDevice {
	out := make(RawDevice, len(d)+1)
	for k, v := range d {
		out[k] = v
	}

	out[MonitoringKey] = monitoring

	return out
}

// CallBudget is the account's API usage for the current billing month.
type CallBudget struct {
	Used  int64 `json:"used"`
	Limit int64 `json:"limit"`
}

// Ratio returns Used/Limit, or 0 when no limit is known.
func (b CallBudget) Ratio() float64 {
	if b.Limit <= 0 {
		return 0
	}

	return float64(b.Used) / float64(b.Limit)
}

type listResponse struct {
	Devices []RawDevice `json:"devices"`
}
