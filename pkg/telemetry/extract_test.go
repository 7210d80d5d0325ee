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
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/fleetsync/pkg/models"
)

func decode(t *testing.T, raw string) map[string]interface{} {
	t.Helper()

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var out map[string]interface{}
	require.NoError(t, dec.Decode(&out))

	return out
}

func TestExtractFlatPayload(t *testing.T) {
	rules := DefaultExtractionRules()

	obs, err := rules.Extract(decode(t, `{
		"device_id": "r-55",
		"name": "Router 55",
		"mac_address": "AA:BB",
		"status": "online",
		"timestamp": "2025-03-01T10:00:00Z",
		"total_tx_bytes": 9007199254740993,
		"total_rx_bytes": "42",
		"signal": {"rssi": -70}
	}`), models.SourcePush)
	require.NoError(t, err)

	assert.Equal(t, "r-55", obs.DeviceID)
	assert.Equal(t, "Router 55", obs.Name)
	assert.Equal(t, "AA:BB", obs.MACAddress)
	assert.Equal(t, "online", obs.RawStatus)
	assert.True(t, obs.Timestamp.Equal(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)))
	require.NotNil(t, obs.TxBytes)
	assert.Equal(t, int64(9007199254740993), *obs.TxBytes)
	require.NotNil(t, obs.RxBytes)
	assert.Equal(t, int64(42), *obs.RxBytes)
	assert.NotEmpty(t, obs.Signal)
	assert.Equal(t, models.SourcePush, obs.Source)
}

func TestExtractNestedMonitoringPayload(t *testing.T) {
	rules := DefaultExtractionRules()

	obs, err := rules.Extract(map[string]interface{}{
		"id":   float64(123456789012),
		"name": "",
		"monitoring": map[string]interface{}{
			"online":    true,
			"timestamp": float64(1740823200000),
			"wan":       map[string]interface{}{"tx_bytes": float64(10), "rx_bytes": float64(20)},
		},
	}, models.SourcePoll)
	require.NoError(t, err)

	assert.Equal(t, "123456789012", obs.DeviceID)
	assert.Empty(t, obs.Name)
	assert.Equal(t, true, obs.RawStatus)
	assert.Equal(t, time.UnixMilli(1740823200000).UTC(), obs.Timestamp)
	assert.Equal(t, int64(10), *obs.TxBytes)
	assert.Equal(t, int64(20), *obs.RxBytes)
}

func TestExtractPriorityAndInvalidValues(t *testing.T) {
	rules := DefaultExtractionRules()

	obs, err := rules.Extract(map[string]interface{}{
		"device_id":      "primary",
		"id":             "secondary",
		"total_tx_bytes": "not-a-number",
		"tx_bytes":       float64(77),
		"rx_bytes":       float64(-5),
		"timestamp":      "garbage",
	}, models.SourcePoll)
	require.NoError(t, err)

	assert.Equal(t, "primary", obs.DeviceID)
	assert.Equal(t, int64(77), *obs.TxBytes)
	assert.Nil(t, obs.RxBytes)
	assert.False(t, obs.HasTimestamp())
}

func TestExtractionRuleOverrides(t *testing.T) {
	rules, err := NewExtractionRules([]FieldRule{{Field: FieldDeviceID, Paths: []string{"hw.serial"}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"hw.serial"}, rules.Paths(FieldDeviceID))

	obs, err := rules.Extract(map[string]interface{}{
		"device_id": "ignored",
		"hw":        map[string]interface{}{"serial": "S-1"},
	}, models.SourcePoll)
	require.NoError(t, err)
	assert.Equal(t, "S-1", obs.DeviceID)

	_, err = NewExtractionRules([]FieldRule{{Field: "colour", Paths: []string{"x"}}})
	require.ErrorIs(t, err, ErrUnknownField)

	_, err = NewExtractionRules([]FieldRule{{Field: FieldName}})
	require.ErrorIs(t, err, ErrRuleWithoutPath)

	_, err = rules.Extract(nil, models.SourcePoll)
	require.ErrorIs(t, err, ErrNilPayload)
}
