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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDurationJSON(t *testing.T) {
	var cfg struct {
		A Duration `json:"a"`
		B Duration `json:"b"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"a":"1m30s","b":1000000000}`), &cfg))
	assert.Equal(t, 90*time.Second, cfg.A.Std())
	assert.Equal(t, time.Second, cfg.B.Std())

	out, err := json.Marshal(cfg.A)
	require.NoError(t, err)
	assert.JSONEq(t, `"1m30s"`, string(out))

	require.ErrorIs(t, json.Unmarshal([]byte(`{"a":true}`), &cfg), errInvalidDuration)
	require.ErrorIs(t, json.Unmarshal([]byte(`{"a":"soon"}`), &cfg), errInvalidDuration)
}

func TestDurationYAML(t *testing.T) {
	var cfg struct {
		A Duration `yaml:"a"`
		B Duration `yaml:"b"`
	}

	require.NoError(t, yaml.Unmarshal([]byte("a: 10s\nb: 500\n"), &cfg))
	assert.Equal(t, 10*time.Second, cfg.A.Std())
	assert.Equal(t, 500*time.Nanosecond, cfg.B.Std())
}

func TestDurationOrDefault(t *testing.T) {
	assert.Equal(t, time.Minute, Duration(0).OrDefault(time.Minute))
	assert.Equal(t, time.Second, Duration(time.Second).OrDefault(time.Minute))
}

func TestDatabaseConfigValidate(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Database: "fleet"}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, "fleetsync", cfg.ApplicationName)
	assert.Empty(t, cfg.SSLMode)

	require.ErrorIs(t, (&DatabaseConfig{Database: "fleet"}).Validate(), errDatabaseHost)
	require.ErrorIs(t, (&DatabaseConfig{Host: "db"}).Validate(), errDatabaseName)

	withTLS := DatabaseConfig{Host: "db", Database: "fleet", TLS: &TLSConfig{CertFile: "c"}}
	require.ErrorIs(t, withTLS.Validate(), errTLSIncomplete)
}

func TestNATSAndEventsConfigValidate(t *testing.T) {
	require.ErrorIs(t, (&NATSConfig{}).Validate(), errNATSURLRequired)
	require.ErrorIs(t, (&NATSConfig{URL: "nats://x", TLS: &TLSConfig{CAFile: "ca"}}).Validate(), errIncompleteTLS)

	ev := EventsConfig{Enabled: true}
	require.NoError(t, ev.Validate())
	assert.Equal(t, DefaultEventsStream, ev.StreamName)
	assert.Equal(t, []string{"events.fleet.>"}, ev.Subjects)

	off := EventsConfig{}
	require.NoError(t, off.Validate())
	assert.Empty(t, off.StreamName)
}
