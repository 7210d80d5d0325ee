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

package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/fleetsync/pkg/cache"
	"github.com/carverauto/fleetsync/pkg/db"
	"github.com/carverauto/fleetsync/pkg/fleet"
	"github.com/carverauto/fleetsync/pkg/fleetview"
	"github.com/carverauto/fleetsync/pkg/logger"
	"github.com/carverauto/fleetsync/pkg/models"
	"github.com/carverauto/fleetsync/pkg/telemetry"
)

func fleetConfig() fleet.Config {
	return fleet.Config{BaseURL: "https://fleet.example.com/", APIKey: "key"}
}

func minimalConfig() Config {
	return Config{
		Database: models.DatabaseConfig{Host: "localhost", Database: "fleetsync"},
		Fleet:    fleetConfig(),
	}
}

func TestValidateAppliesDefaults(t *testing.T) {
	cfg := minimalConfig()
	require.NoError(t, cfg.Validate())

	require.NotNil(t, cfg.Logging)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 15*time.Minute, cfg.Sync.PollInterval.Std())
	assert.Equal(t, 30*time.Minute, cfg.Lock.StaleThreshold.Std())
	assert.Equal(t, defaultReportInterval, cfg.ReportInterval.Std())
	assert.Contains(t, cfg.Cache.Families, cache.FamilyDevices)
}

func TestValidateRequiresNATSForEventsAndIngress(t *testing.T) {
	cfg := minimalConfig()
	cfg.Events.Enabled = true
	require.ErrorIs(t, cfg.Validate(), errNATSRequired)

	cfg = minimalConfig()
	cfg.Ingress.Enabled = true
	require.ErrorIs(t, cfg.Validate(), errNATSRequired)

	cfg = minimalConfig()
	cfg.Ingress.Enabled = true
	cfg.NATS = &models.NATSConfig{URL: "nats://127.0.0.1:4222"}
	require.NoError(t, cfg.Validate())
	assert.NotEmpty(t, cfg.Ingress.StreamName)
}

func TestValidateRejectsBadSections(t *testing.T) {
	cases := map[string]func(*Config){
		"database": func(c *Config) { c.Database.Host = "" },
		"fleet":    func(c *Config) { c.Fleet.BaseURL = "" },
		"sync":     func(c *Config) { c.Sync.QuotaThreshold = 2 },
		"lock":     func(c *Config) { c.Lock.MaxAttempts = -1 },
		"telemetry": func(c *Config) {
			c.Telemetry.FieldRules = []telemetry.FieldRule{{Field: "colour", Paths: []string{"x"}}}
		},
		"report": func(c *Config) { c.ReportInterval = models.Duration(-time.Second) },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := minimalConfig()
			mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestWarnings(t *testing.T) {
	cfg := minimalConfig()
	require.NoError(t, cfg.Validate())

	warnings := cfg.Warnings()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "tracker")

	cfg.Lock.StaleThreshold = models.Duration(10 * time.Minute)
	warnings = cfg.Warnings()
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "stale_threshold")
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "")

	path := filepath.Join(t.TempDir(), "fleetsync.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"database": {"host": "db", "database": "fleet", "password": "pw"},
		"fleet": {"base_url": "https://fleet.example.com", "api_key": "k"},
		"sync": {"poll_interval": "10m", "quota_threshold": 0.8},
		"lock": {"stale_threshold": "45m"}
	}`), 0o600))

	cfg, err := LoadConfig(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 10*time.Minute, cfg.Sync.PollInterval.Std())
	assert.InDelta(t, 0.8, cfg.Sync.QuotaThreshold, 1e-9)
	assert.Equal(t, 45*time.Minute, cfg.Lock.StaleThreshold.Std())
}

func TestCollectSummary(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStore()

	for _, d := range []struct {
		id, name string
		status   models.DeviceStatus
	}{
		{"1", "Router 55", models.StatusOnline},
		{"2", "router 55", models.StatusOffline},
		{"3", "Gateway", models.StatusOnline},
	} {
		_, err := store.ResolveDevice(ctx, models.DeviceIdentity{DeviceID: d.id, Name: d.name})
		require.NoError(t, err)

		rec := &models.TelemetryRecord{DeviceID: d.id, Timestamp: time.Now().UTC(), Status: d.status}
		require.NoError(t, store.AppendTelemetry(ctx, rec, models.DeviceState{DeviceID: d.id, Status: d.status}))
	}

	mgr, err := cache.NewManager(cache.DefaultConfig(), logger.NewTestLogger())
	require.NoError(t, err)

	view := fleetview.NewService(store, mgr, logger.NewTestLogger())

	s, err := collectSummary(ctx, view, mgr)
	require.NoError(t, err)

	assert.Equal(t, 3, s.Devices)
	assert.Equal(t, 2, s.Online)
	assert.Equal(t, 1, s.DuplicateGroups)
	assert.Equal(t, 2, s.Cache.Entries)
}
