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
	"errors"
	"fmt"
	"time"

	"github.com/carverauto/fleetsync/pkg/cache"
	"github.com/carverauto/fleetsync/pkg/fleet"
	"github.com/carverauto/fleetsync/pkg/ingress"
	"github.com/carverauto/fleetsync/pkg/lock"
	"github.com/carverauto/fleetsync/pkg/logger"
	"github.com/carverauto/fleetsync/pkg/models"
	syncengine "github.com/carverauto/fleetsync/pkg/sync"
	"github.com/carverauto/fleetsync/pkg/telemetry"
	"github.com/carverauto/fleetsync/pkg/tracker"
)

var (
	errNATSRequired      = errors.New("nats configuration is required when events or ingress are enabled")
	errNegativeReporting = errors.New("report_interval must not be negative")
)

const defaultReportInterval = 5 * time.Minute

// TelemetryConfig customises payload extraction.
type TelemetryConfig struct {
	FieldRules []telemetry.FieldRule `json:"field_rules,omitempty" yaml:"field_rules,omitempty"`
}

// Config is the fleetsync process configuration.
type Config struct {
	Logging   *logger.Config        `json:"logging" yaml:"logging"`
	Database  models.DatabaseConfig `json:"database" yaml:"database"`
	NATS      *models.NATSConfig    `json:"nats,omitempty" yaml:"nats,omitempty"`
	Events    models.EventsConfig   `json:"events" yaml:"events"`
	Ingress   ingress.Config        `json:"ingress" yaml:"ingress"`
	Fleet     fleet.Config          `json:"fleet" yaml:"fleet"`
	Tracker   *tracker.Config       `json:"tracker,omitempty" yaml:"tracker,omitempty"`
	Lock      lock.Config           `json:"lock" yaml:"lock"`
	Sync      syncengine.Config     `json:"sync" yaml:"sync"`
	Cache     cache.Config          `json:"cache" yaml:"cache"`
	Telemetry TelemetryConfig       `json:"telemetry" yaml:"telemetry"`
	// ReportInterval spaces the periodic fleet summary log line. Zero uses
	// the default.
	ReportInterval models.Duration `json:"report_interval" yaml:"report_interval"`
}

// Validate defaults every section and checks cross-section requirements.
func (c *Config) Validate() error {
	if c.Logging == nil {
		c.Logging = logger.DefaultConfig()
	}

	c.Logging.MergeDefaults()

	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if c.NATS != nil {
		if err := c.NATS.Validate(); err != nil {
			return fmt.Errorf("nats: %w", err)
		}
	} else if c.Events.Enabled || c.Ingress.Enabled {
		return errNATSRequired
	}

	if err := c.Events.Validate(); err != nil {
		return fmt.Errorf("events: %w", err)
	}

	if err := c.Ingress.Validate(); err != nil {
		return fmt.Errorf("ingress: %w", err)
	}

	if err := c.Fleet.Validate(); err != nil {
		return fmt.Errorf("fleet: %w", err)
	}

	if c.Tracker != nil {
		if err := c.Tracker.Validate(); err != nil {
			return fmt.Errorf("tracker: %w", err)
		}
	}

	if err := c.Lock.Validate(); err != nil {
		return fmt.Errorf("lock: %w", err)
	}

	if err := c.Sync.Validate(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}

	if _, err := telemetry.NewExtractionRules(c.Telemetry.FieldRules); err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}

	if c.ReportInterval < 0 {
		return errNegativeReporting
	}

	if c.ReportInterval == 0 {
		c.ReportInterval = models.Duration(defaultReportInterval)
	}

	return nil
}

// Warnings lists settings that are valid but likely wrong.
func (c *Config) Warnings() []string {
	var out []string

	// The lock is never renewed, so a threshold shorter than a poll interval
	// lets a second replica reclaim it from a healthy holder.
	if c.Lock.StaleThreshold <= c.Sync.PollInterval {
		out = append(out, fmt.Sprintf(
			"lock.stale_threshold (%s) is not longer than sync.poll_interval (%s); a live scheduler may lose its lock",
			c.Lock.StaleThreshold.Std(), c.Sync.PollInterval.Std()))
	}

	if c.Tracker == nil {
		out = append(out, "tracker not configured; status changes and missing tasks will not be forwarded")
	}

	return out
}
