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

package sync

import (
	"time"

	"github.com/carverauto/fleetsync/pkg/models"
)

const (
	DefaultJobName = "fleet-device-sync"

	defaultPollInterval     = 15 * time.Minute
	defaultColdStartDelay   = 2 * time.Second
	defaultWarmDelay        = 500 * time.Millisecond
	defaultQuotaThreshold   = 0.9
	defaultHistoryRetention = 24 * time.Hour
)

// Config tunes the poll cycle.
type Config struct {
	JobName      string          `json:"job_name" yaml:"job_name"`
	PollInterval models.Duration `json:"poll_interval" yaml:"poll_interval"`
	// ColdStartDelay precedes devices with no stored telemetry; those calls
	// are the expensive ones on the vendor side.
	ColdStartDelay models.Duration `json:"cold_start_delay" yaml:"cold_start_delay"`
	WarmDelay      models.Duration `json:"warm_delay" yaml:"warm_delay"`
	// QuotaThreshold is the fraction of the monthly call budget that usage
	// must exceed before runs are skipped.
	QuotaThreshold   float64         `json:"quota_threshold" yaml:"quota_threshold"`
	HistoryRetention models.Duration `json:"history_retention" yaml:"history_retention"`
	DisableAutoMerge bool            `json:"disable_auto_merge" yaml:"disable_auto_merge"`
	DisableTasks     bool            `json:"disable_tasks" yaml:"disable_tasks"`
}

func (c *Config) Validate() error {
	if c.ColdStartDelay < 0 || c.WarmDelay < 0 {
		return errNegativeDelay
	}

	if c.QuotaThreshold < 0 || c.QuotaThreshold > 1 {
		return errInvalidQuotaThreshold
	}

	if c.JobName == "" {
		c.JobName = DefaultJobName
	}

	if c.PollInterval <= 0 {
		c.PollInterval = models.Duration(defaultPollInterval)
	}

	if c.ColdStartDelay == 0 {
		c.ColdStartDelay = models.Duration(defaultColdStartDelay)
	}

	if c.WarmDelay == 0 {
		c.WarmDelay = models.Duration(defaultWarmDelay)
	}

	if c.QuotaThreshold == 0 {
		c.QuotaThreshold = defaultQuotaThreshold
	}

	if c.HistoryRetention <= 0 {
		c.HistoryRetention = models.Duration(defaultHistoryRetention)
	}

	return nil
}
