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

import (
	"fmt"
	"net/url"
	"time"

	"github.com/carverauto/fleetsync/pkg/models"
)

const (
	defaultTimeout           = 15 * time.Second
	defaultRequestsPerSecond = 5
	defaultBurst             = 1
)

// Config describes how to reach the fleet management API.
type Config struct {
	BaseURL string `json:"base_url" yaml:"base_url"`
	APIKey  string `json:"api_key" yaml:"api_key" sensitive:"true"`
	// Timeout bounds every individual request.
	Timeout           models.Duration `json:"timeout" yaml:"timeout"`
	RequestsPerSecond float64         `json:"requests_per_second" yaml:"requests_per_second"`
	Burst             int             `json:"burst" yaml:"burst"`
	// MonthlyCallLimit is used when the usage endpoint does not report a limit.
	MonthlyCallLimit int64 `json:"monthly_call_limit" yaml:"monthly_call_limit"`
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrBaseURLRequired
	}

	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		return fmt.Errorf("invalid fleet API base URL: %w", err)
	}

	if c.Timeout <= 0 {
		c.Timeout = models.Duration(defaultTimeout)
	}

	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = defaultRequestsPerSecond
	}

	if c.Burst <= 0 {
		c.Burst = defaultBurst
	}

	return nil
}
