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

package tracker

import (
	"fmt"
	"net/url"
	"time"

	"github.com/carverauto/fleetsync/pkg/models"
)

const (
	defaultTimeout        = 10 * time.Second
	defaultMaxAttempts    = 3
	defaultInitialBackoff = 500 * time.Millisecond
	defaultMaxBackoff     = 5 * time.Second
)

// Config describes how to reach the external task tracker.
type Config struct {
	BaseURL        string          `json:"base_url" yaml:"base_url"`
	APIKey         string          `json:"api_key" yaml:"api_key" sensitive:"true"`
	Timeout        models.Duration `json:"timeout" yaml:"timeout"`
	MaxAttempts    int             `json:"max_attempts" yaml:"max_attempts"`
	InitialBackoff models.Duration `json:"initial_backoff" yaml:"initial_backoff"`
	MaxBackoff     models.Duration `json:"max_backoff" yaml:"max_backoff"`
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrBaseURLRequired
	}

	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		return fmt.Errorf("invalid task tracker base URL: %w", err)
	}

	if c.Timeout <= 0 {
		c.Timeout = models.Duration(defaultTimeout)
	}

	if c.MaxAttempts <= 0 {
		c.MaxAttempts = defaultMaxAttempts
	}

	if c.InitialBackoff <= 0 {
		c.InitialBackoff = models.Duration(defaultInitialBackoff)
	}

	if c.MaxBackoff <= 0 {
		c.MaxBackoff = models.Duration(defaultMaxBackoff)
	}

	return nil
}
