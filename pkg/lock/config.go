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

package lock

import (
	"fmt"
	"time"

	"github.com/carverauto/fleetsync/pkg/models"
)

const (
	DefaultStaleThreshold = 30 * time.Minute
	DefaultRetryDelay     = 10 * time.Second
	DefaultMaxAttempts    = 2
)

// Config tunes lock staleness and the acquisition retry policy.
type Config struct {
	// StaleThreshold must exceed the longest run of the guarded job; the lock
	// is never renewed while held.
	StaleThreshold models.Duration `json:"stale_threshold" yaml:"stale_threshold"`
	RetryDelay     models.Duration `json:"retry_delay" yaml:"retry_delay"`
	MaxAttempts    int             `json:"max_attempts" yaml:"max_attempts"`
	// HolderID overrides the generated <hostname>-<uuid> identity.
	HolderID string `json:"holder_id,omitempty" yaml:"holder_id,omitempty"`
}

// Validate applies defaults and rejects nonsensical values.
func (c *Config) Validate() error {
	if c.StaleThreshold < 0 || c.RetryDelay < 0 || c.MaxAttempts < 0 {
		return fmt.Errorf("%w: durations and attempts must not be negative", ErrInvalidConfig)
	}

	if c.StaleThreshold == 0 {
		c.StaleThreshold = models.Duration(DefaultStaleThreshold)
	}

	if c.RetryDelay == 0 {
		c.RetryDelay = models.Duration(DefaultRetryDelay)
	}

	if c.MaxAttempts == 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}

	return nil
}
