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

package cache

import (
	"fmt"
	"time"

	"github.com/carverauto/fleetsync/pkg/models"
)

const (
	FamilyDevices    = "devices"
	FamilyEnrichment = "enrichment"
	FamilyGroups     = "groups"
)

// FamilyConfig tunes one cache family.
type FamilyConfig struct {
	TTL  models.Duration `json:"ttl" yaml:"ttl"`
	ETag bool            `json:"etag" yaml:"etag"`
}

// Config maps family names to their settings. Families missing from the
// map fall back to DefaultConfig.
type Config struct {
	Families map[string]FamilyConfig `json:"families" yaml:"families"`
}

// DefaultConfig returns the stock families: a short-lived ETag-bearing device
// list, a minutes-long enrichment join and a week-long grouping.
func DefaultConfig() Config {
	return Config{
		Families: map[string]FamilyConfig{
			FamilyDevices:    {TTL: models.Duration(30 * time.Second), ETag: true},
			FamilyEnrichment: {TTL: models.Duration(5 * time.Minute)},
			FamilyGroups:     {TTL: models.Duration(7 * 24 * time.Hour)},
		},
	}
}

// Validate fills in missing stock families and rejects non-positive TTLs.
func (c *Config) Validate() error {
	if c.Families == nil {
		c.Families = make(map[string]FamilyConfig)
	}

	for name, fc := range DefaultConfig().Families {
		if _, ok := c.Families[name]; !ok {
			c.Families[name] = fc
		}
	}

	for name, fc := range c.Families {
		if fc.TTL <= 0 {
			return fmt.Errorf("%w: %s", ErrInvalidTTL, name)
		}
	}

	return nil
}
