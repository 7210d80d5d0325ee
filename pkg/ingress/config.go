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

package ingress

import (
	"errors"
	"time"

	"github.com/carverauto/fleetsync/pkg/models"
)

const (
	DefaultStreamName = "fleet_telemetry"
	DefaultSubject    = "telemetry.fleet.>"
	DefaultDurable    = "fleetsync-ingress"

	defaultAckWait    = 30 * time.Second
	defaultMaxDeliver = 5
)

var errInvalidMaxDeliver = errors.New("max_deliver must not be negative")

// Config selects the JetStream stream and durable consumer that carry pushed
// device telemetry.
type Config struct {
	Enabled    bool            `json:"enabled" yaml:"enabled"`
	StreamName string          `json:"stream_name" yaml:"stream_name"`
	Subjects   []string        `json:"subjects" yaml:"subjects"`
	Durable    string          `json:"durable" yaml:"durable"`
	AckWait    models.Duration `json:"ack_wait" yaml:"ack_wait"`
	MaxDeliver int             `json:"max_deliver" yaml:"max_deliver"`
}

func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.MaxDeliver < 0 {
		return errInvalidMaxDeliver
	}

	if c.StreamName == "" {
		c.StreamName = DefaultStreamName
	}

	if len(c.Subjects) == 0 {
		c.Subjects = []string{DefaultSubject}
	}

	if c.Durable == "" {
		c.Durable = DefaultDurable
	}

	if c.AckWait <= 0 {
		c.AckWait = models.Duration(defaultAckWait)
	}

	if c.MaxDeliver == 0 {
		c.MaxDeliver = defaultMaxDeliver
	}

	return nil
}
