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
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	errInvalidDuration = errors.New("invalid duration")
	errDatabaseHost    = errors.New("database host is required")
	errDatabaseName    = errors.New("database name is required")
	errTLSIncomplete   = errors.New("database tls: cert_file, key_file and ca_file must be provided together")
	errNATSURLRequired = errors.New("nats url is required")
	errIncompleteTLS   = errors.New("nats tls: cert_file, key_file and ca_file must be provided together")
)

// Duration is a time.Duration that decodes from "30s" style strings or from
// integer nanoseconds in JSON, YAML and environment variables.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		return d.UnmarshalText([]byte(value))
	default:
		return errInvalidDuration
	}
}

// MarshalJSON encodes the duration in its string form.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: expected scalar, got kind %d", errInvalidDuration, node.Kind)
	}

	if node.Tag == "!!int" {
		var n int64
		if err := node.Decode(&n); err != nil {
			return err
		}

		*d = Duration(time.Duration(n))

		return nil
	}

	return d.UnmarshalText([]byte(node.Value))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	dur, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidDuration, err)
	}

	*d = Duration(dur)

	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// OrDefault returns def when d is not positive.
func (d Duration) OrDefault(def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}

	return time.Duration(d)
}

// TLSConfig points at PEM files for mutual TLS.
type TLSConfig struct {
	CertFile string `json:"cert_file" yaml:"cert_file"`
	KeyFile  string `json:"key_file" yaml:"key_file"`
	CAFile   string `json:"ca_file" yaml:"ca_file"`
}

// DatabaseConfig configures the Postgres connection pool.
type DatabaseConfig struct {
	Host               string            `json:"host" yaml:"host"`
	Port               int               `json:"port" yaml:"port"`
	Database           string            `json:"database" yaml:"database"`
	Username           string            `json:"username" yaml:"username"`
	Password           string            `json:"password" yaml:"password" sensitive:"true"`
	SSLMode            string            `json:"ssl_mode" yaml:"ssl_mode"`
	ApplicationName    string            `json:"application_name" yaml:"application_name"`
	MaxConnections     int32             `json:"max_connections" yaml:"max_connections"`
	MinConnections     int32             `json:"min_connections" yaml:"min_connections"`
	MaxConnLifetime    Duration          `json:"max_conn_lifetime" yaml:"max_conn_lifetime"`
	HealthCheckPeriod  Duration          `json:"health_check_period" yaml:"health_check_period"`
	StatementTimeout   Duration          `json:"statement_timeout" yaml:"statement_timeout"`
	ExtraRuntimeParams map[string]string `json:"runtime_params,omitempty" yaml:"runtime_params,omitempty"`
	TLS                *TLSConfig        `json:"tls,omitempty" yaml:"tls,omitempty"`
}

// Validate defaults and checks the database configuration.
func (c *DatabaseConfig) Validate() error {
	if c.Host == "" {
		return errDatabaseHost
	}

	if c.Database == "" {
		return errDatabaseName
	}

	if c.Port == 0 {
		c.Port = 5432
	}

	if c.ApplicationName == "" {
		c.ApplicationName = "fleetsync"
	}

	if c.TLS != nil && (c.TLS.CertFile == "" || c.TLS.KeyFile == "" || c.TLS.CAFile == "") {
		return errTLSIncomplete
	}

	return nil
}

// NATSConfig configures NATS connectivity
type NATSConfig struct {
	URL       string `json:"url" yaml:"url"`
	CredsFile string `json:"creds_file,omitempty" yaml:"creds_file,omitempty"`
	Domain    string `json:"domain,omitempty" yaml:"domain,omitempty"`
	// TLS enables mutual TLS to the NATS server when set.
	TLS *TLSConfig `json:"tls,omitempty" yaml:"tls,omitempty"`
}

// Validate ensures the NATS configuration is valid
func (c *NATSConfig) Validate() error {
	if c.URL == "" {
		return errNATSURLRequired
	}

	if c.TLS != nil && (c.TLS.CertFile == "" || c.TLS.KeyFile == "" || c.TLS.CAFile == "") {
		return errIncompleteTLS
	}

	return nil
}

// EventsConfig configures status-change event publishing.
type EventsConfig struct {
	Enabled    bool     `json:"enabled" yaml:"enabled"`
	StreamName string   `json:"stream_name" yaml:"stream_name"`
	Subjects   []string `json:"subjects" yaml:"subjects"`
}

// Validate ensures the events configuration is valid
func (c *EventsConfig) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.StreamName == "" {
		c.StreamName = DefaultEventsStream
	}

	if len(c.Subjects) == 0 {
		c.Subjects = []string{EventSubjectPrefix + ".>"}
	}

	return nil
}
