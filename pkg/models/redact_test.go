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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterSensitiveFields(t *testing.T) {
	cfg := struct {
		Database DatabaseConfig `json:"database"`
		NATS     *NATSConfig    `json:"nats,omitempty"`
		Token    string         `json:"token" sensitive:"true"`
		Labels   map[string]int `json:"labels"`
		Skip     string         `json:"-"`
		Plain    int
		hidden   string
	}{
		Database: DatabaseConfig{Host: "db", Password: "hunter2", StatementTimeout: Duration(time.Second)},
		Token:    "abc",
		Labels:   map[string]int{"a": 1},
		Skip:     "x",
		Plain:    7,
		hidden:   "y",
	}

	out, err := FilterSensitiveFields(&cfg)
	require.NoError(t, err)

	assert.NotContains(t, out, "token")
	assert.NotContains(t, out, "Skip")
	assert.NotContains(t, out, "hidden")
	assert.Equal(t, 7, out["Plain"])
	assert.Nil(t, out["nats"])
	assert.Equal(t, map[string]interface{}{"a": 1}, out["labels"])

	db, ok := out["database"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "db", db["host"])
	assert.NotContains(t, db, "password")
	assert.Equal(t, Duration(time.Second), db["statement_timeout"])
}

func TestFilterSensitiveFieldsRejectsNonStruct(t *testing.T) {
	_, err := FilterSensitiveFields("plain")
	require.ErrorIs(t, err, errNotStruct)

	out, err := FilterSensitiveFields(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}
