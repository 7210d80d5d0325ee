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

package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/fleetsync/pkg/models"
)

func TestSanitizedJSONDropsSensitiveFields(t *testing.T) {
	cfg := struct {
		Database models.DatabaseConfig `json:"database"`
		Token    string                `json:"token" sensitive:"true"`
	}{
		Database: models.DatabaseConfig{Host: "db", Database: "fleet", Password: "hunter2"},
		Token:    "secret",
	}

	out, err := SanitizedJSON(&cfg)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "hunter2")
	assert.NotContains(t, string(out), "secret")

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))

	db, ok := decoded["database"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "db", db["host"])
}

func TestSanitizedJSONRejectsNonStruct(t *testing.T) {
	_, err := SanitizedJSON("plain")
	require.Error(t, err)
}
