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

package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/fleetsync/pkg/logger"
	"github.com/carverauto/fleetsync/pkg/models"
)

func TestBuildConnURLDefaults(t *testing.T) {
	t.Parallel()

	u, err := buildConnURL(&models.DatabaseConfig{
		Host:            "pg",
		Database:        "fleet",
		Username:        "svc",
		Password:        "secret",
		ApplicationName: "fleetsync",
	})
	require.NoError(t, err)

	assert.Equal(t, "pg:5432", u.Host)
	assert.Equal(t, "/fleet", u.Path)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
	assert.Equal(t, "fleetsync", u.Query().Get("application_name"))

	pass, ok := u.User.Password()
	assert.True(t, ok)
	assert.Equal(t, "secret", pass)
}

func TestBuildConnURLTLS(t *testing.T) {
	t.Parallel()

	tlsCfg := &models.TLSConfig{CertFile: "c.crt", KeyFile: "c.key", CAFile: "ca.crt"}

	u, err := buildConnURL(&models.DatabaseConfig{Host: "pg", Database: "fleet", TLS: tlsCfg})
	require.NoError(t, err)
	assert.Equal(t, "verify-full", u.Query().Get("sslmode"))

	_, err = buildConnURL(&models.DatabaseConfig{Host: "pg", Database: "fleet", SSLMode: "disable", TLS: tlsCfg})
	require.ErrorIs(t, err, ErrTLSDisabled)
}

func TestNewPoolRequiresConfig(t *testing.T) {
	t.Parallel()

	_, err := NewPool(context.Background(), nil, logger.NewTestLogger())
	require.ErrorIs(t, err, ErrNoDatabaseConfig)
}

func TestBuildTLSConfigMissingFiles(t *testing.T) {
	t.Parallel()

	_, err := buildTLSConfig(&models.DatabaseConfig{TLS: &models.TLSConfig{CertFile: "only.crt"}})
	require.ErrorIs(t, err, ErrTLSFilesMissing)
}
