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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSQLStatements(t *testing.T) {
	sql := `-- leading comment
CREATE TABLE a (id INT); -- trailing; comment
INSERT INTO a VALUES (';');
CREATE FUNCTION f() RETURNS void AS $body$ BEGIN PERFORM 1; END; $body$ LANGUAGE plpgsql;
`

	stmts := splitSQLStatements(sql)
	require.Len(t, stmts, 3)
	assert.Equal(t, "CREATE TABLE a (id INT)", stmts[0])
	assert.Equal(t, "INSERT INTO a VALUES (';')", stmts[1])
	assert.Contains(t, stmts[2], "PERFORM 1; END;")
	assert.True(t, strings.HasSuffix(stmts[2], "LANGUAGE plpgsql"))
}

func TestEmbeddedMigrations(t *testing.T) {
	names, err := upMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "00001", extractVersion(names[0]))

	for _, name := range names {
		assert.True(t, strings.HasSuffix(name, ".up.sql"), name)
	}

	content, err := migrationsFS.ReadFile(migrationsDir + "/" + names[0])
	require.NoError(t, err)

	joined := strings.Join(splitSQLStatements(string(content)), "\n")
	for _, table := range []string{"devices", "telemetry_records", "distributed_locks"} {
		assert.Contains(t, joined, "CREATE TABLE IF NOT EXISTS "+table)
	}
}
