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
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/fleetsync/pkg/logger"
)

func TestClassifyTxError(t *testing.T) {
	code, transient := classifyTxError(fmt.Errorf("merge: %w", &pgconn.PgError{Code: sqlstateDeadlockDetected}))
	assert.Equal(t, sqlstateDeadlockDetected, code)
	assert.True(t, transient)

	_, transient = classifyTxError(&pgconn.PgError{Code: sqlstateSerializationFailed})
	assert.True(t, transient)

	code, transient = classifyTxError(&pgconn.PgError{Code: "23505"})
	assert.Equal(t, "23505", code)
	assert.False(t, transient)

	_, transient = classifyTxError(errors.New("connection reset"))
	assert.False(t, transient)
}

func TestWithTxRetryReplaysConflicts(t *testing.T) {
	s := &PostgresStore{logger: logger.NewTestLogger()}

	calls := 0
	err := s.withTxRetry(context.Background(), "test", func() error {
		calls++
		if calls == 1 {
			return &pgconn.PgError{Code: sqlstateSerializationFailed}
		}

		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithTxRetryStopsOnPermanentError(t *testing.T) {
	s := &PostgresStore{logger: logger.NewTestLogger()}

	calls := 0
	err := s.withTxRetry(context.Background(), "test", func() error {
		calls++
		return ErrDeviceNotFound
	})

	require.ErrorIs(t, err, ErrDeviceNotFound)
	assert.Equal(t, 1, calls)
}

func TestWithTxRetryGivesUp(t *testing.T) {
	s := &PostgresStore{logger: logger.NewTestLogger()}

	calls := 0
	err := s.withTxRetry(context.Background(), "test", func() error {
		calls++
		return &pgconn.PgError{Code: sqlstateDeadlockDetected}
	})

	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, txMaxAttempts, calls)
}
