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
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes for conflicts that succeed when the transaction is replayed.
const (
	sqlstateDeadlockDetected    = "40P01"
	sqlstateSerializationFailed = "40001"
)

const (
	txMaxAttempts    = 3
	txInitialBackoff = 150 * time.Millisecond
	txMaxBackoff     = 2 * time.Second
)

// classifyTxError returns the SQLSTATE of err and whether replaying the
// transaction may succeed.
func classifyTxError(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", false
	}

	switch pgErr.Code {
	case sqlstateDeadlockDetected, sqlstateSerializationFailed:
		return pgErr.Code, true
	default:
		return pgErr.Code, false
	}
}

func txBackOff() *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = txInitialBackoff
	bo.MaxInterval = txMaxBackoff

	return bo
}

// withTxRetry runs attempt until it succeeds, fails permanently, or the
// attempts run out. Only deadlocks and serialization failures are retried.
func (s *PostgresStore) withTxRetry(ctx context.Context, op string, attempt func() error) error {
	tries := 0

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		tries++

		err := attempt()
		if err == nil {
			return struct{}{}, nil
		}

		code, transient := classifyTxError(err)
		if !transient {
			return struct{}{}, backoff.Permanent(err)
		}

		s.logger.Warn().
			Err(err).
			Str("operation", op).
			Str("sqlstate", code).
			Int("attempt", tries).
			Msg("Transient transaction conflict, retrying")

		return struct{}{}, err
	},
		backoff.WithBackOff(txBackOff()),
		backoff.WithMaxTries(txMaxAttempts),
	)

	return err
}
