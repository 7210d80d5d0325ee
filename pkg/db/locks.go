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
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/carverauto/fleetsync/pkg/models"
)

// InsertLockIfAbsent claims job for row.HolderID when no row exists yet.
func (s *PostgresStore) InsertLockIfAbsent(ctx context.Context, row models.LockRow) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO distributed_locks (job_name, holder_id, acquired_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (job_name) DO NOTHING`, row.JobName, row.HolderID, row.AcquiredAt)
	if err != nil {
		return false, fmt.Errorf("insert lock %s: %w", row.JobName, err)
	}

	return tag.RowsAffected() == 1, nil
}

// GetLock reads the current claim on job.
func (s *PostgresStore) GetLock(ctx context.Context, jobName string) (*models.LockRow, error) {
	var row models.LockRow

	err := s.pool.QueryRow(ctx,
		`SELECT job_name, holder_id, acquired_at FROM distributed_locks WHERE job_name = $1`, jobName).
		Scan(&row.JobName, &row.HolderID, &row.AcquiredAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrLockNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("get lock %s: %w", jobName, err)
	}

	return &row, nil
}

// ReplaceLockIf hands the lock to holderID only if the row still matches
// expected. Exactly one of several concurrent reclaimers can succeed.
func (s *PostgresStore) ReplaceLockIf(
	ctx context.Context, expected models.LockRow, holderID string, acquiredAt time.Time,
) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE distributed_locks
		SET holder_id = $4, acquired_at = $5
		WHERE job_name = $1 AND holder_id = $2 AND acquired_at = $3`,
		expected.JobName, expected.HolderID, expected.AcquiredAt, holderID, acquiredAt)
	if err != nil {
		return false, fmt.Errorf("replace lock %s: %w", expected.JobName, err)
	}

	return tag.RowsAffected() == 1, nil
}
