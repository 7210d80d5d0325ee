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
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5"

	"github.com/carverauto/fleetsync/pkg/models"
)

// ListDeviceSummaries returns every named device with its telemetry record count.
func (s *PostgresStore) ListDeviceSummaries(ctx context.Context) ([]models.DeviceSummary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT d.device_id, d.name, d.mac_address, d.firmware_version, d.current_status, d.last_seen,
		       d.total_tx_bytes, d.total_rx_bytes, d.external_task_id, d.created_at, d.updated_at,
		       (SELECT COUNT(*) FROM telemetry_records t WHERE t.device_id = d.device_id) AS record_count
		FROM devices d
		WHERE btrim(d.name) <> ''
		ORDER BY d.device_id`)
	if err != nil {
		return nil, fmt.Errorf("list device summaries: %w", err)
	}
	defer rows.Close()

	var out []models.DeviceSummary

	for rows.Next() {
		var (
			sum      models.DeviceSummary
			mac      *string
			firmware *string
			status   string
		)

		if err := rows.Scan(&sum.DeviceID, &sum.Name, &mac, &firmware, &status, &sum.LastSeen,
			&sum.TotalTxBytes, &sum.TotalRxBytes, &sum.ExternalTaskID, &sum.CreatedAt, &sum.UpdatedAt,
			&sum.RecordCount); err != nil {
			return nil, fmt.Errorf("scan device summary: %w", err)
		}

		if mac != nil {
			sum.MACAddress = *mac
		}

		if firmware != nil {
			sum.FirmwareVersion = *firmware
		}

		sum.CurrentStatus = models.DeviceStatus(status)
		out = append(out, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate device summaries: %w", err)
	}

	return out, nil
}

// HasDuplicateNames reports whether two or more devices share a normalized name.
func (s *PostgresStore) HasDuplicateNames(ctx context.Context) (bool, error) {
	var exists bool

	if err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM devices
			WHERE btrim(name) <> ''
			GROUP BY lower(btrim(name))
			HAVING COUNT(*) > 1
		)`).Scan(&exists); err != nil {
		return false, fmt.Errorf("check duplicate names: %w", err)
	}

	return exists, nil
}

// MergeGroup re-parents the losers' telemetry onto the survivor and deletes the
// losers in a single transaction. The survivor inherits the most recent
// last_seen and, if it has none, a loser's external task id.
func (s *PostgresStore) MergeGroup(ctx context.Context, survivorID string, loserIDs []string) (int64, error) {
	if len(loserIDs) == 0 {
		return 0, ErrEmptyMergeGroup
	}

	if slices.Contains(loserIDs, survivorID) {
		return 0, ErrSurvivorIsLoser
	}

	var moved int64

	err := s.inTx(ctx, "merge_group", func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE devices SET
				last_seen = GREATEST(last_seen,
					(SELECT MAX(last_seen) FROM devices WHERE device_id = ANY($2))),
				external_task_id = COALESCE(external_task_id,
					(SELECT external_task_id FROM devices
					 WHERE device_id = ANY($2) AND external_task_id IS NOT NULL
					 ORDER BY device_id LIMIT 1)),
				updated_at = now()
			WHERE device_id = $1`, survivorID, loserIDs)
		if err != nil {
			return fmt.Errorf("update survivor %s: %w", survivorID, err)
		}

		if tag.RowsAffected() == 0 {
			return fmt.Errorf("survivor %s: %w", survivorID, ErrDeviceNotFound)
		}

		tag, err = tx.Exec(ctx,
			`UPDATE telemetry_records SET device_id = $1 WHERE device_id = ANY($2)`, survivorID, loserIDs)
		if err != nil {
			return fmt.Errorf("reassign telemetry to %s: %w", survivorID, err)
		}

		moved = tag.RowsAffected()

		if _, err := tx.Exec(ctx, `DELETE FROM devices WHERE device_id = ANY($1)`, loserIDs); err != nil {
			return fmt.Errorf("delete merged devices: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return moved, nil
}
