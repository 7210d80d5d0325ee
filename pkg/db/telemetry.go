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

	"github.com/jackc/pgx/v5"

	"github.com/carverauto/fleetsync/pkg/models"
)

const telemetryColumns = `id, device_id, ts, status, total_tx_bytes, total_rx_bytes,
	counters_carried, signal, location, source`

const insertTelemetrySQL = `
INSERT INTO telemetry_records
	(device_id, ts, status, total_tx_bytes, total_rx_bytes, counters_carried, signal, location, source)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`

// LatestTelemetry returns the record with the greatest timestamp for the
// device, or nil when it has none.
func (s *PostgresStore) LatestTelemetry(ctx context.Context, deviceID string) (*models.TelemetryRecord, error) {
	var (
		rec    models.TelemetryRecord
		status string
		source string
	)

	err := s.pool.QueryRow(ctx, `SELECT `+telemetryColumns+` FROM telemetry_records
		WHERE device_id = $1 ORDER BY ts DESC, id DESC LIMIT 1`, deviceID).
		Scan(&rec.ID, &rec.DeviceID, &rec.Timestamp, &status, &rec.TotalTxBytes, &rec.TotalRxBytes,
			&rec.CountersCarried, &rec.Signal, &rec.Location, &source)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("latest telemetry for %s: %w", deviceID, err)
	}

	rec.Status = models.DeviceStatus(status)
	rec.Source = models.ObservationSource(source)

	return &rec, nil
}

// HasTelemetry reports whether the device already has a baseline record.
func (s *PostgresStore) HasTelemetry(ctx context.Context, deviceID string) (bool, error) {
	var exists bool

	if err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM telemetry_records WHERE device_id = $1)`, deviceID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check telemetry for %s: %w", deviceID, err)
	}

	return exists, nil
}

// AppendTelemetry inserts rec and applies state to the device row in one
// transaction. rec.ID is set on success.
func (s *PostgresStore) AppendTelemetry(ctx context.Context, rec *models.TelemetryRecord, state models.DeviceState) error {
	return s.inTx(ctx, "append_telemetry", func(tx pgx.Tx) error {
		source := rec.Source
		if source == "" {
			source = models.SourcePoll
		}

		if err := tx.QueryRow(ctx, insertTelemetrySQL,
			rec.DeviceID, rec.Timestamp, string(rec.Status), rec.TotalTxBytes, rec.TotalRxBytes,
			rec.CountersCarried, rec.Signal, rec.Location, string(source)).Scan(&rec.ID); err != nil {
			return fmt.Errorf("insert telemetry for %s: %w", rec.DeviceID, err)
		}

		return updateDeviceState(ctx, tx, state)
	})
}
