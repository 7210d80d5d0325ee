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
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/carverauto/fleetsync/pkg/models"
)

const deviceColumns = `device_id, name, mac_address, firmware_version, current_status, last_seen,
	total_tx_bytes, total_rx_bytes, external_task_id, created_at, updated_at`

const upsertDeviceSQL = `
INSERT INTO devices (device_id, name, mac_address, firmware_version)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
ON CONFLICT (device_id) DO UPDATE SET
	name             = CASE WHEN btrim(EXCLUDED.name) <> '' THEN EXCLUDED.name ELSE devices.name END,
	mac_address      = COALESCE(EXCLUDED.mac_address, devices.mac_address),
	firmware_version = COALESCE(EXCLUDED.firmware_version, devices.firmware_version),
	updated_at       = now()
RETURNING ` + deviceColumns

const updateDeviceStateSQL = `
UPDATE devices d SET
	current_status = CASE WHEN late.newer THEN d.current_status ELSE $2 END,
	total_tx_bytes = CASE WHEN late.newer THEN d.total_tx_bytes ELSE $3 END,
	total_rx_bytes = CASE WHEN late.newer THEN d.total_rx_bytes ELSE $4 END,
	last_seen      = GREATEST(d.last_seen, $5::timestamptz),
	updated_at     = now()
FROM (
	SELECT EXISTS (
		SELECT 1 FROM telemetry_records t
		WHERE t.device_id = $1 AND t.ts > $6::timestamptz
	) AS newer
) AS late
WHERE d.device_id = $1`

func scanDevice(row pgx.Row) (*models.Device, error) {
	var (
		d        models.Device
		mac      *string
		firmware *string
		status   string
	)

	if err := row.Scan(&d.DeviceID, &d.Name, &mac, &firmware, &status, &d.LastSeen,
		&d.TotalTxBytes, &d.TotalRxBytes, &d.ExternalTaskID, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}

	if mac != nil {
		d.MACAddress = *mac
	}

	if firmware != nil {
		d.FirmwareVersion = *firmware
	}

	d.CurrentStatus = models.DeviceStatus(status)

	return &d, nil
}

// ResolveDevice returns the device row for identity, creating it when absent.
// Non-empty descriptive fields on identity refresh the stored values.
func (s *PostgresStore) ResolveDevice(ctx context.Context, identity models.DeviceIdentity) (*models.Device, error) {
	if strings.TrimSpace(identity.DeviceID) == "" {
		return nil, ErrDeviceIDRequired
	}

	device, err := scanDevice(s.pool.QueryRow(ctx, upsertDeviceSQL,
		identity.DeviceID, identity.Name, identity.MACAddress, identity.FirmwareVersion))
	if err != nil {
		return nil, fmt.Errorf("resolve device %s: %w", identity.DeviceID, err)
	}

	return device, nil
}

// GetDevice loads a single device.
func (s *PostgresStore) GetDevice(ctx context.Context, deviceID string) (*models.Device, error) {
	device, err := scanDevice(s.pool.QueryRow(ctx,
		`SELECT `+deviceColumns+` FROM devices WHERE device_id = $1`, deviceID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDeviceNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("get device %s: %w", deviceID, err)
	}

	return device, nil
}

// ListDevices returns all devices ordered by id.
func (s *PostgresStore) ListDevices(ctx context.Context) ([]models.Device, error) {
	return s.queryDevices(ctx, `SELECT `+deviceColumns+` FROM devices ORDER BY device_id`)
}

// ListDevicesWithoutTask returns devices that have no external task yet.
func (s *PostgresStore) ListDevicesWithoutTask(ctx context.Context) ([]models.Device, error) {
	return s.queryDevices(ctx,
		`SELECT `+deviceColumns+` FROM devices WHERE external_task_id IS NULL ORDER BY device_id`)
}

// SetExternalTaskID links a device to a task tracker item.
func (s *PostgresStore) SetExternalTaskID(ctx context.Context, deviceID, taskID string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE devices SET external_task_id = $2, updated_at = now() WHERE device_id = $1`, deviceID, taskID)
	if err != nil {
		return fmt.Errorf("set external task for %s: %w", deviceID, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrDeviceNotFound
	}

	return nil
}

func (s *PostgresStore) queryDevices(ctx context.Context, sql string, args ...any) ([]models.Device, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query devices: %w", err)
	}
	defer rows.Close()

	var devices []models.Device

	for rows.Next() {
		device, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan device: %w", err)
		}

		devices = append(devices, *device)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate devices: %w", err)
	}

	return devices, nil
}

func updateDeviceState(ctx context.Context, q querier, state models.DeviceState) error {
	var observedAt *time.Time
	if !state.ObservedAt.IsZero() {
		observedAt = &state.ObservedAt
	}

	tag, err := q.Exec(ctx, updateDeviceStateSQL,
		state.DeviceID, string(state.Status), state.TotalTxBytes, state.TotalRxBytes, state.LastSeen, observedAt)
	if err != nil {
		return fmt.Errorf("update device %s: %w", state.DeviceID, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrDeviceNotFound
	}

	return nil
}
