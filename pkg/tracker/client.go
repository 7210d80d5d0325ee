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

// Package tracker keeps the external task tracker in step with the device
// fleet: one task per device, and a status event whenever a device flips.
package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/carverauto/fleetsync/pkg/logger"
	"github.com/carverauto/fleetsync/pkg/models"
)

const (
	statusEventsPath = "/api/v1/status-events"
	tasksPath        = "/api/v1/tasks"

	maxErrorBody = 4 << 10
)

// CreateResult summarises a CreateMissingTasks pass.
type CreateResult struct {
	Created int `json:"created"`
	Failed  int `json:"failed"`
}

type statusEventRequest struct {
	DeviceID string              `json:"device_id"`
	Previous models.DeviceStatus `json:"previous"`
	Current  models.DeviceStatus `json:"current"`
	At       time.Time           `json:"at"`
}

type createTaskRequest struct {
	DeviceID   string `json:"device_id"`
	Title      string `json:"title"`
	MACAddress string `json:"mac_address,omitempty"`
}

type createTaskResponse struct {
	ID string `json:"id"`
}

// Client is an HTTP client for the task tracker.
type Client struct {
	cfg        Config
	baseURL    string
	store      Store
	httpClient *http.Client
	logger     logger.Logger
}

// NewClient validates cfg and returns a client. store may be nil when only
// status notifications are needed; httpClient may be nil.
func NewClient(cfg Config, store Store, httpClient *http.Client, log logger.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hc := &http.Client{}
	if httpClient != nil {
		*hc = *httpClient
	}

	if hc.Timeout == 0 {
		hc.Timeout = cfg.Timeout.Std()
	}

	return &Client{
		cfg:        cfg,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		store:      store,
		httpClient: hc,
		logger:     log,
	}, nil
}

// NotifyStatusChange posts a status transition to the tracker. Delivery is
// at-least-once at best; callers treat failures as warnings.
func (c *Client) NotifyStatusChange(ctx context.Context, event models.StatusChanged) error {
	body := statusEventRequest{
		DeviceID: event.DeviceID,
		Previous: event.Previous,
		Current:  event.Current,
		At:       event.At.UTC(),
	}

	if err := c.post(ctx, statusEventsPath, body, nil); err != nil {
		return fmt.Errorf("notify status change for %s: %w", event.DeviceID, err)
	}

	return nil
}

// CreateMissingTasks opens a tracker task for every device that has none and
// records the returned task id. Per-device failures are counted and joined
// into the returned error; the pass continues past them.
func (c *Client) CreateMissingTasks(ctx context.Context) (CreateResult, error) {
	var result CreateResult

	if c.store == nil {
		return result, nil
	}

	devices, err := c.store.ListDevicesWithoutTask(ctx)
	if err != nil {
		return result, fmt.Errorf("list devices without task: %w", err)
	}

	var errs []error

	for i := range devices {
		d := &devices[i]

		if err := c.createTask(ctx, d); err != nil {
			result.Failed++
			errs = append(errs, err)

			c.logger.Warn().Err(err).Str("device_id", d.DeviceID).Msg("Failed to create tracker task")

			continue
		}

		result.Created++
	}

	if result.Created > 0 || result.Failed > 0 {
		c.logger.Info().Int("created", result.Created).Int("failed", result.Failed).Msg("Created missing tracker tasks")
	}

	return result, errors.Join(errs...)
}

func (c *Client) createTask(ctx context.Context, d *models.Device) error {
	title := d.Name
	if strings.TrimSpace(title) == "" {
		title = d.DeviceID
	}

	var resp createTaskResponse

	req := createTaskRequest{DeviceID: d.DeviceID, Title: title, MACAddress: d.MACAddress}
	if err := c.post(ctx, tasksPath, req, &resp); err != nil {
		return fmt.Errorf("create task for %s: %w", d.DeviceID, err)
	}

	if resp.ID == "" {
		return fmt.Errorf("create task for %s: %w", d.DeviceID, ErrEmptyTaskID)
	}

	if err := c.store.SetExternalTaskID(ctx, d.DeviceID, resp.ID); err != nil {
		return fmt.Errorf("record task %s for %s: %w", resp.ID, d.DeviceID, err)
	}

	return nil
}

// post sends body as JSON, retrying transient failures with exponential
// backoff, and decodes the response into dst when dst is non-nil.
func (c *Client) post(ctx context.Context, path string, body, dst interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.cfg.InitialBackoff.Std()
	bo.MaxInterval = c.cfg.MaxBackoff.Std()

	operation := func() (struct{}, error) {
		return struct{}{}, c.do(ctx, path, payload, dst)
	}

	_, err = backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(uint(c.cfg.MaxAttempts)),
		backoff.WithNotify(func(err error, wait time.Duration) {
			c.logger.Debug().Err(err).Str("path", path).Dur("retry_in", wait).Msg("Retrying tracker request")
		}),
	)

	return err
}

func (c *Client) do(ctx context.Context, path string, payload []byte, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return backoff.Permanent(err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}

		return fmt.Errorf("%w: %s: %w", ErrTransient, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("%w: %s: status %d: %s", ErrTransient, path, resp.StatusCode, strings.TrimSpace(string(msg)))
		}

		return backoff.Permanent(fmt.Errorf("%w: %s: %d: %s",
			ErrUnexpectedStatus, path, resp.StatusCode, strings.TrimSpace(string(msg))))
	}

	if dst == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return backoff.Permanent(fmt.Errorf("decode %s response: %w", path, err))
	}

	return nil
}
