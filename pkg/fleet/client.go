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

// Package fleet is a client for the vendor fleet management API that lists
// devices and their monitoring data.
package fleet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/carverauto/fleetsync/pkg/logger"
)

const (
	devicesPath = "/api/v1/devices"
	usagePath   = "/api/v1/usage"

	maxErrorBody = 4 << 10
)

// Client talks to the fleet API. Requests are paced by a token bucket so a
// sync run never bursts above the configured rate.
type Client struct {
	baseURL    string
	apiKey     string
	limit      int64
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     logger.Logger
}

// NewClient validates cfg and returns a client. httpClient may be nil; it is
// copied, never modified.
func NewClient(cfg Config, httpClient *http.Client, log logger.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Work on a copy so the caller's client keeps its own settings.
	hc := &http.Client{}
	if httpClient != nil {
		*hc = *httpClient
	}

	if hc.Timeout == 0 {
		hc.Timeout = cfg.Timeout.Std()
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		limit:      cfg.MonthlyCallLimit,
		httpClient: hc,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		logger:     log,
	}, nil
}

// ListDevicesWithMonitoring returns every device with its monitoring block
// when the API supplies one.
func (c *Client) ListDevicesWithMonitoring(ctx context.Context) ([]RawDevice, error) {
	var resp listResponse

	if err := c.getJSON(ctx, devicesPath+"?include=monitoring", &resp); err != nil {
		return nil, err
	}

	c.logger.Debug().Int("devices", len(resp.Devices)).Msg("Listed fleet devices")

	return resp.Devices, nil
}

// GetDeviceMonitoring fetches the monitoring block for a single device.
func (c *Client) GetDeviceMonitoring(ctx context.Context, deviceID string) (map[string]interface{}, error) {
	if strings.TrimSpace(deviceID) == "" {
		return nil, ErrDeviceIDRequired
	}

	var monitoring map[string]interface{}

	if err := c.getJSON(ctx, devicesPath+"/"+url.PathEscape(deviceID)+"/monitoring", &monitoring); err != nil {
		return nil, err
	}

	return monitoring, nil
}

// EstimateMonthlyCallBudget reports API calls used this month against the
// account limit.
func (c *Client) EstimateMonthlyCallBudget(ctx context.Context) (CallBudget, error) {
	var budget CallBudget

	if err := c.getJSON(ctx, usagePath, &budget); err != nil {
		return CallBudget{}, err
	}

	if budget.Limit <= 0 {
		budget.Limit = c.limit
	}

	if budget.Used < 0 || budget.Limit < 0 {
		return CallBudget{}, fmt.Errorf("%w: used=%d limit=%d", ErrInvalidBudget, budget.Used, budget.Limit)
	}

	return budget, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dst interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		return fmt.Errorf("%w: %s: %w", ErrTransient, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp, path); err != nil {
		return err
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()

	if err := dec.Decode(dst); err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) {
			return fmt.Errorf("%w: read %s: %w", ErrTransient, path, err)
		}

		return fmt.Errorf("decode %s response: %w", path, err)
	}

	return nil
}

func checkStatus(resp *http.Response, path string) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), time.Now()),
			Endpoint:   path,
		}
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusRequestTimeout {
		return fmt.Errorf("%w: %s: status %d: %s", ErrTransient, path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return fmt.Errorf("%w: %s: %d: %s", ErrUnexpectedStatus, path, resp.StatusCode, strings.TrimSpace(string(body)))
}

// parseRetryAfter accepts delta-seconds or an HTTP date.
func parseRetryAfter(v string, now time.Time) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}

	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}

		return time.Duration(secs) * time.Second
	}

	if at, err := http.ParseTime(v); err == nil && at.After(now) {
		return at.Sub(now)
	}

	return 0
}
