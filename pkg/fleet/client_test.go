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

package fleet

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/fleetsync/pkg/logger"
	"github.com/carverauto/fleetsync/pkg/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{
		BaseURL:           srv.URL,
		APIKey:            "secret",
		Timeout:           models.Duration(2 * time.Second),
		RequestsPerSecond: 1000,
		Burst:             10,
		MonthlyCallLimit:  5000,
	}, srv.Client(), logger.NewTestLogger())
	require.NoError(t, err)

	return c
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{}
	require.ErrorIs(t, cfg.Validate(), ErrBaseURLRequired)

	cfg = Config{BaseURL: "https://fleet.example.com"}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, defaultTimeout, cfg.Timeout.Std())
	assert.InDelta(t, defaultRequestsPerSecond, cfg.RequestsPerSecond, 0)
	assert.Equal(t, defaultBurst, cfg.Burst)
}

func TestListDevicesWithMonitoring(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, devicesPath, r.URL.Path)
		assert.Equal(t, "monitoring", r.URL.Query().Get("include"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{"devices":[
			{"id":"55012345678","name":"Router 55","monitoring":{"online":true,"tx_bytes":9007199254740993}},
			{"id":"r55-old","name":"Router 55"}
		]}`))
	})

	devices, err := c.ListDevicesWithMonitoring(context.Background())
	require.NoError(t, err)
	require.Len(t, devices, 2)

	assert.True(t, devices[0].HasMonitoring())
	assert.False(t, devices[1].HasMonitoring())

	mon := devices[0][MonitoringKey].(map[string]interface{})
	assert.Equal(t, json.Number("9007199254740993"), mon["tx_bytes"])
}

func TestGetDeviceMonitoring(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, devicesPath+"/r55%2Fold/monitoring", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"online":false}`))
	})

	mon, err := c.GetDeviceMonitoring(context.Background(), "r55/old")
	require.NoError(t, err)
	assert.Equal(t, false, mon["online"])

	merged := RawDevice{"id": "r55/old"}.WithMonitoring(mon)
	assert.True(t, merged.HasMonitoring())

	_, err = c.GetDeviceMonitoring(context.Background(), " ")
	require.ErrorIs(t, err, ErrDeviceIDRequired)
}

func TestEstimateMonthlyCallBudget(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"used":4500}`))
	})

	budget, err := c.EstimateMonthlyCallBudget(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CallBudget{Used: 4500, Limit: 5000}, budget)
	assert.InDelta(t, 0.9, budget.Ratio(), 1e-9)

	assert.Zero(t, CallBudget{Used: 10}.Ratio())
}

func TestRateLimitedResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.ListDevicesWithMonitoring(context.Background())
	require.Error(t, err)

	var rle *RateLimitError
	require.ErrorAs(t, err, &rle)
	assert.Equal(t, 30*time.Second, rle.RetryAfter)
	assert.True(t, rle.RateLimited())
	assert.NotErrorIs(t, err, ErrTransient)
}

func TestServerErrorIsTransient(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	})

	_, err := c.GetDeviceMonitoring(context.Background(), "d1")
	require.ErrorIs(t, err, ErrTransient)
	assert.Contains(t, err.Error(), "upstream unavailable")
}

func TestClientErrorIsNotTransient(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := c.EstimateMonthlyCallBudget(context.Background())
	require.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.False(t, errors.Is(err, ErrTransient))
}

func TestNewClientLeavesCallerClientUntouched(t *testing.T) {
	shared := &http.Client{}

	c, err := NewClient(Config{
		BaseURL: "https://fleet.example.com",
		Timeout: models.Duration(3 * time.Second),
	}, shared, logger.NewTestLogger())
	require.NoError(t, err)

	assert.Zero(t, shared.Timeout)
	assert.Equal(t, 3*time.Second, c.httpClient.Timeout)
	assert.NotSame(t, shared, c.httpClient)
}

func TestTimeoutIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{
		BaseURL: srv.URL,
		Timeout: models.Duration(50 * time.Millisecond),
	}, nil, logger.NewTestLogger())
	require.NoError(t, err)

	_, err = c.ListDevicesWithMonitoring(context.Background())
	require.ErrorIs(t, err, ErrTransient)
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 5*time.Second, parseRetryAfter("5", now))
	assert.Equal(t, time.Duration(0), parseRetryAfter("", now))
	assert.Equal(t, time.Duration(0), parseRetryAfter("-3", now))
	assert.Equal(t, 90*time.Second, parseRetryAfter(now.Add(90*time.Second).Format(http.TimeFormat), now))
	assert.Equal(t, time.Duration(0), parseRetryAfter("soon", now))
}
