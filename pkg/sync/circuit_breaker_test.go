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

package sync

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/fleetsync/pkg/fleet"
	"github.com/carverauto/fleetsync/pkg/logger"
)

func TestIsRateLimited(t *testing.T) {
	rl := &fleet.RateLimitError{StatusCode: 429, Endpoint: "/api/v1/devices"}

	assert.True(t, IsRateLimited(rl))
	assert.True(t, IsRateLimited(fmt.Errorf("fetch monitoring: %w", rl)))
	assert.False(t, IsRateLimited(errors.New("boom")))
	assert.False(t, IsRateLimited(nil))
}

func TestCircuitBreakerPassesThroughOrdinaryErrors(t *testing.T) {
	cb := NewCircuitBreaker("test", logger.NewTestLogger())
	boom := errors.New("boom")

	require.ErrorIs(t, cb.Execute(func() error { return boom }), boom)
	require.NoError(t, cb.Execute(func() error { return nil }))

	assert.Equal(t, StateClosed, cb.State())
	assert.NoError(t, cb.Cause())
}

func TestCircuitBreakerOpensOnRateLimit(t *testing.T) {
	cb := NewCircuitBreaker("test", logger.NewTestLogger())
	rl := &fleet.RateLimitError{StatusCode: 429, Endpoint: "/api/v1/usage"}

	err := cb.Execute(func() error { return fmt.Errorf("wrapped: %w", rl) })

	var got *fleet.RateLimitError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, StateOpen, cb.State())
	assert.Equal(t, "open", cb.State().String())
	require.ErrorAs(t, cb.Cause(), &got)

	called := false
	err = cb.Execute(func() error {
		called = true
		return nil
	})

	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}
