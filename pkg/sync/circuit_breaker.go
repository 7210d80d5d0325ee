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
	"sync"

	"github.com/carverauto/fleetsync/pkg/logger"
)

// CircuitBreakerState represents the current state of the circuit breaker
type CircuitBreakerState int

const (
	// StateClosed - calls are allowed
	StateClosed CircuitBreakerState = iota
	// StateOpen - calls are rejected for the rest of the run
	StateOpen
)

// String returns a string representation of the circuit breaker state
func (s CircuitBreakerState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// rateLimited is implemented by errors that carry a vendor rate-limit signal.
type rateLimited interface {
	RateLimited() bool
}

// IsRateLimited reports whether err, or anything it wraps, is a rate-limit
// signal from an upstream API.
func IsRateLimited(err error) bool {
	var rl rateLimited

	return errors.As(err, &rl) && rl.RateLimited()
}

// CircuitBreaker guards one sync run. The first rate-limit error opens it
// and it stays open; there is no half-open probing within a run, since the
// next scheduled run starts with a fresh breaker.
type CircuitBreaker struct {
	mu     sync.Mutex
	name   string
	state  CircuitBreakerState
	cause  error
	logger logger.Logger
}

// NewCircuitBreaker returns a closed breaker.
func NewCircuitBreaker(name string, log logger.Logger) *CircuitBreaker {
	return &CircuitBreaker{name: name, state: StateClosed, logger: log}
}

// Execute runs fn unless the breaker is open. A rate-limit error from fn
// trips the breaker; other errors pass through untouched.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if cb.State() == StateOpen {
		return ErrCircuitOpen
	}

	err := fn()
	if IsRateLimited(err) {
		cb.trip(err)
	}

	return err
}

func (cb *CircuitBreaker) trip(cause error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen {
		return
	}

	cb.state = StateOpen
	cb.cause = cause

	cb.logger.Warn().
		Err(cause).
		Str("circuit_breaker", cb.name).
		Msg("Circuit breaker opened by rate limit")
}

// State returns the current state of the circuit breaker
func (cb *CircuitBreaker) State() CircuitBreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.state
}

// Cause returns the error that opened the breaker, or nil.
func (cb *CircuitBreaker) Cause() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.cause
}
