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
	"errors"
	"fmt"
	"time"
)

var (
	// ErrTransient marks failures worth retrying on a later run: network
	// errors, timeouts and 5xx responses.
	ErrTransient = errors.New("transient fleet API error")

	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrBaseURLRequired  = errors.New("fleet API base URL is required")
	ErrDeviceIDRequired = errors.New("device id is required")
	ErrInvalidBudget    = errors.New("invalid call budget response")
)

// RateLimitError is returned when the fleet API refuses a call because the
// account exceeded its request rate or quota.
type RateLimitError struct {
	StatusCode int
	RetryAfter time.Duration
	Endpoint   string
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("fleet API rate limited on %s (retry after %s)", e.Endpoint, e.RetryAfter)
	}

	return fmt.Sprintf("fleet API rate limited on %s", e.Endpoint)
}

// RateLimited lets callers detect the signal without importing this package.
func (*RateLimitError) RateLimited() bool {
	return true
}
