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

import "errors"

var (
	// ErrCircuitOpen is returned for calls attempted after the breaker tripped.
	ErrCircuitOpen = errors.New("circuit breaker is open")

	errInvalidQuotaThreshold = errors.New("quota_threshold must be within (0, 1]")
	errNegativeDelay         = errors.New("delays must not be negative")
	errFleetRequired         = errors.New("fleet API client is required")
	errIngesterRequired      = errors.New("telemetry ingester is required")
	errBaselineRequired      = errors.New("baseline store is required")
)
