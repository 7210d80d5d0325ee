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

package lock

import "errors"

var (
	// ErrLockNotAcquired is returned by callers that give up on a job after
	// the retry policy is exhausted. It is an expected outcome, not a fault.
	ErrLockNotAcquired = errors.New("lock held by another instance")

	ErrJobNameRequired = errors.New("job name is required")
	ErrInvalidConfig   = errors.New("invalid lock configuration")

	errContended = errors.New("lock contended")
)
