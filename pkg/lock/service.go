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

// Package lock grants a single-owner, time-bounded claim on a named recurring
// job across all running instances.
package lock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"

	"github.com/carverauto/fleetsync/pkg/db"
	"github.com/carverauto/fleetsync/pkg/logger"
	"github.com/carverauto/fleetsync/pkg/models"
)

// Service claims job locks on behalf of this process.
type Service struct {
	store          Store
	holderID       string
	staleThreshold time.Duration
	retryDelay     time.Duration
	maxAttempts    int
	logger         logger.Logger
	nowFn          func() time.Time
}

// NewService validates cfg and returns a lock service for this process.
func NewService(store Store, cfg Config, log logger.Logger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	holder := cfg.HolderID
	if holder == "" {
		holder = NewHolderID()
	}

	return &Service{
		store:          store,
		holderID:       holder,
		staleThreshold: cfg.StaleThreshold.Std(),
		retryDelay:     cfg.RetryDelay.Std(),
		maxAttempts:    cfg.MaxAttempts,
		logger:         log,
		nowFn:          time.Now,
	}, nil
}

// NewHolderID returns "<hostname>-<uuid>", unique per process.
func NewHolderID() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "unknown"
	}

	return host + "-" + uuid.NewString()
}

// HolderID is the identity written to lock rows claimed by this service.
func (s *Service) HolderID() string {
	return s.holderID
}

// SetNowFn overrides the clock. Intended for tests.
func (s *Service) SetNowFn(fn func() time.Time) {
	s.nowFn = fn
}

func (s *Service) now() time.Time {
	// Postgres keeps microseconds; truncating keeps the conditional replace exact.
	return s.nowFn().UTC().Truncate(time.Microsecond)
}

// TryAcquireWithStaleCheck claims job for this process. It returns false with
// a nil error when another live instance holds the job.
func (s *Service) TryAcquireWithStaleCheck(ctx context.Context, job string) (bool, error) {
	if strings.TrimSpace(job) == "" {
		return false, ErrJobNameRequired
	}

	now := s.now()

	inserted, err := s.store.InsertLockIfAbsent(ctx, models.LockRow{JobName: job, HolderID: s.holderID, AcquiredAt: now})
	if err != nil {
		return false, fmt.Errorf("claim lock %s: %w", job, err)
	}

	if inserted {
		s.logger.Info().Str("job_name", job).Str("holder_id", s.holderID).Msg("Acquired job lock")
		return true, nil
	}

	existing, err := s.store.GetLock(ctx, job)
	if errors.Is(err, db.ErrLockNotFound) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("read lock %s: %w", job, err)
	}

	if existing.HolderID == s.holderID {
		return true, nil
	}

	if !existing.Stale(now, s.staleThreshold) {
		s.logger.Debug().
			Str("job_name", job).
			Str("holder_id", existing.HolderID).
			Time("acquired_at", existing.AcquiredAt).
			Msg("Job lock held by another instance")

		return false, nil
	}

	replaced, err := s.store.ReplaceLockIf(ctx, *existing, s.holderID, now)
	if err != nil {
		return false, fmt.Errorf("reclaim lock %s: %w", job, err)
	}

	if replaced {
		s.logger.Warn().
			Str("job_name", job).
			Str("previous_holder", existing.HolderID).
			Dur("age", now.Sub(existing.AcquiredAt)).
			Msg("Reclaimed stale job lock")
	}

	return replaced, nil
}

// AcquireWithRetry applies the caller policy: one attempt, a fixed delay,
// then one more attempt. False means the caller should skip the job for the
// lifetime of the process.
func (s *Service) AcquireWithRetry(ctx context.Context, job string) (bool, error) {
	operation := func() (bool, error) {
		ok, err := s.TryAcquireWithStaleCheck(ctx, job)
		if err != nil {
			if errors.Is(err, ErrJobNameRequired) {
				return false, backoff.Permanent(err)
			}

			return false, err
		}

		if !ok {
			return false, errContended
		}

		return true, nil
	}

	ok, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewConstantBackOff(s.retryDelay)),
		backoff.WithMaxTries(uint(s.maxAttempts)),
		backoff.WithNotify(func(err error, wait time.Duration) {
			s.logger.Info().Err(err).Str("job_name", job).Dur("retry_in", wait).Msg("Job lock not acquired, retrying")
		}),
	)

	switch {
	case err == nil:
		return ok, nil
	case errors.Is(err, errContended):
		return false, nil
	default:
		return false, err
	}
}
