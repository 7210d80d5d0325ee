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
	"context"
	"errors"
	"sync"
	"time"

	"github.com/carverauto/fleetsync/pkg/lock"
	"github.com/carverauto/fleetsync/pkg/logger"
)

// Scheduler claims the job lock once and then triggers a run immediately
// and on every tick. A replica that does not win the lock leaves polling to
// the holder and returns.
type Scheduler struct {
	runner   Runner
	locker   Locker
	job      string
	interval time.Duration
	clock    Clock
	logger   logger.Logger

	wg sync.WaitGroup
}

// NewScheduler builds a scheduler from the engine configuration. clock may
// be nil.
func NewScheduler(runner Runner, locker Locker, cfg Config, clock Clock, log logger.Logger) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if clock == nil {
		clock = realClock{}
	}

	return &Scheduler{
		runner:   runner,
		locker:   locker,
		job:      cfg.JobName,
		interval: cfg.PollInterval.Std(),
		clock:    clock,
		logger:   log,
	}, nil
}

func (*Scheduler) Name() string { return "sync-scheduler" }

// Run blocks until ctx is cancelled. Runs are started in their own
// goroutine so a slow run never delays the ticker; the engine refuses
// overlapping runs.
func (s *Scheduler) Run(ctx context.Context) error {
	acquired, err := s.locker.AcquireWithRetry(ctx, s.job)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		s.logger.Error().Err(err).Str("job", s.job).Msg("Unable to claim sync job, polling disabled on this instance")

		return nil
	}

	if !acquired {
		s.logger.Info().
			Err(lock.ErrLockNotAcquired).
			Str("job", s.job).
			Msg("Sync job held by another instance, polling disabled on this instance")

		return nil
	}

	s.logger.Info().Str("job", s.job).Dur("interval", s.interval).Msg("Sync job claimed, starting scheduler")

	ticker := s.clock.Ticker(s.interval)
	defer ticker.Stop()
	defer s.wg.Wait()

	s.trigger(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
			s.trigger(ctx)
		}
	}
}

func (s *Scheduler) trigger(ctx context.Context) {
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		run, err := s.runner.RunSyncCycle(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}

			s.logger.Error().Err(err).Msg("Sync run failed")

			return
		}

		if run != nil && run.Skipped {
			s.logger.Debug().Str("reason", run.SkipReason).Msg("Sync run skipped")
		}
	}()
}
