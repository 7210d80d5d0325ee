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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/fleetsync/pkg/logger"
	"github.com/carverauto/fleetsync/pkg/models"
)

func TestSchedulerReturnsWhenLockHeldElsewhere(t *testing.T) {
	ctrl := gomock.NewController(t)
	locker := NewMockLocker(ctrl)
	runner := NewMockRunner(ctrl)

	locker.EXPECT().AcquireWithRetry(gomock.Any(), DefaultJobName).Return(false, nil)

	s, err := NewScheduler(runner, locker, Config{}, newFakeClock(), logger.NewTestLogger())
	require.NoError(t, err)
	assert.Equal(t, "sync-scheduler", s.Name())

	require.NoError(t, s.Run(context.Background()))
}

func TestSchedulerReturnsOnLockError(t *testing.T) {
	ctrl := gomock.NewController(t)
	locker := NewMockLocker(ctrl)
	runner := NewMockRunner(ctrl)

	locker.EXPECT().AcquireWithRetry(gomock.Any(), "custom-job").Return(false, errors.New("db unavailable"))

	s, err := NewScheduler(runner, locker, Config{JobName: "custom-job"}, newFakeClock(), logger.NewTestLogger())
	require.NoError(t, err)

	require.NoError(t, s.Run(context.Background()))
}

func TestSchedulerCancelledWhileAcquiring(t *testing.T) {
	ctrl := gomock.NewController(t)
	locker := NewMockLocker(ctrl)
	runner := NewMockRunner(ctrl)

	ctx, cancel := context.WithCancel(context.Background())

	locker.EXPECT().AcquireWithRetry(gomock.Any(), DefaultJobName).DoAndReturn(
		func(context.Context, string) (bool, error) {
			cancel()
			return false, context.Canceled
		})

	s, err := NewScheduler(runner, locker, Config{}, newFakeClock(), logger.NewTestLogger())
	require.NoError(t, err)

	require.ErrorIs(t, s.Run(ctx), context.Canceled)
}

func TestSchedulerRunsImmediatelyAndOnTick(t *testing.T) {
	ctrl := gomock.NewController(t)
	locker := NewMockLocker(ctrl)
	runner := NewMockRunner(ctrl)
	clock := newFakeClock()

	runs := make(chan struct{}, 4)

	locker.EXPECT().AcquireWithRetry(gomock.Any(), DefaultJobName).Return(true, nil)
	runner.EXPECT().RunSyncCycle(gomock.Any()).DoAndReturn(
		func(context.Context) (*models.SyncRun, error) {
			runs <- struct{}{}
			return &models.SyncRun{ID: "run"}, nil
		}).Times(3)

	s, err := NewScheduler(runner, locker, Config{}, clock, logger.NewTestLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- s.Run(ctx) }()

	waitForRun(t, runs)

	clock.ticks <- clock.Now()
	waitForRun(t, runs)

	clock.ticks <- clock.Now()
	waitForRun(t, runs)

	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestSchedulerKeepsRunningAfterFailedRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	locker := NewMockLocker(ctrl)
	runner := NewMockRunner(ctrl)
	clock := newFakeClock()

	runs := make(chan struct{}, 4)

	locker.EXPECT().AcquireWithRetry(gomock.Any(), DefaultJobName).Return(true, nil)
	gomock.InOrder(
		runner.EXPECT().RunSyncCycle(gomock.Any()).DoAndReturn(
			func(context.Context) (*models.SyncRun, error) {
				runs <- struct{}{}
				return &models.SyncRun{}, errors.New("list fleet devices: timeout")
			}),
		runner.EXPECT().RunSyncCycle(gomock.Any()).DoAndReturn(
			func(context.Context) (*models.SyncRun, error) {
				runs <- struct{}{}
				return &models.SyncRun{Skipped: true, SkipReason: models.SkipReasonQuota}, nil
			}),
	)

	s, err := NewScheduler(runner, locker, Config{}, clock, logger.NewTestLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- s.Run(ctx) }()

	waitForRun(t, runs)

	clock.ticks <- clock.Now()
	waitForRun(t, runs)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func waitForRun(t *testing.T, runs <-chan struct{}) {
	t.Helper()

	select {
	case <-runs:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for sync run")
	}
}
