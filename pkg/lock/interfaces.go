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

//go:generate mockgen -destination=mock_lock.go -package=lock github.com/carverauto/fleetsync/pkg/lock Store

package lock

import (
	"context"
	"time"

	"github.com/carverauto/fleetsync/pkg/models"
)

// Store persists one lock row per job name.
type Store interface {
	InsertLockIfAbsent(ctx context.Context, row models.LockRow) (bool, error)
	GetLock(ctx context.Context, jobName string) (*models.LockRow, error)
	ReplaceLockIf(ctx context.Context, expected models.LockRow, holderID string, acquiredAt time.Time) (bool, error)
}
