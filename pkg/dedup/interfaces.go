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

//go:generate mockgen -destination=mock_dedup.go -package=dedup github.com/carverauto/fleetsync/pkg/dedup Store,CacheInvalidator

package dedup

import (
	"context"

	"github.com/carverauto/fleetsync/pkg/models"
)

// Store is the storage surface the deduplicator needs.
type Store interface {
	ListDeviceSummaries(ctx context.Context) ([]models.DeviceSummary, error)
	HasDuplicateNames(ctx context.Context) (bool, error)
	MergeGroup(ctx context.Context, survivorID string, loserIDs []string) (int64, error)
}

type CacheInvalidator interface {
	InvalidateAll()
}
