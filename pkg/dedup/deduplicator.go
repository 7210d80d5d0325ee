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

// Package dedup merges device rows that describe the same physical device
// under different vendor identifiers.
package dedup

import (
	"context"
	"fmt"

	"github.com/carverauto/fleetsync/pkg/logger"
	"github.com/carverauto/fleetsync/pkg/models"
)

// Deduplicator finds devices sharing a normalized name and folds each group
// into a single survivor.
type Deduplicator struct {
	store  Store
	cache  CacheInvalidator
	logger logger.Logger
}

// NewDeduplicator returns a deduplicator. cache may be nil.
func NewDeduplicator(store Store, cache CacheInvalidator, log logger.Logger) *Deduplicator {
	return &Deduplicator{store: store, cache: cache, logger: log}
}

// HasDuplicates reports whether at least one duplicate name group exists.
func (d *Deduplicator) HasDuplicates(ctx context.Context) (bool, error) {
	found, err := d.store.HasDuplicateNames(ctx)
	if err != nil {
		return false, fmt.Errorf("check duplicate names: %w", err)
	}

	return found, nil
}

// MergeDuplicates merges every duplicate group. Each group is merged in its
// own transaction; a failed group is logged and counted, and the remaining
// groups still run.
func (d *Deduplicator) MergeDuplicates(ctx context.Context) (models.MergeSummary, error) {
	var summary models.MergeSummary

	devices, err := d.store.ListDeviceSummaries(ctx)
	if err != nil {
		return summary, fmt.Errorf("list devices for merge: %w", err)
	}

	groups := GroupByName(devices)
	summary.GroupsChecked = len(groups)

	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		survivor, losers := PickSurvivor(group.Members)

		moved, err := d.store.MergeGroup(ctx, survivor.DeviceID, losers)
		if err != nil {
			summary.FailedGroups++

			d.logger.Error().
				Err(err).
				Str("name", group.Key).
				Str("survivor_id", survivor.DeviceID).
				Strs("loser_ids", losers).
				Msg("Failed to merge duplicate group")

			continue
		}

		summary.Merged += len(losers)
		summary.RecordsMoved += moved

		d.logger.Info().
			Str("name", group.Key).
			Str("survivor_id", survivor.DeviceID).
			Strs("loser_ids", losers).
			Int64("records_moved", moved).
			Msg("Merged duplicate devices")
	}

	if summary.Merged > 0 && d.cache != nil {
		d.cache.InvalidateAll()
	}

	return summary, nil
}

// AutoMerge runs MergeDuplicates only when a duplicate group exists. The
// returned bool is false when there was nothing to do.
func (d *Deduplicator) AutoMerge(ctx context.Context) (models.MergeSummary, bool, error) {
	found, err := d.HasDuplicates(ctx)
	if err != nil || !found {
		return models.MergeSummary{}, false, err
	}

	summary, err := d.MergeDuplicates(ctx)

	return summary, true, err
}
