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

package app

import (
	"context"
	"time"

	"github.com/carverauto/fleetsync/pkg/cache"
	"github.com/carverauto/fleetsync/pkg/dedup"
	"github.com/carverauto/fleetsync/pkg/fleetview"
	"github.com/carverauto/fleetsync/pkg/lifecycle"
	"github.com/carverauto/fleetsync/pkg/logger"
	"github.com/carverauto/fleetsync/pkg/models"
)

// fleetReader is the slice of fleetview the reporter uses.
type fleetReader interface {
	Devices(ctx context.Context) (fleetview.DeviceList, error)
	DuplicateGroups(ctx context.Context) ([]dedup.Group, error)
}

type cacheStats interface {
	Stats() cache.Stats
}

// summary is one periodic snapshot of the fleet.
type summary struct {
	Devices         int
	Online          int
	DuplicateGroups int
	Cache           cache.Stats
}

func collectSummary(ctx context.Context, view fleetReader, stats cacheStats) (summary, error) {
	list, err := view.Devices(ctx)
	if err != nil {
		return summary{}, err
	}

	groups, err := view.DuplicateGroups(ctx)
	if err != nil {
		return summary{}, err
	}

	s := summary{Devices: len(list.Devices), DuplicateGroups: len(groups), Cache: stats.Stats()}

	for i := range list.Devices {
		if list.Devices[i].CurrentStatus == models.StatusOnline {
			s.Online++
		}
	}

	return s, nil
}

func newSummaryReporter(view fleetReader, stats cacheStats, interval time.Duration, log logger.Logger) lifecycle.Service {
	return lifecycle.ServiceFunc{
		ServiceName: "fleet-summary",
		Fn: func(ctx context.Context) error {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-ticker.C:
				}

				s, err := collectSummary(ctx, view, stats)
				if err != nil {
					log.Warn().Err(err).Msg("Unable to collect fleet summary")
					continue
				}

				log.Info().
					Int("devices", s.Devices).
					Int("online", s.Online).
					Int("duplicate_groups", s.DuplicateGroups).
					Uint64("cache_hits", s.Cache.Hits).
					Uint64("cache_misses", s.Cache.Misses).
					Msg("Fleet summary")
			}
		},
	}
}
