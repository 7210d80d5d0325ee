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

package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/carverauto/fleetsync/pkg/logger"
)

// Service is a long-running component owned by the process.
// Run blocks until ctx is cancelled or the service fails.
type Service interface {
	Name() string
	Run(ctx context.Context) error
}

// ServiceFunc adapts a function into a Service.
type ServiceFunc struct {
	ServiceName string
	Fn          func(ctx context.Context) error
}

func (s ServiceFunc) Name() string { return s.ServiceName }

func (s ServiceFunc) Run(ctx context.Context) error { return s.Fn(ctx) }

// RunServices runs every service in one errgroup. The first failure cancels the
// others. Context cancellation is a clean shutdown and returns nil.
func RunServices(ctx context.Context, log logger.Logger, services ...Service) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, svc := range services {
		g.Go(func() error {
			log.Info().Str("service", svc.Name()).Msg("Starting service")

			err := svc.Run(gctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Str("service", svc.Name()).Msg("Service failed")

				return fmt.Errorf("%s: %w", svc.Name(), err)
			}

			log.Info().Str("service", svc.Name()).Msg("Service stopped")

			return nil
		})
	}

	return g.Wait()
}
