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

// Package app wires the fleetsync process together.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/carverauto/fleetsync/pkg/cache"
	"github.com/carverauto/fleetsync/pkg/config"
	"github.com/carverauto/fleetsync/pkg/db"
	"github.com/carverauto/fleetsync/pkg/dedup"
	"github.com/carverauto/fleetsync/pkg/fleet"
	"github.com/carverauto/fleetsync/pkg/fleetview"
	"github.com/carverauto/fleetsync/pkg/ingress"
	"github.com/carverauto/fleetsync/pkg/lifecycle"
	"github.com/carverauto/fleetsync/pkg/lock"
	"github.com/carverauto/fleetsync/pkg/logger"
	"github.com/carverauto/fleetsync/pkg/natsutil"
	syncengine "github.com/carverauto/fleetsync/pkg/sync"
	"github.com/carverauto/fleetsync/pkg/telemetry"
	"github.com/carverauto/fleetsync/pkg/tracker"
	"github.com/carverauto/fleetsync/pkg/version"
)

const serviceName = "fleetsync"

// Options contains runtime configuration derived from CLI flags.
type Options struct {
	ConfigPath string
}

// LoadConfig reads and validates the process configuration.
func LoadConfig(ctx context.Context, path string) (*Config, error) {
	var cfg Config

	if err := config.NewConfig(nil).LoadAndValidate(ctx, path, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return &cfg, nil
}

// Run boots fleetsync and blocks until SIGINT/SIGTERM or a service fails.
func Run(ctx context.Context, opts Options) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := LoadConfig(ctx, opts.ConfigPath)
	if err != nil {
		return err
	}

	mainLogger, err := lifecycle.CreateComponentLogger(ctx, "fleetsync-main", cfg.Logging)
	if err != nil {
		return err
	}

	if safe, err := config.SanitizedJSON(cfg); err == nil {
		mainLogger.Info().RawJSON("config", safe).Msg("Loaded configuration")
	}

	mainLogger.Info().Str("version", version.GetFullVersion()).Msg("Starting fleetsync")

	for _, w := range cfg.Warnings() {
		mainLogger.Warn().Msg(w)
	}

	if _, err := logger.InitializeMetrics(ctx, logger.MetricsConfig{
		ServiceName:    serviceName,
		ServiceVersion: version.GetVersion(),
		OTel:           &cfg.Logging.OTel,
	}); err != nil && !errors.Is(err, logger.ErrOTelMetricsDisabled) {
		return err
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := logger.ShutdownMetrics(shutdownCtx); err != nil {
			mainLogger.Error().Err(err).Msg("Error shutting down metrics provider")
		}
	}()

	pool, err := db.NewPool(ctx, &cfg.Database, lifecycle.ComponentLogger(mainLogger, "db"))
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, lifecycle.ComponentLogger(mainLogger, "migrations")); err != nil {
		return err
	}

	store := db.NewPostgresStore(pool, lifecycle.ComponentLogger(mainLogger, "store"))

	services, cleanup, err := buildServices(ctx, cfg, store, mainLogger)
	if err != nil {
		return err
	}
	defer cleanup()

	return lifecycle.RunServices(ctx, mainLogger, services...)
}

// buildServices constructs every long-running component over store. The
// returned cleanup releases connections opened along the way.
func buildServices(
	ctx context.Context, cfg *Config, store *db.PostgresStore, log logger.Logger,
) ([]lifecycle.Service, func(), error) {
	cleanup := func() {}

	cacheMgr, err := cache.NewManager(cfg.Cache, lifecycle.ComponentLogger(log, "cache"))
	if err != nil {
		return nil, cleanup, err
	}

	rules, err := telemetry.NewExtractionRules(cfg.Telemetry.FieldRules)
	if err != nil {
		return nil, cleanup, err
	}

	procOpts := []telemetry.Option{
		telemetry.WithCache(cacheMgr),
		telemetry.WithExtractionRules(rules),
	}

	var taskClient *tracker.Client

	if cfg.Tracker != nil {
		taskClient, err = tracker.NewClient(*cfg.Tracker, store, nil, lifecycle.ComponentLogger(log, "tracker"))
		if err != nil {
			return nil, cleanup, err
		}

		procOpts = append(procOpts, telemetry.WithNotifier(taskClient))
	}

	var js jetstream.JetStream

	if cfg.NATS != nil {
		nc, err := natsutil.Connect(cfg.NATS, lifecycle.ComponentLogger(log, "nats"))
		if err != nil {
			return nil, cleanup, err
		}

		cleanup = func() {
			if err := nc.Drain(); err != nil {
				log.Warn().Err(err).Msg("Error draining NATS connection")
			}
		}

		js, err = natsutil.NewJetStream(nc, cfg.NATS.Domain)
		if err != nil {
			return nil, cleanup, err
		}
	}

	if cfg.Events.Enabled {
		publisher, err := natsutil.NewEventPublisher(ctx, js, cfg.Events, lifecycle.ComponentLogger(log, "events"))
		if err != nil {
			return nil, cleanup, err
		}

		procOpts = append(procOpts, telemetry.WithNotifier(publisher))
	}

	processor := telemetry.NewProcessor(store, lifecycle.ComponentLogger(log, "telemetry"), procOpts...)

	fleetClient, err := fleet.NewClient(cfg.Fleet, nil, lifecycle.ComponentLogger(log, "fleet"))
	if err != nil {
		return nil, cleanup, err
	}

	engineOpts := []syncengine.EngineOption{
		syncengine.WithDeduplicator(dedup.NewDeduplicator(store, cacheMgr, lifecycle.ComponentLogger(log, "dedup"))),
		syncengine.WithCache(cacheMgr),
	}

	if taskClient != nil {
		engineOpts = append(engineOpts, syncengine.WithTaskTracker(taskClient))
	}

	engine, err := syncengine.NewEngine(cfg.Sync, fleetClient, processor, store,
		lifecycle.ComponentLogger(log, "sync"), engineOpts...)
	if err != nil {
		return nil, cleanup, err
	}

	lockSvc, err := lock.NewService(store, cfg.Lock, lifecycle.ComponentLogger(log, "lock"))
	if err != nil {
		return nil, cleanup, err
	}

	scheduler, err := syncengine.NewScheduler(engine, lockSvc, cfg.Sync, nil, lifecycle.ComponentLogger(log, "scheduler"))
	if err != nil {
		return nil, cleanup, err
	}

	view := fleetview.NewService(store, cacheMgr, lifecycle.ComponentLogger(log, "fleetview"))

	services := []lifecycle.Service{
		scheduler,
		newSummaryReporter(view, cacheMgr, cfg.ReportInterval.Std(), lifecycle.ComponentLogger(log, "summary")),
	}

	if cfg.Ingress.Enabled {
		consumer, err := ingress.NewConsumer(js, cfg.Ingress, processor, lifecycle.ComponentLogger(log, "ingress"))
		if err != nil {
			return nil, cleanup, err
		}

		services = append(services, consumer)
	}

	log.Info().
		Str("holder_id", lockSvc.HolderID()).
		Bool("tracker", taskClient != nil).
		Bool("events", cfg.Events.Enabled).
		Bool("ingress", cfg.Ingress.Enabled).
		Msg("Services configured")

	return services, cleanup, nil
}
