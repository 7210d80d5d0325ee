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

// Package ingress consumes device telemetry pushed by vendors over NATS
// JetStream and feeds it to the telemetry processor.
package ingress

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/carverauto/fleetsync/pkg/logger"
	"github.com/carverauto/fleetsync/pkg/models"
	"github.com/carverauto/fleetsync/pkg/natsutil"
	"github.com/carverauto/fleetsync/pkg/telemetry"
)

// Stats counts message outcomes since the consumer started.
type Stats struct {
	Ingested    uint64
	Warnings    uint64
	Rejected    uint64
	Redelivered uint64
}

// Consumer is a durable JetStream pull consumer for pushed telemetry.
type Consumer struct {
	js       jetstream.JetStream
	cfg      Config
	ingester Ingester
	logger   logger.Logger

	ingested    atomic.Uint64
	warnings    atomic.Uint64
	rejected    atomic.Uint64
	redelivered atomic.Uint64
}

// NewConsumer validates cfg and returns a consumer. Run starts it.
func NewConsumer(js jetstream.JetStream, cfg Config, ingester Ingester, log logger.Logger) (*Consumer, error) {
	cfg.Enabled = true

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Consumer{js: js, cfg: cfg, ingester: ingester, logger: log}, nil
}

func (*Consumer) Name() string { return "telemetry-ingress" }

// Run consumes until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	for _, subject := range c.cfg.Subjects {
		if err := natsutil.EnsureStream(ctx, c.js, c.cfg.StreamName, c.cfg.Subjects, subject); err != nil {
			return err
		}
	}

	cons, err := c.js.CreateOrUpdateConsumer(ctx, c.cfg.StreamName, jetstream.ConsumerConfig{
		Durable:        c.cfg.Durable,
		FilterSubjects: c.cfg.Subjects,
		AckPolicy:      jetstream.AckExplicitPolicy,
		AckWait:        c.cfg.AckWait.Std(),
		MaxDeliver:     c.cfg.MaxDeliver,
	})
	if err != nil {
		return fmt.Errorf("failed to create consumer %s: %w", c.cfg.Durable, err)
	}

	cc, err := cons.Consume(func(msg jetstream.Msg) {
		c.handle(ctx, msg)
	})
	if err != nil {
		return fmt.Errorf("failed to start consuming %s: %w", c.cfg.StreamName, err)
	}

	c.logger.Info().
		Str("stream", c.cfg.StreamName).
		Str("durable", c.cfg.Durable).
		Strs("subjects", c.cfg.Subjects).
		Msg("Telemetry ingress started")

	<-ctx.Done()
	cc.Stop()

	return ctx.Err()
}

func (c *Consumer) handle(ctx context.Context, msg jetstream.Msg) {
	var payload map[string]interface{}

	dec := json.NewDecoder(bytes.NewReader(msg.Data()))
	dec.UseNumber()

	if err := dec.Decode(&payload); err != nil || payload == nil {
		c.rejected.Add(1)
		c.logger.Warn().Err(err).Str("subject", msg.Subject()).Msg("Dropping undecodable telemetry message")
		c.settle(msg.Term())

		return
	}

	res, err := c.ingester.IngestRaw(ctx, payload, models.SourcePush)

	switch {
	case errors.Is(err, telemetry.ErrValidation):
		c.rejected.Add(1)
		c.logger.Warn().Err(err).Str("subject", msg.Subject()).Msg("Dropping invalid telemetry message")
		c.settle(msg.Term())
	case err != nil:
		c.redelivered.Add(1)
		c.logger.Error().Err(err).Str("subject", msg.Subject()).Msg("Failed to ingest telemetry, requesting redelivery")
		c.settle(msg.Nak())
	default:
		c.ingested.Add(1)

		if res.Outcome() == telemetry.OutcomeOKWithWarning {
			c.warnings.Add(1)
		}

		c.settle(msg.Ack())
	}
}

func (c *Consumer) settle(err error) {
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to acknowledge telemetry message")
	}
}

// Stats returns a snapshot of message outcomes.
func (c *Consumer) Stats() Stats {
	return Stats{
		Ingested:    c.ingested.Load(),
		Warnings:    c.warnings.Load(),
		Rejected:    c.rejected.Load(),
		Redelivered: c.redelivered.Load(),
	}
}
