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

package natsutil

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/carverauto/fleetsync/pkg/logger"
	"github.com/carverauto/fleetsync/pkg/models"
)

const (
	eventSource = "fleetsync/telemetry"
	// statusSubjectPattern covers every subject built by models.StatusChangedSubject.
	statusSubjectPattern = models.EventSubjectPrefix + ".status.*"
)

// EventPublisher publishes device status changes as CloudEvents to JetStream.
type EventPublisher struct {
	js     jetstream.JetStream
	stream string
	logger logger.Logger
}

// NewEventPublisher ensures the events stream exists and returns a publisher.
func NewEventPublisher(ctx context.Context, js jetstream.JetStream, cfg models.EventsConfig, log logger.Logger) (*EventPublisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := EnsureStream(ctx, js, cfg.StreamName, cfg.Subjects, statusSubjectPattern); err != nil {
		return nil, err
	}

	return &EventPublisher{js: js, stream: cfg.StreamName, logger: log}, nil
}

// NotifyStatusChange publishes event. The CloudEvent id doubles as the
// JetStream message id so a retried publish is deduplicated by the server.
func (p *EventPublisher) NotifyStatusChange(ctx context.Context, change models.StatusChanged) error {
	at := change.At.UTC()

	event := models.CloudEvent{
		SpecVersion:     models.CloudEventSpecVersion,
		ID:              uuid.NewString(),
		Source:          eventSource,
		Type:            models.StatusChangedEventType,
		DataContentType: "application/json",
		Subject:         models.StatusChangedSubject(change.DeviceID),
		Time:            &at,
		Data:            change,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal status change event: %w", err)
	}

	ack, err := p.js.Publish(ctx, event.Subject, payload, jetstream.WithMsgID(event.ID))
	if err != nil {
		return fmt.Errorf("failed to publish status change event: %w", err)
	}

	p.logger.Debug().
		Str("event_id", event.ID).
		Str("subject", event.Subject).
		Uint64("seq", ack.Sequence).
		Msg("Published status change event")

	return nil
}
