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

package models

import (
	"strings"
	"time"
)

const (
	// CloudEventSpecVersion is the CloudEvents version of every envelope we publish.
	CloudEventSpecVersion = "1.0"

	DefaultEventsStream    = "fleet_events"
	EventSubjectPrefix     = "events.fleet"
	StatusChangedEventType = "com.fleetsync.device.status_changed"
)

// CloudEvent represents a CloudEvents v1.0 compliant event.
type CloudEvent struct {
	SpecVersion     string      `json:"specversion"`
	ID              string      `json:"id"`
	Source          string      `json:"source"`
	Type            string      `json:"type"`
	DataContentType string      `json:"datacontenttype"`
	Subject         string      `json:"subject,omitempty"`
	Time            *time.Time  `json:"time,omitempty"`
	Data            interface{} `json:"data,omitempty"`
}

// StatusChangedSubject returns the NATS subject for a device status change.
func StatusChangedSubject(deviceID string) string {
	return EventSubjectPrefix + ".status." + subjectToken(deviceID)
}

//nolint:gochecknoglobals // immutable replacer
var subjectReplacer = strings.NewReplacer(".", "_", " ", "_", "*", "_", ">", "_")

func subjectToken(s string) string {
	if s == "" {
		return "_"
	}

	return subjectReplacer.Replace(s)
}
