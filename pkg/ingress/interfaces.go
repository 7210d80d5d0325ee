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

//go:generate mockgen -destination=mock_ingress.go -package=ingress github.com/carverauto/fleetsync/pkg/ingress Ingester

package ingress

import (
	"context"

	"github.com/carverauto/fleetsync/pkg/models"
	"github.com/carverauto/fleetsync/pkg/telemetry"
)

// Ingester stores one raw vendor payload.
type Ingester interface {
	IngestRaw(ctx context.Context, payload map[string]interface{}, source models.ObservationSource) (*telemetry.IngestResult, error)
}
