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

//go:generate mockgen -destination=mock_tracker.go -package=tracker github.com/carverauto/fleetsync/pkg/tracker Store

package tracker

import (
	"context"

	"github.com/carverauto/fleetsync/pkg/models"
)

// Store is the device storage the tracker reads and annotates.
type Store interface {
	ListDevicesWithoutTask(ctx context.Context) ([]models.Device, error)
	SetExternalTaskID(ctx context.Context, deviceID string, taskID string) error
}
