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

package dedup

import (
	"regexp"
	"sort"
	"strings"

	"github.com/carverauto/fleetsync/pkg/models"
)

// serialLike matches vendor serial numbers, which are the stable identity of
// a device; other ids tend to be short-lived aliases.
var serialLike = regexp.MustCompile(`^[0-9]{9,}$`)

// IsSerialLike reports whether id looks like a vendor serial number.
func IsSerialLike(id string) bool {
	return serialLike.MatchString(id)
}

// NameKey is the grouping key for duplicate detection. Blank names yield "".
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Group is a set of device rows sharing one name key.
type Group struct {
	Key     string
	Members []models.DeviceSummary
}

// GroupByName buckets devices by NameKey and returns only buckets with more
// than one member, ordered by key. Devices with blank names are never grouped.
func GroupByName(devices []models.DeviceSummary) []Group {
	buckets := make(map[string][]models.DeviceSummary)

	for _, d := range devices {
		key := NameKey(d.Name)
		if key == "" {
			continue
		}

		buckets[key] = append(buckets[key], d)
	}

	groups := make([]Group, 0, len(buckets))

	for key, members := range buckets {
		if len(members) < 2 {
			continue
		}

		groups = append(groups, Group{Key: key, Members: members})
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })

	return groups
}

// betterSurvivor reports whether a should survive over b.
func betterSurvivor(a, b *models.DeviceSummary) bool {
	if a.RecordCount != b.RecordCount {
		return a.RecordCount > b.RecordCount
	}

	if as, bs := IsSerialLike(a.DeviceID), IsSerialLike(b.DeviceID); as != bs {
		return as
	}

	switch {
	case a.LastSeen != nil && b.LastSeen == nil:
		return true
	case a.LastSeen == nil && b.LastSeen != nil:
		return false
	case a.LastSeen != nil && !a.LastSeen.Equal(*b.LastSeen):
		return a.LastSeen.After(*b.LastSeen)
	}

	return a.DeviceID < b.DeviceID
}

// PickSurvivor returns the member that keeps its identity and the ids of the
// members merged into it.
func PickSurvivor(members []models.DeviceSummary) (models.DeviceSummary, []string) {
	ordered := make([]models.DeviceSummary, len(members))
	copy(ordered, members)

	sort.SliceStable(ordered, func(i, j int) bool { return betterSurvivor(&ordered[i], &ordered[j]) })

	losers := make([]string, 0, len(ordered)-1)
	for _, m := range ordered[1:] {
		losers = append(losers, m.DeviceID)
	}

	return ordered[0], losers
}
