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

import "time"

const (
	SkipReasonAlreadyRunning = "already_running"
	SkipReasonQuota          = "quota"
)

// SyncRun summarises one poll cycle. Partial success is reported through the
// separate success and error counters, never folded into a single flag.
type SyncRun struct {
	ID                  string    `json:"id"`
	StartedAt           time.Time `json:"started_at"`
	DurationMs          int64     `json:"duration_ms"`
	TotalDevices        int       `json:"total_devices"`
	SuccessCount        int       `json:"success_count"`
	ErrorCount          int       `json:"error_count"`
	AbortedForRateLimit bool      `json:"aborted_for_rate_limit"`
	Skipped             bool      `json:"skipped"`
	SkipReason          string    `json:"skip_reason,omitempty"`
	Warnings            []string  `json:"warnings,omitempty"`
}

// Attempted returns the number of devices the run actually processed.
func (r *SyncRun) Attempted() int {
	return r.SuccessCount + r.ErrorCount
}

// MergeSummary reports the outcome of a duplicate identity merge pass.
type MergeSummary struct {
	GroupsChecked int   `json:"groups_checked"`
	Merged        int   `json:"merged"`
	RecordsMoved  int64 `json:"records_moved"`
	FailedGroups  int   `json:"failed_groups"`
}

// LockRow is the persisted claim on a recurring job.
type LockRow struct {
	JobName    string    `json:"job_name"`
	HolderID   string    `json:"holder_id"`
	AcquiredAt time.Time `json:"acquired_at"`
}

// Stale reports whether the holder is presumed dead at now.
func (l *LockRow) Stale(now time.Time, threshold time.Duration) bool {
	return now.Sub(l.AcquiredAt) > threshold
}
