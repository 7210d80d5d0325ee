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

// Package hashutil derives content digests used as HTTP entity tags.
package hashutil

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

const etagDigestBytes = 16

// ETag returns a strong, quoted entity tag for payload.
func ETag(payload []byte) string {
	sum := sha256.Sum256(payload)

	return `"` + hex.EncodeToString(sum[:etagDigestBytes]) + `"`
}

// ETagJSON encodes v as JSON and returns its entity tag.
func ETagJSON(v interface{}) (string, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode etag payload: %w", err)
	}

	return ETag(payload), nil
}

// MatchesIfNoneMatch reports whether an If-None-Match header value matches
// etag using weak comparison. "*" matches any current representation.
func MatchesIfNoneMatch(header, etag string) bool {
	if header == "" || etag == "" {
		return false
	}

	want := opaqueTag(etag)

	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}

		if subtle.ConstantTimeCompare([]byte(opaqueTag(candidate)), []byte(want)) == 1 {
			return true
		}
	}

	return false
}

func opaqueTag(tag string) string {
	return strings.TrimPrefix(strings.TrimSpace(tag), "W/")
}
