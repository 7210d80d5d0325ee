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

package hashutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestETagIsStableAndQuoted(t *testing.T) {
	a := ETag([]byte("devices"))
	b := ETag([]byte("devices"))

	assert.Equal(t, a, b)
	assert.Len(t, a, etagDigestBytes*2+2)
	assert.Equal(t, byte('"'), a[0])
	assert.NotEqual(t, a, ETag([]byte("devices2")))
}

func TestETagJSON(t *testing.T) {
	tag, err := ETagJSON(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, ETag([]byte(`{"a":1}`)), tag)

	_, err = ETagJSON(make(chan int))
	require.Error(t, err)
}

func TestMatchesIfNoneMatch(t *testing.T) {
	tag := ETag([]byte("payload"))

	cases := []struct {
		name   string
		header string
		want   bool
	}{
		{name: "exact", header: tag, want: true},
		{name: "weak", header: "W/" + tag, want: true},
		{name: "list", header: `"abc", ` + tag, want: true},
		{name: "wildcard", header: "*", want: true},
		{name: "mismatch", header: `"abc"`, want: false},
		{name: "empty", header: "", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MatchesIfNoneMatch(tc.header, tag))
		})
	}
}
