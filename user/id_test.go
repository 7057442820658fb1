/*
 * Copyright 2026 yeonilabs.
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

package user

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDShape(t *testing.T) {
	for prefix, generate := range map[string]func() string{
		"usr_": NewUserID,
		"doc_": NewDocumentID,
		"pho_": NewPhotoID,
		"sub_": NewSubscriptionID,
		"aud_": NewAuditID,
	} {
		id := generate()
		assert.Len(t, id, MaxIDLength, id)
		assert.True(t, HasIDPrefix(id, prefix), id)
		for _, r := range id[len(prefix):] {
			assert.Contains(t, idAlphabet, string(r), id)
		}
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := NewUserID()
		_, dup := seen[id]
		require.False(t, dup, id)
		seen[id] = struct{}{}
	}
}

func TestNewIDSortsByCreationTime(t *testing.T) {
	first := NewUserID()
	time.Sleep(2 * time.Millisecond)
	second := NewUserID()
	assert.True(t, strings.Compare(first, second) < 0, "%s !< %s", first, second)
}

func TestHasIDPrefix(t *testing.T) {
	id := NewPhotoID()
	assert.True(t, HasIDPrefix(id, "pho_"))
	assert.False(t, HasIDPrefix(id, "usr_"))
	assert.False(t, HasIDPrefix("pho", "pho_"))
	assert.False(t, HasIDPrefix("", "usr_"))
}
