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
	"encoding/base32"
	"strings"

	"github.com/google/uuid"
)

// MaxIDLength is the id column width shared by all prefixed keys.
const MaxIDLength = 30

// Crockford alphabet. Ascending byte order, so encoded UUIDv7 values keep
// their time ordering under lexicographic comparison.
const idAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

var idEncoding = base32.NewEncoding(idAlphabet).WithPadding(base32.NoPadding)

// newPrefixedID packs a UUIDv7 into 26 base32 characters behind the entity
// prefix: 4 + 26 characters, exactly MaxIDLength.
func newPrefixedID(prefix string) string {
	id := uuid.Must(uuid.NewV7())
	return prefix + idEncoding.EncodeToString(id[:])
}

// NewUserID returns a fresh usr_ key.
func NewUserID() string { return newPrefixedID("usr_") }

// NewDocumentID returns a fresh doc_ key.
func NewDocumentID() string { return newPrefixedID("doc_") }

// NewPhotoID returns a fresh pho_ key.
func NewPhotoID() string { return newPrefixedID("pho_") }

// NewSubscriptionID returns a fresh sub_ key.
func NewSubscriptionID() string { return newPrefixedID("sub_") }

// NewAuditID returns a fresh aud_ key.
func NewAuditID() string { return newPrefixedID("aud_") }

// HasIDPrefix reports whether id carries the given entity prefix, e.g.
// HasIDPrefix(id, "usr_").
func HasIDPrefix(id, prefix string) bool {
	return strings.HasPrefix(id, prefix) && len(id) == MaxIDLength
}
