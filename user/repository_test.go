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
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeonilabs/yeoni/repository"
)

func TestNormalizePhone(t *testing.T) {
	for input, want := range map[string]string{
		"010-1234-5678":   "01012345678",
		"01012345678":     "01012345678",
		" 010-1234-5678 ": "01012345678",
		"":                "",
		"   ":             "",
	} {
		assert.Equal(t, want, NormalizePhone(input), "%q", input)
	}
}

func TestFindByPhone(t *testing.T) {
	db := newUserDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created := &User{Phone: "01012345678", NameKo: "김수현", Status: StatusActive}
	require.NoError(t, repo.Create(ctx, created))

	// hyphenated input hits the normalized row
	got, err := repo.FindByPhone(ctx, "010-1234-5678")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)

	got, err = repo.FindByPhone(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.FindByPhone(ctx, "01099999999")
	require.NoError(t, err)
	assert.Nil(t, got)

	deleted, err := repo.SoftDelete(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	got, err = repo.FindByPhone(ctx, "01012345678")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindByEmail(t *testing.T) {
	db := newUserDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created := &User{Email: "suhyun@example.com", AuthType: AuthEmail}
	require.NoError(t, repo.Create(ctx, created))

	got, err := repo.FindByEmail(ctx, " suhyun@example.com ")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)

	got, err = repo.FindByEmail(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetActive(t *testing.T) {
	db := newUserDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created := &User{Phone: "01011112222"}
	require.NoError(t, repo.Create(ctx, created))

	got, err := repo.GetActive(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	_, err = repo.SoftDelete(ctx, created.ID)
	require.NoError(t, err)

	got, err = repo.GetActive(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.GetActive(ctx, "usr_missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSoftDeleteIsIdempotent(t *testing.T) {
	db := newUserDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created := &User{Phone: "01033334444"}
	require.NoError(t, repo.Create(ctx, created))
	before := created.UpdatedAt

	deleted, err := repo.SoftDelete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.SoftDelete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = repo.SoftDelete(ctx, "usr_missing")
	require.NoError(t, err)
	assert.False(t, deleted)

	// the row keeps its data and carries the deletion stamp
	raw, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, raw)
	assert.True(t, raw.IsDeleted())
	assert.Equal(t, "01033334444", raw.Phone)
	assert.False(t, raw.UpdatedAt.Before(before))
}

func TestLogAccess(t *testing.T) {
	db := newUserDB(t)
	audits := NewAuditRepository(db)
	ctx := context.Background()

	first, err := audits.LogAccess(ctx, AccessEntry{
		AccessorID:   "usr_admin",
		AccessorType: AccessorAdmin,
		TargetUserID: "usr_target",
		ResourceType: ResourceDocument,
		ResourceID:   "doc_1",
		Action:       ActionDownload,
		IPAddress:    "10.0.0.7",
		UserAgent:    "console/1.4",
	})
	require.NoError(t, err)
	assert.True(t, HasIDPrefix(first.ID, "aud_"), first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second, err := audits.LogAccess(ctx, AccessEntry{
		AccessorID:   "usr_admin",
		AccessorType: AccessorAdmin,
		ResourceType: ResourcePhoto,
		Action:       ActionView,
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	count, err := audits.Count(ctx, repository.Filters{"accessor_id": "usr_admin"})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	downloads, err := audits.Count(ctx, repository.Filters{"action": ActionDownload})
	require.NoError(t, err)
	assert.Equal(t, 1, downloads)
}
