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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func mustInsert(t *testing.T, db *bun.DB, model interface{}) {
	t.Helper()
	_, err := db.NewInsert().Model(model).Exec(context.Background())
	require.NoError(t, err)
}

func TestLoaderMissingUser(t *testing.T) {
	db := newUserDB(t)
	loader := NewLoader(db)
	ctx := context.Background()

	agg, err := loader.LoadCore(ctx, "usr_missing")
	require.NoError(t, err)
	assert.Nil(t, agg)

	u := &User{Phone: "01012340000"}
	mustInsert(t, db, u)
	_, err = NewRepository(db).SoftDelete(ctx, u.ID)
	require.NoError(t, err)

	agg, err = loader.LoadCore(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, agg)
}

func TestLoadCoreWithoutRelations(t *testing.T) {
	db := newUserDB(t)
	loader := NewLoader(db)

	u := &User{Phone: "01012340001", NameKo: "김수현"}
	mustInsert(t, db, u)

	agg, err := loader.LoadCore(context.Background(), u.ID)
	require.NoError(t, err)
	require.NotNil(t, agg)
	require.NotNil(t, agg.User)
	assert.Equal(t, u.ID, agg.User.ID)
	assert.Nil(t, agg.Profile)
	assert.Nil(t, agg.Lifestyle)
	assert.Nil(t, agg.Preference)
	assert.Nil(t, agg.Subscription)
	assert.Nil(t, agg.Photos)
	assert.Nil(t, agg.Documents)
}

func TestLoadCoreAssemblesOneToOneRelations(t *testing.T) {
	db := newUserDB(t)
	loader := NewLoader(db)

	u := &User{Phone: "01012340002"}
	mustInsert(t, db, u)
	other := &User{Phone: "01012340003"}
	mustInsert(t, db, other)

	mustInsert(t, db, &Profile{UserID: u.ID, Job: "developer", Height: 178})
	mustInsert(t, db, &Profile{UserID: other.ID, Job: "designer"})
	mustInsert(t, db, &Lifestyle{UserID: u.ID, Smoking: SmokingNone, Religion: ReligionNone})
	mustInsert(t, db, &Preference{UserID: u.ID, PreferredAgeLabel: "동갑±3"})
	mustInsert(t, db, &Subscription{UserID: u.ID, MembershipType: "premium"})
	// photos exist but the core read never fetches them
	mustInsert(t, db, &Photo{UserID: u.ID, PhotoType: PhotoFace, ObjectKey: "photos/a.jpg"})

	agg, err := loader.LoadCore(context.Background(), u.ID)
	require.NoError(t, err)
	require.NotNil(t, agg)

	require.NotNil(t, agg.Profile)
	assert.Equal(t, u.ID, agg.Profile.UserID)
	assert.Equal(t, "developer", agg.Profile.Job)
	require.NotNil(t, agg.Lifestyle)
	assert.Equal(t, SmokingNone, agg.Lifestyle.Smoking)
	require.NotNil(t, agg.Preference)
	assert.Equal(t, "동갑±3", agg.Preference.PreferredAgeLabel)
	require.NotNil(t, agg.Subscription)
	assert.Equal(t, "premium", agg.Subscription.MembershipType)
	assert.Nil(t, agg.Photos)
	assert.Nil(t, agg.Documents)
}

func TestLoadWithRelationsOrdersAndFiltersLists(t *testing.T) {
	db := newUserDB(t)
	loader := NewLoader(db)

	u := &User{Phone: "01012340004"}
	mustInsert(t, db, u)

	second := &Photo{UserID: u.ID, PhotoType: PhotoFull, ObjectKey: "photos/2.jpg", DisplayOrder: 2}
	mustInsert(t, db, second)
	firstA := &Photo{UserID: u.ID, PhotoType: PhotoFace, ObjectKey: "photos/1a.jpg", DisplayOrder: 1}
	mustInsert(t, db, firstA)
	firstB := &Photo{UserID: u.ID, PhotoType: PhotoFace, ObjectKey: "photos/1b.jpg", DisplayOrder: 1}
	mustInsert(t, db, firstB)
	removed := &Photo{UserID: u.ID, ObjectKey: "photos/gone.jpg", DeletedAt: time.Now()}
	mustInsert(t, db, removed)

	older := &Document{
		UserID: u.ID, DocumentType: DocumentIDCard, ObjectKey: "documents/id.png",
		CreatedAt: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
	}
	mustInsert(t, db, older)
	newer := &Document{
		UserID: u.ID, DocumentType: DocumentEmploymentProof, ObjectKey: "documents/job.png",
		CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	mustInsert(t, db, newer)

	agg, err := loader.LoadWithRelations(context.Background(), u.ID)
	require.NoError(t, err)
	require.NotNil(t, agg)

	// display_order first, insertion id breaking the tie
	require.Len(t, agg.Photos, 3)
	assert.Equal(t, firstA.ID, agg.Photos[0].ID)
	assert.Equal(t, firstB.ID, agg.Photos[1].ID)
	assert.Equal(t, second.ID, agg.Photos[2].ID)

	require.Len(t, agg.Documents, 2)
	assert.Equal(t, older.ID, agg.Documents[0].ID)
	assert.Equal(t, newer.ID, agg.Documents[1].ID)
}

func TestLoadWithRelationsScopesToUser(t *testing.T) {
	db := newUserDB(t)
	loader := NewLoader(db)

	u := &User{Phone: "01012340005"}
	mustInsert(t, db, u)
	other := &User{Phone: "01012340006"}
	mustInsert(t, db, other)
	mustInsert(t, db, &Photo{UserID: other.ID, ObjectKey: "photos/other.jpg"})
	mustInsert(t, db, &Document{UserID: other.ID, ObjectKey: "documents/other.png"})

	agg, err := loader.LoadWithRelations(context.Background(), u.ID)
	require.NoError(t, err)
	require.NotNil(t, agg)
	assert.Empty(t, agg.Photos)
	assert.Empty(t, agg.Documents)
}
