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
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/yeonilabs/yeoni/database"
	"github.com/yeonilabs/yeoni/repository"
	"github.com/yeonilabs/yeoni/types"
)

// newUserDB opens an in-memory database with every registered table created,
// the same way migration 001 does on startup.
func newUserDB(t *testing.T) *bun.DB {
	t.Helper()
	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	for _, model := range database.RegisteredModelInstances() {
		_, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx)
		require.NoError(t, err)
	}
	return db
}

func TestRegisteredModelsCoverEveryTable(t *testing.T) {
	tables := map[string]bool{}
	for _, model := range database.GetRegisteredModels() {
		d, ok := model.Instance().(repository.Descriptor)
		require.True(t, ok, "%T must describe its table", model.Instance())
		tables[d.TableName()] = true
	}
	for _, table := range []string{
		"users", "user_profiles", "user_lifestyles", "user_preferences",
		"user_documents", "user_photos", "user_subscriptions", "access_audits",
	} {
		assert.True(t, tables[table], table)
	}

	// users must be created before the tables referencing it
	models := database.GetRegisteredModels()
	require.NotEmpty(t, models)
	first, ok := models[0].Instance().(*User)
	require.True(t, ok, "expected *User first, got %T", models[0].Instance())
	assert.Equal(t, "users", first.TableName())
}

func TestDescriptorColumnsMatchCreatedSchema(t *testing.T) {
	db := newUserDB(t)
	ctx := context.Background()

	for _, model := range database.RegisteredModelInstances() {
		d := model.(repository.Descriptor)
		q := db.NewSelect().Table(d.TableName())
		for _, column := range d.Columns() {
			q = q.ColumnExpr("?", bun.Ident(column))
		}
		_, err := q.Limit(0).Exec(ctx)
		require.NoError(t, err, d.TableName())

		assert.True(t, d.HasColumn(d.PKColumn()), d.TableName())
		assert.False(t, d.HasColumn("no_such_column"), d.TableName())
	}
}

func TestUserInsertHookAssignsIDAndTimestamps(t *testing.T) {
	db := newUserDB(t)
	ctx := context.Background()

	u := &User{Phone: "01012345678", NameKo: "김수현", Status: StatusDraft, AuthType: AuthPhone}
	_, err := db.NewInsert().Model(u).Exec(ctx)
	require.NoError(t, err)

	assert.Len(t, u.ID, MaxIDLength)
	assert.True(t, HasIDPrefix(u.ID, "usr_"), u.ID)
	assert.False(t, u.CreatedAt.IsZero())
	assert.False(t, u.UpdatedAt.IsZero())

	var got User
	require.NoError(t, db.NewSelect().Model(&got).Where("id = ?", u.ID).Scan(ctx))
	assert.Equal(t, "01012345678", got.Phone)
	assert.Equal(t, StatusDraft, got.Status)
	assert.Equal(t, AuthPhone, got.AuthType)
	assert.False(t, got.IsDeleted())
}

func TestUserHookKeepsProvidedID(t *testing.T) {
	db := newUserDB(t)

	u := &User{ID: "usr_fixed", Phone: "01000000000"}
	_, err := db.NewInsert().Model(u).Exec(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "usr_fixed", u.ID)
}

func TestUpdateHookTouchesOnlyUpdatedAt(t *testing.T) {
	db := newUserDB(t)
	ctx := context.Background()

	u := &User{}
	require.NoError(t, u.BeforeAppendModel(ctx, db.NewInsert()))
	created, updated := u.CreatedAt, u.UpdatedAt
	assert.False(t, created.IsZero())

	time.Sleep(2 * time.Millisecond)
	require.NoError(t, u.BeforeAppendModel(ctx, db.NewUpdate()))
	assert.True(t, u.CreatedAt.Equal(created))
	assert.True(t, u.UpdatedAt.After(updated))
}

func TestDocumentInsertHookDefaults(t *testing.T) {
	db := newUserDB(t)
	ctx := context.Background()

	doc := &Document{UserID: "usr_1", DocumentType: DocumentIDCard, ObjectKey: "documents/usr_1/id.png"}
	_, err := db.NewInsert().Model(doc).Exec(ctx)
	require.NoError(t, err)

	assert.True(t, HasIDPrefix(doc.ID, "doc_"), doc.ID)
	assert.Equal(t, VerificationPending, doc.VerificationStatus)

	var got Document
	require.NoError(t, db.NewSelect().Model(&got).Where("id = ?", doc.ID).Scan(ctx))
	assert.Equal(t, VerificationPending, got.VerificationStatus)
	assert.Equal(t, "documents/usr_1/id.png", got.ObjectKey)
}

func TestPhotoAndSubscriptionHooksAssignPrefixedIDs(t *testing.T) {
	db := newUserDB(t)
	ctx := context.Background()

	photo := &Photo{UserID: "usr_1", PhotoType: PhotoFace, ObjectKey: "photos/usr_1/1.jpg"}
	_, err := db.NewInsert().Model(photo).Exec(ctx)
	require.NoError(t, err)
	assert.True(t, HasIDPrefix(photo.ID, "pho_"), photo.ID)

	sub := &Subscription{UserID: "usr_1", MembershipType: "standard"}
	_, err = db.NewInsert().Model(sub).Exec(ctx)
	require.NoError(t, err)
	assert.True(t, HasIDPrefix(sub.ID, "sub_"), sub.ID)
}

func TestPreferenceListColumnsRoundTrip(t *testing.T) {
	db := newUserDB(t)
	ctx := context.Background()

	pref := &Preference{
		UserID:             "usr_1",
		PreferredHeights:   types.JsonStringArray{"165-170", "170-175"},
		PreferredLifestyle: types.JsonStringArray{"non_smoker"},
		Values:             types.JsonStringArray{"honesty", "humor"},
	}
	_, err := db.NewInsert().Model(pref).Exec(ctx)
	require.NoError(t, err)

	var got Preference
	require.NoError(t, db.NewSelect().Model(&got).Where("user_id = ?", "usr_1").Scan(ctx))
	assert.Equal(t, pref.PreferredHeights, got.PreferredHeights)
	assert.Equal(t, pref.PreferredLifestyle, got.PreferredLifestyle)
	assert.Equal(t, pref.Values, got.Values)
}

func TestAccessAuditIsAppendOnly(t *testing.T) {
	// no updated_at and no TouchUpdated: audit rows are never rewritten
	var model interface{} = &AccessAudit{}
	_, ok := model.(repository.Timestamped)
	assert.False(t, ok)
	assert.False(t, (*AccessAudit)(nil).HasColumn("updated_at"))
}
