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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/yeonilabs/yeoni/repository"
	"github.com/yeonilabs/yeoni/types"
)

func newTestService(t *testing.T) (*Service, *bun.DB) {
	t.Helper()
	db := newUserDB(t)
	return NewService(db), db
}

func TestCreateUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	agg, err := svc.CreateUser(ctx, CreateUserInput{
		Phone:       "010-5555-6666",
		NameKo:      "김수현",
		NameEn:      "kim suhyun",
		GenderLabel: "여",
		BirthYear:   1994,
	})
	require.NoError(t, err)
	require.NotNil(t, agg)
	require.NotNil(t, agg.User)

	assert.True(t, HasIDPrefix(agg.User.ID, "usr_"), agg.User.ID)
	assert.Equal(t, "01055556666", agg.User.Phone)
	assert.Equal(t, StatusDraft, agg.User.Status)
	assert.Equal(t, GenderFemale, agg.User.Gender)
	assert.Equal(t, AuthPhone, agg.User.AuthType)
	assert.Equal(t, 1994, agg.User.BirthYear)
}

func TestCreateUserRejectsDuplicatePhone(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserInput{Phone: "01055556666"})
	require.NoError(t, err)

	// the same number in any formatting is the same account
	_, err = svc.CreateUser(ctx, CreateUserInput{Phone: "010-5555-6666"})
	assert.ErrorIs(t, err, ErrPhoneTaken)

	_, err = svc.CreateUser(ctx, CreateUserInput{Phone: "  "})
	assert.ErrorIs(t, err, ErrPhoneRequired)
}

func TestGetUserNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetUser(context.Background(), "usr_missing")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.GetUserFull(context.Background(), "usr_missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	agg, err := svc.CreateUser(ctx, CreateUserInput{Phone: "01077778888", NameKo: "김수현"})
	require.NoError(t, err)
	id := agg.User.ID

	name := "김수진"
	updated, err := svc.UpdateUser(ctx, id, UpdateUserInput{NameKo: &name, Status: StatusActive})
	require.NoError(t, err)
	assert.Equal(t, "김수진", updated.User.NameKo)
	assert.Equal(t, StatusActive, updated.User.Status)

	// empty input reads the account back unchanged
	same, err := svc.UpdateUser(ctx, id, UpdateUserInput{})
	require.NoError(t, err)
	assert.Equal(t, "김수진", same.User.NameKo)

	_, err = svc.UpdateUser(ctx, "usr_missing", UpdateUserInput{NameKo: &name})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUserLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	agg, err := svc.CreateUser(ctx, CreateUserInput{Phone: "01099990000"})
	require.NoError(t, err)
	id := agg.User.ID

	deleted, err := svc.DeleteUser(ctx, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = svc.GetUser(ctx, id)
	assert.ErrorIs(t, err, ErrUserNotFound)

	deleted, err = svc.DeleteUser(ctx, id)
	require.NoError(t, err)
	assert.False(t, deleted)

	// the freed number can register a new account
	_, err = svc.CreateUser(ctx, CreateUserInput{Phone: "01099990000"})
	assert.NoError(t, err)
}

func TestListUsers(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	var removed string
	for _, phone := range []string{"01000000001", "01000000002", "01000000003"} {
		agg, err := svc.CreateUser(ctx, CreateUserInput{Phone: phone})
		require.NoError(t, err)
		removed = agg.User.ID
	}
	_, err := svc.DeleteUser(ctx, removed)
	require.NoError(t, err)

	page := svc.ListUsers(ctx, types.PageWindow{})
	require.NotNil(t, page)
	assert.Equal(t, 2, page.Total)
	assert.Len(t, page.Users, 2)
	assert.Equal(t, 0, page.Skip)
	assert.Equal(t, types.DefaultPageLimit, page.Limit)
	for _, u := range page.Users {
		assert.NotEqual(t, removed, u.ID)
	}

	window := types.PageWindow{Skip: 1, Limit: 1}
	page = svc.ListUsers(ctx, window)
	assert.Equal(t, 2, page.Total)
	assert.Len(t, page.Users, 1)
}

func TestListUsersDegradesToEmptyPage(t *testing.T) {
	svc, db := newTestService(t)
	require.NoError(t, db.Close())

	page := svc.ListUsers(context.Background(), types.PageWindow{})
	require.NotNil(t, page)
	assert.Zero(t, page.Total)
	assert.Empty(t, page.Users)
}

func seedSearchUsers(t *testing.T, db *bun.DB) map[string]*User {
	t.Helper()
	repo := NewRepository(db)
	ctx := context.Background()

	users := map[string]*User{
		"sujin":  {Phone: "01000000011", NameKo: "김수진", NameEn: "kim sujin", Status: StatusActive},
		"suhyun": {Phone: "01000000012", NameKo: "김수현", NameEn: "kim suhyun", Status: StatusActive},
		"draft":  {Phone: "01000000013", NameKo: "김수민", NameEn: "kim sumin", Status: StatusDraft},
		"admin":  {Phone: "01000000014", NameKo: "김수영", NameEn: "kim suyoung", Status: StatusActive, IsAdmin: true},
		"gone":   {Phone: "01000000015", NameKo: "김수정", NameEn: "kim sujeong", Status: StatusActive},
	}
	for _, u := range users {
		require.NoError(t, repo.Create(ctx, u))
	}
	_, err := repo.SoftDelete(ctx, users["gone"].ID)
	require.NoError(t, err)
	return users
}

func TestSearchUsersByName(t *testing.T) {
	svc, db := newTestService(t)
	users := seedSearchUsers(t, db)
	ctx := context.Background()

	// only active, non-admin, live accounts match
	got, err := svc.SearchUsersByName(ctx, SearchQuery{Query: "김수", Locale: types.LocaleKo})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "김수진", got[0].NameKo)
	assert.Equal(t, "김수현", got[1].NameKo)

	got, err = svc.SearchUsersByName(ctx, SearchQuery{
		Query:     "김수",
		Locale:    types.LocaleKo,
		ExcludeID: users["sujin"].ID,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "김수현", got[0].NameKo)

	// an empty query matches nobody
	got, err = svc.SearchUsersByName(ctx, SearchQuery{Query: "  ", Locale: types.LocaleKo})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchUsersByNameEnglishLocale(t *testing.T) {
	svc, db := newTestService(t)
	seedSearchUsers(t, db)

	// matching folds case on the latin column
	got, err := svc.SearchUsersByName(context.Background(), SearchQuery{Query: "KIM S", Locale: types.LocaleEn})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "kim suhyun", got[0].NameEn)
	assert.Equal(t, "kim sujin", got[1].NameEn)
}

func TestSearchUsersByNameUnknownLocale(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SearchUsersByName(context.Background(), SearchQuery{Query: "김수", Locale: types.Locale(99)})
	require.Error(t, err)
	var confErr *repository.ConfigurationError
	assert.True(t, errors.As(err, &confErr))
}

func TestVisiblePhotos(t *testing.T) {
	svc, db := newTestService(t)
	repo := NewRepository(db)
	ctx := context.Background()

	member := &User{Phone: "01000000021", Status: StatusActive}
	require.NoError(t, repo.Create(ctx, member))
	admin := &User{Phone: "01000000022", Status: StatusActive, IsAdmin: true}
	require.NoError(t, repo.Create(ctx, admin))
	leaver := &User{Phone: "01000000023", Status: StatusActive}
	require.NoError(t, repo.Create(ctx, leaver))

	second := &Photo{UserID: member.ID, ObjectKey: "photos/2.jpg", IsVisible: true, DisplayOrder: 2}
	mustInsert(t, db, second)
	first := &Photo{UserID: member.ID, ObjectKey: "photos/1.jpg", IsVisible: true, DisplayOrder: 1}
	mustInsert(t, db, first)
	mustInsert(t, db, &Photo{UserID: member.ID, ObjectKey: "photos/hidden.jpg", IsVisible: false})
	mustInsert(t, db, &Photo{UserID: member.ID, ObjectKey: "photos/gone.jpg", IsVisible: true, DeletedAt: time.Now()})
	mustInsert(t, db, &Photo{UserID: admin.ID, ObjectKey: "photos/admin.jpg", IsVisible: true})
	mustInsert(t, db, &Photo{UserID: leaver.ID, ObjectKey: "photos/leaver.jpg", IsVisible: true})
	_, err := repo.SoftDelete(ctx, leaver.ID)
	require.NoError(t, err)

	photos, err := svc.VisiblePhotos(ctx, types.PageWindow{})
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, first.ID, photos[0].ID)
	assert.Equal(t, second.ID, photos[1].ID)

	photos, err = svc.VisiblePhotos(ctx, types.PageWindow{Skip: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, second.ID, photos[0].ID)
}

func TestUpsertSubscription(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	agg, err := svc.CreateUser(ctx, CreateUserInput{Phone: "01000000031"})
	require.NoError(t, err)
	userID := agg.User.ID

	require.NoError(t, svc.UpsertSubscription(ctx, &Subscription{
		UserID:         userID,
		MembershipType: "standard",
		PaymentAmount:  1000000,
	}))

	var stored Subscription
	require.NoError(t, db.NewSelect().Model(&stored).Where("user_id = ?", userID).Scan(ctx))
	firstID := stored.ID
	assert.Equal(t, "standard", stored.MembershipType)

	require.NoError(t, svc.UpsertSubscription(ctx, &Subscription{
		UserID:         userID,
		MembershipType: "premium",
		PaymentAmount:  2000000,
		Notes:          "upgraded after consult",
	}))

	count, err := repository.NewRepository[Subscription](db).Count(ctx, repository.Filters{"user_id": userID})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	stored = Subscription{}
	require.NoError(t, db.NewSelect().Model(&stored).Where("user_id = ?", userID).Scan(ctx))
	assert.Equal(t, firstID, stored.ID)
	assert.Equal(t, "premium", stored.MembershipType)
	assert.Equal(t, int64(2000000), stored.PaymentAmount)
	assert.Equal(t, "upgraded after consult", stored.Notes)

	assert.Error(t, svc.UpsertSubscription(ctx, &Subscription{MembershipType: "standard"}))
	assert.Error(t, svc.UpsertSubscription(ctx, nil))
}

func TestServiceLogAccess(t *testing.T) {
	svc, _ := newTestService(t)

	audit, err := svc.LogAccess(context.Background(), AccessEntry{
		AccessorID:   "usr_admin",
		AccessorType: AccessorAdmin,
		TargetUserID: "usr_member",
		ResourceType: ResourceProfile,
		Action:       ActionView,
	})
	require.NoError(t, err)
	require.NotNil(t, audit)
	assert.True(t, HasIDPrefix(audit.ID, "aud_"), audit.ID)
}
