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

package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"github.com/yeonilabs/yeoni/types"
)

// newRenderDB returns a bun.DB over sqlmock with the PostgreSQL dialect,
// used purely to render queries to SQL text. Nothing is ever executed on it.
func newRenderDB(t *testing.T) *bun.DB {
	t.Helper()
	sqldb, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqldb.Close() })
	return bun.NewDB(sqldb, pgdialect.New())
}

func nameKoField(t *testing.T) FieldRef {
	t.Helper()
	ref, err := SelectLocaleField((*profileRow)(nil), "name", types.LocaleKo)
	require.NoError(t, err)
	return ref
}

func renderSelect(db *bun.DB, preds ...Predicate) string {
	q := db.NewSelect().Model((*profileRow)(nil))
	for _, p := range preds {
		q = p.Apply(q)
	}
	return q.String()
}

func TestIsShortQuery(t *testing.T) {
	assert.True(t, IsShortQuery(""))
	assert.True(t, IsShortQuery("   "))
	assert.True(t, IsShortQuery("김"))
	assert.True(t, IsShortQuery("김수"))
	assert.True(t, IsShortQuery("  ab  "))
	assert.False(t, IsShortQuery("김수현"))
	assert.False(t, IsShortQuery("abc"))
}

func TestSearchConditionEmptyMatchesNothing(t *testing.T) {
	db := newRenderDB(t)
	field := nameKoField(t)

	for _, query := range []string{"", "   ", "\t\n"} {
		sql := renderSelect(db, SearchCondition(field, query, true))
		assert.Contains(t, sql, "WHERE (1 = 0)")
		assert.NotContains(t, sql, "LIKE")
	}
}

func TestSearchConditionShortQuery(t *testing.T) {
	db := newRenderDB(t)
	field := nameKoField(t)

	sql := renderSelect(db, SearchCondition(field, "김수", true))
	assert.Contains(t, sql, `LOWER("profiles"."name_ko") LIKE '%김수%'`)
	assert.NotContains(t, sql, "similarity", "two runes never reach the trigram branch")
}

func TestSearchConditionLongQueryAddsSimilarity(t *testing.T) {
	db := newRenderDB(t)
	field := nameKoField(t)

	sql := renderSelect(db, SearchCondition(field, "김수현", true))
	assert.Contains(t, sql, `LOWER("profiles"."name_ko") LIKE '%김수현%'`)
	assert.Contains(t, sql, `similarity("profiles"."name_ko", '김수현') > 0.1`)
	assert.Contains(t, sql, ") OR (", "substring and similarity are alternatives, not both required")
}

func TestSearchConditionSimilarityDisabled(t *testing.T) {
	db := newRenderDB(t)
	field := nameKoField(t)

	sql := renderSelect(db, SearchCondition(field, "김수현", false))
	assert.Contains(t, sql, `LOWER("profiles"."name_ko") LIKE '%김수현%'`)
	assert.NotContains(t, sql, "similarity")
}

func TestSearchConditionFoldsCase(t *testing.T) {
	db := newRenderDB(t)
	field := nameKoField(t)

	sql := renderSelect(db, SearchCondition(field, "KimSuHyun", false))
	assert.Contains(t, sql, `LIKE '%kimsuhyun%'`)
}

func TestSearchOrder(t *testing.T) {
	db := newRenderDB(t)
	field := nameKoField(t)

	ranked := renderSelect(db, SearchOrder(field, "김수현", true))
	assert.Contains(t, ranked, `ORDER BY similarity("profiles"."name_ko", '김수현') DESC`)

	lexical := renderSelect(db, SearchOrder(field, "김수", true))
	assert.Contains(t, lexical, `ORDER BY "profiles"."name_ko" ASC`)

	noTrgm := renderSelect(db, SearchOrder(field, "김수현", false))
	assert.Contains(t, noTrgm, `ORDER BY "profiles"."name_ko" ASC`)
	assert.NotContains(t, noTrgm, "similarity")
}

func TestSearchConditionMatchesRows(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository[profileRow](db)
	ctx := context.Background()

	require.NoError(t, repo.BulkCreate(ctx, []*profileRow{
		{ID: "pro_1", NameKo: "김수현", NameEn: "Kim Suhyun"},
		{ID: "pro_2", NameKo: "김수진", NameEn: "Kim Sujin"},
		{ID: "pro_3", NameKo: "박민수", NameEn: "Park Minsu"},
	}))

	field := nameKoField(t)

	var rows []*profileRow
	q := db.NewSelect().Model(&rows)
	q = SearchCondition(field, "김수", false).Apply(q)
	q = SearchOrder(field, "김수", false).Apply(q)
	require.NoError(t, q.Scan(ctx))

	require.Len(t, rows, 2)
	assert.Equal(t, "김수진", rows[0].NameKo)
	assert.Equal(t, "김수현", rows[1].NameKo)

	// substring matching ignores ASCII case
	enField, err := SelectLocaleField((*profileRow)(nil), "name", types.LocaleEn)
	require.NoError(t, err)

	rows = nil
	q = db.NewSelect().Model(&rows)
	q = SearchCondition(enField, "kim s", false).Apply(q)
	require.NoError(t, q.Scan(ctx))
	assert.Len(t, rows, 2)

	// an empty query matches nothing at all
	rows = nil
	q = db.NewSelect().Model(&rows)
	q = SearchCondition(field, " ", false).Apply(q)
	require.NoError(t, q.Scan(ctx))
	assert.Empty(t, rows)

	if n := strings.Count(q.String(), "1 = 0"); n != 1 {
		t.Fatalf("expected exactly one unsatisfiable clause, got %d in %s", n, q.String())
	}
}
