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
	"reflect"
	"sort"

	"github.com/uptrace/bun"
)

// Filters maps column names to required values for the repository's query
// operations. Scalar values compare with equality, slices become IN lists,
// and an explicit nil matches IS NULL. Unknown columns are rejected with a
// ConfigurationError before any SQL runs.
type Filters map[string]any

// sortedKeys returns filter keys in a stable order so rendered SQL is
// deterministic regardless of map iteration.
func (f Filters) sortedKeys() []string {
	keys := make([]string, 0, len(f))
	for key := range f {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func applyFilters(q *bun.SelectQuery, model Descriptor, filters Filters) (*bun.SelectQuery, error) {
	table := model.TableName()
	for _, key := range filters.sortedKeys() {
		if !model.HasColumn(key) {
			return nil, newUnknownColumnError(model, key)
		}
		value := filters[key]
		if value == nil {
			q = q.Where("?.? IS NULL", bun.Ident(table), bun.Ident(key))
			continue
		}
		rv := reflect.ValueOf(value)
		if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type() != reflect.TypeOf([]byte(nil)) {
			q = q.Where("?.? IN (?)", bun.Ident(table), bun.Ident(key), bun.In(value))
			continue
		}
		q = q.Where("?.? = ?", bun.Ident(table), bun.Ident(key), value)
	}
	return q, nil
}

// VisibilityFilter restricts a query over a user-owned model to rows whose
// owner is a regular account and whose visibility flag is set. It joins the
// users table on the model's user_id column.
//
// A filter value applies its join at most once, so stacking it with other
// predicates that also request visibility cannot duplicate the join or its
// conditions. Build a fresh value per query; the join tracking belongs to
// one query build.
type VisibilityFilter struct {
	model   Descriptor
	applied bool
}

// NewVisibilityFilter builds a visibility filter for a model exposing
// user_id and is_visible columns.
func NewVisibilityFilter(model Descriptor) *VisibilityFilter {
	return &VisibilityFilter{model: model}
}

func (f *VisibilityFilter) Apply(q *bun.SelectQuery) *bun.SelectQuery {
	if f.applied {
		return q
	}
	f.applied = true
	table := f.model.TableName()
	return q.
		Join("JOIN users ON users.id = ?.?", bun.Ident(table), bun.Ident("user_id")).
		Where("users.is_admin = ?", false).
		Where("?.? = ?", bun.Ident(table), bun.Ident("is_visible"), true)
}

// ExcludeIDFilter drops the row with the given primary key, typically the
// requesting user's own row. An empty id makes the filter a no-op; the query
// is returned unchanged.
func ExcludeIDFilter(model Descriptor, id string) Predicate {
	return predicateFunc(func(q *bun.SelectQuery) *bun.SelectQuery {
		if id == "" {
			return q
		}
		return q.Where("?.? <> ?", bun.Ident(model.TableName()), bun.Ident(model.PKColumn()), id)
	})
}

// NotNullNotEmpty requires the referenced column to hold a non-null,
// non-empty value.
func NotNullNotEmpty(field FieldRef) Predicate {
	return predicateFunc(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Where("?.? IS NOT NULL", bun.Ident(field.table), bun.Ident(field.column)).
			Where("?.? <> ''", bun.Ident(field.table), bun.Ident(field.column))
	})
}
