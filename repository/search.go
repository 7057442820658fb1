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
	"strings"
	"unicode/utf8"

	"github.com/uptrace/bun"
)

const (
	// ShortQueryThreshold is the rune count at or below which a query is
	// treated as a prefix-style lookup. One or two characters produce too
	// few trigrams for similarity to rank anything.
	ShortQueryThreshold = 2

	// SimilarityThreshold is the minimum pg_trgm similarity for a fuzzy match.
	SimilarityThreshold = 0.1
)

// Predicate is a composable query fragment. Apply attaches the fragment to
// the select without re-resolving field identity, so predicates from the
// search and filter builders combine on one query.
type Predicate interface {
	Apply(q *bun.SelectQuery) *bun.SelectQuery
}

type predicateFunc func(q *bun.SelectQuery) *bun.SelectQuery

func (f predicateFunc) Apply(q *bun.SelectQuery) *bun.SelectQuery { return f(q) }

// IsShortQuery reports whether the trimmed query is at or below the short
// threshold. Length is counted in runes so Hangul input is measured the same
// way as ASCII.
func IsShortQuery(query string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(query)) <= ShortQueryThreshold
}

// SearchCondition builds the WHERE fragment for a name search against the
// resolved field.
//
// An empty query yields a predicate matching no rows: an accidental empty
// search must never scan the whole table. Short queries match by
// case-insensitive substring only. Longer queries additionally accept
// trigram similarity above SimilarityThreshold when allowSimilarity is set;
// callers gate that on PostgreSQL with pg_trgm installed.
func SearchCondition(field FieldRef, query string, allowSimilarity bool) Predicate {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return predicateFunc(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("1 = 0")
		})
	}

	pattern := "%" + strings.ToLower(trimmed) + "%"
	if IsShortQuery(trimmed) || !allowSimilarity {
		return predicateFunc(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("LOWER(?.?) LIKE ?", bun.Ident(field.table), bun.Ident(field.column), pattern)
		})
	}

	return predicateFunc(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("LOWER(?.?) LIKE ?", bun.Ident(field.table), bun.Ident(field.column), pattern).
				WhereOr("similarity(?.?, ?) > ?", bun.Ident(field.table), bun.Ident(field.column), trimmed, SimilarityThreshold)
		})
	})
}

// SearchOrder builds the ORDER BY fragment matching SearchCondition: long
// similarity-backed queries rank best matches first, everything else falls
// back to lexical order on the field.
func SearchOrder(field FieldRef, query string, allowSimilarity bool) Predicate {
	trimmed := strings.TrimSpace(query)
	if trimmed != "" && !IsShortQuery(trimmed) && allowSimilarity {
		return predicateFunc(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("similarity(?.?, ?) DESC", bun.Ident(field.table), bun.Ident(field.column), trimmed)
		})
	}
	return predicateFunc(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?.? ASC", bun.Ident(field.table), bun.Ident(field.column))
	})
}
