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

	"github.com/yeonilabs/yeoni/types"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

// CrudRepository defines the basic persistence operations for an entity type.
// Absence is a value, not an error: Get and Update return (nil, nil) when the
// id matches nothing, Delete reports the miss in its bool.
type CrudRepository[T any] interface {
	Get(ctx context.Context, id any) (*T, error)

	List(ctx context.Context, window types.PageWindow, orderBy string) ([]*T, error)

	Create(ctx context.Context, entity *T) error

	Update(ctx context.Context, id any, fields map[string]any) (*T, error)

	Delete(ctx context.Context, id any) (bool, error)
}

// FilterRepository defines equality-filtered lookups. Filter keys must name
// real columns; slice values expand to IN lists.
type FilterRepository[T any] interface {
	Count(ctx context.Context, filters Filters) (int, error)

	Exists(ctx context.Context, filters Filters) (bool, error)

	FindBy(ctx context.Context, filters Filters) (*T, error)

	FilterBy(ctx context.Context, window types.PageWindow, orderBy string, filters Filters) ([]*T, error)
}

// BulkRepository defines all-or-nothing batch writes.
type BulkRepository[T any] interface {
	BulkCreate(ctx context.Context, entities []*T) error

	BulkUpdate(ctx context.Context, rows []map[string]any, idColumn string) (int, error)
}

// TransactionRepository defines write operations executed on a caller-owned
// transaction, for services composing multi-entity writes.
type TransactionRepository[T any] interface {
	CreateWithTx(ctx context.Context, tx *bun.Tx, entity ...*T) error
	UpsertWithTx(ctx context.Context, tx *bun.Tx, fields []string, duplicateKeys []string, entity ...*T) error
	UpdateWithTx(ctx context.Context, tx *bun.Tx, entity *T) error
	DeleteWithTx(ctx context.Context, tx *bun.Tx, id any) error
}

// PageQueryRepository defines pagination functionality for listing entities.
type PageQueryRepository[T any] interface {
	Page(ctx context.Context, page *types.PageRequest) (*types.Pagination[T], error)
}

// Repository combines the CRUD, filter, bulk, pagination, and transactional
// operations and exposes Bun query builders for advanced use cases.
type Repository[T any] interface {
	CrudRepository[T]
	FilterRepository[T]
	BulkRepository[T]
	PageQueryRepository[T]
	TransactionRepository[T]

	Query(ctx context.Context, query string, args ...interface{}) ([]*T, error)

	Upsert(ctx context.Context, fields []string, duplicateKeys []string, entity ...*T) error

	Dialect() schema.Dialect
	NewSelect() *bun.SelectQuery
	NewInsert() *bun.InsertQuery
	NewUpdate() *bun.UpdateQuery
	NewDelete() *bun.DeleteQuery
}
