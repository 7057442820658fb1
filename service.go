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

package yeoni

import (
	"context"
	"sync"

	"github.com/uptrace/bun"

	"github.com/yeonilabs/yeoni/database"
	"github.com/yeonilabs/yeoni/repository"
	"github.com/yeonilabs/yeoni/types"
)

// Service is the entity-level facade over the generic repository, bound to
// the global database connections. Reads go to the replica pool when one is
// configured; every write goes to the primary.
type Service[T any] interface {
	// Get returns a single entity by its identifier, or (nil, nil) when
	// the id matches nothing.
	Get(ctx context.Context, id any) (*T, error)

	// List returns a page of entities ordered by the given column. Prefix
	// the column with "-" for descending order.
	List(ctx context.Context, window types.PageWindow, orderBy string) ([]*T, error)

	// Page returns a paginated list of entities.
	Page(ctx context.Context, page *types.PageRequest) (*types.Pagination[T], error)

	// Count returns the number of entities matching the filters.
	Count(ctx context.Context, filters repository.Filters) (int, error)

	// Exists reports whether any entity matches the filters.
	Exists(ctx context.Context, filters repository.Filters) (bool, error)

	// FindBy returns the first entity matching the filters, or (nil, nil).
	FindBy(ctx context.Context, filters repository.Filters) (*T, error)

	// FilterBy returns a page of entities matching the filters.
	FilterBy(ctx context.Context, window types.PageWindow, orderBy string, filters repository.Filters) ([]*T, error)

	// Query executes a raw query and maps the results to entities.
	Query(ctx context.Context, query string, args ...interface{}) ([]*T, error)

	// Save inserts a new entity.
	Save(ctx context.Context, entity *T) error

	// SaveAll inserts the entities in a single transaction.
	SaveAll(ctx context.Context, entities []*T) error

	// SaveOrUpdate upserts entities based on fields and duplicate keys.
	SaveOrUpdate(ctx context.Context, fields []string, duplicateKeys []string, entity ...*T) error

	// Update modifies the named fields of an existing entity and returns
	// the fresh row, or (nil, nil) when the id matches nothing.
	Update(ctx context.Context, id any, fields map[string]any) (*T, error)

	// UpdateAll applies per-row field maps keyed by idColumn and returns
	// the number of updated rows.
	UpdateAll(ctx context.Context, rows []map[string]any, idColumn string) (int, error)

	// Delete removes an entity by its identifier and reports whether a row
	// was actually deleted.
	Delete(ctx context.Context, id any) (bool, error)

	// SaveWithTx inserts entities within an existing transaction.
	SaveWithTx(ctx context.Context, tx *bun.Tx, entity ...*T) error

	// SaveOrUpdateWithTx upserts entities within a transaction.
	SaveOrUpdateWithTx(ctx context.Context, tx *bun.Tx, fields []string, duplicateKeys []string, entity ...*T) error

	// UpdateWithTx updates an entity within a transaction.
	UpdateWithTx(ctx context.Context, tx *bun.Tx, entity *T) error

	// DeleteWithTx removes an entity within a transaction.
	DeleteWithTx(ctx context.Context, tx *bun.Tx, id any) error

	// SelectBuilder returns a Bun select query builder on the read pool.
	SelectBuilder() *bun.SelectQuery

	// InsertBuilder returns a Bun insert query builder on the primary.
	InsertBuilder() *bun.InsertQuery

	// UpdateBuilder returns a Bun update query builder on the primary.
	UpdateBuilder() *bun.UpdateQuery

	// DeleteBuilder returns a Bun delete query builder on the primary.
	DeleteBuilder() *bun.DeleteQuery
}

type baseServiceImpl[T any] struct {
	readOnce  sync.Once
	writeOnce sync.Once
	readRepo  repository.Repository[T]
	writeRepo repository.Repository[T]
}

// NewService returns a Service implementation using the generic repository
// backed by the global database connections.
func NewService[T any]() Service[T] {
	return &baseServiceImpl[T]{}
}

func (s *baseServiceImpl[T]) reads() repository.Repository[T] {
	s.readOnce.Do(func() { s.readRepo = repository.NewRepository[T](database.GetReadDB()) })
	return s.readRepo
}

func (s *baseServiceImpl[T]) writes() repository.Repository[T] {
	s.writeOnce.Do(func() { s.writeRepo = repository.NewRepository[T](database.GetDB()) })
	return s.writeRepo
}

func (s *baseServiceImpl[T]) Get(ctx context.Context, id any) (*T, error) {
	return s.reads().Get(ctx, id)
}

func (s *baseServiceImpl[T]) List(ctx context.Context, window types.PageWindow, orderBy string) ([]*T, error) {
	return s.reads().List(ctx, window, orderBy)
}

func (s *baseServiceImpl[T]) Page(ctx context.Context, page *types.PageRequest) (*types.Pagination[T], error) {
	return s.reads().Page(ctx, page)
}

func (s *baseServiceImpl[T]) Count(ctx context.Context, filters repository.Filters) (int, error) {
	return s.reads().Count(ctx, filters)
}

func (s *baseServiceImpl[T]) Exists(ctx context.Context, filters repository.Filters) (bool, error) {
	return s.reads().Exists(ctx, filters)
}

func (s *baseServiceImpl[T]) FindBy(ctx context.Context, filters repository.Filters) (*T, error) {
	return s.reads().FindBy(ctx, filters)
}

func (s *baseServiceImpl[T]) FilterBy(ctx context.Context, window types.PageWindow, orderBy string, filters repository.Filters) ([]*T, error) {
	return s.reads().FilterBy(ctx, window, orderBy, filters)
}

func (s *baseServiceImpl[T]) Query(ctx context.Context, query string, args ...interface{}) ([]*T, error) {
	return s.reads().Query(ctx, query, args...)
}

func (s *baseServiceImpl[T]) Save(ctx context.Context, entity *T) error {
	return s.writes().Create(ctx, entity)
}

func (s *baseServiceImpl[T]) SaveAll(ctx context.Context, entities []*T) error {
	return s.writes().BulkCreate(ctx, entities)
}

func (s *baseServiceImpl[T]) SaveOrUpdate(ctx context.Context, fields []string, duplicateKeys []string, entity ...*T) error {
	return s.writes().Upsert(ctx, fields, duplicateKeys, entity...)
}

func (s *baseServiceImpl[T]) Update(ctx context.Context, id any, fields map[string]any) (*T, error) {
	return s.writes().Update(ctx, id, fields)
}

func (s *baseServiceImpl[T]) UpdateAll(ctx context.Context, rows []map[string]any, idColumn string) (int, error) {
	return s.writes().BulkUpdate(ctx, rows, idColumn)
}

func (s *baseServiceImpl[T]) Delete(ctx context.Context, id any) (bool, error) {
	return s.writes().Delete(ctx, id)
}

func (s *baseServiceImpl[T]) SaveWithTx(ctx context.Context, tx *bun.Tx, entity ...*T) error {
	return s.writes().CreateWithTx(ctx, tx, entity...)
}

func (s *baseServiceImpl[T]) SaveOrUpdateWithTx(ctx context.Context, tx *bun.Tx, fields []string, duplicateKeys []string, entity ...*T) error {
	return s.writes().UpsertWithTx(ctx, tx, fields, duplicateKeys, entity...)
}

func (s *baseServiceImpl[T]) UpdateWithTx(ctx context.Context, tx *bun.Tx, entity *T) error {
	return s.writes().UpdateWithTx(ctx, tx, entity)
}

func (s *baseServiceImpl[T]) DeleteWithTx(ctx context.Context, tx *bun.Tx, id any) error {
	return s.writes().DeleteWithTx(ctx, tx, id)
}

func (s *baseServiceImpl[T]) SelectBuilder() *bun.SelectQuery {
	return s.reads().NewSelect()
}

func (s *baseServiceImpl[T]) InsertBuilder() *bun.InsertQuery {
	return s.writes().NewInsert()
}

func (s *baseServiceImpl[T]) UpdateBuilder() *bun.UpdateQuery {
	return s.writes().NewUpdate()
}

func (s *baseServiceImpl[T]) DeleteBuilder() *bun.DeleteQuery {
	return s.writes().NewDelete()
}
