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
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yeonilabs/yeoni/database"
	"github.com/yeonilabs/yeoni/types"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/feature"
	"github.com/uptrace/bun/schema"
)

// updatedAtColumn is the column stamped on models implementing Timestamped.
const updatedAtColumn = "updated_at"

type baseRepositoryImpl[T any] struct {
	db          *bun.DB
	desc        Descriptor
	timestamped bool
}

// NewRepository returns a generic repository backed by the provided Bun DB.
// The model should implement Descriptor; operations that validate columns or
// need the primary key fail with a descriptive error when it does not.
func NewRepository[T any](db *bun.DB) Repository[T] {
	var zero T
	desc, _ := any(&zero).(Descriptor)
	_, timestamped := any(&zero).(Timestamped)
	return &baseRepositoryImpl[T]{db: db, desc: desc, timestamped: timestamped}
}

func (r *baseRepositoryImpl[T]) describe() (Descriptor, error) {
	if r.desc == nil {
		var zero T
		return nil, fmt.Errorf("model %T does not implement repository.Descriptor", &zero)
	}
	return r.desc, nil
}

func (r *baseRepositoryImpl[T]) Dialect() schema.Dialect { return r.db.Dialect() }

func (r *baseRepositoryImpl[T]) NewSelect() *bun.SelectQuery { return r.db.NewSelect() }

func (r *baseRepositoryImpl[T]) NewInsert() *bun.InsertQuery { return r.db.NewInsert() }

func (r *baseRepositoryImpl[T]) NewUpdate() *bun.UpdateQuery { return r.db.NewUpdate() }

func (r *baseRepositoryImpl[T]) NewDelete() *bun.DeleteQuery { return r.db.NewDelete() }

func (r *baseRepositoryImpl[T]) ValsToSlice(entity ...*T) []*T {
	entities := make([]*T, len(entity))
	copy(entities, entity)
	return entities
}

func (r *baseRepositoryImpl[T]) getByID(ctx context.Context, idb bun.IDB, desc Descriptor, id any) (*T, error) {
	entity := new(T)
	err := idb.NewSelect().Model(entity).
		Where("? = ?", bun.Ident(desc.PKColumn()), id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// Get loads the entity by primary key. A missing row is (nil, nil); an error
// always means the lookup itself failed.
func (r *baseRepositoryImpl[T]) Get(ctx context.Context, id any) (*T, error) {
	desc, err := r.describe()
	if err != nil {
		return nil, err
	}
	return r.getByID(ctx, r.db, desc, id)
}

// List returns one page of entities. The orderBy column may carry a "-"
// prefix for descending order; a name the model does not define is dropped
// rather than failing a listing over a caller-supplied sort key. The primary
// key is always appended as a tie-break so equal sort values page stably.
func (r *baseRepositoryImpl[T]) List(ctx context.Context, window types.PageWindow, orderBy string) ([]*T, error) {
	desc, err := r.describe()
	if err != nil {
		return nil, err
	}
	window = window.Normalize()

	var entities []*T
	q := r.db.NewSelect().Model(&entities)
	q = applyOrder(q, desc, orderBy)
	err = q.Offset(window.Skip).Limit(window.Limit).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return entities, nil
}

func applyOrder(q *bun.SelectQuery, desc Descriptor, orderBy string) *bun.SelectQuery {
	table := desc.TableName()
	column := strings.TrimSpace(orderBy)
	direction := "ASC"
	if strings.HasPrefix(column, "-") {
		column = column[1:]
		direction = "DESC"
	}
	ordered := ""
	if column != "" && desc.HasColumn(column) {
		q = q.OrderExpr("?.? ?", bun.Ident(table), bun.Ident(column), bun.Safe(direction))
		ordered = column
	}
	if ordered != desc.PKColumn() {
		q = q.OrderExpr("?.? ASC", bun.Ident(table), bun.Ident(desc.PKColumn()))
	}
	return q
}

// Create inserts the entity in its own transaction. Constraint conflicts
// come back as *database.IntegrityError after the transaction rolled back.
func (r *baseRepositoryImpl[T]) Create(ctx context.Context, entity *T) error {
	err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(entity).Exec(ctx)
		return err
	})
	return database.WrapWriteError(err)
}

// Update applies the given column values to the row with this id and returns
// the refreshed entity, or (nil, nil) when the id matches nothing. Column
// names are validated up front: an unknown name or the primary key is a
// ConfigurationError before any SQL runs. Models implementing Timestamped
// get updated_at stamped alongside the listed fields.
func (r *baseRepositoryImpl[T]) Update(ctx context.Context, id any, fields map[string]any) (*T, error) {
	desc, err := r.describe()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		if !desc.HasColumn(key) {
			return nil, newUnknownColumnError(desc, key)
		}
		if key == desc.PKColumn() {
			return nil, &ConfigurationError{
				Table:  desc.TableName(),
				Column: key,
				Reason: "primary key cannot be updated",
			}
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	if len(keys) == 0 {
		return r.Get(ctx, id)
	}

	var updated *T
	err = r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		current, err := r.getByID(ctx, tx, desc, id)
		if err != nil {
			return err
		}
		if current == nil {
			return nil
		}

		uq := tx.NewUpdate().Model((*T)(nil))
		for _, key := range keys {
			uq = uq.Set("? = ?", bun.Ident(key), fields[key])
		}
		if r.timestamped && desc.HasColumn(updatedAtColumn) {
			if _, explicit := fields[updatedAtColumn]; !explicit {
				uq = uq.Set("? = ?", bun.Ident(updatedAtColumn), time.Now())
			}
		}
		if _, err := uq.Where("? = ?", bun.Ident(desc.PKColumn()), id).Exec(ctx); err != nil {
			return err
		}

		updated, err = r.getByID(ctx, tx, desc, id)
		return err
	})
	if err != nil {
		return nil, database.WrapWriteError(err)
	}
	return updated, nil
}

// Delete removes the row by primary key and reports whether a row matched.
func (r *baseRepositoryImpl[T]) Delete(ctx context.Context, id any) (bool, error) {
	desc, err := r.describe()
	if err != nil {
		return false, err
	}
	var deleted bool
	err = r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var entity T
		res, err := tx.NewDelete().Model(&entity).
			Where("? = ?", bun.Ident(desc.PKColumn()), id).
			Exec(ctx)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		deleted = affected > 0
		return nil
	})
	if err != nil {
		return false, database.WrapWriteError(err)
	}
	return deleted, nil
}

// Count returns the number of rows matching the filters.
func (r *baseRepositoryImpl[T]) Count(ctx context.Context, filters Filters) (int, error) {
	desc, err := r.describe()
	if err != nil {
		return 0, err
	}
	var entity T
	q, err := applyFilters(r.db.NewSelect().Model(&entity), desc, filters)
	if err != nil {
		return 0, err
	}
	return q.Count(ctx)
}

// Exists reports whether any row matches the filters.
func (r *baseRepositoryImpl[T]) Exists(ctx context.Context, filters Filters) (bool, error) {
	desc, err := r.describe()
	if err != nil {
		return false, err
	}
	var entity T
	q, err := applyFilters(r.db.NewSelect().Model(&entity), desc, filters)
	if err != nil {
		return false, err
	}
	return q.Exists(ctx)
}

// FindBy returns the first row matching the filters, or (nil, nil) when
// nothing matches.
func (r *baseRepositoryImpl[T]) FindBy(ctx context.Context, filters Filters) (*T, error) {
	desc, err := r.describe()
	if err != nil {
		return nil, err
	}
	entity := new(T)
	q, err := applyFilters(r.db.NewSelect().Model(entity), desc, filters)
	if err != nil {
		return nil, err
	}
	err = q.Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// FilterBy returns one page of rows matching the filters, ordered like List.
func (r *baseRepositoryImpl[T]) FilterBy(ctx context.Context, window types.PageWindow, orderBy string, filters Filters) ([]*T, error) {
	desc, err := r.describe()
	if err != nil {
		return nil, err
	}
	window = window.Normalize()

	var entities []*T
	q, err := applyFilters(r.db.NewSelect().Model(&entities), desc, filters)
	if err != nil {
		return nil, err
	}
	q = applyOrder(q, desc, orderBy)
	err = q.Offset(window.Skip).Limit(window.Limit).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return entities, nil
}

// BulkCreate inserts the batch in one transaction; any failure rolls back
// every row and surfaces a classified write error.
func (r *baseRepositoryImpl[T]) BulkCreate(ctx context.Context, entities []*T) error {
	if len(entities) == 0 {
		return nil
	}
	err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&entities).Exec(ctx)
		return err
	})
	return database.WrapWriteError(err)
}

// BulkUpdate applies each row's column values to the record whose idColumn
// matches, all in one transaction, and returns the total number of affected
// rows. Every row gets the same updated_at stamp when the model supports it.
func (r *baseRepositoryImpl[T]) BulkUpdate(ctx context.Context, rows []map[string]any, idColumn string) (int, error) {
	desc, err := r.describe()
	if err != nil {
		return 0, err
	}
	if !desc.HasColumn(idColumn) {
		return 0, newUnknownColumnError(desc, idColumn)
	}
	for i, row := range rows {
		if _, ok := row[idColumn]; !ok {
			return 0, fmt.Errorf("bulk update row %d is missing the %q column", i, idColumn)
		}
		for key := range row {
			if !desc.HasColumn(key) {
				return 0, newUnknownColumnError(desc, key)
			}
		}
	}
	if len(rows) == 0 {
		return 0, nil
	}

	now := time.Now()
	stamp := r.timestamped && desc.HasColumn(updatedAtColumn)

	var affected int64
	err = r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for _, row := range rows {
			keys := make([]string, 0, len(row))
			for key := range row {
				if key != idColumn {
					keys = append(keys, key)
				}
			}
			sort.Strings(keys)

			uq := tx.NewUpdate().Model((*T)(nil))
			for _, key := range keys {
				uq = uq.Set("? = ?", bun.Ident(key), row[key])
			}
			if stamp {
				if _, explicit := row[updatedAtColumn]; !explicit {
					uq = uq.Set("? = ?", bun.Ident(updatedAtColumn), now)
				}
			}
			res, err := uq.Where("? = ?", bun.Ident(idColumn), row[idColumn]).Exec(ctx)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			affected += n
		}
		return nil
	})
	if err != nil {
		return 0, database.WrapWriteError(err)
	}
	return int(affected), nil
}

// Query lists entities matching a raw WHERE fragment.
func (r *baseRepositoryImpl[T]) Query(ctx context.Context, query string, args ...interface{}) ([]*T, error) {
	var entities []*T
	err := r.db.NewSelect().Model(&entities).Where(query, args...).Scan(ctx)
	return entities, err
}

// Page runs a filtered, counted page query.
func (r *baseRepositoryImpl[T]) Page(ctx context.Context, pageRequest *types.PageRequest) (*types.Pagination[T], error) {
	var entities []*T
	query := r.db.NewSelect().Model(&entities)
	if pageRequest.GetFilter() != nil {
		query = query.Where(pageRequest.GetFilter().Schema, pageRequest.GetFilter().Args...)
	}
	pagination := types.NewDefaultPagination[T](pageRequest.GetPage(), pageRequest.GetPageSize())
	total, err := query.Count(ctx)
	if err != nil || total == 0 {
		return pagination, err
	}
	err = query.
		Offset(pageRequest.GetOffset()).
		Limit(pageRequest.GetPageSize()).
		Order(pageRequest.GetOrders()...).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	pagination.Total = total
	pagination.Items = entities
	return pagination, nil
}

func (r *baseRepositoryImpl[T]) Upsert(ctx context.Context, fields []string, duplicateKeys []string, entity ...*T) error {
	return r.multipleUpsert(ctx, nil, fields, duplicateKeys, entity...)
}

func (r *baseRepositoryImpl[T]) CreateWithTx(ctx context.Context, tx *bun.Tx, entity ...*T) error {
	entities := r.ValsToSlice(entity...)
	_, err := tx.NewInsert().Model(&entities).Exec(ctx)
	return database.WrapWriteError(err)
}

func (r *baseRepositoryImpl[T]) UpsertWithTx(ctx context.Context, tx *bun.Tx, fields []string, duplicateKeys []string, entity ...*T) error {
	return r.multipleUpsert(ctx, tx, fields, duplicateKeys, entity...)
}

func (r *baseRepositoryImpl[T]) UpdateWithTx(ctx context.Context, tx *bun.Tx, entity *T) error {
	if ts, ok := any(entity).(Timestamped); ok {
		ts.TouchUpdated(time.Now())
	}
	_, err := tx.NewUpdate().Model(entity).WherePK().Exec(ctx)
	return database.WrapWriteError(err)
}

func (r *baseRepositoryImpl[T]) DeleteWithTx(ctx context.Context, tx *bun.Tx, id any) error {
	desc, err := r.describe()
	if err != nil {
		return err
	}
	var entity T
	_, err = tx.NewDelete().Model(&entity).
		Where("? = ?", bun.Ident(desc.PKColumn()), id).
		Exec(ctx)
	return database.WrapWriteError(err)
}

func (r *baseRepositoryImpl[T]) multipleUpsert(ctx context.Context, tx *bun.Tx, fields []string, duplicateKeys []string, entity ...*T) error {
	if len(fields) == 0 {
		return fmt.Errorf("fields cannot be empty")
	}

	// If transaction is not nil, use it to execute insert/update
	var insertQuery *bun.InsertQuery
	if tx != nil {
		insertQuery = tx.NewInsert()
	} else {
		insertQuery = r.db.NewInsert()
	}

	entities := r.ValsToSlice(entity...)

	if r.db.HasFeature(feature.InsertOnConflict) {
		return r.upsertWithPostgresqlOrSQLite(ctx, insertQuery, fields, duplicateKeys, entities)
	} else if r.db.HasFeature(feature.InsertOnDuplicateKey) {
		return r.upsertWithMySQL(ctx, insertQuery, fields, entities)
	} else {
		// Fallback: Separate insert/update logic
		return r.upsertFallback(ctx, entities)
	}
}

func (r *baseRepositoryImpl[T]) upsertWithMySQL(ctx context.Context, insertQuery *bun.InsertQuery, fields []string, entities []*T) error {
	var queryArgs []string
	for _, field := range fields {
		queryArgs = append(queryArgs, fmt.Sprintf("%s = VALUES(%s)", bun.Ident(field), bun.Ident(field)))
	}
	_, err := insertQuery.
		Model(&entities).
		On("DUPLICATE KEY UPDATE " + strings.Join(queryArgs, ", ")).
		Exec(ctx)
	return database.WrapWriteError(err)
}

func (r *baseRepositoryImpl[T]) upsertWithPostgresqlOrSQLite(ctx context.Context, insertQuery *bun.InsertQuery, fields []string, duplicateKeys []string, entities []*T) error {
	if len(duplicateKeys) == 0 {
		duplicateKeys = []string{"id"}
	}
	keyNames := strings.Join(duplicateKeys, ",")
	var queryArgs []string
	for _, field := range fields {
		queryArgs = append(queryArgs, fmt.Sprintf("%s = EXCLUDED.%s", bun.Ident(field), bun.Ident(field)))
	}
	_, err := insertQuery.
		Model(&entities).
		On("CONFLICT (" + keyNames + ") DO UPDATE").
		Set(strings.Join(queryArgs, ", ")).
		Exec(ctx)
	return database.WrapWriteError(err)
}

func (r *baseRepositoryImpl[T]) upsertFallback(ctx context.Context, entities []*T) error {
	for _, entity := range entities {
		_, err := r.db.NewInsert().Model(entity).Exec(ctx)
		if err != nil {
			_, updateErr := r.db.NewUpdate().Model(entity).WherePK().Exec(ctx)
			if updateErr != nil {
				return fmt.Errorf("upsert failed for entity: insert error: %v, update error: %v", err, updateErr)
			}
		}
	}
	return nil
}
