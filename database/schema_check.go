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

package database

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// SchemaDrift describes how a live table differs from its registered model.
type SchemaDrift struct {
	Table          string
	MissingTable   bool
	MissingColumns []string // declared on the model, absent in the database
	ExtraColumns   []string // present in the database, unknown to the model
}

func (d SchemaDrift) String() string {
	if d.MissingTable {
		return fmt.Sprintf("table %s does not exist", d.Table)
	}
	parts := make([]string, 0, 2)
	if len(d.MissingColumns) > 0 {
		parts = append(parts, "missing columns: "+strings.Join(d.MissingColumns, ", "))
	}
	if len(d.ExtraColumns) > 0 {
		parts = append(parts, "extra columns: "+strings.Join(d.ExtraColumns, ", "))
	}
	return fmt.Sprintf("table %s: %s", d.Table, strings.Join(parts, "; "))
}

// CheckSchemaDrift compares every registered model against the live schema
// and returns the differences. It never modifies the database; migrations own
// all DDL, drift detection only surfaces what they have not yet applied.
func CheckSchemaDrift(ctx context.Context, db *bun.DB) ([]SchemaDrift, error) {
	if db == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	var drifts []SchemaDrift
	for _, model := range RegisteredModelInstances() {
		typ := reflect.TypeOf(model)
		if typ.Kind() == reflect.Ptr {
			typ = typ.Elem()
		}
		table := db.Table(typ)

		expected := make(map[string]struct{}, len(table.Fields))
		for _, field := range table.Fields {
			expected[strings.ToLower(field.Name)] = struct{}{}
		}

		actual, err := listTableColumns(ctx, db, table.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to inspect table %s: %w", table.Name, err)
		}

		if len(actual) == 0 {
			drifts = append(drifts, SchemaDrift{Table: table.Name, MissingTable: true})
			continue
		}

		drift := SchemaDrift{Table: table.Name}
		for col := range expected {
			if _, ok := actual[col]; !ok {
				drift.MissingColumns = append(drift.MissingColumns, col)
			}
		}
		for col := range actual {
			if _, ok := expected[col]; !ok {
				drift.ExtraColumns = append(drift.ExtraColumns, col)
			}
		}
		if len(drift.MissingColumns) > 0 || len(drift.ExtraColumns) > 0 {
			sort.Strings(drift.MissingColumns)
			sort.Strings(drift.ExtraColumns)
			drifts = append(drifts, drift)
		}
	}
	return drifts, nil
}

// ReportSchemaDrift logs one warning per drifted table. Failures to inspect
// the schema are logged and swallowed so startup never stalls on a check.
func ReportSchemaDrift(ctx context.Context, db *bun.DB) {
	logger := GetLogger()
	drifts, err := CheckSchemaDrift(ctx, db)
	if err != nil {
		logger.Warn("Schema check skipped", "error", err.Error())
		return
	}
	if len(drifts) == 0 {
		logger.Info("Schema check passed", "tables", len(RegisteredModelInstances()))
		return
	}
	for _, drift := range drifts {
		logger.Warn("Schema drift detected", "detail", drift.String())
	}
}

func listTableColumns(ctx context.Context, db *bun.DB, table string) (map[string]struct{}, error) {
	cols := make(map[string]struct{})
	switch db.Dialect().Name() {
	case dialect.PG:
		rows, err := db.QueryContext(ctx,
			`SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = ?`, table)
		if err != nil {
			return nil, err
		}
		defer func() { _ = rows.Close() }()
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				return nil, err
			}
			cols[strings.ToLower(name)] = struct{}{}
		}
		return cols, rows.Err()
	case dialect.MySQL:
		rows, err := db.QueryContext(ctx,
			`SELECT COLUMN_NAME FROM INFORMATION_SCHEMA.COLUMNS WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?`, table)
		if err != nil {
			return nil, err
		}
		defer func() { _ = rows.Close() }()
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				return nil, err
			}
			cols[strings.ToLower(name)] = struct{}{}
		}
		return cols, rows.Err()
	default:
		rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info('%s')", table))
		if err != nil {
			return nil, err
		}
		defer func() { _ = rows.Close() }()
		for rows.Next() {
			var cid, notnull, pk int
			var name, typStr string
			var defaultNS interface{}
			if err := rows.Scan(&cid, &name, &typStr, &notnull, &defaultNS, &pk); err != nil {
				return nil, err
			}
			cols[strings.ToLower(name)] = struct{}{}
		}
		return cols, rows.Err()
	}
}
