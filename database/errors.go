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
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

type SQLError int

const (
	UnknownErr SQLError = iota
	NoRowsErr
	NoIndexErr
	NoColumnErr
	ExistIndexErr
	ExistColumnErr
	NoTableErr
	ExistTableErr
	DuplicateKeyErr
	NotNullViolationErr
	ForeignKeyViolationErr
	CheckConstraintViolationErr
	DataTruncatedErr
	InvalidTypeCastErr
)

func (e SQLError) String() string {
	switch e {
	case NoRowsErr:
		return "no rows"
	case NoIndexErr:
		return "no such index"
	case NoColumnErr:
		return "no such column"
	case ExistIndexErr:
		return "index already exists"
	case ExistColumnErr:
		return "column already exists"
	case NoTableErr:
		return "no such table"
	case ExistTableErr:
		return "table already exists"
	case DuplicateKeyErr:
		return "duplicate key"
	case NotNullViolationErr:
		return "not-null violation"
	case ForeignKeyViolationErr:
		return "foreign key violation"
	case CheckConstraintViolationErr:
		return "check constraint violation"
	case DataTruncatedErr:
		return "data truncated"
	case InvalidTypeCastErr:
		return "invalid type cast"
	}
	return "unknown"
}

// IntegrityError marks a constraint violation surfaced by a write operation
// after its transaction has rolled back. Callers match it with errors.As to
// map conflicts distinctly from other database failures.
type IntegrityError struct {
	Kind SQLError
	Err  error
}

func (e *IntegrityError) Error() string {
	return "integrity violation (" + e.Kind.String() + "): " + e.Err.Error()
}

func (e *IntegrityError) Unwrap() error { return e.Err }

// IsIntegrityViolation reports whether the classified kind belongs to the
// constraint-violation class.
func IsIntegrityViolation(kind SQLError) bool {
	switch kind {
	case DuplicateKeyErr, NotNullViolationErr, ForeignKeyViolationErr, CheckConstraintViolationErr:
		return true
	}
	return false
}

// WrapWriteError classifies a write failure, wrapping constraint violations
// in *IntegrityError and returning every other error unchanged.
func WrapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if ok, kind := IsSqlError(err); ok && IsIntegrityViolation(kind) {
		return &IntegrityError{Kind: kind, Err: err}
	}
	return err
}

func sqlStateError(code string) (bool, SQLError) {
	switch code {
	case "23505":
		return true, DuplicateKeyErr
	case "23502":
		return true, NotNullViolationErr
	case "23503":
		return true, ForeignKeyViolationErr
	case "23514":
		return true, CheckConstraintViolationErr
	case "22001":
		return true, DataTruncatedErr
	case "42703":
		return true, NoColumnErr
	case "42704":
		return true, NoIndexErr
	case "42P01":
		return true, NoTableErr
	case "42P07":
		return true, ExistTableErr
	case "42701":
		return true, ExistColumnErr
	case "42804":
		return true, InvalidTypeCastErr
	}
	return false, UnknownErr
}

// IsSqlError classifies a driver error. Typed driver errors are checked
// first (mysql error numbers, pgx and pq SQLSTATE codes), then the message
// text as a fallback for drivers without structured codes (sqlite).
func IsSqlError(err error) (is bool, sqlErr SQLError) {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case 1091:
			return true, NoIndexErr
		case 1054:
			return true, NoColumnErr
		case 1061:
			return true, ExistIndexErr
		case 1060:
			return true, ExistColumnErr
		case 1062:
			return true, DuplicateKeyErr
		case 1048:
			return true, NotNullViolationErr
		case 1216, 1217, 1451, 1452:
			return true, ForeignKeyViolationErr
		case 3819:
			return true, CheckConstraintViolationErr
		case 1265:
			return true, DataTruncatedErr
		default:
			return true, UnknownErr
		}
	}
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		if ok, kind := sqlStateError(pgxErr.Code); ok {
			return true, kind
		}
		return true, UnknownErr
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if ok, kind := sqlStateError(string(pqErr.Code)); ok {
			return true, kind
		}
		return true, UnknownErr
	}
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "sqlstate 42703") ||
		strings.Contains(s, "undefined column") ||
		strings.Contains(s, "no such column") {
		return true, NoColumnErr
	}
	if strings.Contains(s, "sqlstate 42704") ||
		strings.Contains(s, "no such index") ||
		(strings.Contains(s, "does not exist") && strings.Contains(s, "index")) {
		return true, NoIndexErr
	}
	if strings.Contains(s, "sqlstate 42p01") ||
		strings.Contains(s, "undefined table") ||
		strings.Contains(s, "no such table") {
		return true, NoTableErr
	}
	if strings.Contains(s, "already exists") &&
		strings.Contains(s, "index") {
		return true, ExistIndexErr
	}
	if strings.Contains(s, "already exists") &&
		strings.Contains(s, "table") ||
		strings.Contains(s, "relation") &&
			strings.Contains(s, "already exists") {
		return true, ExistTableErr
	}
	if strings.Contains(s, "duplicate key value") ||
		strings.Contains(s, "unique constraint failed") ||
		strings.Contains(s, "sqlstate 23505") {
		return true, DuplicateKeyErr
	}
	if strings.Contains(s, "not-null constraint") ||
		strings.Contains(s, "sqlstate 23502") ||
		strings.Contains(s, "not null constraint failed") {
		return true, NotNullViolationErr
	}
	if strings.Contains(s, "foreign key violation") ||
		strings.Contains(s, "foreign key constraint failed") ||
		strings.Contains(s, "sqlstate 23503") {
		return true, ForeignKeyViolationErr
	}
	if strings.Contains(s, "check constraint") ||
		strings.Contains(s, "sqlstate 23514") {
		return true, CheckConstraintViolationErr
	}
	if strings.Contains(s, "string data right truncation") ||
		strings.Contains(s, "sqlstate 22001") ||
		strings.Contains(s, "data truncated") {
		return true, DataTruncatedErr
	}
	if strings.Contains(s, "datatype mismatch") ||
		strings.Contains(s, "sqlstate 42804") {
		return true, InvalidTypeCastErr
	}
	return false, UnknownErr
}
