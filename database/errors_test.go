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
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSqlErrorMySQLNumbers(t *testing.T) {
	cases := []struct {
		number uint16
		want   SQLError
	}{
		{1062, DuplicateKeyErr},
		{1048, NotNullViolationErr},
		{1452, ForeignKeyViolationErr},
		{1054, NoColumnErr},
		{1050, UnknownErr},
	}
	for _, c := range cases {
		is, kind := IsSqlError(&mysql.MySQLError{Number: c.number, Message: "driver message"})
		assert.True(t, is, "number %d", c.number)
		assert.Equal(t, c.want, kind, "number %d", c.number)
	}
}

func TestIsSqlErrorPgxSQLState(t *testing.T) {
	is, kind := IsSqlError(&pgconn.PgError{Code: "23505", Message: "duplicate key value"})
	assert.True(t, is)
	assert.Equal(t, DuplicateKeyErr, kind)

	is, kind = IsSqlError(&pgconn.PgError{Code: "42P01"})
	assert.True(t, is)
	assert.Equal(t, NoTableErr, kind)

	is, kind = IsSqlError(&pgconn.PgError{Code: "XX000"})
	assert.True(t, is)
	assert.Equal(t, UnknownErr, kind)

	// Wrapped driver errors classify the same.
	wrapped := fmt.Errorf("insert users: %w", &pgconn.PgError{Code: "23503"})
	is, kind = IsSqlError(wrapped)
	assert.True(t, is)
	assert.Equal(t, ForeignKeyViolationErr, kind)
}

func TestIsSqlErrorPqSQLState(t *testing.T) {
	is, kind := IsSqlError(&pq.Error{Code: "23502"})
	assert.True(t, is)
	assert.Equal(t, NotNullViolationErr, kind)
}

func TestIsSqlErrorTextFallback(t *testing.T) {
	cases := []struct {
		msg  string
		want SQLError
	}{
		{"UNIQUE constraint failed: users.phone", DuplicateKeyErr},
		{"NOT NULL constraint failed: users.email", NotNullViolationErr},
		{"FOREIGN KEY constraint failed", ForeignKeyViolationErr},
		{"no such table: user_photos", NoTableErr},
		{"no such column: nickname", NoColumnErr},
		{"table users already exists", ExistTableErr},
	}
	for _, c := range cases {
		is, kind := IsSqlError(errors.New(c.msg))
		assert.True(t, is, "message %q", c.msg)
		assert.Equal(t, c.want, kind, "message %q", c.msg)
	}

	is, _ := IsSqlError(errors.New("connection refused"))
	assert.False(t, is)
}

func TestWrapWriteError(t *testing.T) {
	assert.NoError(t, WrapWriteError(nil))

	cause := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '01011112222'"}
	wrapped := WrapWriteError(cause)
	var integrity *IntegrityError
	require.ErrorAs(t, wrapped, &integrity)
	assert.Equal(t, DuplicateKeyErr, integrity.Kind)
	assert.ErrorIs(t, wrapped, cause)
	assert.Contains(t, wrapped.Error(), "duplicate key")

	// Classified but non-constraint errors pass through untouched.
	missing := &pgconn.PgError{Code: "42P01", Message: "relation does not exist"}
	assert.Same(t, missing, WrapWriteError(missing))

	// Unclassified errors pass through untouched.
	plain := errors.New("connection refused")
	assert.Same(t, plain, WrapWriteError(plain))
}

func TestIsIntegrityViolation(t *testing.T) {
	assert.True(t, IsIntegrityViolation(DuplicateKeyErr))
	assert.True(t, IsIntegrityViolation(NotNullViolationErr))
	assert.True(t, IsIntegrityViolation(ForeignKeyViolationErr))
	assert.True(t, IsIntegrityViolation(CheckConstraintViolationErr))
	assert.False(t, IsIntegrityViolation(NoTableErr))
	assert.False(t, IsIntegrityViolation(UnknownErr))
}
