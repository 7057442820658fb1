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
	"fmt"
	"strings"
	"time"
)

// Descriptor is the schema contract a model exposes to the generic repository
// and the query builders. Implementations are hand-written on each model, so
// column lookups are plain slice/switch code instead of reflection.
//
// TableName doubles as the query alias: models declare their bun alias equal
// to the table name so raw fragments built from a Descriptor always match the
// alias Bun renders.
type Descriptor interface {
	TableName() string
	PKColumn() string
	Columns() []string
	HasColumn(column string) bool
}

// Timestamped marks models carrying an updated_at column the repository
// stamps on writes. Detected by type assertion; models without it are
// simply never touched.
type Timestamped interface {
	TouchUpdated(t time.Time)
}

// ConfigurationError reports a request for a column a model does not define.
// The available columns are included so a bad locale or filter key is
// diagnosable from the message alone.
type ConfigurationError struct {
	Table     string
	Column    string
	Reason    string
	Available []string
}

func (e *ConfigurationError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "column not defined"
	}
	if len(e.Available) == 0 {
		return fmt.Sprintf("%s: %q on table %q", reason, e.Column, e.Table)
	}
	return fmt.Sprintf("%s: %q on table %q (available: %s)",
		reason, e.Column, e.Table, strings.Join(e.Available, ", "))
}

func newUnknownColumnError(model Descriptor, column string) *ConfigurationError {
	return &ConfigurationError{
		Table:     model.TableName(),
		Column:    column,
		Available: model.Columns(),
	}
}
