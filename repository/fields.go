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

	"github.com/yeonilabs/yeoni/types"
)

// FieldRef identifies a resolved column on a model. It is opaque to callers;
// the search and filter builders consume it without re-resolving the name.
type FieldRef struct {
	table  string
	column string
}

// Column returns the bare column name.
func (f FieldRef) Column() string { return f.column }

// Table returns the owning table name.
func (f FieldRef) Table() string { return f.table }

// IsZero reports whether the ref was never resolved.
func (f FieldRef) IsZero() bool { return f.table == "" && f.column == "" }

func (f FieldRef) String() string {
	if f.table == "" {
		return f.column
	}
	return f.table + "." + f.column
}

// ColumnRef resolves a plain column on the model, validating it exists.
func ColumnRef(model Descriptor, column string) (FieldRef, error) {
	if !model.HasColumn(column) {
		return FieldRef{}, newUnknownColumnError(model, column)
	}
	return FieldRef{table: model.TableName(), column: column}, nil
}

// SelectLocaleField resolves the localized variant of a field, named
// "{prefix}_{locale}" by convention (name_ko, name_en). Requesting a variant
// the model does not define returns a ConfigurationError listing the model's
// columns, so a missing translation column is caught at call time rather
// than surfacing as a database error.
func SelectLocaleField(model Descriptor, prefix string, locale types.Locale) (FieldRef, error) {
	column := fmt.Sprintf("%s_%s", prefix, locale.String())
	if !model.HasColumn(column) {
		return FieldRef{}, newUnknownColumnError(model, column)
	}
	return FieldRef{table: model.TableName(), column: column}, nil
}

// SelectLocaleFields resolves several prefixes against the same locale.
// The result preserves the request order; the first unknown variant aborts
// the batch with its ConfigurationError.
func SelectLocaleFields(model Descriptor, prefixes []string, locale types.Locale) ([]FieldRef, error) {
	refs := make([]FieldRef, 0, len(prefixes))
	for _, prefix := range prefixes {
		ref, err := SelectLocaleField(model, prefix, locale)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}
