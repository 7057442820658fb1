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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeonilabs/yeoni/types"
)

func TestSelectLocaleField(t *testing.T) {
	model := (*profileRow)(nil)

	ko, err := SelectLocaleField(model, "name", types.LocaleKo)
	require.NoError(t, err)
	assert.Equal(t, "name_ko", ko.Column())
	assert.Equal(t, "profiles", ko.Table())
	assert.Equal(t, "profiles.name_ko", ko.String())

	en, err := SelectLocaleField(model, "name", types.LocaleEn)
	require.NoError(t, err)
	assert.Equal(t, "name_en", en.Column())
}

func TestSelectLocaleFieldUnknownVariant(t *testing.T) {
	model := (*profileRow)(nil)

	ref, err := SelectLocaleField(model, "bio", types.LocaleKo)
	require.Error(t, err)
	assert.True(t, ref.IsZero())

	var confErr *ConfigurationError
	require.True(t, errors.As(err, &confErr))
	assert.Equal(t, "profiles", confErr.Table)
	assert.Equal(t, "bio_ko", confErr.Column)
	assert.Equal(t, profileColumns, confErr.Available)
	assert.Contains(t, confErr.Error(), "name_ko")
	assert.Contains(t, confErr.Error(), "name_en")
}

func TestSelectLocaleFieldsPreservesOrder(t *testing.T) {
	model := (*profileRow)(nil)

	refs, err := SelectLocaleFields(model, []string{"name"}, types.LocaleEn)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "name_en", refs[0].Column())

	// the first unresolvable prefix aborts the batch
	refs, err = SelectLocaleFields(model, []string{"name", "bio", "name"}, types.LocaleKo)
	require.Error(t, err)
	assert.Nil(t, refs)

	var confErr *ConfigurationError
	require.True(t, errors.As(err, &confErr))
	assert.Equal(t, "bio_ko", confErr.Column)
}

func TestColumnRef(t *testing.T) {
	model := (*profileRow)(nil)

	ref, err := ColumnRef(model, "score")
	require.NoError(t, err)
	assert.Equal(t, "score", ref.Column())
	assert.False(t, ref.IsZero())

	_, err = ColumnRef(model, "weight")
	var confErr *ConfigurationError
	require.True(t, errors.As(err, &confErr))
	assert.Equal(t, "weight", confErr.Column)
}
