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

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocale(t *testing.T) {
	ko, err := ParseLocale("ko")
	require.NoError(t, err)
	assert.Equal(t, LocaleKo, ko)

	en, err := ParseLocale("en")
	require.NoError(t, err)
	assert.Equal(t, LocaleEn, en)

	_, err = ParseLocale("jp")
	require.Error(t, err)
	_, err = ParseLocale("")
	require.Error(t, err)
}

func TestLocaleAccessors(t *testing.T) {
	assert.Equal(t, "ko", LocaleKo.String())
	assert.Equal(t, "KO", LocaleKo.Name())
	assert.Equal(t, "한국어", LocaleKo.Desc())
	assert.Equal(t, 0, LocaleKo.Number())
	assert.True(t, LocaleKo.IsValid())

	assert.Equal(t, "en", LocaleEn.String())
	assert.Equal(t, "EN", LocaleEn.Name())
	assert.Equal(t, "English", LocaleEn.Desc())

	bogus := Locale(99)
	assert.False(t, bogus.IsValid())
	assert.Equal(t, IllegalName, bogus.String())
	assert.Equal(t, IllegalName, bogus.Name())
	assert.Equal(t, IllegalDesc, bogus.Desc())
}

func TestLocalesCoverEveryCode(t *testing.T) {
	locales := Locales()
	require.Len(t, locales, 2)
	for _, locale := range locales {
		assert.True(t, locale.IsValid())
		assert.NotEqual(t, IllegalName, locale.String())
	}
}
