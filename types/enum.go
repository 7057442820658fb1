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

import "fmt"

// Common illegal/default values used by enums.
const (
	IllegalValue = -1
	IllegalName  = "unknown"
	IllegalDesc  = "unknown"
)

// BaseEnum represents a basic enum contract used by domain types.
type BaseEnum interface {
	IsValid() bool
	Number() int
	String() string
	Desc() string
	Name() string
}

// Locale identifies one of the closed set of content languages.
// Localized columns follow the "{prefix}_{locale}" naming convention,
// so only values in this set may be used to resolve fields.
type Locale int

const (
	LocaleKo Locale = iota
	LocaleEn
)

var localeCodes = map[Locale]string{
	LocaleKo: "ko",
	LocaleEn: "en",
}

var localeDescs = map[Locale]string{
	LocaleKo: "한국어",
	LocaleEn: "English",
}

// Locales returns every supported locale in declaration order.
func Locales() []Locale {
	return []Locale{LocaleKo, LocaleEn}
}

// ParseLocale resolves a locale code such as "ko" or "en".
func ParseLocale(code string) (Locale, error) {
	for locale, c := range localeCodes {
		if c == code {
			return locale, nil
		}
	}
	return Locale(IllegalValue), fmt.Errorf("unsupported locale %q, supported: %v", code, Locales())
}

func (l Locale) IsValid() bool {
	_, ok := localeCodes[l]
	return ok
}

func (l Locale) Number() int { return int(l) }

// String returns the locale code used as the column name suffix.
func (l Locale) String() string {
	if code, ok := localeCodes[l]; ok {
		return code
	}
	return IllegalName
}

func (l Locale) Desc() string {
	if desc, ok := localeDescs[l]; ok {
		return desc
	}
	return IllegalDesc
}

func (l Locale) Name() string {
	switch l {
	case LocaleKo:
		return "KO"
	case LocaleEn:
		return "EN"
	}
	return IllegalName
}

var _ BaseEnum = LocaleKo
