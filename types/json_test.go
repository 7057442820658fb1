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

func TestJsonObjectValueAndScan(t *testing.T) {
	var nilObj JsonObject
	v, err := nilObj.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	obj := JsonObject{"city": "서울", "verified": true}
	v, err = obj.Value()
	require.NoError(t, err)

	var scanned JsonObject
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, "서울", scanned["city"])
	assert.Equal(t, true, scanned["verified"])

	// NULL columns become an empty, usable map.
	require.NoError(t, scanned.Scan(nil))
	assert.NotNil(t, scanned)
	assert.Empty(t, scanned)

	assert.Error(t, scanned.Scan(42))
}

func TestJsonStringArrayValueAndScan(t *testing.T) {
	var nilArr JsonStringArray
	v, err := nilArr.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	arr := JsonStringArray{"여행", "등산"}
	v, err = arr.Value()
	require.NoError(t, err)

	var scanned JsonStringArray
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, JsonStringArray{"여행", "등산"}, scanned)

	// String values arrive from drivers that return text columns as string.
	require.NoError(t, scanned.Scan(`["독서"]`))
	assert.Equal(t, JsonStringArray{"독서"}, scanned)

	require.NoError(t, scanned.Scan(nil))
	assert.Empty(t, scanned)
}

func TestJsonArrayValueAndScan(t *testing.T) {
	arr := JsonArray{{"rank": "1차"}, {"rank": "2차"}}
	v, err := arr.Value()
	require.NoError(t, err)

	var scanned JsonArray
	require.NoError(t, scanned.Scan(v))
	require.Len(t, scanned, 2)
	assert.Equal(t, "1차", scanned[0]["rank"])

	require.NoError(t, scanned.Scan(nil))
	assert.Empty(t, scanned)
	assert.Error(t, scanned.Scan(3.14))
}
