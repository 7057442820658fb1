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

package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenService(t *testing.T) {
	_, err := NewTokenService("", 0, 0)
	require.Error(t, err)

	svc, err := NewTokenService("test-secret", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultAccessTTL, svc.AccessTTL())
	assert.Equal(t, DefaultRefreshTTL, svc.RefreshTTL())

	svc, err = NewTokenService("test-secret", 5*time.Minute, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, svc.AccessTTL())
	assert.Equal(t, time.Hour, svc.RefreshTTL())
}

func TestIssuePairRoundTrip(t *testing.T) {
	svc, err := NewTokenService("test-secret", 0, 0)
	require.NoError(t, err)

	pair, err := svc.IssuePair("usr_01HZXK5T9GQ4W2M8C6R3E7NDVB")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	userID, err := svc.Verify(pair.AccessToken, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "usr_01HZXK5T9GQ4W2M8C6R3E7NDVB", userID)

	userID, err = svc.Verify(pair.RefreshToken, TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, "usr_01HZXK5T9GQ4W2M8C6R3E7NDVB", userID)
}

func TestVerifyRejectsWrongTokenType(t *testing.T) {
	svc, err := NewTokenService("test-secret", 0, 0)
	require.NoError(t, err)
	pair, err := svc.IssuePair("usr_a")
	require.NoError(t, err)

	_, err = svc.Verify(pair.AccessToken, TokenTypeRefresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.Verify(pair.RefreshToken, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsForgedToken(t *testing.T) {
	svc, err := NewTokenService("test-secret", 0, 0)
	require.NoError(t, err)
	other, err := NewTokenService("another-secret", 0, 0)
	require.NoError(t, err)

	pair, err := other.IssuePair("usr_a")
	require.NoError(t, err)

	_, err = svc.Verify(pair.AccessToken, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.Verify("not.a.token", TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc, err := NewTokenService("test-secret", 0, 0)
	require.NoError(t, err)

	expired, err := svc.issue("usr_a", TokenTypeAccess, -time.Minute)
	require.NoError(t, err)

	_, err = svc.Verify(expired, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	svc, err := NewTokenService("test-secret", 0, 0)
	require.NoError(t, err)

	claims := &Claims{
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "usr_a",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(unsigned, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsMissingSubject(t *testing.T) {
	svc, err := NewTokenService("test-secret", 0, 0)
	require.NoError(t, err)

	orphan, err := svc.issue("", TokenTypeAccess, time.Minute)
	require.NoError(t, err)

	_, err = svc.Verify(orphan, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
