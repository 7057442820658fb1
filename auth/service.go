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
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"github.com/yeonilabs/yeoni/database"
	"github.com/yeonilabs/yeoni/user"
	"github.com/yeonilabs/yeoni/utils"
)

var (
	// ErrCredentialsRequired is returned when email or password is blank.
	ErrCredentialsRequired = errors.New("auth: email and password are required")
	// ErrEmailTaken is returned when signing up with an email that already
	// has an account.
	ErrEmailTaken = errors.New("auth: email already registered")
	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
)

// SignupRequiredError is returned when logging in with an email that has no
// account yet. It carries the hints a client needs to prefill the signup form.
type SignupRequiredError struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

func (e *SignupRequiredError) Error() string {
	return fmt.Sprintf("auth: no account for %s, signup required", e.Email)
}

// Session is the result of a successful signup, login or refresh.
type Session struct {
	UserID       string `json:"user_id"`
	Nickname     string `json:"nickname"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Service implements email/password authentication on top of the user store.
// Refresh tokens are tracked in a TokenStore so sessions can be revoked.
type Service struct {
	users  *user.Repository
	tokens *TokenService
	store  TokenStore
	logger *utils.Logger
}

// NewService builds an auth Service on the given database connection.
func NewService(db *bun.DB, tokens *TokenService, store TokenStore) *Service {
	return &Service{
		users:  user.NewRepository(db),
		tokens: tokens,
		store:  store,
		logger: utils.NewLogger("AUTH"),
	}
}

// EmailSignUp registers a new email account and opens a session for it.
// The bcrypt hash is stored as the account's auth provider id.
func (s *Service) EmailSignUp(ctx context.Context, email, password, name string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrCredentialsRequired
	}
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &user.User{
		Email:          email,
		NameKo:         strings.TrimSpace(name),
		AuthType:       user.AuthEmail,
		AuthProviderID: hash,
		Status:         user.StatusDraft,
	}
	if err := s.users.Create(ctx, u); err != nil {
		var integrity *database.IntegrityError
		if errors.As(err, &integrity) && integrity.Kind == database.DuplicateKeyErr {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create account: %w", err)
	}
	s.logger.Infof("registered email account %s", u.ID)
	return s.openSession(ctx, u)
}

// EmailLogin authenticates an email account and opens a session. An unknown
// email yields a SignupRequiredError so the client can redirect to signup.
func (s *Service) EmailLogin(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrCredentialsRequired
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("look up email: %w", err)
	}
	if u == nil {
		return nil, &SignupRequiredError{Email: email, Provider: user.AuthEmail.String()}
	}
	if u.AuthProviderID == "" || !VerifyPassword(password, u.AuthProviderID) {
		return nil, ErrInvalidCredentials
	}
	return s.openSession(ctx, u)
}

// Refresh redeems a refresh token for a new token pair. The old token is
// rotated out of the store so it cannot be replayed.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	userID, err := s.tokens.Verify(refreshToken, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	storedID, err := s.store.Validate(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if storedID != userID {
		return nil, ErrInvalidToken
	}
	u, err := s.users.GetActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}
	if u == nil {
		return nil, fmt.Errorf("%w: %s", user.ErrUserNotFound, userID)
	}

	pair, err := s.tokens.IssuePair(u.ID)
	if err != nil {
		return nil, err
	}
	if err := s.store.Rotate(ctx, refreshToken, pair.RefreshToken, u.ID, s.tokens.RefreshTTL()); err != nil {
		return nil, err
	}
	return s.session(u, pair), nil
}

// CurrentUser resolves an access token to its live account.
func (s *Service) CurrentUser(ctx context.Context, accessToken string) (*user.User, error) {
	userID, err := s.tokens.Verify(accessToken, TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}
	if u == nil {
		return nil, fmt.Errorf("%w: %s", user.ErrUserNotFound, userID)
	}
	return u, nil
}

// Logout revokes a refresh token. Revoking an already dead token is a no-op.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	return s.store.Revoke(ctx, refreshToken)
}

func (s *Service) openSession(ctx context.Context, u *user.User) (*Session, error) {
	pair, err := s.tokens.IssuePair(u.ID)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, pair.RefreshToken, u.ID, s.tokens.RefreshTTL()); err != nil {
		return nil, err
	}
	return s.session(u, pair), nil
}

func (s *Service) session(u *user.User, pair *TokenPair) *Session {
	nickname := u.NameKo
	if nickname == "" {
		nickname = "User"
	}
	return &Session{
		UserID:       u.ID,
		Nickname:     nickname,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}
}
