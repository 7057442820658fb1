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

package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"

	"github.com/yeonilabs/yeoni/database"
	"github.com/yeonilabs/yeoni/repository"
	"github.com/yeonilabs/yeoni/types"
	"github.com/yeonilabs/yeoni/utils"
)

var (
	// ErrPhoneRequired rejects account creation without a phone number.
	ErrPhoneRequired = errors.New("phone number is required")
	// ErrPhoneTaken rejects a phone number already held by a live account.
	ErrPhoneTaken = errors.New("phone number is already registered")
	// ErrUserNotFound reports a missing or soft-deleted account.
	ErrUserNotFound = errors.New("user not found")
)

// Service carries the user management flows. Reads run on the read
// connection, writes on the write connection; with no replica configured
// both are the same pool.
type Service struct {
	write  *bun.DB
	read   *bun.DB
	users  *Repository
	audits *AuditRepository
	subs   repository.Repository[Subscription]
	loader *Loader
	logger *utils.Logger
}

// NewService builds a Service running everything on one connection pool.
func NewService(db *bun.DB) *Service {
	return NewServiceWithReplica(db, db)
}

// NewServiceWithReplica builds a Service splitting reads onto a replica
// connection.
func NewServiceWithReplica(write, read *bun.DB) *Service {
	return &Service{
		write:  write,
		read:   read,
		users:  NewRepository(write),
		audits: NewAuditRepository(write),
		subs:   repository.NewRepository[Subscription](write),
		loader: NewLoader(read),
		logger: utils.NewLogger("USER"),
	}
}

// CreateUserInput is the intake payload for a new account.
type CreateUserInput struct {
	Phone       string
	NameKo      string
	NameEn      string
	Gender      Gender
	GenderLabel string // Korean intake label, used when Gender is unspecified
	BirthYear   int
	AuthType    AuthType
}

// CreateUser registers a new account in draft status. The phone number is
// normalized and must not collide with a live account; a collision surfaces
// as ErrPhoneTaken whether it is caught by the pre-check or by the partial
// unique index during the insert race.
func (s *Service) CreateUser(ctx context.Context, input CreateUserInput) (*Aggregate, error) {
	phone := NormalizePhone(input.Phone)
	if phone == "" {
		return nil, ErrPhoneRequired
	}

	existing, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPhoneTaken
	}

	gender := input.Gender
	if gender == GenderUnspecified && input.GenderLabel != "" {
		if parsed, ok := ParseGenderKorean(input.GenderLabel); ok {
			gender = parsed
		}
	}
	authType := input.AuthType
	if authType == AuthUnspecified {
		authType = AuthPhone
	}

	u := &User{
		Phone:     phone,
		NameKo:    input.NameKo,
		NameEn:    input.NameEn,
		Gender:    gender,
		BirthYear: input.BirthYear,
		AuthType:  authType,
		Status:    StatusDraft,
	}
	if err := s.users.Create(ctx, u); err != nil {
		var integrity *database.IntegrityError
		if errors.As(err, &integrity) && integrity.Kind == database.DuplicateKeyErr {
			return nil, ErrPhoneTaken
		}
		return nil, err
	}

	s.logger.Infof("created user %s with phone %s", u.ID, phone)
	return s.GetUser(ctx, u.ID)
}

// GetUser returns the account with its 1:1 relations, or ErrUserNotFound.
func (s *Service) GetUser(ctx context.Context, id string) (*Aggregate, error) {
	agg, err := s.loader.LoadCore(ctx, id)
	if err != nil {
		return nil, err
	}
	if agg == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	return agg, nil
}

// GetUserFull returns the account with every relation, photos and documents
// included.
func (s *Service) GetUserFull(ctx context.Context, id string) (*Aggregate, error) {
	agg, err := s.loader.LoadWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	if agg == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	return agg, nil
}

// UpdateUserInput lists the updatable account fields. Nil pointers leave the
// column alone; Status applies only when it holds a defined value.
type UpdateUserInput struct {
	NameKo *string
	NameEn *string
	Status UserStatus
}

// UpdateUser applies the given fields and returns the refreshed aggregate.
func (s *Service) UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*Aggregate, error) {
	fields := map[string]any{}
	if input.NameKo != nil {
		fields["name_ko"] = *input.NameKo
	}
	if input.NameEn != nil {
		fields["name_en"] = *input.NameEn
	}
	if input.Status.IsValid() {
		fields["status"] = input.Status
	}

	if len(fields) > 0 {
		updated, err := s.users.Update(ctx, id, fields)
		if err != nil {
			return nil, err
		}
		if updated == nil || updated.IsDeleted() {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, id)
		}
		s.logger.Infof("updated user %s", id)
	}
	return s.GetUser(ctx, id)
}

// DeleteUser soft deletes the account. Deleting a missing or already
// deleted account reports false without error.
func (s *Service) DeleteUser(ctx context.Context, id string) (bool, error) {
	deleted, err := s.users.SoftDelete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Infof("soft deleted user %s", id)
	}
	return deleted, nil
}

// ListResult is one page of accounts.
type ListResult struct {
	Users []*User `json:"users"`
	Total int     `json:"total"`
	Skip  int     `json:"skip"`
	Limit int     `json:"limit"`
}

// ListUsers returns live accounts ordered newest first. Listing is a
// best-effort surface: a failing read is logged and degrades to an empty
// page instead of propagating.
func (s *Service) ListUsers(ctx context.Context, window types.PageWindow) *ListResult {
	window = window.Normalize()
	result := &ListResult{Users: []*User{}, Skip: window.Skip, Limit: window.Limit}

	liveOnly := repository.Filters{"deleted_at": nil}
	users, err := s.users.FilterBy(ctx, window, "-created_at", liveOnly)
	if err != nil {
		s.logger.Warnf("user listing degraded to empty page: %v", err)
		return result
	}
	total, err := s.users.Count(ctx, liveOnly)
	if err != nil {
		s.logger.Warnf("user count degraded to zero: %v", err)
		return result
	}

	result.Users = users
	result.Total = total
	return result
}

// SearchQuery describes a name search.
type SearchQuery struct {
	Query     string
	Locale    types.Locale
	ExcludeID string
	Window    types.PageWindow
}

// SearchUsersByName finds active, non-admin accounts by localized name.
// Matching follows the shared search rules: an empty query matches nobody,
// one or two characters match by substring, longer queries additionally rank
// by trigram similarity on PostgreSQL.
func (s *Service) SearchUsersByName(ctx context.Context, search SearchQuery) ([]*User, error) {
	field, err := repository.SelectLocaleField((*User)(nil), "name", search.Locale)
	if err != nil {
		return nil, err
	}
	window := search.Window.Normalize()
	allowSimilarity := s.read.Dialect().Name() == dialect.PG

	var users []*User
	q := s.read.NewSelect().Model(&users)
	q = repository.SearchCondition(field, search.Query, allowSimilarity).Apply(q)
	q = repository.NotNullNotEmpty(field).Apply(q)
	q = repository.ExcludeIDFilter((*User)(nil), search.ExcludeID).Apply(q)
	q = q.Where("deleted_at IS NULL").
		Where("is_admin = ?", false).
		Where("status = ?", StatusActive)
	q = repository.SearchOrder(field, search.Query, allowSimilarity).Apply(q)

	if err := q.Offset(window.Skip).Limit(window.Limit).Scan(ctx); err != nil {
		return nil, err
	}
	return users, nil
}

// VisiblePhotos returns approved photos of live, non-admin members for the
// browsing feed, ordered by their display position.
func (s *Service) VisiblePhotos(ctx context.Context, window types.PageWindow) ([]*Photo, error) {
	window = window.Normalize()

	var photos []*Photo
	q := s.read.NewSelect().Model(&photos)
	q = repository.NewVisibilityFilter((*Photo)(nil)).Apply(q)
	q = q.Where("?.deleted_at IS NULL", bun.Ident("user_photos")).
		Where("users.deleted_at IS NULL").
		OrderExpr("?.display_order ASC", bun.Ident("user_photos")).
		OrderExpr("?.id ASC", bun.Ident("user_photos"))

	if err := q.Offset(window.Skip).Limit(window.Limit).Scan(ctx); err != nil {
		return nil, err
	}
	return photos, nil
}

// Columns refreshed when a subscription row is written again for the same
// member.
var subscriptionUpsertColumns = []string{
	"membership_type", "deposit_status", "payment_amount", "payment_date",
	"referral_source", "phone_consult_status", "meeting_schedule",
	"match_rating_average", "notes", "updated_at",
}

// UpsertSubscription writes the membership record for sub.UserID, inserting
// or refreshing the single row keyed by the member.
func (s *Service) UpsertSubscription(ctx context.Context, sub *Subscription) error {
	if sub == nil || sub.UserID == "" {
		return errors.New("subscription requires a user id")
	}
	return s.subs.Upsert(ctx, subscriptionUpsertColumns, []string{"user_id"}, sub)
}

// LogAccess appends one access-audit row.
func (s *Service) LogAccess(ctx context.Context, entry AccessEntry) (*AccessAudit, error) {
	audit, err := s.audits.LogAccess(ctx, entry)
	if err != nil {
		return nil, err
	}
	s.logger.Infof("access audit: %s:%s %s %s:%s of user %s",
		entry.AccessorType, entry.AccessorID, entry.Action,
		entry.ResourceType, entry.ResourceID, entry.TargetUserID)
	return audit, nil
}
