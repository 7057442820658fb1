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
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/yeonilabs/yeoni/database"
	"github.com/yeonilabs/yeoni/repository"
)

// NormalizePhone strips hyphens and surrounding whitespace. Phone columns
// only ever hold the normalized form.
func NormalizePhone(phone string) string {
	return strings.ReplaceAll(strings.TrimSpace(phone), "-", "")
}

// Repository extends the generic user repository with account lookups that
// respect soft deletion.
type Repository struct {
	repository.Repository[User]
	db bun.IDB
}

// NewRepository builds a user Repository on the given connection.
func NewRepository(db *bun.DB) *Repository {
	return &Repository{Repository: repository.NewRepository[User](db), db: db}
}

// GetActive returns the user with this id unless the account is soft
// deleted. Missing and deleted accounts both come back as (nil, nil).
func (r *Repository) GetActive(ctx context.Context, id string) (*User, error) {
	u, err := r.Get(ctx, id)
	if err != nil || u == nil {
		return u, err
	}
	if u.IsDeleted() {
		return nil, nil
	}
	return u, nil
}

// FindByPhone looks up the live account holding this phone number. The input
// is normalized first, so "010-1234-5678" and "01012345678" hit the same row.
func (r *Repository) FindByPhone(ctx context.Context, phone string) (*User, error) {
	normalized := NormalizePhone(phone)
	if normalized == "" {
		return nil, nil
	}
	return r.findOneActive(ctx, "phone", normalized)
}

// FindByEmail looks up the live account registered with this email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, nil
	}
	return r.findOneActive(ctx, "email", email)
}

func (r *Repository) findOneActive(ctx context.Context, column string, value string) (*User, error) {
	var u User
	err := r.db.NewSelect().Model(&u).
		Where("? = ?", bun.Ident(column), value).
		Where("deleted_at IS NULL").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// SoftDelete stamps deleted_at on a live account. It reports false without
// error when the account is missing or already deleted, so repeated calls
// settle on the same outcome.
func (r *Repository) SoftDelete(ctx context.Context, id string) (bool, error) {
	now := time.Now()
	res, err := r.db.NewUpdate().Model((*User)(nil)).
		Set("deleted_at = ?", now).
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Where("deleted_at IS NULL").
		Exec(ctx)
	if err != nil {
		return false, database.WrapWriteError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// AccessEntry describes one sensitive-data access for the audit trail.
type AccessEntry struct {
	AccessorID   string
	AccessorType string
	TargetUserID string
	ResourceType string
	ResourceID   string
	Action       string
	IPAddress    string
	UserAgent    string
}

// AuditRepository persists the append-only access trail.
type AuditRepository struct {
	repository.Repository[AccessAudit]
}

// NewAuditRepository builds an AuditRepository on the given connection.
func NewAuditRepository(db *bun.DB) *AuditRepository {
	return &AuditRepository{Repository: repository.NewRepository[AccessAudit](db)}
}

// LogAccess appends one audit row and returns it with its generated id.
func (r *AuditRepository) LogAccess(ctx context.Context, entry AccessEntry) (*AccessAudit, error) {
	audit := &AccessAudit{
		AccessorID:   entry.AccessorID,
		AccessorType: entry.AccessorType,
		TargetUserID: entry.TargetUserID,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		Action:       entry.Action,
		IPAddress:    entry.IPAddress,
		UserAgent:    entry.UserAgent,
	}
	if err := r.Create(ctx, audit); err != nil {
		return nil, err
	}
	return audit, nil
}
