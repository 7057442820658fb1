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
	"time"

	"github.com/uptrace/bun"

	"github.com/yeonilabs/yeoni/database"
	"github.com/yeonilabs/yeoni/repository"
	"github.com/yeonilabs/yeoni/types"
)

// Referential integrity between these tables is optional: the foreign keys
// are only installed when the connection enables them, so every relation is
// also maintained at the application level. Soft deletes (users, documents,
// photos) are explicit deleted_at columns, never automatic query filters.

func init() {
	database.RegisterModelInstance((*User)(nil), 1)
	database.RegisterModelInstance((*Profile)(nil), 2)
	database.RegisterModelInstance((*Lifestyle)(nil), 2)
	database.RegisterModelInstance((*Preference)(nil), 2)
	database.RegisterModelInstance((*Document)(nil), 2)
	database.RegisterModelInstance((*Photo)(nil), 2)
	database.RegisterModelInstance((*Subscription)(nil), 2)
	database.RegisterModelInstance((*AccessAudit)(nil), 3)
}

func hasColumn(columns []string, column string) bool {
	for _, c := range columns {
		if c == column {
			return true
		}
	}
	return false
}

// User is the core account row. The display name is kept per locale
// (name_ko, name_en) following the localized column convention; phone is
// stored normalized, digits only.
type User struct {
	bun.BaseModel `bun:"table:users,alias:users"`

	ID             string     `bun:"id,pk,type:varchar(30)" json:"id"`
	FirebaseID     string     `bun:"firebase_id,nullzero" json:"firebase_id,omitempty"`
	AuthType       AuthType   `bun:"auth_type" json:"auth_type"`
	AuthProviderID string     `bun:"auth_provider_id,nullzero" json:"-"`
	Email          string     `bun:"email,nullzero" json:"email,omitempty"`
	Phone          string     `bun:"phone,nullzero" json:"phone,omitempty"`
	NameKo         string     `bun:"name_ko,nullzero" json:"name_ko,omitempty"`
	NameEn         string     `bun:"name_en,nullzero" json:"name_en,omitempty"`
	Gender         Gender     `bun:"gender" json:"gender,omitempty"`
	BirthYear      int        `bun:"birth_year,nullzero" json:"birth_year,omitempty"`
	Status         UserStatus `bun:"status" json:"status"`
	IsAdmin        bool       `bun:"is_admin" json:"is_admin"`
	CreatedAt      time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt      time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
	DeletedAt      time.Time  `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
}

var userColumns = []string{
	"id", "firebase_id", "auth_type", "auth_provider_id", "email", "phone",
	"name_ko", "name_en", "gender", "birth_year", "status", "is_admin",
	"created_at", "updated_at", "deleted_at",
}

func (*User) TableName() string             { return "users" }
func (*User) PKColumn() string              { return "id" }
func (*User) Columns() []string             { return userColumns }
func (*User) HasColumn(column string) bool  { return hasColumn(userColumns, column) }
func (u *User) TouchUpdated(t time.Time)    { u.UpdatedAt = t }
func (u *User) IsDeleted() bool             { return !u.DeletedAt.IsZero() }

func (u *User) BeforeAppendModel(_ context.Context, query bun.Query) error {
	now := time.Now()
	switch query.(type) {
	case *bun.InsertQuery:
		if u.ID == "" {
			u.ID = NewUserID()
		}
		if u.CreatedAt.IsZero() {
			u.CreatedAt = now
		}
		if u.UpdatedAt.IsZero() {
			u.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		u.UpdatedAt = now
	}
	return nil
}

// Profile holds the extended self-description, one row per user.
type Profile struct {
	bun.BaseModel `bun:"table:user_profiles,alias:user_profiles"`

	ID                  int64       `bun:"id,type:bigint,pk,autoincrement" json:"id"`
	UserID              string      `bun:"user_id,notnull" json:"user_id"`
	Education           Education   `bun:"education" json:"education,omitempty"`
	University          string      `bun:"university,nullzero" json:"university,omitempty"`
	Job                 string      `bun:"job,nullzero" json:"job,omitempty"`
	JobDetail           string      `bun:"job_detail,nullzero" json:"job_detail,omitempty"`
	SalaryRange         SalaryRange `bun:"salary_range" json:"salary_range,omitempty"`
	District            string      `bun:"district,nullzero" json:"district,omitempty"`
	Height              int         `bun:"height,nullzero" json:"height,omitempty"`
	MBTI                string      `bun:"mbti,nullzero" json:"mbti,omitempty"`
	AboutMe             string      `bun:"about_me,nullzero" json:"about_me,omitempty"`
	ProfileAppeal       string      `bun:"profile_appeal,nullzero" json:"profile_appeal,omitempty"`
	LikesDislikes       string      `bun:"likes_dislikes,nullzero" json:"likes_dislikes,omitempty"`
	SufficientCondition string      `bun:"sufficient_condition,nullzero" json:"sufficient_condition,omitempty"`
	NecessaryCondition  string      `bun:"necessary_condition,nullzero" json:"necessary_condition,omitempty"`
	CreatedAt           time.Time   `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt           time.Time   `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

var profileColumns = []string{
	"id", "user_id", "education", "university", "job", "job_detail",
	"salary_range", "district", "height", "mbti", "about_me", "profile_appeal",
	"likes_dislikes", "sufficient_condition", "necessary_condition",
	"created_at", "updated_at",
}

func (*Profile) TableName() string            { return "user_profiles" }
func (*Profile) PKColumn() string             { return "id" }
func (*Profile) Columns() []string            { return profileColumns }
func (*Profile) HasColumn(column string) bool { return hasColumn(profileColumns, column) }
func (p *Profile) TouchUpdated(t time.Time)   { p.UpdatedAt = t }

func (p *Profile) BeforeAppendModel(_ context.Context, query bun.Query) error {
	stampTimestamps(query, &p.CreatedAt, &p.UpdatedAt)
	return nil
}

// Lifestyle holds habits and relationship history, one row per user.
type Lifestyle struct {
	bun.BaseModel `bun:"table:user_lifestyles,alias:user_lifestyles"`

	ID                int64          `bun:"id,type:bigint,pk,autoincrement" json:"id"`
	UserID            string         `bun:"user_id,notnull" json:"user_id"`
	Smoking           Smoking        `bun:"smoking" json:"smoking,omitempty"`
	Religion          Religion       `bun:"religion" json:"religion,omitempty"`
	Tattoo            Tattoo         `bun:"tattoo" json:"tattoo,omitempty"`
	CarOwnership      CarOwnership   `bun:"car_ownership" json:"car_ownership,omitempty"`
	DinkPreference    DinkPreference `bun:"dink_preference" json:"dink_preference,omitempty"`
	DivorceStatus     DivorceStatus  `bun:"divorce_status" json:"divorce_status,omitempty"`
	LongDistance      LongDistance   `bun:"long_distance" json:"long_distance,omitempty"`
	RelationshipCount string         `bun:"relationship_count,nullzero" json:"relationship_count,omitempty"`
	LastRelationship  string         `bun:"last_relationship,nullzero" json:"last_relationship,omitempty"`
	MarriageTiming    string         `bun:"marriage_timing,nullzero" json:"marriage_timing,omitempty"`
	CreatedAt         time.Time      `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt         time.Time      `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

var lifestyleColumns = []string{
	"id", "user_id", "smoking", "religion", "tattoo", "car_ownership",
	"dink_preference", "divorce_status", "long_distance", "relationship_count",
	"last_relationship", "marriage_timing", "created_at", "updated_at",
}

func (*Lifestyle) TableName() string            { return "user_lifestyles" }
func (*Lifestyle) PKColumn() string             { return "id" }
func (*Lifestyle) Columns() []string            { return lifestyleColumns }
func (*Lifestyle) HasColumn(column string) bool { return hasColumn(lifestyleColumns, column) }
func (l *Lifestyle) TouchUpdated(t time.Time)   { l.UpdatedAt = t }

func (l *Lifestyle) BeforeAppendModel(_ context.Context, query bun.Query) error {
	stampTimestamps(query, &l.CreatedAt, &l.UpdatedAt)
	return nil
}

// Preference holds partner matching preferences, one row per user. The
// list-shaped columns store JSON text.
type Preference struct {
	bun.BaseModel `bun:"table:user_preferences,alias:user_preferences"`

	ID                   int64                 `bun:"id,type:bigint,pk,autoincrement" json:"id"`
	UserID               string                `bun:"user_id,notnull" json:"user_id"`
	PreferredHeightMin   int                   `bun:"preferred_height_min,nullzero" json:"preferred_height_min,omitempty"`
	PreferredHeightMax   int                   `bun:"preferred_height_max,nullzero" json:"preferred_height_max,omitempty"`
	PreferredHeightLabel string                `bun:"preferred_height_label,nullzero" json:"preferred_height_label,omitempty"`
	PreferredAgeYoungest int                   `bun:"preferred_age_youngest,nullzero" json:"preferred_age_youngest,omitempty"`
	PreferredAgeOldest   int                   `bun:"preferred_age_oldest,nullzero" json:"preferred_age_oldest,omitempty"`
	PreferredAgeLabel    string                `bun:"preferred_age_label,nullzero" json:"preferred_age_label,omitempty"`
	PreferredHeights     types.JsonStringArray `bun:"preferred_heights,nullzero,type:text" json:"preferred_heights,omitempty"`
	PreferredAges        types.JsonStringArray `bun:"preferred_ages,nullzero,type:text" json:"preferred_ages,omitempty"`
	PreferredLifestyle   types.JsonStringArray `bun:"preferred_lifestyle,nullzero,type:text" json:"preferred_lifestyle,omitempty"`
	PreferredAppearance  string                `bun:"preferred_appearance,nullzero" json:"preferred_appearance,omitempty"`
	Values               types.JsonStringArray `bun:"values,nullzero,type:text" json:"values,omitempty"`
	ValuesCustom         string                `bun:"values_custom,nullzero" json:"values_custom,omitempty"`
	CreatedAt            time.Time             `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt            time.Time             `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

var preferenceColumns = []string{
	"id", "user_id", "preferred_height_min", "preferred_height_max",
	"preferred_height_label", "preferred_age_youngest", "preferred_age_oldest",
	"preferred_age_label", "preferred_heights", "preferred_ages",
	"preferred_lifestyle", "preferred_appearance", "values", "values_custom",
	"created_at", "updated_at",
}

func (*Preference) TableName() string            { return "user_preferences" }
func (*Preference) PKColumn() string             { return "id" }
func (*Preference) Columns() []string            { return preferenceColumns }
func (*Preference) HasColumn(column string) bool { return hasColumn(preferenceColumns, column) }
func (p *Preference) TouchUpdated(t time.Time)   { p.UpdatedAt = t }

func (p *Preference) BeforeAppendModel(_ context.Context, query bun.Query) error {
	stampTimestamps(query, &p.CreatedAt, &p.UpdatedAt)
	return nil
}

// Document is an uploaded identity document. Only object-store keys are
// persisted, never URLs.
type Document struct {
	bun.BaseModel `bun:"table:user_documents,alias:user_documents"`

	ID                  string             `bun:"id,pk,type:varchar(30)" json:"id"`
	UserID              string             `bun:"user_id,notnull" json:"user_id"`
	DocumentType        DocumentType       `bun:"document_type" json:"document_type"`
	ObjectKey           string             `bun:"object_key,notnull" json:"object_key"`
	OriginalFilename    string             `bun:"original_filename,nullzero" json:"original_filename,omitempty"`
	FileSize            int64              `bun:"file_size,nullzero" json:"file_size,omitempty"`
	ContentType         string             `bun:"content_type,nullzero" json:"content_type,omitempty"`
	FirebaseStoragePath string             `bun:"firebase_storage_path,nullzero" json:"firebase_storage_path,omitempty"`
	VerificationStatus  VerificationStatus `bun:"verification_status" json:"verification_status"`
	VerifiedAt          time.Time          `bun:"verified_at,nullzero" json:"verified_at,omitempty"`
	VerifiedBy          string             `bun:"verified_by,nullzero" json:"verified_by,omitempty"`
	CreatedAt           time.Time          `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt           time.Time          `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
	DeletedAt           time.Time          `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
}

var documentColumns = []string{
	"id", "user_id", "document_type", "object_key", "original_filename",
	"file_size", "content_type", "firebase_storage_path",
	"verification_status", "verified_at", "verified_by",
	"created_at", "updated_at", "deleted_at",
}

func (*Document) TableName() string            { return "user_documents" }
func (*Document) PKColumn() string             { return "id" }
func (*Document) Columns() []string            { return documentColumns }
func (*Document) HasColumn(column string) bool { return hasColumn(documentColumns, column) }
func (d *Document) TouchUpdated(t time.Time)   { d.UpdatedAt = t }

func (d *Document) BeforeAppendModel(_ context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok {
		if d.ID == "" {
			d.ID = NewDocumentID()
		}
		if d.VerificationStatus == VerificationUnspecified {
			d.VerificationStatus = VerificationPending
		}
	}
	stampTimestamps(query, &d.CreatedAt, &d.UpdatedAt)
	return nil
}

// Photo is a profile photo. is_visible stays false until review approves the
// photo for other members.
type Photo struct {
	bun.BaseModel `bun:"table:user_photos,alias:user_photos"`

	ID                  string    `bun:"id,pk,type:varchar(30)" json:"id"`
	UserID              string    `bun:"user_id,notnull" json:"user_id"`
	PhotoType           PhotoType `bun:"photo_type" json:"photo_type"`
	ObjectKey           string    `bun:"object_key,notnull" json:"object_key"`
	ThumbnailObjectKey  string    `bun:"thumbnail_object_key,nullzero" json:"thumbnail_object_key,omitempty"`
	OriginalFilename    string    `bun:"original_filename,nullzero" json:"original_filename,omitempty"`
	FileSize            int64     `bun:"file_size,nullzero" json:"file_size,omitempty"`
	ContentType         string    `bun:"content_type,nullzero" json:"content_type,omitempty"`
	FirebaseStoragePath string    `bun:"firebase_storage_path,nullzero" json:"firebase_storage_path,omitempty"`
	DisplayOrder        int       `bun:"display_order" json:"display_order"`
	IsVisible           bool      `bun:"is_visible" json:"is_visible"`
	CreatedAt           time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt           time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
	DeletedAt           time.Time `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
}

var photoColumns = []string{
	"id", "user_id", "photo_type", "object_key", "thumbnail_object_key",
	"original_filename", "file_size", "content_type", "firebase_storage_path",
	"display_order", "is_visible", "created_at", "updated_at", "deleted_at",
}

func (*Photo) TableName() string            { return "user_photos" }
func (*Photo) PKColumn() string             { return "id" }
func (*Photo) Columns() []string            { return photoColumns }
func (*Photo) HasColumn(column string) bool { return hasColumn(photoColumns, column) }
func (p *Photo) TouchUpdated(t time.Time)   { p.UpdatedAt = t }

func (p *Photo) BeforeAppendModel(_ context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok && p.ID == "" {
		p.ID = NewPhotoID()
	}
	stampTimestamps(query, &p.CreatedAt, &p.UpdatedAt)
	return nil
}

// Subscription is the membership record, one row per user.
type Subscription struct {
	bun.BaseModel `bun:"table:user_subscriptions,alias:user_subscriptions"`

	ID                 string    `bun:"id,pk,type:varchar(30)" json:"id"`
	UserID             string    `bun:"user_id,notnull,unique" json:"user_id"`
	MembershipType     string    `bun:"membership_type,nullzero" json:"membership_type,omitempty"`
	DepositStatus      string    `bun:"deposit_status,nullzero" json:"deposit_status,omitempty"`
	PaymentAmount      int64     `bun:"payment_amount,nullzero" json:"payment_amount,omitempty"`
	PaymentDate        time.Time `bun:"payment_date,nullzero" json:"payment_date,omitempty"`
	ReferralSource     string    `bun:"referral_source,nullzero" json:"referral_source,omitempty"`
	PhoneConsultStatus string    `bun:"phone_consult_status,nullzero" json:"phone_consult_status,omitempty"`
	MeetingSchedule    time.Time `bun:"meeting_schedule,nullzero" json:"meeting_schedule,omitempty"`
	MatchRatingAverage float64   `bun:"match_rating_average,nullzero" json:"match_rating_average,omitempty"`
	Notes              string    `bun:"notes,nullzero" json:"notes,omitempty"`
	CreatedAt          time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt          time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

var subscriptionColumns = []string{
	"id", "user_id", "membership_type", "deposit_status", "payment_amount",
	"payment_date", "referral_source", "phone_consult_status",
	"meeting_schedule", "match_rating_average", "notes",
	"created_at", "updated_at",
}

func (*Subscription) TableName() string            { return "user_subscriptions" }
func (*Subscription) PKColumn() string             { return "id" }
func (*Subscription) Columns() []string            { return subscriptionColumns }
func (*Subscription) HasColumn(column string) bool { return hasColumn(subscriptionColumns, column) }
func (s *Subscription) TouchUpdated(t time.Time)   { s.UpdatedAt = t }

func (s *Subscription) BeforeAppendModel(_ context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok && s.ID == "" {
		s.ID = NewSubscriptionID()
	}
	stampTimestamps(query, &s.CreatedAt, &s.UpdatedAt)
	return nil
}

// AccessAudit records one access to sensitive member data. Rows are
// append-only; the target reference is nullable so audit history survives a
// hard account removal.
type AccessAudit struct {
	bun.BaseModel `bun:"table:access_audits,alias:access_audits"`

	ID           string    `bun:"id,pk,type:varchar(30)" json:"id"`
	AccessorID   string    `bun:"accessor_id,notnull" json:"accessor_id"`
	AccessorType string    `bun:"accessor_type,notnull" json:"accessor_type"`
	TargetUserID string    `bun:"target_user_id,nullzero" json:"target_user_id,omitempty"`
	ResourceType string    `bun:"resource_type,notnull" json:"resource_type"`
	ResourceID   string    `bun:"resource_id,nullzero" json:"resource_id,omitempty"`
	Action       string    `bun:"action,notnull" json:"action"`
	IPAddress    string    `bun:"ip_address,nullzero" json:"ip_address,omitempty"`
	UserAgent    string    `bun:"user_agent,nullzero" json:"user_agent,omitempty"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

var accessAuditColumns = []string{
	"id", "accessor_id", "accessor_type", "target_user_id", "resource_type",
	"resource_id", "action", "ip_address", "user_agent", "created_at",
}

func (*AccessAudit) TableName() string            { return "access_audits" }
func (*AccessAudit) PKColumn() string             { return "id" }
func (*AccessAudit) Columns() []string            { return accessAuditColumns }
func (*AccessAudit) HasColumn(column string) bool { return hasColumn(accessAuditColumns, column) }

func (a *AccessAudit) BeforeAppendModel(_ context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok {
		if a.ID == "" {
			a.ID = NewAuditID()
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = time.Now()
		}
	}
	return nil
}

// Audit vocabulary stored in accessor_type, resource_type and action.
const (
	AccessorAdmin  = "admin"
	AccessorMember = "user"
	AccessorSystem = "system"

	ResourcePhoto    = "photo"
	ResourceDocument = "document"
	ResourceProfile  = "profile"

	ActionView     = "view"
	ActionDownload = "download"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
)

func stampTimestamps(query bun.Query, createdAt, updatedAt *time.Time) {
	now := time.Now()
	switch query.(type) {
	case *bun.InsertQuery:
		if createdAt.IsZero() {
			*createdAt = now
		}
		if updatedAt.IsZero() {
			*updatedAt = now
		}
	case *bun.UpdateQuery:
		*updatedAt = now
	}
}

var (
	_ repository.Descriptor = (*User)(nil)
	_ repository.Descriptor = (*Profile)(nil)
	_ repository.Descriptor = (*Lifestyle)(nil)
	_ repository.Descriptor = (*Preference)(nil)
	_ repository.Descriptor = (*Document)(nil)
	_ repository.Descriptor = (*Photo)(nil)
	_ repository.Descriptor = (*Subscription)(nil)
	_ repository.Descriptor = (*AccessAudit)(nil)

	_ repository.Timestamped = (*User)(nil)
	_ repository.Timestamped = (*Profile)(nil)
	_ repository.Timestamped = (*Lifestyle)(nil)
	_ repository.Timestamped = (*Preference)(nil)
	_ repository.Timestamped = (*Document)(nil)
	_ repository.Timestamped = (*Photo)(nil)
	_ repository.Timestamped = (*Subscription)(nil)

	_ bun.BeforeAppendModelHook = (*User)(nil)
	_ bun.BeforeAppendModelHook = (*Profile)(nil)
	_ bun.BeforeAppendModelHook = (*Lifestyle)(nil)
	_ bun.BeforeAppendModelHook = (*Preference)(nil)
	_ bun.BeforeAppendModelHook = (*Document)(nil)
	_ bun.BeforeAppendModelHook = (*Photo)(nil)
	_ bun.BeforeAppendModelHook = (*Subscription)(nil)
	_ bun.BeforeAppendModelHook = (*AccessAudit)(nil)
)
