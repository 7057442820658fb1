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

	"github.com/uptrace/bun"
	"golang.org/x/sync/errgroup"
)

// Aggregate is a user together with every related row. Absent 1:1 relations
// stay nil; Photos and Documents exclude soft-deleted rows.
type Aggregate struct {
	User         *User         `json:"user"`
	Profile      *Profile      `json:"profile,omitempty"`
	Lifestyle    *Lifestyle    `json:"lifestyle,omitempty"`
	Preference   *Preference   `json:"preference,omitempty"`
	Subscription *Subscription `json:"subscription,omitempty"`
	Photos       []*Photo      `json:"photos,omitempty"`
	Documents    []*Document   `json:"documents,omitempty"`
}

// Loader assembles Aggregate values. The relation queries run concurrently,
// which is only safe on a pooled *bun.DB; a shared transaction would
// serialize or break, so Loader deliberately does not accept one.
type Loader struct {
	db *bun.DB
}

// NewLoader builds a Loader on the given connection pool.
func NewLoader(db *bun.DB) *Loader {
	return &Loader{db: db}
}

// LoadCore returns the user with the 1:1 relations only. Photo and document
// lists are skipped, keeping the common read path at five parallel queries.
func (l *Loader) LoadCore(ctx context.Context, id string) (*Aggregate, error) {
	return l.load(ctx, id, false)
}

// LoadWithRelations returns the user with every relation, photo and document
// lists included.
func (l *Loader) LoadWithRelations(ctx context.Context, id string) (*Aggregate, error) {
	return l.load(ctx, id, true)
}

func (l *Loader) load(ctx context.Context, id string, withLists bool) (*Aggregate, error) {
	var u User
	err := l.db.NewSelect().Model(&u).
		Where("id = ?", id).
		Where("deleted_at IS NULL").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	agg := &Aggregate{User: &u}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var row Profile
		if err := l.oneByUser(gctx, &row, id); err != nil {
			return err
		} else if row.ID != 0 {
			agg.Profile = &row
		}
		return nil
	})
	g.Go(func() error {
		var row Lifestyle
		if err := l.oneByUser(gctx, &row, id); err != nil {
			return err
		} else if row.ID != 0 {
			agg.Lifestyle = &row
		}
		return nil
	})
	g.Go(func() error {
		var row Preference
		if err := l.oneByUser(gctx, &row, id); err != nil {
			return err
		} else if row.ID != 0 {
			agg.Preference = &row
		}
		return nil
	})
	g.Go(func() error {
		var row Subscription
		if err := l.oneByUser(gctx, &row, id); err != nil {
			return err
		} else if row.ID != "" {
			agg.Subscription = &row
		}
		return nil
	})

	if withLists {
		g.Go(func() error {
			return l.db.NewSelect().Model(&agg.Photos).
				Where("user_id = ?", id).
				Where("deleted_at IS NULL").
				OrderExpr("display_order ASC").
				OrderExpr("id ASC").
				Scan(gctx)
		})
		g.Go(func() error {
			return l.db.NewSelect().Model(&agg.Documents).
				Where("user_id = ?", id).
				Where("deleted_at IS NULL").
				OrderExpr("created_at ASC").
				OrderExpr("id ASC").
				Scan(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return agg, nil
}

// oneByUser scans the single related row for the user into model; a missing
// row leaves model at its zero value.
func (l *Loader) oneByUser(ctx context.Context, model interface{}, userID string) error {
	err := l.db.NewSelect().Model(model).
		Where("user_id = ?", userID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	return err
}
