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

package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// TrigramSupport reports whether PostgreSQL similarity search is usable on
// this connection. Available stays false on every other dialect.
type TrigramSupport struct {
	Available        bool
	Version          string
	KoreanTrigrams   int
	SampleSimilarity float64
}

// trigramSampleName exercises show_trgm with Hangul; pg_trgm must produce
// trigrams for multibyte names or fuzzy search silently matches nothing.
const trigramSampleName = "김수현"

// VerifyTrigramSupport probes the pg_trgm extension and runs a small Hangul
// smoke check. A missing extension is not an error; the result simply has
// Available set to false.
func VerifyTrigramSupport(ctx context.Context, db *bun.DB) (*TrigramSupport, error) {
	support := &TrigramSupport{}
	if db == nil || db.Dialect().Name() != dialect.PG {
		return support, nil
	}

	err := db.QueryRowContext(ctx,
		`SELECT extversion FROM pg_extension WHERE extname = 'pg_trgm'`).Scan(&support.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return support, nil
	}
	if err != nil {
		return nil, err
	}
	support.Available = true

	var trigrams sql.NullInt64
	if err := db.QueryRowContext(ctx,
		`SELECT array_length(show_trgm(?), 1)`, trigramSampleName).Scan(&trigrams); err != nil {
		return nil, err
	}
	support.KoreanTrigrams = int(trigrams.Int64)

	if err := db.QueryRowContext(ctx,
		`SELECT similarity(?, ?)`, trigramSampleName, "김수").Scan(&support.SampleSimilarity); err != nil {
		return nil, err
	}
	return support, nil
}

// ReportTrigramSupport logs the similarity search capability at startup.
// On non-PostgreSQL dialects it stays silent; fuzzy search degrades to
// substring matching there and nothing is misconfigured.
func ReportTrigramSupport(ctx context.Context, db *bun.DB) {
	if db == nil || db.Dialect().Name() != dialect.PG {
		return
	}
	logger := GetLogger()
	support, err := VerifyTrigramSupport(ctx, db)
	if err != nil {
		logger.Warn("Trigram support check failed", "error", err.Error())
		return
	}
	if !support.Available {
		logger.Warn("pg_trgm extension not installed, similarity search disabled",
			"hint", "run migrations to install it")
		return
	}
	if support.KoreanTrigrams == 0 || support.SampleSimilarity <= 0 {
		logger.Warn("pg_trgm produced no trigrams for Hangul sample",
			"version", support.Version)
		return
	}
	logger.Info("Similarity search ready",
		"pg_trgm_version", support.Version,
		"sample_trigrams", support.KoreanTrigrams)
}
