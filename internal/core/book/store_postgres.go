// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

package book

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sunnahth/hadith-api/internal/core/hadith"
	"github.com/sunnahth/hadith-api/internal/platform/database/schema"
	"github.com/sunnahth/hadith-api/internal/platform/dberr"
)

// # PostgreSQL Repository

// repository implements the [Repository] interface using pgx.
type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed book store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// # Repository Implementation

/*
FindInfo returns the editable metadata of a collection.

Returns:
  - *Info: Stored metadata
  - error: dberr.ErrNotFound when none was ever saved
*/
func (repository *repository) FindInfo(context context.Context, book string) (*Info, error) {
	t := schema.CoreBookInfo
	query := fmt.Sprintf(`SELECT %s, COALESCE(%s, ''), COALESCE(%s, ''), %s FROM %s WHERE %s = $1`,
		t.Book, t.Name, t.Description, t.UpdatedAt, t.Table, t.Book)

	var info Info
	err := repository.pool.QueryRow(context, query, book).Scan(
		&info.Book, &info.Name, &info.Description, &info.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err)
	}
	return &info, nil
}

/*
UpsertInfo saves the metadata of a collection, inserting on first write.
*/
func (repository *repository) UpsertInfo(context context.Context, info *Info) error {
	t := schema.CoreBookInfo
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NOW())
		ON CONFLICT (%s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = NOW()
	`,
		t.Table, t.Book, t.Name, t.Description, t.UpdatedAt,
		t.Book,
		t.Name, t.Name, t.Description, t.Description, t.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query, info.Book, info.Name, info.Description)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: failed to upsert book info: %w", err))
	}
	return nil
}

/*
AggregateProgress returns per-collection totals over the whole archive.

Description: Translated counts use a filtered aggregate so the whole
dashboard resolves in one round-trip.
*/
func (repository *repository) AggregateProgress(context context.Context) ([]Progress, error) {
	t := schema.CoreHadith
	query := fmt.Sprintf(`
		SELECT %s,
			COUNT(*),
			COUNT(*) FILTER (WHERE %s = $1)
		FROM %s
		GROUP BY %s
		ORDER BY COUNT(*) DESC
	`, t.Book, t.Status, t.Table, t.Book)

	rows, err := repository.pool.Query(context, query, string(hadith.StatusTranslated))
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres: failed to aggregate book progress: %w", err))
	}
	defer rows.Close()

	var entries []Progress
	for rows.Next() {
		var bookSlug string
		var total, translated int64
		if err := rows.Scan(&bookSlug, &total, &translated); err != nil {
			return nil, dberr.Wrap(fmt.Errorf("postgres: failed to scan book progress: %w", err))
		}
		entries = append(entries, NewProgress(bookSlug, total, translated))
	}
	return entries, rows.Err()
}

/*
CountProgress returns the totals for one collection, or the whole archive
when book is empty.
*/
func (repository *repository) CountProgress(context context.Context, book string) (Progress, error) {
	t := schema.CoreHadith
	query := fmt.Sprintf(`
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE %s = $1)
		FROM %s
		WHERE ($2 = '' OR %s = $2)
	`, t.Status, t.Table, t.Book)

	var total, translated int64
	err := repository.pool.QueryRow(context, query, string(hadith.StatusTranslated), book).Scan(&total, &translated)
	if err != nil {
		return Progress{}, dberr.Wrap(fmt.Errorf("postgres: failed to count book progress: %w", err))
	}
	return NewProgress(book, total, translated), nil
}
