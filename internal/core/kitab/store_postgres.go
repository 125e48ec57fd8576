// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

package kitab

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sunnahth/hadith-api/internal/platform/database/schema"
	"github.com/sunnahth/hadith-api/internal/platform/dberr"
)

// # PostgreSQL Repository

// repository implements the [Repository] interface using pgx.
type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed kitab store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// columnList is the canonical SELECT column set with NULL names collapsed
// to empty strings.
func columnList() string {
	t := schema.CoreKitab
	return fmt.Sprintf(`
		%s, %s, %s,
		COALESCE(%s, ''), COALESCE(%s, ''), COALESCE(%s, ''),
		%s, %s, %s`,
		t.KitabID, t.Book, t.Ordinal,
		t.NameAr, t.NameTh, t.NameEn,
		t.HadithCount, t.CreatedAt, t.UpdatedAt,
	)
}

// scanRow hydrates one entity from a row positioned on columnList output.
func scanRow(row interface{ Scan(...any) error }) (*Kitab, error) {
	var entity Kitab
	err := row.Scan(
		&entity.ID, &entity.Book, &entity.Ordinal,
		&entity.NameAr, &entity.NameTh, &entity.NameEn,
		&entity.HadithCount, &entity.CreatedAt, &entity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// # Repository Implementation

/*
FindByID returns the chapter with the given ID.

Returns:
  - *Kitab: Hydrated chapter
  - error: dberr.ErrNotFound on absent rows
*/
func (repository *repository) FindByID(context context.Context, id string) (*Kitab, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		columnList(), schema.CoreKitab.Table, schema.CoreKitab.KitabID)

	entity, err := scanRow(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err)
	}
	return entity, nil
}

/*
ListByBook returns all chapters of a collection ordered by ordinal.
*/
func (repository *repository) ListByBook(context context.Context, book string) ([]*Kitab, error) {
	t := schema.CoreKitab
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s, %s`,
		columnList(), t.Table, t.Book, t.Ordinal, t.KitabID)

	rows, err := repository.pool.Query(context, query, book)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres: failed to list kitabs: %w", err))
	}
	defer rows.Close()

	var entities []*Kitab
	for rows.Next() {
		entity, err := scanRow(rows)
		if err != nil {
			return nil, dberr.Wrap(fmt.Errorf("postgres: failed to hydrate kitab: %w", err))
		}
		entities = append(entities, entity)
	}
	return entities, rows.Err()
}

/*
Insert persists a new chapter entity.

Returns:
  - error: dberr.ErrDuplicate on primary key conflict
*/
func (repository *repository) Insert(context context.Context, entity *Kitab) error {
	t := schema.CoreKitab
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, NOW(), NOW())
	`,
		t.Table,
		t.KitabID, t.Book, t.Ordinal, t.NameAr, t.NameTh, t.NameEn,
		t.HadithCount, t.CreatedAt, t.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		entity.ID, entity.Book, entity.Ordinal,
		entity.NameAr, entity.NameTh, entity.NameEn,
		entity.HadithCount,
	)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: failed to insert kitab: %w", err))
	}
	return nil
}

/*
Update overwrites the mutable columns of an existing chapter.

Returns:
  - error: dberr.ErrNotFound if no row matched
*/
func (repository *repository) Update(context context.Context, entity *Kitab) error {
	t := schema.CoreKitab
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = NULLIF($2, ''), %s = NULLIF($3, ''), %s = NULLIF($4, ''),
			%s = $5, %s = NOW()
		WHERE %s = $6
	`,
		t.Table,
		t.Ordinal, t.NameAr, t.NameTh, t.NameEn,
		t.HadithCount, t.UpdatedAt,
		t.KitabID,
	)

	result, err := repository.pool.Exec(context, query,
		entity.Ordinal, entity.NameAr, entity.NameTh, entity.NameEn,
		entity.HadithCount, entity.ID,
	)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: failed to update kitab: %w", err))
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
UpdateCount refreshes only the cached hadith count of a chapter.
*/
func (repository *repository) UpdateCount(context context.Context, id string, count int) error {
	t := schema.CoreKitab
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2`,
		t.Table, t.HadithCount, t.UpdatedAt, t.KitabID)

	result, err := repository.pool.Exec(context, query, count, id)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: failed to update kitab count: %w", err))
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
Delete removes a chapter entity.
*/
func (repository *repository) Delete(context context.Context, id string) error {
	t := schema.CoreKitab
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.KitabID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: failed to delete kitab: %w", err))
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
