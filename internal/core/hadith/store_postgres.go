// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

/*
Package hadith provides the PostgreSQL implementation for narration data access.

It leans on a small set of Postgres features to keep the archive queries flat:
  - Window Functions: Calculates total result counts without a separate 'COUNT' query.
  - Expression Ordering: Sorts records by the numeric value of the string
    hadith number, with unparseable numbers pushed to the end.
  - Keyset Scans: Streams whole-archive traversals in fixed-size batches.

The repository treats empty string and NULL as the same "absent" value for
every nullable text column, so feed quirks never split the filter semantics.
*/
package hadith

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sunnahth/hadith-api/internal/platform/database/schema"
	"github.com/sunnahth/hadith-api/internal/platform/dberr"
)

// scanBatchSize bounds the rows held in memory during a full-archive scan.
const scanBatchSize = 500

// # PostgreSQL Repository

// repository implements the [Repository] interface using pgx.
type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed hadith store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// # Query Construction

// columnList is the canonical SELECT column set, each nullable text column
// collapsed to '' so entity hydration never deals with NULLs.
func columnList() string {
	t := schema.CoreHadith
	return fmt.Sprintf(`
		%s, %s, %s,
		COALESCE(%s, ''), COALESCE(%s, 0),
		COALESCE(%s, ''), COALESCE(%s, ''), COALESCE(%s, ''),
		COALESCE(%s, ''), COALESCE(%s, ''),
		COALESCE(%s, ''), COALESCE(%s, ''),
		COALESCE(%s, ''), COALESCE(%s, ''),
		%s, %s, %s`,
		t.HadithID, t.Book, t.HadithNo,
		t.KitabID, t.KitabOrdinal,
		t.KitabAr, t.KitabTh, t.KitabEn,
		t.BabAr, t.BabTh,
		t.ContentAr, t.ContentTh,
		t.Grade, t.TranslationNotes,
		t.Status, t.CreatedAt, t.UpdatedAt,
	)
}

// numericOrder is the ORDER BY expression matching [SortKey]: numbers sort by
// value, anything unparseable sorts last.
func numericOrder() string {
	t := schema.CoreHadith
	return fmt.Sprintf(
		`%s, CASE WHEN %s ~ '^[0-9]+(\.[0-9]+)?$' THEN %s::numeric ELSE 'Infinity'::numeric END, %s`,
		t.Book, t.HadithNo, t.HadithNo, t.HadithID,
	)
}

// whereClause renders the filter into SQL conditions, appending bind values
// to args. It always emits at least one condition.
func whereClause(filter Filter, args []any) (string, []any) {
	t := schema.CoreHadith
	conditions := []string{"1=1"}

	appendEq := func(column, value string) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	appendCoalesced := func(column, value string) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("COALESCE(%s, '') = $%d", column, len(args)))
	}

	if filter.Book != "" {
		appendEq(t.Book, filter.Book)
	}
	if filter.KitabID != "" {
		appendCoalesced(t.KitabID, filter.KitabID)
	}
	if filter.Status != "" {
		appendEq(t.Status, string(filter.Status))
	}
	if filter.KitabAr != nil {
		appendCoalesced(t.KitabAr, *filter.KitabAr)
	}
	if filter.KitabTh != nil {
		appendCoalesced(t.KitabTh, *filter.KitabTh)
	}
	if filter.KitabEn != nil {
		appendCoalesced(t.KitabEn, *filter.KitabEn)
	}
	if filter.ExcludeKitabID != "" {
		args = append(args, filter.ExcludeKitabID)
		conditions = append(conditions, fmt.Sprintf("COALESCE(%s, '') <> $%d", t.KitabID, len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(%s ILIKE $%d OR %s ILIKE $%d)",
			t.ContentAr, len(args), t.ContentTh, len(args)))
	}
	if filter.MissingTarget {
		conditions = append(conditions, fmt.Sprintf("COALESCE(%s, '') = ''", t.ContentTh))
	}
	if filter.MissingSource {
		conditions = append(conditions, fmt.Sprintf("COALESCE(%s, '') = ''", t.ContentAr))
	}

	return strings.Join(conditions, " AND "), args
}

// scanRow hydrates one entity from a row positioned on columnList output.
func scanRow(row interface{ Scan(...any) error }) (*Hadith, error) {
	var record Hadith
	err := row.Scan(
		&record.ID, &record.Book, &record.Number,
		&record.KitabID, &record.KitabOrdinal,
		&record.KitabAr, &record.KitabTh, &record.KitabEn,
		&record.BabAr, &record.BabTh,
		&record.ContentAr, &record.ContentTh,
		&record.Grade, &record.TranslationNotes,
		&record.Status, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// # Repository Implementation

/*
FindByID returns the record with the given composite ID.

Returns:
  - *Hadith: Hydrated record
  - error: dberr.ErrNotFound on absent rows
*/
func (repository *repository) FindByID(context context.Context, id string) (*Hadith, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		columnList(), schema.CoreHadith.Table, schema.CoreHadith.HadithID)

	record, err := scanRow(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err)
	}
	return record, nil
}

/*
Insert persists a new record.

Description: Empty strings in nullable text columns are stored as NULL via
NULLIF, keeping the "absent" representation uniform regardless of which
adapter produced the draft.

Returns:
  - error: dberr.ErrDuplicate on primary key conflict
*/
func (repository *repository) Insert(context context.Context, record *Hadith) error {
	t := schema.CoreHadith
	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s,
			%s, %s, %s, %s, %s,
			%s, %s, %s, %s, %s,
			%s, %s
		) VALUES (
			$1, $2, $3, NULLIF($4, ''), NULLIF($5, 0),
			NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''),
			NULLIF($11, ''), NULLIF($12, ''), NULLIF($13, ''), NULLIF($14, ''), $15,
			NOW(), NOW()
		)
	`,
		t.Table,
		t.HadithID, t.Book, t.HadithNo, t.KitabID, t.KitabOrdinal,
		t.KitabAr, t.KitabTh, t.KitabEn, t.BabAr, t.BabTh,
		t.ContentAr, t.ContentTh, t.Grade, t.TranslationNotes, t.Status,
		t.CreatedAt, t.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		record.ID, record.Book, record.Number, record.KitabID, record.KitabOrdinal,
		record.KitabAr, record.KitabTh, record.KitabEn, record.BabAr, record.BabTh,
		record.ContentAr, record.ContentTh, record.Grade, record.TranslationNotes, string(record.Status),
	)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: failed to insert hadith: %w", err))
	}
	return nil
}

/*
PartialUpdate modifies only the named columns of a single record.

Description: Field keys are schema column constants. Keys are sorted before
query construction so the generated SQL is deterministic for a given field
set. The updatedat column is always refreshed.

Returns:
  - error: dberr.ErrNotFound if no row matched
*/
func (repository *repository) PartialUpdate(context context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	t := schema.CoreHadith
	assignments, args := buildAssignments(fields)
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE %s SET %s, %s = NOW() WHERE %s = $%d`,
		t.Table, strings.Join(assignments, ", "), t.UpdatedAt, t.HadithID, len(args))

	result, err := repository.pool.Exec(context, query, args...)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: failed to update hadith: %w", err))
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
BulkUpdate applies the same column changes to every record matching the filter.

Returns:
  - int64: Number of modified rows
*/
func (repository *repository) BulkUpdate(context context.Context, filter Filter, fields map[string]any) (int64, error) {
	if len(fields) == 0 {
		return 0, nil
	}

	t := schema.CoreHadith
	assignments, args := buildAssignments(fields)
	where, args := whereClause(filter, args)

	query := fmt.Sprintf(`UPDATE %s SET %s, %s = NOW() WHERE %s`,
		t.Table, strings.Join(assignments, ", "), t.UpdatedAt, where)

	result, err := repository.pool.Exec(context, query, args...)
	if err != nil {
		return 0, dberr.Wrap(fmt.Errorf("postgres: failed to bulk update hadiths: %w", err))
	}
	return result.RowsAffected(), nil
}

/*
Count returns the number of records matching the filter.
*/
func (repository *repository) Count(context context.Context, filter Filter) (int64, error) {
	where, args := whereClause(filter, nil)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, schema.CoreHadith.Table, where)

	var total int64
	if err := repository.pool.QueryRow(context, query, args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(fmt.Errorf("postgres: failed to count hadiths: %w", err))
	}
	return total, nil
}

/*
Scan streams every matching record through fn in fixed-size keyset batches.

Description: Batches page on the primary key rather than OFFSET so a scan
over a large collection stays index-driven. Writes performed by fn against
already-visited rows do not disturb the traversal.

Returns:
  - error: Storage failure or the first error returned by fn
*/
func (repository *repository) Scan(context context.Context, filter Filter, fn func(*Hadith) error) error {
	t := schema.CoreHadith
	lastID := ""

	for {
		where, args := whereClause(filter, nil)
		args = append(args, lastID)
		query := fmt.Sprintf(`
			SELECT %s FROM %s
			WHERE %s AND %s > $%d
			ORDER BY %s
			LIMIT %d
		`, columnList(), t.Table, where, t.HadithID, len(args), t.HadithID, scanBatchSize)

		batch, err := repository.fetchBatch(context, query, args)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}

		for _, record := range batch {
			if err := fn(record); err != nil {
				return err
			}
		}
		lastID = batch[len(batch)-1].ID

		if len(batch) < scanBatchSize {
			return nil
		}
	}
}

// fetchBatch materializes one page of scan results before the callback runs,
// so fn may issue writes on the same pool without holding a row stream open.
func (repository *repository) fetchBatch(context context.Context, query string, args []any) ([]*Hadith, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres: failed to scan hadiths: %w", err))
	}
	defer rows.Close()

	var batch []*Hadith
	for rows.Next() {
		record, err := scanRow(rows)
		if err != nil {
			return nil, dberr.Wrap(fmt.Errorf("postgres: failed to hydrate hadith: %w", err))
		}
		batch = append(batch, record)
	}
	return batch, rows.Err()
}

/*
List returns a page of records ordered by (book, numeric hadith number).

Returns:
  - []*Hadith: Page of hydrated records
  - int: Total matching records
*/
func (repository *repository) List(context context.Context, filter Filter, limit, offset int) ([]*Hadith, int, error) {
	where, args := whereClause(filter, nil)
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, columnList(), schema.CoreHadith.Table, where, numericOrder(), len(args)-1, len(args))

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(fmt.Errorf("postgres: failed to list hadiths: %w", err))
	}
	defer rows.Close()

	var records []*Hadith
	var totalCount int
	for rows.Next() {
		var record Hadith
		err := rows.Scan(
			&record.ID, &record.Book, &record.Number,
			&record.KitabID, &record.KitabOrdinal,
			&record.KitabAr, &record.KitabTh, &record.KitabEn,
			&record.BabAr, &record.BabTh,
			&record.ContentAr, &record.ContentTh,
			&record.Grade, &record.TranslationNotes,
			&record.Status, &record.CreatedAt, &record.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(fmt.Errorf("postgres: failed to hydrate hadith: %w", err))
		}
		records = append(records, &record)
	}

	return records, totalCount, rows.Err()
}

// buildAssignments renders a fields map into sorted SET clauses and the
// matching bind values. Text values are NULLIF'd so clearing a field and
// setting it empty are the same write.
func buildAssignments(fields map[string]any) ([]string, []any) {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	assignments := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for _, key := range keys {
		args = append(args, fields[key])
		if _, isString := fields[key].(string); isString && isNullableText(key) {
			assignments = append(assignments, fmt.Sprintf("%s = NULLIF($%d, '')", key, len(args)))
			continue
		}
		assignments = append(assignments, fmt.Sprintf("%s = $%d", key, len(args)))
	}
	return assignments, args
}

// isNullableText reports whether the column stores optional text, where ''
// must collapse to NULL on write.
func isNullableText(column string) bool {
	t := schema.CoreHadith
	switch column {
	case t.KitabID, t.KitabAr, t.KitabTh, t.KitabEn, t.BabAr, t.BabTh,
		t.ContentAr, t.ContentTh, t.Grade, t.TranslationNotes:
		return true
	}
	return false
}
