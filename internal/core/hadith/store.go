// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

package hadith

import "context"

// # Hadith Data Access

// Repository defines the data access contract for hadith records.
type Repository interface {

	/*
		FindByID returns the hadith with the given composite ID.

		Parameters:
		  - context: context.Context
		  - id: string ({book}_{number})

		Returns:
		  - *Hadith: Hydrated record
		  - error: dberr.ErrNotFound if missing
	*/
	FindByID(context context.Context, id string) (*Hadith, error)

	/*
		Insert persists a new hadith record.

		Parameters:
		  - context: context.Context
		  - record: *Hadith

		Returns:
		  - error: dberr.ErrDuplicate on primary key conflict
	*/
	Insert(context context.Context, record *Hadith) error

	/*
		PartialUpdate modifies only the named columns of a single record.
		Columns not present in fields are left untouched.

		Parameters:
		  - context: context.Context
		  - id: string ({book}_{number})
		  - fields: map[string]any keyed by schema column constants

		Returns:
		  - error: dberr.ErrNotFound if the record is absent
	*/
	PartialUpdate(context context.Context, id string, fields map[string]any) error

	/*
		BulkUpdate applies the same column changes to every record matching
		the filter.

		Parameters:
		  - context: context.Context
		  - filter: Filter (AND-combined predicates)
		  - fields: map[string]any keyed by schema column constants

		Returns:
		  - int64: Number of modified rows
		  - error: Storage failures
	*/
	BulkUpdate(context context.Context, filter Filter, fields map[string]any) (int64, error)

	/*
		Count returns the number of records matching the filter.

		Parameters:
		  - context: context.Context
		  - filter: Filter

		Returns:
		  - int64: Matching record count
		  - error: Storage failures
	*/
	Count(context context.Context, filter Filter) (int64, error)

	/*
		Scan streams every record matching the filter through fn, ordered
		by ID. Batching is handled internally; a non-nil error from fn
		stops the scan and is returned unchanged.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - fn: func(*Hadith) error (per-record callback)

		Returns:
		  - error: Storage failure or the first error returned by fn
	*/
	Scan(context context.Context, filter Filter, fn func(*Hadith) error) error

	/*
		List returns a page of records matching the filter, ordered by
		(book, numeric hadith number).

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit: int
		  - offset: int

		Returns:
		  - []*Hadith: Page of hydrated records
		  - int: Total matching records
		  - error: Storage failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Hadith, int, error)
}
