// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

package book

import "context"

// # Book Data Access

// Repository defines the data access contract for book metadata and
// archive-wide progress aggregates.
type Repository interface {

	/*
		FindInfo returns the editable metadata of a collection.

		Parameters:
		  - context: context.Context
		  - book: string (Collection tag)

		Returns:
		  - *Info: Stored metadata
		  - error: dberr.ErrNotFound when none was ever saved
	*/
	FindInfo(context context.Context, book string) (*Info, error)

	/*
		UpsertInfo saves the metadata of a collection, inserting on first write.

		Parameters:
		  - context: context.Context
		  - info: *Info

		Returns:
		  - error: Storage failures
	*/
	UpsertInfo(context context.Context, info *Info) error

	/*
		AggregateProgress returns per-collection totals and translated counts
		over the whole archive, ordered by total descending.

		Parameters:
		  - context: context.Context

		Returns:
		  - []Progress: One entry per collection present in the archive
		  - error: Storage failures
	*/
	AggregateProgress(context context.Context) ([]Progress, error)

	/*
		CountProgress returns the totals for one collection, or the whole
		archive when book is empty.

		Parameters:
		  - context: context.Context
		  - book: string (Collection tag, optional)

		Returns:
		  - Progress: Totals for the requested scope
		  - error: Storage failures
	*/
	CountProgress(context context.Context, book string) (Progress, error)
}
