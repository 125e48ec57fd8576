// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

package kitab

import "context"

// # Kitab Data Access

// Repository defines the data access contract for chapter entities.
type Repository interface {

	/*
		FindByID returns the chapter with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string ({book}_kitab_{ordinal})

		Returns:
		  - *Kitab: Hydrated chapter
		  - error: dberr.ErrNotFound if missing
	*/
	FindByID(context context.Context, id string) (*Kitab, error)

	/*
		ListByBook returns all chapters of a collection ordered by ordinal.

		Parameters:
		  - context: context.Context
		  - book: string (Collection tag)

		Returns:
		  - []*Kitab: Ordered chapter list
		  - error: Storage failures
	*/
	ListByBook(context context.Context, book string) ([]*Kitab, error)

	/*
		Insert persists a new chapter entity.

		Parameters:
		  - context: context.Context
		  - entity: *Kitab

		Returns:
		  - error: dberr.ErrDuplicate on primary key conflict
	*/
	Insert(context context.Context, entity *Kitab) error

	/*
		Update overwrites the mutable columns of an existing chapter.

		Parameters:
		  - context: context.Context
		  - entity: *Kitab

		Returns:
		  - error: dberr.ErrNotFound if the chapter is absent
	*/
	Update(context context.Context, entity *Kitab) error

	/*
		UpdateCount refreshes only the cached hadith count of a chapter.

		Parameters:
		  - context: context.Context
		  - id: string
		  - count: int

		Returns:
		  - error: dberr.ErrNotFound if the chapter is absent
	*/
	UpdateCount(context context.Context, id string, count int) error

	/*
		Delete removes a chapter entity.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: dberr.ErrNotFound if the chapter is absent
	*/
	Delete(context context.Context, id string) error
}
