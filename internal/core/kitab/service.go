// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

package kitab

import (
	"context"
	"log/slog"

	"github.com/sunnahth/hadith-api/internal/core/hadith"
	"github.com/sunnahth/hadith-api/internal/platform/cache"
	"github.com/sunnahth/hadith-api/internal/platform/constants"
	"github.com/sunnahth/hadith-api/internal/platform/database/schema"
	"github.com/sunnahth/hadith-api/internal/platform/dberr"
	"github.com/sunnahth/hadith-api/internal/platform/validate"
)

const (
	FieldBook    = "book"
	FieldOrdinal = "ordinal"

	// insertAttempts bounds ID disambiguation retries on create.
	insertAttempts = 3
)

// # Collaborators

// SyncResult summarizes one reconciliation pass over a collection.
type SyncResult struct {
	Created   int   `json:"created"`   // New chapter entities materialized
	Refreshed int   `json:"refreshed"` // Existing chapters whose counts were updated
	Linked    int64 `json:"linked"`    // Hadith records stamped with a kitab ID
}

// Synchronizer rebuilds the chapter entities of a collection from the
// denormalized names on its hadith records.
type Synchronizer interface {
	SyncBook(context context.Context, book string) (SyncResult, error)
}

// # Service Layer

// Service orchestrates the business logic for chapter entities.
type Service struct {
	repo       Repository
	hadithRepo hadith.Repository
	cache      *cache.Cache
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its required collaborators.
func NewService(repo Repository, hadithRepo hadith.Repository, cacheStore *cache.Cache, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		hadithRepo: hadithRepo,
		cache:      cacheStore,
		logger:     logger,
	}
}

// # Retrieval Operations

/*
ListKitabs returns all chapters of a collection ordered by ordinal.

Description: Served from the Redis cache when warm; mutations on this
service invalidate the entry.

Parameters:
  - context: context.Context
  - book: string (Collection tag)

Returns:
  - []*Kitab: Ordered chapter list
  - error: Storage failures
*/
func (service *Service) ListKitabs(context context.Context, book string) ([]*Kitab, error) {
	cacheKey := constants.RedisPrefixKitabs + book

	var cached []*Kitab
	if service.cache.Get(context, cacheKey, &cached) {
		return cached, nil
	}

	entities, err := service.repo.ListByBook(context, book)
	if err != nil {
		return nil, err
	}

	service.cache.Set(context, cacheKey, entities, constants.CacheTTL)
	return entities, nil
}

/*
GetKitab retrieves a single chapter by its ID.

Returns:
  - *Kitab: The hydrated chapter
  - error: dberr.ErrNotFound if not found
*/
func (service *Service) GetKitab(context context.Context, id string) (*Kitab, error) {
	return service.repo.FindByID(context, id)
}

// # Mutation Operations

/*
CreateKitab materializes a new chapter entity.

Description: The ID is composed from the collection tag and ordinal. When a
different chapter already occupies that ID, a disambiguated ID is derived
and the insert retried, mirroring the reconciler's collision strategy.

Parameters:
  - context: context.Context
  - entity: *Kitab

Returns:
  - error: Validation or persistence errors
*/
func (service *Service) CreateKitab(context context.Context, entity *Kitab) error {

	// Business attribute validation
	validator := &validate.Validator{}
	validator.Required(FieldBook, entity.Book)
	validator.Custom(FieldOrdinal, entity.Ordinal < 1, "Ordinal must be 1 or greater")
	if err := validator.Err(); err != nil {
		return err
	}

	if entity.ID == "" {
		entity.ID = ComposeID(entity.Book, entity.Ordinal)
	}

	// Collision-tolerant insert
	var err error
	for attempt := 0; attempt < insertAttempts; attempt++ {
		err = service.repo.Insert(context, entity)
		if !dberr.IsDuplicate(err) {
			break
		}
		entity.ID = DisambiguateID(ComposeID(entity.Book, entity.Ordinal))
	}
	if err != nil {
		return err
	}

	service.invalidate(context, entity.Book)
	service.logger.Info("kitab_created",
		slog.String("kitab_id", entity.ID),
		slog.String("book", entity.Book),
		slog.Int("ordinal", entity.Ordinal),
	)
	return nil
}

// UpdateInput carries the optional fields of a chapter update. Nil pointers
// leave the stored value untouched.
type UpdateInput struct {
	Ordinal *int
	NameAr  *string
	NameTh  *string
	NameEn  *string
}

/*
UpdateKitab applies a partial update to a chapter and propagates renames.

Description: Each language field is handled independently. When a name
changes, every hadith record of this chapter whose denormalized copy still
equals the old value is bulk-updated to the new one. Fields absent from the
input, and denormalized copies that were already edited per-record, stay
untouched.

Parameters:
  - context: context.Context
  - id: string
  - input: UpdateInput

Returns:
  - *Kitab: The chapter after the update
  - error: dberr.ErrNotFound or storage failures
*/
func (service *Service) UpdateKitab(context context.Context, id string, input UpdateInput) (*Kitab, error) {
	entity, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	// Per-language rename plan: column constant, old value, new value
	t := schema.CoreHadith
	type rename struct {
		column   string
		oldValue string
		newValue string
	}
	var renames []rename

	applyName := func(column string, current *string, next *string) {
		if next != nil && *next != *current {
			renames = append(renames, rename{column: column, oldValue: *current, newValue: *next})
			*current = *next
		}
	}
	applyName(t.KitabAr, &entity.NameAr, input.NameAr)
	applyName(t.KitabTh, &entity.NameTh, input.NameTh)
	applyName(t.KitabEn, &entity.NameEn, input.NameEn)

	if input.Ordinal != nil {
		entity.Ordinal = *input.Ordinal
	}

	if err := service.repo.Update(context, entity); err != nil {
		return nil, err
	}

	// Rename propagation onto the denormalized hadith copies
	for _, r := range renames {
		oldValue := r.oldValue
		filter := hadith.Filter{Book: entity.Book, KitabID: entity.ID}
		switch r.column {
		case t.KitabAr:
			filter.KitabAr = &oldValue
		case t.KitabTh:
			filter.KitabTh = &oldValue
		case t.KitabEn:
			filter.KitabEn = &oldValue
		}

		modified, err := service.hadithRepo.BulkUpdate(context, filter, map[string]any{r.column: r.newValue})
		if err != nil {
			return nil, err
		}

		service.logger.Info("kitab_rename_propagated",
			slog.String("kitab_id", entity.ID),
			slog.String("field", r.column),
			slog.Int64("records", modified),
		)
	}

	service.invalidate(context, entity.Book)
	return entity, nil
}

/*
DeleteKitab removes a chapter entity and detaches its hadith records.

Description: Records keep their denormalized chapter names; only the entity
link is cleared. Rerunning reconciliation re-materializes the chapter.

Returns:
  - error: dberr.ErrNotFound or storage failures
*/
func (service *Service) DeleteKitab(context context.Context, id string) error {
	entity, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	detached, err := service.hadithRepo.BulkUpdate(context,
		hadith.Filter{Book: entity.Book, KitabID: id},
		map[string]any{schema.CoreHadith.KitabID: ""},
	)
	if err != nil {
		return err
	}

	service.invalidate(context, entity.Book)
	service.logger.Info("kitab_deleted",
		slog.String("kitab_id", id),
		slog.Int64("detached_records", detached),
	)
	return nil
}

// invalidate drops the cached chapter list of a collection.
func (service *Service) invalidate(context context.Context, book string) {
	service.cache.Delete(context, constants.RedisPrefixKitabs+book)
}
