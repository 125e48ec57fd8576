// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

package book

import (
	"context"
	"log/slog"

	"github.com/sunnahth/hadith-api/internal/platform/cache"
	"github.com/sunnahth/hadith-api/internal/platform/constants"
	"github.com/sunnahth/hadith-api/internal/platform/dberr"
	"github.com/sunnahth/hadith-api/pkg/slice"
)

// statsGlobalKey caches the whole-archive aggregate under a fixed suffix.
const statsGlobalKey = "all"

// # Service Layer

// Service orchestrates the business logic for collections.
type Service struct {
	repo   Repository
	cache  *cache.Cache
	logger *slog.Logger
}

// NewService constructs a new [Service] with its required collaborators.
func NewService(repo Repository, cacheStore *cache.Cache, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cacheStore,
		logger: logger,
	}
}

// # Dashboard Aggregates

/*
ListBooks returns translation progress for every collection.

Description: Collections present in the archive come first, ordered by
size. Registry collections with no imported data yet are appended with
zero counts so the dashboard always shows the full roster. Served from the
Redis cache when warm.

Parameters:
  - context: context.Context

Returns:
  - []Progress: One entry per known collection
  - error: Storage failures
*/
func (service *Service) ListBooks(context context.Context) ([]Progress, error) {
	var cached []Progress
	if service.cache.Get(context, constants.RedisPrefixBookList, &cached) {
		return cached, nil
	}

	entries, err := service.repo.AggregateProgress(context)
	if err != nil {
		return nil, err
	}

	// Append registry collections not yet imported
	present := map[string]bool{}
	for _, entry := range entries {
		present[entry.Book] = true
	}
	missing := slice.Filter(Registry(), func(collection Collection) bool {
		return !present[collection.Slug]
	})
	entries = append(entries, slice.Map(missing, func(collection Collection) Progress {
		return NewProgress(collection.Slug, 0, 0)
	})...)

	service.cache.Set(context, constants.RedisPrefixBookList, entries, constants.CacheTTL)
	return entries, nil
}

/*
GetStats returns the translation totals for one collection, or the whole
archive when book is empty.

Parameters:
  - context: context.Context
  - book: string (Collection tag, optional)

Returns:
  - Progress: Totals for the requested scope
  - error: Storage failures
*/
func (service *Service) GetStats(context context.Context, book string) (Progress, error) {
	suffix := book
	if suffix == "" {
		suffix = statsGlobalKey
	}
	cacheKey := constants.RedisPrefixStats + suffix

	var cached Progress
	if service.cache.Get(context, cacheKey, &cached) {
		return cached, nil
	}

	progress, err := service.repo.CountProgress(context, book)
	if err != nil {
		return Progress{}, err
	}

	service.cache.Set(context, cacheKey, progress, constants.CacheTTL)
	return progress, nil
}

// # Book Metadata

/*
GetInfo returns the editable metadata of a collection. A collection that
was never annotated yields an empty default rather than an error.

Returns:
  - *Info: Stored or default metadata
*/
func (service *Service) GetInfo(context context.Context, book string) (*Info, error) {
	info, err := service.repo.FindInfo(context, book)
	if dberr.IsNotFound(err) {
		nameEn, _ := DisplayNames(book)
		return &Info{Book: book, Name: nameEn}, nil
	}
	if err != nil {
		return nil, err
	}
	return info, nil
}

/*
UpdateInfo saves the metadata of a collection, inserting on first write.

Returns:
  - *Info: The metadata after the write
*/
func (service *Service) UpdateInfo(context context.Context, info *Info) (*Info, error) {
	if err := service.repo.UpsertInfo(context, info); err != nil {
		return nil, err
	}

	service.logger.Info("book_info_updated", slog.String("book", info.Book))
	return service.repo.FindInfo(context, info.Book)
}
