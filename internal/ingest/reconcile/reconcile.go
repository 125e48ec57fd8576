// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

/*
Package reconcile materializes chapter entities from denormalized names.

Feeds only carry chapter names inline on each record, and not in the same
languages: edition feeds supply English section names only, hadithapi
feeds Arabic and English. The reconciler scans a collection, groups
records by their (Arabic, Thai, English) name tuple, orders the groups by
their smallest hadith number, and upserts one kitab entity per group.
Records are then stamped with the entity's ID so the API can serve
chapter-scoped queries.

The whole pass is idempotent: rerunning it with no source changes creates
no entities and modifies no rows beyond the cached per-chapter counts.
*/
package reconcile

import (
	"context"
	"log/slog"
	"sort"

	"github.com/sunnahth/hadith-api/internal/core/hadith"
	"github.com/sunnahth/hadith-api/internal/core/kitab"
	"github.com/sunnahth/hadith-api/internal/platform/cache"
	"github.com/sunnahth/hadith-api/internal/platform/constants"
	"github.com/sunnahth/hadith-api/internal/platform/database/schema"
	"github.com/sunnahth/hadith-api/internal/platform/dberr"
)

// insertAttempts bounds ID disambiguation retries; collisions are resolved
// with fresh nanosecond suffixes, never surfaced as failures.
const insertAttempts = 5

// # Reconciler

// Reconciler rebuilds the chapter entities of one collection at a time.
// It satisfies [kitab.Synchronizer].
type Reconciler struct {
	hadithRepo hadith.Repository
	kitabRepo  kitab.Repository
	cache      *cache.Cache
	logger     *slog.Logger
}

// New constructs a [Reconciler].
func New(hadithRepo hadith.Repository, kitabRepo kitab.Repository, cacheStore *cache.Cache, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		hadithRepo: hadithRepo,
		kitabRepo:  kitabRepo,
		cache:      cacheStore,
		logger:     logger,
	}
}

// # Grouping

// nameTuple is the grouping key: the denormalized chapter names exactly
// as they sit on the records. English is part of the key because edition
// feeds carry no Arabic or Thai chapter names at all.
type nameTuple struct {
	ar string
	th string
	en string
}

// group accumulates one chapter-to-be during the scan.
type group struct {
	names    nameTuple
	count    int     // Records in the group
	minKey   float64 // Smallest numeric hadith number
	external int     // Smallest external ordinal carried by the feed; 0 when none
}

/*
SyncBook reconciles the chapter entities of one collection.

Description: Groups all records by (kitab_ar, kitab_th, kitab_en) with
the all-empty bucket excluded, orders groups by their smallest numeric
hadith number (unparseable numbers sort last), and assigns 1-based
sequential ordinals unless a group carries an external one. Groups whose
names match an existing chapter only get their cached count refreshed;
the rest are inserted with collision-disambiguated IDs. Finally every
record still missing its chapter link is stamped with the entity ID.

Parameters:
  - context: context.Context
  - book: string (Collection tag)

Returns:
  - kitab.SyncResult: Created/refreshed/linked counters
  - error: Store scan or write failures
*/
func (reconciler *Reconciler) SyncBook(context context.Context, book string) (kitab.SyncResult, error) {
	var result kitab.SyncResult

	groups, err := reconciler.collectGroups(context, book)
	if err != nil {
		return result, err
	}

	existing, err := reconciler.kitabRepo.ListByBook(context, book)
	if err != nil {
		return result, err
	}

	for position, current := range groups {
		ordinal := position + 1
		if current.external > 0 {
			ordinal = current.external
		}

		entity, err := reconciler.upsertEntity(context, book, current, ordinal, existing, &result)
		if err != nil {
			return result, err
		}

		linked, err := reconciler.linkRecords(context, book, current.names, entity.ID)
		if err != nil {
			return result, err
		}
		result.Linked += linked
	}

	reconciler.cache.Delete(context, constants.RedisPrefixKitabs+book)
	reconciler.logger.Info("reconcile_finished",
		slog.String("book", book),
		slog.Int("created", result.Created),
		slog.Int("refreshed", result.Refreshed),
		slog.Int64("linked", result.Linked),
	)
	return result, nil
}

// collectGroups scans the collection and builds ordered chapter groups.
func (reconciler *Reconciler) collectGroups(context context.Context, book string) ([]*group, error) {
	byName := map[nameTuple]*group{}

	err := reconciler.hadithRepo.Scan(context, hadith.Filter{Book: book}, func(record *hadith.Hadith) error {
		names := nameTuple{ar: record.KitabAr, th: record.KitabTh, en: record.KitabEn}
		if names.ar == "" && names.th == "" && names.en == "" {
			return nil
		}

		current, ok := byName[names]
		if !ok {
			current = &group{names: names, minKey: hadith.SortKey(record.Number)}
			byName[names] = current
		}

		current.count++
		if key := hadith.SortKey(record.Number); key < current.minKey {
			current.minKey = key
		}
		if record.KitabOrdinal > 0 && (current.external == 0 || record.KitabOrdinal < current.external) {
			current.external = record.KitabOrdinal
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	groups := make([]*group, 0, len(byName))
	for _, current := range byName {
		groups = append(groups, current)
	}

	// Order by smallest hadith number; name tuple breaks ties so reruns
	// always see the same sequence.
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].minKey != groups[j].minKey {
			return groups[i].minKey < groups[j].minKey
		}
		if groups[i].names.ar != groups[j].names.ar {
			return groups[i].names.ar < groups[j].names.ar
		}
		if groups[i].names.th != groups[j].names.th {
			return groups[i].names.th < groups[j].names.th
		}
		return groups[i].names.en < groups[j].names.en
	})
	return groups, nil
}

// upsertEntity matches a group against existing chapters by name, creating
// a new entity when none matches.
func (reconciler *Reconciler) upsertEntity(context context.Context, book string, current *group, ordinal int, existing []*kitab.Kitab, result *kitab.SyncResult) (*kitab.Kitab, error) {

	for _, candidate := range existing {
		if matchesNames(candidate, current.names) {
			if candidate.HadithCount != current.count {
				if err := reconciler.kitabRepo.UpdateCount(context, candidate.ID, current.count); err != nil {
					return nil, err
				}
			}
			result.Refreshed++
			return candidate, nil
		}
	}

	entity := &kitab.Kitab{
		ID:          kitab.ComposeID(book, ordinal),
		Book:        book,
		Ordinal:     ordinal,
		NameAr:      current.names.ar,
		NameTh:      current.names.th,
		NameEn:      current.names.en,
		HadithCount: current.count,
	}

	var err error
	for attempt := 0; attempt < insertAttempts; attempt++ {
		err = reconciler.kitabRepo.Insert(context, entity)
		if !dberr.IsDuplicate(err) {
			break
		}
		entity.ID = kitab.DisambiguateID(kitab.ComposeID(book, ordinal))
	}
	if err != nil {
		return nil, err
	}

	result.Created++
	reconciler.logger.Info("kitab_materialized",
		slog.String("kitab_id", entity.ID),
		slog.String("book", book),
		slog.Int("ordinal", ordinal),
		slog.Int("records", current.count),
	)
	return entity, nil
}

// matchesNames reports whether an existing chapter carries either of the
// group's non-empty names.
func matchesNames(candidate *kitab.Kitab, names nameTuple) bool {
	if names.th != "" && candidate.NameTh == names.th {
		return true
	}
	if names.ar != "" && candidate.NameAr == names.ar {
		return true
	}
	if names.en != "" && candidate.NameEn == names.en {
		return true
	}
	return false
}

// linkRecords stamps the entity ID onto every record of the name tuple
// that is not already linked.
func (reconciler *Reconciler) linkRecords(context context.Context, book string, names nameTuple, kitabID string) (int64, error) {
	ar, th, en := names.ar, names.th, names.en
	filter := hadith.Filter{
		Book:           book,
		KitabAr:        &ar,
		KitabTh:        &th,
		KitabEn:        &en,
		ExcludeKitabID: kitabID,
	}
	return reconciler.hadithRepo.BulkUpdate(context, filter, map[string]any{
		schema.CoreHadith.KitabID: kitabID,
	})
}

// compile-time interface check
var _ kitab.Synchronizer = (*Reconciler)(nil)
