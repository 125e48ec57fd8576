// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

/*
Package importer upserts feed drafts into the archive.

The engine is deliberately boring: look each draft up by its composite ID,
insert the missing ones as pending, backfill Arabic text onto records that
lack it, and skip everything else. Importing the same payload twice is a
no-op the second time. Per-record failures become counters; only a feed
fetch failure aborts a collection's import.
*/
package importer

import (
	"context"
	"log/slog"

	"github.com/sunnahth/hadith-api/internal/core/book"
	"github.com/sunnahth/hadith-api/internal/core/hadith"
	"github.com/sunnahth/hadith-api/internal/ingest/source"
	"github.com/sunnahth/hadith-api/internal/platform/database/schema"
	"github.com/sunnahth/hadith-api/internal/platform/dberr"
)

// # Run Summary

// Summary counts the outcome of one collection import.
type Summary struct {
	Book          string `json:"book"`
	Imported      int    `json:"imported"`       // New records inserted as pending
	Backfilled    int    `json:"backfilled"`     // Existing records whose Arabic text was filled
	Skipped       int    `json:"skipped"`        // Records already present and populated
	Errored       int    `json:"errored"`        // Per-record store failures
	SourceSkipped int    `json:"source_skipped"` // Feed items dropped by the adapter
}

// # Importer

// Importer runs the upsert/dedup engine for one collection at a time.
type Importer struct {
	loader *source.Loader
	repo   hadith.Repository
	logger *slog.Logger
}

// New constructs an [Importer].
func New(loader *source.Loader, repo hadith.Repository, logger *slog.Logger) *Importer {
	return &Importer{
		loader: loader,
		repo:   repo,
		logger: logger,
	}
}

/*
ImportBook fetches a collection's feed and upserts every draft.

Description: Absent records are inserted with status pending. Records
present with empty Arabic text while the draft carries it get only their
content_ar column written. Records present and populated are skipped.
Duplicate-key races during insert count as skips, never failures.

Parameters:
  - context: context.Context
  - collection: book.Collection (Registry entry)

Returns:
  - Summary: Imported/backfilled/skipped/errored counters
  - error: Feed fetch or parse failure; aborts this collection only
*/
func (importer *Importer) ImportBook(context context.Context, collection book.Collection) (Summary, error) {
	summary := Summary{Book: collection.Slug}

	drafts, stats, err := importer.loader.Load(context, collection)
	if err != nil {
		return summary, err
	}
	summary.SourceSkipped = stats.Skipped

	importer.logger.Info("import_started",
		slog.String("book", collection.Slug),
		slog.Int("drafts", len(drafts)),
		slog.Int("source_skipped", stats.Skipped),
	)

	for _, draft := range drafts {
		importer.upsert(context, draft, &summary)
	}

	importer.logger.Info("import_finished",
		slog.String("book", collection.Slug),
		slog.Int("imported", summary.Imported),
		slog.Int("backfilled", summary.Backfilled),
		slog.Int("skipped", summary.Skipped),
		slog.Int("errored", summary.Errored),
	)
	return summary, nil
}

// upsert applies one draft and bumps the matching counter.
func (importer *Importer) upsert(context context.Context, draft source.Draft, summary *Summary) {
	id := hadith.ComposeID(draft.Book, draft.Number)

	existing, err := importer.repo.FindByID(context, id)
	switch {
	case dberr.IsNotFound(err):
		insertErr := importer.repo.Insert(context, newRecord(id, draft))
		if dberr.IsDuplicate(insertErr) {
			summary.Skipped++
			return
		}
		if insertErr != nil {
			summary.Errored++
			importer.logger.Warn("import_insert_failed",
				slog.String("hadith_id", id), slog.String("error", insertErr.Error()))
			return
		}
		summary.Imported++

	case err != nil:
		summary.Errored++
		importer.logger.Warn("import_lookup_failed",
			slog.String("hadith_id", id), slog.String("error", err.Error()))

	case existing.ContentAr == "" && draft.ContentAr != "":
		fields := map[string]any{schema.CoreHadith.ContentAr: draft.ContentAr}
		if updateErr := importer.repo.PartialUpdate(context, id, fields); updateErr != nil {
			summary.Errored++
			importer.logger.Warn("import_backfill_failed",
				slog.String("hadith_id", id), slog.String("error", updateErr.Error()))
			return
		}
		summary.Backfilled++

	default:
		summary.Skipped++
	}
}

// newRecord maps a draft onto a fresh pending record.
func newRecord(id string, draft source.Draft) *hadith.Hadith {
	return &hadith.Hadith{
		ID:           id,
		Book:         draft.Book,
		Number:       draft.Number,
		KitabOrdinal: draft.KitabOrdinal,
		KitabAr:      draft.KitabAr,
		KitabEn:      draft.KitabEn,
		BabAr:        draft.BabAr,
		ContentAr:    draft.ContentAr,
		Grade:        draft.Grade,
		Status:       hadith.StatusPending,
	}
}
