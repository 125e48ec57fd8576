// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

package importer_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunnahth/hadith-api/internal/core/book"
	"github.com/sunnahth/hadith-api/internal/core/hadith"
	"github.com/sunnahth/hadith-api/internal/core/hadith/hadithtest"
	"github.com/sunnahth/hadith-api/internal/ingest/importer"
	"github.com/sunnahth/hadith-api/internal/ingest/source"
)

const feedDocument = `{
	"metadata": {
		"sections": {"1": "Revelation"},
		"section_details": {
			"1": {"hadithnumber_first": 1, "hadithnumber_last": 10}
		}
	},
	"hadiths": [
		{"hadithnumber": 1, "text": "النص الأول", "grades": [{"name": "Al-Albani", "grade": "Sahih"}]},
		{"hadithnumber": 2, "text": "النص الثاني", "grades": []},
		{"hadithnumber": 3, "text": "", "grades": []}
	]
}`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newImporter(t *testing.T, feed string) (*importer.Importer, *hadithtest.Repo, book.Collection) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.Write([]byte(feed))
	}))
	t.Cleanup(server.Close)

	collection := book.Collection{
		Slug:    "bukhari",
		FeedURL: server.URL,
		Format:  book.FormatEdition,
	}

	repo := hadithtest.NewRepo()
	loader := source.NewLoader(source.NewFetcher(), "", quietLogger())
	return importer.New(loader, repo, quietLogger()), repo, collection
}

/*
TestImportBook verifies that a fresh feed lands as pending records with
composed IDs and section linkage, and that the same feed is a no-op the
second time.
*/
func TestImportBook(t *testing.T) {
	engine, repo, collection := newImporter(t, feedDocument)

	summary, err := engine.ImportBook(context.Background(), collection)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Imported)
	assert.Equal(t, 1, summary.SourceSkipped, "empty text is dropped by the adapter")
	assert.Zero(t, summary.Skipped)
	assert.Zero(t, summary.Errored)
	assert.Equal(t, 2, repo.Len())

	record := repo.Get(hadith.ComposeID("bukhari", "1"))
	require.NotNil(t, record)
	assert.Equal(t, hadith.StatusPending, record.Status)
	assert.Equal(t, "النص الأول", record.ContentAr)
	assert.Equal(t, "Sahih", record.Grade)
	assert.Equal(t, 1, record.KitabOrdinal)
	assert.Equal(t, "Revelation", record.KitabEn)

	// Idempotency: the second pass sees every record present and populated.
	second, err := engine.ImportBook(context.Background(), collection)
	require.NoError(t, err)
	assert.Zero(t, second.Imported)
	assert.Equal(t, 2, second.Skipped)
	assert.Equal(t, 2, repo.Len())
}

/*
TestImportBook_Backfill verifies that a record with empty Arabic text gets
only its content column written when the draft carries the text.
*/
func TestImportBook_Backfill(t *testing.T) {
	engine, repo, collection := newImporter(t, feedDocument)

	id := hadith.ComposeID("bukhari", "1")
	repo.Seed(&hadith.Hadith{
		ID:        id,
		Book:      "bukhari",
		Number:    "1",
		ContentTh: "คำแปลที่มีอยู่",
		Status:    hadith.StatusTranslated,
	})

	summary, err := engine.ImportBook(context.Background(), collection)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Backfilled)
	assert.Equal(t, 1, summary.Imported)

	record := repo.Get(id)
	require.NotNil(t, record)
	assert.Equal(t, "النص الأول", record.ContentAr)
	assert.Equal(t, "คำแปลที่มีอยู่", record.ContentTh, "backfill writes the Arabic column only")
	assert.Equal(t, hadith.StatusTranslated, record.Status)
}

/*
TestImportBook_FeedFailure verifies that a fetch failure aborts the
collection without touching the store.
*/
func TestImportBook_FeedFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	collection := book.Collection{Slug: "bukhari", FeedURL: server.URL, Format: book.FormatEdition}
	repo := hadithtest.NewRepo()
	engine := importer.New(source.NewLoader(source.NewFetcher(), "", quietLogger()), repo, quietLogger())

	_, err := engine.ImportBook(context.Background(), collection)
	require.Error(t, err)
	assert.Zero(t, repo.Len())
}
