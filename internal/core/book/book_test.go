// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

package book_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunnahth/hadith-api/internal/core/book"
)

// TestRegistry verifies slug uniqueness and that every entry carries a
// feed endpoint with a known format.
func TestRegistry(t *testing.T) {
	collections := book.Registry()
	require.NotEmpty(t, collections)

	seen := map[string]bool{}
	for _, collection := range collections {
		assert.False(t, seen[collection.Slug], "duplicate slug %q", collection.Slug)
		seen[collection.Slug] = true

		assert.NotEmpty(t, collection.NameEn, "%s: missing English name", collection.Slug)
		assert.NotEmpty(t, collection.NameAr, "%s: missing Arabic name", collection.Slug)
		assert.NotEmpty(t, collection.FeedURL, "%s: missing feed URL", collection.Slug)
		assert.Contains(t,
			[]book.FeedFormat{book.FormatEdition, book.FormatHadithAPI},
			collection.Format, "%s: unknown format", collection.Slug)
	}
}

func TestLookup(t *testing.T) {
	collection, ok := book.Lookup("bukhari")
	require.True(t, ok)
	assert.Equal(t, "Sahih al-Bukhari", collection.NameEn)

	_, ok = book.Lookup("unknown")
	assert.False(t, ok)
}

// TestDisplayNames verifies the slug fallback for unregistered books.
func TestDisplayNames(t *testing.T) {
	nameEn, nameAr := book.DisplayNames("muslim")
	assert.Equal(t, "Sahih Muslim", nameEn)
	assert.Equal(t, "صحيح مسلم", nameAr)

	nameEn, nameAr = book.DisplayNames("custom")
	assert.Equal(t, "custom", nameEn)
	assert.Equal(t, "custom", nameAr)
}

func TestNewProgress(t *testing.T) {
	progress := book.NewProgress("bukhari", 7563, 2500)

	assert.Equal(t, int64(5063), progress.Pending)
	assert.InDelta(t, 33.06, progress.Percentage, 0.01)
	assert.Equal(t, "Sahih al-Bukhari", progress.NameEn)
}

// TestNewProgress_EmptyBook verifies the zero-total guard.
func TestNewProgress_EmptyBook(t *testing.T) {
	progress := book.NewProgress("bukhari", 0, 0)

	assert.Zero(t, progress.Percentage)
	assert.Zero(t, progress.Pending)
}
