// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunnahth/hadith-api/internal/core/book"
)

func pagedFeedPage(total int, numbers ...int) string {
	items := ""
	for i, number := range numbers {
		if i > 0 {
			items += ","
		}
		items += fmt.Sprintf(`{"hadithNumber": %d, "hadithArabic": "نص %d", "chapter": {"id": 1}}`, number, number)
	}
	return fmt.Sprintf(`{"status": 200, "hadiths": {"total": %d, "data": [%s]}}`, total, items)
}

/*
TestLoader_Paged verifies that every page derived from the first page's
total is fetched, with the key and paging parameters appended.
*/
func TestLoader_Paged(t *testing.T) {
	pages := map[string]string{
		"1": pagedFeedPage(120, 1, 2),
		"2": pagedFeedPage(120, 51),
		"3": pagedFeedPage(120, 101),
	}

	var seenKeys []string
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seenKeys = append(seenKeys, request.URL.Query().Get("apiKey"))
		body, ok := pages[request.URL.Query().Get("page")]
		if !ok {
			writer.WriteHeader(http.StatusNotFound)
			return
		}
		writer.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	loader := NewLoader(NewFetcher(), "secret-key", logger)
	collection := book.Collection{Slug: "muslim", FeedURL: server.URL, Format: book.FormatHadithAPI}

	drafts, stats, err := loader.Load(context.Background(), collection)
	require.NoError(t, err)

	assert.Len(t, drafts, 4, "all three pages contribute drafts")
	assert.Equal(t, 4, stats.Parsed)
	require.Len(t, seenKeys, 3)
	for _, key := range seenKeys {
		assert.Equal(t, "secret-key", key)
	}
}

// TestLoader_PagedStopsOnEmptyPage verifies the guard against feeds whose
// advertised total overshoots the real page count.
func TestLoader_PagedStopsOnEmptyPage(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requests++
		if request.URL.Query().Get("page") == "1" {
			writer.Write([]byte(pagedFeedPage(500, 1)))
			return
		}
		writer.Write([]byte(pagedFeedPage(500))) // empty page
	}))
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	loader := NewLoader(NewFetcher(), "", logger)
	collection := book.Collection{Slug: "muslim", FeedURL: server.URL, Format: book.FormatHadithAPI}

	drafts, _, err := loader.Load(context.Background(), collection)
	require.NoError(t, err)

	assert.Len(t, drafts, 1)
	assert.Equal(t, 2, requests, "the first empty page ends the walk")
}

// TestLoader_SingleDocument verifies edition feeds are fetched exactly once.
func TestLoader_SingleDocument(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		requests++
		writer.Write([]byte(`{"metadata": {"sections": {}, "section_details": {}}, "hadiths": [{"hadithnumber": 1, "text": "نص", "grades": []}]}`))
	}))
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	loader := NewLoader(NewFetcher(), "", logger)
	collection := book.Collection{Slug: "bukhari", FeedURL: server.URL, Format: book.FormatEdition}

	drafts, _, err := loader.Load(context.Background(), collection)
	require.NoError(t, err)
	assert.Len(t, drafts, 1)
	assert.Equal(t, 1, requests)
}
