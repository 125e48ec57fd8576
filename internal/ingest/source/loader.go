// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

package source

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sunnahth/hadith-api/internal/core/book"
)

// # Feed Loading

// Loader fetches a collection's feed end to end and hands back canonical
// drafts, paging where the format requires it.
type Loader struct {
	fetcher      *Fetcher
	hadithAPIKey string
	logger       *slog.Logger
}

// NewLoader constructs a [Loader]. hadithAPIKey may be empty when no
// hadithapi.com collection is imported.
func NewLoader(fetcher *Fetcher, hadithAPIKey string, logger *slog.Logger) *Loader {
	return &Loader{
		fetcher:      fetcher,
		hadithAPIKey: hadithAPIKey,
		logger:       logger,
	}
}

/*
Load fetches and parses the whole feed of one collection.

Description: Edition feeds are a single document. HadithAPI feeds are
fetched page by page until the page count derived from the first page is
exhausted.

Parameters:
  - context: context.Context
  - collection: book.Collection (Registry entry)

Returns:
  - []Draft: All parsed drafts
  - ParseStats: Aggregated parse counters
  - error: *FetchError or a parse failure; partial drafts are discarded
*/
func (loader *Loader) Load(context context.Context, collection book.Collection) ([]Draft, ParseStats, error) {
	adapter, err := ForFormat(collection.Format)
	if err != nil {
		return nil, ParseStats{}, err
	}

	switch typed := adapter.(type) {
	case *HadithAPIAdapter:
		return loader.loadPaged(context, collection, typed)
	default:
		return loader.loadSingle(context, collection, adapter)
	}
}

// loadSingle handles single-document feeds.
func (loader *Loader) loadSingle(context context.Context, collection book.Collection, adapter Adapter) ([]Draft, ParseStats, error) {
	payload, err := loader.fetcher.Fetch(context, collection.FeedURL)
	if err != nil {
		return nil, ParseStats{}, err
	}
	return adapter.Parse(collection.Slug, payload)
}

// loadPaged walks a hadithapi.com feed until its page count is exhausted.
func (loader *Loader) loadPaged(context context.Context, collection book.Collection, adapter *HadithAPIAdapter) ([]Draft, ParseStats, error) {
	firstPage, err := loader.fetcher.Fetch(context, loader.pageURL(collection.FeedURL, 1))
	if err != nil {
		return nil, ParseStats{}, err
	}

	pageCount, err := adapter.PageCount(firstPage)
	if err != nil {
		return nil, ParseStats{}, err
	}

	drafts, stats, err := adapter.Parse(collection.Slug, firstPage)
	if err != nil {
		return nil, ParseStats{}, err
	}

	for page := 2; page <= pageCount; page++ {
		payload, err := loader.fetcher.Fetch(context, loader.pageURL(collection.FeedURL, page))
		if err != nil {
			return nil, ParseStats{}, err
		}

		pageDrafts, pageStats, err := adapter.Parse(collection.Slug, payload)
		if err != nil {
			return nil, ParseStats{}, err
		}
		if len(pageDrafts) == 0 && pageStats.Skipped == 0 {
			break
		}

		drafts = append(drafts, pageDrafts...)
		stats.Add(pageStats)

		loader.logger.Debug("source_page_loaded",
			slog.String("book", collection.Slug),
			slog.Int("page", page),
			slog.Int("drafts", len(pageDrafts)),
		)
	}

	return drafts, stats, nil
}

// pageURL appends paging and auth parameters to a registered feed URL.
func (loader *Loader) pageURL(feedURL string, page int) string {
	separator := "?"
	if strings.Contains(feedURL, "?") {
		separator = "&"
	}
	url := fmt.Sprintf("%s%spage=%d&limit=%d", feedURL, separator, page, hadithAPIPageSize)
	if loader.hadithAPIKey != "" {
		url += "&apiKey=" + loader.hadithAPIKey
	}
	return url
}
