// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

package source

import (
	"encoding/json"
	"fmt"

	"github.com/sunnahth/hadith-api/internal/core/hadith"
)

// hadithAPIPageSize is the page size requested from hadithapi.com.
const hadithAPIPageSize = 50

// # HadithAPI Feed (hadithapi.com)

// HadithAPIAdapter parses the paged hadithapi.com format, where each item
// embeds its chapter object and bab headings.
type HadithAPIAdapter struct{}

// # Wire Schemas

type hadithAPIPage struct {
	Status  flexNumber        `json:"status"`
	Hadiths hadithAPIEnvelope `json:"hadiths"`
}

type hadithAPIEnvelope struct {
	Total flexNumber      `json:"total"`
	Data  []hadithAPIItem `json:"data"`
}

type hadithAPIItem struct {
	Number         flexNumber       `json:"hadithNumber"`
	Arabic         string           `json:"hadithArabic"`
	HeadingArabic  string           `json:"headingArabic"`
	HeadingEnglish string           `json:"headingEnglish"`
	Status         string           `json:"status"`
	Chapter        hadithAPIChapter `json:"chapter"`
}

type hadithAPIChapter struct {
	ID             flexNumber `json:"id"`
	ChapterArabic  string     `json:"chapterArabic"`
	ChapterEnglish string     `json:"chapterEnglish"`
}

// # Parsing

/*
Parse converts one hadithapi.com page into record drafts.

Description: The chapter embedded on each item supplies the Arabic and
English chapter names plus the external ordinal. Items with no number or
no Arabic text are counted as skips.

Returns:
  - []Draft: Parsed drafts
  - ParseStats: Parsed/skipped counters
  - error: Only when the page itself is unreadable
*/
func (adapter *HadithAPIAdapter) Parse(bookSlug string, payload []byte) ([]Draft, ParseStats, error) {
	page, err := decodePage(payload)
	if err != nil {
		return nil, ParseStats{}, err
	}

	var drafts []Draft
	var stats ParseStats

	for _, item := range page.Hadiths.Data {
		number := hadith.NormalizeNumber(item.Number.String())
		text := cleanText(item.Arabic)
		if number == "" || text == "" {
			stats.Skipped++
			continue
		}

		ordinal, _ := item.Chapter.ID.Int64()

		drafts = append(drafts, Draft{
			Book:         bookSlug,
			Number:       number,
			KitabOrdinal: int(ordinal),
			KitabAr:      cleanText(item.Chapter.ChapterArabic),
			KitabEn:      cleanText(item.Chapter.ChapterEnglish),
			BabAr:        cleanText(item.HeadingArabic),
			BabEn:        cleanText(item.HeadingEnglish),
			ContentAr:    text,
			Grade:        cleanText(item.Status),
		})
		stats.Parsed++
	}

	return drafts, stats, nil
}

// decodePage validates the page envelope.
func decodePage(payload []byte) (*hadithAPIPage, error) {
	var page hadithAPIPage
	if err := json.Unmarshal(payload, &page); err != nil {
		return nil, fmt.Errorf("source: unreadable hadithapi page: %w", err)
	}
	if status, _ := page.Status.Int64(); status != 200 {
		return nil, fmt.Errorf("source: hadithapi page status %s", page.Status.String())
	}
	return &page, nil
}

// PageCount derives how many pages the feed holds from a first-page payload.
func (adapter *HadithAPIAdapter) PageCount(payload []byte) (int, error) {
	page, err := decodePage(payload)
	if err != nil {
		return 0, err
	}
	total, _ := page.Hadiths.Total.Int64()
	return int(total)/hadithAPIPageSize + 1, nil
}
