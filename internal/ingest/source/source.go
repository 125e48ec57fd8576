// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

/*
Package source turns external hadith feeds into canonical record drafts.

Each supported feed format has an [Adapter] that parses one payload into
[Draft] values. The [Loader] dispatches on a collection's registered format
and handles paging where the feed requires it. Malformed individual items
are counted as skips, never errors; only an unreadable payload fails a
parse.
*/
package source

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/sunnahth/hadith-api/internal/core/book"
)

// # Feed Number Typing

// flexNumber decodes JSON numbers and numeric strings alike. Feeds are
// inconsistent about quoting hadith numbers and chapter IDs; all of them
// normalize here, at the boundary, and nowhere else.
type flexNumber string

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	trimmed := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if trimmed == "null" {
		trimmed = ""
	}
	*n = flexNumber(trimmed)
	return nil
}

func (n flexNumber) String() string { return string(n) }

func (n flexNumber) Int64() (int64, error) {
	return strconv.ParseInt(string(n), 10, 64)
}

func (n flexNumber) Float64() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

// cleanText trims a feed text field and normalizes it to NFC. Feeds mix
// composed and decomposed Arabic diacritics; without this, the same chapter
// name can group into two entities.
func cleanText(value string) string {
	return norm.NFC.String(strings.TrimSpace(value))
}

// # Canonical Draft

// Draft is one parsed record before it reaches the importer. String fields
// left empty mean the feed had nothing for them.
type Draft struct {
	Book         string
	Number       string // Canonical string form, already normalized
	KitabOrdinal int    // External chapter index; 0 when the feed had none
	KitabAr      string
	KitabEn      string
	BabAr        string
	BabEn        string
	ContentAr    string
	Grade        string
}

// ParseStats counts what happened to the items of one payload.
type ParseStats struct {
	Parsed  int // Items turned into drafts
	Skipped int // Items dropped for missing number or missing Arabic text
}

// Add merges another stats value into this one.
func (s *ParseStats) Add(other ParseStats) {
	s.Parsed += other.Parsed
	s.Skipped += other.Skipped
}

// # Adapter Contract

// Adapter parses one feed payload into canonical drafts.
type Adapter interface {

	/*
		Parse converts a raw feed payload into record drafts.

		Parameters:
		  - book: string (Collection tag stamped onto every draft)
		  - payload: []byte (One feed document or page)

		Returns:
		  - []Draft: Parsed drafts
		  - ParseStats: Parsed/skipped counters
		  - error: Only when the payload itself is unreadable
	*/
	Parse(book string, payload []byte) ([]Draft, ParseStats, error)
}

// ForFormat resolves the adapter for a registered feed format.
func ForFormat(format book.FeedFormat) (Adapter, error) {
	switch format {
	case book.FormatEdition:
		return &EditionAdapter{}, nil
	case book.FormatHadithAPI:
		return &HadithAPIAdapter{}, nil
	}
	return nil, fmt.Errorf("source: unknown feed format %q", format)
}
