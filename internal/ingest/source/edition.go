// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

package source

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/sunnahth/hadith-api/internal/core/hadith"
)

// uncategorizedSection is the sentinel section for hadith numbers outside
// every declared interval.
const uncategorizedSection = "0"

// # Edition Feed (fawazahmed0 hadith-api)

// EditionAdapter parses the single-document edition format: a flat hadith
// list plus section metadata carrying number intervals.
type EditionAdapter struct{}

// # Wire Schemas

type editionDocument struct {
	Metadata editionMetadata `json:"metadata"`
	Hadiths  []editionHadith `json:"hadiths"`
}

type editionMetadata struct {
	Sections       map[string]string               `json:"sections"`
	SectionDetails map[string]editionSectionDetail `json:"section_details"`
}

type editionSectionDetail struct {
	First flexNumber `json:"hadithnumber_first"`
	Last  flexNumber `json:"hadithnumber_last"`
}

type editionHadith struct {
	Number flexNumber     `json:"hadithnumber"`
	Text   string         `json:"text"`
	Grades []editionGrade `json:"grades"`
}

type editionGrade struct {
	Name  string `json:"name"`
	Grade string `json:"grade"`
}

// # Parsing

/*
Parse converts one edition document into record drafts.

Description: Each hadith number is resolved to its section by interval
containment over the section_details metadata; numbers outside every
interval land in the uncategorized sentinel section. Items with no number
or no Arabic text are counted as skips.

Returns:
  - []Draft: Parsed drafts
  - ParseStats: Parsed/skipped counters
  - error: Only when the document itself is unreadable
*/
func (adapter *EditionAdapter) Parse(bookSlug string, payload []byte) ([]Draft, ParseStats, error) {
	var document editionDocument
	if err := json.Unmarshal(payload, &document); err != nil {
		return nil, ParseStats{}, fmt.Errorf("source: unreadable edition document: %w", err)
	}

	intervals := buildIntervals(document.Metadata.SectionDetails)

	var drafts []Draft
	var stats ParseStats

	for _, item := range document.Hadiths {
		number := hadith.NormalizeNumber(item.Number.String())
		text := cleanText(item.Text)
		if number == "" || text == "" {
			stats.Skipped++
			continue
		}

		sectionID := resolveSection(intervals, hadith.SortKey(number))
		ordinal, _ := strconv.Atoi(sectionID)

		drafts = append(drafts, Draft{
			Book:         bookSlug,
			Number:       number,
			KitabOrdinal: ordinal,
			KitabEn:      document.Metadata.Sections[sectionID],
			ContentAr:    text,
			Grade:        selectGrade(item.Grades),
		})
		stats.Parsed++
	}

	return drafts, stats, nil
}

// # Section Resolution

// interval is one section's inclusive hadith number range.
type interval struct {
	sectionID string
	first     float64
	last      float64
}

// buildIntervals flattens the section_details map. Entries whose bounds
// fail to parse are dropped; their hadiths fall into the sentinel section.
func buildIntervals(details map[string]editionSectionDetail) []interval {
	intervals := make([]interval, 0, len(details))
	for sectionID, detail := range details {
		first, errFirst := detail.First.Float64()
		last, errLast := detail.Last.Float64()
		if errFirst != nil || errLast != nil {
			continue
		}
		intervals = append(intervals, interval{sectionID: sectionID, first: first, last: last})
	}
	return intervals
}

// resolveSection returns the section whose interval contains the number,
// or the uncategorized sentinel when none does.
func resolveSection(intervals []interval, number float64) string {
	for _, candidate := range intervals {
		if candidate.first <= number && number <= candidate.last {
			return candidate.sectionID
		}
	}
	return uncategorizedSection
}

// selectGrade picks the authenticity tag for a draft: any grade mentioning
// Sahih wins, then Hasan, then the first grade listed.
func selectGrade(grades []editionGrade) string {
	hasan := ""
	for _, candidate := range grades {
		if strings.Contains(candidate.Grade, "Sahih") {
			return "Sahih"
		}
		if hasan == "" && strings.Contains(candidate.Grade, "Hasan") {
			hasan = "Hasan"
		}
	}
	if hasan != "" {
		return hasan
	}
	if len(grades) > 0 {
		return grades[0].Grade
	}
	return ""
}
