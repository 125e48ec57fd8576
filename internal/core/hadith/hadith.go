// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

/*
Package hadith defines the core domain entities for the narration archive.

It manages the lifecycle of individual narrations (hadiths) across their
ingestion, chapter assignment, and translation states.

Core Responsibility:

  - Identity: Composes stable record IDs from collection tag and source number.
  - Localization: Carries Arabic source text alongside the Thai translation.
  - Workflow: Tracks translation [Status] (Pending, Translated) for the
    enrichment pipeline.

This package acts as the source of truth for all narration-related data models.
*/
package hadith

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// # Domain Enums

// Status represents the translation state of a hadith record.
type Status string

const (
	// StatusPending indicates the record still awaits a Thai translation.
	StatusPending Status = "pending"

	// StatusTranslated indicates the Thai content has been populated.
	StatusTranslated Status = "translated"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusTranslated:
		return true
	}
	return false
}

// # Hadith Aggregate

// Hadith represents a single narration within a collection.
// Chapter names are denormalized onto the record so a feed re-import never
// depends on the kitab table being populated first.
type Hadith struct {
	ID               string    `json:"hadith_id"`
	Book             string    `json:"book"`
	Number           string    `json:"hadith_no"` // Canonical string form of the source number
	KitabID          string    `json:"kitab_id,omitempty"`
	KitabOrdinal     int       `json:"kitab_ordinal,omitempty"` // External chapter index from the feed; 0 when absent
	KitabAr          string    `json:"kitab_ar,omitempty"`
	KitabTh          string    `json:"kitab_th,omitempty"`
	KitabEn          string    `json:"kitab_en,omitempty"`
	BabAr            string    `json:"bab_ar,omitempty"` // Sub-chapter heading; embedded, not an entity
	BabTh            string    `json:"bab_th,omitempty"`
	ContentAr        string    `json:"content_ar,omitempty"`
	ContentTh        string    `json:"content_th,omitempty"`
	Grade            string    `json:"grade,omitempty"` // Authenticity tag (e.g. "Sahih")
	TranslationNotes string    `json:"translation_notes,omitempty"`
	Status           Status    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// # Identity & Ordering

// ComposeID builds the stable record identifier from a collection tag and
// a canonical hadith number.
func ComposeID(book, number string) string {
	return book + "_" + number
}

// NormalizeNumber converts any raw source number representation to its
// canonical string form. Trailing ".0" artifacts from float-typed feeds are
// stripped so "5770.0" and "5770" map to the same record.
func NormalizeNumber(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if cut, found := strings.CutSuffix(trimmed, ".0"); found {
		if _, err := strconv.ParseInt(cut, 10, 64); err == nil {
			return cut
		}
	}
	return trimmed
}

// SortKey coerces a canonical hadith number to a numeric ordering key.
// Unparseable numbers sort after every real one.
func SortKey(number string) float64 {
	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return math.Inf(1)
	}
	return value
}

// # Filter Criteria

// Filter holds optional exact-match predicates for store queries.
// All set predicates combine with AND. Pointer fields distinguish
// "unset" (nil) from "match the empty value" (pointer to "").
type Filter struct {
	Book    string
	KitabID string
	Status  Status
	KitabAr *string // Chapter name predicates used by the reconciler and rename propagation
	KitabTh *string
	KitabEn *string
	Search  string // Substring match against Arabic and Thai content

	// ExcludeKitabID drops records already linked to the given chapter,
	// keeping reconciliation writebacks idempotent.
	ExcludeKitabID string

	// Enrichment loop selectors
	MissingTarget bool // content_th is NULL or empty
	MissingSource bool // content_ar is NULL or empty
}
