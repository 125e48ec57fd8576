// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

/*
Package kitab defines the chapter entities of the narration archive.

A kitab is a named chapter within a collection (e.g. "Book of Revelation" in
Bukhari). Chapter names arrive denormalized on the hadith records; the
reconciler materializes them into first-class entities, and this package owns
their lifecycle afterwards.

Core Responsibility:

  - Identity: Composes chapter IDs from collection tag and ordinal, with
    collision disambiguation for re-materialized chapters.
  - Localization: Carries Arabic, Thai, and English chapter names.
  - Consistency: Renames propagate back onto the denormalized hadith copies.
*/
package kitab

import (
	"fmt"
	"time"
)

// # Kitab Aggregate

// Kitab represents a named chapter within a collection.
type Kitab struct {
	ID          string    `json:"kitab_id"`
	Book        string    `json:"book"`
	Ordinal     int       `json:"ordinal"` // Position within the collection, 1-based
	NameAr      string    `json:"name_ar,omitempty"`
	NameTh      string    `json:"name_th,omitempty"`
	NameEn      string    `json:"name_en,omitempty"`
	HadithCount int       `json:"hadith_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// # Identity

// ComposeID builds the stable chapter identifier from a collection tag and
// a 1-based ordinal.
func ComposeID(book string, ordinal int) string {
	return fmt.Sprintf("%s_kitab_%d", book, ordinal)
}

// DisambiguateID derives a fresh identifier when the composed one is already
// taken by a different chapter. The nanosecond suffix keeps repeated
// reconciliation runs from ever failing on an ID collision.
func DisambiguateID(id string) string {
	return fmt.Sprintf("%s_%d", id, time.Now().UnixNano())
}
