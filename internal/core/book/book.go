// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

/*
Package book defines the collection-level entities of the narration archive.

A book is a canonical hadith collection (Bukhari, Muslim, ...). The package
owns the static registry of known collections and their feed endpoints, the
editable per-collection metadata, and the translation progress aggregates
served on the public dashboard.
*/
package book

import "time"

// # Collection Registry

// FeedFormat identifies the wire format a collection's source feed uses.
type FeedFormat string

const (
	// FormatEdition is the fawazahmed0 hadith-api single-document format:
	// a flat hadith list plus section metadata with number intervals.
	FormatEdition FeedFormat = "edition"

	// FormatHadithAPI is the hadithapi.com paged format with embedded
	// chapter objects on each item.
	FormatHadithAPI FeedFormat = "hadithapi"
)

// Collection describes one known hadith collection and where its source
// feed lives.
type Collection struct {
	Slug    string     `json:"book"`
	NameEn  string     `json:"name_en"`
	NameAr  string     `json:"name_ar"`
	FeedURL string     `json:"-"`
	Format  FeedFormat `json:"-"`
}

// registry is the static table of supported collections. Slugs double as
// the record ID prefix, so they never change once data is imported.
var registry = []Collection{
	{
		Slug:    "bukhari",
		NameEn:  "Sahih al-Bukhari",
		NameAr:  "صحيح البخاري",
		FeedURL: "https://raw.githubusercontent.com/fawazahmed0/hadith-api/refs/heads/1/editions/ara-bukhari.json",
		Format:  FormatEdition,
	},
	{
		Slug:    "muslim",
		NameEn:  "Sahih Muslim",
		NameAr:  "صحيح مسلم",
		FeedURL: "https://hadithapi.com/api/hadiths?book=sahih-muslim",
		Format:  FormatHadithAPI,
	},
	{
		Slug:    "nasai",
		NameEn:  "Sunan an-Nasa'i",
		NameAr:  "سنن النسائي",
		FeedURL: "https://raw.githubusercontent.com/fawazahmed0/hadith-api/refs/heads/1/editions/ara-nasai.json",
		Format:  FormatEdition,
	},
	{
		Slug:    "tirmidhi",
		NameEn:  "Jami` at-Tirmidhi",
		NameAr:  "جامع الترمذي",
		FeedURL: "https://raw.githubusercontent.com/fawazahmed0/hadith-api/refs/heads/1/editions/ara-tirmidhi1.json",
		Format:  FormatEdition,
	},
	{
		Slug:    "abudawud",
		NameEn:  "Sunan Abi Dawud",
		NameAr:  "سنن أبي داود",
		FeedURL: "https://raw.githubusercontent.com/fawazahmed0/hadith-api/refs/heads/1/editions/ara-abudawud.json",
		Format:  FormatEdition,
	},
	{
		Slug:    "ibnmajah",
		NameEn:  "Sunan Ibn Majah",
		NameAr:  "سنن ابن ماجه",
		FeedURL: "https://raw.githubusercontent.com/fawazahmed0/hadith-api/refs/heads/1/editions/ara-ibnmajah.json",
		Format:  FormatEdition,
	},
	{
		Slug:    "malik",
		NameEn:  "Muwatta Imam Malik",
		NameAr:  "موطأ الإمام مالك",
		FeedURL: "https://raw.githubusercontent.com/fawazahmed0/hadith-api/refs/heads/1/editions/ara-malik.json",
		Format:  FormatEdition,
	},
}

// Registry returns the supported collections in display order.
func Registry() []Collection {
	return registry
}

// Lookup resolves a collection by slug.
func Lookup(slug string) (Collection, bool) {
	for _, collection := range registry {
		if collection.Slug == slug {
			return collection, true
		}
	}
	return Collection{}, false
}

// DisplayNames returns the English and Arabic names for a slug, falling back
// to the slug itself for collections outside the registry.
func DisplayNames(slug string) (nameEn, nameAr string) {
	if collection, ok := Lookup(slug); ok {
		return collection.NameEn, collection.NameAr
	}
	return slug, slug
}

// # Book Metadata

// Info holds the editable metadata of a collection.
type Info struct {
	Book        string    `json:"book"`
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// # Progress Aggregates

// Progress summarizes translation progress for one collection.
type Progress struct {
	Book       string  `json:"book"`
	NameEn     string  `json:"name_en,omitempty"`
	NameAr     string  `json:"name_ar,omitempty"`
	Total      int64   `json:"total"`
	Translated int64   `json:"translated"`
	Pending    int64   `json:"pending"`
	Percentage float64 `json:"percentage"`
}

// NewProgress derives the pending count and completion percentage.
func NewProgress(bookSlug string, total, translated int64) Progress {
	progress := Progress{
		Book:       bookSlug,
		Total:      total,
		Translated: translated,
		Pending:    total - translated,
	}
	progress.NameEn, progress.NameAr = DisplayNames(bookSlug)
	if total > 0 {
		progress.Percentage = float64(translated) / float64(total) * 100
	}
	return progress
}
