// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

// Package hadithtest provides an in-memory [hadith.Repository] for tests.
//
// The implementation honors the full Filter contract, including the
// pointer name predicates and the missing-content selectors, so pipeline
// tests exercise the same query semantics the Postgres store implements.
package hadithtest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/sunnahth/hadith-api/internal/core/hadith"
	"github.com/sunnahth/hadith-api/internal/platform/database/schema"
	"github.com/sunnahth/hadith-api/internal/platform/dberr"
)

// Repo is a map-backed [hadith.Repository].
type Repo struct {
	mu      sync.Mutex
	records map[string]*hadith.Hadith
}

// NewRepo returns an empty in-memory repository.
func NewRepo() *Repo {
	return &Repo{records: map[string]*hadith.Hadith{}}
}

// Seed inserts records directly, bypassing duplicate checks.
func (repo *Repo) Seed(records ...*hadith.Hadith) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, record := range records {
		clone := *record
		repo.records[record.ID] = &clone
	}
}

// Get returns the stored record, or nil when absent.
func (repo *Repo) Get(id string) *hadith.Hadith {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if record, ok := repo.records[id]; ok {
		clone := *record
		return &clone
	}
	return nil
}

// Len reports the number of stored records.
func (repo *Repo) Len() int {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return len(repo.records)
}

func (repo *Repo) FindByID(_ context.Context, id string) (*hadith.Hadith, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	record, ok := repo.records[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *record
	return &clone, nil
}

func (repo *Repo) Insert(_ context.Context, record *hadith.Hadith) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, ok := repo.records[record.ID]; ok {
		return dberr.ErrDuplicate
	}
	clone := *record
	repo.records[record.ID] = &clone
	return nil
}

func (repo *Repo) PartialUpdate(_ context.Context, id string, fields map[string]any) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	record, ok := repo.records[id]
	if !ok {
		return dberr.ErrNotFound
	}
	applyFields(record, fields)
	return nil
}

func (repo *Repo) BulkUpdate(_ context.Context, filter hadith.Filter, fields map[string]any) (int64, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	var modified int64
	for _, record := range repo.records {
		if matches(record, filter) {
			applyFields(record, fields)
			modified++
		}
	}
	return modified, nil
}

func (repo *Repo) Count(_ context.Context, filter hadith.Filter) (int64, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	var count int64
	for _, record := range repo.records {
		if matches(record, filter) {
			count++
		}
	}
	return count, nil
}

func (repo *Repo) Scan(_ context.Context, filter hadith.Filter, fn func(*hadith.Hadith) error) error {
	for _, record := range repo.snapshot(filter, byID) {
		if err := fn(record); err != nil {
			return err
		}
	}
	return nil
}

func (repo *Repo) List(_ context.Context, filter hadith.Filter, limit, offset int) ([]*hadith.Hadith, int, error) {
	matched := repo.snapshot(filter, byNumber)
	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

// # Internals

type ordering int

const (
	byID ordering = iota
	byNumber
)

// snapshot copies the matching records under the lock so callbacks can
// write back through the repository without deadlocking.
func (repo *Repo) snapshot(filter hadith.Filter, order ordering) []*hadith.Hadith {
	repo.mu.Lock()
	var matched []*hadith.Hadith
	for _, record := range repo.records {
		if matches(record, filter) {
			clone := *record
			matched = append(matched, &clone)
		}
	}
	repo.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool {
		if order == byNumber {
			ki, kj := hadith.SortKey(matched[i].Number), hadith.SortKey(matched[j].Number)
			if ki != kj {
				return ki < kj
			}
		}
		return matched[i].ID < matched[j].ID
	})
	return matched
}

func matches(record *hadith.Hadith, filter hadith.Filter) bool {
	if filter.Book != "" && record.Book != filter.Book {
		return false
	}
	if filter.KitabID != "" && record.KitabID != filter.KitabID {
		return false
	}
	if filter.Status != "" && record.Status != filter.Status {
		return false
	}
	if filter.KitabAr != nil && record.KitabAr != *filter.KitabAr {
		return false
	}
	if filter.KitabTh != nil && record.KitabTh != *filter.KitabTh {
		return false
	}
	if filter.KitabEn != nil && record.KitabEn != *filter.KitabEn {
		return false
	}
	if filter.ExcludeKitabID != "" && record.KitabID == filter.ExcludeKitabID {
		return false
	}
	if filter.MissingTarget && record.ContentTh != "" {
		return false
	}
	if filter.MissingSource && record.ContentAr != "" {
		return false
	}
	if filter.Search != "" &&
		!strings.Contains(record.ContentAr, filter.Search) &&
		!strings.Contains(record.ContentTh, filter.Search) {
		return false
	}
	return true
}

func applyFields(record *hadith.Hadith, fields map[string]any) {
	t := schema.CoreHadith
	for column, value := range fields {
		text, _ := value.(string)
		switch column {
		case t.KitabID:
			record.KitabID = text
		case t.KitabAr:
			record.KitabAr = text
		case t.KitabTh:
			record.KitabTh = text
		case t.KitabEn:
			record.KitabEn = text
		case t.BabAr:
			record.BabAr = text
		case t.BabTh:
			record.BabTh = text
		case t.ContentAr:
			record.ContentAr = text
		case t.ContentTh:
			record.ContentTh = text
		case t.Grade:
			record.Grade = text
		case t.TranslationNotes:
			record.TranslationNotes = text
		case t.Status:
			record.Status = hadith.Status(text)
		}
	}
}

// compile-time interface check
var _ hadith.Repository = (*Repo)(nil)
