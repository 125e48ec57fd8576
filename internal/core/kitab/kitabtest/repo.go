// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

// Package kitabtest provides an in-memory [kitab.Repository] for tests.
package kitabtest

import (
	"context"
	"sort"
	"sync"

	"github.com/sunnahth/hadith-api/internal/core/kitab"
	"github.com/sunnahth/hadith-api/internal/platform/dberr"
)

// Repo is a map-backed [kitab.Repository].
type Repo struct {
	mu       sync.Mutex
	entities map[string]*kitab.Kitab
}

// NewRepo returns an empty in-memory repository.
func NewRepo() *Repo {
	return &Repo{entities: map[string]*kitab.Kitab{}}
}

// Seed inserts entities directly, bypassing duplicate checks.
func (repo *Repo) Seed(entities ...*kitab.Kitab) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, entity := range entities {
		clone := *entity
		repo.entities[entity.ID] = &clone
	}
}

// Len reports the number of stored entities.
func (repo *Repo) Len() int {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return len(repo.entities)
}

func (repo *Repo) FindByID(_ context.Context, id string) (*kitab.Kitab, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	entity, ok := repo.entities[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *entity
	return &clone, nil
}

func (repo *Repo) ListByBook(_ context.Context, book string) ([]*kitab.Kitab, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	var entities []*kitab.Kitab
	for _, entity := range repo.entities {
		if entity.Book == book {
			clone := *entity
			entities = append(entities, &clone)
		}
	}
	sort.Slice(entities, func(i, j int) bool {
		if entities[i].Ordinal != entities[j].Ordinal {
			return entities[i].Ordinal < entities[j].Ordinal
		}
		return entities[i].ID < entities[j].ID
	})
	return entities, nil
}

func (repo *Repo) Insert(_ context.Context, entity *kitab.Kitab) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, ok := repo.entities[entity.ID]; ok {
		return dberr.ErrDuplicate
	}
	clone := *entity
	repo.entities[entity.ID] = &clone
	return nil
}

func (repo *Repo) Update(_ context.Context, entity *kitab.Kitab) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, ok := repo.entities[entity.ID]; !ok {
		return dberr.ErrNotFound
	}
	clone := *entity
	repo.entities[entity.ID] = &clone
	return nil
}

func (repo *Repo) UpdateCount(_ context.Context, id string, count int) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	entity, ok := repo.entities[id]
	if !ok {
		return dberr.ErrNotFound
	}
	entity.HadithCount = count
	return nil
}

func (repo *Repo) Delete(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, ok := repo.entities[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(repo.entities, id)
	return nil
}

// compile-time interface check
var _ kitab.Repository = (*Repo)(nil)
