// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

package hadith

import (
	"context"
	"log/slog"

	"github.com/sunnahth/hadith-api/internal/platform/apperr"
	"github.com/sunnahth/hadith-api/internal/platform/database/schema"
	"github.com/sunnahth/hadith-api/internal/platform/validate"
)

const (
	FieldStatus    = "status"
	FieldContentTh = "content_th"
)

// # Collaborators

// Translator performs on-demand enrichment of a single record. The pipeline
// enricher satisfies this; the service never talks to the oracle directly.
type Translator interface {
	TranslateOne(context context.Context, record *Hadith) error
}

// # Service Layer

// Service orchestrates the business logic for hadith records.
type Service struct {
	repo       Repository
	translator Translator
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its required collaborators.
// translator may be nil when the oracle is not configured; on-demand
// translation then fails with a service availability error.
func NewService(repo Repository, translator Translator, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		translator: translator,
		logger:     logger,
	}
}

// # Retrieval Operations

/*
GetHadith retrieves a single record by its composite ID.

Parameters:
  - context: context.Context
  - id: string ({book}_{number})

Returns:
  - *Hadith: The hydrated domain entity
  - error: dberr.ErrNotFound if not found
*/
func (service *Service) GetHadith(context context.Context, id string) (*Hadith, error) {
	return service.repo.FindByID(context, id)
}

/*
ListHadiths retrieves a page of records matching the filter.

Parameters:
  - context: context.Context
  - filter: Filter (book, status, kitab, search)
  - limit: int
  - offset: int

Returns:
  - []*Hadith: Matched records
  - int: Total record count for the given filter
  - error: Storage or execution errors
*/
func (service *Service) ListHadiths(context context.Context, filter Filter, limit, offset int) ([]*Hadith, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

// # Mutation Operations

// UpdateInput carries the optional fields of a partial update. Nil pointers
// leave the stored value untouched.
type UpdateInput struct {
	KitabTh          *string
	BabTh            *string
	ContentAr        *string
	ContentTh        *string
	Grade            *string
	TranslationNotes *string
	Status           *string
}

/*
UpdateHadith applies a partial update to a single record.

Description: Only the fields present in the input reach the store; sibling
columns are never rewritten. Populating the Thai content moves the record to
the translated state unless the caller pins the status explicitly.

Parameters:
  - context: context.Context
  - id: string ({book}_{number})
  - input: UpdateInput

Returns:
  - *Hadith: The record after the update
  - error: Validation failures or dberr.ErrNotFound
*/
func (service *Service) UpdateHadith(context context.Context, id string, input UpdateInput) (*Hadith, error) {
	t := schema.CoreHadith

	validator := &validate.Validator{}
	if input.Status != nil {
		validator.OneOf(FieldStatus, *input.Status, string(StatusPending), string(StatusTranslated))
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	assign := func(column string, value *string) {
		if value != nil {
			fields[column] = *value
		}
	}
	assign(t.KitabTh, input.KitabTh)
	assign(t.BabTh, input.BabTh)
	assign(t.ContentAr, input.ContentAr)
	assign(t.ContentTh, input.ContentTh)
	assign(t.Grade, input.Grade)
	assign(t.TranslationNotes, input.TranslationNotes)
	assign(t.Status, input.Status)

	// A fresh translation implies the translated state
	if input.ContentTh != nil && *input.ContentTh != "" && input.Status == nil {
		fields[t.Status] = string(StatusTranslated)
	}

	if len(fields) == 0 {
		return service.repo.FindByID(context, id)
	}

	if err := service.repo.PartialUpdate(context, id, fields); err != nil {
		return nil, err
	}

	service.logger.Info("hadith_updated",
		slog.String("hadith_id", id),
		slog.Int("field_count", len(fields)),
	)

	return service.repo.FindByID(context, id)
}

// # On-Demand Translation

/*
TranslateHadith runs the enrichment flow for one record immediately.

Description: Already-translated records are left untouched unless retranslate
is set. The record must carry Arabic source text; recovering missing source
text is the backfill pipeline's job, not this endpoint's.

Parameters:
  - context: context.Context
  - id: string ({book}_{number})
  - retranslate: bool (Overwrite an existing translation)

Returns:
  - *Hadith: The record after enrichment
  - error: Conflict when already translated, or oracle/storage failures
*/
func (service *Service) TranslateHadith(context context.Context, id string, retranslate bool) (*Hadith, error) {
	if service.translator == nil {
		return nil, apperr.ServiceUnavailable("Translation oracle is not configured")
	}

	record, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if record.ContentTh != "" && !retranslate {
		return nil, apperr.Conflict("Hadith is already translated")
	}
	if record.ContentAr == "" {
		return nil, apperr.Unprocessable("Hadith has no Arabic source text to translate")
	}

	if err := service.translator.TranslateOne(context, record); err != nil {
		return nil, err
	}

	service.logger.Info("hadith_translated",
		slog.String("hadith_id", id),
		slog.Bool("retranslate", retranslate),
	)

	return service.repo.FindByID(context, id)
}
