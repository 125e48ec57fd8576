// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

/*
Package hadith provides the HTTP interface for browsing and curating narrations.

It exposes endpoints for filtered archive browsing, record inspection, and
manual curation by authorised administrators.

# Routing Strategy

  - Public (v1): Read endpoints accessible to all visitors (GET /hadiths).
  - Restricted (v1): Mutative endpoints requiring an admin token (PUT, POST).

The handler translates between the web/JSON layer and the internal domain [Service].
*/
package hadith

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sunnahth/hadith-api/internal/platform/middleware"
	requestutil "github.com/sunnahth/hadith-api/internal/platform/request"
	"github.com/sunnahth/hadith-api/internal/platform/respond"
	"github.com/sunnahth/hadith-api/pkg/convert"
	"github.com/sunnahth/hadith-api/pkg/pagination"
)

const (
	FieldItems = "items"
	FieldTotal = "total"
)

// # Handler Implementation

// Handler implements the HTTP layer for hadith records.
type Handler struct {
	service *Service
}

// NewHandler constructs a new hadith [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches hadith endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	// Discovery endpoints
	api.Get("/hadiths", handler.ListHadiths)
	api.Get("/hadith/{id}", handler.GetHadith)

	// Admin protected endpoints
	api.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin)
		admin.Put("/hadith/{id}", handler.UpdateHadith)
		admin.Post("/hadith/{id}/translate", handler.TranslateHadith)
	})
}

// # Archive Browsing

/*
GET /api/v1/hadiths.

Description: Returns a paginated slice of the archive, ordered by collection
and numeric hadith number.

Request:
  - book: string (Collection tag filter)
  - status: string (pending, translated)
  - kitab: string (Kitab ID filter)
  - search: string (Substring match on Arabic/Thai content)
  - limit: int
  - page: int

Response:
  - 200: []Hadith: Paginated list
*/
func (handler *Handler) ListHadiths(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	query := request.URL.Query()
	filter := Filter{
		Book:    query.Get("book"),
		KitabID: query.Get("kitab"),
		Status:  Status(query.Get("status")),
		Search:  query.Get("search"),
	}

	records, total, err := handler.service.ListHadiths(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldItems: records,
		FieldTotal: total,
	})
}

/*
GET /api/v1/hadith/{id}.

Description: Returns a single record by its composite identifier.

Request:
  - id: string ({book}_{number})

Response:
  - 200: Hadith: The full record
  - 404: 404: ErrNotFound: Unknown record ID
*/
func (handler *Handler) GetHadith(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	record, err := handler.service.GetHadith(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, record)
}

// # Curation

// updateHadithRequest defines the inbound JSON schema for manual edits.
// Absent fields leave stored values untouched.
type updateHadithRequest struct {
	KitabTh          *string `json:"kitab_th"`
	BabTh            *string `json:"bab_th"`
	ContentAr        *string `json:"content_ar"`
	ContentTh        *string `json:"content_th"`
	Grade            *string `json:"grade"`
	TranslationNotes *string `json:"translation_notes"`
	Status           *string `json:"status"`
}

/*
PUT /api/v1/hadith/{id}.

Description: Applies a partial update to a record. Only fields present in
the payload are written.

Request:
  - id: string ({book}_{number})
  - body: updateHadithRequest

Response:
  - 200: Hadith: The record after the update
  - 400: 400: ErrInvalidJSON/Validation: Invalid payload
  - 401: 401: ErrUnauthorized: Admin token required
  - 404: 404: ErrNotFound: Unknown record ID
*/
func (handler *Handler) UpdateHadith(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	var input updateHadithRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.UpdateHadith(request.Context(), id, UpdateInput{
		KitabTh:          input.KitabTh,
		BabTh:            input.BabTh,
		ContentAr:        input.ContentAr,
		ContentTh:        input.ContentTh,
		Grade:            input.Grade,
		TranslationNotes: input.TranslationNotes,
		Status:           input.Status,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, record)
}

/*
POST /api/v1/hadith/{id}/translate.

Description: Runs oracle enrichment for one record immediately instead of
waiting for the next pipeline pass.

Request:
  - id: string ({book}_{number})
  - retranslate: bool (Overwrite an existing translation)

Response:
  - 200: Hadith: The record after enrichment
  - 401: 401: ErrUnauthorized: Admin token required
  - 404: 404: ErrNotFound: Unknown record ID
  - 409: 409: ErrConflict: Already translated and retranslate not set
  - 503: 503: ErrServiceUnavailable: Oracle not configured
*/
func (handler *Handler) TranslateHadith(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")
	retranslate := convert.ToBool(request.URL.Query().Get("retranslate"))

	record, err := handler.service.TranslateHadith(request.Context(), id, retranslate)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, record)
}
