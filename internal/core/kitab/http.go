// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

package kitab

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sunnahth/hadith-api/internal/platform/apperr"
	"github.com/sunnahth/hadith-api/internal/platform/middleware"
	requestutil "github.com/sunnahth/hadith-api/internal/platform/request"
	"github.com/sunnahth/hadith-api/internal/platform/respond"
	"github.com/sunnahth/hadith-api/internal/platform/validate"
)

const (
	FieldItems = "items"
	FieldTotal = "total"
)

// # Handler Implementation

// Handler implements the HTTP layer for chapter management.
type Handler struct {
	service      *Service
	synchronizer Synchronizer
}

// NewHandler constructs a new kitab [Handler]. synchronizer may be nil when
// reconciliation is only exposed through the pipeline CLI.
func NewHandler(service *Service, synchronizer Synchronizer) *Handler {
	return &Handler{service: service, synchronizer: synchronizer}
}

// RegisterRoutes attaches chapter endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	// Discovery endpoints
	api.Get("/kitabs/{book}", handler.ListKitabs)
	api.Get("/kitab/{id}", handler.GetKitab)

	// Admin protected endpoints
	api.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin)
		admin.Post("/kitabs", handler.CreateKitab)
		admin.Put("/kitab/{id}", handler.UpdateKitab)
		admin.Delete("/kitab/{id}", handler.DeleteKitab)
		admin.Post("/kitabs/sync/{book}", handler.SyncBook)
	})
}

// # Chapter Retrieval

/*
GET /api/v1/kitabs/{book}.

Description: Returns every chapter of a collection ordered by ordinal.

Request:
  - book: string (Collection tag)

Response:
  - 200: []Kitab: Ordered chapter list
*/
func (handler *Handler) ListKitabs(writer http.ResponseWriter, request *http.Request) {
	book := requestutil.Param(request, "book")

	entities, err := handler.service.ListKitabs(request.Context(), book)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldItems: entities,
		FieldTotal: len(entities),
	})
}

/*
GET /api/v1/kitab/{id}.

Response:
  - 200: Kitab: The chapter entity
  - 404: 404: ErrNotFound: Unknown chapter ID
*/
func (handler *Handler) GetKitab(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	entity, err := handler.service.GetKitab(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}

// # Chapter Management

// createKitabRequest defines the inbound JSON schema for manual chapter creation.
type createKitabRequest struct {
	Book    string `json:"book"`
	Ordinal int    `json:"ordinal"`
	NameAr  string `json:"name_ar"`
	NameTh  string `json:"name_th"`
	NameEn  string `json:"name_en"`
}

/*
POST /api/v1/kitabs.

Description: Creates a chapter entity by hand, outside the reconciler flow.

Request:
  - body: createKitabRequest

Response:
  - 201: Kitab: Created chapter
  - 400: 400: ErrInvalidJSON/Validation: Invalid payload
  - 401: 401: ErrUnauthorized: Admin token required
*/
func (handler *Handler) CreateKitab(writer http.ResponseWriter, request *http.Request) {
	var input createKitabRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldBook, input.Book)
	v.Custom(FieldOrdinal, input.Ordinal < 1, "Ordinal must be 1 or greater")
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity := &Kitab{
		Book:    input.Book,
		Ordinal: input.Ordinal,
		NameAr:  input.NameAr,
		NameTh:  input.NameTh,
		NameEn:  input.NameEn,
	}

	if err := handler.service.CreateKitab(request.Context(), entity); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entity)
}

// updateKitabRequest defines the inbound JSON schema for chapter edits.
// Absent fields leave stored values untouched.
type updateKitabRequest struct {
	Ordinal *int    `json:"ordinal"`
	NameAr  *string `json:"name_ar"`
	NameTh  *string `json:"name_th"`
	NameEn  *string `json:"name_en"`
}

/*
PUT /api/v1/kitab/{id}.

Description: Updates a chapter. Name changes are propagated onto the
denormalized copies carried by the chapter's hadith records.

Request:
  - id: string
  - body: updateKitabRequest

Response:
  - 200: Kitab: The chapter after the update
  - 400: 400: ErrInvalidJSON: Invalid payload
  - 401: 401: ErrUnauthorized: Admin token required
  - 404: 404: ErrNotFound: Unknown chapter ID
*/
func (handler *Handler) UpdateKitab(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	var input updateKitabRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.service.UpdateKitab(request.Context(), id, UpdateInput{
		Ordinal: input.Ordinal,
		NameAr:  input.NameAr,
		NameTh:  input.NameTh,
		NameEn:  input.NameEn,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}

/*
DELETE /api/v1/kitab/{id}.

Description: Removes a chapter entity and detaches its hadith records.

Response:
  - 204: No content
  - 401: 401: ErrUnauthorized: Admin token required
  - 404: 404: ErrNotFound: Unknown chapter ID
*/
func (handler *Handler) DeleteKitab(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.DeleteKitab(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Reconciliation

/*
POST /api/v1/kitabs/sync/{book}.

Description: Rebuilds chapter entities for a collection from the
denormalized names on its records. Idempotent; safe to rerun.

Request:
  - book: string (Collection tag)

Response:
  - 200: SyncResult: Created/refreshed/linked counters
  - 401: 401: ErrUnauthorized: Admin token required
  - 503: 503: ErrServiceUnavailable: Reconciler not wired
*/
func (handler *Handler) SyncBook(writer http.ResponseWriter, request *http.Request) {
	book := requestutil.Param(request, "book")

	if handler.synchronizer == nil {
		respond.Error(writer, request, apperr.ServiceUnavailable("Reconciler is not configured"))
		return
	}

	result, err := handler.synchronizer.SyncBook(request.Context(), book)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}
