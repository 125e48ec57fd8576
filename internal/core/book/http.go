// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sunnahth/hadith-api/internal/platform/middleware"
	requestutil "github.com/sunnahth/hadith-api/internal/platform/request"
	"github.com/sunnahth/hadith-api/internal/platform/respond"
)

const FieldBooks = "books"

// # Handler Implementation

// Handler implements the HTTP layer for collection dashboards and metadata.
type Handler struct {
	service *Service
}

// NewHandler constructs a new book [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches collection endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	// Dashboard endpoints
	api.Get("/books", handler.ListBooks)
	api.Get("/stats", handler.GetStats)
	api.Get("/stats/{book}", handler.GetStats)
	api.Get("/book-info/{book}", handler.GetInfo)

	// Admin protected endpoints
	api.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin)
		admin.Put("/book-info/{book}", handler.UpdateInfo)
	})
}

// # Dashboard

/*
GET /api/v1/books.

Description: Returns translation progress for every known collection,
imported ones first.

Response:
  - 200: []Progress: Per-collection progress list
*/
func (handler *Handler) ListBooks(writer http.ResponseWriter, request *http.Request) {
	entries, err := handler.service.ListBooks(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldBooks: entries})
}

/*
GET /api/v1/stats and GET /api/v1/stats/{book}.

Description: Returns the translation totals for one collection, or the
whole archive when no collection is named.

Response:
  - 200: Progress: Totals for the requested scope
*/
func (handler *Handler) GetStats(writer http.ResponseWriter, request *http.Request) {
	book := requestutil.Param(request, "book")

	progress, err := handler.service.GetStats(request.Context(), book)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, progress)
}

// # Book Metadata

/*
GET /api/v1/book-info/{book}.

Description: Returns the editable metadata of a collection. Unannotated
collections yield an empty default.

Response:
  - 200: Info: Stored or default metadata
*/
func (handler *Handler) GetInfo(writer http.ResponseWriter, request *http.Request) {
	book := requestutil.Param(request, "book")

	info, err := handler.service.GetInfo(request.Context(), book)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, info)
}

// updateInfoRequest defines the inbound JSON schema for metadata edits.
type updateInfoRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

/*
PUT /api/v1/book-info/{book}.

Description: Saves collection metadata, inserting on first write.

Request:
  - book: string (Collection tag)
  - body: updateInfoRequest

Response:
  - 200: Info: The metadata after the write
  - 400: 400: ErrInvalidJSON: Invalid payload
  - 401: 401: ErrUnauthorized: Admin token required
*/
func (handler *Handler) UpdateInfo(writer http.ResponseWriter, request *http.Request) {
	book := requestutil.Param(request, "book")

	var input updateInfoRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	info, err := handler.service.UpdateInfo(request.Context(), &Info{
		Book:        book,
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, info)
}
