// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/sunnahth/hadith-api/internal/platform/request"
	"github.com/sunnahth/hadith-api/internal/platform/respond"
	"github.com/sunnahth/hadith-api/internal/platform/validate"
)

// Handler implements the authentication HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] with the authentication routes.
//
// # Endpoints
//   - POST /login : Verifies the admin password and returns a JWT.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/login", handler.login)
	return router
}

type loginRequest struct {
	Password string `json:"password"`
}

/*
Login authenticates the admin operator.

POST /api/v1/auth/login

Description: Verifies the supplied password against the configured hash
and returns a bearer token for the write endpoints.

Request:
  - Body: loginRequest (Password)

Response:
  - 200: Session: Access token and expiry
  - 401: ErrUnauthorized: Wrong password
  - 503: ErrServiceUnavailable: Login not configured
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required("password", input.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}
