// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sunnahth/hadith-api/internal/platform/apperr"
	"github.com/sunnahth/hadith-api/internal/platform/ctxutil"
	"github.com/sunnahth/hadith-api/internal/platform/sec"
	"github.com/sunnahth/hadith-api/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter (identifier) from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Admin extracts the authenticated admin claims from the request context.

Returns nil if the request is not authenticated.
*/
func Admin(request *http.Request) *sec.AdminClaims {
	return ctxutil.GetAdmin(request.Context())
}

/*
RequiredAdmin ensures the request is authenticated and returns the admin claims.

Returns:
  - *sec.AdminClaims: The authenticated admin claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredAdmin(request *http.Request) (*sec.AdminClaims, error) {

	// Get admin claims
	claims := ctxutil.GetAdmin(request.Context())

	// If the session is not authenticated, return an error
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return claims, nil
}
