// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

/*
Package auth provides the admin authentication surface.

The deployment is single-operator: there are no user accounts, only one
admin identity unlocked by a bcrypt-hashed password from configuration.
A successful login yields a short-lived JWT that the write endpoints
require.
*/
package auth

import (
	"context"
	"log/slog"

	"github.com/sunnahth/hadith-api/internal/platform/apperr"
	"github.com/sunnahth/hadith-api/internal/platform/constants"
	"github.com/sunnahth/hadith-api/internal/platform/sec"
)

// adminName is the subject label carried by every issued token.
const adminName = "admin"

// # Service Layer

// Session is the payload returned on successful login.
type Session struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // Seconds until expiry
}

// Service verifies the admin password and issues access tokens.
type Service struct {
	passwordHash string
	tokens       *sec.TokenService
	logger       *slog.Logger
}

// NewService constructs a [Service]. An empty passwordHash disables login.
func NewService(passwordHash string, tokens *sec.TokenService, logger *slog.Logger) *Service {
	return &Service{
		passwordHash: passwordHash,
		tokens:       tokens,
		logger:       logger,
	}
}

/*
Login verifies the admin password and issues an access token.

Parameters:
  - context: context.Context
  - password: string (Plain-text password from the request)

Returns:
  - *Session: Access token and expiry
  - error: ErrServiceUnavailable when login is disabled, ErrUnauthorized on
    a wrong password
*/
func (service *Service) Login(context context.Context, password string) (*Session, error) {
	if service.passwordHash == "" {
		return nil, apperr.ServiceUnavailable("Admin login is not configured")
	}

	if !sec.CheckPasswordHash(password, service.passwordHash) {
		service.logger.Warn("admin_login_rejected")
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	token, err := service.tokens.GenerateAccessToken(adminName, constants.AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	service.logger.Info("admin_login_succeeded")
	return &Session{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(constants.AccessTokenTTL.Seconds()),
	}, nil
}
