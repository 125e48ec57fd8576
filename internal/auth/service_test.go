// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunnahth/hadith-api/internal/auth"
	"github.com/sunnahth/hadith-api/internal/platform/apperr"
	"github.com/sunnahth/hadith-api/internal/platform/constants"
	"github.com/sunnahth/hadith-api/internal/platform/sec"
)

func newService(t *testing.T, passwordHash string) (*auth.Service, *sec.TokenService) {
	t.Helper()

	tokens, err := sec.NewTokenService("test-secret-16bytes!", constants.AuthIssuer)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return auth.NewService(passwordHash, tokens, logger), tokens
}

func TestLogin(t *testing.T) {
	hash, err := sec.HashPassword("correct horse")
	require.NoError(t, err)

	service, tokens := newService(t, hash)

	session, err := service.Login(context.Background(), "correct horse")
	require.NoError(t, err)

	assert.Equal(t, "bearer", session.TokenType)
	assert.Equal(t, int(constants.AccessTokenTTL.Seconds()), session.ExpiresIn)

	claims, err := tokens.VerifyToken(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Name)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := sec.HashPassword("correct horse")
	require.NoError(t, err)

	service, _ := newService(t, hash)

	_, err = service.Login(context.Background(), "battery staple")
	require.Error(t, err)
	assert.Equal(t, 401, apperr.As(err).HTTPStatus)
}

// TestLogin_NotConfigured verifies that a missing password hash disables
// the endpoint instead of accepting anything.
func TestLogin_NotConfigured(t *testing.T) {
	service, _ := newService(t, "")

	_, err := service.Login(context.Background(), "anything")
	require.Error(t, err)
	assert.Equal(t, 503, apperr.As(err).HTTPStatus)
}
