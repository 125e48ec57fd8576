// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

package hadith_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunnahth/hadith-api/internal/core/hadith"
	"github.com/sunnahth/hadith-api/internal/core/hadith/hadithtest"
	"github.com/sunnahth/hadith-api/internal/platform/apperr"
	"github.com/sunnahth/hadith-api/pkg/pointer"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubTranslator records the invocation and optionally writes a translation
// through the repository, the way the real enricher does.
type stubTranslator struct {
	repo   *hadithtest.Repo
	called int
	err    error
}

func (stub *stubTranslator) TranslateOne(ctx context.Context, record *hadith.Hadith) error {
	stub.called++
	if stub.err != nil {
		return stub.err
	}
	return stub.repo.PartialUpdate(ctx, record.ID, map[string]any{
		"content_th": "คำแปล",
		"status":     string(hadith.StatusTranslated),
	})
}

/*
TestService_UpdateHadith_PartialFields verifies that only the supplied
fields reach the store and siblings survive untouched.
*/
func TestService_UpdateHadith_PartialFields(t *testing.T) {
	repo := hadithtest.NewRepo()
	repo.Seed(&hadith.Hadith{
		ID:        "bukhari_1",
		Book:      "bukhari",
		Number:    "1",
		KitabAr:   "كتاب بدء الوحي",
		ContentAr: "إنما الأعمال بالنيات",
		Status:    hadith.StatusPending,
	})
	service := hadith.NewService(repo, nil, quietLogger())

	updated, err := service.UpdateHadith(context.Background(), "bukhari_1", hadith.UpdateInput{
		ContentTh: pointer.To("การงานทั้งหลายขึ้นอยู่กับเจตนา"),
	})
	require.NoError(t, err)

	// Supplied field written, status derived, siblings untouched
	assert.Equal(t, "การงานทั้งหลายขึ้นอยู่กับเจตนา", updated.ContentTh)
	assert.Equal(t, hadith.StatusTranslated, updated.Status)
	assert.Equal(t, "كتاب بدء الوحي", updated.KitabAr)
	assert.Equal(t, "إنما الأعمال بالنيات", updated.ContentAr)
}

/*
TestService_UpdateHadith_ExplicitStatusWins verifies that a caller-pinned
status is not overridden by the translation heuristic.
*/
func TestService_UpdateHadith_ExplicitStatusWins(t *testing.T) {
	repo := hadithtest.NewRepo()
	repo.Seed(&hadith.Hadith{ID: "bukhari_1", Book: "bukhari", Number: "1", Status: hadith.StatusTranslated})
	service := hadith.NewService(repo, nil, quietLogger())

	updated, err := service.UpdateHadith(context.Background(), "bukhari_1", hadith.UpdateInput{
		ContentTh: pointer.To("ฉบับแก้ไข"),
		Status:    pointer.To(string(hadith.StatusPending)),
	})
	require.NoError(t, err)
	assert.Equal(t, hadith.StatusPending, updated.Status)
}

/*
TestService_UpdateHadith_InvalidStatus verifies the status enum validation.
*/
func TestService_UpdateHadith_InvalidStatus(t *testing.T) {
	repo := hadithtest.NewRepo()
	repo.Seed(&hadith.Hadith{ID: "bukhari_1", Book: "bukhari", Number: "1"})
	service := hadith.NewService(repo, nil, quietLogger())

	_, err := service.UpdateHadith(context.Background(), "bukhari_1", hadith.UpdateInput{
		Status: pointer.To("verified"),
	})
	require.Error(t, err)
	assert.True(t, apperr.IsAppError(err))
}

/*
TestService_UpdateHadith_NoFields verifies that an empty input is a no-op
read, not an error.
*/
func TestService_UpdateHadith_NoFields(t *testing.T) {
	repo := hadithtest.NewRepo()
	repo.Seed(&hadith.Hadith{ID: "bukhari_1", Book: "bukhari", Number: "1", ContentAr: "نص"})
	service := hadith.NewService(repo, nil, quietLogger())

	record, err := service.UpdateHadith(context.Background(), "bukhari_1", hadith.UpdateInput{})
	require.NoError(t, err)
	assert.Equal(t, "نص", record.ContentAr)
}

/*
TestService_TranslateHadith covers the on-demand translation flow and its
guard conditions.
*/
func TestService_TranslateHadith(t *testing.T) {
	t.Run("no_translator_configured", func(t *testing.T) {
		repo := hadithtest.NewRepo()
		service := hadith.NewService(repo, nil, quietLogger())

		_, err := service.TranslateHadith(context.Background(), "bukhari_1", false)
		require.Error(t, err)
		assert.Equal(t, 503, apperr.As(err).HTTPStatus)
	})

	t.Run("already_translated_conflicts", func(t *testing.T) {
		repo := hadithtest.NewRepo()
		repo.Seed(&hadith.Hadith{ID: "bukhari_1", ContentAr: "نص", ContentTh: "แปลแล้ว"})
		translator := &stubTranslator{repo: repo}
		service := hadith.NewService(repo, translator, quietLogger())

		_, err := service.TranslateHadith(context.Background(), "bukhari_1", false)
		require.Error(t, err)
		assert.Equal(t, 409, apperr.As(err).HTTPStatus)
		assert.Zero(t, translator.called)
	})

	t.Run("retranslate_overrides_conflict", func(t *testing.T) {
		repo := hadithtest.NewRepo()
		repo.Seed(&hadith.Hadith{ID: "bukhari_1", ContentAr: "نص", ContentTh: "แปลเก่า"})
		translator := &stubTranslator{repo: repo}
		service := hadith.NewService(repo, translator, quietLogger())

		record, err := service.TranslateHadith(context.Background(), "bukhari_1", true)
		require.NoError(t, err)
		assert.Equal(t, 1, translator.called)
		assert.Equal(t, "คำแปล", record.ContentTh)
	})

	t.Run("missing_source_is_unprocessable", func(t *testing.T) {
		repo := hadithtest.NewRepo()
		repo.Seed(&hadith.Hadith{ID: "bukhari_1"})
		service := hadith.NewService(repo, &stubTranslator{repo: repo}, quietLogger())

		_, err := service.TranslateHadith(context.Background(), "bukhari_1", false)
		require.Error(t, err)
		assert.Equal(t, 422, apperr.As(err).HTTPStatus)
	})

	t.Run("oracle_failure_propagates", func(t *testing.T) {
		repo := hadithtest.NewRepo()
		repo.Seed(&hadith.Hadith{ID: "bukhari_1", ContentAr: "نص"})
		oracleErr := errors.New("oracle: provider down")
		service := hadith.NewService(repo, &stubTranslator{repo: repo, err: oracleErr}, quietLogger())

		_, err := service.TranslateHadith(context.Background(), "bukhari_1", false)
		assert.ErrorIs(t, err, oracleErr)
	})
}
