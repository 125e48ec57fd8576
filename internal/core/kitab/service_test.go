// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

package kitab_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunnahth/hadith-api/internal/core/hadith"
	"github.com/sunnahth/hadith-api/internal/core/hadith/hadithtest"
	"github.com/sunnahth/hadith-api/internal/core/kitab"
	"github.com/sunnahth/hadith-api/internal/core/kitab/kitabtest"
	"github.com/sunnahth/hadith-api/internal/platform/cache"
	"github.com/sunnahth/hadith-api/pkg/pointer"
)

func newService(kitabRepo *kitabtest.Repo, hadithRepo *hadithtest.Repo) *kitab.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return kitab.NewService(kitabRepo, hadithRepo, cache.New(nil, logger), logger)
}

/*
TestService_CreateKitab_Collision verifies that an occupied ID is resolved
with a disambiguated one instead of failing.
*/
func TestService_CreateKitab_Collision(t *testing.T) {
	kitabRepo := kitabtest.NewRepo()
	kitabRepo.Seed(&kitab.Kitab{ID: "bukhari_kitab_1", Book: "bukhari", Ordinal: 1, NameAr: "بدء الوحي"})
	service := newService(kitabRepo, hadithtest.NewRepo())

	entity := &kitab.Kitab{Book: "bukhari", Ordinal: 1, NameAr: "الإيمان"}
	require.NoError(t, service.CreateKitab(context.Background(), entity))

	assert.NotEqual(t, "bukhari_kitab_1", entity.ID)
	assert.Contains(t, entity.ID, "bukhari_kitab_1_")
	assert.Equal(t, 2, kitabRepo.Len())
}

/*
TestService_CreateKitab_Validation checks the required-field gate.
*/
func TestService_CreateKitab_Validation(t *testing.T) {
	service := newService(kitabtest.NewRepo(), hadithtest.NewRepo())

	err := service.CreateKitab(context.Background(), &kitab.Kitab{Ordinal: 0})
	require.Error(t, err)
}

/*
TestService_UpdateKitab_RenamePropagation verifies that renaming a chapter
rewrites the denormalized copies of exactly the records that still carried
the old name, and nothing else.
*/
func TestService_UpdateKitab_RenamePropagation(t *testing.T) {
	kitabRepo := kitabtest.NewRepo()
	kitabRepo.Seed(&kitab.Kitab{ID: "bukhari_kitab_2", Book: "bukhari", Ordinal: 2, NameTh: "หมวดศรัทธา"})

	hadithRepo := hadithtest.NewRepo()
	hadithRepo.Seed(
		// Carries the old name: must be rewritten
		&hadith.Hadith{ID: "bukhari_8", Book: "bukhari", Number: "8", KitabID: "bukhari_kitab_2", KitabTh: "หมวดศรัทธา"},
		// Hand-edited per record: must survive
		&hadith.Hadith{ID: "bukhari_9", Book: "bukhari", Number: "9", KitabID: "bukhari_kitab_2", KitabTh: "หมวดศรัทธา (แก้ไข)"},
		// Same name, different chapter: must not bleed
		&hadith.Hadith{ID: "bukhari_50", Book: "bukhari", Number: "50", KitabID: "bukhari_kitab_3", KitabTh: "หมวดศรัทธา"},
	)
	service := newService(kitabRepo, hadithRepo)

	updated, err := service.UpdateKitab(context.Background(), "bukhari_kitab_2", kitab.UpdateInput{
		NameTh: pointer.To("หมวดอีมาน"),
	})
	require.NoError(t, err)
	assert.Equal(t, "หมวดอีมาน", updated.NameTh)

	assert.Equal(t, "หมวดอีมาน", hadithRepo.Get("bukhari_8").KitabTh)
	assert.Equal(t, "หมวดศรัทธา (แก้ไข)", hadithRepo.Get("bukhari_9").KitabTh)
	assert.Equal(t, "หมวดศรัทธา", hadithRepo.Get("bukhari_50").KitabTh)
}

/*
TestService_UpdateKitab_NoChange verifies that submitting the current name
propagates nothing.
*/
func TestService_UpdateKitab_NoChange(t *testing.T) {
	kitabRepo := kitabtest.NewRepo()
	kitabRepo.Seed(&kitab.Kitab{ID: "bukhari_kitab_2", Book: "bukhari", Ordinal: 2, NameTh: "หมวดศรัทธา"})

	hadithRepo := hadithtest.NewRepo()
	hadithRepo.Seed(&hadith.Hadith{ID: "bukhari_8", Book: "bukhari", Number: "8", KitabID: "bukhari_kitab_2", KitabTh: "หมวดศรัทธา"})
	service := newService(kitabRepo, hadithRepo)

	_, err := service.UpdateKitab(context.Background(), "bukhari_kitab_2", kitab.UpdateInput{
		NameTh: pointer.To("หมวดศรัทธา"),
	})
	require.NoError(t, err)
	assert.Equal(t, "หมวดศรัทธา", hadithRepo.Get("bukhari_8").KitabTh)
}

/*
TestService_DeleteKitab verifies that deletion detaches records without
erasing their denormalized names.
*/
func TestService_DeleteKitab(t *testing.T) {
	kitabRepo := kitabtest.NewRepo()
	kitabRepo.Seed(&kitab.Kitab{ID: "bukhari_kitab_2", Book: "bukhari", Ordinal: 2, NameAr: "الإيمان"})

	hadithRepo := hadithtest.NewRepo()
	hadithRepo.Seed(&hadith.Hadith{ID: "bukhari_8", Book: "bukhari", Number: "8", KitabID: "bukhari_kitab_2", KitabAr: "الإيمان"})
	service := newService(kitabRepo, hadithRepo)

	require.NoError(t, service.DeleteKitab(context.Background(), "bukhari_kitab_2"))

	assert.Zero(t, kitabRepo.Len())
	detached := hadithRepo.Get("bukhari_8")
	assert.Empty(t, detached.KitabID)
	assert.Equal(t, "الإيمان", detached.KitabAr, "denormalized name survives detachment")
}
