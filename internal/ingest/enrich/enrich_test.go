// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

package enrich

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunnahth/hadith-api/internal/core/hadith"
	"github.com/sunnahth/hadith-api/internal/core/hadith/hadithtest"
	"github.com/sunnahth/hadith-api/internal/oracle"
	"github.com/sunnahth/hadith-api/internal/platform/constants"
)

// scriptedClient replays canned responses and records every request.
type scriptedClient struct {
	responses []string
	errs      []error
	requests  []oracle.Request
}

func (client *scriptedClient) Generate(_ context.Context, request oracle.Request) (string, error) {
	index := len(client.requests)
	client.requests = append(client.requests, request)
	if index < len(client.errs) && client.errs[index] != nil {
		return "", client.errs[index]
	}
	if index < len(client.responses) {
		return client.responses[index], nil
	}
	return client.responses[len(client.responses)-1], nil
}

func newTestEnricher(repo *hadithtest.Repo, client oracle.Client) *Enricher {
	enricher := New(repo, client, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	enricher.backoff = time.Millisecond
	return enricher
}

const translationJSON = `{"kitab_th":"หมวดการเริ่มต้นของวะฮีย์","bab_th":"บทที่หนึ่ง","content_th":"การงานทั้งหลายขึ้นอยู่กับเจตนา","notes":""}`

/*
TestTranslateBook verifies the translate pass: records with source text are
translated and flipped to the translated state, records without source are
skipped untouched.
*/
func TestTranslateBook(t *testing.T) {
	repo := hadithtest.NewRepo()
	repo.Seed(
		&hadith.Hadith{ID: "bukhari_1", Book: "bukhari", Number: "1", ContentAr: "إنما الأعمال بالنيات", Status: hadith.StatusPending},
		&hadith.Hadith{ID: "bukhari_2", Book: "bukhari", Number: "2", Status: hadith.StatusPending},
		&hadith.Hadith{ID: "bukhari_3", Book: "bukhari", Number: "3", ContentAr: "نص", ContentTh: "แปลแล้ว", Status: hadith.StatusTranslated},
	)
	client := &scriptedClient{responses: []string{translationJSON}}

	summary, err := newTestEnricher(repo, client).TranslateBook(context.Background(), "bukhari", 0)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Enriched)
	assert.Equal(t, 1, summary.Skipped, "record without Arabic source is skipped")
	assert.Zero(t, summary.Failed)
	assert.Len(t, client.requests, 1, "already-translated record never reaches the oracle")

	translated := repo.Get("bukhari_1")
	assert.Equal(t, "การงานทั้งหลายขึ้นอยู่กับเจตนา", translated.ContentTh)
	assert.Equal(t, "หมวดการเริ่มต้นของวะฮีย์", translated.KitabTh)
	assert.Equal(t, hadith.StatusTranslated, translated.Status)

	// The skipped record is fully untouched
	assert.Empty(t, repo.Get("bukhari_2").ContentTh)
	assert.Equal(t, hadith.StatusPending, repo.Get("bukhari_2").Status)
}

/*
TestTranslateBook_Limit verifies the per-pass record cap.
*/
func TestTranslateBook_Limit(t *testing.T) {
	repo := hadithtest.NewRepo()
	repo.Seed(
		&hadith.Hadith{ID: "bukhari_1", Book: "bukhari", Number: "1", ContentAr: "نص"},
		&hadith.Hadith{ID: "bukhari_2", Book: "bukhari", Number: "2", ContentAr: "نص"},
		&hadith.Hadith{ID: "bukhari_3", Book: "bukhari", Number: "3", ContentAr: "نص"},
	)
	client := &scriptedClient{responses: []string{translationJSON}}

	summary, err := newTestEnricher(repo, client).TranslateBook(context.Background(), "bukhari", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Enriched)
	assert.Len(t, client.requests, 2)
}

/*
TestTranslateBook_FailureLeavesRecordUntouched verifies that a provider
failure is counted and the record stays pending for the next pass.
*/
func TestTranslateBook_FailureLeavesRecordUntouched(t *testing.T) {
	repo := hadithtest.NewRepo()
	repo.Seed(&hadith.Hadith{ID: "bukhari_1", Book: "bukhari", Number: "1", ContentAr: "نص", Status: hadith.StatusPending})
	client := &scriptedClient{errs: []error{&oracle.ProviderError{Provider: "gemini", Message: "boom"}}}

	summary, err := newTestEnricher(repo, client).TranslateBook(context.Background(), "bukhari", 0)
	require.NoError(t, err, "provider failures are absorbed, not returned")

	assert.Equal(t, 1, summary.Failed)
	assert.Empty(t, repo.Get("bukhari_1").ContentTh)
	assert.Equal(t, hadith.StatusPending, repo.Get("bukhari_1").Status)
}

/*
TestGenerate_RateLimitRetry verifies the bounded doubling backoff: quota
errors are retried up to the limit, then surfaced.
*/
func TestGenerate_RateLimitRetry(t *testing.T) {
	t.Run("recovers_within_budget", func(t *testing.T) {
		client := &scriptedClient{
			responses: []string{"", translationJSON},
			errs:      []error{oracle.ErrRateLimited, nil},
		}
		enricher := newTestEnricher(hadithtest.NewRepo(), client)

		raw, err := enricher.generate(context.Background(), oracle.Request{Prompt: "p"})
		require.NoError(t, err)
		assert.Equal(t, translationJSON, raw)
		assert.Len(t, client.requests, 2)
	})

	t.Run("gives_up_after_max_retries", func(t *testing.T) {
		var errs []error
		for i := 0; i < constants.OracleMaxRetries+2; i++ {
			errs = append(errs, oracle.ErrRateLimited)
		}
		client := &scriptedClient{responses: []string{""}, errs: errs}
		enricher := newTestEnricher(hadithtest.NewRepo(), client)

		_, err := enricher.generate(context.Background(), oracle.Request{Prompt: "p"})
		assert.ErrorIs(t, err, oracle.ErrRateLimited)
		assert.Len(t, client.requests, constants.OracleMaxRetries)
	})

	t.Run("provider_errors_are_not_retried", func(t *testing.T) {
		client := &scriptedClient{
			responses: []string{""},
			errs:      []error{&oracle.ProviderError{Provider: "gemini", Message: "boom"}},
		}
		enricher := newTestEnricher(hadithtest.NewRepo(), client)

		_, err := enricher.generate(context.Background(), oracle.Request{Prompt: "p"})
		require.Error(t, err)
		assert.Len(t, client.requests, 1)
	})
}

/*
TestBackfillBook verifies source recovery: recovered Arabic is stored, an
accompanying Thai translation flips the status, and an empty answer counts
as a failure.
*/
func TestBackfillBook(t *testing.T) {
	t.Run("recovers_source_and_translation", func(t *testing.T) {
		repo := hadithtest.NewRepo()
		repo.Seed(&hadith.Hadith{ID: "bukhari_1", Book: "bukhari", Number: "1", Status: hadith.StatusPending})
		client := &scriptedClient{responses: []string{`{"arabic":"نص مستعاد","thai":"คำแปล"}`}}

		summary, err := newTestEnricher(repo, client).BackfillBook(context.Background(), "bukhari", 0)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Enriched)

		recovered := repo.Get("bukhari_1")
		assert.Equal(t, "نص مستعاد", recovered.ContentAr)
		assert.Equal(t, "คำแปล", recovered.ContentTh)
		assert.Equal(t, hadith.StatusTranslated, recovered.Status)
	})

	t.Run("empty_answer_is_a_failure", func(t *testing.T) {
		repo := hadithtest.NewRepo()
		repo.Seed(&hadith.Hadith{ID: "bukhari_1", Book: "bukhari", Number: "1"})
		client := &scriptedClient{responses: []string{`{"arabic":"","thai":""}`}}

		summary, err := newTestEnricher(repo, client).BackfillBook(context.Background(), "bukhari", 0)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Failed)
		assert.Empty(t, repo.Get("bukhari_1").ContentAr)
	})
}

/*
TestTranslateOne_Temperature verifies the retranslation temperature split.
*/
func TestTranslateOne_Temperature(t *testing.T) {
	repo := hadithtest.NewRepo()
	repo.Seed(
		&hadith.Hadith{ID: "bukhari_1", Book: "bukhari", Number: "1", ContentAr: "نص"},
		&hadith.Hadith{ID: "bukhari_2", Book: "bukhari", Number: "2", ContentAr: "نص", ContentTh: "แปลเก่า"},
	)
	client := &scriptedClient{responses: []string{translationJSON}}
	enricher := newTestEnricher(repo, client)

	require.NoError(t, enricher.TranslateOne(context.Background(), repo.Get("bukhari_1")))
	require.NoError(t, enricher.TranslateOne(context.Background(), repo.Get("bukhari_2")))

	require.Len(t, client.requests, 2)
	assert.Equal(t, tempStandard, client.requests[0].Temperature)
	assert.Equal(t, tempRetranslate, client.requests[1].Temperature, "existing translation reruns hotter")
	assert.Equal(t, systemInstruction, client.requests[0].System)
}

/*
TestTranslatePrompt_EnglishFallback verifies that the English chapter name
rides along exactly when the Arabic one is missing. Edition feeds name
chapters in English only.
*/
func TestTranslatePrompt_EnglishFallback(t *testing.T) {
	englishOnly := &hadith.Hadith{
		ID: "bukhari_1", Book: "bukhari", Number: "1",
		KitabEn: "Revelation", ContentAr: "نص",
	}
	prompt, err := translatePrompt(englishOnly)
	require.NoError(t, err)
	assert.Contains(t, prompt, `"kitab_en":"Revelation"`)

	arabicNamed := &hadith.Hadith{
		ID: "bukhari_2", Book: "bukhari", Number: "2",
		KitabAr: "بدء الوحي", KitabEn: "Revelation", ContentAr: "نص",
	}
	prompt, err = translatePrompt(arabicNamed)
	require.NoError(t, err)
	assert.NotContains(t, prompt, "kitab_en", "Arabic name present, no fallback needed")
	assert.Contains(t, prompt, "بدء الوحي")
}

// scanCountingRepo counts how many records a scan visits.
type scanCountingRepo struct {
	*hadithtest.Repo
	visited int
}

func (repo *scanCountingRepo) Scan(context context.Context, filter hadith.Filter, fn func(*hadith.Hadith) error) error {
	return repo.Repo.Scan(context, filter, func(record *hadith.Hadith) error {
		repo.visited++
		return fn(record)
	})
}

/*
TestCollect_StopsAtLimit verifies that a reached candidate cap ends the
scan instead of walking the rest of the collection.
*/
func TestCollect_StopsAtLimit(t *testing.T) {
	inner := hadithtest.NewRepo()
	inner.Seed(
		&hadith.Hadith{ID: "bukhari_1", Book: "bukhari", Number: "1", ContentAr: "نص"},
		&hadith.Hadith{ID: "bukhari_2", Book: "bukhari", Number: "2", ContentAr: "نص"},
		&hadith.Hadith{ID: "bukhari_3", Book: "bukhari", Number: "3", ContentAr: "نص"},
		&hadith.Hadith{ID: "bukhari_4", Book: "bukhari", Number: "4", ContentAr: "نص"},
	)
	repo := &scanCountingRepo{Repo: inner}
	enricher := New(repo, &scriptedClient{responses: []string{translationJSON}}, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	candidates, err := enricher.collect(context.Background(), hadith.Filter{Book: "bukhari", MissingTarget: true}, 2)
	require.NoError(t, err)

	assert.Len(t, candidates, 2)
	assert.Equal(t, 2, repo.visited, "scan ends at the cap")

	// No cap walks everything
	repo.visited = 0
	candidates, err = enricher.collect(context.Background(), hadith.Filter{Book: "bukhari", MissingTarget: true}, 0)
	require.NoError(t, err)
	assert.Len(t, candidates, 4)
	assert.Equal(t, 4, repo.visited)
}
