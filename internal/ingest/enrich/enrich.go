// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

/*
Package enrich runs the oracle-backed enrichment loop.

Two passes exist. Translate fills the Thai fields of records that carry
Arabic source text; backfill asks the oracle to recover missing Arabic
source (and its translation) from the record's book, number, and chapter
context. Both passes pace their calls with a shared rate limiter and
retry only on quota exhaustion, with a bounded doubling backoff. A record
that fails enrichment is logged, counted, and left untouched.

The enricher also serves single-record requests from the HTTP layer
through [hadith.Translator].
*/
package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/sunnahth/hadith-api/internal/core/book"
	"github.com/sunnahth/hadith-api/internal/core/hadith"
	"github.com/sunnahth/hadith-api/internal/notify"
	"github.com/sunnahth/hadith-api/internal/oracle"
	"github.com/sunnahth/hadith-api/internal/platform/constants"
	"github.com/sunnahth/hadith-api/internal/platform/database/schema"
)

// # Prompt Strategy

// systemInstruction frames every translate call. The kitab wording rule
// matters: 'หนังสือ' reads as a physical book in Thai.
const systemInstruction = "You are an expert Islamic scholar translator. " +
	"Translate the given Hadith JSON (Kitab, Bab, Content) from Arabic to Thai " +
	"using formal religious language (rajasap) for the Prophet. " +
	"IMPORTANT: Translate 'كتاب' (Kitab) as 'หมวด' (Category), do NOT use 'หนังสือ'. " +
	"Return ONLY JSON."

// Sampling temperatures. Retranslation runs hotter so a second pass over
// the same source text can produce a different rendering.
const (
	tempStandard    = 0.2
	tempRetranslate = 0.7
)

// translatePrompt builds the translate-pass prompt around the record's
// Arabic fields. Edition feeds name chapters in English only, so the
// English name rides along as fallback context when the Arabic one is
// missing.
func translatePrompt(record *hadith.Hadith) (string, error) {
	components := map[string]string{
		"kitab_ar":   record.KitabAr,
		"bab_ar":     record.BabAr,
		"content_ar": record.ContentAr,
	}
	if record.KitabAr == "" && record.KitabEn != "" {
		components["kitab_en"] = record.KitabEn
	}

	input, err := json.Marshal(components)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`Translate the following Islamic text components into Thai:

Input JSON:
%s

Provide the output as a JSON object with the following keys:
- kitab_th: Thai translation of the Book title (use kitab_en if kitab_ar is empty)
- bab_th: Thai translation of the Chapter title
- content_th: Thai translation of the main Hadith content
- notes: Any brief translator notes if ambiguity exists (optional)

Ensure the Thai language is formal and respectful, appropriate for religious texts.`, input), nil
}

// backfillPrompt asks the oracle to recover a record's Arabic source text
// from its bibliographic context.
func backfillPrompt(record *hadith.Hadith) string {
	nameEn, nameAr := book.DisplayNames(record.Book)

	prompt := fmt.Sprintf(`You are an Islamic hadith scholar. Provide the Arabic text and Thai translation for the following hadith:

Book: %s (%s)
Hadith Number: %s
`, nameEn, nameAr, record.Number)
	if record.KitabAr != "" {
		prompt += fmt.Sprintf("Chapter (Kitab): %s\n", record.KitabAr)
	}
	if record.BabAr != "" {
		prompt += fmt.Sprintf("Section (Bab): %s\n", record.BabAr)
	}

	prompt += `
Respond in this EXACT JSON format (no markdown, just raw JSON):
{
    "arabic": "The full Arabic hadith text including the chain of narrators (isnad) and main text (matn)",
    "thai": "The Thai translation of the hadith"
}

If you cannot find this specific hadith, respond with empty strings for both keys.

IMPORTANT:
- The Arabic text MUST be accurate and complete
- The Thai translation should be clear and readable
- Do not include any explanation, just the JSON`
	return prompt
}

// # Enricher

// Summary reports one enrichment pass.
type Summary struct {
	Book     string `json:"book"`
	Enriched int    `json:"enriched"`
	Skipped  int    `json:"skipped"`
	Failed   int    `json:"failed"`
}

// Enricher fills missing translations and recovers missing source text
// through the generation oracle.
type Enricher struct {
	repo     hadith.Repository
	client   oracle.Client
	notifier *notify.Notifier
	limiter  *rate.Limiter
	backoff  time.Duration // First rate-limit wait; doubles per attempt
	logger   *slog.Logger
}

// New constructs an [Enricher] paced at the standard oracle call rate.
func New(repo hadith.Repository, client oracle.Client, notifier *notify.Notifier, logger *slog.Logger) *Enricher {
	return &Enricher{
		repo:     repo,
		client:   client,
		notifier: notifier,
		limiter:  rate.NewLimiter(rate.Limit(constants.OracleRequestsPerSecond), 1),
		backoff:  constants.OracleBackoffBase,
		logger:   logger,
	}
}

/*
TranslateBook runs a translate pass over one collection.

Description: Selects records whose Thai content is missing, skips those
without Arabic source text, and translates the rest one at a time. Each
success writes the Thai fields and flips the record to translated; each
failure is counted and the record left pending for the next pass.

Parameters:
  - context: context.Context
  - bookSlug: string (Collection tag)
  - limit: int (Maximum records to process; 0 means no cap)

Returns:
  - Summary: Per-pass counters
  - error: Store scan failures only; oracle failures are absorbed
*/
func (enricher *Enricher) TranslateBook(context context.Context, bookSlug string, limit int) (Summary, error) {
	summary := Summary{Book: bookSlug}

	candidates, err := enricher.collect(context, hadith.Filter{Book: bookSlug, MissingTarget: true}, limit)
	if err != nil {
		return summary, err
	}
	enricher.logger.Info("enrich_translate_started",
		slog.String("book", bookSlug),
		slog.Int("candidates", len(candidates)),
	)

	for _, record := range candidates {
		if record.ContentAr == "" {
			summary.Skipped++
			continue
		}
		if err := enricher.translate(context, record, tempStandard); err != nil {
			summary.Failed++
			enricher.logger.Warn("enrich_translate_failed",
				slog.String("hadith_id", record.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		summary.Enriched++
	}

	enricher.finish(context, "translate", summary)
	return summary, nil
}

/*
BackfillBook runs a backfill pass over one collection.

Description: Selects records whose Arabic source text is missing and asks
the oracle to recover it from book, number, and chapter context. An empty
Arabic answer counts as a failure and writes nothing. A recovered Thai
translation is stored alongside the source and marks the record
translated.

Parameters:
  - context: context.Context
  - bookSlug: string (Collection tag)
  - limit: int (Maximum records to process; 0 means no cap)

Returns:
  - Summary: Per-pass counters
  - error: Store scan failures only; oracle failures are absorbed
*/
func (enricher *Enricher) BackfillBook(context context.Context, bookSlug string, limit int) (Summary, error) {
	summary := Summary{Book: bookSlug}

	candidates, err := enricher.collect(context, hadith.Filter{Book: bookSlug, MissingSource: true}, limit)
	if err != nil {
		return summary, err
	}
	enricher.logger.Info("enrich_backfill_started",
		slog.String("book", bookSlug),
		slog.Int("candidates", len(candidates)),
	)

	for _, record := range candidates {
		if err := enricher.backfill(context, record); err != nil {
			summary.Failed++
			enricher.logger.Warn("enrich_backfill_failed",
				slog.String("hadith_id", record.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		summary.Enriched++
	}

	enricher.finish(context, "backfill", summary)
	return summary, nil
}

// TranslateOne enriches a single record on demand. A record that already
// carries a translation is rerun at the retranslation temperature.
func (enricher *Enricher) TranslateOne(context context.Context, record *hadith.Hadith) error {
	temperature := tempStandard
	if record.ContentTh != "" {
		temperature = tempRetranslate
	}
	return enricher.translate(context, record, temperature)
}

// # Pass Mechanics

// errEnoughCandidates aborts the candidate scan once the cap is reached.
var errEnoughCandidates = errors.New("enrich: candidate limit reached")

// collect materializes the candidate set before any oracle call so writes
// during the pass cannot shift the scan. A reached limit stops the scan
// instead of walking the rest of the collection.
func (enricher *Enricher) collect(context context.Context, filter hadith.Filter, limit int) ([]*hadith.Hadith, error) {
	var candidates []*hadith.Hadith
	err := enricher.repo.Scan(context, filter, func(record *hadith.Hadith) error {
		candidates = append(candidates, record)
		if limit > 0 && len(candidates) >= limit {
			return errEnoughCandidates
		}
		return nil
	})
	if err != nil && !errors.Is(err, errEnoughCandidates) {
		return nil, err
	}
	return candidates, nil
}

// translate runs one translate call and writes the Thai fields back.
func (enricher *Enricher) translate(context context.Context, record *hadith.Hadith, temperature float64) error {
	prompt, err := translatePrompt(record)
	if err != nil {
		return err
	}

	raw, err := enricher.generate(context, oracle.Request{
		System:      systemInstruction,
		Prompt:      prompt,
		Temperature: temperature,
	})
	if err != nil {
		return err
	}

	translation, err := oracle.ParseTranslation(raw)
	if err != nil {
		return err
	}

	fields := map[string]any{
		schema.CoreHadith.KitabTh:          translation.KitabTh,
		schema.CoreHadith.BabTh:            translation.BabTh,
		schema.CoreHadith.ContentTh:        translation.ContentTh,
		schema.CoreHadith.TranslationNotes: translation.Notes,
	}
	if translation.ContentTh != "" {
		fields[schema.CoreHadith.Status] = string(hadith.StatusTranslated)
	}
	return enricher.repo.PartialUpdate(context, record.ID, fields)
}

// backfill runs one recovery call and writes the Arabic source back.
func (enricher *Enricher) backfill(context context.Context, record *hadith.Hadith) error {
	raw, err := enricher.generate(context, oracle.Request{
		Prompt:      backfillPrompt(record),
		Temperature: tempStandard,
	})
	if err != nil {
		return err
	}

	recovery, err := oracle.ParseRecovery(raw)
	if err != nil {
		return err
	}
	if recovery.Arabic == "" {
		return fmt.Errorf("oracle could not recover hadith %s", record.ID)
	}

	fields := map[string]any{
		schema.CoreHadith.ContentAr: recovery.Arabic,
	}
	if recovery.Thai != "" {
		fields[schema.CoreHadith.ContentTh] = recovery.Thai
		fields[schema.CoreHadith.Status] = string(hadith.StatusTranslated)
	}
	return enricher.repo.PartialUpdate(context, record.ID, fields)
}

// generate paces and retries one oracle call. Only quota exhaustion is
// retried; the wait doubles per attempt.
func (enricher *Enricher) generate(context context.Context, request oracle.Request) (string, error) {
	var raw string
	var err error

	for attempt := 0; attempt < constants.OracleMaxRetries; attempt++ {
		if attempt > 0 {
			wait := enricher.backoff << (attempt - 1)
			enricher.logger.Warn("oracle_rate_limited",
				slog.Int("attempt", attempt),
				slog.Duration("wait", wait),
			)
			if waitErr := sleep(context, wait); waitErr != nil {
				return "", waitErr
			}
		}

		if limitErr := enricher.limiter.Wait(context); limitErr != nil {
			return "", limitErr
		}

		raw, err = enricher.client.Generate(context, request)
		if err == nil || !errors.Is(err, oracle.ErrRateLimited) {
			return raw, err
		}
	}
	return "", err
}

// sleep waits without outliving the context.
func sleep(context context.Context, duration time.Duration) error {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-context.Done():
		return context.Err()
	case <-timer.C:
		return nil
	}
}

// finish logs the pass and pushes an alert when anything failed.
func (enricher *Enricher) finish(context context.Context, pass string, summary Summary) {
	enricher.logger.Info("enrich_pass_finished",
		slog.String("pass", pass),
		slog.String("book", summary.Book),
		slog.Int("enriched", summary.Enriched),
		slog.Int("skipped", summary.Skipped),
		slog.Int("failed", summary.Failed),
	)
	if summary.Failed > 0 {
		enricher.notifier.NotifyError(context, "enrichment",
			fmt.Sprintf("%s pass for %s finished with failures", pass, summary.Book),
			fmt.Sprintf("enriched=%d skipped=%d failed=%d", summary.Enriched, summary.Skipped, summary.Failed),
		)
	}
}

// compile-time interface check
var _ hadith.Translator = (*Enricher)(nil)
