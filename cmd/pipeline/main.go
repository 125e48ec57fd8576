// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

// Command pipeline is the operator CLI for the ingestion and enrichment
// pipeline. It runs one stage at a time against the shared database:
//
//	pipeline import <book|all>      Fetch feeds and upsert records
//	pipeline reconcile <book|all>   Rebuild chapter entities from record names
//	pipeline enrich [flags]         Translate records missing Thai content
//	pipeline backfill [flags]       Recover records missing Arabic source
//
// Stages are idempotent and safe to re-run; a crashed run is resumed by
// simply running the stage again.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sunnahth/hadith-api/internal/core/book"
	"github.com/sunnahth/hadith-api/internal/core/hadith"
	"github.com/sunnahth/hadith-api/internal/core/kitab"
	"github.com/sunnahth/hadith-api/internal/ingest/enrich"
	"github.com/sunnahth/hadith-api/internal/ingest/importer"
	"github.com/sunnahth/hadith-api/internal/ingest/reconcile"
	"github.com/sunnahth/hadith-api/internal/ingest/source"
	"github.com/sunnahth/hadith-api/internal/notify"
	"github.com/sunnahth/hadith-api/internal/oracle"
	"github.com/sunnahth/hadith-api/internal/platform/cache"
	"github.com/sunnahth/hadith-api/internal/platform/config"
	"github.com/sunnahth/hadith-api/internal/platform/migration"
	pgstore "github.com/sunnahth/hadith-api/internal/platform/postgres"
	redisstore "github.com/sunnahth/hadith-api/internal/platform/redis"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pipeline",
		Short:         "Ingestion and enrichment pipeline for the hadith archive",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(importCmd(), reconcileCmd(), enrichCmd(), backfillCmd())
	return cmd
}

// # Stage Commands

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <book|all>",
		Short: "Fetch source feeds and upsert their records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *runtime) error {
				collections, err := resolveCollections(args[0])
				if err != nil {
					return err
				}

				loader := source.NewLoader(source.NewFetcher(), rt.cfg.HadithAPIKey, rt.log)
				imp := importer.New(loader, rt.hadithRepo, rt.log)

				for _, collection := range collections {
					summary, err := imp.ImportBook(ctx, collection)
					if err != nil {
						rt.notifier.NotifyError(ctx, "import",
							fmt.Sprintf("Import of %s failed", collection.Slug), err.Error())
						return err
					}
					fmt.Printf("%s: imported=%d backfilled=%d skipped=%d errored=%d\n",
						summary.Book, summary.Imported, summary.Backfilled, summary.Skipped, summary.Errored)
				}
				return nil
			})
		},
	}
}

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile <book|all>",
		Short: "Rebuild chapter entities from the denormalized names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *runtime) error {
				collections, err := resolveCollections(args[0])
				if err != nil {
					return err
				}

				reconciler := reconcile.New(rt.hadithRepo, rt.kitabRepo, rt.cache, rt.log)

				for _, collection := range collections {
					result, err := reconciler.SyncBook(ctx, collection.Slug)
					if err != nil {
						return err
					}
					fmt.Printf("%s: created=%d refreshed=%d linked=%d\n",
						collection.Slug, result.Created, result.Refreshed, result.Linked)
				}
				return nil
			})
		},
	}
}

func enrichCmd() *cobra.Command {
	var bookSlug string
	var limit int

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Translate records that are missing Thai content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *runtime) error {
				enricher, err := rt.enricher()
				if err != nil {
					return err
				}
				return forEachSlug(bookSlug, func(slug string) error {
					summary, err := enricher.TranslateBook(ctx, slug, limit)
					if err != nil {
						return err
					}
					fmt.Printf("%s: enriched=%d skipped=%d failed=%d\n",
						summary.Book, summary.Enriched, summary.Skipped, summary.Failed)
					return nil
				})
			})
		},
	}
	cmd.Flags().StringVar(&bookSlug, "book", "all", "collection to enrich, or 'all'")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum records to process per collection (0 = no cap)")
	return cmd
}

func backfillCmd() *cobra.Command {
	var bookSlug string
	var limit int

	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Recover records that are missing Arabic source text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *runtime) error {
				enricher, err := rt.enricher()
				if err != nil {
					return err
				}
				return forEachSlug(bookSlug, func(slug string) error {
					summary, err := enricher.BackfillBook(ctx, slug, limit)
					if err != nil {
						return err
					}
					fmt.Printf("%s: enriched=%d failed=%d\n",
						summary.Book, summary.Enriched, summary.Failed)
					return nil
				})
			})
		},
	}
	cmd.Flags().StringVar(&bookSlug, "book", "all", "collection to process, or 'all'")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum records to process per collection (0 = no cap)")
	return cmd
}

// # Shared Wiring

// runtime holds the dependencies every stage needs.
type runtime struct {
	cfg        *config.Config
	log        *slog.Logger
	hadithRepo hadith.Repository
	kitabRepo  kitab.Repository
	cache      *cache.Cache
	notifier   *notify.Notifier
}

// enricher builds the oracle-backed enricher, failing when the oracle
// credentials are absent.
func (rt *runtime) enricher() (*enrich.Enricher, error) {
	if !rt.cfg.OracleConfigured() {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}
	gemini := oracle.NewGeminiClient(rt.cfg.GeminiAPIKey, rt.cfg.GeminiModel, rt.cfg.GeminiBaseURL)
	return enrich.New(rt.hadithRepo, gemini, rt.notifier, rt.log), nil
}

// withRuntime wires configuration, stores, and the notifier, runs the stage,
// and tears everything down. The context is cancelled on SIGINT/SIGTERM so a
// long pass stops at the next record boundary.
func withRuntime(run func(context.Context, *runtime) error) error {
	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With(slog.String("app", "pipeline"))

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	if err != nil {
		return err
	}
	defer rdb.Close()

	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		return err
	}

	rt := &runtime{
		cfg:        cfg,
		log:        log,
		hadithRepo: hadith.NewRepository(pool),
		kitabRepo:  kitab.NewRepository(pool),
		cache:      cache.New(rdb, log),
		notifier:   notify.New(cfg.TelegramBotToken, cfg.TelegramChatID, cfg.LineChannelToken, cfg.LineUserID, log),
	}
	return run(ctx, rt)
}

// resolveCollections expands a slug argument into registry entries.
func resolveCollections(argument string) ([]book.Collection, error) {
	if argument == "all" {
		return book.Registry(), nil
	}
	collection, ok := book.Lookup(argument)
	if !ok {
		return nil, fmt.Errorf("unknown book %q", argument)
	}
	return []book.Collection{collection}, nil
}

// forEachSlug runs fn for one collection slug, or every registered one.
func forEachSlug(argument string, fn func(slug string) error) error {
	collections, err := resolveCollections(argument)
	if err != nil {
		return err
	}
	for _, collection := range collections {
		if err := fn(collection.Slug); err != nil {
			return err
		}
	}
	return nil
}
