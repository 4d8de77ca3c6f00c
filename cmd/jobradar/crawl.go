package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/amarchal/jobradar/internal/browser"
	"github.com/amarchal/jobradar/internal/config"
	"github.com/amarchal/jobradar/internal/corpus"
	"github.com/amarchal/jobradar/internal/crawler"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Crawl configured job searches and persist the batch",
	Long:  "Drives a browser through the configured keyword/location searches, collects whatever job cards it can extract and writes the batch as a parquet file keyed by capture hour.",
	RunE:  runCrawl,
}

func init() {
	rootCmd.AddCommand(crawlCmd)
}

func runCrawl(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()

	cfg, err := loadValidatedConfig()
	if err != nil {
		return err
	}

	path, count, err := crawlBatch(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %d records to %s\n", count, path)
	return nil
}

// crawlBatch runs one full crawl and persists the result. Shared by the
// crawl and run commands.
func crawlBatch(ctx context.Context, cfg *config.Config, log *zap.Logger) (string, int, error) {
	log = log.With(zap.String("run_id", uuid.NewString()))

	session, err := browser.NewSession(ctx, browser.Options{
		Headless:   cfg.Browser.Headless,
		UserAgent:  cfg.Browser.UserAgent,
		ProfileDir: cfg.Browser.ProfileDir,
	})
	if err != nil {
		return "", 0, err
	}
	defer session.Close()

	c := crawler.New(session, log, crawler.Options{
		Timeout:      cfg.Timeout(),
		ScrollPasses: cfg.Crawler.ScrollPasses,
	})
	records := c.Run(ctx,
		crawler.Credentials{
			Email:    cfg.Credentials.Email,
			Password: cfg.Credentials.Password,
		},
		crawler.Search{
			Keyword:   cfg.Search.Keyword,
			Locations: cfg.Search.Locations,
			PageLimit: cfg.Search.PageLimit,
		})

	store := corpus.NewStore(cfg.DataDir)
	path, err := store.Write(records, time.Now())
	if err != nil {
		return "", 0, fmt.Errorf("failed to persist crawl batch: %w", err)
	}

	log.Info("batch persisted", zap.String("path", path), zap.Int("records", len(records)))
	return path, len(records), nil
}
