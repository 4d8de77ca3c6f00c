package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Crawl and rank in one pass",
	Long:  "Runs the full pipeline: crawl every configured search, persist the batch, then rank it against the candidate profile.",
	RunE:  runPipeline,
}

var (
	runOutPath string
	runTopN    int
)

func init() {
	runCmd.Flags().StringVarP(&runOutPath, "out", "o", "", "Write the ranked table as JSON to this path")
	runCmd.Flags().IntVarP(&runTopN, "top", "n", 0, "Limit output to the top N rows (default: config top_n)")

	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()

	cfg, err := loadValidatedConfig()
	if err != nil {
		return err
	}

	batchPath, count, err := crawlBatch(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %d records to %s\n", count, batchPath)

	return rankBatch(cmd.Context(), cfg, log, batchPath, runOutPath, runTopN)
}
