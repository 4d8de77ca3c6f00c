package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/amarchal/jobradar/internal/config"
	"github.com/amarchal/jobradar/internal/corpus"
	"github.com/amarchal/jobradar/internal/embedding"
	"github.com/amarchal/jobradar/internal/language"
	"github.com/amarchal/jobradar/internal/ranking"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank a crawled batch against the candidate profile",
	Long:  "Loads a crawl batch (the most recent one unless --batch is given), embeds jobs and candidate profile, scores each preference category and prints the ranked table.",
	RunE:  runRank,
}

var (
	rankBatchPath string
	rankOutPath   string
	rankTopN      int
)

func init() {
	rankCmd.Flags().StringVarP(&rankBatchPath, "batch", "b", "", "Path to a batch parquet file (default: most recent)")
	rankCmd.Flags().StringVarP(&rankOutPath, "out", "o", "", "Write the ranked table as JSON to this path")
	rankCmd.Flags().IntVarP(&rankTopN, "top", "n", 0, "Limit output to the top N rows (default: config top_n)")

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()

	cfg, err := loadValidatedConfig()
	if err != nil {
		return err
	}

	return rankBatch(cmd.Context(), cfg, log, rankBatchPath, rankOutPath, rankTopN)
}

// rankBatch ranks one batch file and writes the results. Shared by the
// rank and run commands.
func rankBatch(ctx context.Context, cfg *config.Config, log *zap.Logger, batchPath, outPath string, topN int) error {
	if batchPath == "" {
		var err error
		batchPath, err = corpus.MostRecentFile(filepath.Join(cfg.DataDir, "parquet_files"))
		if err != nil {
			return fmt.Errorf("failed to locate latest batch: %w", err)
		}
		log.Info("using most recent batch", zap.String("path", batchPath))
	}

	if cfg.Ranking.CVPath == "" {
		return fmt.Errorf("ranking.cv_path is not configured")
	}
	cvText, err := os.ReadFile(cfg.Ranking.CVPath)
	if err != nil {
		return fmt.Errorf("failed to read CV file: %w", err)
	}

	apiKey := cfg.Ranking.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	oracle, err := embedding.NewGemini(ctx, apiKey, cfg.Ranking.Model)
	if err != nil {
		return err
	}
	defer oracle.Close()

	if topN <= 0 {
		topN = cfg.Ranking.TopN
	}

	engine := ranking.New(batchPath, oracle, language.NewDetector(), log)
	table, err := engine.Rank(ctx, string(cvText), cfg.Ranking.Preferences, topN)
	if err != nil {
		return err
	}

	if err := table.Render(os.Stdout); err != nil {
		return err
	}

	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		if err := table.WriteJSON(f); err != nil {
			return fmt.Errorf("failed to write ranked table: %w", err)
		}
		log.Info("ranked table written", zap.String("path", outPath))
	}

	return nil
}
