// Package main provides the jobradar CLI: crawl job postings, persist
// them as columnar batches and rank them against a candidate profile.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"go.uber.org/zap"

	"github.com/amarchal/jobradar/internal/config"
	"github.com/amarchal/jobradar/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "jobradar",
	Short: "Job posting crawler and CV matcher",
	Long:  "jobradar harvests job postings from an authenticated, paginated search, persists them as parquet batches and ranks them against a candidate profile using multi-category embedding similarity.",
}

var (
	configPath string
	jsonLogs   bool
	debugLogs  bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to YAML config file")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Emit structured JSON logs")
	rootCmd.PersistentFlags().BoolVar(&debugLogs, "debug", false, "Enable debug logging")
}

// newLogger builds the process logger from the persistent flags.
func newLogger() (*zap.Logger, error) {
	return logger.New(jsonLogs, debugLogs)
}

// loadValidatedConfig loads the config file named by the persistent flag
// and validates it.
func loadValidatedConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
