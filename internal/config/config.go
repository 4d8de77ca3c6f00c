// Package config provides configuration loading and validation for the CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/amarchal/jobradar/internal/ranking"
)

// Config is the YAML document driving a crawl and rank run.
type Config struct {
	Credentials Credentials `yaml:"credentials" validate:"required"`
	Search      Search      `yaml:"search" validate:"required"`
	Browser     Browser     `yaml:"browser"`
	Crawler     Crawler     `yaml:"crawler"`
	Ranking     Ranking     `yaml:"ranking"`

	// DataDir is where crawl batches are written; defaults to the working
	// directory.
	DataDir string `yaml:"data_dir"`
}

// Credentials are the sign-in credentials for the job search site.
type Credentials struct {
	Email    string `yaml:"email" validate:"required,email"`
	Password string `yaml:"password" validate:"required"`
}

// Search configures the keyword, the ordered location list and the page
// budget per location.
type Search struct {
	Keyword   string   `yaml:"keyword" validate:"required"`
	Locations []string `yaml:"locations" validate:"required,min=1,dive,required"`
	PageLimit int      `yaml:"page_limit" validate:"required,min=1"`
}

// Browser configures the Chrome session.
type Browser struct {
	Headless   bool   `yaml:"headless"`
	UserAgent  string `yaml:"user_agent"`
	ProfileDir string `yaml:"profile_dir"`
}

// Crawler tunes waits and pacing.
type Crawler struct {
	TimeoutSeconds int `yaml:"timeout_seconds" validate:"omitempty,min=1"`
	ScrollPasses   int `yaml:"scroll_passes" validate:"omitempty,min=1"`
}

// Ranking configures the similarity run.
type Ranking struct {
	// APIKey for the embedding API; the GEMINI_API_KEY environment
	// variable is used when empty.
	APIKey      string              `yaml:"api_key"`
	Model       string              `yaml:"model"`
	CVPath      string              `yaml:"cv_path"`
	TopN        int                 `yaml:"top_n" validate:"omitempty,min=1"`
	Preferences ranking.Preferences `yaml:"preferences"`
}

// Load reads and parses a YAML config file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration. A failure here is fatal for a run;
// the crawler is never started with a malformed config.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// Timeout returns the shared wait timeout, zero when unset so the crawler
// applies its default.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Crawler.TimeoutSeconds) * time.Second
}
