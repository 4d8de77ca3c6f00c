package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
)

// hourLayout keys a crawl batch by its capture hour.
const hourLayout = "2006-01-02_15"

// LoadError is returned when a batch file cannot be read back.
type LoadError struct {
	Path  string
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("corpus load error: %s: %v", e.Path, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Store writes and reads crawl batches under a base directory using the
// layout parquet_files/<capture-hour>/data_<capture-hour>.parquet.
type Store struct {
	base string
}

// NewStore returns a Store rooted at base.
func NewStore(base string) *Store {
	return &Store{base: base}
}

// Write persists one crawl batch keyed by the capture time's hour and
// returns the file path.
func (s *Store) Write(records []Record, at time.Time) (string, error) {
	hour := at.Format(hourLayout)
	dir := filepath.Join(s.base, "parquet_files", hour)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create batch directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("data_%s.parquet", hour))
	if err := parquet.WriteFile(path, records); err != nil {
		return "", fmt.Errorf("failed to write batch %s: %w", path, err)
	}
	return path, nil
}

// Read loads a batch file as written by Write, nulls included.
func (s *Store) Read(path string) ([]Record, error) {
	return ReadBatch(path)
}

// ReadBatch loads a batch file as written by Store.Write, nulls included.
func ReadBatch(path string) ([]Record, error) {
	records, err := parquet.ReadFile[Record](path)
	if err != nil {
		return nil, &LoadError{Path: path, Cause: err}
	}
	return records, nil
}
