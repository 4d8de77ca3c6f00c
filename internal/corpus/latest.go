package corpus

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"time"
)

// MostRecentFile walks root and returns the path of the file with the
// newest modification time. It is how the rank command finds the latest
// crawl batch without being told its capture hour.
func MostRecentFile(root string) (string, error) {
	var newest string
	var newestTime time.Time

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if newest == "" || info.ModTime().After(newestTime) {
			newest = path
			newestTime = info.ModTime()
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to scan %s: %w", root, err)
	}
	if newest == "" {
		return "", fmt.Errorf("no files found under %s", root)
	}
	return newest, nil
}
