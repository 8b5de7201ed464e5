package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ListSamples returns the files in dir ending in ext, sorted by name and
// truncated to cutoff entries when cutoff is positive.
func ListSamples(dir, ext string, cutoff int) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing samples: %w", err)
	}

	var samples []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		samples = append(samples, filepath.Join(dir, entry.Name()))
	}

	if cutoff > 0 && cutoff < len(samples) {
		samples = samples[:cutoff]
	}
	return samples, nil
}
