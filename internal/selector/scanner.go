package selector

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MeshExtension is the only file suffix considered during scanning.
const MeshExtension = ".stl"

const bytesPerMB = 1000 * 1000

// Candidate is a file under consideration with its size in megabytes.
type Candidate struct {
	Path   string
	SizeMB float64
}

// ScanSizes lists the mesh files in dir no larger than maxMB, ordered by
// ascending size. Files with the same size keep directory order.
func ScanSizes(dir string, maxMB float64, obs Observer) ([]Candidate, error) {
	if obs == nil {
		obs = NopObserver()
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNotFound, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	var files []Candidate
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), MeshExtension) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		fi, err := entry.Info()
		if err != nil {
			// Removed between listing and stat.
			continue
		}

		size := float64(fi.Size()) / bytesPerMB
		accepted := size <= maxMB
		obs.FileScanned(path, size, accepted)
		if accepted {
			files = append(files, Candidate{Path: path, SizeMB: size})
		}
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].SizeMB < files[j].SizeMB
	})

	return files, nil
}
