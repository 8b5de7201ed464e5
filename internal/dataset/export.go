package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Export errors.
var (
	ErrExportIntoSource = errors.New("export destination is the source file")
	ErrExportExists     = errors.New("export destination already exists")
)

// Export copies each file in paths into dir, keeping base names, and
// returns the new paths in the same order. Source files are not modified
// and existing files in dir are never overwritten.
func Export(ctx context.Context, paths []string, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	out := make([]string, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for _, src := range paths {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		name := filepath.Base(src)
		if prev, dup := seen[name]; dup {
			return out, fmt.Errorf("export name collision: %s and %s", prev, src)
		}
		seen[name] = src

		dst := filepath.Join(dir, name)
		if err := copyFile(src, dst); err != nil {
			return out, err
		}
		out = append(out, dst)
	}
	return out, nil
}

func copyFile(src, dst string) error {
	srcAbs, err := filepath.Abs(src)
	if err != nil {
		return err
	}
	dstAbs, err := filepath.Abs(dst)
	if err != nil {
		return err
	}
	if srcAbs == dstAbs {
		return fmt.Errorf("%w: %s", ErrExportIntoSource, src)
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	if dstInfo, err := os.Stat(dst); err == nil {
		// Catches symlinked or hard-linked directories too.
		if os.SameFile(srcInfo, dstInfo) {
			return fmt.Errorf("%w: %s", ErrExportIntoSource, src)
		}
		return fmt.Errorf("%w: %s", ErrExportExists, dst)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrExportExists, dst)
		}
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(f, in); err != nil {
		f.Close()
		os.Remove(dst)
		return fmt.Errorf("copying %s: %w", src, err)
	}
	return f.Close()
}
