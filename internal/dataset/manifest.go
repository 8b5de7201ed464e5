// Package dataset hands a preselection over to dataset construction: it
// records selections in a manifest, copies selected meshes into a dataset
// directory and lists prepared training samples.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/amc-preselect/internal/selector"
)

// Manifest records one selection run.
type Manifest struct {
	CreatedAt      time.Time   `yaml:"created_at"`
	InputPath      string      `yaml:"input_path"`
	MaxFileSizeMB  float64     `yaml:"max_filesize_mb"`
	MinCompactness *float64    `yaml:"min_compactness,omitempty"`
	NumFiles       int         `yaml:"num_files"`
	SizeCandidates int         `yaml:"size_candidates"`
	Models         []Entry     `yaml:"models"`
	Rejected       []Rejection `yaml:"rejected,omitempty"`
}

// Entry is a selected model.
type Entry struct {
	Path        string   `yaml:"path"`
	SizeMB      float64  `yaml:"size_mb"`
	Compactness *float64 `yaml:"compactness,omitempty"`
}

// Rejection is a size candidate dropped by the compactness stage.
type Rejection struct {
	Path   string `yaml:"path"`
	Reason string `yaml:"reason"`
}

// NewManifest builds a manifest from a selection result.
func NewManifest(opts selector.Options, res *selector.Result, now time.Time) *Manifest {
	m := &Manifest{
		CreatedAt:      now.UTC(),
		InputPath:      opts.InputPath,
		MinCompactness: opts.MinCompactness,
		NumFiles:       opts.NumFiles,
		SizeCandidates: len(res.Candidates),
		Models:         make([]Entry, 0, len(res.Selected)),
	}
	if opts.MaxFileSize != nil {
		m.MaxFileSizeMB = *opts.MaxFileSize
	}

	for _, c := range res.Selected {
		e := Entry{Path: c.Path, SizeMB: c.SizeMB}
		if res.Scores != nil {
			if v, ok := res.Scores[c.Path].Value(); ok {
				e.Compactness = &v
			}
		}
		m.Models = append(m.Models, e)
	}

	if res.Scores == nil || opts.MinCompactness == nil {
		return m
	}
	for _, c := range res.Candidates {
		score := res.Scores[c.Path]
		if score.Passes(*opts.MinCompactness) {
			continue
		}
		reason := "compactness undefined"
		if v, ok := score.Value(); ok {
			reason = fmt.Sprintf("compactness %.4f below %.4f", v, *opts.MinCompactness)
		} else if score.Err() != nil {
			reason = score.Err().Error()
		}
		m.Rejected = append(m.Rejected, Rejection{Path: c.Path, Reason: reason})
	}

	return m
}

// Paths returns the selected model paths in order.
func (m *Manifest) Paths() []string {
	paths := make([]string, len(m.Models))
	for i, e := range m.Models {
		paths[i] = e.Path
	}
	return paths
}

// WriteManifest writes m as YAML to path, creating parent directories.
func WriteManifest(path string, m *Manifest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest %s: %w", path, err)
	}
	return &m, nil
}
