// Package config handles preselection configuration loading and management.
package config

import "github.com/Faultbox/amc-preselect/internal/selector"

// Config holds all preselection settings.
type Config struct {
	Selection SelectionConfig `yaml:"selection"`
	Dataset   DatasetConfig   `yaml:"dataset"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SelectionConfig holds the model selector parameters.
type SelectionConfig struct {
	InputPath      string   `yaml:"input_path"`      // Directory of STL files
	MaxFileSizeMB  *float64 `yaml:"max_filesize_mb"` // Required
	MinCompactness *float64 `yaml:"min_compactness"` // Omit to skip the compactness stage
	NumFiles       int      `yaml:"num_files"`       // 0 = all qualifying files
	Workers        int      `yaml:"workers"`         // Parallel compactness evaluations
}

// DatasetConfig holds the downstream dataset settings.
type DatasetConfig struct {
	ManifestPath string `yaml:"manifest_path"` // Where to write the selection manifest
	ExportDir    string `yaml:"export_dir"`    // Where to copy selected files
	SampleDir    string `yaml:"sample_dir"`    // Prepared training samples
	SampleExt    string `yaml:"sample_ext"`
	Cutoff       int    `yaml:"cutoff"` // 0 = all samples
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values. The input path
// and maximum file size have no defaults and must be configured.
func Default() *Config {
	return &Config{
		Selection: SelectionConfig{
			NumFiles: 0,
			Workers:  1,
		},
		Dataset: DatasetConfig{
			SampleExt: ".npz",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// SelectorOptions converts the selection section to selector options.
func (c *Config) SelectorOptions() selector.Options {
	return selector.Options{
		InputPath:      c.Selection.InputPath,
		MaxFileSize:    c.Selection.MaxFileSizeMB,
		MinCompactness: c.Selection.MinCompactness,
		NumFiles:       c.Selection.NumFiles,
		Workers:        c.Selection.Workers,
	}
}
