package config

import "github.com/spf13/pflag"

// Flags holds command-line overrides. Only flags the user actually set
// are applied, so an explicit --min-compactness=0 differs from no flag.
type Flags struct {
	fs *pflag.FlagSet

	configPath     string
	debug          bool
	input          string
	maxFileSize    float64
	minCompactness float64
	numFiles       int
	workers        int
	logFile        string
}

// BindFlags registers the shared flags on fs.
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.configPath, "config", "", "Path to config file")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	fs.StringVarP(&f.input, "input", "i", "", "Directory containing STL files")
	fs.Float64VarP(&f.maxFileSize, "max-filesize", "s", 0, "Maximum file size in MB")
	fs.Float64VarP(&f.minCompactness, "min-compactness", "c", 0, "Minimum compactness in [0, 1] (enables the compactness stage)")
	fs.IntVarP(&f.numFiles, "num-files", "n", 0, "Number of files to return (0 = all)")
	fs.IntVarP(&f.workers, "workers", "w", 1, "Parallel compactness evaluations")
	fs.StringVar(&f.logFile, "log-file", "", "Write logs to this file as well")
	return f
}

// ConfigPath returns the explicit config path if provided via --config flag.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return f.configPath
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if f.debug {
		cfg.Logging.Level = "debug"
	}
	if f.fs.Changed("input") {
		cfg.Selection.InputPath = f.input
	}
	if f.fs.Changed("max-filesize") {
		v := f.maxFileSize
		cfg.Selection.MaxFileSizeMB = &v
	}
	if f.fs.Changed("min-compactness") {
		v := f.minCompactness
		cfg.Selection.MinCompactness = &v
	}
	if f.fs.Changed("num-files") {
		cfg.Selection.NumFiles = f.numFiles
	}
	if f.fs.Changed("workers") {
		cfg.Selection.Workers = f.workers
	}
	if f.fs.Changed("log-file") {
		cfg.Logging.LogFile = f.logFile
	}
}
