package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/amc-preselect/internal/dataset"
	"github.com/Faultbox/amc-preselect/internal/logger"
	"github.com/Faultbox/amc-preselect/internal/selector"
)

func newSelectCmd(a *app) *cobra.Command {
	var (
		manifestPath string
		exportDir    string
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Print the preselected model paths, smallest first",
		Example: `  amcselect select -i ./stl -s 4
  amcselect select -i ./stl -s 4 -c 0.5 -n 1000 -w 8 --manifest selection.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("manifest") {
				a.cfg.Dataset.ManifestPath = manifestPath
			}
			if cmd.Flags().Changed("export") {
				a.cfg.Dataset.ExportDir = exportDir
			}

			opts := a.cfg.SelectorOptions()
			sel, err := selector.New(opts, selector.WithObserver(logger.NewSelectionObserver(nil)))
			if err != nil {
				return err
			}
			if opts.NumFiles == 0 {
				logger.Info("number of files not specified, returning every qualifying file")
			}
			if opts.MinCompactness == nil {
				logger.Info("compactness not specified, skipping compactness stage")
			}

			start := time.Now()
			res, err := sel.Select(cmd.Context())
			if err != nil {
				return err
			}
			logger.Info("selected models",
				zap.Int("count", len(res.Selected)),
				zap.Duration("elapsed", time.Since(start)),
			)

			out := cmd.OutOrStdout()
			for _, c := range res.Selected {
				if verbose {
					fmt.Fprintf(out, "%s\t%s\n", c.Path, humanize.Bytes(uint64(c.SizeMB*1000*1000)))
					continue
				}
				fmt.Fprintln(out, c.Path)
			}

			if p := a.cfg.Dataset.ManifestPath; p != "" {
				if err := dataset.WriteManifest(p, dataset.NewManifest(opts, res, time.Now())); err != nil {
					return fmt.Errorf("writing manifest: %w", err)
				}
				logger.Info("wrote manifest", zap.String("path", p))
			}

			if dir := a.cfg.Dataset.ExportDir; dir != "" {
				copied, err := dataset.Export(cmd.Context(), res.Paths(), dir)
				if err != nil {
					return fmt.Errorf("exporting selection: %w", err)
				}
				logger.Info("exported models", zap.String("dir", dir), zap.Int("count", len(copied)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "Write a YAML selection manifest to this path")
	cmd.Flags().StringVar(&exportDir, "export", "", "Copy selected models into this directory")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print file sizes next to paths")
	return cmd
}
