package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/amc-preselect/internal/dataset"
	"github.com/Faultbox/amc-preselect/internal/logger"
)

func newSamplesCmd(a *app) *cobra.Command {
	var (
		dir    string
		ext    string
		cutoff int
	)

	cmd := &cobra.Command{
		Use:   "samples",
		Short: "List prepared training samples",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds := a.cfg.Dataset
			if cmd.Flags().Changed("dir") {
				ds.SampleDir = dir
			}
			if cmd.Flags().Changed("ext") {
				ds.SampleExt = ext
			}
			if cmd.Flags().Changed("cutoff") {
				ds.Cutoff = cutoff
			}
			if ds.SampleDir == "" {
				return errors.New("sample directory is required (--dir or dataset.sample_dir)")
			}

			samples, err := dataset.ListSamples(ds.SampleDir, ds.SampleExt, ds.Cutoff)
			if err != nil {
				return err
			}
			logger.Debug("listed samples", zap.String("dir", ds.SampleDir), zap.Int("count", len(samples)))

			for _, s := range samples {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Sample directory")
	cmd.Flags().StringVar(&ext, "ext", ".npz", "Sample file extension")
	cmd.Flags().IntVar(&cutoff, "cutoff", 0, "Maximum number of samples (0 = all)")
	return cmd
}
