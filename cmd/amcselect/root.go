package main

import (
	"github.com/spf13/cobra"

	"github.com/Faultbox/amc-preselect/internal/config"
	"github.com/Faultbox/amc-preselect/internal/logger"
)

// app carries state shared by all subcommands.
type app struct {
	flags *config.Flags
	cfg   *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "amcselect",
		Short: "Preselect STL models by file size and compactness",
		Long: `amcselect scans a directory of STL models, keeps files up to a maximum
size, optionally rejects models whose compactness (enclosed volume over
bounding-box volume) is below a threshold, and prints the selection in
ascending size order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.flags)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
		},
	}
	a.flags = config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newSelectCmd(a),
		newInspectCmd(a),
		newSamplesCmd(a),
		newConfigCmd(a),
	)
	return root
}
