package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Faultbox/amc-preselect/internal/selector"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.stl>...",
		Short: "Show size and compactness of individual models",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FILE\tSIZE\tCOMPACTNESS")

			var eval selector.Evaluator
			for _, path := range args {
				if err := cmd.Context().Err(); err != nil {
					return err
				}

				info, err := os.Stat(path)
				if err != nil {
					fmt.Fprintf(tw, "%s\t-\terror: %v\n", path, err)
					continue
				}

				score := eval.Evaluate(path)
				result := fmt.Sprintf("undefined (%v)", score.Err())
				if v, ok := score.Value(); ok {
					result = fmt.Sprintf("%.4f", v)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", path, humanize.Bytes(uint64(info.Size())), result)
			}
			return tw.Flush()
		},
	}
}
