package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootFlags struct {
	verbose bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "chainmap-bench",
		Short:         "Benchmark chainmap workloads",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log at debug level, including every rehash")

	cmd.AddCommand(
		newRunCmd(flags),
		newCompareCmd(),
	)
	return cmd
}

func (f *rootFlags) logger() (*zap.Logger, error) {
	if f.verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
