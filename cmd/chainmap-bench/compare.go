package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/theflywheel/chainmap/internal/bench"
)

func newCompareCmd() *cobra.Command {
	var (
		outputPath string
		threshold  float64
	)
	cmd := &cobra.Command{
		Use:   "compare <base.json> <current.json>",
		Short: "Compare two summaries and fail on significant regressions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := bench.LoadSummary(args[0])
			if err != nil {
				return err
			}
			current, err := bench.LoadSummary(args[1])
			if err != nil {
				return err
			}

			comparison := bench.Compare(base, current, threshold)
			comparison.Print(cmd.OutOrStdout())

			if outputPath != "" {
				data, err := json.MarshalIndent(comparison, "", "  ")
				if err != nil {
					return errors.Wrap(err, "error creating comparison JSON")
				}
				if err := os.WriteFile(outputPath, data, 0644); err != nil {
					return errors.Wrap(err, "error writing comparison file")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Comparison JSON written to %s\n", outputPath)
			}
			return comparison.Err()
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "benchmark-comparison.json", "comparison file to write, empty to skip")
	cmd.Flags().Float64Var(&threshold, "threshold", bench.DefaultSignificanceThreshold, "percent change considered significant")
	return cmd
}
