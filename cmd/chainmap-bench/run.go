package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theflywheel/chainmap/internal/bench"
)

const runExample = `
Run the built-in scale workloads:

$ chainmap-bench run -o benchmark_history/latest.json

Run workloads from a file:

$ chainmap-bench run -c workloads.yaml -o results.json

workloads.yaml:

  workloads:
    - name: UUIDKeys
      category: scale
      keys: 100000
      key_kind: uuid
      value_size: 100
      erase_fraction: 0.1
`

func newRunCmd(root *rootFlags) *cobra.Command {
	var (
		configPath string
		outputPath string
		commitID   string
		branch     string
	)
	cmd := &cobra.Command{
		Use:     "run",
		Short:   "Run workloads and write a JSON summary",
		Example: runExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := root.logger()
			if err != nil {
				return errors.Wrap(err, "failed to create logger")
			}
			defer logger.Sync()

			config := bench.DefaultConfig()
			if configPath != "" {
				if config, err = bench.LoadConfig(configPath); err != nil {
					return err
				}
			}

			detectedCommit, detectedBranch := bench.DetectGit(".")
			if commitID == "" {
				commitID = detectedCommit
			}
			if branch == "" {
				branch = detectedBranch
			}

			summary := bench.NewSummary(commitID, branch)
			if err := bench.NewRunner(logger).RunAll(cmd.Context(), config, &summary); err != nil {
				return err
			}
			if err := summary.Save(outputPath); err != nil {
				return err
			}
			logger.Info("benchmark results saved",
				zap.String("path", outputPath),
				zap.Int("results", len(summary.Results)))
			fmt.Fprintf(cmd.OutOrStdout(), "Benchmark results saved to: %s\n", outputPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML workload file (default: built-in scale workloads)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "benchmark_history/latest.json", "summary file to write")
	cmd.Flags().StringVar(&commitID, "commit", os.Getenv("GITHUB_SHA"), "commit recorded in the summary")
	cmd.Flags().StringVar(&branch, "branch", "", "branch recorded in the summary")
	return cmd
}
