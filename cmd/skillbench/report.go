package main

import (
	"github.com/spf13/cobra"

	"github.com/spawner-ai/skillbench/internal/report"
)

// reportCmd implements 'skillbench report', stage 3 of the pipeline: the
// run's judgments are aggregated into the benchmark report and per-skill
// improvement-areas files.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the benchmark report for a judged run",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newStageEnv(cmd.Context())
		if err != nil {
			return err
		}

		runner := report.NewRunner(env.runs, env.registry,
			report.WithLogger(env.logger))
		_, err = runner.Run(report.Params{
			RunID:                reportOpts.RunID,
			SkipImprovementFiles: reportOpts.NoImprovementFiles,
		})
		return err
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVar(&reportOpts.RunID, "run-id", "", "Run ID to generate report for")
	reportCmd.Flags().BoolVar(&reportOpts.NoImprovementFiles, "no-improvement-files", false, "Skip generating per-skill improvement files")
	_ = reportCmd.MarkFlagRequired("run-id")
}

var reportOpts struct {
	RunID              string
	NoImprovementFiles bool
}
