package main

import (
	"github.com/spf13/cobra"

	"github.com/spawner-ai/skillbench/internal/jury"
)

// juryCmd implements 'skillbench jury', stage 2 of the pipeline: each pair
// of contestant outputs is scored blind by every available judge model.
var juryCmd = &cobra.Command{
	Use:   "jury",
	Short: "Score a contestant run blind with the configured LLM judges",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newStageEnv(cmd.Context())
		if err != nil {
			return err
		}
		client, err := env.newLLMClient()
		if err != nil {
			return err
		}

		runner := jury.NewRunner(env.cfg, client, env.runs,
			jury.WithLogger(env.logger))
		_, err = runner.Run(cmd.Context(), jury.Params{
			RunID: juryOpts.RunID,
			Jury:  juryOpts.Jury,
		})
		return err
	},
}

func init() {
	rootCmd.AddCommand(juryCmd)
	juryCmd.Flags().StringVar(&juryOpts.RunID, "run-id", "", "Run ID from contestant phase")
	juryCmd.Flags().StringVar(&juryOpts.Jury, "jury", "", "Comma-separated jury models (default: all configured)")
	_ = juryCmd.MarkFlagRequired("run-id")
}

var juryOpts struct {
	RunID string
	Jury  string
}
