package main

import (
	"github.com/spf13/cobra"

	"github.com/spawner-ai/skillbench/internal/contestant"
)

// contestantsCmd implements 'skillbench contestants', stage 1 of the
// pipeline: every test prompt is answered by the vanilla and the skilled
// contestant and both outputs are persisted for the jury.
var contestantsCmd = &cobra.Command{
	Use:   "contestants",
	Short: "Run vanilla and skilled contestants over the skill test suites",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newStageEnv(cmd.Context())
		if err != nil {
			return err
		}
		client, err := env.newLLMClient()
		if err != nil {
			return err
		}

		runner := contestant.NewRunner(env.cfg, client, env.runs, env.registry,
			contestant.WithLogger(env.logger))
		_, err = runner.Run(cmd.Context(), contestant.Params{
			Skills: contestantsOpts.Skills,
			TestID: contestantsOpts.TestID,
			RunID:  contestantsOpts.RunID,
		})
		return err
	},
}

func init() {
	rootCmd.AddCommand(contestantsCmd)
	contestantsCmd.Flags().StringVar(&contestantsOpts.Skills, "skills", "", "Comma-separated skill IDs or 'all'")
	contestantsCmd.Flags().StringVar(&contestantsOpts.TestID, "test-id", "", "Run specific test ID only")
	contestantsCmd.Flags().StringVar(&contestantsOpts.RunID, "run-id", "", "Use specific run ID (default: auto-generated)")
	_ = contestantsCmd.MarkFlagRequired("skills")
}

var contestantsOpts struct {
	Skills string
	TestID string
	RunID  string
}
