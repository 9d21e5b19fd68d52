package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/spawner-ai/skillbench/internal/config"
	"github.com/spawner-ai/skillbench/internal/llm"
	"github.com/spawner-ai/skillbench/internal/skillset"
	"github.com/spawner-ai/skillbench/internal/store"
)

// rootCmd is the top-level command; the three stage commands hang off it.
var rootCmd = &cobra.Command{
	Use:   "skillbench",
	Short: "Benchmark skill-injected assistants against vanilla ones",
	Long: `skillbench measures whether injected skill expertise actually improves
an assistant. Each test prompt is answered twice, with and without the
skill, the two answers are scored blind by a jury of LLM judges, and the
verdicts are aggregated into a benchmark report.`,
	SilenceUsage: true,
}

var rootOpts struct {
	Config  string
	Verbose bool
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootOpts.Config, "config", config.DefaultPath, "Benchmark configuration file")
	rootCmd.PersistentFlags().BoolVar(&rootOpts.Verbose, "verbose", false, "Enable debug logging")
}

// newLogger builds the process logger. Stage progress prints to stdout, so
// diagnostics go to stderr and stay quiet unless --verbose is set.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if rootOpts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// stageEnv bundles the collaborators shared by the stage commands.
type stageEnv struct {
	cfg      *config.Config
	logger   *slog.Logger
	runs     *store.RunStore
	registry *skillset.Registry
}

func newStageEnv(ctx context.Context) (*stageEnv, error) {
	cfg, err := config.Load(ctx, rootOpts.Config)
	if err != nil {
		return nil, err
	}
	return &stageEnv{
		cfg:      cfg,
		logger:   newLogger(),
		runs:     store.NewRunStore(cfg.Paths.Outputs),
		registry: skillset.NewRegistry(cfg.Paths.Skills),
	}, nil
}

// newLLMClient assembles the provider client for the calling stages.
func (e *stageEnv) newLLMClient() (llm.Client, error) {
	return llm.NewClient(e.cfg.LLMClientConfig(), llm.WithLogger(e.logger))
}
