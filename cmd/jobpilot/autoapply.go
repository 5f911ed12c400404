package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mariana/jobpilot/internal/apply"
	"github.com/mariana/jobpilot/internal/config"
	"github.com/mariana/jobpilot/internal/letter"
	"github.com/mariana/jobpilot/internal/llm"
	"github.com/mariana/jobpilot/internal/observability"
	"github.com/mariana/jobpilot/internal/store"
)

var (
	autoMinScore          float64
	autoMax               int
	autoDelay             time.Duration
	autoDelayAfterFailure bool
)

var autoapplyCmd = &cobra.Command{
	Use:   "autoapply",
	Short: "Apply to the best matching unapplied postings",
	Long: `Select unapplied postings at or above the minimum match score, best match
first, and apply to each with a generated cover letter. Applications are
spaced by a fixed delay. A failed posting is skipped and the batch continues.
Ctrl-C stops the run and reports the partial result.`,
	RunE: runAutoApply,
}

func init() {
	autoapplyCmd.Flags().Float64Var(&autoMinScore, "min-score", 0, "Minimum match score (overrides AUTO_APPLY_MIN_SCORE)")
	autoapplyCmd.Flags().IntVar(&autoMax, "max", 0, "Maximum applications this run (overrides AUTO_APPLY_MAX_APPLICATIONS)")
	autoapplyCmd.Flags().DurationVar(&autoDelay, "delay", 0, "Delay between applications (overrides APPLY_DELAY_SECONDS)")
	autoapplyCmd.Flags().BoolVar(&autoDelayAfterFailure, "delay-after-failure", false, "Also pause after failed attempts")
	rootCmd.AddCommand(autoapplyCmd)
}

func runAutoApply(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	opts := apply.BatchOptions{
		MinScore:          cfg.AutoApplyMinScore,
		MaxApplications:   cfg.AutoApplyMaxApplications,
		Delay:             cfg.ApplyDelay,
		DelayAfterFailure: cfg.DelayAfterFailure,
	}
	if cmd.Flags().Changed("min-score") {
		opts.MinScore = autoMinScore
	}
	if cmd.Flags().Changed("max") {
		opts.MaxApplications = autoMax
	}
	if cmd.Flags().Changed("delay") {
		opts.Delay = autoDelay
	}
	if cmd.Flags().Changed("delay-after-failure") {
		opts.DelayAfterFailure = autoDelayAfterFailure
	}
	opts.OnProgress = func(event apply.ProgressEvent) {
		fmt.Fprintf(os.Stdout, "[%s] %s\n", event.Stage, event.Message)
	}

	// Stop cleanly on Ctrl-C: the batch returns its partial result.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer st.Close()

	client, err := buildLLMClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	if client != nil {
		defer client.Close()
	}

	tier := llm.ParseTier(cfg.GeminiModelTier)
	orchestrator := apply.NewOrchestrator(st, letter.NewSynthesizer(client, tier))

	result, err := orchestrator.RunBatch(ctx, opts)
	interrupted := result != nil && errors.Is(err, context.Canceled)
	if err != nil && !interrupted {
		return err
	}

	if len(result.Applications) > 0 || len(result.Failures) > 0 {
		buildNotifier(cfg).BatchCompleted(result)
	}
	observability.NewPrinter(os.Stdout).PrintBatchResult(result)

	if interrupted {
		fmt.Fprintln(os.Stdout, "Interrupted; partial result shown above")
	}
	return nil
}
