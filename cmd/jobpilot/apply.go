package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mariana/jobpilot/internal/apply"
	"github.com/mariana/jobpilot/internal/config"
	"github.com/mariana/jobpilot/internal/letter"
	"github.com/mariana/jobpilot/internal/llm"
	"github.com/mariana/jobpilot/internal/observability"
	"github.com/mariana/jobpilot/internal/store"
)

var applyShowLetter bool

var applyCmd = &cobra.Command{
	Use:   "apply <job-id>",
	Short: "Apply to a single job posting",
	Long:  "Generate a cover letter for the posting using the latest candidate profile and record the application. Fails if the posting was already applied to.",
	Args:  cobra.ExactArgs(1),
	RunE:  runApply,
}

func init() {
	applyCmd.Flags().BoolVar(&applyShowLetter, "show-letter", false, "Print the generated cover letter")
	rootCmd.AddCommand(applyCmd)
}

func runApply(_ *cobra.Command, args []string) error {
	jobID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid job ID %q: %w", args[0], err)
	}

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	ctx := context.Background()
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

	result, err := orchestrator.ApplyToJob(ctx, jobID)
	if err != nil {
		return err
	}

	buildNotifier(cfg).ApplicationSubmitted(result.Posting)

	fmt.Fprintf(os.Stdout, "Applied to %s at %s\n", result.Posting.Title, result.Posting.Company)
	fmt.Fprintf(os.Stdout, "Application ID: %s\n", result.Application.ID)
	if applyShowLetter {
		observability.NewPrinter(os.Stdout).PrintCoverLetter(result.Application.CoverLetter)
	}
	return nil
}
