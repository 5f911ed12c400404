package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mariana/jobpilot/internal/config"
	"github.com/mariana/jobpilot/internal/extraction"
	"github.com/mariana/jobpilot/internal/llm"
	"github.com/mariana/jobpilot/internal/observability"
	"github.com/mariana/jobpilot/internal/profile"
	"github.com/mariana/jobpilot/internal/store"
)

var analyzeSave bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <resume-file>",
	Short: "Extract a structured candidate profile from a resume",
	Long:  "Extract text from a resume document (.pdf, .docx or .txt), analyze it into a structured candidate profile and print the result.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Persist the profile to the database")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	text, err := extraction.Extract(filepath.Base(path), data)
	if err != nil {
		return err
	}

	cfg := config.Load()
	ctx := context.Background()

	client, err := buildLLMClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	if client != nil {
		defer client.Close()
	}

	analyzer := profile.NewAnalyzer(client, llm.ParseTier(cfg.GeminiModelTier))
	p := analyzer.Analyze(ctx, text)

	if analyzeSave {
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required for --save")
		}
		st, err := store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.InsertProfile(ctx, p); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Saved profile %s\n", p.ID)
	}

	observability.NewPrinter(os.Stdout).PrintProfile(p)
	return nil
}
