package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mariana/jobpilot/internal/apply"
	"github.com/mariana/jobpilot/internal/config"
	"github.com/mariana/jobpilot/internal/letter"
	"github.com/mariana/jobpilot/internal/llm"
	"github.com/mariana/jobpilot/internal/profile"
	"github.com/mariana/jobpilot/internal/server"
	"github.com/mariana/jobpilot/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for resume analysis, job search, matching and applications.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
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

	srv := server.New(server.Config{
		Port:              cfg.Port,
		MinScore:          cfg.AutoApplyMinScore,
		MaxApplications:   cfg.AutoApplyMaxApplications,
		ApplyDelay:        cfg.ApplyDelay,
		DelayAfterFailure: cfg.DelayAfterFailure,
	}, server.Deps{
		Store:    st,
		Analyzer: profile.NewAnalyzer(client, tier),
		Source:   buildSource(cfg),
		Applier:  orchestrator,
		Archive:  buildArchive(ctx, cfg),
		Notifier: buildNotifier(cfg),
	})

	return srv.Start()
}
