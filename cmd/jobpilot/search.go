package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mariana/jobpilot/internal/config"
	"github.com/mariana/jobpilot/internal/jobsource"
	"github.com/mariana/jobpilot/internal/matching"
	"github.com/mariana/jobpilot/internal/observability"
	"github.com/mariana/jobpilot/internal/store"
	"github.com/mariana/jobpilot/internal/types"
)

var (
	searchKeywords   string
	searchLocation   string
	searchExperience string
	searchMax        int
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for jobs and score them against the latest profile",
	Long:  "Fetch postings from the configured job source, score each against the most recent candidate profile, persist the scored postings and print them best match first.",
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchKeywords, "keywords", "k", "", "Search keywords (required)")
	searchCmd.Flags().StringVarP(&searchLocation, "location", "l", "Remote", "Job location")
	searchCmd.Flags().StringVar(&searchExperience, "experience", "mid-level", "Experience level")
	searchCmd.Flags().IntVar(&searchMax, "max", 20, "Maximum number of postings to fetch")
	_ = searchCmd.MarkFlagRequired("keywords")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(_ *cobra.Command, _ []string) error {
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

	candidate, err := st.LatestProfile(ctx)
	if err != nil {
		return err
	}
	if candidate == nil {
		return fmt.Errorf("no candidate profile found; run `jobpilot analyze --save` first")
	}

	raw, err := buildSource(cfg).Search(ctx, jobsource.Query{
		Keywords:        searchKeywords,
		Location:        searchLocation,
		ExperienceLevel: searchExperience,
		MaxResults:      searchMax,
	})
	if err != nil {
		return fmt.Errorf("job search failed: %w", err)
	}

	postings := matching.BuildPostings(candidate, raw)
	for _, posting := range postings {
		if err := st.InsertPosting(ctx, posting); err != nil {
			return fmt.Errorf("failed to save posting: %w", err)
		}
	}
	matching.Rank(postings)

	ranked := make([]types.JobPosting, 0, len(postings))
	for _, posting := range postings {
		ranked = append(ranked, *posting)
	}
	observability.NewPrinter(os.Stdout).PrintPostings(ranked)
	return nil
}
