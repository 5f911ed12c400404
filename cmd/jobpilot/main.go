// Package main provides the entry point for the jobpilot CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobpilot",
	Short: "Candidate profiling and job application pipeline",
	Long:  "jobpilot analyzes resumes into structured candidate profiles, scores job postings against them, generates tailored cover letters and automates rate-limited batch applications.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
