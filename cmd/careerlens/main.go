// Package main provides the entry point for the CareerLens HTTP API server
// and supporting CLI commands.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "careerlens",
	Short: "CareerLens career intelligence API server",
	Long:  "CareerLens scores career assessments, generates AI intelligence reports, and serves them over a REST API with plan-tiered access.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
