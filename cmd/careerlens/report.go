package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/careerlens/careerlens/internal/intelligence"
	"github.com/careerlens/careerlens/internal/llm"
	"github.com/careerlens/careerlens/internal/scoring"
)

var (
	reportAnswersPath string
	reportAPIKey      string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate an intelligence report offline",
	Long: `Score a set of assessment answers and run one full report generation
against the model, printing the resulting document. Bypasses the database
and notification delivery entirely.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportAnswersPath, "answers", "a", "", "Path to assessment answers JSON file")
	reportCmd.Flags().StringVar(&reportAPIKey, "api-key", "", "Gemini API key (optional, defaults to GEMINI_API_KEY env var)")
	_ = reportCmd.MarkFlagRequired("answers")
	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command, _ []string) error {
	answers, err := loadAnswers(reportAnswersPath)
	if err != nil {
		return err
	}

	apiKey := reportAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key required: pass --api-key or set GEMINI_API_KEY")
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	scores := scoring.CalculateScores(*answers)
	fmt.Fprintf(os.Stderr, "Leverage: %d  Risk: %d\n", scores.LeverageScore, scores.RiskScore)

	report, err := intelligence.NewGenerator(client).Generate(ctx, *answers, scores)
	if err != nil {
		return fmt.Errorf("report generation failed: %w", err)
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
