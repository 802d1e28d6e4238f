package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/careerlens/careerlens/internal/scoring"
	"github.com/careerlens/careerlens/internal/types"
)

var scoreAnswersPath string

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score an assessment offline",
	Long: `Compute leverage and risk scores for a set of assessment answers without
touching the database or any API. Useful for tuning and debugging the
scoring weights.`,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreAnswersPath, "answers", "a", "", "Path to assessment answers JSON file")
	_ = scoreCmd.MarkFlagRequired("answers")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	answers, err := loadAnswers(scoreAnswersPath)
	if err != nil {
		return err
	}

	result := scoring.CalculateScores(*answers)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func loadAnswers(path string) (*types.AssessmentAnswers, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers file: %w", err)
	}

	var answers types.AssessmentAnswers
	if err := json.Unmarshal(raw, &answers); err != nil {
		return nil, fmt.Errorf("failed to parse answers file: %w", err)
	}
	if err := answers.Validate(); err != nil {
		return nil, fmt.Errorf("invalid answers: %w", err)
	}
	return &answers, nil
}
