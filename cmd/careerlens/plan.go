package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/careerlens/careerlens/internal/db"
	"github.com/careerlens/careerlens/internal/types"
)

var (
	planEmail string
	planTier  string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Set a user's plan tier",
	Long: `Write the plan marker into a user's metadata. Stands in for the billing
webhook in development and support workflows.`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planEmail, "email", "", "Email of the account to update")
	planCmd.Flags().StringVar(&planTier, "tier", "", "Plan tier (free or pro)")
	_ = planCmd.MarkFlagRequired("email")
	_ = planCmd.MarkFlagRequired("tier")
	rootCmd.AddCommand(planCmd)
}

func runPlan(_ *cobra.Command, _ []string) error {
	tier := types.PlanType(strings.ToLower(strings.TrimSpace(planTier)))
	if !tier.Valid() {
		return fmt.Errorf("invalid tier %q: must be free or pro", planTier)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	user, err := database.GetUserByEmail(ctx, planEmail)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("no account with email %s", planEmail)
	}

	meta := user.UserMetadata
	if meta == nil {
		meta = types.Metadata{}
	}
	meta[types.MetadataPlanKey] = string(tier)

	if err := database.SetUserMetadata(ctx, user.ID, meta); err != nil {
		return fmt.Errorf("failed to update plan: %w", err)
	}

	fmt.Printf("%s is now on the %s plan\n", planEmail, tier)
	return nil
}
