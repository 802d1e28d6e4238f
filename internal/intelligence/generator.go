// Package intelligence turns assessment answers and scores into an
// LLM-generated career intelligence report. The model's JSON output is
// validated against an embedded JSON Schema before it is accepted; an
// invalid document is rejected, never partially decoded.
package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/careerlens/careerlens/internal/llm"
	"github.com/careerlens/careerlens/internal/prompts"
	"github.com/careerlens/careerlens/internal/schemas"
	"github.com/careerlens/careerlens/internal/types"
	"golang.org/x/sync/errgroup"
)

const promptFile = "intelligence.json"

// DefaultTimeout bounds one full report generation, covering all fanned-out
// model calls.
const DefaultTimeout = 90 * time.Second

// Generator produces intelligence reports. Construct with NewGenerator and
// inject wherever reports are made; it holds no global state.
type Generator struct {
	client  llm.Client
	timeout time.Duration
}

// NewGenerator creates a Generator backed by the given LLM client.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{
		client:  client,
		timeout: DefaultTimeout,
	}
}

// Model returns the provider model used for the main report call.
func (g *Generator) Model() string {
	return g.client.GetModel(llm.TierStandard)
}

// Generate builds the full report for one assessment. The core report, the
// resume critique, and the side-project ideas are independent model calls
// fanned out concurrently and joined; a failure or schema violation in any
// of them fails the whole generation.
func (g *Generator) Generate(ctx context.Context, answers types.AssessmentAnswers, scores types.ScoreResult) (*types.IntelligenceReport, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	data := map[string]string{
		"Profile":       formatProfile(answers),
		"LeverageScore": strconv.Itoa(scores.LeverageScore),
		"RiskScore":     strconv.Itoa(scores.RiskScore),
	}

	var core, resume, projects map[string]json.RawMessage
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		core, err = g.generateSection(ctx, "report", data, llm.TierStandard)
		return err
	})
	group.Go(func() error {
		var err error
		resume, err = g.generateSection(ctx, "resume_insights", data, llm.TierLite)
		return err
	})
	group.Go(func() error {
		var err error
		projects, err = g.generateSection(ctx, "side_projects", data, llm.TierLite)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	merged := core
	for key, value := range resume {
		merged[key] = value
	}
	for key, value := range projects {
		merged[key] = value
	}

	document, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble report document: %w", err)
	}

	if err := schemas.ValidateIntelligenceReport(string(document)); err != nil {
		return nil, fmt.Errorf("report failed schema validation: %w", err)
	}

	var report types.IntelligenceReport
	if err := json.Unmarshal(document, &report); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &report, nil
}

// generateSection runs one prompt and decodes the raw JSON object it returns.
func (g *Generator) generateSection(ctx context.Context, key string, data map[string]string, tier llm.ModelTier) (map[string]json.RawMessage, error) {
	template, err := prompts.Get(promptFile, key)
	if err != nil {
		return nil, err
	}

	raw, err := g.client.GenerateJSON(ctx, prompts.Format(template, data), tier)
	if err != nil {
		return nil, fmt.Errorf("%s generation failed: %w", key, err)
	}

	var section map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &section); err != nil {
		return nil, fmt.Errorf("%s returned malformed JSON: %w", key, err)
	}
	return section, nil
}

// formatProfile renders the answers as a compact plain-text profile for
// prompt interpolation. Unset fields are omitted rather than sent as blanks.
func formatProfile(answers types.AssessmentAnswers) string {
	var sb strings.Builder
	write := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		fmt.Fprintf(&sb, "- %s: %s\n", label, value)
	}

	write("Role", answers.RoleTitle)
	if answers.YearsExperience > 0 {
		write("Years of experience", strconv.FormatFloat(answers.YearsExperience, 'f', -1, 64))
	}
	write("Industry", answers.Industry)
	write("Location", answers.Location)
	write("Salary band", answers.SalaryBand)
	write("Primary skills", answers.PrimarySkills)
	write("Secondary skills", answers.SecondarySkills)
	write("AI familiarity", answers.AIFamiliarity)
	write("Career goal", answers.CareerGoal)
	write("Risk tolerance", answers.RiskTolerance)
	write("Entrepreneurship interest", answers.EntrepreneurshipInterest)
	fmt.Fprintf(&sb, "- Self-ratings (1-10): leadership %d, differentiation %d, technical relevance %d, network %d\n",
		answers.LeadershipVisibility, answers.MarketDifferentiation,
		answers.TechnicalRelevance, answers.NetworkStrength)

	return sb.String()
}
