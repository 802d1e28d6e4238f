package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAnswersFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "answers.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAnswers_Valid(t *testing.T) {
	path := writeAnswersFile(t, `{
		"role_title": "Data Engineer",
		"years_experience": 4,
		"primary_skills": "Python, SQL",
		"ai_familiarity": "Intermediate",
		"leadership_visibility": 5,
		"market_differentiation": 6,
		"technical_relevance": 7,
		"network_strength": 4
	}`)

	answers, err := loadAnswers(path)
	require.NoError(t, err)
	assert.Equal(t, "Data Engineer", answers.RoleTitle)
	assert.Equal(t, 4.0, answers.YearsExperience)
}

func TestLoadAnswers_MissingFile(t *testing.T) {
	_, err := loadAnswers(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadAnswers_BadJSON(t *testing.T) {
	path := writeAnswersFile(t, "{not json")
	_, err := loadAnswers(path)
	assert.Error(t, err)
}

func TestLoadAnswers_FailsValidation(t *testing.T) {
	// role_title is required; ratings must be 1-10.
	path := writeAnswersFile(t, `{"years_experience": 2}`)
	_, err := loadAnswers(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid answers")
}
