package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownPrompts(t *testing.T) {
	for _, key := range []string{"report", "resume_insights", "side_projects"} {
		prompt, err := Get("intelligence.json", key)
		require.NoError(t, err, "key %s", key)
		assert.Contains(t, prompt, "{{.Profile}}")
		assert.Contains(t, prompt, "ONLY valid JSON")
	}
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("intelligence.json", "missing")
	assert.Error(t, err)
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("nope.json", "report")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	result := Format("profile: {{.Profile}}, leverage: {{.LeverageScore}}", map[string]string{
		"Profile":       "engineer",
		"LeverageScore": "80",
	})

	assert.Equal(t, "profile: engineer, leverage: 80", result)
	assert.False(t, strings.Contains(result, "{{"))
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() { MustGet("intelligence.json", "missing") })
}
