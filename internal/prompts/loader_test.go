package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get(LeadsFile, "lead-analysis")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "{{.Reviews}}")
	assert.Contains(t, prompt, "aiPitch")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get(LeadsFile, "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestMustGet_ValidPrompt(t *testing.T) {
	ClearCache()

	assert.NotPanics(t, func() {
		prompt := MustGet(LeadsFile, "lead-analysis")
		assert.NotEmpty(t, prompt)
	})
}

func TestFormat(t *testing.T) {
	template := "Hello {{.Name}}, welcome to {{.Company}}!"
	data := map[string]string{
		"Name":    "Alice",
		"Company": "Acme Corp",
	}

	result := Format(template, data)
	assert.Equal(t, "Hello Alice, welcome to Acme Corp!", result)
}

func TestFormat_NoPlaceholders(t *testing.T) {
	template := "No placeholders here"
	data := map[string]string{"Key": "Value"}

	result := Format(template, data)
	assert.Equal(t, template, result)
}

func TestFormat_EmptyData(t *testing.T) {
	template := "Hello {{.Name}}"
	data := map[string]string{}

	result := Format(template, data)
	assert.Equal(t, template, result) // Placeholder remains
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List(LeadsFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"excerpt-section", "lead-analysis", "pagespeed-missing", "pagespeed-section", "scrape-section"}, keys)
}

func TestCaching(t *testing.T) {
	ClearCache()

	// First call loads from file
	prompt1, err := Get(LeadsFile, "lead-analysis")
	require.NoError(t, err)

	// Second call should use cache
	prompt2, err := Get(LeadsFile, "lead-analysis")
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
}

func TestRender(t *testing.T) {
	ClearCache()

	out, err := Render(LeadsFile, "pagespeed-section", map[string]string{
		"Performance":   "41",
		"SEO":           "92",
		"Accessibility": "79",
		"BestPractices": "100",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Performance: 41/100")
	assert.Contains(t, out, "Best Practices: 100/100")
	assert.NotContains(t, out, "{{.")

	_, err = Render(LeadsFile, "missing", nil)
	assert.Error(t, err)
}

func TestFormat_ValueWithPlaceholderSyntax(t *testing.T) {
	out := Format("{{.A}} {{.B}}", map[string]string{"A": "{{.B}}", "B": "b"})
	assert.Equal(t, "{{.B}} b", out)
}
