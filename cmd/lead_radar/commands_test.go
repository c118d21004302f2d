package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/lead-radar/internal/scoring"
	"github.com/jonathan/lead-radar/internal/types"
)

// runCLI executes the root command in-process with fresh flag values.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, env := range []string{"DATABASE_URL", "GOOGLE_PLACES_API_KEY", "LLM_PROVIDER", "ANTHROPIC_API_KEY", "REFRESH_SCHEDULE", "PORT"} {
		t.Setenv(env, "")
	}

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const samplePlace = `{
  "id": "ChIJ123",
  "displayName": {"text": "Tartu Katused OÜ"},
  "primaryType": "roofing_contractor",
  "nationalPhoneNumber": "5555 1234",
  "rating": 3.8,
  "userRatingCount": 12
}`

func TestScoreCommand(t *testing.T) {
	path := writeFile(t, "place.json", samplePlace)

	out, err := runCLI(t, "score", "--place", path)
	require.NoError(t, err)
	assert.Contains(t, out, "LEAD SCORE")
	assert.Contains(t, out, "Tartu Katused OÜ")
}

func TestScoreCommand_JSON(t *testing.T) {
	path := writeFile(t, "place.json", samplePlace)

	out, err := runCLI(t, "score", "--place", path, "--json")
	require.NoError(t, err)

	var got struct {
		LeadScore types.ScoreBreakdown `json:"leadScore"`
		Bucket    scoring.Presentation `json:"bucket"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	var place types.Place
	require.NoError(t, json.Unmarshal([]byte(samplePlace), &place))
	want := scoring.ScorePlace(&place)
	assert.Equal(t, want, got.LeadScore)
	assert.Equal(t, scoring.Bucket(want.Total).Tier, got.Bucket.Tier)
}

func TestScoreCommand_Errors(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{"missing flag", []string{"score"}, "required"},
		{"missing file", []string{"score", "--place", "nonexistent.json"}, "failed to read place file"},
		{"no id", []string{"score", "--place", writeFile(t, "bad.json", `{"displayName": {"text": "X"}}`)}, "invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestScanCommand(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body>
			<a href="mailto:info@katused.ee">Kirjuta meile</a>
			<a href="https://www.facebook.com/tartukatused">Facebook</a>
			<footer>© 2016 Tartu Katused</footer>
		</body></html>`))
	}))
	defer site.Close()

	out, err := runCLI(t, "scan", "--url", site.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "WEBSITE SCAN")
	assert.Contains(t, out, "info@katused.ee")
	assert.Contains(t, out, "2016")
}

func TestEnrichCommand_NoWebsites(t *testing.T) {
	path := writeFile(t, "targets.json", `[{"placeId": "a"}, {"placeId": "b", "websiteUri": ""}]`)
	outPath := filepath.Join(t.TempDir(), "out.json")

	out, err := runCLI(t, "enrich", "--input", path, "--out", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No sites enriched")

	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(written))
}

func TestEnrichCommand_InvalidInput(t *testing.T) {
	path := writeFile(t, "targets.json", `{"places": []}`)
	_, err := runCLI(t, "enrich", "--input", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input file is invalid")
}

func TestSearchCommand_Errors(t *testing.T) {
	_, err := runCLI(t, "search")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")

	_, err = runCLI(t, "search", "--query", "ehitusfirma")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_PLACES_API_KEY")
}

func TestAnalyzeCommand_RequiresKey(t *testing.T) {
	path := writeFile(t, "place.json", samplePlace)
	_, err := runCLI(t, "analyze", "--place", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM API key")

	_, err = runCLI(t, "analyze")
	require.Error(t, err)
}

func TestMigrateAndRefresh_RequireDatabase(t *testing.T) {
	for _, name := range []string{"migrate", "refresh"} {
		_, err := runCLI(t, name)
		require.Error(t, err, name)
		assert.Contains(t, err.Error(), "DATABASE_URL", name)
	}
}

func TestIndustriesCommand(t *testing.T) {
	out, err := runCLI(t, "industries")
	require.NoError(t, err)
	assert.Contains(t, out, "construction")
	assert.Contains(t, out, "ehitusfirma")
	assert.Contains(t, out, "Tallinn")
	assert.Contains(t, out, "SERVICE-FIT PLACE TYPES")
	assert.Contains(t, out, "cleaning_service")
}
