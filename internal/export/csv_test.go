package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/lead-radar/internal/db"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestWriteCSV(t *testing.T) {
	leads := []db.SavedLead{
		{
			Name:             `Puit "ja" Kivi OÜ`,
			Emails:           []string{"info@puit.ee", "muuk@puit.ee"},
			PrimaryType:      strPtr("general_contractor"),
			FormattedAddress: strPtr("Tähe 5, Tartu"),
			Phone:            strPtr("5555 0000"),
			WebsiteURL:       strPtr("https://puit.ee"),
			Rating:           floatPtr(4.1),
			ReviewCount:      9,
			LeadScore:        63,
			Notes:            strPtr("line one\nline two"),
			CreatedAt:        time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC),
		},
		{
			Name:      "Bare",
			CreatedAt: time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, leads))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, Header, records[0])
	assert.Equal(t, []string{
		`Puit "ja" Kivi OÜ`, "info@puit.ee; muuk@puit.ee", "general_contractor", "Tähe 5, Tartu",
		"5555 0000", "https://puit.ee", "4.1", "9", "63", "line one\nline two", "2026-03-14",
	}, records[1])
	assert.Equal(t, []string{"Bare", "", "", "", "", "", "", "0", "0", "", "2026-01-02"}, records[2])
}

func TestWriteCSV_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "Name,Email,Type,Address,Phone,Website,Rating,Reviews,Score,Notes,Saved At\n", buf.String())
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "lead-radar-export-2026-10-16.csv", Filename(time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)))
}
