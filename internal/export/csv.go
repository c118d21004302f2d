// Package export renders saved leads as a CSV spreadsheet.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/lead-radar/internal/db"
)

// Header is the first row of every export.
var Header = []string{"Name", "Email", "Type", "Address", "Phone", "Website", "Rating", "Reviews", "Score", "Notes", "Saved At"}

// EmailSeparator joins multiple emails in the Email column.
const EmailSeparator = "; "

const dateLayout = "2006-01-02"

// Filename returns the download name for an export taken at t.
func Filename(t time.Time) string {
	return fmt.Sprintf("lead-radar-export-%s.csv", t.UTC().Format(dateLayout))
}

// WriteCSV writes the header and one row per lead, in the given order.
func WriteCSV(w io.Writer, leads []db.SavedLead) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i := range leads {
		if err := cw.Write(Row(&leads[i])); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Row maps one lead to its CSV columns.
func Row(l *db.SavedLead) []string {
	rating := ""
	if l.Rating != nil && *l.Rating != 0 {
		rating = strconv.FormatFloat(*l.Rating, 'f', -1, 64)
	}
	return []string{
		l.Name,
		strings.Join(l.Emails, EmailSeparator),
		str(l.PrimaryType),
		str(l.FormattedAddress),
		str(l.Phone),
		str(l.WebsiteURL),
		rating,
		strconv.Itoa(l.ReviewCount),
		strconv.Itoa(l.LeadScore),
		str(l.Notes),
		l.CreatedAt.UTC().Format(dateLayout),
	}
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
