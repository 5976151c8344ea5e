package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/GregMSThompson/leads-dashboard/internal/models"
)

var exportHeaders = []string{
	"Company_Name",
	"Services",
	"City",
	"State",
	"Lead_Status",
	"Email_Sent",
	"WhatsApp_Sent",
	"Email",
	"Phone_office",
	"Website",
	"Followup_Count",
	"Last_Contacted",
	"Next_Followup_At",
}

// ExportCSV renders leads with their sheet values. The header row is bare,
// every data cell is double-quoted with embedded quotes doubled, and rows are
// separated by "\n" with no trailing newline.
func ExportCSV(leads []models.Lead) string {
	var b strings.Builder
	b.WriteString(strings.Join(exportHeaders, ","))
	for _, l := range leads {
		b.WriteByte('\n')
		cells := []string{
			l.CompanyName,
			l.Services,
			l.City,
			l.State,
			l.LeadStatus,
			l.EmailSent,
			l.WhatsAppSent,
			l.Email,
			l.Phone,
			l.Website,
			strconv.Itoa(l.FollowupCount),
			exportDate(l.LastContacted),
			exportDate(l.NextFollowupAt),
		}
		for i, c := range cells {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quoteCell(c))
		}
	}
	return b.String()
}

// ExportOriginals maps table rows back to the sheet rows they came from.
func ExportOriginals(rows []models.NormalizedLead) []models.Lead {
	out := make([]models.Lead, 0, len(rows))
	for _, r := range rows {
		if r.Original != nil {
			out = append(out, *r.Original)
		}
	}
	return out
}

// ExportFilename is leads-YYYY-MM-DD.csv for the UTC day of now.
func ExportFilename(now time.Time) string {
	return "leads-" + utcDay(now) + ".csv"
}

func quoteCell(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func exportDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return utcDay(*t)
}
