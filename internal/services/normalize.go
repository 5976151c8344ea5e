package services

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/GregMSThompson/leads-dashboard/internal/coerce"
	"github.com/GregMSThompson/leads-dashboard/internal/models"
)

const unknownLabel = "Unknown"

// NormalizeLead derives the table view of a lead. The input is not modified.
func NormalizeLead(lead models.Lead) models.NormalizedLead {
	original := lead
	return models.NormalizedLead{
		DedupeKey:   lead.DedupeKey,
		CompanyName: lead.CompanyName,
		Website:     lead.Website,
		Services:    lead.Services,
		Email:       lead.Email,
		Phone:       lead.Phone,

		State:   lead.State,
		City:    lead.City,
		Address: lead.Address,

		Rating:  lead.Rating,
		Reviews: lead.Reviews,

		LeadStatus:   NormalizeStatus(lead.LeadStatus),
		EmailSent:    IsYes(lead.EmailSent),
		WhatsAppSent: IsYes(lead.WhatsAppSent),

		FollowupCount: lead.FollowupCount,

		LastReplyDate:    revalidate(lead.LastReplyDate),
		EmailSentDate:    revalidate(lead.EmailSentDate),
		WhatsAppSentDate: revalidate(lead.WhatsAppSentDate),
		LastContacted:    revalidate(lead.LastContacted),
		NextFollowupAt:   revalidate(lead.NextFollowupAt),

		Original: &original,
	}
}

func NormalizeLeads(leads []models.Lead) []models.NormalizedLead {
	out := make([]models.NormalizedLead, len(leads))
	for i, l := range leads {
		out[i] = NormalizeLead(l)
	}
	return out
}

// IsYes reports whether a sheet flag reads "yes", ignoring case and padding.
func IsYes(v string) bool {
	return strings.ToLower(strings.TrimSpace(v)) == "yes"
}

// NormalizeStatus title-cases a status: first letter upper, rest lower.
// Blank statuses become "Unknown".
func NormalizeStatus(s string) string {
	t := strings.TrimSpace(s)
	if t == "" {
		return unknownLabel
	}
	r, size := utf8.DecodeRuneInString(t)
	return string(unicode.ToUpper(r)) + strings.ToLower(t[size:])
}

func revalidate(t *time.Time) *time.Time {
	return coerce.Date(t, time.UTC)
}
