package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/leads-dashboard/internal/models"
	"github.com/GregMSThompson/leads-dashboard/pkg/helpers"
)

func TestIsYes(t *testing.T) {
	for _, v := range []string{"Yes", "yes", "YES ", " Yes"} {
		assert.True(t, IsYes(v), "%q", v)
	}
	for _, v := range []string{"No", "no", "", "  ", "y", "yess"} {
		assert.False(t, IsYes(v), "%q", v)
	}
}

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]string{
		"REPLIED":        "Replied",
		"":               "Unknown",
		"   ":            "Unknown",
		"new":            "New",
		" new ":          "New",
		"Contacted ":     "Contacted",
		"not INTERESTED": "Not interested",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeStatus(in), "%q", in)
	}
}

func TestNormalizeLead(t *testing.T) {
	next := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	lead := models.Lead{
		CompanyName:    "Acme",
		LeadStatus:     "CONTACTED",
		EmailSent:      "Yes ",
		WhatsAppSent:   "No",
		FollowupCount:  2,
		NextFollowupAt: &next,
		LastContacted:  helpers.Ptr(time.Time{}),
	}

	got := NormalizeLead(lead)

	assert.Equal(t, "Contacted", got.LeadStatus)
	assert.True(t, got.EmailSent)
	assert.False(t, got.WhatsAppSent)
	assert.Equal(t, 2, got.FollowupCount)
	require.NotNil(t, got.NextFollowupAt)
	assert.True(t, next.Equal(*got.NextFollowupAt))
	assert.Nil(t, got.LastContacted, "zero instant is treated as missing")

	require.NotNil(t, got.Original)
	assert.Equal(t, "CONTACTED", got.Original.LeadStatus)
	assert.Equal(t, "Yes ", got.Original.EmailSent)
	assert.Equal(t, "CONTACTED", lead.LeadStatus, "input is untouched")
}

func TestNormalizeLeadsKeepsOrder(t *testing.T) {
	got := NormalizeLeads([]models.Lead{
		{CompanyName: "B", LeadStatus: ""},
		{CompanyName: "A", LeadStatus: "new"},
	})

	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].CompanyName)
	assert.Equal(t, "Unknown", got[0].LeadStatus)
	assert.Equal(t, "New", got[1].LeadStatus)
	assert.Equal(t, "A", got[1].Original.CompanyName)

	assert.Empty(t, NormalizeLeads(nil))
}
