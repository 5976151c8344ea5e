package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/leads-dashboard/internal/models"
	"github.com/GregMSThompson/leads-dashboard/pkg/helpers"
)

var followUpNow = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func leadAt(name string, at *time.Time) models.Lead {
	return models.Lead{CompanyName: name, NextFollowupAt: at}
}

func mustTime(t *testing.T, s string) *time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return &v
}

func names(leads []models.Lead) []string {
	out := make([]string, len(leads))
	for i, l := range leads {
		out[i] = l.CompanyName
	}
	return out
}

func TestComputeFollowUpsBuckets(t *testing.T) {
	leads := []models.Lead{
		leadAt("late", mustTime(t, "2025-06-14T23:00:00Z")),
		leadAt("today", mustTime(t, "2025-06-15T05:00:00Z")),
		leadAt("tomorrow", mustTime(t, "2025-06-16T00:00:00Z")),
		leadAt("none", nil),
		leadAt("zero", helpers.Ptr(time.Time{})),
	}

	got := ComputeFollowUps(leads, followUpNow)

	assert.Equal(t, []string{"late"}, names(got.Overdue))
	assert.Equal(t, []string{"today"}, names(got.Today))
	assert.Equal(t, []string{"tomorrow"}, names(got.Upcoming))
}

func TestComputeFollowUpsUsesUTCDay(t *testing.T) {
	ist := time.FixedZone("IST", 5*60*60+30*60)
	// 2025-06-15 03:00 IST is 2025-06-14 21:30 UTC.
	early := time.Date(2025, 6, 15, 3, 0, 0, 0, ist)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, ist)

	got := ComputeFollowUps([]models.Lead{leadAt("early", &early)}, now)
	assert.Equal(t, []string{"early"}, names(got.Overdue))
}

func TestComputeFollowUpsOverdueOrdering(t *testing.T) {
	leads := []models.Lead{
		leadAt("06-10", mustTime(t, "2025-06-10T00:00:00Z")),
		leadAt("06-01", mustTime(t, "2025-06-01T00:00:00Z")),
		leadAt("06-13", mustTime(t, "2025-06-13T00:00:00Z")),
	}

	got := ComputeFollowUps(leads, followUpNow)
	assert.Equal(t, []string{"06-01", "06-10", "06-13"}, names(got.Overdue))
	assert.Equal(t, "06-10", leads[0].CompanyName, "input order is untouched")
}

func TestComputeFollowUpsUpcomingCap(t *testing.T) {
	var leads []models.Lead
	for i := 15; i > 0; i-- {
		at := followUpNow.AddDate(0, 0, i)
		leads = append(leads, leadAt(fmt.Sprintf("d%02d", i), &at))
	}

	got := ComputeFollowUps(leads, followUpNow)
	require.Len(t, got.Upcoming, 10)
	assert.Equal(t, "d15", got.Upcoming[0].CompanyName, "feed order, not date order")
	assert.Equal(t, "d06", got.Upcoming[9].CompanyName)
}

func TestComputeFollowUpsEmpty(t *testing.T) {
	got := ComputeFollowUps(nil, followUpNow)
	assert.NotNil(t, got.Overdue)
	assert.Empty(t, got.Overdue)
	assert.Empty(t, got.Today)
	assert.Empty(t, got.Upcoming)
}
