package services

import (
	"sort"
	"time"

	"github.com/GregMSThompson/leads-dashboard/internal/dto"
	"github.com/GregMSThompson/leads-dashboard/internal/models"
)

const (
	upcomingLimit = 10
	dayLayout     = "2006-01-02"
)

// ComputeFollowUps buckets leads by the UTC calendar day of Next_Followup_At
// relative to now. Overdue is earliest first, today keeps feed order and
// upcoming is the first ten future follow-ups in feed order.
func ComputeFollowUps(leads []models.Lead, now time.Time) dto.FollowUpStats {
	today := utcDay(now)
	out := dto.FollowUpStats{
		Overdue:  []models.Lead{},
		Today:    []models.Lead{},
		Upcoming: []models.Lead{},
	}

	for _, l := range leads {
		at := revalidate(l.NextFollowupAt)
		if at == nil {
			continue
		}
		switch day := utcDay(*at); {
		case day < today:
			out.Overdue = append(out.Overdue, l)
		case day == today:
			out.Today = append(out.Today, l)
		default:
			out.Upcoming = append(out.Upcoming, l)
		}
	}

	sort.SliceStable(out.Overdue, func(i, j int) bool {
		return out.Overdue[i].NextFollowupAt.Before(*out.Overdue[j].NextFollowupAt)
	})
	if len(out.Upcoming) > upcomingLimit {
		out.Upcoming = out.Upcoming[:upcomingLimit]
	}
	return out
}

// utcDay formats as YYYY-MM-DD so string order matches date order.
func utcDay(t time.Time) string {
	return t.UTC().Format(dayLayout)
}
