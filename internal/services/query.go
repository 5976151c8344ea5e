package services

import (
	"cmp"
	"sort"
	"strings"
	"time"

	"github.com/GregMSThompson/leads-dashboard/internal/dto"
	"github.com/GregMSThompson/leads-dashboard/internal/models"
)

// QueryLeads filters, sorts and pages the lead table. Pages are 1-based;
// a page outside 1..TotalPages yields no rows.
func QueryLeads(leads []models.Lead, q dto.LeadQuery) dto.LeadPage {
	filtered := FilterLeads(leads, q)

	total := len(filtered)
	page := dto.LeadPage{
		Rows:       []models.NormalizedLead{},
		Page:       q.Page,
		TotalPages: (total + dto.PageSize - 1) / dto.PageSize,
		Total:      total,
	}
	if q.Page < 1 {
		return page
	}

	start := (q.Page - 1) * dto.PageSize
	if start >= total {
		return page
	}
	end := min(start+dto.PageSize, total)
	page.Rows = filtered[start:end]
	return page
}

// FilterLeads normalizes leads, applies the search text and the city/status
// filters, then sorts the result. Paging is left to the caller.
func FilterLeads(leads []models.Lead, q dto.LeadQuery) []models.NormalizedLead {
	search := strings.ToLower(q.Search)
	out := make([]models.NormalizedLead, 0, len(leads))
	for _, n := range NormalizeLeads(leads) {
		if search != "" &&
			!strings.Contains(strings.ToLower(n.CompanyName), search) &&
			!strings.Contains(strings.ToLower(n.Email), search) {
			continue
		}
		if filterActive(q.CityFilter) && n.City != q.CityFilter {
			continue
		}
		if filterActive(q.StatusFilter) && n.LeadStatus != q.StatusFilter {
			continue
		}
		out = append(out, n)
	}

	sortLeads(out, q.SortField, q.SortDirection)
	return out
}

// NextSort applies a click on a column header: the active column flips
// direction, any other column starts ascending.
func NextSort(current dto.SortState, field string) dto.SortState {
	if current.Field == field {
		if current.Direction == dto.SortAsc {
			return dto.SortState{Field: field, Direction: dto.SortDesc}
		}
		return dto.SortState{Field: field, Direction: dto.SortAsc}
	}
	return dto.SortState{Field: field, Direction: dto.SortAsc}
}

// FilterOptionsFor lists the distinct non-empty cities and the distinct
// normalized statuses, both sorted.
func FilterOptionsFor(leads []models.Lead) dto.FilterOptions {
	cities := map[string]struct{}{}
	statuses := map[string]struct{}{}
	for _, l := range leads {
		if l.City != "" {
			cities[l.City] = struct{}{}
		}
		statuses[NormalizeStatus(l.LeadStatus)] = struct{}{}
	}
	return dto.FilterOptions{
		Cities:   sortedKeys(cities),
		Statuses: sortedKeys(statuses),
	}
}

func filterActive(v string) bool {
	return v != "" && v != dto.FilterAll
}

func sortLeads(leads []models.NormalizedLead, field, direction string) {
	if field == "" {
		field = dto.SortCompanyName
	}
	desc := direction == dto.SortDesc

	if date := dateField(field); date != nil {
		sort.SliceStable(leads, func(i, j int) bool {
			a, b := date(leads[i]), date(leads[j])
			// missing dates sort last in both directions
			if a == nil || b == nil {
				return a != nil && b == nil
			}
			if desc {
				return a.After(*b)
			}
			return a.Before(*b)
		})
		return
	}

	sort.SliceStable(leads, func(i, j int) bool {
		c := compareField(leads[i], leads[j], field)
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func dateField(field string) func(models.NormalizedLead) *time.Time {
	switch field {
	case dto.SortLastContacted:
		return func(l models.NormalizedLead) *time.Time { return l.LastContacted }
	case dto.SortNextFollowupAt:
		return func(l models.NormalizedLead) *time.Time { return l.NextFollowupAt }
	default:
		return nil
	}
}

func compareField(a, b models.NormalizedLead, field string) int {
	switch field {
	case dto.SortServices:
		return compareFold(a.Services, b.Services)
	case dto.SortCity:
		return compareFold(a.City, b.City)
	case dto.SortLeadStatus:
		return compareFold(a.LeadStatus, b.LeadStatus)
	case dto.SortFollowupCount:
		return cmp.Compare(a.FollowupCount, b.FollowupCount)
	default:
		return compareFold(a.CompanyName, b.CompanyName)
	}
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
