package services

import (
	"sort"
	"strings"

	"github.com/GregMSThompson/leads-dashboard/internal/dto"
	"github.com/GregMSThompson/leads-dashboard/internal/models"
)

const (
	topDistributionSize = 8
	outreachSeriesName  = "Outreach"
)

// ComputeStats counts the KPI cards. Status and outreach flags are matched
// case-insensitively against the raw sheet values, so a blank status is
// never counted as new or contacted.
func ComputeStats(leads []models.Lead) dto.DashboardStats {
	stats := dto.DashboardStats{TotalLeads: len(leads)}
	for _, l := range leads {
		switch strings.ToLower(l.LeadStatus) {
		case "new":
			stats.NewLeads++
		case "contacted":
			stats.ContactedLeads++
		}
		if strings.ToLower(l.EmailSent) == "yes" {
			stats.EmailsSent++
		}
		if strings.ToLower(l.WhatsAppSent) == "yes" {
			stats.WhatsAppSent++
		}
		if l.LastReplyDate != nil {
			stats.RepliesReceived++
		}
	}
	return stats
}

func ComputeChartData(leads []models.Lead) dto.ChartData {
	stats := ComputeStats(leads)
	return dto.ChartData{
		StatusDistribution:   distribution(leads, func(l models.Lead) string { return l.LeadStatus }, 0),
		CityDistribution:     distribution(leads, func(l models.Lead) string { return l.City }, topDistributionSize),
		CategoryDistribution: distribution(leads, func(l models.Lead) string { return l.Services }, topDistributionSize),
		OutreachComparison: []dto.OutreachItem{
			{Name: outreachSeriesName, Email: stats.EmailsSent, WhatsApp: stats.WhatsAppSent},
		},
	}
}

// ComputeFunnel lays out the funnel steps as a share of all leads.
func ComputeFunnel(stats dto.DashboardStats) []dto.FunnelStep {
	total := stats.TotalLeads
	if total == 0 {
		total = 1
	}
	steps := []dto.FunnelStep{
		{Label: "Total Leads", Value: stats.TotalLeads},
		{Label: "Contacted", Value: stats.ContactedLeads},
		{Label: "Email Sent", Value: stats.EmailsSent},
		{Label: "WhatsApp Sent", Value: stats.WhatsAppSent},
		{Label: "Replies Received", Value: stats.RepliesReceived},
	}
	for i := range steps {
		steps[i].Percentage = float64(steps[i].Value) / float64(total) * 100
	}
	return steps
}

// distribution counts leads per key, blank keys as "Unknown", ordered by
// count descending with ties in first-seen order. limit <= 0 keeps all.
func distribution(leads []models.Lead, key func(models.Lead) string, limit int) []dto.ChartItem {
	index := map[string]int{}
	items := []dto.ChartItem{}
	for _, l := range leads {
		k := key(l)
		if strings.TrimSpace(k) == "" {
			k = unknownLabel
		}
		i, ok := index[k]
		if !ok {
			i = len(items)
			index[k] = i
			items = append(items, dto.ChartItem{Name: k})
		}
		items[i].Value++
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Value > items[j].Value
	})

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
