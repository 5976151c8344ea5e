package dto

import (
	"time"

	"github.com/GregMSThompson/leads-dashboard/internal/models"
)

const (
	StatusLoading   = "loading"
	StatusError     = "error"
	StatusEmpty     = "empty"
	StatusPopulated = "populated"
)

type DashboardStats struct {
	TotalLeads      int `json:"totalLeads"`
	NewLeads        int `json:"newLeads"`
	ContactedLeads  int `json:"contactedLeads"`
	EmailsSent      int `json:"emailsSent"`
	WhatsAppSent    int `json:"whatsappSent"`
	RepliesReceived int `json:"repliesReceived"`
}

type FollowUpStats struct {
	Overdue  []models.Lead `json:"overdue"`
	Today    []models.Lead `json:"today"`
	Upcoming []models.Lead `json:"upcoming"`
}

// ChartItem is one bar or slice of a categorical distribution.
type ChartItem struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type OutreachItem struct {
	Name     string `json:"name"`
	Email    int    `json:"email"`
	WhatsApp int    `json:"whatsapp"`
}

type ChartData struct {
	StatusDistribution   []ChartItem    `json:"statusDistribution"`
	CityDistribution     []ChartItem    `json:"cityDistribution"`
	CategoryDistribution []ChartItem    `json:"categoryDistribution"`
	OutreachComparison   []OutreachItem `json:"outreachComparison"`
}

type FunnelStep struct {
	Label      string  `json:"label"`
	Value      int     `json:"value"`
	Percentage float64 `json:"percentage"`
}

// DashboardState tells the presentation layer which of the loading / error /
// empty / populated views to render.
type DashboardState struct {
	Status      string     `json:"status"`
	Error       string     `json:"error,omitempty"`
	RefreshID   string     `json:"refreshId,omitempty"`
	LastRefresh *time.Time `json:"lastRefresh,omitempty"`
	LeadCount   int        `json:"leadCount"`
	Refreshing  bool       `json:"refreshing"`
}

type DashboardResponse struct {
	State     DashboardState `json:"state"`
	Stats     DashboardStats `json:"stats"`
	Funnel    []FunnelStep   `json:"funnel"`
	FollowUps FollowUpStats  `json:"followUps"`
	Charts    ChartData      `json:"charts"`
}
