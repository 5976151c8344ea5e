package dto

import "github.com/GregMSThompson/leads-dashboard/internal/models"

const (
	SortCompanyName    = "Company_Name"
	SortServices       = "Services"
	SortCity           = "City"
	SortLeadStatus     = "Lead_Status"
	SortFollowupCount  = "Followup_Count"
	SortLastContacted  = "Last_Contacted"
	SortNextFollowupAt = "Next_Followup_At"

	SortAsc  = "asc"
	SortDesc = "desc"

	// FilterAll disables a city or status filter.
	FilterAll = "all"

	PageSize = 10
)

type SortState struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// LeadQuery holds the table controls. Empty filter values behave like FilterAll.
type LeadQuery struct {
	Search        string `json:"search"`
	CityFilter    string `json:"city"`
	StatusFilter  string `json:"status"`
	SortField     string `json:"sort" validate:"omitempty,oneof=Company_Name Services City Lead_Status Followup_Count Last_Contacted Next_Followup_At"`
	SortDirection string `json:"dir" validate:"omitempty,oneof=asc desc"`
	Page          int    `json:"page" validate:"min=1"`
}

type LeadPage struct {
	Rows       []models.NormalizedLead `json:"rows"`
	Page       int                     `json:"page"`
	TotalPages int                     `json:"totalPages"`
	Total      int                     `json:"total"`
}

type FilterOptions struct {
	Cities   []string `json:"cities"`
	Statuses []string `json:"statuses"`
}
