package sheetsclient

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/GregMSThompson/leads-dashboard/internal/coerce"
	"github.com/GregMSThompson/leads-dashboard/internal/errs"
	"github.com/GregMSThompson/leads-dashboard/internal/models"
)

// Column labels of the leads sheet.
const (
	ColDedupeKey        = "Dedupe_Key"
	ColCompanyName      = "Company_Name"
	ColWebsite          = "Website"
	ColServices         = "Services"
	ColEmail            = "Email"
	ColPhone            = "Phone_office"
	ColState            = "State"
	ColCity             = "City"
	ColAddress          = "Address"
	ColRating           = "Rating"
	ColReviews          = "Reviews"
	ColLeadStatus       = "Lead_Status"
	ColEmailSent        = "Email_Sent"
	ColWhatsAppSent     = "WhatsApp_Sent"
	ColFollowupCount    = "Followup_Count"
	ColLastReplyDate    = "Last_Reply_Date"
	ColWhatsAppSentDate = "WhatsApp_Sent_Date"
	ColEmailSentDate    = "Email_Sent_Date"
	ColLastContacted    = "Last_Contacted"
	ColNextFollowupAt   = "Next_Followup_At"
)

// labels used by the first version of the sheet
var legacyLabels = map[string]string{
	ColServices: "Category",
	ColPhone:    "Phone",
}

var wrapper = regexp.MustCompile(`google\.visualization\.Query\.setResponse\(([\s\S]*)\);?$`)

type gvizResponse struct {
	Table *gvizTable `json:"table"`
}

type gvizTable struct {
	Cols []gvizCol `json:"cols"`
	Rows []gvizRow `json:"rows"`
}

type gvizCol struct {
	Label string `json:"label"`
}

type gvizRow struct {
	C []*gvizCell `json:"c"`
}

type gvizCell struct {
	V any `json:"v"`
}

// ExtractPayload pulls the JSON object out of the
// google.visualization.Query.setResponse(...) wrapper.
func ExtractPayload(text string) ([]byte, error) {
	m := wrapper.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return nil, errs.NewFormatError(ServiceName, "invalid response format from Google Sheets", nil)
	}
	return []byte(m[1]), nil
}

// DecodeLeads parses the gviz JSON payload into leads. A table without rows
// is not an error. Rows with neither a company name nor a dedupe key are dropped.
func DecodeLeads(payload []byte, loc *time.Location) ([]models.Lead, error) {
	var data gvizResponse
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, errs.NewFormatError(ServiceName, "invalid JSON in Google Sheets response", err)
	}
	if data.Table == nil || data.Table.Rows == nil {
		return []models.Lead{}, nil
	}

	columns := NewColumnMap(data.Table.Cols)
	leads := make([]models.Lead, 0, len(data.Table.Rows))
	for _, row := range data.Table.Rows {
		lead := ParseRow(row.values(), columns, loc)
		if lead.CompanyName == "" && lead.DedupeKey == "" {
			continue
		}
		leads = append(leads, lead)
	}
	return leads, nil
}

func (r gvizRow) values() []any {
	out := make([]any, len(r.C))
	for i, c := range r.C {
		if c != nil {
			out[i] = c.V
		}
	}
	return out
}

// ColumnMap resolves a column label to its cell index.
type ColumnMap map[string]int

func NewColumnMap(cols []gvizCol) ColumnMap {
	m := make(ColumnMap, len(cols))
	for i, col := range cols {
		if col.Label != "" {
			m[col.Label] = i
		}
	}
	return m
}

// ColumnMapFromLabels builds a ColumnMap from a header row.
func ColumnMapFromLabels(labels []string) ColumnMap {
	cols := make([]gvizCol, len(labels))
	for i, l := range labels {
		cols[i] = gvizCol{Label: l}
	}
	return NewColumnMap(cols)
}

func (m ColumnMap) index(label string) (int, bool) {
	if idx, ok := m[label]; ok {
		return idx, true
	}
	if legacy, ok := legacyLabels[label]; ok {
		idx, ok := m[legacy]
		return idx, ok
	}
	return 0, false
}

// value returns the raw cell for label, nil when the column or cell is absent.
func (m ColumnMap) value(cells []any, label string) any {
	idx, ok := m.index(label)
	if !ok || idx >= len(cells) {
		return nil
	}
	return cells[idx]
}

// ParseRow maps one row of raw cell values onto a Lead. It never fails:
// cells that cannot be coerced take the zero value for their field.
func ParseRow(cells []any, columns ColumnMap, loc *time.Location) models.Lead {
	str := func(label string) string { return coerce.String(columns.value(cells, label)) }
	num := func(label string) float64 { return coerce.Number(columns.value(cells, label)) }
	date := func(label string) *time.Time { return coerce.Date(columns.value(cells, label), loc) }

	return models.Lead{
		DedupeKey:   str(ColDedupeKey),
		CompanyName: str(ColCompanyName),
		Website:     str(ColWebsite),
		Services:    str(ColServices),
		Email:       str(ColEmail),
		Phone:       str(ColPhone),

		State:   str(ColState),
		City:    str(ColCity),
		Address: str(ColAddress),

		Rating:  num(ColRating),
		Reviews: num(ColReviews),

		LeadStatus:   str(ColLeadStatus),
		EmailSent:    str(ColEmailSent),
		WhatsAppSent: str(ColWhatsAppSent),

		FollowupCount: int(num(ColFollowupCount)),

		LastReplyDate:    date(ColLastReplyDate),
		WhatsAppSentDate: date(ColWhatsAppSentDate),
		EmailSentDate:    date(ColEmailSentDate),
		LastContacted:    date(ColLastContacted),
		NextFollowupAt:   date(ColNextFollowupAt),
	}
}
