package sheetsclient

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/leads-dashboard/internal/errs"
)

const samplePayload = `{"version":"0.6","status":"ok","table":{
 "cols":[{"id":"A","label":"Dedupe_Key"},{"id":"B","label":"Company_Name"},{"id":"C","label":"City"},
         {"id":"D","label":"Rating"},{"id":"E","label":"Lead_Status"},{"id":"F","label":"Email_Sent"},
         {"id":"G","label":"Followup_Count"},{"id":"H","label":"Next_Followup_At"},{"id":"I","label":""},
         {"id":"J","label":"Last_Contacted"}],
 "rows":[
  {"c":[{"v":"k-1"},{"v":" Acme Plumbing "},{"v":"Pune"},{"v":4.6},{"v":"new"},{"v":"Yes"},{"v":2},{"v":"Date(2025,5,16,10,0,0)"},{"v":"ignored"},{"v":"14/06/2025 09:30:00"}]},
  {"c":[{"v":""},{"v":""},{"v":"Mumbai"},null,{"v":"new"}]},
  {"c":[{"v":"k-3"},null,{"v":"Delhi"},{"v":"n/a"},null,null,{"v":"3"},{"v":"garbage"}]}
 ]}}`

func TestExtractPayload(t *testing.T) {
	text := "/*O_o*/\ngoogle.visualization.Query.setResponse({\"table\":{}});"
	got, err := ExtractPayload(text)
	require.NoError(t, err)
	assert.Equal(t, `{"table":{}}`, string(got))

	got, err = ExtractPayload("google.visualization.Query.setResponse({\"a\":1})\n")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))
}

func TestExtractPayloadInvalid(t *testing.T) {
	_, err := ExtractPayload("<html>Sign in</html>")
	require.Error(t, err)

	var fe *errs.FormatError
	assert.True(t, errors.As(err, &fe))
}

func TestDecodeLeads(t *testing.T) {
	leads, err := DecodeLeads([]byte(samplePayload), time.UTC)
	require.NoError(t, err)
	require.Len(t, leads, 2, "row without company name and dedupe key is dropped")

	acme := leads[0]
	assert.Equal(t, "k-1", acme.DedupeKey)
	assert.Equal(t, "Acme Plumbing", acme.CompanyName)
	assert.Equal(t, "Pune", acme.City)
	assert.Equal(t, 4.6, acme.Rating)
	assert.Equal(t, "new", acme.LeadStatus)
	assert.Equal(t, "Yes", acme.EmailSent)
	assert.Equal(t, 2, acme.FollowupCount)
	require.NotNil(t, acme.NextFollowupAt)
	assert.True(t, acme.NextFollowupAt.Equal(time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)))
	require.NotNil(t, acme.LastContacted)
	assert.True(t, acme.LastContacted.Equal(time.Date(2025, 6, 14, 9, 30, 0, 0, time.UTC)))
	assert.Empty(t, acme.Website, "missing column yields empty string")
	assert.Nil(t, acme.LastReplyDate, "missing column yields nil date")

	keyOnly := leads[1]
	assert.Equal(t, "k-3", keyOnly.DedupeKey)
	assert.Empty(t, keyOnly.CompanyName)
	assert.Zero(t, keyOnly.Rating)
	assert.Equal(t, 3, keyOnly.FollowupCount)
	assert.Nil(t, keyOnly.NextFollowupAt)
	assert.Nil(t, keyOnly.LastContacted, "short row yields nil for trailing columns")
}

func TestDecodeLeadsMissingRows(t *testing.T) {
	for _, payload := range []string{`{}`, `{"table":{}}`, `{"table":{"cols":[],"rows":null}}`} {
		leads, err := DecodeLeads([]byte(payload), time.UTC)
		require.NoError(t, err)
		assert.Empty(t, leads)
		assert.NotNil(t, leads)
	}
}

func TestDecodeLeadsInvalidJSON(t *testing.T) {
	_, err := DecodeLeads([]byte(`{"table":`), time.UTC)
	var fe *errs.FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, ServiceName, fe.Service)
}

func TestParseRowLegacyLabels(t *testing.T) {
	columns := ColumnMapFromLabels([]string{"Company_Name", "Category", "Phone"})
	lead := ParseRow([]any{"Acme", "Plumbing", 9876543210.0}, columns, time.UTC)

	assert.Equal(t, "Plumbing", lead.Services)
	assert.Equal(t, "9876543210", lead.Phone)
}

func TestParseRowPrefersCurrentLabels(t *testing.T) {
	columns := ColumnMapFromLabels([]string{"Category", "Services"})
	lead := ParseRow([]any{"old", "new"}, columns, time.UTC)
	assert.Equal(t, "new", lead.Services)
}
