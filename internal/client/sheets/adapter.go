package sheetsclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/GregMSThompson/leads-dashboard/internal/errs"
	"github.com/GregMSThompson/leads-dashboard/internal/models"
	"github.com/GregMSThompson/leads-dashboard/pkg/logger"
)

const (
	ServiceName = "google_sheets"

	maxPayloadBytes = 32 << 20
)

// SheetURL is the gviz JSON endpoint of a public spreadsheet.
func SheetURL(sheetID string) string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/gviz/tq?tqx=out:json", sheetID)
}

type Adapter struct {
	client *http.Client
	url    string
	loc    *time.Location
}

// NewAdapter reads leads from url. Zone-less timestamps in the sheet are
// interpreted in loc.
func NewAdapter(client *http.Client, url string, loc *time.Location) *Adapter {
	if client == nil {
		client = http.DefaultClient
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Adapter{client: client, url: url, loc: loc}
}

func (a *Adapter) FetchLeads(ctx context.Context) ([]models.Lead, error) {
	log := logger.FromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.url, nil)
	if err != nil {
		return nil, errs.NewUnreachableError(ServiceName, err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, errs.NewUnreachableError(ServiceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errs.NewHTTPStatusError(ServiceName, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, errs.NewUnreachableError(ServiceName, err)
	}

	payload, err := ExtractPayload(string(body))
	if err != nil {
		return nil, err
	}

	leads, err := DecodeLeads(payload, a.loc)
	if err != nil {
		return nil, err
	}

	log.Debug("sheet fetched", "bytes", len(body), "leads", len(leads))
	return leads, nil
}
