package handlers

import (
	"context"
	"net/http"

	"github.com/GregMSThompson/leads-dashboard/internal/dto"
	"github.com/GregMSThompson/leads-dashboard/internal/models"
)

// --- Stub response handler ---

type stubResponseHandler struct {
	writeSuccessCalled bool
	writeSuccessStatus int
	writeSuccessData   any

	handleErrorCalled bool
	handleError       error

	writeCSVCalled   bool
	writeCSVFilename string
	writeCSVBody     string
}

func (s *stubResponseHandler) WriteSuccess(w http.ResponseWriter, _ *http.Request, status int, data any) {
	s.writeSuccessCalled = true
	s.writeSuccessStatus = status
	s.writeSuccessData = data
	w.WriteHeader(status)
}

func (s *stubResponseHandler) WriteError(w http.ResponseWriter, _ *http.Request, status int, _, _ string) {
	w.WriteHeader(status)
}

func (s *stubResponseHandler) WriteCSV(w http.ResponseWriter, _ *http.Request, filename, body string) {
	s.writeCSVCalled = true
	s.writeCSVFilename = filename
	s.writeCSVBody = body
	w.WriteHeader(http.StatusOK)
}

func (s *stubResponseHandler) HandleError(w http.ResponseWriter, _ *http.Request, err error) {
	s.handleErrorCalled = true
	s.handleError = err
	w.WriteHeader(http.StatusInternalServerError)
}

// --- Stub dashboard service ---

type stubDashboardService struct {
	dashboard    dto.DashboardResponse
	state        dto.DashboardState
	leads        []models.Lead
	refreshErr   error
	refreshCalls int
}

func (s *stubDashboardService) Dashboard(_ context.Context) dto.DashboardResponse {
	return s.dashboard
}

func (s *stubDashboardService) State() dto.DashboardState {
	return s.state
}

func (s *stubDashboardService) Refresh(_ context.Context) error {
	s.refreshCalls++
	return s.refreshErr
}

func (s *stubDashboardService) Leads() []models.Lead {
	return s.leads
}
