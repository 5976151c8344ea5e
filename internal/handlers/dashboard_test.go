package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GregMSThompson/leads-dashboard/internal/dto"
	"github.com/GregMSThompson/leads-dashboard/internal/errs"
)

func TestGetDashboard_OK(t *testing.T) {
	svc := &stubDashboardService{
		dashboard: dto.DashboardResponse{
			State: dto.DashboardState{Status: dto.StatusPopulated, LeadCount: 3},
			Stats: dto.DashboardStats{TotalLeads: 3},
		},
	}
	resp := &stubResponseHandler{}
	h := NewDashboardHandlers(&Deps{ResponseHandler: resp, DashboardSvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rr := httptest.NewRecorder()
	h.GetDashboard(rr, req)

	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("expected WriteSuccess with 200, got called=%v status=%d", resp.writeSuccessCalled, resp.writeSuccessStatus)
	}
	got, ok := resp.writeSuccessData.(dto.DashboardResponse)
	if !ok {
		t.Fatalf("unexpected payload type %T", resp.writeSuccessData)
	}
	if got.Stats.TotalLeads != 3 || got.State.Status != dto.StatusPopulated {
		t.Errorf("unexpected dashboard payload: %+v", got)
	}
}

func TestRefresh_OK(t *testing.T) {
	svc := &stubDashboardService{state: dto.DashboardState{Status: dto.StatusEmpty}}
	resp := &stubResponseHandler{}
	h := NewDashboardHandlers(&Deps{ResponseHandler: resp, DashboardSvc: svc})

	req := httptest.NewRequest(http.MethodPost, "/dashboard/refresh", nil)
	rr := httptest.NewRecorder()
	h.Refresh(rr, req)

	if svc.refreshCalls != 1 {
		t.Fatalf("expected one refresh, got %d", svc.refreshCalls)
	}
	state, ok := resp.writeSuccessData.(dto.DashboardState)
	if !ok || state.Status != dto.StatusEmpty {
		t.Errorf("expected state payload, got %#v", resp.writeSuccessData)
	}
}

func TestRefresh_FeedError(t *testing.T) {
	svc := &stubDashboardService{refreshErr: errs.NewHTTPStatusError("google_sheets", 500)}
	resp := &stubResponseHandler{}
	h := NewDashboardHandlers(&Deps{ResponseHandler: resp, DashboardSvc: svc})

	req := httptest.NewRequest(http.MethodPost, "/dashboard/refresh", nil)
	rr := httptest.NewRecorder()
	h.Refresh(rr, req)

	if !resp.handleErrorCalled {
		t.Fatal("expected HandleError on feed failure")
	}
	if resp.writeSuccessCalled {
		t.Fatal("WriteSuccess should not be called on feed failure")
	}
}
