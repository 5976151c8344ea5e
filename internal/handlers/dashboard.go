package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/leads-dashboard/internal/dto"
	"github.com/GregMSThompson/leads-dashboard/internal/models"
	"github.com/GregMSThompson/leads-dashboard/internal/response"
)

type dashboardService interface {
	Dashboard(ctx context.Context) dto.DashboardResponse
	State() dto.DashboardState
	Refresh(ctx context.Context) error
	Leads() []models.Lead
}

type dashboardHandlers struct {
	ResponseHandler response.ResponseHandler
	DashboardSvc    dashboardService
}

func NewDashboardHandlers(deps *Deps) *dashboardHandlers {
	return &dashboardHandlers{
		ResponseHandler: deps.ResponseHandler,
		DashboardSvc:    deps.DashboardSvc,
	}
}

func (h *dashboardHandlers) DashboardRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetDashboard)
	r.Post("/refresh", h.Refresh)
	return r
}

func (h *dashboardHandlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.DashboardSvc.Dashboard(r.Context()))
}

// Refresh runs a fetch inline. A newer refresh started meanwhile wins; the
// returned state reflects whatever snapshot is current afterwards.
func (h *dashboardHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.DashboardSvc.Refresh(r.Context()); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.DashboardSvc.State())
}
