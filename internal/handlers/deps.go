package handlers

import (
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/GregMSThompson/leads-dashboard/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	DashboardSvc    dashboardService
	Validate        *validator.Validate
	Now             func() time.Time
}
