package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/leads-dashboard/internal/handlers"
	"github.com/GregMSThompson/leads-dashboard/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	lm := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(chimiddleware.RequestID)
	r.Use(lm.LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)

	dh := handlers.NewDashboardHandlers(deps)
	lh := handlers.NewLeadHandlers(deps)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Mount("/dashboard", dh.DashboardRoutes())
	r.Mount("/leads", lh.LeadRoutes())
	return r
}
