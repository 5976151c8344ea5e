package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/GregMSThompson/leads-dashboard/internal/dto"
	"github.com/GregMSThompson/leads-dashboard/internal/errs"
	"github.com/GregMSThompson/leads-dashboard/internal/response"
	"github.com/GregMSThompson/leads-dashboard/internal/services"
)

type leadHandlers struct {
	ResponseHandler response.ResponseHandler
	DashboardSvc    dashboardService
	Validate        *validator.Validate
	Now             func() time.Time
}

func NewLeadHandlers(deps *Deps) *leadHandlers {
	v := deps.Validate
	if v == nil {
		v = validator.New()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &leadHandlers{
		ResponseHandler: deps.ResponseHandler,
		DashboardSvc:    deps.DashboardSvc,
		Validate:        v,
		Now:             now,
	}
}

func (h *leadHandlers) LeadRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListLeads)
	r.Get("/filters", h.GetFilters)
	r.Get("/export", h.ExportLeads)
	return r
}

func (h *leadHandlers) ListLeads(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r.URL.Query())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	page := services.QueryLeads(h.DashboardSvc.Leads(), q)
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, page)
}

func (h *leadHandlers) GetFilters(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, services.FilterOptionsFor(h.DashboardSvc.Leads()))
}

// ExportLeads downloads every row matching the table controls, ignoring page.
func (h *leadHandlers) ExportLeads(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r.URL.Query())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	rows := services.FilterLeads(h.DashboardSvc.Leads(), q)
	body := services.ExportCSV(services.ExportOriginals(rows))
	h.ResponseHandler.WriteCSV(w, r, services.ExportFilename(h.Now()), body)
}

func (h *leadHandlers) parseQuery(v url.Values) (dto.LeadQuery, error) {
	q := dto.LeadQuery{
		Search:        v.Get("search"),
		CityFilter:    valueOr(v.Get("city"), dto.FilterAll),
		StatusFilter:  valueOr(v.Get("status"), dto.FilterAll),
		SortField:     v.Get("sort"),
		SortDirection: strings.ToLower(v.Get("dir")),
		Page:          1,
	}
	if q.SortField != "" && q.SortDirection == "" {
		q.SortDirection = dto.SortAsc
	}
	if p := v.Get("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return q, errs.NewValidationError("page must be a number")
		}
		q.Page = n
	}

	if err := h.Validate.Struct(q); err != nil {
		return q, validationError(err)
	}
	return q, nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errs.NewValidationError(err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := queryParam(fe.Field())
		switch fe.Tag() {
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return errs.NewValidationError(strings.Join(msgs, ", "))
}

func queryParam(field string) string {
	switch field {
	case "SortField":
		return "sort"
	case "SortDirection":
		return "dir"
	default:
		return strings.ToLower(field)
	}
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
