package analyticshandler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"ems/internal/domain/analytics"
	"ems/internal/transport/http/api"
	"ems/internal/transport/http/middleware"
)

type Handler struct {
	Store *analytics.Store
}

func NewHandler(store *analytics.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/analytics", func(r chi.Router) {
		r.Get("/departments", h.handleDepartments)
		r.Get("/salary-analysis", h.handleSalaryAnalysis)
		r.Get("/employee-metrics", h.handleEmployeeMetrics)
		r.Get("/dashboard-stats", h.handleDashboardStats)
		r.Get("/department-comparison", h.handleDepartmentComparison)
		r.Get("/export", h.handleExport)
	})
}

func (h *Handler) handleDepartments(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	departments, err := h.Store.DepartmentBreakdown(r.Context())
	if err != nil {
		slog.Error("department breakdown failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "analytics_failed", "failed to load department analytics", reqID)
		return
	}
	api.Success(w, departments, reqID)
}

func (h *Handler) handleSalaryAnalysis(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	analysis, err := h.Store.SalaryAnalysis(r.Context())
	if err != nil {
		slog.Error("salary analysis failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "analytics_failed", "failed to load salary analysis", reqID)
		return
	}
	api.Success(w, analysis, reqID)
}

func (h *Handler) handleEmployeeMetrics(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	metrics, err := h.Store.EmployeeMetrics(r.Context())
	if err != nil {
		slog.Error("employee metrics failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "analytics_failed", "failed to load employee metrics", reqID)
		return
	}
	api.Success(w, metrics, reqID)
}

func (h *Handler) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	stats, err := h.Store.DashboardStats(r.Context())
	if err != nil {
		slog.Error("dashboard stats failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "analytics_failed", "failed to load dashboard stats", reqID)
		return
	}
	api.Success(w, stats, reqID)
}

func (h *Handler) handleDepartmentComparison(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	comparison, err := h.Store.DepartmentComparison(r.Context())
	if err != nil {
		slog.Error("department comparison failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "analytics_failed", "failed to load department comparison", reqID)
		return
	}
	api.Success(w, comparison, reqID)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	stats, err := h.Store.DashboardStats(r.Context())
	if err != nil {
		slog.Error("export stats failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to export summary report", reqID)
		return
	}
	departments, err := h.Store.DepartmentBreakdown(r.Context())
	if err != nil {
		slog.Error("export departments failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to export summary report", reqID)
		return
	}

	report, err := analytics.SummaryReport(stats, departments)
	if err != nil {
		slog.Error("summary report render failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to export summary report", reqID)
		return
	}

	filename := fmt.Sprintf("workforce-summary-%s.pdf", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(report); err != nil {
		slog.Warn("summary report write failed", "err", err)
	}
}
