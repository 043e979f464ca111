package employeeshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"ems/internal/domain/auth"
	"ems/internal/domain/employee"
	"ems/internal/transport/http/api"
	"ems/internal/transport/http/middleware"
	"ems/internal/transport/http/shared"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type Handler struct {
	Store *employee.Store
}

func NewHandler(store *employee.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{employeeID}", h.handleGet)
		r.Put("/{employeeID}", h.handleUpdate)
		r.Delete("/{employeeID}", h.handleDelete)
	})
}

type listResponse struct {
	Employees  []employee.Employee `json:"employees"`
	Pagination paginationMeta      `json:"pagination"`
}

type paginationMeta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	page := shared.ParsePagination(r, defaultPageSize, maxPageSize)
	filter := employee.ListFilter{
		Search:     r.URL.Query().Get("search"),
		Department: r.URL.Query().Get("department"),
	}

	total, err := h.Store.Count(r.Context(), filter)
	if err != nil {
		slog.Error("employee count failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "employees_list_failed", "failed to list employees", reqID)
		return
	}

	employees, err := h.Store.List(r.Context(), filter, page.Limit, page.Offset())
	if err != nil {
		slog.Error("employee list failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "employees_list_failed", "failed to list employees", reqID)
		return
	}
	if employees == nil {
		employees = []employee.Employee{}
	}

	api.Success(w, listResponse{
		Employees: employees,
		Pagination: paginationMeta{
			Page:  page.Page,
			Limit: page.Limit,
			Total: total,
			Pages: page.Pages(total),
		},
	}, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	id, ok := employeeID(w, r, reqID)
	if !ok {
		return
	}

	emp, err := h.Store.Get(r.Context(), id)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", reqID)
		return
	}
	if err != nil {
		slog.Error("employee get failed", "err", err, "id", id)
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", reqID)
		return
	}

	api.Success(w, emp, reqID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload employee.Input
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	fields, ok := h.validate(w, payload, reqID, true)
	if !ok {
		return
	}

	taken, err := h.Store.CodeOrEmailTaken(r.Context(), fields.EmployeeCode, fields.Email)
	if err != nil {
		slog.Error("employee uniqueness check failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", reqID)
		return
	}
	if taken {
		api.Fail(w, http.StatusConflict, "employee_exists", "employee with this employee id or email already exists", reqID)
		return
	}

	id, err := h.Store.Create(r.Context(), fields, user.UserID)
	if err != nil {
		if isUniqueViolation(err) {
			api.Fail(w, http.StatusConflict, "employee_exists", "employee with this employee id or email already exists", reqID)
			return
		}
		slog.Error("employee create failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", reqID)
		return
	}

	emp, err := h.Store.Get(r.Context(), id)
	if err != nil {
		slog.Error("load created employee failed", "err", err, "id", id)
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", reqID)
		return
	}

	api.Created(w, emp, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	id, ok := employeeID(w, r, reqID)
	if !ok {
		return
	}

	var payload employee.Input
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	fields, ok := h.validate(w, payload, reqID, false)
	if !ok {
		return
	}

	err := h.Store.Update(r.Context(), id, fields)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", reqID)
		return
	}
	if err != nil {
		if isUniqueViolation(err) {
			api.Fail(w, http.StatusConflict, "employee_exists", "employee with this email already exists", reqID)
			return
		}
		slog.Error("employee update failed", "err", err, "id", id)
		api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", reqID)
		return
	}

	emp, err := h.Store.Get(r.Context(), id)
	if err != nil {
		slog.Error("load updated employee failed", "err", err, "id", id)
		api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", reqID)
		return
	}

	api.Success(w, emp, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}
	if !auth.CanDeleteEmployees(user.Role) {
		api.Fail(w, http.StatusForbidden, "forbidden", "admin role required", reqID)
		return
	}

	id, ok := employeeID(w, r, reqID)
	if !ok {
		return
	}

	err := h.Store.Delete(r.Context(), id)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", reqID)
		return
	}
	if err != nil {
		slog.Error("employee delete failed", "err", err, "id", id)
		api.Fail(w, http.StatusInternalServerError, "employee_delete_failed", "failed to delete employee", reqID)
		return
	}

	api.Success(w, map[string]string{"message": "employee deleted successfully"}, reqID)
}

// validate runs the shared field checks and normalization. requireCode is
// true on create; updates never touch the employee code so a blank one is
// fine there.
func (h *Handler) validate(w http.ResponseWriter, payload employee.Input, reqID string, requireCode bool) (employee.Fields, bool) {
	v := shared.NewValidator()
	if requireCode {
		v.Required("employee_id", payload.EmployeeCode, "employee_id is required")
	}
	v.Required("first_name", payload.FirstName, "first_name is required")
	v.Required("last_name", payload.LastName, "last_name is required")
	v.Required("email", payload.Email, "email is required")
	if payload.Email != "" {
		if _, err := mail.ParseAddress(payload.Email); err != nil {
			v.Add("email", "email must be a valid address")
		}
	}
	v.Enum("status", payload.Status, []string{employee.StatusActive, employee.StatusInactive}, "status must be active or inactive")

	fields, err := employee.Normalize(payload)
	if err != nil {
		v.Add("payload", err.Error())
	}
	if v.Reject(w, reqID) {
		return employee.Fields{}, false
	}
	return fields, true
}

func employeeID(w http.ResponseWriter, r *http.Request, reqID string) (int64, bool) {
	raw := chi.URLParam(r, "employeeID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "employee id must be a positive integer", reqID)
		return 0, false
	}
	return id, true
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
