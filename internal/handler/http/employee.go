package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hr-portal/internal/domain/employee"
	"github.com/cmlabs-hris/hr-portal/internal/domain/timeoff"
	"github.com/cmlabs-hris/hr-portal/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-portal/internal/pkg/validator"
)

type EmployeeHandler interface {
	ListEmployees(w http.ResponseWriter, r *http.Request)
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	ListDepartments(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)

	GetBalance(w http.ResponseWriter, r *http.Request)
	ListAllowances(w http.ResponseWriter, r *http.Request)
	SetAllowance(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
	timeOffService  timeoff.TimeOffService
}

func NewEmployeeHandler(employeeService employee.EmployeeService, timeOffService timeoff.TimeOffService) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
		timeOffService:  timeOffService,
	}
}

// ListEmployees implements EmployeeHandler
func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var errs validator.ValidationErrors
	filter := employee.EmployeeFilter{
		Department: optionalString(r, "department"),
		Search:     optionalString(r, "search"),
		Page:       queryInt(r, "page", &errs),
		Limit:      queryInt(r, "limit", &errs),
	}
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	list, err := h.employeeService.List(r.Context(), caller, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.Employees, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		TotalItems: list.Total,
		TotalPages: list.TotalPages,
	})
}

// CreateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateEmployee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.employeeService.Create(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", created)
}

// ListDepartments implements EmployeeHandler
func (h *employeeHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	departments, err := h.employeeService.Departments(r.Context(), caller)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, departments)
}

// GetEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	emp, err := h.employeeService.Get(r.Context(), caller, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, emp)
}

// GetBalance implements EmployeeHandler
func (h *employeeHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	year, err := queryYear(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	balance, err := h.timeOffService.Balance(r.Context(), caller, id, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}

// ListAllowances implements EmployeeHandler
func (h *employeeHandlerImpl) ListAllowances(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	year, err := queryYear(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	allowances, err := h.timeOffService.ListAllowances(r.Context(), caller, id, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, allowances)
}

// SetAllowance implements EmployeeHandler
func (h *employeeHandlerImpl) SetAllowance(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timeoff.SetAllowanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SetAllowance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	// The path identifies the employee; a body value is ignored.
	req.EmployeeID = id

	allowance, err := h.timeOffService.SetAllowance(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave allowance updated successfully", allowance)
}
