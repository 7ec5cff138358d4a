package http

import (
	"net/http"

	"github.com/cmlabs-hris/hr-portal/internal/domain/employee"
	"github.com/cmlabs-hris/hr-portal/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal/internal/handler/http/response"
)

type SessionHandler interface {
	// Current returns the caller's identity and session CSRF token
	Current(w http.ResponseWriter, r *http.Request)
}

type sessionHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewSessionHandler(employeeService employee.EmployeeService) SessionHandler {
	return &sessionHandlerImpl{employeeService: employeeService}
}

type SessionResponse struct {
	EmployeeID  int64                      `json:"employee_id"`
	Role        user.Role                  `json:"role"`
	CSRFToken   string                     `json:"csrf_token"`
	Permissions []user.Permission          `json:"permissions"`
	Employee    *employee.EmployeeResponse `json:"employee,omitempty"`
}

// Current implements SessionHandler
func (h *sessionHandlerImpl) Current(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	emp, err := h.employeeService.Get(r.Context(), caller, caller.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, SessionResponse{
		EmployeeID:  caller.UserID,
		Role:        caller.Role,
		CSRFToken:   caller.CSRFToken,
		Permissions: user.RolePermissions[caller.Role],
		Employee:    &emp,
	})
}
