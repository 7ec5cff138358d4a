package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/hr-portal/internal/domain/timeoff"
	"github.com/cmlabs-hris/hr-portal/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-portal/internal/pkg/validator"
)

const maxFormMemory = 1 << 20

type TimeOffHandler interface {
	Balance(w http.ResponseWriter, r *http.Request)
	Preview(w http.ResponseWriter, r *http.Request)
	MyRequests(w http.ResponseWriter, r *http.Request)

	Submit(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	BulkApprove(w http.ResponseWriter, r *http.Request)

	// Actions dispatches the form-style action endpoint.
	Actions(w http.ResponseWriter, r *http.Request)
}

type TimeOffHandlerImpl struct {
	timeOffService timeoff.TimeOffService
}

func NewTimeOffHandler(timeOffService timeoff.TimeOffService) TimeOffHandler {
	return &TimeOffHandlerImpl{timeOffService: timeOffService}
}

// Balance implements TimeOffHandler.
func (h *TimeOffHandlerImpl) Balance(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	year, err := queryYear(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	balance, err := h.timeOffService.Balance(r.Context(), caller, caller.UserID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}

// Preview implements TimeOffHandler.
func (h *TimeOffHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	q := r.URL.Query()
	preview, err := h.timeOffService.Preview(r.Context(), caller, q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, preview)
}

// MyRequests implements TimeOffHandler.
func (h *TimeOffHandlerImpl) MyRequests(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter, err := parseRequestFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	list, err := h.timeOffService.MyRequests(r.Context(), caller, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.Requests, listMeta(list))
}

// Submit implements TimeOffHandler.
func (h *TimeOffHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timeoff.CreateTimeOffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.timeOffService.Submit(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Time off request submitted successfully", created)
}

// ListRequests implements TimeOffHandler.
func (h *TimeOffHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter, err := parseRequestFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	list, err := h.timeOffService.List(r.Context(), caller, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.Requests, listMeta(list))
}

// ListPending implements TimeOffHandler.
func (h *TimeOffHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	pending, err := h.timeOffService.ListPending(r.Context(), caller)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, pending)
}

// GetRequest implements TimeOffHandler.
func (h *TimeOffHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
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

	req, err := h.timeOffService.GetRequest(r.Context(), caller, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, req)
}

// Approve implements TimeOffHandler.
func (h *TimeOffHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, timeoff.StatusApproved)
}

// Reject implements TimeOffHandler.
func (h *TimeOffHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, timeoff.StatusRejected)
}

func (h *TimeOffHandlerImpl) review(w http.ResponseWriter, r *http.Request, status timeoff.Status) {
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

	if status == timeoff.StatusApproved {
		err = h.timeOffService.Approve(r.Context(), caller, id)
	} else {
		err = h.timeOffService.Reject(r.Context(), caller, id)
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time off request "+string(status)+" successfully", nil)
}

// BulkApprove implements TimeOffHandler.
func (h *TimeOffHandlerImpl) BulkApprove(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timeoff.BulkApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("BulkApprove decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.timeOffService.BulkApprove(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time off requests approved successfully", result)
}

// actionForm is the payload of the action endpoint, posted either as a form
// or as JSON with the same field names.
type actionForm struct {
	Action     string  `json:"action"`
	LeaveType  string  `json:"leave_type"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Notes      string  `json:"notes"`
	RequestID  int64   `json:"request_id"`
	RequestIDs []int64 `json:"request_ids"`
}

func decodeActionForm(r *http.Request) (actionForm, error) {
	var form actionForm

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			var errs validator.ValidationErrors
			errs.Add("body", "invalid JSON body")
			return actionForm{}, errs
		}
		return form, nil
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil && err != http.ErrNotMultipart {
		var errs validator.ValidationErrors
		errs.Add("body", "invalid form body")
		return actionForm{}, errs
	}

	var errs validator.ValidationErrors
	form.Action = r.FormValue("action")
	form.LeaveType = r.FormValue("leave_type")
	form.StartDate = r.FormValue("start_date")
	form.EndDate = r.FormValue("end_date")
	form.Notes = r.FormValue("notes")

	if raw := r.FormValue("request_id"); raw != "" {
		id, ok := validator.ParsePositiveID(raw)
		if !ok {
			errs.Add("request_id", "request_id must be a positive integer")
		}
		form.RequestID = id
	}

	raws := r.Form["request_ids[]"]
	if len(raws) == 0 {
		raws = r.Form["request_ids"]
	}
	for _, raw := range raws {
		id, ok := validator.ParsePositiveID(raw)
		if !ok {
			errs.Add("request_ids", "request_ids must contain positive integers only")
			break
		}
		form.RequestIDs = append(form.RequestIDs, id)
	}

	return form, errs.Err()
}

// Actions implements TimeOffHandler.
func (h *TimeOffHandlerImpl) Actions(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.ActionError(w, err)
		return
	}

	form, err := decodeActionForm(r)
	if err != nil {
		response.ActionError(w, err)
		return
	}

	ctx := r.Context()
	action := strings.ToLower(strings.TrimSpace(form.Action))
	switch action {
	case "submit":
		created, err := h.timeOffService.Submit(ctx, caller, timeoff.CreateTimeOffRequest{
			LeaveType: form.LeaveType,
			StartDate: form.StartDate,
			EndDate:   form.EndDate,
			Notes:     form.Notes,
		})
		if err != nil {
			response.ActionError(w, err)
			return
		}
		response.Action(w, http.StatusCreated, true, "Time off request submitted successfully", created)

	case "approve", "reject":
		review := timeoff.ReviewRequest{RequestID: form.RequestID}
		if err := review.Validate(); err != nil {
			response.ActionError(w, err)
			return
		}
		status := timeoff.StatusApproved
		if action == "reject" {
			status = timeoff.StatusRejected
		}
		if status == timeoff.StatusApproved {
			err = h.timeOffService.Approve(ctx, caller, review.RequestID)
		} else {
			err = h.timeOffService.Reject(ctx, caller, review.RequestID)
		}
		if err != nil {
			response.ActionError(w, err)
			return
		}
		response.Action(w, http.StatusOK, true, "Time off request "+string(status)+" successfully", nil)

	case "bulk_approve":
		result, err := h.timeOffService.BulkApprove(ctx, caller, timeoff.BulkApproveRequest{RequestIDs: form.RequestIDs})
		if err != nil {
			response.ActionError(w, err)
			return
		}
		response.Action(w, http.StatusOK, true, "Time off requests approved successfully", result)

	default:
		var errs validator.ValidationErrors
		errs.Add("action", "action must be one of submit, approve, reject, bulk_approve")
		response.ActionError(w, errs)
	}
}

func listMeta(list timeoff.ListTimeOffResponse) *response.Meta {
	return &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		TotalItems: list.Total,
		TotalPages: list.TotalPages,
	}
}
