package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hr-portal/internal/domain/report"
	"github.com/cmlabs-hris/hr-portal/internal/handler/http/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler interface {
	// Time off summary for the HR dashboard
	GetTimeOffSummary(w http.ResponseWriter, r *http.Request)

	// Leave Balance Report
	GetLeaveBalanceReport(w http.ResponseWriter, r *http.Request)

	// XLSX export of the filtered request list
	ExportTimeOffRequests(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// GetTimeOffSummary handles GET /reports/time-off/summary
func (h *reportHandlerImpl) GetTimeOffSummary(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	summary, err := h.reportService.Summary(r.Context(), caller)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// GetLeaveBalanceReport handles GET /reports/time-off/balances
func (h *reportHandlerImpl) GetLeaveBalanceReport(w http.ResponseWriter, r *http.Request) {
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

	req := report.BalanceReportRequest{
		Year:       year,
		Department: optionalString(r, "department"),
	}

	result, err := h.reportService.Balances(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportTimeOffRequests handles GET /reports/time-off/export
func (h *reportHandlerImpl) ExportTimeOffRequests(w http.ResponseWriter, r *http.Request) {
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

	file, err := h.reportService.ExportRequests(r.Context(), caller, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("X-Export-Rows", strconv.Itoa(file.Rows))
	w.Header().Set("X-Export-Truncated", strconv.FormatBool(file.Truncated))
	response.File(w, xlsxContentType, file.Filename, file.Content)
}
