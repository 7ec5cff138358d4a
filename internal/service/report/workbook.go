package report

import (
	"fmt"

	"github.com/cmlabs-hris/hr-portal/internal/domain/report"
	"github.com/cmlabs-hris/hr-portal/internal/domain/timeoff"
	"github.com/cmlabs-hris/hr-portal/internal/pkg/validator"
	"github.com/xuri/excelize/v2"
)

const (
	requestsSheet = "Requests"
	summarySheet  = "Summary"
)

var requestHeaders = []interface{}{
	"ID", "Employee", "Department", "Leave Type", "Start Date", "End Date",
	"Business Days", "Calendar Days", "Status", "Notes", "Submitted At",
}

// renderWorkbook writes the request rows and the summary to a two-sheet XLSX.
func renderWorkbook(requests []timeoff.TimeOffRequest, summary report.TimeOffSummary, truncated bool) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", requestsSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(requestsSheet, "A1", &requestHeaders); err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(requestsSheet, 1, 1, bold); err != nil {
		return nil, err
	}

	for i, r := range requests {
		row := []interface{}{
			r.ID,
			deref(r.EmployeeName),
			deref(r.Department),
			string(r.LeaveType),
			r.StartDate.Format(validator.DateLayout),
			r.EndDate.Format(validator.DateLayout),
			r.BusinessDays,
			r.CalendarDays(),
			string(r.Status),
			r.Notes,
			r.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(requestsSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	if err := f.SetPanes(requestsSheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return nil, err
	}

	if err := writeSummarySheet(f, summary, truncated, bold); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, summary report.TimeOffSummary, truncated bool, bold int) error {
	rows := [][]interface{}{
		{"Generated At", summary.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		{"Total Requests", summary.Total},
		{"Pending", summary.ByStatus.Pending},
		{"Approved", summary.ByStatus.Approved},
		{"Rejected", summary.ByStatus.Rejected},
		{"Approval Rate (%)", summary.ApprovalRate.StringFixed(2)},
		{"Overlapping Current Month", summary.CurrentMonth},
		{},
		{"Leave Type", "Requests"},
	}
	for _, c := range summary.ByLeaveType {
		rows = append(rows, []interface{}{string(c.LeaveType), c.Count})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Department", "Requests"})
	for _, c := range summary.ByDepartment {
		rows = append(rows, []interface{}{c.Department, c.Count})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Month", "Submitted"})
	for _, c := range summary.MonthlyTrend {
		rows = append(rows, []interface{}{c.Month, c.Count})
	}
	if truncated {
		rows = append(rows, []interface{}{}, []interface{}{
			fmt.Sprintf("Export truncated to the first %d requests", report.MaxExportRows),
		})
	}

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
		if len(row) == 2 {
			if _, isLabel := row[1].(string); isLabel && (row[1] == "Requests" || row[1] == "Submitted") {
				if err := f.SetRowStyle(summarySheet, i+1, i+1, bold); err != nil {
					return err
				}
			}
		}
	}
	return f.SetColWidth(summarySheet, "A", "A", 28)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
