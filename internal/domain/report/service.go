package report

import (
	"context"

	"github.com/cmlabs-hris/hr-portal/internal/domain/auth"
	"github.com/cmlabs-hris/hr-portal/internal/domain/timeoff"
)

// ReportService defines the interface for report generation
type ReportService interface {
	// Summary aggregates request counts for the HR dashboard
	Summary(ctx context.Context, caller auth.AuthContext) (TimeOffSummary, error)

	// Balances reports leave balance utilisation per employee
	Balances(ctx context.Context, caller auth.AuthContext, req BalanceReportRequest) (BalanceReport, error)

	// ExportRequests renders the filtered request list and the summary as XLSX
	ExportRequests(ctx context.Context, caller auth.AuthContext, filter timeoff.RequestFilter) (ExportFile, error)
}
