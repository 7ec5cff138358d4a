package report

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hr-portal/internal/domain/auth"
	"github.com/cmlabs-hris/hr-portal/internal/domain/report"
	"github.com/cmlabs-hris/hr-portal/internal/domain/timeoff"
	"github.com/cmlabs-hris/hr-portal/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal/internal/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var _ report.ReportService = (*ReportServiceImpl)(nil)

type ReportServiceImpl struct {
	reportRepo  report.ReportRepository
	requestRepo timeoff.RequestRepository
	logger      *zap.Logger
	now         func() time.Time
}

func NewReportService(reportRepo report.ReportRepository, requestRepo timeoff.RequestRepository, log *zap.Logger) *ReportServiceImpl {
	return &ReportServiceImpl{
		reportRepo:  reportRepo,
		requestRepo: requestRepo,
		logger:      logger.OrNop(log).Named("report.service"),
		now:         time.Now,
	}
}

// Summary runs the five aggregation queries in parallel and zero-fills the
// leave type and monthly series.
func (s *ReportServiceImpl) Summary(ctx context.Context, caller auth.AuthContext) (report.TimeOffSummary, error) {
	if err := caller.Require(user.PermissionReportsView); err != nil {
		return report.TimeOffSummary{}, err
	}
	return s.summary(ctx)
}

func (s *ReportServiceImpl) summary(ctx context.Context) (report.TimeOffSummary, error) {
	now := s.now().UTC()
	monthStart, monthEnd := report.MonthRange(now)
	since, months := report.TrendWindow(now)

	var (
		byStatus     report.StatusCounts
		byType       map[timeoff.LeaveType]int64
		currentMonth int64
		byDepartment []report.DepartmentCount
		byMonth      map[string]int64
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Counts by status
	g.Go(func() error {
		var err error
		byStatus, err = s.reportRepo.CountByStatus(gCtx)
		return err
	})

	// 2. Counts by leave type
	g.Go(func() error {
		var err error
		byType, err = s.reportRepo.CountByLeaveType(gCtx)
		return err
	})

	// 3. Requests overlapping the current month
	g.Go(func() error {
		var err error
		currentMonth, err = s.reportRepo.CountIntersecting(gCtx, monthStart, monthEnd)
		return err
	})

	// 4. Per-department counts
	g.Go(func() error {
		var err error
		byDepartment, err = s.reportRepo.CountByDepartment(gCtx)
		return err
	})

	// 5. Monthly submission trend
	g.Go(func() error {
		var err error
		byMonth, err = s.reportRepo.CountByMonth(gCtx, since)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("time off summary failed", zap.Error(err))
		return report.TimeOffSummary{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	typeCounts := make([]report.LeaveTypeCount, 0, len(timeoff.LeaveTypes))
	for _, lt := range timeoff.LeaveTypes {
		typeCounts = append(typeCounts, report.LeaveTypeCount{LeaveType: lt, Count: byType[lt]})
	}

	trend := make([]report.MonthlyCount, 0, len(months))
	for _, m := range months {
		trend = append(trend, report.MonthlyCount{Month: m, Count: byMonth[m]})
	}

	if byDepartment == nil {
		byDepartment = []report.DepartmentCount{}
	}

	return report.TimeOffSummary{
		GeneratedAt:  now,
		Total:        byStatus.Total(),
		ByStatus:     byStatus,
		ByLeaveType:  typeCounts,
		CurrentMonth: currentMonth,
		ByDepartment: byDepartment,
		MonthlyTrend: trend,
		ApprovalRate: byStatus.ApprovalRate(),
	}, nil
}

func (s *ReportServiceImpl) Balances(ctx context.Context, caller auth.AuthContext, req report.BalanceReportRequest) (report.BalanceReport, error) {
	if err := caller.Require(user.PermissionReportsView); err != nil {
		return report.BalanceReport{}, err
	}
	now := s.now()
	if err := req.Validate(now); err != nil {
		return report.BalanceReport{}, err
	}

	usages, err := s.reportRepo.EmployeeUsage(ctx, req.Year, req.Department)
	if err != nil {
		s.logger.Error("balance report failed", zap.Int("year", req.Year), zap.Error(err))
		return report.BalanceReport{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	rows := make([]report.EmployeeBalanceRow, 0, len(usages))
	for _, u := range usages {
		balance := timeoff.ComputeBalance(u.Overrides, u.Used, u.Pending)

		var allowed, used int
		for _, entry := range balance {
			allowed += entry.Total
			used += entry.Used
		}

		rows = append(rows, report.EmployeeBalanceRow{
			EmployeeID:   u.EmployeeID,
			EmployeeName: u.EmployeeName,
			Department:   u.Department,
			Balances:     balance,
			TotalAllowed: allowed,
			TotalUsed:    used,
			Utilization:  report.Utilization(used, allowed),
		})
	}

	return report.BalanceReport{Year: req.Year, GeneratedAt: now.UTC(), Employees: rows}, nil
}

// ExportRequests pages through the filtered listing up to MaxExportRows and
// renders it with the current summary as an XLSX workbook.
func (s *ReportServiceImpl) ExportRequests(ctx context.Context, caller auth.AuthContext, filter timeoff.RequestFilter) (report.ExportFile, error) {
	if err := caller.Require(user.PermissionReportsView); err != nil {
		return report.ExportFile{}, err
	}
	if err := filter.Validate(); err != nil {
		return report.ExportFile{}, err
	}
	filter.Page = 1
	filter.Limit = timeoff.MaxPageLimit
	filter.Normalize()

	var (
		requests  []timeoff.TimeOffRequest
		truncated bool
	)
	for {
		page, total, err := s.requestRepo.List(ctx, filter)
		if err != nil {
			s.logger.Error("export listing failed", zap.Int("page", filter.Page), zap.Error(err))
			return report.ExportFile{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
		}
		requests = append(requests, page...)

		if len(requests) >= report.MaxExportRows {
			truncated = total > int64(report.MaxExportRows)
			requests = requests[:report.MaxExportRows]
			break
		}
		if len(page) < filter.Limit || int64(len(requests)) >= total {
			break
		}
		filter.Page++
	}

	summary, err := s.summary(ctx)
	if err != nil {
		return report.ExportFile{}, err
	}

	content, err := renderWorkbook(requests, summary, truncated)
	if err != nil {
		s.logger.Error("export render failed", zap.Error(err))
		return report.ExportFile{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	s.logger.Info("time off export generated",
		zap.Int("rows", len(requests)),
		zap.Bool("truncated", truncated),
		zap.Int64("requested_by", caller.UserID),
	)

	return report.ExportFile{
		Filename:  fmt.Sprintf("time-off-%s.xlsx", summary.GeneratedAt.Format("20060102-150405")),
		Content:   content,
		Rows:      len(requests),
		Truncated: truncated,
	}, nil
}
