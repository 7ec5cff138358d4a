package timeoff

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-portal/internal/domain/auth"
	"github.com/cmlabs-hris/hr-portal/internal/domain/timeoff"
	"github.com/cmlabs-hris/hr-portal/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal/internal/pkg/database"
	"github.com/cmlabs-hris/hr-portal/internal/pkg/logger"
	"github.com/cmlabs-hris/hr-portal/internal/pkg/validator"
	"go.uber.org/zap"
)

var _ timeoff.TimeOffService = (*TimeOffServiceImpl)(nil)

type TimeOffServiceImpl struct {
	tx database.Transactor
	timeoff.RequestRepository
	timeoff.AllowanceRepository
	employees timeoff.EmployeeLocker
	holidays  timeoff.HolidayCalendar
	balance   timeoff.BalanceCalculator
	logger    *zap.Logger
	location  *time.Location
	now       func() time.Time
}

type Option func(*TimeOffServiceImpl)

// WithClock replaces time.Now, which decides "today" for submissions.
func WithClock(now func() time.Time) Option {
	return func(s *TimeOffServiceImpl) { s.now = now }
}

// WithLocation sets the company time zone used to decide "today".
func WithLocation(loc *time.Location) Option {
	return func(s *TimeOffServiceImpl) {
		if loc != nil {
			s.location = loc
		}
	}
}

func NewTimeOffService(
	tx database.Transactor,
	requests timeoff.RequestRepository,
	allowances timeoff.AllowanceRepository,
	employees timeoff.EmployeeLocker,
	holidays timeoff.HolidayCalendar,
	balance timeoff.BalanceCalculator,
	log *zap.Logger,
	opts ...Option,
) *TimeOffServiceImpl {
	s := &TimeOffServiceImpl{
		tx:                  tx,
		RequestRepository:   requests,
		AllowanceRepository: allowances,
		employees:           employees,
		holidays:            holidays,
		balance:             balance,
		logger:              logger.OrNop(log).Named("timeoff.service"),
		location:            time.UTC,
		now:                 time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TimeOffServiceImpl) today() time.Time {
	return timeoff.DateOnly(s.now().In(s.location))
}

// persistence logs err with its context and wraps it as a PersistenceError.
func (s *TimeOffServiceImpl) persistence(op string, err error, fields ...zap.Field) error {
	s.logger.Error(op+" failed", append(fields, zap.Error(err))...)
	return timeoff.Persistence(op, err)
}

// Submit implements timeoff.TimeOffService.
func (s *TimeOffServiceImpl) Submit(ctx context.Context, caller auth.AuthContext, req timeoff.CreateTimeOffRequest) (timeoff.TimeOffRequestResponse, error) {
	if err := caller.Require(user.PermissionTimeOffCreate); err != nil {
		return timeoff.TimeOffRequestResponse{}, err
	}
	if err := req.Validate(s.today()); err != nil {
		return timeoff.TimeOffRequestResponse{}, err
	}

	startDate, endDate := req.Dates()
	leaveType := timeoff.LeaveType(req.LeaveType)

	holidays, err := s.holidays.HolidaySet(ctx, startDate, endDate)
	if err != nil {
		return timeoff.TimeOffRequestResponse{}, s.persistence("load holidays", err, zap.Int64("employee_id", caller.UserID))
	}

	days, err := timeoff.CountBusinessDays(startDate, endDate, holidays)
	if err != nil {
		return timeoff.TimeOffRequestResponse{}, err
	}
	if days == 0 {
		var errs validator.ValidationErrors
		errs.Add("end_date", "the selected dates contain no business days")
		return timeoff.TimeOffRequestResponse{}, errs
	}

	var created timeoff.TimeOffRequest
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.employees.LockEmployee(ctx, caller.UserID); err != nil {
			if errors.Is(err, timeoff.ErrEmployeeNotFound) {
				return err
			}
			return s.persistence("lock employee", err, zap.Int64("employee_id", caller.UserID))
		}

		// A request spanning New Year counts in full against both years.
		years := []int{startDate.Year()}
		if endDate.Year() != startDate.Year() {
			years = append(years, endDate.Year())
		}
		for _, year := range years {
			balance, err := s.balance.GetBalance(ctx, caller.UserID, year)
			if err != nil {
				return err
			}
			if remaining := balance.Remaining(leaveType); remaining < days {
				return &timeoff.InsufficientBalanceError{
					LeaveType: leaveType,
					Requested: days,
					Remaining: remaining,
				}
			}
		}

		var err error
		created, err = s.RequestRepository.Create(ctx, timeoff.TimeOffRequest{
			EmployeeID:   caller.UserID,
			LeaveType:    leaveType,
			StartDate:    startDate,
			EndDate:      endDate,
			BusinessDays: days,
			Notes:        strings.TrimSpace(req.Notes),
			Status:       timeoff.StatusPending,
		})
		if err != nil {
			return s.persistence("create request", err, zap.Int64("employee_id", caller.UserID))
		}
		return nil
	})
	if err != nil {
		return timeoff.TimeOffRequestResponse{}, err
	}

	s.logger.Info("time off request submitted",
		zap.Int64("request_id", created.ID),
		zap.Int64("employee_id", created.EmployeeID),
		zap.String("leave_type", string(created.LeaveType)),
		zap.Int("business_days", created.BusinessDays),
	)

	return timeoff.NewTimeOffRequestResponse(created), nil
}

func (s *TimeOffServiceImpl) Approve(ctx context.Context, caller auth.AuthContext, requestID int64) error {
	return s.review(ctx, caller, requestID, timeoff.StatusApproved)
}

func (s *TimeOffServiceImpl) Reject(ctx context.Context, caller auth.AuthContext, requestID int64) error {
	return s.review(ctx, caller, requestID, timeoff.StatusRejected)
}

// review moves a pending request to next. Balance is not re-checked here;
// approval is an authorization decision only.
func (s *TimeOffServiceImpl) review(ctx context.Context, caller auth.AuthContext, requestID int64, next timeoff.Status) error {
	if err := caller.Require(user.PermissionTimeOffApprove); err != nil {
		return err
	}
	if requestID <= 0 {
		return fmt.Errorf("%w: request id must be a positive integer", timeoff.ErrInvalidArgument)
	}

	request, err := s.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, timeoff.ErrRequestNotFound) {
			return err
		}
		return s.persistence("get request", err, zap.Int64("request_id", requestID))
	}
	if !request.Status.CanTransitionTo(next) {
		return timeoff.ErrRequestAlreadyProcessed
	}

	changed, err := s.RequestRepository.SetStatus(ctx, requestID, next, caller.UserID)
	if err != nil {
		return s.persistence("set request status", err, zap.Int64("request_id", requestID))
	}
	if !changed {
		// another reviewer got there first
		return timeoff.ErrRequestAlreadyProcessed
	}

	s.logger.Info("time off request reviewed",
		zap.Int64("request_id", requestID),
		zap.String("status", string(next)),
		zap.Int64("reviewer_id", caller.UserID),
	)
	return nil
}

func (s *TimeOffServiceImpl) BulkApprove(ctx context.Context, caller auth.AuthContext, req timeoff.BulkApproveRequest) (timeoff.BulkApproveResult, error) {
	if err := caller.Require(user.PermissionTimeOffApprove); err != nil {
		return timeoff.BulkApproveResult{}, err
	}
	if err := req.Validate(); err != nil {
		return timeoff.BulkApproveResult{}, err
	}

	updated, err := s.RequestRepository.BulkApprove(ctx, req.RequestIDs, caller.UserID)
	if err != nil {
		return timeoff.BulkApproveResult{}, s.persistence("bulk approve", err, zap.Int64s("request_ids", req.RequestIDs))
	}

	s.logger.Info("time off requests bulk approved",
		zap.Int("requested", len(req.RequestIDs)),
		zap.Int64("updated", updated),
		zap.Int64("reviewer_id", caller.UserID),
	)

	return timeoff.BulkApproveResult{Requested: len(req.RequestIDs), Updated: updated}, nil
}

func (s *TimeOffServiceImpl) GetRequest(ctx context.Context, caller auth.AuthContext, requestID int64) (timeoff.TimeOffRequestResponse, error) {
	if err := caller.Require(user.PermissionTimeOffViewOwn); err != nil {
		return timeoff.TimeOffRequestResponse{}, err
	}
	if requestID <= 0 {
		return timeoff.TimeOffRequestResponse{}, fmt.Errorf("%w: request id must be a positive integer", timeoff.ErrInvalidArgument)
	}

	request, err := s.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, timeoff.ErrRequestNotFound) {
			return timeoff.TimeOffRequestResponse{}, err
		}
		return timeoff.TimeOffRequestResponse{}, s.persistence("get request", err, zap.Int64("request_id", requestID))
	}
	if !caller.CanAccessEmployee(request.EmployeeID) {
		return timeoff.TimeOffRequestResponse{}, auth.ErrForbidden
	}

	return timeoff.NewTimeOffRequestResponse(request), nil
}

func (s *TimeOffServiceImpl) ListPending(ctx context.Context, caller auth.AuthContext) ([]timeoff.TimeOffRequestResponse, error) {
	if err := caller.Require(user.PermissionTimeOffViewAll); err != nil {
		return nil, err
	}

	requests, err := s.RequestRepository.ListPending(ctx)
	if err != nil {
		return nil, s.persistence("list pending requests", err)
	}

	responses := make([]timeoff.TimeOffRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, timeoff.NewTimeOffRequestResponse(r))
	}
	return responses, nil
}

func (s *TimeOffServiceImpl) List(ctx context.Context, caller auth.AuthContext, filter timeoff.RequestFilter) (timeoff.ListTimeOffResponse, error) {
	if err := caller.Require(user.PermissionTimeOffViewAll); err != nil {
		return timeoff.ListTimeOffResponse{}, err
	}
	return s.list(ctx, filter)
}

func (s *TimeOffServiceImpl) MyRequests(ctx context.Context, caller auth.AuthContext, filter timeoff.RequestFilter) (timeoff.ListTimeOffResponse, error) {
	if err := caller.Require(user.PermissionTimeOffViewOwn); err != nil {
		return timeoff.ListTimeOffResponse{}, err
	}
	self := caller.UserID
	filter.EmployeeID = &self
	filter.Department = nil
	return s.list(ctx, filter)
}

func (s *TimeOffServiceImpl) list(ctx context.Context, filter timeoff.RequestFilter) (timeoff.ListTimeOffResponse, error) {
	if err := filter.Validate(); err != nil {
		return timeoff.ListTimeOffResponse{}, err
	}
	filter.Normalize()

	requests, total, err := s.RequestRepository.List(ctx, filter)
	if err != nil {
		return timeoff.ListTimeOffResponse{}, s.persistence("list requests", err)
	}

	responses := make([]timeoff.TimeOffRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, timeoff.NewTimeOffRequestResponse(r))
	}

	return timeoff.ListTimeOffResponse{
		Requests:   responses,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

func (s *TimeOffServiceImpl) Balance(ctx context.Context, caller auth.AuthContext, employeeID int64, year int) (timeoff.BalanceResponse, error) {
	if err := caller.Require(user.PermissionTimeOffViewOwn); err != nil {
		return timeoff.BalanceResponse{}, err
	}
	if employeeID <= 0 {
		return timeoff.BalanceResponse{}, fmt.Errorf("%w: employee id must be a positive integer", timeoff.ErrInvalidArgument)
	}
	if !caller.CanAccessEmployee(employeeID) {
		return timeoff.BalanceResponse{}, auth.ErrForbidden
	}
	if year == 0 {
		year = s.today().Year()
	}

	balance, err := s.balance.GetBalance(ctx, employeeID, year)
	if err != nil {
		return timeoff.BalanceResponse{}, err
	}

	return timeoff.BalanceResponse{EmployeeID: employeeID, Year: year, Balances: balance}, nil
}

func (s *TimeOffServiceImpl) Preview(ctx context.Context, caller auth.AuthContext, startDate, endDate string) (timeoff.PreviewResponse, error) {
	if err := caller.Require(user.PermissionTimeOffViewOwn); err != nil {
		return timeoff.PreviewResponse{}, err
	}

	var errs validator.ValidationErrors
	start, ok := validator.IsValidDate(strings.TrimSpace(startDate))
	if !ok {
		errs.Add("start_date", "start_date must be a valid date (YYYY-MM-DD)")
	}
	end, ok := validator.IsValidDate(strings.TrimSpace(endDate))
	if !ok {
		errs.Add("end_date", "end_date must be a valid date (YYYY-MM-DD)")
	}
	if err := errs.Err(); err != nil {
		return timeoff.PreviewResponse{}, err
	}
	if end.Before(start) {
		return timeoff.PreviewResponse{}, timeoff.ErrInvalidRange
	}

	holidays, err := s.holidays.HolidaySet(ctx, start, end)
	if err != nil {
		return timeoff.PreviewResponse{}, s.persistence("load holidays", err)
	}
	days, err := timeoff.CountBusinessDays(start, end, holidays)
	if err != nil {
		return timeoff.PreviewResponse{}, err
	}

	return timeoff.PreviewResponse{
		StartDate:    start.Format(validator.DateLayout),
		EndDate:      end.Format(validator.DateLayout),
		BusinessDays: days,
		CalendarDays: timeoff.CalendarDays(start, end),
	}, nil
}

func (s *TimeOffServiceImpl) SetAllowance(ctx context.Context, caller auth.AuthContext, req timeoff.SetAllowanceRequest) (timeoff.AllowanceResponse, error) {
	if err := caller.Require(user.PermissionAllowancesManage); err != nil {
		return timeoff.AllowanceResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return timeoff.AllowanceResponse{}, err
	}

	var saved timeoff.LeaveAllowance
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.employees.LockEmployee(ctx, req.EmployeeID); err != nil {
			if errors.Is(err, timeoff.ErrEmployeeNotFound) {
				return err
			}
			return s.persistence("lock employee", err, zap.Int64("employee_id", req.EmployeeID))
		}

		var err error
		saved, err = s.AllowanceRepository.Upsert(ctx, timeoff.LeaveAllowance{
			EmployeeID:  req.EmployeeID,
			LeaveType:   timeoff.LeaveType(req.LeaveType),
			Year:        req.Year,
			DaysAllowed: req.DaysAllowed,
		})
		if err != nil {
			return s.persistence("upsert allowance", err, zap.Int64("employee_id", req.EmployeeID))
		}
		return nil
	})
	if err != nil {
		return timeoff.AllowanceResponse{}, err
	}

	s.logger.Info("leave allowance set",
		zap.Int64("employee_id", saved.EmployeeID),
		zap.String("leave_type", string(saved.LeaveType)),
		zap.Int("year", saved.Year),
		zap.Int("days_allowed", saved.DaysAllowed),
		zap.Int64("set_by", caller.UserID),
	)

	return timeoff.AllowanceResponse{
		LeaveType:   saved.LeaveType,
		Year:        saved.Year,
		DaysAllowed: saved.DaysAllowed,
		IsOverride:  true,
	}, nil
}

func (s *TimeOffServiceImpl) ListAllowances(ctx context.Context, caller auth.AuthContext, employeeID int64, year int) ([]timeoff.AllowanceResponse, error) {
	if err := caller.Require(user.PermissionTimeOffViewOwn); err != nil {
		return nil, err
	}
	if employeeID <= 0 {
		return nil, fmt.Errorf("%w: employee id must be a positive integer", timeoff.ErrInvalidArgument)
	}
	if !caller.CanAccessEmployee(employeeID) {
		return nil, auth.ErrForbidden
	}
	if year == 0 {
		year = s.today().Year()
	}

	overrides, err := s.AllowanceRepository.GetByEmployeeAndYear(ctx, employeeID, year)
	if err != nil {
		return nil, s.persistence("list allowances", err, zap.Int64("employee_id", employeeID))
	}

	allowances := make([]timeoff.AllowanceResponse, 0, len(timeoff.LeaveTypes))
	for _, lt := range timeoff.LeaveTypes {
		days, isOverride := overrides[lt]
		if !isOverride {
			days = timeoff.DefaultAllowances[lt]
		}
		allowances = append(allowances, timeoff.AllowanceResponse{
			LeaveType:   lt,
			Year:        year,
			DaysAllowed: days,
			IsOverride:  isOverride,
		})
	}
	return allowances, nil
}
