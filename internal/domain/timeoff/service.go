package timeoff

import (
	"context"

	"github.com/cmlabs-hris/hr-portal/internal/domain/auth"
)

// BalanceCalculator computes per-type allowance, used and remaining days.
type BalanceCalculator interface {
	// GetBalance returns the balance for every leave type. year 0 means the current year.
	GetBalance(ctx context.Context, employeeID int64, year int) (Balance, error)
}

type TimeOffService interface {
	// Request workflow
	Submit(ctx context.Context, caller auth.AuthContext, req CreateTimeOffRequest) (TimeOffRequestResponse, error)
	Approve(ctx context.Context, caller auth.AuthContext, requestID int64) error
	Reject(ctx context.Context, caller auth.AuthContext, requestID int64) error
	BulkApprove(ctx context.Context, caller auth.AuthContext, req BulkApproveRequest) (BulkApproveResult, error)

	// Listing
	GetRequest(ctx context.Context, caller auth.AuthContext, requestID int64) (TimeOffRequestResponse, error)
	ListPending(ctx context.Context, caller auth.AuthContext) ([]TimeOffRequestResponse, error)
	List(ctx context.Context, caller auth.AuthContext, filter RequestFilter) (ListTimeOffResponse, error)
	MyRequests(ctx context.Context, caller auth.AuthContext, filter RequestFilter) (ListTimeOffResponse, error)

	// Balance
	Balance(ctx context.Context, caller auth.AuthContext, employeeID int64, year int) (BalanceResponse, error)
	Preview(ctx context.Context, caller auth.AuthContext, startDate, endDate string) (PreviewResponse, error)

	// Allowances
	SetAllowance(ctx context.Context, caller auth.AuthContext, req SetAllowanceRequest) (AllowanceResponse, error)
	ListAllowances(ctx context.Context, caller auth.AuthContext, employeeID int64, year int) ([]AllowanceResponse, error)
}
