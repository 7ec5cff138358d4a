package timeoff

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hr-portal/internal/domain/timeoff"
	"github.com/cmlabs-hris/hr-portal/internal/pkg/logger"
	"go.uber.org/zap"
)

// BalanceCalculator derives balances from allowance overrides and the
// business days of approved and pending requests.
type BalanceCalculator struct {
	requests   timeoff.RequestRepository
	allowances timeoff.AllowanceRepository
	logger     *zap.Logger
	now        func() time.Time
}

func NewBalanceCalculator(requests timeoff.RequestRepository, allowances timeoff.AllowanceRepository, log *zap.Logger) *BalanceCalculator {
	return &BalanceCalculator{
		requests:   requests,
		allowances: allowances,
		logger:     logger.OrNop(log).Named("timeoff.balance"),
		now:        time.Now,
	}
}

// GetBalance implements timeoff.BalanceCalculator.
func (c *BalanceCalculator) GetBalance(ctx context.Context, employeeID int64, year int) (timeoff.Balance, error) {
	if employeeID <= 0 {
		return nil, fmt.Errorf("%w: employee id must be a positive integer", timeoff.ErrInvalidArgument)
	}
	if year == 0 {
		year = c.now().Year()
	}

	overrides, err := c.allowances.GetByEmployeeAndYear(ctx, employeeID, year)
	if err != nil {
		return nil, c.fail("load allowances", employeeID, year, err)
	}

	used, err := c.requests.SumBusinessDays(ctx, employeeID, year, timeoff.StatusApproved)
	if err != nil {
		return nil, c.fail("sum approved days", employeeID, year, err)
	}

	pending, err := c.requests.SumBusinessDays(ctx, employeeID, year, timeoff.StatusPending)
	if err != nil {
		return nil, c.fail("sum pending days", employeeID, year, err)
	}

	return timeoff.ComputeBalance(overrides, used, pending), nil
}

func (c *BalanceCalculator) fail(op string, employeeID int64, year int, err error) error {
	c.logger.Error("balance lookup failed",
		zap.String("op", op),
		zap.Int64("employee_id", employeeID),
		zap.Int("year", year),
		zap.Error(err),
	)
	return timeoff.Persistence(op, err)
}
