package timeoff

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeBalance_Defaults(t *testing.T) {
	balance := ComputeBalance(nil, nil, nil)

	assert.Len(t, balance, len(LeaveTypes))
	for _, lt := range LeaveTypes {
		assert.Equal(t, DefaultAllowances[lt], balance[lt].Total, lt)
		assert.Equal(t, DefaultAllowances[lt], balance[lt].Remaining, lt)
		assert.Zero(t, balance[lt].Used, lt)
	}
}

func TestComputeBalance_OverridesAndUsage(t *testing.T) {
	balance := ComputeBalance(
		map[LeaveType]int{LeaveTypeVacation: 20, LeaveTypeOther: 0},
		map[LeaveType]int{LeaveTypeVacation: 7, LeaveTypeSick: 12},
		map[LeaveType]int{LeaveTypeVacation: 3},
	)

	assert.Equal(t, BalanceEntry{Total: 20, Used: 7, Remaining: 13, Pending: 3}, balance[LeaveTypeVacation])
	assert.Equal(t, BalanceEntry{Total: 10, Used: 12, Remaining: 0}, balance[LeaveTypeSick])
	assert.Equal(t, BalanceEntry{Total: 0, Used: 0, Remaining: 0}, balance[LeaveTypeOther])
	assert.Equal(t, 5, balance.Remaining(LeaveTypePersonal))
	assert.Zero(t, balance.Remaining(LeaveType("sabbatical")))
}

func TestComputeBalance_RemainingNeverNegative(t *testing.T) {
	for total := 0; total <= 20; total += 5 {
		for used := 0; used <= 30; used += 3 {
			balance := ComputeBalance(
				map[LeaveType]int{LeaveTypeVacation: total},
				map[LeaveType]int{LeaveTypeVacation: used},
				nil,
			)
			entry := balance[LeaveTypeVacation]
			want := total - used
			if want < 0 {
				want = 0
			}
			assert.Equal(t, want, entry.Remaining, "total=%d used=%d", total, used)
			assert.GreaterOrEqual(t, entry.Remaining, 0)
		}
	}
}

func TestInsufficientBalanceError(t *testing.T) {
	var err error = &InsufficientBalanceError{LeaveType: LeaveTypeVacation, Requested: 3, Remaining: 2}

	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, 1, err.(*InsufficientBalanceError).Shortfall())
	assert.Contains(t, err.Error(), "vacation")
	assert.Contains(t, err.Error(), "short by 1")

	wrapped := fmt.Errorf("submit: %w", err)
	var ibe *InsufficientBalanceError
	assert.True(t, errors.As(wrapped, &ibe))
}

func TestPersistence(t *testing.T) {
	assert.NoError(t, Persistence("op", nil))

	cause := errors.New("connection reset")
	err := Persistence("create request", cause)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, cause)

	again := Persistence("outer", err)
	assert.Same(t, err, again)
}
