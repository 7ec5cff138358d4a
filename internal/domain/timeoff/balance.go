package timeoff

// BalanceEntry is the derived balance of one leave type.
type BalanceEntry struct {
	Total     int `json:"total"`
	Used      int `json:"used"`
	Remaining int `json:"remaining"`
	// Pending is the number of business days in requests awaiting review.
	// It does not reduce Remaining.
	Pending int `json:"pending"`
}

// Balance maps every leave type to its balance for one employee and year.
type Balance map[LeaveType]BalanceEntry

// Remaining returns the remaining days for t, zero when t is unknown.
func (b Balance) Remaining(t LeaveType) int {
	return b[t].Remaining
}

// ComputeBalance merges allowance overrides with the default table and
// subtracts used days. Remaining never goes below zero.
func ComputeBalance(overrides, used, pending map[LeaveType]int) Balance {
	balance := make(Balance, len(LeaveTypes))
	for _, t := range LeaveTypes {
		total, ok := overrides[t]
		if !ok {
			total = DefaultAllowances[t]
		}
		remaining := total - used[t]
		if remaining < 0 {
			remaining = 0
		}
		balance[t] = BalanceEntry{
			Total:     total,
			Used:      used[t],
			Remaining: remaining,
			Pending:   pending[t],
		}
	}
	return balance
}
