package timeoff

import (
	"errors"
	"fmt"
)

var (
	ErrRequestNotFound         = errors.New("time off request not found")
	ErrRequestAlreadyProcessed = errors.New("time off request already processed")
	ErrInsufficientBalance     = errors.New("insufficient leave balance")
	ErrInvalidRange            = errors.New("end date is before start date")
	ErrInvalidArgument         = errors.New("invalid argument")
	ErrPersistence             = errors.New("persistence failure")
	ErrEmployeeNotFound        = errors.New("employee not found")
)

// InsufficientBalanceError reports the leave type and shortfall of a rejected submission.
type InsufficientBalanceError struct {
	LeaveType LeaveType
	Requested int
	Remaining int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient %s balance: requested %d day(s), %d remaining (short by %d)",
		e.LeaveType, e.Requested, e.Remaining, e.Shortfall())
}

// Shortfall is how many days the request exceeds the remaining balance by.
func (e *InsufficientBalanceError) Shortfall() int {
	return e.Requested - e.Remaining
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// PersistenceError wraps a datastore failure with the operation that failed.
// Its message is for logs; callers show a generic message.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// Persistence wraps err as a PersistenceError unless it already is one or is nil.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
