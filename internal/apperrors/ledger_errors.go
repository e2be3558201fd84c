package apperrors

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerImbalanceError reports a set of lines whose debits and credits differ.
type LedgerImbalanceError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Reason      string
}

func (e *LedgerImbalanceError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", ErrLedgerImbalance.Error(), e.Reason)
	}
	return fmt.Sprintf("%s: debits %s, credits %s", ErrLedgerImbalance.Error(), e.TotalDebit.StringFixed(2), e.TotalCredit.StringFixed(2))
}

func (e *LedgerImbalanceError) Unwrap() error { return ErrLedgerImbalance }

// PeriodLockedError is returned when a document date falls on or before the organization's lock date.
// Error() stays generic; the dates are for logs and audit.
type PeriodLockedError struct {
	Action        string
	AttemptedDate time.Time
	LockDate      time.Time
}

func (e *PeriodLockedError) Error() string {
	return ErrPeriodLocked.Error()
}

func (e *PeriodLockedError) Unwrap() error { return ErrPeriodLocked }

// AllocationExceedsOutstandingError names the target that an allocation would overpay.
type AllocationExceedsOutstandingError struct {
	TargetID    string
	Amount      decimal.Decimal
	Outstanding decimal.Decimal
}

func (e *AllocationExceedsOutstandingError) Error() string {
	return fmt.Sprintf("%s: target %s, amount %s, outstanding %s",
		ErrAllocationExceedsOutstanding.Error(), e.TargetID, e.Amount.StringFixed(2), e.Outstanding.StringFixed(2))
}

func (e *AllocationExceedsOutstandingError) Unwrap() error { return ErrAllocationExceedsOutstanding }

// InvalidTransitionError reports a state machine move that is not allowed.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot move from %s to %s", ErrInvalidTransition.Error(), e.Entity, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }
