package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	portsrepo "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/repositories"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/dto"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// ToAllocations converts request allocations to domain values.
func ToAllocations(inputs []dto.AllocationInput) []domain.Allocation {
	out := make([]domain.Allocation, len(inputs))
	for i, in := range inputs {
		out[i] = domain.Allocation{TargetID: in.TargetID, Amount: in.Amount}
	}
	return out
}

// NormalizeAllocations rounds amounts to 2 decimals and rejects empty target ids,
// non-positive amounts and repeated targets. Input order is preserved.
func NormalizeAllocations(allocs []domain.Allocation) ([]domain.Allocation, error) {
	seen := make(map[string]struct{}, len(allocs))
	out := make([]domain.Allocation, 0, len(allocs))
	for _, a := range allocs {
		if a.TargetID == "" {
			return nil, apperrors.NewValidationError("allocation target is required")
		}
		if _, dup := seen[a.TargetID]; dup {
			return nil, apperrors.NewValidationError("target %s is allocated more than once", a.TargetID)
		}
		seen[a.TargetID] = struct{}{}

		amount := accounting.Round2(a.Amount)
		if !amount.IsPositive() {
			return nil, apperrors.NewValidationError("allocation to %s must be positive", a.TargetID)
		}
		out = append(out, domain.Allocation{TargetID: a.TargetID, Amount: amount})
	}
	return out, nil
}

// AllocationTotal sums allocation amounts.
func AllocationTotal(allocs []domain.Allocation) decimal.Decimal {
	total := decimal.Zero
	for _, a := range allocs {
		total = total.Add(a.Amount)
	}
	return accounting.Round2(total)
}

// ValidateAllocationTotal requires the allocations to add up to the document amount.
func ValidateAllocationTotal(allocs []domain.Allocation, amount decimal.Decimal) error {
	total := AllocationTotal(allocs)
	if !total.Equal(accounting.Round2(amount)) {
		return apperrors.NewValidationError("allocations total %s does not equal amount %s", total.StringFixed(2), amount.StringFixed(2))
	}
	return nil
}

// ValidateAgainstOutstanding checks each allocation against its locked target.
// Targets must be posted, belong to partyID and share the document currency.
func ValidateAgainstOutstanding(allocs []domain.Allocation, targets map[string]domain.TargetDocument, partyID, currencyCode string) error {
	for _, a := range allocs {
		t, ok := targets[a.TargetID]
		if !ok {
			return apperrors.NewNotFoundError("allocation target", a.TargetID)
		}
		if t.Status != domain.StatusPosted {
			return apperrors.NewValidationError("target %s is not posted", a.TargetID)
		}
		if partyID != "" && t.PartyID != partyID {
			return apperrors.NewValidationError("target %s belongs to a different party", a.TargetID)
		}
		if currencyCode != "" && t.CurrencyCode != currencyCode {
			return apperrors.NewValidationError("target %s is in %s, not %s", a.TargetID, t.CurrencyCode, currencyCode)
		}
		outstanding := t.Outstanding()
		if outstanding.IsZero() {
			return fmt.Errorf("%w: %s", apperrors.ErrAlreadyFullyPaid, a.TargetID)
		}
		if a.Amount.GreaterThan(outstanding) {
			return &apperrors.AllocationExceedsOutstandingError{TargetID: a.TargetID, Amount: a.Amount, Outstanding: outstanding}
		}
	}
	return nil
}

// AllocationLedger keeps invoice and bill AmountPaid in step with allocations.
type AllocationLedger struct{}

// NewAllocationLedger creates an AllocationLedger.
func NewAllocationLedger() *AllocationLedger {
	return &AllocationLedger{}
}

// Lock reads the allocation targets under row locks, in id order.
func (a *AllocationLedger) Lock(ctx context.Context, tx portsrepo.TargetDocumentTxRepository, orgID string, kind domain.TargetKind, allocs []domain.Allocation) (map[string]domain.TargetDocument, error) {
	if len(allocs) == 0 {
		return map[string]domain.TargetDocument{}, nil
	}
	ids := make([]string, len(allocs))
	for i, al := range allocs {
		ids[i] = al.TargetID
	}
	sort.Strings(ids)
	targets, err := tx.LockTargetDocuments(ctx, orgID, kind, ids)
	if err != nil {
		return nil, fmt.Errorf("lock %s targets: %w", kind, err)
	}
	return targets, nil
}

// Apply adds each allocation to its target's AmountPaid and recomputes the payment status.
func (a *AllocationLedger) Apply(ctx context.Context, tx portsrepo.TargetDocumentTxRepository, orgID string, kind domain.TargetKind, allocs []domain.Allocation, targets map[string]domain.TargetDocument) error {
	for _, al := range allocs {
		t, ok := targets[al.TargetID]
		if !ok {
			return apperrors.NewNotFoundError("allocation target", al.TargetID)
		}
		newPaid := accounting.Add2(t.AmountPaid, al.Amount)
		if newPaid.GreaterThan(t.Total) {
			return &apperrors.AllocationExceedsOutstandingError{TargetID: t.DocumentID, Amount: al.Amount, Outstanding: t.Outstanding()}
		}
		if err := a.write(ctx, tx, orgID, kind, targets, t, newPaid); err != nil {
			return err
		}
	}
	return nil
}

// Unwind subtracts each allocation from its target, flooring AmountPaid at zero.
func (a *AllocationLedger) Unwind(ctx context.Context, tx portsrepo.TargetDocumentTxRepository, orgID string, kind domain.TargetKind, allocs []domain.Allocation, targets map[string]domain.TargetDocument) error {
	for _, al := range allocs {
		t, ok := targets[al.TargetID]
		if !ok {
			return apperrors.NewNotFoundError("allocation target", al.TargetID)
		}
		newPaid := accounting.Sub2(t.AmountPaid, al.Amount)
		if newPaid.IsNegative() {
			newPaid = decimal.Zero
		}
		if err := a.write(ctx, tx, orgID, kind, targets, t, newPaid); err != nil {
			return err
		}
	}
	return nil
}

func (a *AllocationLedger) write(ctx context.Context, tx portsrepo.TargetDocumentTxRepository, orgID string, kind domain.TargetKind, targets map[string]domain.TargetDocument, t domain.TargetDocument, newPaid decimal.Decimal) error {
	status := domain.DerivePaymentStatus(newPaid, t.Total)
	if err := tx.UpdateTargetPayment(ctx, orgID, kind, t.DocumentID, newPaid, status); err != nil {
		return fmt.Errorf("update %s %s payment: %w", kind, t.DocumentID, err)
	}
	t.AmountPaid = newPaid
	t.PaymentStatus = status
	targets[t.DocumentID] = t
	return nil
}
