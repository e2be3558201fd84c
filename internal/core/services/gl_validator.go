package services

import (
	"context"
	"fmt"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	portsrepo "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/repositories"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// GLValidator enforces the structural invariants of a GL entry before it is written.
type GLValidator struct{}

// NewGLValidator creates a GLValidator.
func NewGLValidator() *GLValidator {
	return &GLValidator{}
}

// ValidateLines checks every line and the entry balance, and returns a copy of
// the lines numbered 1..n together with the entry totals.
func (v *GLValidator) ValidateLines(lines []domain.GLLine) ([]domain.GLLine, decimal.Decimal, decimal.Decimal, error) {
	if len(lines) == 0 {
		return nil, decimal.Zero, decimal.Zero, &apperrors.LedgerImbalanceError{Reason: "entry has no lines"}
	}

	out := make([]domain.GLLine, len(lines))
	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for i, l := range lines {
		if l.AccountID == "" {
			return nil, decimal.Zero, decimal.Zero, &apperrors.LedgerImbalanceError{Reason: fmt.Sprintf("line %d has no account", i+1)}
		}
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return nil, decimal.Zero, decimal.Zero, &apperrors.LedgerImbalanceError{Reason: fmt.Sprintf("line %d has a negative amount", i+1)}
		}
		if l.Debit.IsPositive() == l.Credit.IsPositive() {
			return nil, decimal.Zero, decimal.Zero, &apperrors.LedgerImbalanceError{Reason: fmt.Sprintf("line %d must have exactly one of debit or credit", i+1)}
		}
		if !accounting.IsMoneyScale(l.Debit) || !accounting.IsMoneyScale(l.Credit) {
			return nil, decimal.Zero, decimal.Zero, &apperrors.LedgerImbalanceError{Reason: fmt.Sprintf("line %d is not rounded to 2 decimals", i+1)}
		}
		l.LineNo = i + 1
		out[i] = l
		totalDebit = totalDebit.Add(l.Debit)
		totalCredit = totalCredit.Add(l.Credit)
	}

	if !totalDebit.Equal(totalCredit) {
		return nil, decimal.Zero, decimal.Zero, &apperrors.LedgerImbalanceError{TotalDebit: totalDebit, TotalCredit: totalCredit}
	}
	return out, totalDebit, totalCredit, nil
}

// EnsureSourceUnposted fails with ErrAlreadyPosted when the source already has a live header.
func (v *GLValidator) EnsureSourceUnposted(ctx context.Context, tx portsrepo.GLTxRepository, orgID string, sourceType domain.SourceType, sourceID string) error {
	exists, err := tx.ExistsActiveHeader(ctx, orgID, sourceType, sourceID)
	if err != nil {
		return fmt.Errorf("check existing header: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: %s %s", apperrors.ErrAlreadyPosted, sourceType, sourceID)
	}
	return nil
}
