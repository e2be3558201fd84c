package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	portsrepo "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/repositories"
)

// ReversalGenerator writes the mirror image of a posted header.
type ReversalGenerator struct {
	BaseService
	validator *GLValidator
	now       Clock
}

// NewReversalGenerator creates a ReversalGenerator.
func NewReversalGenerator(validator *GLValidator, now Clock) *ReversalGenerator {
	return &ReversalGenerator{validator: validator, now: now}
}

// Reverse locks the original header, inserts a reversal with every line's debit
// and credit swapped, and links the original to it. The reversal carries the
// original's source type and id. An empty memo defaults to "Reversal of <type> <id>".
func (r *ReversalGenerator) Reverse(ctx context.Context, tx portsrepo.GLTxRepository, orgID, headerID, actorID, memo string, reversalDate time.Time) (*domain.GLHeader, error) {
	original, err := tx.FindHeaderForUpdate(ctx, orgID, headerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("gl header", headerID)
		}
		return nil, fmt.Errorf("lock gl header: %w", err)
	}
	if original.IsReversal {
		return nil, apperrors.NewValidationError("header %s is itself a reversal", headerID)
	}
	if original.ReversedByHeaderID != nil {
		return nil, fmt.Errorf("%w: header %s", apperrors.ErrAlreadyReversed, headerID)
	}

	mirrored := make([]domain.GLLine, len(original.Lines))
	for i, l := range original.Lines {
		mirrored[i] = l.Mirror()
	}
	lines, totalDebit, totalCredit, err := r.validator.ValidateLines(mirrored)
	if err != nil {
		r.LogError(ctx, err, "Reversal produced an invalid entry", slog.String("header_id", headerID))
		return nil, err
	}

	if memo == "" {
		memo = fmt.Sprintf("Reversal of %s %s", original.SourceType, original.SourceID)
	}
	reversal := domain.GLHeader{
		HeaderID:     uuid.NewString(),
		OrgID:        orgID,
		SourceType:   original.SourceType,
		SourceID:     original.SourceID,
		PostingDate:  domain.DateOnly(reversalDate),
		CurrencyCode: original.CurrencyCode,
		ExchangeRate: original.ExchangeRate,
		TotalDebit:   totalDebit,
		TotalCredit:  totalCredit,
		Status:       domain.GLPosted,
		Memo:         memo,
		IsReversal:   true,
		AuditFields:  domain.NewAuditFields(actorID, r.now()),
	}
	for i := range lines {
		lines[i].LineID = uuid.NewString()
		lines[i].HeaderID = reversal.HeaderID
	}
	reversal.Lines = lines

	if err := tx.InsertHeader(ctx, reversal); err != nil {
		return nil, fmt.Errorf("insert reversal header: %w", err)
	}
	if err := tx.SetReversedBy(ctx, orgID, original.HeaderID, reversal.HeaderID); err != nil {
		return nil, fmt.Errorf("link reversal header: %w", err)
	}

	r.LogInfo(ctx, "GL header reversed",
		slog.String("org_id", orgID),
		slog.String("header_id", original.HeaderID),
		slog.String("reversal_header_id", reversal.HeaderID))
	return &reversal, nil
}
