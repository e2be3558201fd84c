package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	portsrepo "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/repositories"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/utils/accounting"
)

// FinalizeFunc runs after the header and allocations are written, inside the
// same transaction. It updates the source document and describes the audit entry.
type FinalizeFunc func(ctx context.Context, tx portsrepo.TxStore, header domain.GLHeader) (*AuditChange, error)

// PostingOrchestrator turns a PostingSource into one balanced GL header.
type PostingOrchestrator struct {
	BaseService
	validator   *GLValidator
	allocations *AllocationLedger
	audit       *AuditTrail
	now         Clock
}

// NewPostingOrchestrator creates a PostingOrchestrator.
func NewPostingOrchestrator(validator *GLValidator, allocations *AllocationLedger, audit *AuditTrail, now Clock) *PostingOrchestrator {
	return &PostingOrchestrator{validator: validator, allocations: allocations, audit: audit, now: now}
}

// Post locks the allocation targets, builds and validates the lines, writes the
// header, applies allocations, then finalizes and audits. Any error leaves the
// transaction to roll back.
func (o *PostingOrchestrator) Post(ctx context.Context, tx portsrepo.TxStore, src PostingSource, finalize FinalizeFunc) (*domain.GLHeader, error) {
	rule, ok := postingRules[src.SourceType]
	if !ok {
		return nil, apperrors.NewValidationError("no posting rule for source type %q", src.SourceType)
	}

	targets, err := o.allocations.Lock(ctx, tx, src.OrgID, src.TargetKind, src.Allocations)
	if err != nil {
		return nil, err
	}
	if err := ValidateAgainstOutstanding(src.Allocations, targets, src.PartyID, src.CurrencyCode); err != nil {
		return nil, err
	}

	accts, err := o.resolveAccounts(ctx, tx, src, rule)
	if err != nil {
		return nil, err
	}

	built, err := rule.build(src, accts)
	if err != nil {
		return nil, err
	}
	lines, totalDebit, totalCredit, err := o.validator.ValidateLines(built)
	if err != nil {
		o.LogError(ctx, err, "Posting rule produced an invalid entry",
			slog.String("org_id", src.OrgID),
			slog.String("source_type", string(src.SourceType)),
			slog.String("source_id", src.SourceID))
		return nil, err
	}
	if err := o.validator.EnsureSourceUnposted(ctx, tx, src.OrgID, src.SourceType, src.SourceID); err != nil {
		return nil, err
	}

	header := domain.GLHeader{
		HeaderID:     uuid.NewString(),
		OrgID:        src.OrgID,
		SourceType:   src.SourceType,
		SourceID:     src.SourceID,
		PostingDate:  domain.DateOnly(src.PostingDate),
		CurrencyCode: src.CurrencyCode,
		ExchangeRate: accounting.NormalizeRate(src.ExchangeRate),
		TotalDebit:   totalDebit,
		TotalCredit:  totalCredit,
		Status:       domain.GLPosted,
		Memo:         src.Memo,
		AuditFields:  domain.NewAuditFields(src.ActorID, o.now()),
	}
	for i := range lines {
		lines[i].LineID = uuid.NewString()
		lines[i].HeaderID = header.HeaderID
	}
	header.Lines = lines

	if err := tx.InsertHeader(ctx, header); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			o.LogError(ctx, err, "Active header already exists for source",
				slog.String("org_id", src.OrgID),
				slog.String("source_type", string(src.SourceType)),
				slog.String("source_id", src.SourceID))
			return nil, fmt.Errorf("%w: duplicate active header for %s %s", apperrors.ErrInvariantViolation, src.SourceType, src.SourceID)
		}
		return nil, fmt.Errorf("insert gl header: %w", err)
	}

	if err := o.allocations.Apply(ctx, tx, src.OrgID, src.TargetKind, src.Allocations, targets); err != nil {
		return nil, err
	}

	if finalize != nil {
		change, err := finalize(ctx, tx, header)
		if err != nil {
			return nil, err
		}
		if change != nil {
			if err := o.audit.Record(ctx, tx, src.OrgID, src.ActorID, *change); err != nil {
				return nil, err
			}
		}
	}

	o.LogInfo(ctx, "GL header posted",
		slog.String("org_id", src.OrgID),
		slog.String("header_id", header.HeaderID),
		slog.String("source_type", string(src.SourceType)),
		slog.String("source_id", src.SourceID),
		slog.String("total", totalDebit.StringFixed(2)))
	return &header, nil
}

func (o *PostingOrchestrator) resolveAccounts(ctx context.Context, tx portsrepo.AccountTxRepository, src PostingSource, rule postingRule) (AccountSet, error) {
	set := AccountSet{
		bySubtype: make(map[domain.AccountSubtype]domain.Account, len(rule.subtypes)),
		byID:      map[string]domain.Account{},
	}
	for _, st := range rule.subtypes {
		acct, err := tx.FindAccountBySubtype(ctx, src.OrgID, st)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return AccountSet{}, apperrors.NewValidationError("organization has no active %s account", st)
			}
			return AccountSet{}, fmt.Errorf("find %s account: %w", st, err)
		}
		set.bySubtype[st] = *acct
	}

	ids := make([]string, 0, len(src.Lines)+1)
	if rule.needsBank {
		if src.BankAccountID == "" {
			return AccountSet{}, apperrors.NewValidationError("bank account is required")
		}
		ids = append(ids, src.BankAccountID)
	}
	for _, l := range src.Lines {
		ids = append(ids, l.AccountID)
	}
	if len(ids) == 0 {
		return set, nil
	}

	found, err := tx.FindAccountsByIDs(ctx, src.OrgID, ids)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return AccountSet{}, apperrors.NewValidationError("unknown account on %s %s", src.SourceType, src.SourceID)
		}
		return AccountSet{}, fmt.Errorf("find accounts: %w", err)
	}
	for _, id := range ids {
		acct, ok := found[id]
		if !ok {
			return AccountSet{}, apperrors.NewValidationError("account %s not found", id)
		}
		if !acct.IsActive {
			return AccountSet{}, apperrors.NewValidationError("account %s is inactive", acct.Code)
		}
		set.byID[id] = acct
	}
	if rule.needsBank && set.byID[src.BankAccountID].Subtype != domain.SubtypeBank {
		return AccountSet{}, apperrors.NewValidationError("account %s is not a bank account", src.BankAccountID)
	}
	return set, nil
}
