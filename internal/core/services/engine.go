package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	portsrepo "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/repositories"
)

// ledgerEngine carries the collaborators shared by every service that writes to the GL.
type ledgerEngine struct {
	BaseService
	txManager    portsrepo.TransactionManager
	docReader    portsrepo.DocumentReader
	guard        *LockDateGuard
	orchestrator *PostingOrchestrator
	reversals    *ReversalGenerator
	allocations  *AllocationLedger
	idempotency  *IdempotencyLedger
	audit        *AuditTrail
	validate     *validator.Validate
	now          Clock
}

func newLedgerEngine(repos portsrepo.RepositoryProvider, now Clock) *ledgerEngine {
	v := validator.New()
	v.SetTagName("binding")

	audit := NewAuditTrail(now)
	glValidator := NewGLValidator()
	allocations := NewAllocationLedger()
	return &ledgerEngine{
		txManager:    repos.TxManager,
		docReader:    repos.DocReader,
		guard:        NewLockDateGuard(repos.AuditWriter, audit),
		orchestrator: NewPostingOrchestrator(glValidator, allocations, audit, now),
		reversals:    NewReversalGenerator(glValidator, now),
		allocations:  allocations,
		idempotency:  NewIdempotencyLedger(repos.TxManager, now),
		audit:        audit,
		validate:     v,
		now:          now,
	}
}

// today is the current UTC calendar date.
func (e *ledgerEngine) today() time.Time {
	return domain.DateOnly(e.now())
}

// validateRequest applies the binding tags for callers that bypass gin.
func (e *ledgerEngine) validateRequest(req any) error {
	if err := e.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return apperrors.NewValidationError("field %s failed on %s", verrs[0].Namespace(), verrs[0].Tag())
		}
		return apperrors.NewValidationError("%s", err.Error())
	}
	return nil
}

// nextNumber formats the next per-organization document number, e.g. INV-000042.
func (e *ledgerEngine) nextNumber(ctx context.Context, tx portsrepo.SequenceTxRepository, orgID, prefix string) (string, error) {
	n, err := tx.NextDocumentNumber(ctx, orgID, prefix)
	if err != nil {
		return "", fmt.Errorf("next %s number: %w", prefix, err)
	}
	return fmt.Sprintf("%s-%06d", prefix, n), nil
}

func (e *ledgerEngine) loadOrg(ctx context.Context, tx portsrepo.OrganizationTxRepository, orgID string) (*domain.Organization, error) {
	org, err := tx.GetOrganization(ctx, orgID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("organization", orgID)
		}
		return nil, fmt.Errorf("load organization: %w", err)
	}
	return org, nil
}

// wrapLookup turns a repository not-found into an entity-specific one.
func wrapLookup(err error, entity, id string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewNotFoundError(entity, id)
	}
	return fmt.Errorf("load %s: %w", entity, err)
}

// validateLineAccounts checks the line accounts exist and are active for the organization.
func (e *ledgerEngine) validateLineAccounts(ctx context.Context, tx portsrepo.AccountTxRepository, orgID string, accountIDs []string) error {
	if len(accountIDs) == 0 {
		return nil
	}
	found, err := tx.FindAccountsByIDs(ctx, orgID, accountIDs)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationError("unknown account on document")
		}
		return fmt.Errorf("find accounts: %w", err)
	}
	for _, id := range accountIDs {
		acct, ok := found[id]
		if !ok {
			return apperrors.NewValidationError("account %s not found", id)
		}
		if !acct.IsActive {
			return apperrors.NewValidationError("account %s is inactive", acct.Code)
		}
	}
	return nil
}
