package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	portsrepo "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/repositories"
	portssvc "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/services"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/dto"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/utils/accounting"
)

const pdcScope = "pdc"

// pdcService drives post-dated cheques through their lifecycle.
type pdcService struct {
	*ledgerEngine
}

func newPDCService(engine *ledgerEngine) *pdcService {
	return &pdcService{ledgerEngine: engine}
}

var _ portssvc.PDCSvcFacade = (*pdcService)(nil)

type transitionPayload struct {
	PDCID      string           `json:"pdcID"`
	Action     domain.PDCAction `json:"action"`
	ActionDate string           `json:"actionDate,omitempty"`
}

func (s *pdcService) CreatePDC(ctx context.Context, orgID string, req dto.CreatePDCRequest, actorID string) (*domain.PDC, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	amount := accounting.Round2(req.Amount)
	allocs, err := prepareAllocations(req.Allocations, amount)
	if err != nil {
		return nil, err
	}
	if err := ValidateAllocationTotal(allocs, amount); err != nil {
		return nil, err
	}

	var created domain.PDC
	err = s.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		if _, err := s.loadOrg(ctx, tx, orgID); err != nil {
			return err
		}
		targets, err := s.allocations.Lock(ctx, tx, orgID, req.Direction.TargetKind(), allocs)
		if err != nil {
			return err
		}
		if err := ValidateAgainstOutstanding(allocs, targets, req.PartyID, req.CurrencyCode); err != nil {
			return err
		}
		number, err := s.nextNumber(ctx, tx, orgID, "PDC")
		if err != nil {
			return err
		}

		var expected *time.Time
		if req.ExpectedClearDate != nil {
			d := domain.DateOnly(*req.ExpectedClearDate)
			expected = &d
		}
		created = domain.PDC{
			PDCID:             uuid.NewString(),
			OrgID:             orgID,
			Direction:         req.Direction,
			Number:            number,
			Status:            domain.PDCDraft,
			PartyID:           req.PartyID,
			BankAccountID:     req.BankAccountID,
			ChequeNumber:      req.ChequeNumber,
			ChequeDate:        domain.DateOnly(req.ChequeDate),
			ExpectedClearDate: expected,
			CurrencyCode:      req.CurrencyCode,
			ExchangeRate:      accounting.NormalizeRate(req.ExchangeRate),
			Amount:            amount,
			Memo:              req.Memo,
			Allocations:       allocs,
			AuditFields:       domain.NewAuditFields(actorID, s.now()),
		}
		if err := tx.InsertPDC(ctx, created); err != nil {
			return fmt.Errorf("insert pdc: %w", err)
		}
		return s.audit.Record(ctx, tx, orgID, actorID, AuditChange{
			Action:     "create",
			EntityType: pdcScope,
			EntityID:   created.PDCID,
			After:      created,
		})
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *pdcService) UpdatePDC(ctx context.Context, orgID, pdcID string, req dto.UpdatePDCRequest, actorID string) (*domain.PDC, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	amount := accounting.Round2(req.Amount)
	allocs, err := prepareAllocations(req.Allocations, amount)
	if err != nil {
		return nil, err
	}
	if err := ValidateAllocationTotal(allocs, amount); err != nil {
		return nil, err
	}

	var updated domain.PDC
	err = s.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		pdc, err := tx.FindPDCForUpdate(ctx, orgID, pdcID)
		if err != nil {
			return wrapLookup(err, pdcScope, pdcID)
		}
		if !pdc.Status.IsEditable() {
			return apperrors.NewConflictError("cheque %s is %s and can no longer be edited", pdc.Number, pdc.Status)
		}
		targets, err := s.allocations.Lock(ctx, tx, orgID, pdc.Direction.TargetKind(), allocs)
		if err != nil {
			return err
		}
		if err := ValidateAgainstOutstanding(allocs, targets, pdc.PartyID, pdc.CurrencyCode); err != nil {
			return err
		}

		before := *pdc
		var expected *time.Time
		if req.ExpectedClearDate != nil {
			d := domain.DateOnly(*req.ExpectedClearDate)
			expected = &d
		}
		pdc.BankAccountID = req.BankAccountID
		pdc.ChequeNumber = req.ChequeNumber
		pdc.ChequeDate = domain.DateOnly(req.ChequeDate)
		pdc.ExpectedClearDate = expected
		pdc.Amount = amount
		pdc.Memo = req.Memo
		pdc.Allocations = allocs
		pdc.Touch(actorID, s.now())
		if err := tx.UpdatePDC(ctx, *pdc); err != nil {
			return fmt.Errorf("update pdc: %w", err)
		}
		updated = *pdc
		return s.audit.Record(ctx, tx, orgID, actorID, AuditChange{
			Action:     "update",
			EntityType: pdcScope,
			EntityID:   pdcID,
			Before:     before,
			After:      updated,
		})
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *pdcService) GetPDC(ctx context.Context, orgID, pdcID string) (*domain.PDC, error) {
	pdc, err := s.docReader.FindPDCByID(ctx, orgID, pdcID)
	if err != nil {
		return nil, wrapLookup(err, pdcScope, pdcID)
	}
	return pdc, nil
}

// TransitionPDC applies one lifecycle action. Actions that find the cheque
// already in their target state return it unchanged, except bounce.
func (s *pdcService) TransitionPDC(ctx context.Context, req dto.TransitionPDCRequest) (*dto.PDCTransitionResult, error) {
	target, ok := req.Action.Target()
	if !ok {
		return nil, apperrors.NewValidationError("unknown cheque action %q", req.Action)
	}
	actionDate := s.today()
	if req.ActionDate != nil {
		actionDate = domain.DateOnly(*req.ActionDate)
	}

	key := domain.IdempotencyKey{OrgID: req.OrgID, Scope: pdcScope + "." + string(req.Action), ActorID: req.ActorID, Token: req.IdempotencyToken}
	// Only a caller-supplied date is part of the fingerprint.
	payload := transitionPayload{PDCID: req.PDCID, Action: req.Action}
	if req.ActionDate != nil {
		payload.ActionDate = actionDate.Format(dateLayout)
	}
	res, info, err := runIdempotent(ctx, s.idempotency, key, payload, func(ctx context.Context, tx portsrepo.TxStore) (dto.PDCTransitionResult, error) {
		org, err := s.loadOrg(ctx, tx, req.OrgID)
		if err != nil {
			return dto.PDCTransitionResult{}, err
		}
		pdc, err := tx.FindPDCForUpdate(ctx, req.OrgID, req.PDCID)
		if err != nil {
			return dto.PDCTransitionResult{}, wrapLookup(err, pdcScope, req.PDCID)
		}

		switch req.Action {
		case domain.PDCActionClear:
			return s.clear(ctx, tx, org, pdc, req.ActorID, actionDate)
		case domain.PDCActionBounce:
			return s.bounce(ctx, tx, org, pdc, req.ActorID, actionDate)
		default:
			return s.move(ctx, tx, pdc, req.Action, target, req.ActorID, actionDate)
		}
	})
	if err != nil {
		return nil, err
	}
	res.Replayed, res.Body = info.Replayed, info.Body
	return &res, nil
}

// move handles the transitions that never touch the GL.
func (s *pdcService) move(ctx context.Context, tx portsrepo.TxStore, pdc *domain.PDC, action domain.PDCAction, target domain.PDCStatus, actorID string, actionDate time.Time) (dto.PDCTransitionResult, error) {
	if pdc.Status == target {
		return dto.PDCTransitionResult{PDC: *pdc}, nil
	}
	if !domain.CanTransition(pdc.Status, target) {
		return dto.PDCTransitionResult{}, &apperrors.InvalidTransitionError{Entity: "cheque " + pdc.Number, From: string(pdc.Status), To: string(target)}
	}

	before := *pdc
	at := actionDate
	switch target {
	case domain.PDCScheduled:
		pdc.ScheduledAt = &at
	case domain.PDCDeposited:
		pdc.DepositedAt = &at
	case domain.PDCCancelled:
		pdc.CancelledAt = &at
	}
	pdc.Status = target
	if err := s.save(ctx, tx, before, pdc, string(action), actorID, nil); err != nil {
		return dto.PDCTransitionResult{}, err
	}
	return dto.PDCTransitionResult{PDC: *pdc}, nil
}

func (s *pdcService) clear(ctx context.Context, tx portsrepo.TxStore, org *domain.Organization, pdc *domain.PDC, actorID string, clearDate time.Time) (dto.PDCTransitionResult, error) {
	if pdc.Status == domain.PDCCleared {
		return dto.PDCTransitionResult{PDC: *pdc}, nil
	}
	if !domain.CanTransition(pdc.Status, domain.PDCCleared) {
		return dto.PDCTransitionResult{}, &apperrors.InvalidTransitionError{Entity: "cheque " + pdc.Number, From: string(pdc.Status), To: string(domain.PDCCleared)}
	}
	if err := s.guard.EnsureOpen(ctx, org, actorID, "pdc.clear", pdcScope, pdc.PDCID, clearDate); err != nil {
		return dto.PDCTransitionResult{}, err
	}
	if err := ValidateAllocationTotal(pdc.Allocations, pdc.Amount); err != nil {
		return dto.PDCTransitionResult{}, err
	}

	src := PostingSource{
		OrgID:         pdc.OrgID,
		ActorID:       actorID,
		SourceType:    pdc.Direction.SourceType(),
		SourceID:      pdc.PDCID,
		PostingDate:   clearDate,
		CurrencyCode:  pdc.CurrencyCode,
		ExchangeRate:  pdc.ExchangeRate,
		Memo:          fmt.Sprintf("Cheque %s cleared", pdc.ChequeNumber),
		PartyID:       pdc.PartyID,
		Amount:        pdc.Amount,
		BankAccountID: pdc.BankAccountID,
		Allocations:   pdc.Allocations,
		TargetKind:    pdc.Direction.TargetKind(),
	}
	header, err := s.orchestrator.Post(ctx, tx, src, func(ctx context.Context, tx portsrepo.TxStore, h domain.GLHeader) (*AuditChange, error) {
		before := *pdc
		headerID := h.HeaderID
		at := clearDate
		pdc.Status = domain.PDCCleared
		pdc.ClearingHeaderID = &headerID
		pdc.ClearedAt = &at
		pdc.Touch(actorID, s.now())
		if err := tx.UpdatePDC(ctx, *pdc); err != nil {
			return nil, fmt.Errorf("update pdc: %w", err)
		}
		return &AuditChange{Action: string(domain.PDCActionClear), EntityType: pdcScope, EntityID: pdc.PDCID, Before: before, After: *pdc}, nil
	})
	if err != nil {
		return dto.PDCTransitionResult{}, err
	}
	return dto.PDCTransitionResult{PDC: *pdc, Header: header}, nil
}

func (s *pdcService) bounce(ctx context.Context, tx portsrepo.TxStore, org *domain.Organization, pdc *domain.PDC, actorID string, bounceDate time.Time) (dto.PDCTransitionResult, error) {
	if pdc.Status == domain.PDCBounced {
		return dto.PDCTransitionResult{}, apperrors.NewConflictError("cheque already bounced")
	}
	if !domain.CanTransition(pdc.Status, domain.PDCBounced) {
		return dto.PDCTransitionResult{}, &apperrors.InvalidTransitionError{Entity: "cheque " + pdc.Number, From: string(pdc.Status), To: string(domain.PDCBounced)}
	}

	dates := []time.Time{bounceDate}
	if pdc.Status == domain.PDCCleared && pdc.ClearedAt != nil {
		dates = append(dates, *pdc.ClearedAt)
	}
	if err := s.guard.EnsureOpen(ctx, org, actorID, "pdc.bounce", pdcScope, pdc.PDCID, dates...); err != nil {
		return dto.PDCTransitionResult{}, err
	}

	before := *pdc
	var reversal *domain.GLHeader
	if pdc.Status == domain.PDCCleared {
		if pdc.ClearingHeaderID == nil {
			return dto.PDCTransitionResult{}, fmt.Errorf("%w: cleared cheque %s has no clearing header", apperrors.ErrInternal, pdc.PDCID)
		}
		var err error
		reversal, err = s.reversals.Reverse(ctx, tx, pdc.OrgID, *pdc.ClearingHeaderID, actorID, fmt.Sprintf("Cheque %s bounced", pdc.ChequeNumber), bounceDate)
		if err != nil {
			return dto.PDCTransitionResult{}, err
		}
		kind := pdc.Direction.TargetKind()
		targets, err := s.allocations.Lock(ctx, tx, pdc.OrgID, kind, pdc.Allocations)
		if err != nil {
			return dto.PDCTransitionResult{}, err
		}
		if err := s.allocations.Unwind(ctx, tx, pdc.OrgID, kind, pdc.Allocations, targets); err != nil {
			return dto.PDCTransitionResult{}, err
		}
		reversalID := reversal.HeaderID
		pdc.ReversalHeaderID = &reversalID
		s.LogInfo(ctx, "Cleared cheque bounced",
			slog.String("org_id", pdc.OrgID),
			slog.String("pdc_id", pdc.PDCID),
			slog.String("reversal_header_id", reversalID))
	}

	at := bounceDate
	pdc.Status = domain.PDCBounced
	pdc.BouncedAt = &at
	var meta map[string]string
	if reversal != nil {
		meta = map[string]string{"reversalHeaderID": reversal.HeaderID}
	}
	if err := s.save(ctx, tx, before, pdc, string(domain.PDCActionBounce), actorID, meta); err != nil {
		return dto.PDCTransitionResult{}, err
	}
	return dto.PDCTransitionResult{PDC: *pdc, ReversalHeader: reversal}, nil
}

func (s *pdcService) save(ctx context.Context, tx portsrepo.TxStore, before domain.PDC, pdc *domain.PDC, action, actorID string, meta map[string]string) error {
	pdc.Touch(actorID, s.now())
	if err := tx.UpdatePDC(ctx, *pdc); err != nil {
		return fmt.Errorf("update pdc: %w", err)
	}
	return s.audit.Record(ctx, tx, pdc.OrgID, actorID, AuditChange{
		Action:     action,
		EntityType: pdcScope,
		EntityID:   pdc.PDCID,
		Before:     before,
		After:      *pdc,
		Meta:       meta,
	})
}
