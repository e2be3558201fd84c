package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	portsrepo "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/repositories"
	portssvc "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/services"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/dto"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

const openingBalanceScope = "opening_balance"

type openingBalanceService struct {
	*ledgerEngine
}

func newOpeningBalanceService(engine *ledgerEngine) *openingBalanceService {
	return &openingBalanceService{ledgerEngine: engine}
}

var _ portssvc.OpeningBalanceSvcFacade = (*openingBalanceService)(nil)

func toOpeningBalanceLines(inputs []dto.OpeningBalanceLineInput) ([]domain.OpeningBalanceLine, error) {
	if len(inputs) == 0 {
		return nil, apperrors.NewValidationError("at least one line is required")
	}
	lines := make([]domain.OpeningBalanceLine, len(inputs))
	for i, in := range inputs {
		debit, credit := accounting.Round2(in.Debit), accounting.Round2(in.Credit)
		if debit.IsNegative() || credit.IsNegative() || debit.IsPositive() == credit.IsPositive() {
			return nil, apperrors.NewValidationError("line %d must have exactly one positive side", i+1)
		}
		lines[i] = domain.OpeningBalanceLine{
			AccountID:   in.AccountID,
			Description: in.Description,
			Debit:       debit,
			Credit:      credit,
			CustomerID:  in.CustomerID,
			VendorID:    in.VendorID,
		}
	}
	return lines, nil
}

func (s *openingBalanceService) CreateOpeningBalance(ctx context.Context, orgID string, req dto.CreateOpeningBalanceRequest, actorID string) (*domain.OpeningBalanceBatch, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	lines, err := toOpeningBalanceLines(req.Lines)
	if err != nil {
		return nil, err
	}

	var created domain.OpeningBalanceBatch
	err = s.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		if _, err := s.loadOrg(ctx, tx, orgID); err != nil {
			return err
		}
		ids := make([]string, len(lines))
		for i, l := range lines {
			ids[i] = l.AccountID
		}
		if err := s.validateLineAccounts(ctx, tx, orgID, ids); err != nil {
			return err
		}
		number, err := s.nextNumber(ctx, tx, orgID, "OB")
		if err != nil {
			return err
		}
		created = domain.OpeningBalanceBatch{
			BatchID:      uuid.NewString(),
			OrgID:        orgID,
			Number:       number,
			AsOfDate:     domain.DateOnly(req.AsOfDate),
			CurrencyCode: req.CurrencyCode,
			Memo:         req.Memo,
			Lines:        lines,
			Status:       domain.StatusDraft,
			AuditFields:  domain.NewAuditFields(actorID, s.now()),
		}
		if err := tx.InsertOpeningBalance(ctx, created); err != nil {
			return fmt.Errorf("insert opening balance: %w", err)
		}
		return s.audit.Record(ctx, tx, orgID, actorID, AuditChange{
			Action:     "create",
			EntityType: openingBalanceScope,
			EntityID:   created.BatchID,
			After:      created,
		})
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *openingBalanceService) GetOpeningBalance(ctx context.Context, orgID, batchID string) (*domain.OpeningBalanceBatch, error) {
	batch, err := s.docReader.FindOpeningBalanceByID(ctx, orgID, batchID)
	if err != nil {
		return nil, wrapLookup(err, "opening balance", batchID)
	}
	return batch, nil
}

// Opening balances are posted once and never voided.
func (s *openingBalanceService) handler() documentHandler {
	return documentHandler{scope: openingBalanceScope, post: s.post}
}

func (s *openingBalanceService) post(ctx context.Context, tx portsrepo.TxStore, req dto.PostDocumentRequest) (*dto.PostDocumentResult, error) {
	org, err := s.loadOrg(ctx, tx, req.OrgID)
	if err != nil {
		return nil, err
	}
	batch, err := tx.FindOpeningBalanceForUpdate(ctx, req.OrgID, req.DocumentID)
	if err != nil {
		return nil, wrapLookup(err, "opening balance", req.DocumentID)
	}
	if batch.Status == domain.StatusPosted {
		return nil, fmt.Errorf("%w: opening balance %s", apperrors.ErrAlreadyPosted, batch.Number)
	}
	if err := s.guard.EnsureOpen(ctx, org, req.ActorID, openingBalanceScope+".post", openingBalanceScope, batch.BatchID, batch.AsOfDate); err != nil {
		return nil, err
	}

	lines := make([]SourceLine, len(batch.Lines))
	for i, l := range batch.Lines {
		lines[i] = SourceLine{
			AccountID:   l.AccountID,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
			CustomerID:  l.CustomerID,
			VendorID:    l.VendorID,
		}
	}
	src := PostingSource{
		OrgID:        req.OrgID,
		ActorID:      req.ActorID,
		SourceType:   domain.SourceOpeningBalance,
		SourceID:     batch.BatchID,
		PostingDate:  batch.AsOfDate,
		CurrencyCode: batch.CurrencyCode,
		ExchangeRate: decimal.NewFromInt(1),
		Memo:         batch.Memo,
		Lines:        lines,
	}
	header, err := s.orchestrator.Post(ctx, tx, src, func(ctx context.Context, tx portsrepo.TxStore, h domain.GLHeader) (*AuditChange, error) {
		before := *batch
		headerID := h.HeaderID
		batch.Status = domain.StatusPosted
		batch.GLHeaderID = &headerID
		batch.Touch(req.ActorID, s.now())
		if err := tx.UpdateOpeningBalance(ctx, *batch); err != nil {
			return nil, fmt.Errorf("update opening balance: %w", err)
		}
		return &AuditChange{Action: "post", EntityType: openingBalanceScope, EntityID: batch.BatchID, Before: before, After: *batch}, nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.PostDocumentResult{
		Header: *header,
		Document: domain.DocumentSummary{
			DocumentType: domain.DocOpeningBalance,
			DocumentID:   batch.BatchID,
			Number:       batch.Number,
			Status:       batch.Status,
			Amount:       header.TotalDebit,
		},
	}, nil
}
