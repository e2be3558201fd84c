package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	portsrepo "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/repositories"
	portssvc "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/services"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/dto"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

const creditNoteScope = "credit_note"

// creditNoteService manages credit notes, their applications to invoices and refunds.
type creditNoteService struct {
	*ledgerEngine
}

func newCreditNoteService(engine *ledgerEngine) *creditNoteService {
	return &creditNoteService{ledgerEngine: engine}
}

var _ portssvc.CreditNoteSvcFacade = (*creditNoteService)(nil)

type applyPayload struct {
	CreditNoteID string              `json:"creditNoteID"`
	Allocations  []domain.Allocation `json:"allocations"`
}

type refundPayload struct {
	CreditNoteID  string          `json:"creditNoteID"`
	BankAccountID string          `json:"bankAccountID"`
	Amount        decimal.Decimal `json:"amount"`
	RefundDate    string          `json:"refundDate"`
}

func creditNoteSummary(n *domain.CreditNote) domain.DocumentSummary {
	return domain.DocumentSummary{
		DocumentType: domain.DocCreditNote,
		DocumentID:   n.CreditNoteID,
		Number:       n.Number,
		Status:       n.Status,
		Amount:       n.Total,
	}
}

func (s *creditNoteService) CreateCreditNote(ctx context.Context, orgID string, req dto.CreateCreditNoteRequest, actorID string) (*domain.CreditNote, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	lines, total, err := toDocumentLines(req.Lines)
	if err != nil {
		return nil, err
	}

	var created domain.CreditNote
	err = s.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		if _, err := s.loadOrg(ctx, tx, orgID); err != nil {
			return err
		}
		if err := s.validateLineAccounts(ctx, tx, orgID, lineAccountIDs(lines)); err != nil {
			return err
		}
		created = domain.CreditNote{
			CreditNoteID:   uuid.NewString(),
			OrgID:          orgID,
			CustomerID:     req.CustomerID,
			NoteDate:       domain.DateOnly(req.NoteDate),
			CurrencyCode:   req.CurrencyCode,
			ExchangeRate:   accounting.NormalizeRate(req.ExchangeRate),
			Memo:           req.Memo,
			Lines:          lines,
			Total:          total,
			AmountApplied:  decimal.Zero,
			AmountRefunded: decimal.Zero,
			Status:         domain.StatusDraft,
			AuditFields:    domain.NewAuditFields(actorID, s.now()),
		}
		if err := tx.InsertCreditNote(ctx, created); err != nil {
			return fmt.Errorf("insert credit note: %w", err)
		}
		return s.audit.Record(ctx, tx, orgID, actorID, AuditChange{
			Action:     "create",
			EntityType: creditNoteScope,
			EntityID:   created.CreditNoteID,
			After:      created,
		})
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *creditNoteService) GetCreditNote(ctx context.Context, orgID, creditNoteID string) (*domain.CreditNote, error) {
	note, err := s.docReader.FindCreditNoteByID(ctx, orgID, creditNoteID)
	if err != nil {
		return nil, wrapLookup(err, "credit note", creditNoteID)
	}
	return note, nil
}

// ApplyCreditNote settles invoices of the same customer from the note's available credit.
func (s *creditNoteService) ApplyCreditNote(ctx context.Context, orgID, creditNoteID string, req dto.ApplyCreditNoteRequest, actorID, idempotencyToken string) (*dto.CreditNoteResult, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	allocs, err := NormalizeAllocations(ToAllocations(req.Allocations))
	if err != nil {
		return nil, err
	}
	total := AllocationTotal(allocs)

	key := domain.IdempotencyKey{OrgID: orgID, Scope: creditNoteScope + ".apply", ActorID: actorID, Token: idempotencyToken}
	payload := applyPayload{CreditNoteID: creditNoteID, Allocations: allocs}
	res, info, err := runIdempotent(ctx, s.idempotency, key, payload, func(ctx context.Context, tx portsrepo.TxStore) (dto.CreditNoteResult, error) {
		note, err := s.lockPostedNote(ctx, tx, orgID, creditNoteID)
		if err != nil {
			return dto.CreditNoteResult{}, err
		}
		if total.GreaterThan(note.Available()) {
			return dto.CreditNoteResult{}, &apperrors.AllocationExceedsOutstandingError{TargetID: note.CreditNoteID, Amount: total, Outstanding: note.Available()}
		}

		targets, err := s.allocations.Lock(ctx, tx, orgID, domain.TargetInvoice, allocs)
		if err != nil {
			return dto.CreditNoteResult{}, err
		}
		if err := ValidateAgainstOutstanding(allocs, targets, note.CustomerID, note.CurrencyCode); err != nil {
			return dto.CreditNoteResult{}, err
		}
		if err := s.allocations.Apply(ctx, tx, orgID, domain.TargetInvoice, allocs, targets); err != nil {
			return dto.CreditNoteResult{}, err
		}

		before := *note
		now := s.now()
		note.Applications = mergeApplications(note.Applications, allocs, now)
		note.AmountApplied = accounting.Add2(note.AmountApplied, total)
		note.Touch(actorID, now)
		if err := tx.UpdateCreditNote(ctx, *note); err != nil {
			return dto.CreditNoteResult{}, fmt.Errorf("update credit note: %w", err)
		}
		if err := s.audit.Record(ctx, tx, orgID, actorID, AuditChange{
			Action:     "apply",
			EntityType: creditNoteScope,
			EntityID:   note.CreditNoteID,
			Before:     before,
			After:      *note,
		}); err != nil {
			return dto.CreditNoteResult{}, err
		}
		return dto.CreditNoteResult{CreditNote: *note}, nil
	})
	if err != nil {
		return nil, err
	}
	res.Replayed, res.Body = info.Replayed, info.Body
	return &res, nil
}

// mergeApplications keeps one application per invoice; a repeat application
// adds to the existing row.
func mergeApplications(existing []domain.CreditNoteApplication, allocs []domain.Allocation, at time.Time) []domain.CreditNoteApplication {
	out := append([]domain.CreditNoteApplication(nil), existing...)
	index := make(map[string]int, len(out))
	for i, a := range out {
		index[a.InvoiceID] = i
	}
	for _, a := range allocs {
		if i, ok := index[a.TargetID]; ok {
			out[i].Amount = accounting.Add2(out[i].Amount, a.Amount)
			out[i].AppliedAt = at
			continue
		}
		index[a.TargetID] = len(out)
		out = append(out, domain.CreditNoteApplication{
			ApplicationID: uuid.NewString(),
			InvoiceID:     a.TargetID,
			Amount:        a.Amount,
			AppliedAt:     at,
		})
	}
	return out
}

// RefundCreditNote pays available credit back through a bank account.
func (s *creditNoteService) RefundCreditNote(ctx context.Context, orgID, creditNoteID string, req dto.RefundCreditNoteRequest, actorID, idempotencyToken string) (*dto.CreditNoteResult, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	amount := accounting.Round2(req.Amount)
	if !amount.IsPositive() {
		return nil, apperrors.NewValidationError("refund amount must be positive")
	}
	refundDate := domain.DateOnly(req.RefundDate)

	key := domain.IdempotencyKey{OrgID: orgID, Scope: creditNoteScope + ".refund", ActorID: actorID, Token: idempotencyToken}
	payload := refundPayload{CreditNoteID: creditNoteID, BankAccountID: req.BankAccountID, Amount: amount, RefundDate: refundDate.Format(dateLayout)}
	res, info, err := runIdempotent(ctx, s.idempotency, key, payload, func(ctx context.Context, tx portsrepo.TxStore) (dto.CreditNoteResult, error) {
		org, err := s.loadOrg(ctx, tx, orgID)
		if err != nil {
			return dto.CreditNoteResult{}, err
		}
		note, err := s.lockPostedNote(ctx, tx, orgID, creditNoteID)
		if err != nil {
			return dto.CreditNoteResult{}, err
		}
		if amount.GreaterThan(note.Available()) {
			return dto.CreditNoteResult{}, &apperrors.AllocationExceedsOutstandingError{TargetID: note.CreditNoteID, Amount: amount, Outstanding: note.Available()}
		}
		refundID := uuid.NewString()
		if err := s.guard.EnsureOpen(ctx, org, actorID, creditNoteScope+".refund", creditNoteScope, note.CreditNoteID, refundDate); err != nil {
			return dto.CreditNoteResult{}, err
		}

		src := PostingSource{
			OrgID:         orgID,
			ActorID:       actorID,
			SourceType:    domain.SourceCreditNoteRefund,
			SourceID:      refundID,
			PostingDate:   refundDate,
			CurrencyCode:  note.CurrencyCode,
			ExchangeRate:  note.ExchangeRate,
			Memo:          fmt.Sprintf("Refund of credit note %s", note.Number),
			PartyID:       note.CustomerID,
			Amount:        amount,
			BankAccountID: req.BankAccountID,
		}
		header, err := s.orchestrator.Post(ctx, tx, src, func(ctx context.Context, tx portsrepo.TxStore, h domain.GLHeader) (*AuditChange, error) {
			before := *note
			note.Refunds = append(append([]domain.CreditNoteRefund(nil), note.Refunds...), domain.CreditNoteRefund{
				RefundID:      refundID,
				BankAccountID: req.BankAccountID,
				Amount:        amount,
				RefundDate:    refundDate,
				GLHeaderID:    h.HeaderID,
			})
			note.AmountRefunded = accounting.Add2(note.AmountRefunded, amount)
			note.Touch(actorID, s.now())
			if err := tx.UpdateCreditNote(ctx, *note); err != nil {
				return nil, fmt.Errorf("update credit note: %w", err)
			}
			return &AuditChange{Action: "refund", EntityType: creditNoteScope, EntityID: note.CreditNoteID, Before: before, After: *note}, nil
		})
		if err != nil {
			return dto.CreditNoteResult{}, err
		}
		return dto.CreditNoteResult{CreditNote: *note, Header: header}, nil
	})
	if err != nil {
		return nil, err
	}
	res.Replayed, res.Body = info.Replayed, info.Body
	return &res, nil
}

func (s *creditNoteService) lockPostedNote(ctx context.Context, tx portsrepo.CreditNoteTxRepository, orgID, creditNoteID string) (*domain.CreditNote, error) {
	note, err := tx.FindCreditNoteForUpdate(ctx, orgID, creditNoteID)
	if err != nil {
		return nil, wrapLookup(err, "credit note", creditNoteID)
	}
	if note.Status != domain.StatusPosted {
		return nil, apperrors.NewValidationError("credit note %s is %s", creditNoteID, note.Status)
	}
	return note, nil
}

func (s *creditNoteService) handler() documentHandler {
	return documentHandler{scope: creditNoteScope, post: s.post, void: s.void}
}

func (s *creditNoteService) post(ctx context.Context, tx portsrepo.TxStore, req dto.PostDocumentRequest) (*dto.PostDocumentResult, error) {
	org, err := s.loadOrg(ctx, tx, req.OrgID)
	if err != nil {
		return nil, err
	}
	note, err := tx.FindCreditNoteForUpdate(ctx, req.OrgID, req.DocumentID)
	if err != nil {
		return nil, wrapLookup(err, "credit note", req.DocumentID)
	}
	switch note.Status {
	case domain.StatusPosted:
		return nil, fmt.Errorf("%w: credit note %s", apperrors.ErrAlreadyPosted, note.Number)
	case domain.StatusVoid:
		return nil, apperrors.NewValidationError("credit note %s is void", note.CreditNoteID)
	}
	if err := s.guard.EnsureOpen(ctx, org, req.ActorID, creditNoteScope+".post", creditNoteScope, note.CreditNoteID, note.NoteDate); err != nil {
		return nil, err
	}

	src := PostingSource{
		OrgID:        req.OrgID,
		ActorID:      req.ActorID,
		SourceType:   domain.SourceCreditNote,
		SourceID:     note.CreditNoteID,
		PostingDate:  note.NoteDate,
		CurrencyCode: note.CurrencyCode,
		ExchangeRate: note.ExchangeRate,
		Memo:         note.Memo,
		PartyID:      note.CustomerID,
		Lines:        toSourceLines(note.Lines),
	}
	header, err := s.orchestrator.Post(ctx, tx, src, func(ctx context.Context, tx portsrepo.TxStore, h domain.GLHeader) (*AuditChange, error) {
		before := *note
		number, err := s.nextNumber(ctx, tx, req.OrgID, "CN")
		if err != nil {
			return nil, err
		}
		headerID := h.HeaderID
		note.Number = number
		note.Status = domain.StatusPosted
		note.GLHeaderID = &headerID
		note.Touch(req.ActorID, s.now())
		if err := tx.UpdateCreditNote(ctx, *note); err != nil {
			return nil, fmt.Errorf("update credit note: %w", err)
		}
		return &AuditChange{Action: "post", EntityType: creditNoteScope, EntityID: note.CreditNoteID, Before: before, After: *note}, nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.PostDocumentResult{Header: *header, Document: creditNoteSummary(note)}, nil
}

func (s *creditNoteService) void(ctx context.Context, tx portsrepo.TxStore, req dto.VoidDocumentRequest, voidDate time.Time) (*dto.VoidDocumentResult, error) {
	org, err := s.loadOrg(ctx, tx, req.OrgID)
	if err != nil {
		return nil, err
	}
	note, err := tx.FindCreditNoteForUpdate(ctx, req.OrgID, req.DocumentID)
	if err != nil {
		return nil, wrapLookup(err, "credit note", req.DocumentID)
	}
	switch note.Status {
	case domain.StatusDraft:
		return nil, apperrors.NewValidationError("credit note %s is not posted", note.CreditNoteID)
	case domain.StatusVoid:
		return nil, fmt.Errorf("%w: credit note %s", apperrors.ErrAlreadyReversed, note.Number)
	}
	if !note.AmountApplied.IsZero() || !note.AmountRefunded.IsZero() {
		return nil, apperrors.NewConflictError("credit note %s has been applied or refunded", note.Number)
	}
	if err := s.guard.EnsureOpen(ctx, org, req.ActorID, creditNoteScope+".void", creditNoteScope, note.CreditNoteID, note.NoteDate, voidDate); err != nil {
		return nil, err
	}
	if note.GLHeaderID == nil {
		return nil, fmt.Errorf("%w: posted credit note %s has no gl header", apperrors.ErrInternal, note.CreditNoteID)
	}

	reversal, err := s.reversals.Reverse(ctx, tx, req.OrgID, *note.GLHeaderID, req.ActorID, req.Memo, voidDate)
	if err != nil {
		return nil, err
	}

	before := *note
	note.Status = domain.StatusVoid
	note.Touch(req.ActorID, s.now())
	if err := tx.UpdateCreditNote(ctx, *note); err != nil {
		return nil, fmt.Errorf("update credit note: %w", err)
	}
	if err := s.audit.Record(ctx, tx, req.OrgID, req.ActorID, AuditChange{
		Action:     "void",
		EntityType: creditNoteScope,
		EntityID:   note.CreditNoteID,
		Before:     before,
		After:      *note,
		Meta:       map[string]string{"reversalHeaderID": reversal.HeaderID},
	}); err != nil {
		return nil, err
	}
	return &dto.VoidDocumentResult{Document: creditNoteSummary(note), ReversalHeader: *reversal}, nil
}
