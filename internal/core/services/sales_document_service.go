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
	"github.com/shopspring/decimal"
)

type salesProfile struct {
	docType    domain.DocumentType
	sourceType domain.SourceType
	prefix     string
	scope      string
}

var salesProfiles = map[domain.TargetKind]salesProfile{
	domain.TargetInvoice: {docType: domain.DocInvoice, sourceType: domain.SourceInvoice, prefix: "INV", scope: "invoice"},
	domain.TargetBill:    {docType: domain.DocBill, sourceType: domain.SourceBill, prefix: "BILL", scope: "bill"},
}

// salesDocumentService manages invoices and bills.
type salesDocumentService struct {
	*ledgerEngine
}

func newSalesDocumentService(engine *ledgerEngine) *salesDocumentService {
	return &salesDocumentService{ledgerEngine: engine}
}

var _ portssvc.SalesDocumentSvcFacade = (*salesDocumentService)(nil)

func salesProfileFor(kind domain.TargetKind) (salesProfile, error) {
	p, ok := salesProfiles[kind]
	if !ok {
		return salesProfile{}, apperrors.NewValidationError("unknown document kind %q", kind)
	}
	return p, nil
}

// toDocumentLines rounds line amounts and returns the lines with their total.
func toDocumentLines(inputs []dto.DocumentLineInput) ([]domain.DocumentLine, decimal.Decimal, error) {
	if len(inputs) == 0 {
		return nil, decimal.Zero, apperrors.NewValidationError("at least one line is required")
	}
	lines := make([]domain.DocumentLine, len(inputs))
	amounts := make([]decimal.Decimal, len(inputs))
	for i, in := range inputs {
		amount := accounting.Round2(in.Amount)
		if !amount.IsPositive() {
			return nil, decimal.Zero, apperrors.NewValidationError("line %d amount must be positive", i+1)
		}
		lines[i] = domain.DocumentLine{AccountID: in.AccountID, Description: in.Description, Amount: amount}
		amounts[i] = amount
	}
	return lines, accounting.Sum2(amounts...), nil
}

func lineAccountIDs(lines []domain.DocumentLine) []string {
	ids := make([]string, len(lines))
	for i, l := range lines {
		ids[i] = l.AccountID
	}
	return ids
}

func toSourceLines(lines []domain.DocumentLine) []SourceLine {
	out := make([]SourceLine, len(lines))
	for i, l := range lines {
		out[i] = SourceLine{AccountID: l.AccountID, Description: l.Description, Amount: l.Amount}
	}
	return out
}

func (s *salesDocumentService) CreateSalesDocument(ctx context.Context, orgID string, kind domain.TargetKind, req dto.CreateSalesDocumentRequest, actorID string) (*domain.SalesDocument, error) {
	profile, err := salesProfileFor(kind)
	if err != nil {
		return nil, err
	}
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	lines, total, err := toDocumentLines(req.Lines)
	if err != nil {
		return nil, err
	}
	if req.DueDate != nil && domain.DateOnly(*req.DueDate).Before(domain.DateOnly(req.DocumentDate)) {
		return nil, apperrors.NewValidationError("due date is before the document date")
	}

	var created domain.SalesDocument
	err = s.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		if _, err := s.loadOrg(ctx, tx, orgID); err != nil {
			return err
		}
		if err := s.validateLineAccounts(ctx, tx, orgID, lineAccountIDs(lines)); err != nil {
			return err
		}

		var dueDate *time.Time
		if req.DueDate != nil {
			d := domain.DateOnly(*req.DueDate)
			dueDate = &d
		}
		created = domain.SalesDocument{
			DocumentID:    uuid.NewString(),
			OrgID:         orgID,
			Kind:          kind,
			PartyID:       req.PartyID,
			DocumentDate:  domain.DateOnly(req.DocumentDate),
			DueDate:       dueDate,
			CurrencyCode:  req.CurrencyCode,
			ExchangeRate:  accounting.NormalizeRate(req.ExchangeRate),
			Memo:          req.Memo,
			Lines:         lines,
			Total:         total,
			AmountPaid:    decimal.Zero,
			PaymentStatus: domain.PaymentUnpaid,
			Status:        domain.StatusDraft,
			AuditFields:   domain.NewAuditFields(actorID, s.now()),
		}
		if err := tx.InsertSalesDocument(ctx, created); err != nil {
			return fmt.Errorf("insert %s: %w", profile.scope, err)
		}
		return s.audit.Record(ctx, tx, orgID, actorID, AuditChange{
			Action:     "create",
			EntityType: profile.scope,
			EntityID:   created.DocumentID,
			After:      created,
		})
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Draft document created",
		slog.String("org_id", orgID),
		slog.String("kind", string(kind)),
		slog.String("document_id", created.DocumentID))
	return &created, nil
}

func (s *salesDocumentService) GetSalesDocument(ctx context.Context, orgID string, kind domain.TargetKind, documentID string) (*domain.SalesDocument, error) {
	profile, err := salesProfileFor(kind)
	if err != nil {
		return nil, err
	}
	doc, err := s.docReader.FindSalesDocumentByID(ctx, orgID, kind, documentID)
	if err != nil {
		return nil, wrapLookup(err, profile.scope, documentID)
	}
	return doc, nil
}

func salesSummary(profile salesProfile, d *domain.SalesDocument) domain.DocumentSummary {
	return domain.DocumentSummary{
		DocumentType: profile.docType,
		DocumentID:   d.DocumentID,
		Number:       d.Number,
		Status:       d.Status,
		Amount:       d.Total,
	}
}

func (s *salesDocumentService) handler(kind domain.TargetKind) documentHandler {
	profile := salesProfiles[kind]
	return documentHandler{
		scope: profile.scope,
		post: func(ctx context.Context, tx portsrepo.TxStore, req dto.PostDocumentRequest) (*dto.PostDocumentResult, error) {
			return s.post(ctx, tx, profile, kind, req)
		},
		void: func(ctx context.Context, tx portsrepo.TxStore, req dto.VoidDocumentRequest, voidDate time.Time) (*dto.VoidDocumentResult, error) {
			return s.void(ctx, tx, profile, kind, req, voidDate)
		},
	}
}

func (s *salesDocumentService) post(ctx context.Context, tx portsrepo.TxStore, profile salesProfile, kind domain.TargetKind, req dto.PostDocumentRequest) (*dto.PostDocumentResult, error) {
	org, err := s.loadOrg(ctx, tx, req.OrgID)
	if err != nil {
		return nil, err
	}
	doc, err := tx.FindSalesDocumentForUpdate(ctx, req.OrgID, kind, req.DocumentID)
	if err != nil {
		return nil, wrapLookup(err, profile.scope, req.DocumentID)
	}
	switch doc.Status {
	case domain.StatusPosted:
		return nil, fmt.Errorf("%w: %s %s", apperrors.ErrAlreadyPosted, profile.scope, doc.Number)
	case domain.StatusVoid:
		return nil, apperrors.NewValidationError("%s %s is void", profile.scope, doc.DocumentID)
	}
	if err := s.guard.EnsureOpen(ctx, org, req.ActorID, profile.scope+".post", profile.scope, doc.DocumentID, doc.DocumentDate); err != nil {
		return nil, err
	}

	src := PostingSource{
		OrgID:        req.OrgID,
		ActorID:      req.ActorID,
		SourceType:   profile.sourceType,
		SourceID:     doc.DocumentID,
		PostingDate:  doc.DocumentDate,
		CurrencyCode: doc.CurrencyCode,
		ExchangeRate: doc.ExchangeRate,
		Memo:         doc.Memo,
		PartyID:      doc.PartyID,
		Lines:        toSourceLines(doc.Lines),
		TargetKind:   kind,
	}
	header, err := s.orchestrator.Post(ctx, tx, src, func(ctx context.Context, tx portsrepo.TxStore, h domain.GLHeader) (*AuditChange, error) {
		before := *doc
		number, err := s.nextNumber(ctx, tx, req.OrgID, profile.prefix)
		if err != nil {
			return nil, err
		}
		headerID := h.HeaderID
		doc.Number = number
		doc.Status = domain.StatusPosted
		doc.GLHeaderID = &headerID
		doc.Touch(req.ActorID, s.now())
		if err := tx.UpdateSalesDocument(ctx, *doc); err != nil {
			return nil, fmt.Errorf("update %s: %w", profile.scope, err)
		}
		return &AuditChange{Action: "post", EntityType: profile.scope, EntityID: doc.DocumentID, Before: before, After: *doc}, nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.PostDocumentResult{Header: *header, Document: salesSummary(profile, doc)}, nil
}

func (s *salesDocumentService) void(ctx context.Context, tx portsrepo.TxStore, profile salesProfile, kind domain.TargetKind, req dto.VoidDocumentRequest, voidDate time.Time) (*dto.VoidDocumentResult, error) {
	org, err := s.loadOrg(ctx, tx, req.OrgID)
	if err != nil {
		return nil, err
	}
	doc, err := tx.FindSalesDocumentForUpdate(ctx, req.OrgID, kind, req.DocumentID)
	if err != nil {
		return nil, wrapLookup(err, profile.scope, req.DocumentID)
	}
	switch doc.Status {
	case domain.StatusDraft:
		return nil, apperrors.NewValidationError("%s %s is not posted", profile.scope, doc.DocumentID)
	case domain.StatusVoid:
		return nil, fmt.Errorf("%w: %s %s", apperrors.ErrAlreadyReversed, profile.scope, doc.Number)
	}
	if !doc.AmountPaid.IsZero() {
		return nil, apperrors.NewConflictError("%s %s has %s allocated and cannot be voided", profile.scope, doc.Number, doc.AmountPaid.StringFixed(2))
	}
	if err := s.guard.EnsureOpen(ctx, org, req.ActorID, profile.scope+".void", profile.scope, doc.DocumentID, doc.DocumentDate, voidDate); err != nil {
		return nil, err
	}
	if doc.GLHeaderID == nil {
		return nil, fmt.Errorf("%w: posted %s %s has no gl header", apperrors.ErrInternal, profile.scope, doc.DocumentID)
	}

	reversal, err := s.reversals.Reverse(ctx, tx, req.OrgID, *doc.GLHeaderID, req.ActorID, req.Memo, voidDate)
	if err != nil {
		return nil, err
	}

	before := *doc
	doc.Status = domain.StatusVoid
	doc.Touch(req.ActorID, s.now())
	if err := tx.UpdateSalesDocument(ctx, *doc); err != nil {
		return nil, fmt.Errorf("update %s: %w", profile.scope, err)
	}
	if err := s.audit.Record(ctx, tx, req.OrgID, req.ActorID, AuditChange{
		Action:     "void",
		EntityType: profile.scope,
		EntityID:   doc.DocumentID,
		Before:     before,
		After:      *doc,
		Meta:       map[string]string{"reversalHeaderID": reversal.HeaderID},
	}); err != nil {
		return nil, err
	}
	return &dto.VoidDocumentResult{Document: salesSummary(profile, doc), ReversalHeader: *reversal}, nil
}
