package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	portsrepo "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/repositories"
	portssvc "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/services"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/dto"
)

// documentHandler posts and voids one document type inside the caller's transaction.
type documentHandler struct {
	scope string
	post  func(ctx context.Context, tx portsrepo.TxStore, req dto.PostDocumentRequest) (*dto.PostDocumentResult, error)
	void  func(ctx context.Context, tx portsrepo.TxStore, req dto.VoidDocumentRequest, voidDate time.Time) (*dto.VoidDocumentResult, error)
}

type documentService struct {
	*ledgerEngine
	handlers map[domain.DocumentType]documentHandler
}

// newDocumentService wires the post and void entry points to the per-type services.
func newDocumentService(engine *ledgerEngine, payments *paymentService, sales *salesDocumentService, notes *creditNoteService, openings *openingBalanceService) *documentService {
	return &documentService{
		ledgerEngine: engine,
		handlers: map[domain.DocumentType]documentHandler{
			domain.DocInvoice:         sales.handler(domain.TargetInvoice),
			domain.DocBill:            sales.handler(domain.TargetBill),
			domain.DocPaymentReceived: payments.handler(domain.PaymentReceived),
			domain.DocVendorPayment:   payments.handler(domain.PaymentMade),
			domain.DocCreditNote:      notes.handler(),
			domain.DocOpeningBalance:  openings.handler(),
		},
	}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

type postPayload struct {
	DocumentType domain.DocumentType `json:"documentType"`
	DocumentID   string              `json:"documentID"`
}

type voidPayload struct {
	DocumentType domain.DocumentType `json:"documentType"`
	DocumentID   string              `json:"documentID"`
	VoidDate     string              `json:"voidDate"`
	Memo         string              `json:"memo"`
}

func (s *documentService) handlerFor(docType domain.DocumentType) (documentHandler, error) {
	h, ok := s.handlers[docType]
	if !ok {
		return documentHandler{}, apperrors.NewValidationError("unsupported document type %q", docType)
	}
	return h, nil
}

// PostDocument posts a draft document, replaying the stored result for a repeated token.
func (s *documentService) PostDocument(ctx context.Context, req dto.PostDocumentRequest) (*dto.PostDocumentResult, error) {
	h, err := s.handlerFor(req.DocumentType)
	if err != nil {
		return nil, err
	}
	if req.DocumentID == "" {
		return nil, apperrors.NewValidationError("document id is required")
	}

	key := domain.IdempotencyKey{OrgID: req.OrgID, Scope: h.scope + ".post", ActorID: req.ActorID, Token: req.IdempotencyToken}
	payload := postPayload{DocumentType: req.DocumentType, DocumentID: req.DocumentID}
	res, info, err := runIdempotent(ctx, s.idempotency, key, payload, func(ctx context.Context, tx portsrepo.TxStore) (dto.PostDocumentResult, error) {
		out, err := h.post(ctx, tx, req)
		if err != nil {
			return dto.PostDocumentResult{}, err
		}
		return *out, nil
	})
	if err != nil {
		s.LogDebug(ctx, "Post document failed",
			slog.String("document_type", string(req.DocumentType)),
			slog.String("document_id", req.DocumentID),
			slog.String("error", err.Error()))
		return nil, err
	}
	res.Replayed, res.Body = info.Replayed, info.Body
	return &res, nil
}

// VoidDocument reverses a posted document. The void date defaults to today.
func (s *documentService) VoidDocument(ctx context.Context, req dto.VoidDocumentRequest) (*dto.VoidDocumentResult, error) {
	h, err := s.handlerFor(req.DocumentType)
	if err != nil {
		return nil, err
	}
	if h.void == nil {
		return nil, apperrors.NewValidationError("%s documents cannot be voided", strings.ToLower(string(req.DocumentType)))
	}
	if req.DocumentID == "" {
		return nil, apperrors.NewValidationError("document id is required")
	}

	voidDate := s.today()
	if req.VoidDate != nil {
		voidDate = domain.DateOnly(*req.VoidDate)
	}

	key := domain.IdempotencyKey{OrgID: req.OrgID, Scope: h.scope + ".void", ActorID: req.ActorID, Token: req.IdempotencyToken}
	payload := voidPayload{DocumentType: req.DocumentType, DocumentID: req.DocumentID, Memo: req.Memo}
	if req.VoidDate != nil {
		payload.VoidDate = voidDate.Format(dateLayout)
	}
	res, info, err := runIdempotent(ctx, s.idempotency, key, payload, func(ctx context.Context, tx portsrepo.TxStore) (dto.VoidDocumentResult, error) {
		out, err := h.void(ctx, tx, req, voidDate)
		if err != nil {
			return dto.VoidDocumentResult{}, err
		}
		return *out, nil
	})
	if err != nil {
		return nil, err
	}
	res.Replayed, res.Body = info.Replayed, info.Body
	return &res, nil
}
