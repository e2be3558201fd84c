package services

import (
	"context"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/dto"
)

// DocumentSvcFacade posts and voids business documents. Both operations are
// idempotent when the request carries a token.
type DocumentSvcFacade interface {
	// PostDocument turns a draft document into a balanced GL header and applies its allocations.
	PostDocument(ctx context.Context, req dto.PostDocumentRequest) (*dto.PostDocumentResult, error)

	// VoidDocument reverses the document's live GL header and unwinds its allocations.
	VoidDocument(ctx context.Context, req dto.VoidDocumentRequest) (*dto.VoidDocumentResult, error)
}

// PaymentReaderSvc defines read operations for payments.
type PaymentReaderSvc interface {
	GetPayment(ctx context.Context, orgID string, direction domain.PaymentDirection, paymentID string) (*domain.Payment, error)
}

// PaymentWriterSvc defines draft maintenance for payments.
type PaymentWriterSvc interface {
	CreatePayment(ctx context.Context, orgID string, direction domain.PaymentDirection, req dto.CreatePaymentRequest, actorID string) (*domain.Payment, error)
	UpdatePayment(ctx context.Context, orgID string, direction domain.PaymentDirection, paymentID string, req dto.UpdatePaymentRequest, actorID string) (*domain.Payment, error)
}

// PaymentSvcFacade combines payment reads and writes.
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}

// SalesDocumentSvcFacade maintains draft invoices and bills.
type SalesDocumentSvcFacade interface {
	CreateSalesDocument(ctx context.Context, orgID string, kind domain.TargetKind, req dto.CreateSalesDocumentRequest, actorID string) (*domain.SalesDocument, error)
	GetSalesDocument(ctx context.Context, orgID string, kind domain.TargetKind, documentID string) (*domain.SalesDocument, error)
}

// CreditNoteSvcFacade maintains credit notes and consumes their credit.
type CreditNoteSvcFacade interface {
	CreateCreditNote(ctx context.Context, orgID string, req dto.CreateCreditNoteRequest, actorID string) (*domain.CreditNote, error)
	GetCreditNote(ctx context.Context, orgID, creditNoteID string) (*domain.CreditNote, error)

	// ApplyCreditNote settles posted invoices from available credit. No GL entry is written.
	ApplyCreditNote(ctx context.Context, orgID, creditNoteID string, req dto.ApplyCreditNoteRequest, actorID, idempotencyToken string) (*dto.CreditNoteResult, error)

	// RefundCreditNote pays available credit back and posts a CREDIT_NOTE_REFUND header.
	RefundCreditNote(ctx context.Context, orgID, creditNoteID string, req dto.RefundCreditNoteRequest, actorID, idempotencyToken string) (*dto.CreditNoteResult, error)
}

// OpeningBalanceSvcFacade maintains opening balance batches.
type OpeningBalanceSvcFacade interface {
	CreateOpeningBalance(ctx context.Context, orgID string, req dto.CreateOpeningBalanceRequest, actorID string) (*domain.OpeningBalanceBatch, error)
	GetOpeningBalance(ctx context.Context, orgID, batchID string) (*domain.OpeningBalanceBatch, error)
}
