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

// paymentProfile is what differs between customer receipts and vendor payments.
type paymentProfile struct {
	docType    domain.DocumentType
	sourceType domain.SourceType
	targetKind domain.TargetKind
	prefix     string
	scope      string
}

var paymentProfiles = map[domain.PaymentDirection]paymentProfile{
	domain.PaymentReceived: {
		docType:    domain.DocPaymentReceived,
		sourceType: domain.SourcePaymentReceived,
		targetKind: domain.TargetInvoice,
		prefix:     "PAY",
		scope:      "payment",
	},
	domain.PaymentMade: {
		docType:    domain.DocVendorPayment,
		sourceType: domain.SourceVendorPayment,
		targetKind: domain.TargetBill,
		prefix:     "VPAY",
		scope:      "vendor_payment",
	},
}

func profileFor(direction domain.PaymentDirection) (paymentProfile, error) {
	p, ok := paymentProfiles[direction]
	if !ok {
		return paymentProfile{}, apperrors.NewValidationError("unknown payment direction %q", direction)
	}
	return p, nil
}

// paymentService manages customer payments received and vendor payments made.
type paymentService struct {
	*ledgerEngine
}

func newPaymentService(engine *ledgerEngine) *paymentService {
	return &paymentService{ledgerEngine: engine}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func paymentSummary(profile paymentProfile, p *domain.Payment) domain.DocumentSummary {
	return domain.DocumentSummary{
		DocumentType: profile.docType,
		DocumentID:   p.PaymentID,
		Number:       p.Number,
		Status:       p.Status,
		Amount:       p.Amount,
	}
}

// prepareAllocations requires a positive amount and normalizes the allocations.
func prepareAllocations(inputs []dto.AllocationInput, amount decimal.Decimal) ([]domain.Allocation, error) {
	if !amount.IsPositive() {
		return nil, apperrors.NewValidationError("amount must be positive")
	}
	return NormalizeAllocations(ToAllocations(inputs))
}

func (s *paymentService) CreatePayment(ctx context.Context, orgID string, direction domain.PaymentDirection, req dto.CreatePaymentRequest, actorID string) (*domain.Payment, error) {
	profile, err := profileFor(direction)
	if err != nil {
		return nil, err
	}
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

	var created domain.Payment
	err = s.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		org, err := s.loadOrg(ctx, tx, orgID)
		if err != nil {
			return err
		}
		paymentID := uuid.NewString()
		if err := s.guard.EnsureOpen(ctx, org, actorID, profile.scope+".create", profile.scope, paymentID, req.PaymentDate); err != nil {
			return err
		}

		targets, err := s.allocations.Lock(ctx, tx, orgID, profile.targetKind, allocs)
		if err != nil {
			return err
		}
		if err := ValidateAgainstOutstanding(allocs, targets, req.PartyID, req.CurrencyCode); err != nil {
			return err
		}
		number, err := s.nextNumber(ctx, tx, orgID, profile.prefix)
		if err != nil {
			return err
		}

		created = domain.Payment{
			PaymentID:     paymentID,
			OrgID:         orgID,
			Direction:     direction,
			Number:        number,
			PartyID:       req.PartyID,
			BankAccountID: req.BankAccountID,
			PaymentDate:   domain.DateOnly(req.PaymentDate),
			CurrencyCode:  req.CurrencyCode,
			ExchangeRate:  accounting.NormalizeRate(req.ExchangeRate),
			Amount:        amount,
			Memo:          req.Memo,
			Allocations:   allocs,
			Status:        domain.StatusDraft,
			AuditFields:   domain.NewAuditFields(actorID, s.now()),
		}
		if err := tx.InsertPayment(ctx, created); err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}
		return s.audit.Record(ctx, tx, orgID, actorID, AuditChange{
			Action:     "create",
			EntityType: profile.scope,
			EntityID:   paymentID,
			After:      created,
		})
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Payment created",
		slog.String("org_id", orgID),
		slog.String("payment_id", created.PaymentID),
		slog.String("direction", string(direction)))
	return &created, nil
}

func (s *paymentService) UpdatePayment(ctx context.Context, orgID string, direction domain.PaymentDirection, paymentID string, req dto.UpdatePaymentRequest, actorID string) (*domain.Payment, error) {
	profile, err := profileFor(direction)
	if err != nil {
		return nil, err
	}
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

	var updated domain.Payment
	err = s.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		org, err := s.loadOrg(ctx, tx, orgID)
		if err != nil {
			return err
		}
		payment, err := tx.FindPaymentForUpdate(ctx, orgID, direction, paymentID)
		if err != nil {
			return wrapLookup(err, profile.scope, paymentID)
		}
		if payment.Status != domain.StatusDraft {
			return apperrors.NewConflictError("%s %s is %s and can no longer be edited", profile.scope, payment.Number, payment.Status)
		}
		if err := s.guard.EnsureOpen(ctx, org, actorID, profile.scope+".update", profile.scope, paymentID, payment.PaymentDate, req.PaymentDate); err != nil {
			return err
		}

		targets, err := s.allocations.Lock(ctx, tx, orgID, profile.targetKind, allocs)
		if err != nil {
			return err
		}
		if err := ValidateAgainstOutstanding(allocs, targets, req.PartyID, req.CurrencyCode); err != nil {
			return err
		}

		before := *payment
		payment.PartyID = req.PartyID
		payment.BankAccountID = req.BankAccountID
		payment.PaymentDate = domain.DateOnly(req.PaymentDate)
		payment.CurrencyCode = req.CurrencyCode
		payment.ExchangeRate = accounting.NormalizeRate(req.ExchangeRate)
		payment.Amount = amount
		payment.Memo = req.Memo
		payment.Allocations = allocs
		payment.Touch(actorID, s.now())
		if err := tx.UpdatePayment(ctx, *payment); err != nil {
			return fmt.Errorf("update payment: %w", err)
		}
		updated = *payment
		return s.audit.Record(ctx, tx, orgID, actorID, AuditChange{
			Action:     "update",
			EntityType: profile.scope,
			EntityID:   paymentID,
			Before:     before,
			After:      updated,
		})
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *paymentService) GetPayment(ctx context.Context, orgID string, direction domain.PaymentDirection, paymentID string) (*domain.Payment, error) {
	profile, err := profileFor(direction)
	if err != nil {
		return nil, err
	}
	payment, err := s.docReader.FindPaymentByID(ctx, orgID, direction, paymentID)
	if err != nil {
		return nil, wrapLookup(err, profile.scope, paymentID)
	}
	return payment, nil
}

func (s *paymentService) handler(direction domain.PaymentDirection) documentHandler {
	profile := paymentProfiles[direction]
	return documentHandler{
		scope: profile.scope,
		post: func(ctx context.Context, tx portsrepo.TxStore, req dto.PostDocumentRequest) (*dto.PostDocumentResult, error) {
			return s.post(ctx, tx, profile, direction, req)
		},
		void: func(ctx context.Context, tx portsrepo.TxStore, req dto.VoidDocumentRequest, voidDate time.Time) (*dto.VoidDocumentResult, error) {
			return s.void(ctx, tx, profile, direction, req, voidDate)
		},
	}
}

func (s *paymentService) post(ctx context.Context, tx portsrepo.TxStore, profile paymentProfile, direction domain.PaymentDirection, req dto.PostDocumentRequest) (*dto.PostDocumentResult, error) {
	org, err := s.loadOrg(ctx, tx, req.OrgID)
	if err != nil {
		return nil, err
	}
	payment, err := tx.FindPaymentForUpdate(ctx, req.OrgID, direction, req.DocumentID)
	if err != nil {
		return nil, wrapLookup(err, profile.scope, req.DocumentID)
	}
	switch payment.Status {
	case domain.StatusPosted:
		return nil, fmt.Errorf("%w: %s %s", apperrors.ErrAlreadyPosted, profile.scope, payment.Number)
	case domain.StatusVoid:
		return nil, apperrors.NewValidationError("%s %s is void", profile.scope, payment.Number)
	}
	if err := s.guard.EnsureOpen(ctx, org, req.ActorID, profile.scope+".post", profile.scope, payment.PaymentID, payment.PaymentDate); err != nil {
		return nil, err
	}
	if err := ValidateAllocationTotal(payment.Allocations, payment.Amount); err != nil {
		return nil, err
	}

	src := PostingSource{
		OrgID:         req.OrgID,
		ActorID:       req.ActorID,
		SourceType:    profile.sourceType,
		SourceID:      payment.PaymentID,
		PostingDate:   payment.PaymentDate,
		CurrencyCode:  payment.CurrencyCode,
		ExchangeRate:  payment.ExchangeRate,
		Memo:          payment.Memo,
		PartyID:       payment.PartyID,
		Amount:        payment.Amount,
		BankAccountID: payment.BankAccountID,
		Allocations:   payment.Allocations,
		TargetKind:    profile.targetKind,
	}
	header, err := s.orchestrator.Post(ctx, tx, src, func(ctx context.Context, tx portsrepo.TxStore, h domain.GLHeader) (*AuditChange, error) {
		before := *payment
		headerID := h.HeaderID
		payment.Status = domain.StatusPosted
		payment.GLHeaderID = &headerID
		payment.Touch(req.ActorID, s.now())
		if err := tx.UpdatePayment(ctx, *payment); err != nil {
			return nil, fmt.Errorf("update payment: %w", err)
		}
		return &AuditChange{Action: "post", EntityType: profile.scope, EntityID: payment.PaymentID, Before: before, After: *payment}, nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.PostDocumentResult{Header: *header, Document: paymentSummary(profile, payment)}, nil
}

func (s *paymentService) void(ctx context.Context, tx portsrepo.TxStore, profile paymentProfile, direction domain.PaymentDirection, req dto.VoidDocumentRequest, voidDate time.Time) (*dto.VoidDocumentResult, error) {
	org, err := s.loadOrg(ctx, tx, req.OrgID)
	if err != nil {
		return nil, err
	}
	payment, err := tx.FindPaymentForUpdate(ctx, req.OrgID, direction, req.DocumentID)
	if err != nil {
		return nil, wrapLookup(err, profile.scope, req.DocumentID)
	}
	switch payment.Status {
	case domain.StatusDraft:
		return nil, apperrors.NewValidationError("%s %s is not posted", profile.scope, payment.Number)
	case domain.StatusVoid:
		return nil, fmt.Errorf("%w: %s %s", apperrors.ErrAlreadyReversed, profile.scope, payment.Number)
	}
	if err := s.guard.EnsureOpen(ctx, org, req.ActorID, profile.scope+".void", profile.scope, payment.PaymentID, payment.PaymentDate, voidDate); err != nil {
		return nil, err
	}
	if payment.GLHeaderID == nil {
		return nil, fmt.Errorf("%w: posted %s %s has no gl header", apperrors.ErrInternal, profile.scope, payment.PaymentID)
	}

	reversal, err := s.reversals.Reverse(ctx, tx, req.OrgID, *payment.GLHeaderID, req.ActorID, req.Memo, voidDate)
	if err != nil {
		return nil, err
	}
	targets, err := s.allocations.Lock(ctx, tx, req.OrgID, profile.targetKind, payment.Allocations)
	if err != nil {
		return nil, err
	}
	if err := s.allocations.Unwind(ctx, tx, req.OrgID, profile.targetKind, payment.Allocations, targets); err != nil {
		return nil, err
	}

	before := *payment
	now := s.now()
	payment.Status = domain.StatusVoid
	payment.VoidedAt = &now
	payment.Touch(req.ActorID, now)
	if err := tx.UpdatePayment(ctx, *payment); err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}
	if err := s.audit.Record(ctx, tx, req.OrgID, req.ActorID, AuditChange{
		Action:     "void",
		EntityType: profile.scope,
		EntityID:   payment.PaymentID,
		Before:     before,
		After:      *payment,
		Meta:       map[string]string{"reversalHeaderID": reversal.HeaderID},
	}); err != nil {
		return nil, err
	}
	return &dto.VoidDocumentResult{Document: paymentSummary(profile, payment), ReversalHeader: *reversal}, nil
}
