package services_test

import (
	"context"
	"testing"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/dto"
	"github.com/stretchr/testify/suite"
)

type CreditNoteServiceTestSuite struct {
	suite.Suite
	f       *ledgerFixture
	ctx     context.Context
	invoice *domain.SalesDocument
	note    *domain.CreditNote
}

func (s *CreditNoteServiceTestSuite) SetupTest() {
	s.f = newLedgerFixture()
	s.ctx = context.Background()
	s.invoice = s.f.postedInvoice(s.T(), "cust-1", "500.00", day(1))

	note, err := s.f.svc.CreditNote.CreateCreditNote(s.ctx, testOrgID, dto.CreateCreditNoteRequest{
		CustomerID:   "cust-1",
		NoteDate:     day(5),
		CurrencyCode: "USD",
		Lines:        []dto.DocumentLineInput{{AccountID: accSales, Description: "returned goods", Amount: dec("200.00")}},
	}, testActorID)
	s.Require().NoError(err)
	s.Empty(note.Number, "credit notes are numbered when posted")

	result, err := s.f.postDocument(domain.DocCreditNote, note.CreditNoteID, "")
	s.Require().NoError(err)
	s.Equal("CN-000001", result.Document.Number)
	s.Require().Len(result.Header.Lines, 2)
	s.Equal(accSales, result.Header.Lines[0].AccountID)
	s.True(result.Header.Lines[0].Debit.Equal(dec("200.00")))
	s.Equal(accAR, result.Header.Lines[1].AccountID)
	s.True(result.Header.Lines[1].Credit.Equal(dec("200.00")))

	s.note, err = s.f.svc.CreditNote.GetCreditNote(s.ctx, testOrgID, note.CreditNoteID)
	s.Require().NoError(err)
}

func TestCreditNoteServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CreditNoteServiceTestSuite))
}

func (s *CreditNoteServiceTestSuite) apply(amount, token string) (*dto.CreditNoteResult, error) {
	return s.f.svc.CreditNote.ApplyCreditNote(s.ctx, testOrgID, s.note.CreditNoteID, dto.ApplyCreditNoteRequest{
		Allocations: allocations(s.invoice.DocumentID, amount),
	}, testActorID, token)
}

func (s *CreditNoteServiceTestSuite) refund(amount, token string) (*dto.CreditNoteResult, error) {
	return s.f.svc.CreditNote.RefundCreditNote(s.ctx, testOrgID, s.note.CreditNoteID, dto.RefundCreditNoteRequest{
		BankAccountID: accBank,
		Amount:        dec(amount),
		RefundDate:    day(12),
	}, testActorID, token)
}

func (s *CreditNoteServiceTestSuite) TestApplyThenRefund() {
	headers := s.f.store.HeaderCount(testOrgID)

	applied, err := s.apply("150.00", "")
	s.Require().NoError(err)
	s.True(applied.CreditNote.AmountApplied.Equal(dec("150.00")))
	s.True(applied.CreditNote.Available().Equal(dec("50.00")))
	s.Len(applied.CreditNote.Applications, 1)
	s.Nil(applied.Header)
	s.Equal(headers, s.f.store.HeaderCount(testOrgID), "applying credit writes no GL entry")

	inv := s.f.reload(s.T(), domain.TargetInvoice, s.invoice.DocumentID)
	s.Equal(domain.PaymentPartial, inv.PaymentStatus)
	s.True(inv.AmountPaid.Equal(dec("150.00")))

	_, err = s.refund("60.00", "")
	s.ErrorIs(err, apperrors.ErrAllocationExceedsOutstanding)

	refunded, err := s.refund("50.00", "")
	s.Require().NoError(err)
	s.Require().NotNil(refunded.Header)
	s.Equal(domain.SourceCreditNoteRefund, refunded.Header.SourceType)
	s.Equal("Refund of credit note CN-000001", refunded.Header.Memo)
	s.Equal(accAR, refunded.Header.Lines[0].AccountID)
	s.True(refunded.Header.Lines[0].Debit.Equal(dec("50.00")))
	s.Equal(accBank, refunded.Header.Lines[1].AccountID)
	s.True(refunded.Header.Lines[1].Credit.Equal(dec("50.00")))
	s.True(refunded.CreditNote.Available().IsZero())
	s.Require().Len(refunded.CreditNote.Refunds, 1)
	s.Equal(refunded.Header.HeaderID, refunded.CreditNote.Refunds[0].GLHeaderID)
}

func (s *CreditNoteServiceTestSuite) TestApply_RepeatedInvoiceKeepsOneApplication() {
	first, err := s.apply("60.00", "")
	s.Require().NoError(err)
	s.Require().Len(first.CreditNote.Applications, 1)
	applicationID := first.CreditNote.Applications[0].ApplicationID

	second, err := s.apply("40.00", "")
	s.Require().NoError(err)
	s.Require().Len(second.CreditNote.Applications, 1)
	s.Equal(applicationID, second.CreditNote.Applications[0].ApplicationID)
	s.True(second.CreditNote.Applications[0].Amount.Equal(dec("100.00")))
	s.True(second.CreditNote.AmountApplied.Equal(dec("100.00")))

	inv := s.f.reload(s.T(), domain.TargetInvoice, s.invoice.DocumentID)
	s.True(inv.AmountPaid.Equal(dec("100.00")))
}

func (s *CreditNoteServiceTestSuite) TestApply_ExceedsAvailableCredit() {
	_, err := s.apply("250.00", "")
	s.ErrorIs(err, apperrors.ErrAllocationExceedsOutstanding)

	inv := s.f.reload(s.T(), domain.TargetInvoice, s.invoice.DocumentID)
	s.True(inv.AmountPaid.IsZero())
}

func (s *CreditNoteServiceTestSuite) TestApply_Replayed() {
	first, err := s.apply("100.00", "apply-1")
	s.Require().NoError(err)
	second, err := s.apply("100.00", "apply-1")
	s.Require().NoError(err)
	s.True(second.Replayed)
	s.Equal(first.Body, second.Body)

	inv := s.f.reload(s.T(), domain.TargetInvoice, s.invoice.DocumentID)
	s.True(inv.AmountPaid.Equal(dec("100.00")))
}

func (s *CreditNoteServiceTestSuite) TestRefund_BlockedByLockDate() {
	lockDate := day(12)
	s.f.store.SetLockDate(testOrgID, &lockDate)

	_, err := s.refund("50.00", "")
	s.ErrorIs(err, apperrors.ErrPeriodLocked)

	note, err := s.f.svc.CreditNote.GetCreditNote(s.ctx, testOrgID, s.note.CreditNoteID)
	s.Require().NoError(err)
	s.True(note.AmountRefunded.IsZero())
}

func (s *CreditNoteServiceTestSuite) TestVoid() {
	_, err := s.apply("10.00", "")
	s.Require().NoError(err)
	_, err = s.f.voidDocument(domain.DocCreditNote, s.note.CreditNoteID, day(20))
	s.ErrorIs(err, apperrors.ErrConflict)
}

func TestCreditNote_VoidUnused(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()
	note, err := f.svc.CreditNote.CreateCreditNote(ctx, testOrgID, dto.CreateCreditNoteRequest{
		CustomerID:   "cust-1",
		NoteDate:     day(5),
		CurrencyCode: "USD",
		Lines:        []dto.DocumentLineInput{{AccountID: accSales, Amount: dec("80.00")}},
	}, testActorID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.postDocument(domain.DocCreditNote, note.CreditNoteID, ""); err != nil {
		t.Fatal(err)
	}

	voided, err := f.voidDocument(domain.DocCreditNote, note.CreditNoteID, day(6))
	if err != nil {
		t.Fatal(err)
	}
	if voided.Document.Status != domain.StatusVoid {
		t.Errorf("status = %s, want VOID", voided.Document.Status)
	}

	_, err = f.svc.CreditNote.ApplyCreditNote(ctx, testOrgID, note.CreditNoteID, dto.ApplyCreditNoteRequest{
		Allocations: allocations("any-invoice", "10.00"),
	}, testActorID, "")
	if err == nil {
		t.Error("expected applying a void credit note to fail")
	}
}
