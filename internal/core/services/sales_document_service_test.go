package services_test

import (
	"context"
	"testing"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSalesDocument(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()
	due := day(30)

	doc, err := f.svc.SalesDocument.CreateSalesDocument(ctx, testOrgID, domain.TargetInvoice, dto.CreateSalesDocumentRequest{
		PartyID:      "cust-1",
		DocumentDate: day(1),
		DueDate:      &due,
		CurrencyCode: "USD",
		Lines: []dto.DocumentLineInput{
			{AccountID: accSales, Description: "widgets", Amount: dec("100.005")},
			{AccountID: accSales, Description: "gadgets", Amount: dec("49.99")},
		},
	}, testActorID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, doc.Status)
	assert.Equal(t, domain.PaymentUnpaid, doc.PaymentStatus)
	assert.Empty(t, doc.Number)
	assert.True(t, doc.Total.Equal(dec("150.00")), "total is %s", doc.Total)
	assert.True(t, doc.ExchangeRate.Equal(dec("1")))
	assert.Equal(t, 0, f.store.HeaderCount(testOrgID))

	got, err := f.svc.SalesDocument.GetSalesDocument(ctx, testOrgID, domain.TargetInvoice, doc.DocumentID)
	require.NoError(t, err)
	assert.Equal(t, doc.DocumentID, got.DocumentID)

	_, err = f.svc.SalesDocument.GetSalesDocument(ctx, testOrgID, domain.TargetBill, doc.DocumentID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateSalesDocument_Validation(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()
	early := day(1)

	tests := []struct {
		name string
		req  dto.CreateSalesDocumentRequest
	}{
		{"missing party", dto.CreateSalesDocumentRequest{DocumentDate: day(2), CurrencyCode: "USD",
			Lines: []dto.DocumentLineInput{{AccountID: accSales, Amount: dec("1")}}}},
		{"bad currency", dto.CreateSalesDocumentRequest{PartyID: "c", DocumentDate: day(2), CurrencyCode: "US",
			Lines: []dto.DocumentLineInput{{AccountID: accSales, Amount: dec("1")}}}},
		{"no lines", dto.CreateSalesDocumentRequest{PartyID: "c", DocumentDate: day(2), CurrencyCode: "USD"}},
		{"zero line", dto.CreateSalesDocumentRequest{PartyID: "c", DocumentDate: day(2), CurrencyCode: "USD",
			Lines: []dto.DocumentLineInput{{AccountID: accSales, Amount: dec("0")}}}},
		{"due before date", dto.CreateSalesDocumentRequest{PartyID: "c", DocumentDate: day(2), DueDate: &early, CurrencyCode: "USD",
			Lines: []dto.DocumentLineInput{{AccountID: accSales, Amount: dec("1")}}}},
		{"inactive account", dto.CreateSalesDocumentRequest{PartyID: "c", DocumentDate: day(2), CurrencyCode: "USD",
			Lines: []dto.DocumentLineInput{{AccountID: accOldBank, Amount: dec("1")}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.SalesDocument.CreateSalesDocument(ctx, testOrgID, domain.TargetInvoice, tt.req, testActorID)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestPostInvoice_LinesAndNumbering(t *testing.T) {
	f := newLedgerFixture()

	first := f.postedInvoice(t, "cust-1", "250.00", day(3))
	second := f.postedInvoice(t, "cust-2", "75.50", day(4))
	assert.Equal(t, "INV-000001", first.Number)
	assert.Equal(t, "INV-000002", second.Number)
	assert.Equal(t, domain.StatusPosted, first.Status)
	require.NotNil(t, first.GLHeaderID)

	header, err := f.svc.GL.GetHeader(context.Background(), testOrgID, *first.GLHeaderID)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceInvoice, header.SourceType)
	assert.Equal(t, first.DocumentID, header.SourceID)
	require.Len(t, header.Lines, 2)
	assert.Equal(t, accAR, header.Lines[0].AccountID)
	assert.True(t, header.Lines[0].Debit.Equal(dec("250.00")))
	require.NotNil(t, header.Lines[0].CustomerID)
	assert.Equal(t, "cust-1", *header.Lines[0].CustomerID)
	assert.Equal(t, accSales, header.Lines[1].AccountID)
	assert.True(t, header.Lines[1].Credit.Equal(dec("250.00")))
	assert.Equal(t, 1, header.Lines[0].LineNo)
	assert.Equal(t, 2, header.Lines[1].LineNo)
}

func TestPostBill_Lines(t *testing.T) {
	f := newLedgerFixture()
	bill := f.postedBill(t, "vend-1", "90.00", day(3))

	header, err := f.svc.GL.GetHeader(context.Background(), testOrgID, *bill.GLHeaderID)
	require.NoError(t, err)
	require.Len(t, header.Lines, 2)
	assert.Equal(t, accExpense, header.Lines[0].AccountID)
	assert.True(t, header.Lines[0].Debit.Equal(dec("90.00")))
	assert.Equal(t, accAP, header.Lines[1].AccountID)
	require.NotNil(t, header.Lines[1].VendorID)
	assert.Equal(t, "vend-1", *header.Lines[1].VendorID)
}

func TestPostInvoice_LockedDateLeavesDraftUnnumbered(t *testing.T) {
	f := newLedgerFixture()
	doc := f.salesDocument(t, domain.TargetInvoice, "cust-1", "100.00", day(3))
	lockDate := day(5)
	f.store.SetLockDate(testOrgID, &lockDate)

	_, err := f.postDocument(domain.DocInvoice, doc.DocumentID, "")
	assert.ErrorIs(t, err, apperrors.ErrPeriodLocked)

	again := f.reload(t, domain.TargetInvoice, doc.DocumentID)
	assert.Equal(t, domain.StatusDraft, again.Status)
	assert.Empty(t, again.Number)
	assert.Equal(t, 0, f.store.HeaderCount(testOrgID))
}

func TestVoidInvoice(t *testing.T) {
	f := newLedgerFixture()
	invoice := f.postedInvoice(t, "cust-1", "100.00", day(3))

	voided, err := f.voidDocument(domain.DocInvoice, invoice.DocumentID, day(4))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusVoid, voided.Document.Status)
	assert.Equal(t, invoice.DocumentID, voided.ReversalHeader.SourceID)
	assert.True(t, voided.ReversalHeader.IsReversal)

	headers, err := f.svc.GL.ListHeadersForSource(context.Background(), testOrgID, domain.SourceInvoice, invoice.DocumentID)
	require.NoError(t, err)
	assert.Len(t, headers, 2)

	_, err = f.voidDocument(domain.DocInvoice, invoice.DocumentID, day(5))
	assert.ErrorIs(t, err, apperrors.ErrAlreadyReversed)
}

func TestVoidInvoice_WithPaymentsIsRejected(t *testing.T) {
	f := newLedgerFixture()
	invoice := f.postedInvoice(t, "cust-1", "100.00", day(3))
	payment, err := f.svc.Payment.CreatePayment(context.Background(), testOrgID, domain.PaymentReceived,
		f.paymentRequest("cust-1", "40.00", day(4), allocations(invoice.DocumentID, "40.00")), testActorID)
	require.NoError(t, err)
	_, err = f.postDocument(domain.DocPaymentReceived, payment.PaymentID, "")
	require.NoError(t, err)

	_, err = f.voidDocument(domain.DocInvoice, invoice.DocumentID, day(5))
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestVoidInvoice_BlockedWhenOriginalDateLocked(t *testing.T) {
	f := newLedgerFixture()
	invoice := f.postedInvoice(t, "cust-1", "100.00", day(3))
	lockDate := day(10)
	f.store.SetLockDate(testOrgID, &lockDate)

	_, err := f.voidDocument(domain.DocInvoice, invoice.DocumentID, day(20))
	assert.ErrorIs(t, err, apperrors.ErrPeriodLocked)
	assert.Equal(t, 1, f.store.HeaderCount(testOrgID))
}
