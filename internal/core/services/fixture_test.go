package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	portssvc "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/services"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/services"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/dto"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/repositories/database/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	testOrgID   = "org-1"
	testActorID = "user-1"

	accAR      = "acc-ar"
	accAP      = "acc-ap"
	accBank    = "acc-bank"
	accOldBank = "acc-old-bank"
	accOBA     = "acc-oba"
	accSales   = "acc-sales"
	accExpense = "acc-expense"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// day returns a date in June 2024.
func day(d int) time.Time {
	return time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC)
}

type ledgerFixture struct {
	store *memory.Store
	svc   *portssvc.ServiceContainer
	now   time.Time
}

func newLedgerFixture() *ledgerFixture {
	store := memory.NewStore()
	store.PutOrganization(domain.Organization{OrgID: testOrgID, Name: "Acme", BaseCurrency: "USD"})
	for _, a := range []domain.Account{
		{AccountID: accBank, Code: "1000", Name: "Operating Bank", AccountType: domain.Asset, Subtype: domain.SubtypeBank, IsActive: true},
		{AccountID: accOldBank, Code: "1010", Name: "Closed Bank", AccountType: domain.Asset, Subtype: domain.SubtypeBank, IsActive: false},
		{AccountID: accAR, Code: "1100", Name: "Accounts Receivable", AccountType: domain.Asset, Subtype: domain.SubtypeAccountsReceivable, IsActive: true},
		{AccountID: accAP, Code: "2000", Name: "Accounts Payable", AccountType: domain.Liability, Subtype: domain.SubtypeAccountsPayable, IsActive: true},
		{AccountID: accOBA, Code: "3900", Name: "Opening Balance Adjustment", AccountType: domain.Equity, Subtype: domain.SubtypeOpeningBalanceAdjustment, IsActive: true},
		{AccountID: accSales, Code: "4000", Name: "Sales", AccountType: domain.Revenue, Subtype: domain.SubtypeSales, IsActive: true},
		{AccountID: accExpense, Code: "5000", Name: "Office Expense", AccountType: domain.Expense, Subtype: domain.SubtypeExpense, IsActive: true},
	} {
		a.OrgID = testOrgID
		store.PutAccount(a)
	}

	now := time.Date(2024, time.June, 30, 12, 0, 0, 0, time.UTC)
	svc := services.NewServiceContainer(store.Provider(), services.WithClock(func() time.Time { return now }))
	return &ledgerFixture{store: store, svc: svc, now: now}
}

func (f *ledgerFixture) salesDocument(t *testing.T, kind domain.TargetKind, partyID, amount string, date time.Time) *domain.SalesDocument {
	t.Helper()
	account := accSales
	if kind == domain.TargetBill {
		account = accExpense
	}
	doc, err := f.svc.SalesDocument.CreateSalesDocument(context.Background(), testOrgID, kind, dto.CreateSalesDocumentRequest{
		PartyID:      partyID,
		DocumentDate: date,
		CurrencyCode: "USD",
		Lines:        []dto.DocumentLineInput{{AccountID: account, Description: "goods", Amount: dec(amount)}},
	}, testActorID)
	require.NoError(t, err)
	return doc
}

// postedInvoice creates and posts an invoice for the customer.
func (f *ledgerFixture) postedInvoice(t *testing.T, customerID, amount string, date time.Time) *domain.SalesDocument {
	t.Helper()
	return f.postSales(t, domain.TargetInvoice, domain.DocInvoice, customerID, amount, date)
}

// postedBill creates and posts a bill from the vendor.
func (f *ledgerFixture) postedBill(t *testing.T, vendorID, amount string, date time.Time) *domain.SalesDocument {
	t.Helper()
	return f.postSales(t, domain.TargetBill, domain.DocBill, vendorID, amount, date)
}

func (f *ledgerFixture) postSales(t *testing.T, kind domain.TargetKind, docType domain.DocumentType, partyID, amount string, date time.Time) *domain.SalesDocument {
	t.Helper()
	doc := f.salesDocument(t, kind, partyID, amount, date)
	_, err := f.svc.Document.PostDocument(context.Background(), dto.PostDocumentRequest{
		OrgID:        testOrgID,
		DocumentType: docType,
		DocumentID:   doc.DocumentID,
		ActorID:      testActorID,
	})
	require.NoError(t, err)
	return f.reload(t, kind, doc.DocumentID)
}

func (f *ledgerFixture) reload(t *testing.T, kind domain.TargetKind, documentID string) *domain.SalesDocument {
	t.Helper()
	doc, err := f.svc.SalesDocument.GetSalesDocument(context.Background(), testOrgID, kind, documentID)
	require.NoError(t, err)
	return doc
}

func allocations(pairs ...any) []dto.AllocationInput {
	out := make([]dto.AllocationInput, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, dto.AllocationInput{TargetID: pairs[i].(string), Amount: dec(pairs[i+1].(string))})
	}
	return out
}

func (f *ledgerFixture) paymentRequest(partyID, amount string, date time.Time, allocs []dto.AllocationInput) dto.CreatePaymentRequest {
	return dto.CreatePaymentRequest{
		PartyID:       partyID,
		BankAccountID: accBank,
		PaymentDate:   date,
		CurrencyCode:  "USD",
		Amount:        dec(amount),
		Allocations:   allocs,
	}
}

func (f *ledgerFixture) postDocument(docType domain.DocumentType, documentID, token string) (*dto.PostDocumentResult, error) {
	return f.svc.Document.PostDocument(context.Background(), dto.PostDocumentRequest{
		OrgID:            testOrgID,
		DocumentType:     docType,
		DocumentID:       documentID,
		ActorID:          testActorID,
		IdempotencyToken: token,
	})
}

func (f *ledgerFixture) voidDocument(docType domain.DocumentType, documentID string, voidDate time.Time) (*dto.VoidDocumentResult, error) {
	return f.svc.Document.VoidDocument(context.Background(), dto.VoidDocumentRequest{
		OrgID:        testOrgID,
		DocumentType: docType,
		DocumentID:   documentID,
		VoidDate:     &voidDate,
		ActorID:      testActorID,
	})
}
