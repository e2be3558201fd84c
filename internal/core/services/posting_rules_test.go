package services

import (
	"testing"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testAccounts() AccountSet {
	return AccountSet{bySubtype: map[domain.AccountSubtype]domain.Account{
		domain.SubtypeAccountsReceivable:       {AccountID: "ar"},
		domain.SubtypeAccountsPayable:          {AccountID: "ap"},
		domain.SubtypeOpeningBalanceAdjustment: {AccountID: "oba"},
	}}
}

func TestPostingRules_CoverEverySourceType(t *testing.T) {
	for _, st := range []domain.SourceType{
		domain.SourceInvoice, domain.SourceBill, domain.SourcePaymentReceived, domain.SourceVendorPayment,
		domain.SourcePDCIncoming, domain.SourcePDCOutgoing, domain.SourceCreditNote,
		domain.SourceCreditNoteRefund, domain.SourceOpeningBalance,
	} {
		_, ok := postingRules[st]
		assert.True(t, ok, "no posting rule for %s", st)
	}
}

func TestPostingRules_ProduceBalancedLines(t *testing.T) {
	v := NewGLValidator()
	lines := []SourceLine{
		{AccountID: "rev-1", Amount: dec("100.00")},
		{AccountID: "rev-2", Amount: dec("33.33")},
	}

	tests := []struct {
		name       string
		sourceType domain.SourceType
		src        PostingSource
		want       []string // account:side
	}{
		{"invoice", domain.SourceInvoice, PostingSource{PartyID: "c1", Lines: lines},
			[]string{"ar:D", "rev-1:C", "rev-2:C"}},
		{"bill", domain.SourceBill, PostingSource{PartyID: "v1", Lines: lines},
			[]string{"rev-1:D", "rev-2:D", "ap:C"}},
		{"payment received", domain.SourcePaymentReceived, PostingSource{PartyID: "c1", Amount: dec("50"), BankAccountID: "bank"},
			[]string{"bank:D", "ar:C"}},
		{"vendor payment", domain.SourceVendorPayment, PostingSource{PartyID: "v1", Amount: dec("50"), BankAccountID: "bank"},
			[]string{"ap:D", "bank:C"}},
		{"pdc incoming", domain.SourcePDCIncoming, PostingSource{PartyID: "c1", Amount: dec("50"), BankAccountID: "bank"},
			[]string{"bank:D", "ar:C"}},
		{"pdc outgoing", domain.SourcePDCOutgoing, PostingSource{PartyID: "v1", Amount: dec("50"), BankAccountID: "bank"},
			[]string{"ap:D", "bank:C"}},
		{"credit note", domain.SourceCreditNote, PostingSource{PartyID: "c1", Lines: lines},
			[]string{"rev-1:D", "rev-2:D", "ar:C"}},
		{"credit note refund", domain.SourceCreditNoteRefund, PostingSource{PartyID: "c1", Amount: dec("50"), BankAccountID: "bank"},
			[]string{"ar:D", "bank:C"}},
		{"opening balance", domain.SourceOpeningBalance, PostingSource{Lines: []SourceLine{
			{AccountID: "bank", Debit: dec("10")},
			{AccountID: "loan", Credit: dec("4")},
		}}, []string{"bank:D", "loan:C", "oba:C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.src.SourceType = tt.sourceType
			out, err := postingRules[tt.sourceType].build(tt.src, testAccounts())
			require.NoError(t, err)

			got := make([]string, len(out))
			for i, l := range out {
				side := "C"
				if l.Debit.IsPositive() {
					side = "D"
				}
				got[i] = l.AccountID + ":" + side
			}
			assert.Equal(t, tt.want, got)

			_, debit, credit, err := v.ValidateLines(out)
			require.NoError(t, err)
			assert.True(t, debit.Equal(credit))
		})
	}
}

func TestPostingRules_PartyDimensions(t *testing.T) {
	out, err := buildReceiptLines(PostingSource{PartyID: "c1", Amount: dec("5"), BankAccountID: "bank"}, testAccounts())
	require.NoError(t, err)
	assert.Nil(t, out[0].CustomerID)
	require.NotNil(t, out[1].CustomerID)
	assert.Equal(t, "c1", *out[1].CustomerID)

	out, err = buildBillLines(PostingSource{PartyID: "v1", Lines: []SourceLine{{AccountID: "exp", Amount: dec("5")}}}, testAccounts())
	require.NoError(t, err)
	require.NotNil(t, out[1].VendorID)
	assert.Equal(t, "v1", *out[1].VendorID)
}

func TestPostingRules_RejectBadAmounts(t *testing.T) {
	_, err := buildReceiptLines(PostingSource{Amount: decimal.Zero, BankAccountID: "bank"}, testAccounts())
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = buildInvoiceLines(PostingSource{}, testAccounts())
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = buildInvoiceLines(PostingSource{Lines: []SourceLine{{AccountID: "rev", Amount: dec("-1")}}}, testAccounts())
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = buildOpeningBalanceLines(PostingSource{Lines: []SourceLine{{AccountID: "bank", Debit: dec("1"), Credit: dec("1")}}}, testAccounts())
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestBuildOpeningBalanceLines_DebitAdjustment(t *testing.T) {
	out, err := buildOpeningBalanceLines(PostingSource{Lines: []SourceLine{
		{AccountID: "loan", Credit: dec("250.00")},
	}}, testAccounts())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "oba", out[1].AccountID)
	assert.True(t, out[1].Debit.Equal(dec("250.00")))
}
