package services_test

import (
	"context"
	"testing"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpeningBalance_PostBalancesThroughAdjustment(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()
	customer := "cust-9"

	batch, err := f.svc.OpeningBalance.CreateOpeningBalance(ctx, testOrgID, dto.CreateOpeningBalanceRequest{
		AsOfDate:     day(1),
		CurrencyCode: "USD",
		Memo:         "Cut-over",
		Lines: []dto.OpeningBalanceLineInput{
			{AccountID: accBank, Debit: dec("1000.00")},
			{AccountID: accAR, Debit: dec("500.00"), CustomerID: &customer},
		},
	}, testActorID)
	require.NoError(t, err)
	assert.Equal(t, "OB-000001", batch.Number)
	assert.Equal(t, domain.StatusDraft, batch.Status)

	result, err := f.postDocument(domain.DocOpeningBalance, batch.BatchID, "")
	require.NoError(t, err)
	assert.True(t, result.Header.TotalDebit.Equal(dec("1500.00")))
	assert.True(t, result.Header.TotalCredit.Equal(dec("1500.00")))
	assert.True(t, result.Document.Amount.Equal(dec("1500.00")))
	require.Len(t, result.Header.Lines, 3)

	adjustment := result.Header.Lines[2]
	assert.Equal(t, accOBA, adjustment.AccountID)
	assert.True(t, adjustment.Credit.Equal(dec("1500.00")))
	assert.Equal(t, "Opening balance adjustment", adjustment.Description)
	require.NotNil(t, result.Header.Lines[1].CustomerID)
	assert.Equal(t, customer, *result.Header.Lines[1].CustomerID)

	_, err = f.postDocument(domain.DocOpeningBalance, batch.BatchID, "")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyPosted)

	_, err = f.voidDocument(domain.DocOpeningBalance, batch.BatchID, day(2))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestOpeningBalance_BalancedBatchHasNoAdjustment(t *testing.T) {
	f := newLedgerFixture()

	batch, err := f.svc.OpeningBalance.CreateOpeningBalance(context.Background(), testOrgID, dto.CreateOpeningBalanceRequest{
		AsOfDate:     day(1),
		CurrencyCode: "USD",
		Lines: []dto.OpeningBalanceLineInput{
			{AccountID: accBank, Debit: dec("300.00")},
			{AccountID: accAP, Credit: dec("300.00")},
		},
	}, testActorID)
	require.NoError(t, err)

	result, err := f.postDocument(domain.DocOpeningBalance, batch.BatchID, "")
	require.NoError(t, err)
	assert.Len(t, result.Header.Lines, 2)
}

func TestOpeningBalance_LineValidation(t *testing.T) {
	f := newLedgerFixture()

	tests := []struct {
		name  string
		lines []dto.OpeningBalanceLineInput
	}{
		{"both sides", []dto.OpeningBalanceLineInput{{AccountID: accBank, Debit: dec("1"), Credit: dec("1")}}},
		{"neither side", []dto.OpeningBalanceLineInput{{AccountID: accBank, Debit: decimal.Zero, Credit: decimal.Zero}}},
		{"negative debit", []dto.OpeningBalanceLineInput{{AccountID: accBank, Debit: dec("-5")}}},
		{"unknown account", []dto.OpeningBalanceLineInput{{AccountID: "acc-missing", Debit: dec("5")}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.OpeningBalance.CreateOpeningBalance(context.Background(), testOrgID, dto.CreateOpeningBalanceRequest{
				AsOfDate:     day(1),
				CurrencyCode: "USD",
				Lines:        tt.lines,
			}, testActorID)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}
