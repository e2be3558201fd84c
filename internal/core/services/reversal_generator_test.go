package services

import (
	"context"
	"testing"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	portsrepo "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/repositories"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/repositories/database/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReversalGenerator_Reverse(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	customer := "cust-1"
	original := domain.GLHeader{
		HeaderID:     "hdr-1",
		OrgID:        "org-1",
		SourceType:   domain.SourceInvoice,
		SourceID:     "inv-1",
		PostingDate:  june(1),
		CurrencyCode: "USD",
		ExchangeRate: dec("1"),
		TotalDebit:   dec("100.00"),
		TotalCredit:  dec("100.00"),
		Status:       domain.GLPosted,
		Lines: []domain.GLLine{
			{LineID: "l1", HeaderID: "hdr-1", LineNo: 1, AccountID: "ar", Debit: dec("100.00"), Credit: dec("0"), CustomerID: &customer},
			{LineID: "l2", HeaderID: "hdr-1", LineNo: 2, AccountID: "sales", Debit: dec("0"), Credit: dec("100.00")},
		},
	}
	require.NoError(t, store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		return tx.InsertHeader(ctx, original)
	}))

	gen := NewReversalGenerator(NewGLValidator(), fixedClock)
	var reversal *domain.GLHeader
	require.NoError(t, store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		var err error
		reversal, err = gen.Reverse(ctx, tx, "org-1", "hdr-1", "user-1", "", june(5))
		return err
	}))

	assert.True(t, reversal.IsReversal)
	assert.Equal(t, june(5), reversal.PostingDate)
	assert.Equal(t, "Reversal of INVOICE inv-1", reversal.Memo)
	assert.Equal(t, original.SourceID, reversal.SourceID)
	require.Len(t, reversal.Lines, 2)
	assert.True(t, reversal.Lines[0].Credit.Equal(dec("100.00")))
	assert.Equal(t, &customer, reversal.Lines[0].CustomerID)
	assert.True(t, reversal.Lines[1].Debit.Equal(dec("100.00")))
	assert.NotEqual(t, "l1", reversal.Lines[0].LineID)

	stored, err := store.FindHeaderByID(ctx, "org-1", "hdr-1")
	require.NoError(t, err)
	require.NotNil(t, stored.ReversedByHeaderID)
	assert.Equal(t, reversal.HeaderID, *stored.ReversedByHeaderID)

	err = store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		_, err := gen.Reverse(ctx, tx, "org-1", "hdr-1", "user-1", "", june(6))
		return err
	})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyReversed)

	err = store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		_, err := gen.Reverse(ctx, tx, "org-1", reversal.HeaderID, "user-1", "", june(6))
		return err
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	err = store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		_, err := gen.Reverse(ctx, tx, "org-1", "missing", "user-1", "", june(6))
		return err
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
