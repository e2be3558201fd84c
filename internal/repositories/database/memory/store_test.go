package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	portsrepo "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func header(id, sourceID string, day int) domain.GLHeader {
	return domain.GLHeader{
		HeaderID:    id,
		OrgID:       "org-1",
		SourceType:  domain.SourceInvoice,
		SourceID:    sourceID,
		PostingDate: time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
		TotalDebit:  decimal.NewFromInt(10),
		TotalCredit: decimal.NewFromInt(10),
		Status:      domain.GLPosted,
		Lines: []domain.GLLine{
			{LineNo: 1, AccountID: "ar", Debit: decimal.NewFromInt(10), Credit: decimal.Zero},
			{LineNo: 2, AccountID: "sales", Debit: decimal.Zero, Credit: decimal.NewFromInt(10)},
		},
	}
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		require.NoError(t, tx.InsertHeader(ctx, header("h1", "inv-1", 1)))
		require.NoError(t, tx.InsertAuditLog(ctx, domain.AuditLog{AuditID: "a1"}))
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, store.HeaderCount("org-1"))
	assert.Empty(t, store.AuditLogs())
}

func TestWithinTx_CommitsAuditWithState(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	err := store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		if err := tx.InsertHeader(ctx, header("h1", "inv-1", 1)); err != nil {
			return err
		}
		return tx.InsertAuditLog(ctx, domain.AuditLog{AuditID: "a1"})
	})

	require.NoError(t, err)
	assert.Equal(t, 1, store.HeaderCount("org-1"))
	require.Len(t, store.AuditLogs(), 1)
}

func TestWriteAuditLog_SurvivesRollback(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	_ = store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		require.NoError(t, store.WriteAuditLog(ctx, domain.AuditLog{AuditID: "blocked", Blocked: true}))
		return errors.New("rolled back")
	})

	logs := store.AuditLogs()
	require.Len(t, logs, 1)
	assert.True(t, logs[0].Blocked)
}

func TestInsertHeader_OneActiveHeaderPerSource(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	err := store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		require.NoError(t, tx.InsertHeader(ctx, header("h1", "inv-1", 1)))

		dup := tx.InsertHeader(ctx, header("h2", "inv-1", 1))
		assert.ErrorIs(t, dup, apperrors.ErrDuplicate)

		reversal := header("h3", "inv-1", 2)
		reversal.IsReversal = true
		require.NoError(t, tx.InsertHeader(ctx, reversal))
		require.NoError(t, tx.SetReversedBy(ctx, "org-1", "h1", "h3"))

		exists, err := tx.ExistsActiveHeader(ctx, "org-1", domain.SourceInvoice, "inv-1")
		require.NoError(t, err)
		assert.False(t, exists)

		// the source may be posted again once its header is reversed
		return tx.InsertHeader(ctx, header("h4", "inv-1", 3))
	})
	require.NoError(t, err)
	assert.Equal(t, 3, store.HeaderCount("org-1"))
}

func TestIdempotencyRecord_Duplicate(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	key := domain.IdempotencyKey{OrgID: "org-1", Scope: "payment.post", ActorID: "u1", Token: "t1"}

	err := store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		rec, err := tx.FindIdempotencyRecord(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, rec)
		return tx.InsertIdempotencyRecord(ctx, domain.IdempotencyRecord{IdempotencyKey: key, RequestHash: "h", Response: []byte(`{}`)})
	})
	require.NoError(t, err)

	err = store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		return tx.InsertIdempotencyRecord(ctx, domain.IdempotencyRecord{IdempotencyKey: key, RequestHash: "h"})
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestListHeaders_Pagination(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		for i, id := range []string{"h3", "h1", "h2"} {
			if err := tx.InsertHeader(ctx, header(id, "inv-"+id, 3-i)); err != nil {
				return err
			}
		}
		return nil
	}))

	page1, next, err := store.ListHeaders(ctx, "org-1", portsrepo.ListHeadersFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page1, 2)
	require.NotNil(t, next)
	assert.Equal(t, "h2", page1[0].HeaderID)
	assert.Equal(t, "h1", page1[1].HeaderID)

	page2, next, err := store.ListHeaders(ctx, "org-1", portsrepo.ListHeadersFilter{Limit: 2, NextToken: next})
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, "h3", page2[0].HeaderID)
	assert.Nil(t, next)
}

func TestNextDocumentNumber(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	var got []int64
	for i := 0; i < 2; i++ {
		require.NoError(t, store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
			n, err := tx.NextDocumentNumber(ctx, "org-1", "INV")
			got = append(got, n)
			return err
		}))
	}
	assert.Equal(t, []int64{1, 2}, got)
}
