package services

import (
	"context"
	"testing"
	"time"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	portsrepo "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/repositories"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/repositories/database/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoResult struct {
	Value string `json:"value"`
}

func fixedClock() time.Time {
	return time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)
}

// staleReadTx hides committed idempotency records, as a second request that
// read before the first one committed would.
type staleReadTx struct {
	portsrepo.TxStore
}

func (staleReadTx) FindIdempotencyRecord(context.Context, domain.IdempotencyKey) (*domain.IdempotencyRecord, error) {
	return nil, nil
}

// staleOnceTxManager hands out a stale view for its first transaction only.
type staleOnceTxManager struct {
	inner portsrepo.TransactionManager
	used  bool
}

func (m *staleOnceTxManager) WithinTx(ctx context.Context, fn portsrepo.TxFunc) error {
	return m.inner.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		if !m.used {
			m.used = true
			return fn(ctx, staleReadTx{TxStore: tx})
		}
		return fn(ctx, tx)
	})
}

func TestRunIdempotent(t *testing.T) {
	ctx := context.Background()
	key := domain.IdempotencyKey{OrgID: "org-1", Scope: "test.echo", ActorID: "user-1", Token: "tok"}

	t.Run("replays stored result without running", func(t *testing.T) {
		ledger := NewIdempotencyLedger(memory.NewStore(), fixedClock)
		runs := 0
		run := func(context.Context, portsrepo.TxStore) (echoResult, error) {
			runs++
			return echoResult{Value: "done"}, nil
		}

		first, info, err := runIdempotent(ctx, ledger, key, map[string]string{"a": "1"}, run)
		require.NoError(t, err)
		assert.False(t, info.Replayed)
		assert.Equal(t, "done", first.Value)

		second, replay, err := runIdempotent(ctx, ledger, key, map[string]string{"a": "1"}, run)
		require.NoError(t, err)
		assert.True(t, replay.Replayed)
		assert.Equal(t, info.Body, replay.Body)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, runs)
	})

	t.Run("different payload conflicts", func(t *testing.T) {
		ledger := NewIdempotencyLedger(memory.NewStore(), fixedClock)
		run := func(context.Context, portsrepo.TxStore) (echoResult, error) { return echoResult{Value: "x"}, nil }

		_, _, err := runIdempotent(ctx, ledger, key, map[string]string{"a": "1"}, run)
		require.NoError(t, err)
		_, _, err = runIdempotent(ctx, ledger, key, map[string]string{"a": "2"}, run)
		assert.ErrorIs(t, err, apperrors.ErrIdempotencyConflict)
	})

	t.Run("failed run stores nothing", func(t *testing.T) {
		ledger := NewIdempotencyLedger(memory.NewStore(), fixedClock)
		_, _, err := runIdempotent(ctx, ledger, key, "p", func(context.Context, portsrepo.TxStore) (echoResult, error) {
			return echoResult{}, apperrors.NewValidationError("nope")
		})
		require.ErrorIs(t, err, apperrors.ErrValidation)

		out, info, err := runIdempotent(ctx, ledger, key, "p", func(context.Context, portsrepo.TxStore) (echoResult, error) {
			return echoResult{Value: "retried"}, nil
		})
		require.NoError(t, err)
		assert.False(t, info.Replayed)
		assert.Equal(t, "retried", out.Value)
	})

	t.Run("empty token always runs", func(t *testing.T) {
		ledger := NewIdempotencyLedger(memory.NewStore(), fixedClock)
		noKey := key
		noKey.Token = ""
		runs := 0
		for i := 0; i < 2; i++ {
			_, info, err := runIdempotent(ctx, ledger, noKey, "p", func(context.Context, portsrepo.TxStore) (echoResult, error) {
				runs++
				return echoResult{}, nil
			})
			require.NoError(t, err)
			assert.False(t, info.Replayed)
		}
		assert.Equal(t, 2, runs)
	})

	t.Run("concurrent insert replays the committed result", func(t *testing.T) {
		store := memory.NewStore()
		_, _, err := runIdempotent(ctx, NewIdempotencyLedger(store, fixedClock), key, "p",
			func(context.Context, portsrepo.TxStore) (echoResult, error) { return echoResult{Value: "winner"}, nil })
		require.NoError(t, err)

		racer := NewIdempotencyLedger(&staleOnceTxManager{inner: store}, fixedClock)
		out, info, err := runIdempotent(ctx, racer, key, "p",
			func(context.Context, portsrepo.TxStore) (echoResult, error) { return echoResult{Value: "loser"}, nil })
		require.NoError(t, err)
		assert.True(t, info.Replayed)
		assert.Equal(t, "winner", out.Value)
	})
}
