package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/repositories"
)

// PgxTransactionManager runs units of work in a single Postgres transaction.
type PgxTransactionManager struct {
	BaseRepository
}

func newPgxTransactionManager(pool *pgxpool.Pool) *PgxTransactionManager {
	return &PgxTransactionManager{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionManager = (*PgxTransactionManager)(nil)

// WithinTx begins a transaction, hands fn a store bound to it and commits on success.
func (m *PgxTransactionManager) WithinTx(ctx context.Context, fn portsrepo.TxFunc) error {
	tx, err := m.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored once the transaction is committed
	defer m.Rollback(ctx, tx)

	if err := fn(ctx, &pgxTxStore{tx: tx}); err != nil {
		return err
	}
	return m.Commit(ctx, tx)
}

// pgxTxStore implements every transactional repository on one pgx.Tx.
type pgxTxStore struct {
	tx pgx.Tx
}

var _ portsrepo.TxStore = (*pgxTxStore)(nil)
