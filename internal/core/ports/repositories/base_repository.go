package repositories

import (
	"context"
)

// TxFunc is the unit of work run inside one database transaction.
type TxFunc func(ctx context.Context, tx TxStore) error

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// WithinTx runs fn inside a single transaction. The transaction commits when fn
	// returns nil and rolls back otherwise; the error from fn is returned unchanged.
	// Calls must not be nested.
	WithinTx(ctx context.Context, fn TxFunc) error
}

// TxStore is every repository operation that must run inside a transaction.
// Methods whose name ends in ForUpdate take row locks that are held until the
// transaction ends.
type TxStore interface {
	OrganizationTxRepository
	AccountTxRepository
	GLTxRepository
	TargetDocumentTxRepository
	SalesDocumentTxRepository
	PaymentTxRepository
	CreditNoteTxRepository
	OpeningBalanceTxRepository
	PDCTxRepository
	SequenceTxRepository
	IdempotencyTxRepository
	AuditTxRepository
}

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager   TransactionManager
	GLReader    GLReader
	DocReader   DocumentReader
	AuditWriter AuditWriter
}
