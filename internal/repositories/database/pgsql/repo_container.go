package pgsql

import (
	portsrepo "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:   newPgxTransactionManager(dbPool),
		GLReader:    newPgxGLReader(dbPool),
		DocReader:   newPgxDocumentReader(dbPool),
		AuditWriter: newPgxAuditWriter(dbPool),
	}
}
