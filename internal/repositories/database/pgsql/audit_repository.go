package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	portsrepo "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/repositories"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/utils/mapping"
)

func insertAuditLog(ctx context.Context, q querier, entry domain.AuditLog) error {
	m := mapping.ToModelAuditLog(entry)
	query := `
		INSERT INTO audit_logs (audit_id, org_id, actor_id, action, entity_type, entity_id,
			before, after, meta, blocked, hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := q.Exec(ctx, query,
		m.AuditID, m.OrgID, m.ActorID, m.Action, m.EntityType, m.EntityID,
		m.Before, m.After, m.Meta, m.Blocked, m.Hash, m.CreatedAt,
	)
	return mapWriteError(err, "audit log", m.AuditID)
}

func (s *pgxTxStore) InsertAuditLog(ctx context.Context, entry domain.AuditLog) error {
	return insertAuditLog(ctx, s.tx, entry)
}

// PgxAuditWriter writes audit entries on their own connection, outside any
// business transaction.
type PgxAuditWriter struct {
	BaseRepository
}

func newPgxAuditWriter(pool *pgxpool.Pool) *PgxAuditWriter {
	return &PgxAuditWriter{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditWriter = (*PgxAuditWriter)(nil)

func (w *PgxAuditWriter) WriteAuditLog(ctx context.Context, entry domain.AuditLog) error {
	return insertAuditLog(ctx, w.Pool, entry)
}
