package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/models"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/utils/mapping"
)

// FindIdempotencyRecord returns nil, nil when the key has no committed record.
func (s *pgxTxStore) FindIdempotencyRecord(ctx context.Context, key domain.IdempotencyKey) (*domain.IdempotencyRecord, error) {
	query := `
		SELECT org_id, scope, actor_id, token, request_hash, response, status_code, created_at
		FROM idempotency_keys
		WHERE org_id = $1 AND scope = $2 AND actor_id = $3 AND token = $4
		FOR UPDATE;
	`
	rows, err := s.tx.Query(ctx, query, key.OrgID, key.Scope, key.ActorID, key.Token)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query idempotency key", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.IdempotencyRecord])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewAppError(500, "failed to scan idempotency key", err)
	}
	rec := mapping.ToDomainIdempotencyRecord(m)
	return &rec, nil
}

// InsertIdempotencyRecord blocks behind a concurrent uncommitted insert of the
// same key and fails with ErrDuplicate once that one commits.
func (s *pgxTxStore) InsertIdempotencyRecord(ctx context.Context, record domain.IdempotencyRecord) error {
	m := mapping.ToModelIdempotencyRecord(record)
	query := `
		INSERT INTO idempotency_keys (org_id, scope, actor_id, token, request_hash, response, status_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := s.tx.Exec(ctx, query,
		m.OrgID, m.Scope, m.ActorID, m.Token, m.RequestHash, m.Response, m.StatusCode, m.CreatedAt,
	)
	return mapWriteError(err, "idempotency key", m.Scope)
}
