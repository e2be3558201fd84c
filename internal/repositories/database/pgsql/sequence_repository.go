package pgsql

import (
	"context"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
)

// NextDocumentNumber bumps the per-organization counter in one statement; the
// row lock it takes serializes concurrent callers for the same key.
func (s *pgxTxStore) NextDocumentNumber(ctx context.Context, orgID, key string) (int64, error) {
	query := `
		INSERT INTO document_sequences (org_id, seq_key, next_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (org_id, seq_key)
		DO UPDATE SET next_value = document_sequences.next_value + 1
		RETURNING next_value;
	`
	var n int64
	if err := s.tx.QueryRow(ctx, query, orgID, key).Scan(&n); err != nil {
		return 0, apperrors.NewAppError(500, "failed to allocate "+key+" number", err)
	}
	return n, nil
}
