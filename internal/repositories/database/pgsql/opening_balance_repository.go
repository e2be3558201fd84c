package pgsql

import (
	"context"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/models"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/utils/mapping"
)

const openingBalanceColumns = `batch_id, org_id, number, as_of_date, currency_code, memo, lines, status, gl_header_id,
		created_at, created_by, last_updated_at, last_updated_by`

func findOpeningBalance(ctx context.Context, q querier, orgID, id string, lock bool) (*domain.OpeningBalanceBatch, error) {
	query := `
		SELECT ` + openingBalanceColumns + `
		FROM opening_balances
		WHERE org_id = $1 AND batch_id = $2` + forUpdate(lock)
	m, err := collectOne[models.OpeningBalanceBatch](ctx, q, query, "opening balance", id, orgID, id)
	if err != nil {
		return nil, err
	}
	batch := mapping.ToDomainOpeningBalance(m)
	return &batch, nil
}

func (s *pgxTxStore) InsertOpeningBalance(ctx context.Context, batch domain.OpeningBalanceBatch) error {
	m := mapping.ToModelOpeningBalance(batch)
	query := `
		INSERT INTO opening_balances (` + openingBalanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := s.tx.Exec(ctx, query,
		m.BatchID, m.OrgID, m.Number, m.AsOfDate, m.CurrencyCode, m.Memo, m.Lines, m.Status, m.GLHeaderID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapWriteError(err, "opening balance", m.BatchID)
}

func (s *pgxTxStore) FindOpeningBalanceForUpdate(ctx context.Context, orgID, id string) (*domain.OpeningBalanceBatch, error) {
	return findOpeningBalance(ctx, s.tx, orgID, id, true)
}

func (s *pgxTxStore) UpdateOpeningBalance(ctx context.Context, batch domain.OpeningBalanceBatch) error {
	m := mapping.ToModelOpeningBalance(batch)
	query := `
		UPDATE opening_balances
		SET as_of_date = $3, currency_code = $4, memo = $5, lines = $6, status = $7, gl_header_id = $8,
			last_updated_at = $9, last_updated_by = $10
		WHERE org_id = $1 AND batch_id = $2;
	`
	tag, err := s.tx.Exec(ctx, query,
		m.OrgID, m.BatchID, m.AsOfDate, m.CurrencyCode, m.Memo, m.Lines, m.Status, m.GLHeaderID,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "opening balance", m.BatchID)
	}
	return requireRowsAffected(tag, "opening balance", m.BatchID)
}
