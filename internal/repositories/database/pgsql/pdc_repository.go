package pgsql

import (
	"context"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/models"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/utils/mapping"
)

const pdcColumns = `pdc_id, org_id, direction, number, status, party_id, bank_account_id, cheque_number,
		cheque_date, expected_clear_date, currency_code, exchange_rate, amount, memo, allocations,
		clearing_header_id, reversal_header_id, scheduled_at, deposited_at, cleared_at, bounced_at, cancelled_at,
		created_at, created_by, last_updated_at, last_updated_by`

func findPDC(ctx context.Context, q querier, orgID, id string, lock bool) (*domain.PDC, error) {
	query := `
		SELECT ` + pdcColumns + `
		FROM pdcs
		WHERE org_id = $1 AND pdc_id = $2` + forUpdate(lock)
	m, err := collectOne[models.PDC](ctx, q, query, "pdc", id, orgID, id)
	if err != nil {
		return nil, err
	}
	pdc := mapping.ToDomainPDC(m)
	return &pdc, nil
}

func (s *pgxTxStore) InsertPDC(ctx context.Context, pdc domain.PDC) error {
	m := mapping.ToModelPDC(pdc)
	query := `
		INSERT INTO pdcs (` + pdcColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26);
	`
	_, err := s.tx.Exec(ctx, query,
		m.PDCID, m.OrgID, m.Direction, m.Number, m.Status, m.PartyID, m.BankAccountID, m.ChequeNumber,
		m.ChequeDate, m.ExpectedClearDate, m.CurrencyCode, m.ExchangeRate, m.Amount, m.Memo, m.Allocations,
		m.ClearingHeaderID, m.ReversalHeaderID, m.ScheduledAt, m.DepositedAt, m.ClearedAt, m.BouncedAt, m.CancelledAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapWriteError(err, "pdc", m.PDCID)
}

func (s *pgxTxStore) FindPDCForUpdate(ctx context.Context, orgID, id string) (*domain.PDC, error) {
	return findPDC(ctx, s.tx, orgID, id, true)
}

func (s *pgxTxStore) UpdatePDC(ctx context.Context, pdc domain.PDC) error {
	m := mapping.ToModelPDC(pdc)
	query := `
		UPDATE pdcs
		SET status = $3, party_id = $4, bank_account_id = $5, cheque_number = $6, cheque_date = $7,
			expected_clear_date = $8, currency_code = $9, exchange_rate = $10, amount = $11, memo = $12,
			allocations = $13, clearing_header_id = $14, reversal_header_id = $15, scheduled_at = $16,
			deposited_at = $17, cleared_at = $18, bounced_at = $19, cancelled_at = $20,
			last_updated_at = $21, last_updated_by = $22
		WHERE org_id = $1 AND pdc_id = $2;
	`
	tag, err := s.tx.Exec(ctx, query,
		m.OrgID, m.PDCID, m.Status, m.PartyID, m.BankAccountID, m.ChequeNumber, m.ChequeDate,
		m.ExpectedClearDate, m.CurrencyCode, m.ExchangeRate, m.Amount, m.Memo,
		m.Allocations, m.ClearingHeaderID, m.ReversalHeaderID, m.ScheduledAt,
		m.DepositedAt, m.ClearedAt, m.BouncedAt, m.CancelledAt,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "pdc", m.PDCID)
	}
	return requireRowsAffected(tag, "pdc", m.PDCID)
}
