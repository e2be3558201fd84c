package pgsql

import (
	"context"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/models"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/utils/mapping"
)

const creditNoteColumns = `credit_note_id, org_id, number, customer_id, note_date, currency_code, exchange_rate,
		memo, lines, total, amount_applied, amount_refunded, applications, refunds, status, gl_header_id,
		created_at, created_by, last_updated_at, last_updated_by`

func findCreditNote(ctx context.Context, q querier, orgID, id string, lock bool) (*domain.CreditNote, error) {
	query := `
		SELECT ` + creditNoteColumns + `
		FROM credit_notes
		WHERE org_id = $1 AND credit_note_id = $2` + forUpdate(lock)
	m, err := collectOne[models.CreditNote](ctx, q, query, "credit note", id, orgID, id)
	if err != nil {
		return nil, err
	}
	note := mapping.ToDomainCreditNote(m)
	return &note, nil
}

func (s *pgxTxStore) InsertCreditNote(ctx context.Context, note domain.CreditNote) error {
	m := mapping.ToModelCreditNote(note)
	query := `
		INSERT INTO credit_notes (` + creditNoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := s.tx.Exec(ctx, query,
		m.CreditNoteID, m.OrgID, m.Number, m.CustomerID, m.NoteDate, m.CurrencyCode, m.ExchangeRate,
		m.Memo, m.Lines, m.Total, m.AmountApplied, m.AmountRefunded, m.Applications, m.Refunds, m.Status, m.GLHeaderID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapWriteError(err, "credit note", m.CreditNoteID)
}

func (s *pgxTxStore) FindCreditNoteForUpdate(ctx context.Context, orgID, id string) (*domain.CreditNote, error) {
	return findCreditNote(ctx, s.tx, orgID, id, true)
}

func (s *pgxTxStore) UpdateCreditNote(ctx context.Context, note domain.CreditNote) error {
	m := mapping.ToModelCreditNote(note)
	query := `
		UPDATE credit_notes
		SET number = $3, customer_id = $4, note_date = $5, currency_code = $6, exchange_rate = $7,
			memo = $8, lines = $9, total = $10, amount_applied = $11, amount_refunded = $12,
			applications = $13, refunds = $14, status = $15, gl_header_id = $16,
			last_updated_at = $17, last_updated_by = $18
		WHERE org_id = $1 AND credit_note_id = $2;
	`
	tag, err := s.tx.Exec(ctx, query,
		m.OrgID, m.CreditNoteID, m.Number, m.CustomerID, m.NoteDate, m.CurrencyCode, m.ExchangeRate,
		m.Memo, m.Lines, m.Total, m.AmountApplied, m.AmountRefunded,
		m.Applications, m.Refunds, m.Status, m.GLHeaderID,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "credit note", m.CreditNoteID)
	}
	return requireRowsAffected(tag, "credit note", m.CreditNoteID)
}
