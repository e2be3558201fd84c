package pgsql

import (
	"context"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/models"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/utils/mapping"
)

const paymentColumns = `payment_id, org_id, direction, number, party_id, bank_account_id, payment_date,
		currency_code, exchange_rate, amount, memo, allocations, status, gl_header_id, voided_at,
		created_at, created_by, last_updated_at, last_updated_by`

func findPayment(ctx context.Context, q querier, orgID string, direction domain.PaymentDirection, id string, lock bool) (*domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE org_id = $1 AND direction = $2 AND payment_id = $3` + forUpdate(lock)
	m, err := collectOne[models.Payment](ctx, q, query, "payment", id, orgID, string(direction), id)
	if err != nil {
		return nil, err
	}
	p := mapping.ToDomainPayment(m)
	return &p, nil
}

func (s *pgxTxStore) InsertPayment(ctx context.Context, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := s.tx.Exec(ctx, query,
		m.PaymentID, m.OrgID, m.Direction, m.Number, m.PartyID, m.BankAccountID, m.PaymentDate,
		m.CurrencyCode, m.ExchangeRate, m.Amount, m.Memo, m.Allocations, m.Status, m.GLHeaderID, m.VoidedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapWriteError(err, "payment", m.PaymentID)
}

func (s *pgxTxStore) FindPaymentForUpdate(ctx context.Context, orgID string, direction domain.PaymentDirection, id string) (*domain.Payment, error) {
	return findPayment(ctx, s.tx, orgID, direction, id, true)
}

func (s *pgxTxStore) UpdatePayment(ctx context.Context, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	query := `
		UPDATE payments
		SET party_id = $3, bank_account_id = $4, payment_date = $5, currency_code = $6,
			exchange_rate = $7, amount = $8, memo = $9, allocations = $10, status = $11,
			gl_header_id = $12, voided_at = $13, last_updated_at = $14, last_updated_by = $15
		WHERE org_id = $1 AND payment_id = $2;
	`
	tag, err := s.tx.Exec(ctx, query,
		m.OrgID, m.PaymentID, m.PartyID, m.BankAccountID, m.PaymentDate, m.CurrencyCode,
		m.ExchangeRate, m.Amount, m.Memo, m.Allocations, m.Status,
		m.GLHeaderID, m.VoidedAt, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "payment", m.PaymentID)
	}
	return requireRowsAffected(tag, "payment", m.PaymentID)
}
