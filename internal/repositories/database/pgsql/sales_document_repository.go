package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/models"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

const salesDocumentColumns = `document_id, org_id, kind, number, party_id, document_date, due_date,
		currency_code, exchange_rate, memo, lines, total, amount_paid, payment_status, status, gl_header_id,
		created_at, created_by, last_updated_at, last_updated_by`

// collectOne runs a single-row query and scans it into M by column name.
func collectOne[M any](ctx context.Context, q querier, query, entity, id string, args ...any) (M, error) {
	var zero M
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return zero, apperrors.NewAppError(500, "failed to query "+entity+" "+id, err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[M])
	if err != nil {
		return zero, mapReadError(err, entity, id)
	}
	return m, nil
}

func findSalesDocument(ctx context.Context, q querier, orgID string, kind domain.TargetKind, id string, lock bool) (*domain.SalesDocument, error) {
	query := `
		SELECT ` + salesDocumentColumns + `
		FROM sales_documents
		WHERE org_id = $1 AND kind = $2 AND document_id = $3` + forUpdate(lock)
	m, err := collectOne[models.SalesDocument](ctx, q, query, string(kind), id, orgID, string(kind), id)
	if err != nil {
		return nil, err
	}
	doc := mapping.ToDomainSalesDocument(m)
	return &doc, nil
}

func (s *pgxTxStore) InsertSalesDocument(ctx context.Context, doc domain.SalesDocument) error {
	m := mapping.ToModelSalesDocument(doc)
	query := `
		INSERT INTO sales_documents (` + salesDocumentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := s.tx.Exec(ctx, query,
		m.DocumentID, m.OrgID, m.Kind, m.Number, m.PartyID, m.DocumentDate, m.DueDate,
		m.CurrencyCode, m.ExchangeRate, m.Memo, m.Lines, m.Total, m.AmountPaid, m.PaymentStatus, m.Status, m.GLHeaderID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapWriteError(err, m.Kind, m.DocumentID)
}

func (s *pgxTxStore) FindSalesDocumentForUpdate(ctx context.Context, orgID string, kind domain.TargetKind, id string) (*domain.SalesDocument, error) {
	return findSalesDocument(ctx, s.tx, orgID, kind, id, true)
}

func (s *pgxTxStore) UpdateSalesDocument(ctx context.Context, doc domain.SalesDocument) error {
	m := mapping.ToModelSalesDocument(doc)
	query := `
		UPDATE sales_documents
		SET number = $3, party_id = $4, document_date = $5, due_date = $6, currency_code = $7,
			exchange_rate = $8, memo = $9, lines = $10, total = $11, amount_paid = $12,
			payment_status = $13, status = $14, gl_header_id = $15,
			last_updated_at = $16, last_updated_by = $17
		WHERE org_id = $1 AND document_id = $2;
	`
	tag, err := s.tx.Exec(ctx, query,
		m.OrgID, m.DocumentID, m.Number, m.PartyID, m.DocumentDate, m.DueDate, m.CurrencyCode,
		m.ExchangeRate, m.Memo, m.Lines, m.Total, m.AmountPaid,
		m.PaymentStatus, m.Status, m.GLHeaderID,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, m.Kind, m.DocumentID)
	}
	return requireRowsAffected(tag, m.Kind, m.DocumentID)
}

// LockTargetDocuments locks the invoices or bills in ascending id order.
func (s *pgxTxStore) LockTargetDocuments(ctx context.Context, orgID string, kind domain.TargetKind, ids []string) (map[string]domain.TargetDocument, error) {
	sorted := uniqueSorted(ids)
	query := `
		SELECT ` + salesDocumentColumns + `
		FROM sales_documents
		WHERE org_id = $1 AND kind = $2 AND document_id = ANY($3)
		ORDER BY document_id
		FOR UPDATE;
	`
	rows, err := s.tx.Query(ctx, query, orgID, string(kind), sorted)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock "+string(kind)+" documents", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.SalesDocument])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan "+string(kind)+" documents", err)
	}

	out := make(map[string]domain.TargetDocument, len(ms))
	for _, m := range ms {
		out[m.DocumentID] = mapping.ToDomainSalesDocument(m).AsTarget()
	}
	for _, id := range sorted {
		if _, ok := out[id]; !ok {
			return nil, apperrors.NewNotFoundError(string(kind), id)
		}
	}
	return out, nil
}

func (s *pgxTxStore) UpdateTargetPayment(ctx context.Context, orgID string, kind domain.TargetKind, id string, amountPaid decimal.Decimal, status domain.PaymentStatus) error {
	query := `
		UPDATE sales_documents
		SET amount_paid = $4, payment_status = $5
		WHERE org_id = $1 AND kind = $2 AND document_id = $3;
	`
	tag, err := s.tx.Exec(ctx, query, orgID, string(kind), id, amountPaid, string(status))
	if err != nil {
		return mapWriteError(err, string(kind), id)
	}
	return requireRowsAffected(tag, string(kind), id)
}
