package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	portsrepo "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/repositories"
)

// PgxDocumentReader serves non-locking document reads from the pool.
type PgxDocumentReader struct {
	BaseRepository
}

func newPgxDocumentReader(pool *pgxpool.Pool) *PgxDocumentReader {
	return &PgxDocumentReader{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DocumentReader = (*PgxDocumentReader)(nil)

func (r *PgxDocumentReader) FindSalesDocumentByID(ctx context.Context, orgID string, kind domain.TargetKind, id string) (*domain.SalesDocument, error) {
	return findSalesDocument(ctx, r.Pool, orgID, kind, id, false)
}

func (r *PgxDocumentReader) FindPaymentByID(ctx context.Context, orgID string, direction domain.PaymentDirection, id string) (*domain.Payment, error) {
	return findPayment(ctx, r.Pool, orgID, direction, id, false)
}

func (r *PgxDocumentReader) FindCreditNoteByID(ctx context.Context, orgID, id string) (*domain.CreditNote, error) {
	return findCreditNote(ctx, r.Pool, orgID, id, false)
}

func (r *PgxDocumentReader) FindOpeningBalanceByID(ctx context.Context, orgID, id string) (*domain.OpeningBalanceBatch, error) {
	return findOpeningBalance(ctx, r.Pool, orgID, id, false)
}

func (r *PgxDocumentReader) FindPDCByID(ctx context.Context, orgID, id string) (*domain.PDC, error) {
	return findPDC(ctx, r.Pool, orgID, id, false)
}
