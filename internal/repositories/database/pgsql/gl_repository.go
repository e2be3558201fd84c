package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	portsrepo "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/repositories"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/models"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/utils/mapping"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/utils/pagination"
)

const glHeaderColumns = `header_id, org_id, source_type, source_id, posting_date, currency_code, exchange_rate,
		total_debit, total_credit, status, memo, reversed_by_header_id, is_reversal,
		created_at, created_by, last_updated_at, last_updated_by`

const glLineColumns = `line_id, header_id, line_no, account_id, debit, credit, description, customer_id, vendor_id`

// activeHeaderPredicate matches the partial unique index on gl_headers.
const activeHeaderPredicate = `NOT is_reversal AND reversed_by_header_id IS NULL`

func (s *pgxTxStore) ExistsActiveHeader(ctx context.Context, orgID string, sourceType domain.SourceType, sourceID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM gl_headers
			WHERE org_id = $1 AND source_type = $2 AND source_id = $3 AND ` + activeHeaderPredicate + `
		);
	`
	var exists bool
	if err := s.tx.QueryRow(ctx, query, orgID, string(sourceType), sourceID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check active gl header", err)
	}
	return exists, nil
}

// InsertHeader inserts the header and queues its lines in a single batch.
func (s *pgxTxStore) InsertHeader(ctx context.Context, header domain.GLHeader) error {
	m := mapping.ToModelGLHeader(header)
	headerQuery := `
		INSERT INTO gl_headers (` + glHeaderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := s.tx.Exec(ctx, headerQuery,
		m.HeaderID,
		m.OrgID,
		m.SourceType,
		m.SourceID,
		m.PostingDate,
		m.CurrencyCode,
		m.ExchangeRate,
		m.TotalDebit,
		m.TotalCredit,
		m.Status,
		m.Memo,
		m.ReversedByHeaderID,
		m.IsReversal,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "gl header", m.HeaderID)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO gl_lines (` + glLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, l := range m.Lines {
		batch.Queue(lineQuery,
			l.LineID,
			m.HeaderID,
			l.LineNo,
			l.AccountID,
			l.Debit,
			l.Credit,
			l.Description,
			l.CustomerID,
			l.VendorID,
		)
	}
	// Close surfaces the first failing command in the batch
	if err := s.tx.SendBatch(ctx, batch).Close(); err != nil {
		return mapWriteError(err, "gl lines for header", m.HeaderID)
	}
	return nil
}

func (s *pgxTxStore) FindHeaderForUpdate(ctx context.Context, orgID, headerID string) (*domain.GLHeader, error) {
	return findHeader(ctx, s.tx, `org_id = $1 AND header_id = $2`, true, "gl header", headerID, orgID, headerID)
}

func (s *pgxTxStore) FindActiveHeaderForSource(ctx context.Context, orgID string, sourceType domain.SourceType, sourceID string) (*domain.GLHeader, error) {
	where := `org_id = $1 AND source_type = $2 AND source_id = $3 AND ` + activeHeaderPredicate
	return findHeader(ctx, s.tx, where, true, "gl header for source", sourceID, orgID, string(sourceType), sourceID)
}

func (s *pgxTxStore) SetReversedBy(ctx context.Context, orgID, headerID, reversalHeaderID string) error {
	query := `
		UPDATE gl_headers
		SET reversed_by_header_id = $3
		WHERE org_id = $1 AND header_id = $2 AND reversed_by_header_id IS NULL;
	`
	tag, err := s.tx.Exec(ctx, query, orgID, headerID, reversalHeaderID)
	if err != nil {
		return mapWriteError(err, "gl header", headerID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: gl header %s not found or already reversed", apperrors.ErrConflict, headerID)
	}
	return nil
}

// findHeader loads one header matching where, then its lines.
func findHeader(ctx context.Context, q querier, where string, lock bool, entity, id string, args ...any) (*domain.GLHeader, error) {
	query := `SELECT ` + glHeaderColumns + ` FROM gl_headers WHERE ` + where + forUpdate(lock)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query "+entity+" "+id, err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.GLHeader])
	if err != nil {
		return nil, mapReadError(err, entity, id)
	}

	headers := []models.GLHeader{m}
	if err := attachLines(ctx, q, headers); err != nil {
		return nil, err
	}
	h := mapping.ToDomainGLHeader(headers[0])
	return &h, nil
}

// attachLines loads the lines of every header in one query, ordered by line number.
func attachLines(ctx context.Context, q querier, headers []models.GLHeader) error {
	if len(headers) == 0 {
		return nil
	}
	ids := make([]string, len(headers))
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		ids[i] = h.HeaderID
		index[h.HeaderID] = i
	}

	query := `
		SELECT ` + glLineColumns + `
		FROM gl_lines
		WHERE header_id = ANY($1)
		ORDER BY header_id, line_no;
	`
	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return apperrors.NewAppError(500, "failed to query gl lines", err)
	}
	lines, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.GLLine])
	if err != nil {
		return apperrors.NewAppError(500, "failed to scan gl lines", err)
	}
	for _, l := range lines {
		i := index[l.HeaderID]
		headers[i].Lines = append(headers[i].Lines, l)
	}
	return nil
}

// PgxGLReader serves GL queries from the pool.
type PgxGLReader struct {
	BaseRepository
}

func newPgxGLReader(pool *pgxpool.Pool) *PgxGLReader {
	return &PgxGLReader{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.GLReader = (*PgxGLReader)(nil)

// FindHeaderByID loads a header with its lines.
func (r *PgxGLReader) FindHeaderByID(ctx context.Context, orgID, headerID string) (*domain.GLHeader, error) {
	return findHeader(ctx, r.Pool, `org_id = $1 AND header_id = $2`, false, "gl header", headerID, orgID, headerID)
}

// ListHeaders pages through headers ordered by posting date, creation time and id.
func (r *PgxGLReader) ListHeaders(ctx context.Context, orgID string, filter portsrepo.ListHeadersFilter) ([]domain.GLHeader, *string, error) {
	limit := pagination.ClampLimit(filter.Limit)

	args := []any{orgID}
	where := `org_id = $1`
	if filter.SourceType != nil {
		args = append(args, string(*filter.SourceType))
		where += fmt.Sprintf(` AND source_type = $%d`, len(args))
	}
	if filter.SourceID != nil {
		args = append(args, *filter.SourceID)
		where += fmt.Sprintf(` AND source_id = $%d`, len(args))
	}
	if filter.NextToken != nil {
		cursor, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("%s", err.Error())
		}
		args = append(args, cursor.PostingDate, cursor.CreatedAt, cursor.HeaderID)
		n := len(args)
		where += fmt.Sprintf(` AND (posting_date, created_at, header_id) > ($%d::date, $%d::timestamptz, $%d)`, n-2, n-1, n)
	}
	// One extra row tells whether another page exists
	args = append(args, limit+1)

	query := fmt.Sprintf(`
		SELECT %s
		FROM gl_headers
		WHERE %s
		ORDER BY posting_date, created_at, header_id
		LIMIT $%d;
	`, glHeaderColumns, where, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list gl headers", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.GLHeader])
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to scan gl headers", err)
	}

	var next *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(pagination.Cursor{PostingDate: last.PostingDate, CreatedAt: last.CreatedAt, HeaderID: last.HeaderID})
		next = &token
	}

	if err := attachLines(ctx, r.Pool, ms); err != nil {
		return nil, nil, err
	}
	return mapping.ToDomainGLHeaderSlice(ms), next, nil
}
