package repositories

import (
	"context"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OrganizationTxRepository reads tenant settings.
type OrganizationTxRepository interface {
	// GetOrganization returns the organization including its lock date.
	// Returns apperrors.ErrNotFound if it does not exist.
	GetOrganization(ctx context.Context, orgID string) (*domain.Organization, error)
}

// AccountTxRepository resolves accounts for posting rules.
type AccountTxRepository interface {
	// FindAccountBySubtype returns the active account of the given subtype.
	// Returns apperrors.ErrNotFound when the organization has none.
	FindAccountBySubtype(ctx context.Context, orgID string, subtype domain.AccountSubtype) (*domain.Account, error)

	// FindAccountsByIDs returns the requested accounts keyed by id.
	// Returns apperrors.ErrNotFound if any id is missing from the organization.
	FindAccountsByIDs(ctx context.Context, orgID string, accountIDs []string) (map[string]domain.Account, error)
}

// GLTxRepository writes and locks GL headers.
type GLTxRepository interface {
	// ExistsActiveHeader reports whether the source already has a header that is
	// neither a reversal nor reversed.
	ExistsActiveHeader(ctx context.Context, orgID string, sourceType domain.SourceType, sourceID string) (bool, error)

	// InsertHeader persists a header and its lines.
	// Returns apperrors.ErrDuplicate when another active header exists for the source.
	InsertHeader(ctx context.Context, header domain.GLHeader) error

	// FindHeaderForUpdate loads a header with its lines and locks it.
	FindHeaderForUpdate(ctx context.Context, orgID, headerID string) (*domain.GLHeader, error)

	// FindActiveHeaderForSource returns the live header for a source, locked.
	// Returns apperrors.ErrNotFound if none exists.
	FindActiveHeaderForSource(ctx context.Context, orgID string, sourceType domain.SourceType, sourceID string) (*domain.GLHeader, error)

	// SetReversedBy attaches the reversal header id to the original header.
	SetReversedBy(ctx context.Context, orgID, headerID, reversalHeaderID string) error
}

// TargetDocumentTxRepository locks and updates the payment fields of invoices and bills.
type TargetDocumentTxRepository interface {
	// LockTargetDocuments reads the targets with FOR UPDATE, in id order.
	// Returns apperrors.ErrNotFound if any id is missing for the kind.
	LockTargetDocuments(ctx context.Context, orgID string, kind domain.TargetKind, ids []string) (map[string]domain.TargetDocument, error)

	// UpdateTargetPayment writes AmountPaid and PaymentStatus together.
	UpdateTargetPayment(ctx context.Context, orgID string, kind domain.TargetKind, id string, amountPaid decimal.Decimal, status domain.PaymentStatus) error
}

// SalesDocumentTxRepository stores invoices and bills.
type SalesDocumentTxRepository interface {
	InsertSalesDocument(ctx context.Context, doc domain.SalesDocument) error
	FindSalesDocumentForUpdate(ctx context.Context, orgID string, kind domain.TargetKind, id string) (*domain.SalesDocument, error)
	UpdateSalesDocument(ctx context.Context, doc domain.SalesDocument) error
}

// PaymentTxRepository stores customer and vendor payments.
type PaymentTxRepository interface {
	InsertPayment(ctx context.Context, payment domain.Payment) error
	FindPaymentForUpdate(ctx context.Context, orgID string, direction domain.PaymentDirection, id string) (*domain.Payment, error)
	UpdatePayment(ctx context.Context, payment domain.Payment) error
}

// CreditNoteTxRepository stores credit notes with their applications and refunds.
type CreditNoteTxRepository interface {
	InsertCreditNote(ctx context.Context, note domain.CreditNote) error
	FindCreditNoteForUpdate(ctx context.Context, orgID, id string) (*domain.CreditNote, error)
	UpdateCreditNote(ctx context.Context, note domain.CreditNote) error
}

// OpeningBalanceTxRepository stores opening balance batches.
type OpeningBalanceTxRepository interface {
	InsertOpeningBalance(ctx context.Context, batch domain.OpeningBalanceBatch) error
	FindOpeningBalanceForUpdate(ctx context.Context, orgID, id string) (*domain.OpeningBalanceBatch, error)
	UpdateOpeningBalance(ctx context.Context, batch domain.OpeningBalanceBatch) error
}

// PDCTxRepository stores post-dated cheques.
type PDCTxRepository interface {
	InsertPDC(ctx context.Context, pdc domain.PDC) error
	FindPDCForUpdate(ctx context.Context, orgID, id string) (*domain.PDC, error)
	UpdatePDC(ctx context.Context, pdc domain.PDC) error
}

// SequenceTxRepository hands out document numbers.
type SequenceTxRepository interface {
	// NextDocumentNumber atomically increments and returns the counter for key.
	// The first value for a key is 1.
	NextDocumentNumber(ctx context.Context, orgID, key string) (int64, error)
}

// IdempotencyTxRepository stores idempotency outcomes.
type IdempotencyTxRepository interface {
	// FindIdempotencyRecord returns the committed record for key, locked, or nil if none.
	FindIdempotencyRecord(ctx context.Context, key domain.IdempotencyKey) (*domain.IdempotencyRecord, error)

	// InsertIdempotencyRecord stores a record.
	// Returns apperrors.ErrDuplicate if the key already exists.
	InsertIdempotencyRecord(ctx context.Context, record domain.IdempotencyRecord) error
}

// AuditTxRepository writes audit entries that commit or roll back with the transaction.
type AuditTxRepository interface {
	InsertAuditLog(ctx context.Context, entry domain.AuditLog) error
}

// AuditWriter writes audit entries outside any business transaction, so they
// persist even when the surrounding operation is rolled back.
type AuditWriter interface {
	WriteAuditLog(ctx context.Context, entry domain.AuditLog) error
}

// ListHeadersFilter narrows a GL header listing.
type ListHeadersFilter struct {
	SourceType *domain.SourceType
	SourceID   *string
	Limit      int
	NextToken  *string
}

// GLReader serves read-only GL queries outside a transaction.
type GLReader interface {
	// FindHeaderByID loads a header with its lines.
	FindHeaderByID(ctx context.Context, orgID, headerID string) (*domain.GLHeader, error)

	// ListHeaders returns headers in posting order with lines, plus the next page token.
	ListHeaders(ctx context.Context, orgID string, filter ListHeadersFilter) ([]domain.GLHeader, *string, error)
}

// DocumentReader serves read-only document lookups outside a transaction.
type DocumentReader interface {
	FindSalesDocumentByID(ctx context.Context, orgID string, kind domain.TargetKind, id string) (*domain.SalesDocument, error)
	FindPaymentByID(ctx context.Context, orgID string, direction domain.PaymentDirection, id string) (*domain.Payment, error)
	FindCreditNoteByID(ctx context.Context, orgID, id string) (*domain.CreditNote, error)
	FindOpeningBalanceByID(ctx context.Context, orgID, id string) (*domain.OpeningBalanceBatch, error)
	FindPDCByID(ctx context.Context, orgID, id string) (*domain.PDC, error)
}
