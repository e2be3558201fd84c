package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentLine is one element of the lines jsonb column.
type DocumentLine struct {
	AccountID   string          `json:"accountID"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// Allocation is one element of the allocations jsonb column.
type Allocation struct {
	TargetID string          `json:"targetID"`
	Amount   decimal.Decimal `json:"amount"`
}

// SalesDocument is a row of sales_documents (invoices and bills).
type SalesDocument struct {
	DocumentID    string          `db:"document_id"`
	OrgID         string          `db:"org_id"`
	Kind          string          `db:"kind"`
	Number        string          `db:"number"`
	PartyID       string          `db:"party_id"`
	DocumentDate  time.Time       `db:"document_date"`
	DueDate       *time.Time      `db:"due_date"`
	CurrencyCode  string          `db:"currency_code"`
	ExchangeRate  decimal.Decimal `db:"exchange_rate"`
	Memo          string          `db:"memo"`
	Lines         []DocumentLine  `db:"lines"`
	Total         decimal.Decimal `db:"total"`
	AmountPaid    decimal.Decimal `db:"amount_paid"`
	PaymentStatus string          `db:"payment_status"`
	Status        string          `db:"status"`
	GLHeaderID    *string         `db:"gl_header_id"`
	AuditFields
}

// Payment is a row of payments.
type Payment struct {
	PaymentID     string          `db:"payment_id"`
	OrgID         string          `db:"org_id"`
	Direction     string          `db:"direction"`
	Number        string          `db:"number"`
	PartyID       string          `db:"party_id"`
	BankAccountID string          `db:"bank_account_id"`
	PaymentDate   time.Time       `db:"payment_date"`
	CurrencyCode  string          `db:"currency_code"`
	ExchangeRate  decimal.Decimal `db:"exchange_rate"`
	Amount        decimal.Decimal `db:"amount"`
	Memo          string          `db:"memo"`
	Allocations   []Allocation    `db:"allocations"`
	Status        string          `db:"status"`
	GLHeaderID    *string         `db:"gl_header_id"`
	VoidedAt      *time.Time      `db:"voided_at"`
	AuditFields
}

// CreditNoteApplication is one element of the applications jsonb column.
type CreditNoteApplication struct {
	ApplicationID string          `json:"applicationID"`
	InvoiceID     string          `json:"invoiceID"`
	Amount        decimal.Decimal `json:"amount"`
	AppliedAt     time.Time       `json:"appliedAt"`
}

// CreditNoteRefund is one element of the refunds jsonb column.
type CreditNoteRefund struct {
	RefundID      string          `json:"refundID"`
	BankAccountID string          `json:"bankAccountID"`
	Amount        decimal.Decimal `json:"amount"`
	RefundDate    time.Time       `json:"refundDate"`
	GLHeaderID    string          `json:"glHeaderID"`
}

// CreditNote is a row of credit_notes.
type CreditNote struct {
	CreditNoteID   string                  `db:"credit_note_id"`
	OrgID          string                  `db:"org_id"`
	Number         string                  `db:"number"`
	CustomerID     string                  `db:"customer_id"`
	NoteDate       time.Time               `db:"note_date"`
	CurrencyCode   string                  `db:"currency_code"`
	ExchangeRate   decimal.Decimal         `db:"exchange_rate"`
	Memo           string                  `db:"memo"`
	Lines          []DocumentLine          `db:"lines"`
	Total          decimal.Decimal         `db:"total"`
	AmountApplied  decimal.Decimal         `db:"amount_applied"`
	AmountRefunded decimal.Decimal         `db:"amount_refunded"`
	Applications   []CreditNoteApplication `db:"applications"`
	Refunds        []CreditNoteRefund      `db:"refunds"`
	Status         string                  `db:"status"`
	GLHeaderID     *string                 `db:"gl_header_id"`
	AuditFields
}

// OpeningBalanceLine is one element of the opening balance lines jsonb column.
type OpeningBalanceLine struct {
	AccountID   string          `json:"accountID"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	CustomerID  *string         `json:"customerID,omitempty"`
	VendorID    *string         `json:"vendorID,omitempty"`
}

// OpeningBalanceBatch is a row of opening_balances.
type OpeningBalanceBatch struct {
	BatchID      string               `db:"batch_id"`
	OrgID        string               `db:"org_id"`
	Number       string               `db:"number"`
	AsOfDate     time.Time            `db:"as_of_date"`
	CurrencyCode string               `db:"currency_code"`
	Memo         string               `db:"memo"`
	Lines        []OpeningBalanceLine `db:"lines"`
	Status       string               `db:"status"`
	GLHeaderID   *string              `db:"gl_header_id"`
	AuditFields
}

// PDC is a row of pdcs.
type PDC struct {
	PDCID             string          `db:"pdc_id"`
	OrgID             string          `db:"org_id"`
	Direction         string          `db:"direction"`
	Number            string          `db:"number"`
	Status            string          `db:"status"`
	PartyID           string          `db:"party_id"`
	BankAccountID     string          `db:"bank_account_id"`
	ChequeNumber      string          `db:"cheque_number"`
	ChequeDate        time.Time       `db:"cheque_date"`
	ExpectedClearDate *time.Time      `db:"expected_clear_date"`
	CurrencyCode      string          `db:"currency_code"`
	ExchangeRate      decimal.Decimal `db:"exchange_rate"`
	Amount            decimal.Decimal `db:"amount"`
	Memo              string          `db:"memo"`
	Allocations       []Allocation    `db:"allocations"`
	ClearingHeaderID  *string         `db:"clearing_header_id"`
	ReversalHeaderID  *string         `db:"reversal_header_id"`
	ScheduledAt       *time.Time      `db:"scheduled_at"`
	DepositedAt       *time.Time      `db:"deposited_at"`
	ClearedAt         *time.Time      `db:"cleared_at"`
	BouncedAt         *time.Time      `db:"bounced_at"`
	CancelledAt       *time.Time      `db:"cancelled_at"`
	AuditFields
}
