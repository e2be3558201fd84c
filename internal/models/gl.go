package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GLHeader is a row of gl_headers. Lines are loaded separately.
type GLHeader struct {
	HeaderID           string          `db:"header_id"`
	OrgID              string          `db:"org_id"`
	SourceType         string          `db:"source_type"`
	SourceID           string          `db:"source_id"`
	PostingDate        time.Time       `db:"posting_date"`
	CurrencyCode       string          `db:"currency_code"`
	ExchangeRate       decimal.Decimal `db:"exchange_rate"`
	TotalDebit         decimal.Decimal `db:"total_debit"`
	TotalCredit        decimal.Decimal `db:"total_credit"`
	Status             string          `db:"status"`
	Memo               string          `db:"memo"`
	ReversedByHeaderID *string         `db:"reversed_by_header_id"` // Nullable
	IsReversal         bool            `db:"is_reversal"`
	AuditFields
	Lines []GLLine `db:"-"`
}

// GLLine is a row of gl_lines.
type GLLine struct {
	LineID      string          `db:"line_id"`
	HeaderID    string          `db:"header_id"`
	LineNo      int             `db:"line_no"`
	AccountID   string          `db:"account_id"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description string          `db:"description"`
	CustomerID  *string         `db:"customer_id"` // Nullable
	VendorID    *string         `db:"vendor_id"`   // Nullable
}
