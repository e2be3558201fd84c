package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceType names the kind of business document a GL header was posted from.
type SourceType string

const (
	SourceInvoice          SourceType = "INVOICE"
	SourceBill             SourceType = "BILL"
	SourcePaymentReceived  SourceType = "PAYMENT_RECEIVED"
	SourceVendorPayment    SourceType = "VENDOR_PAYMENT"
	SourcePDCIncoming      SourceType = "PDC_INCOMING"
	SourcePDCOutgoing      SourceType = "PDC_OUTGOING"
	SourceCreditNote       SourceType = "CREDIT_NOTE"
	SourceCreditNoteRefund SourceType = "CREDIT_NOTE_REFUND"
	SourceOpeningBalance   SourceType = "OPENING_BALANCE"
)

// IsValid reports whether s is a known source type.
func (s SourceType) IsValid() bool {
	switch s {
	case SourceInvoice, SourceBill, SourcePaymentReceived, SourceVendorPayment,
		SourcePDCIncoming, SourcePDCOutgoing, SourceCreditNote, SourceCreditNoteRefund,
		SourceOpeningBalance:
		return true
	}
	return false
}

// GLStatus is always POSTED. Reversal is expressed by a second header, never by a status change.
type GLStatus string

const GLPosted GLStatus = "POSTED"

// GLHeader is one balanced journal entry. Headers are append-only; the only
// mutation ever applied is attaching ReversedByHeaderID.
type GLHeader struct {
	HeaderID           string          `json:"headerID"`
	OrgID              string          `json:"orgID"`
	SourceType         SourceType      `json:"sourceType"`
	SourceID           string          `json:"sourceID"`
	PostingDate        time.Time       `json:"postingDate"`
	CurrencyCode       string          `json:"currencyCode"`
	ExchangeRate       decimal.Decimal `json:"exchangeRate"`
	TotalDebit         decimal.Decimal `json:"totalDebit"`
	TotalCredit        decimal.Decimal `json:"totalCredit"`
	Status             GLStatus        `json:"status"`
	Memo               string          `json:"memo"`
	ReversedByHeaderID *string         `json:"reversedByHeaderID,omitempty"`
	IsReversal         bool            `json:"isReversal"`
	Lines              []GLLine        `json:"lines"`
	AuditFields
}

// IsActive reports whether the header still counts as the live posting for its source.
func (h GLHeader) IsActive() bool {
	return !h.IsReversal && h.ReversedByHeaderID == nil
}

// GLLine is one side of a GL header. Exactly one of Debit and Credit is positive.
type GLLine struct {
	LineID      string          `json:"lineID"`
	HeaderID    string          `json:"headerID"`
	LineNo      int             `json:"lineNo"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	CustomerID  *string         `json:"customerID,omitempty"`
	VendorID    *string         `json:"vendorID,omitempty"`
}

// Mirror returns the line with debit and credit swapped.
func (l GLLine) Mirror() GLLine {
	m := l
	m.Debit, m.Credit = l.Credit, l.Debit
	m.LineID = ""
	m.HeaderID = ""
	return m
}
