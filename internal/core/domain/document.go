package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType is the business document family accepted by post and void.
type DocumentType string

const (
	DocInvoice         DocumentType = "INVOICE"
	DocBill            DocumentType = "BILL"
	DocPaymentReceived DocumentType = "PAYMENT_RECEIVED"
	DocVendorPayment   DocumentType = "VENDOR_PAYMENT"
	DocCreditNote      DocumentType = "CREDIT_NOTE"
	DocOpeningBalance  DocumentType = "OPENING_BALANCE"
)

// DocumentStatus is the lifecycle of a postable document.
type DocumentStatus string

const (
	StatusDraft  DocumentStatus = "DRAFT"
	StatusPosted DocumentStatus = "POSTED"
	StatusVoid   DocumentStatus = "VOID"
)

// DocumentLine is a revenue or expense line on an invoice, bill or credit note.
type DocumentLine struct {
	AccountID   string          `json:"accountID"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// SalesDocument is an invoice (customer) or a bill (vendor). Kind decides which.
type SalesDocument struct {
	DocumentID    string          `json:"documentID"`
	OrgID         string          `json:"orgID"`
	Kind          TargetKind      `json:"kind"`
	Number        string          `json:"number"`
	PartyID       string          `json:"partyID"`
	DocumentDate  time.Time       `json:"documentDate"`
	DueDate       *time.Time      `json:"dueDate,omitempty"`
	CurrencyCode  string          `json:"currencyCode"`
	ExchangeRate  decimal.Decimal `json:"exchangeRate"`
	Memo          string          `json:"memo"`
	Lines         []DocumentLine  `json:"lines"`
	Total         decimal.Decimal `json:"total"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	Status        DocumentStatus  `json:"status"`
	GLHeaderID    *string         `json:"glHeaderID,omitempty"`
	AuditFields
}

// AsTarget projects the document into its allocation view.
func (d SalesDocument) AsTarget() TargetDocument {
	return TargetDocument{
		DocumentID:    d.DocumentID,
		OrgID:         d.OrgID,
		Kind:          d.Kind,
		PartyID:       d.PartyID,
		Status:        d.Status,
		CurrencyCode:  d.CurrencyCode,
		Total:         d.Total,
		AmountPaid:    d.AmountPaid,
		PaymentStatus: d.PaymentStatus,
	}
}

// PaymentDirection separates customer receipts from vendor payments.
type PaymentDirection string

const (
	PaymentReceived PaymentDirection = "RECEIVED"
	PaymentMade     PaymentDirection = "MADE"
)

// Payment is a customer payment received or a vendor payment made.
type Payment struct {
	PaymentID     string           `json:"paymentID"`
	OrgID         string           `json:"orgID"`
	Direction     PaymentDirection `json:"direction"`
	Number        string           `json:"number"`
	PartyID       string           `json:"partyID"`
	BankAccountID string           `json:"bankAccountID"`
	PaymentDate   time.Time        `json:"paymentDate"`
	CurrencyCode  string           `json:"currencyCode"`
	ExchangeRate  decimal.Decimal  `json:"exchangeRate"`
	Amount        decimal.Decimal  `json:"amount"`
	Memo          string           `json:"memo"`
	Allocations   []Allocation     `json:"allocations"`
	Status        DocumentStatus   `json:"status"`
	GLHeaderID    *string          `json:"glHeaderID,omitempty"`
	VoidedAt      *time.Time       `json:"voidedAt,omitempty"`
	AuditFields
}

// CreditNoteApplication records credit applied to one invoice.
type CreditNoteApplication struct {
	ApplicationID string          `json:"applicationID"`
	InvoiceID     string          `json:"invoiceID"`
	Amount        decimal.Decimal `json:"amount"`
	AppliedAt     time.Time       `json:"appliedAt"`
}

// CreditNoteRefund records credit paid back to the customer.
type CreditNoteRefund struct {
	RefundID      string          `json:"refundID"`
	BankAccountID string          `json:"bankAccountID"`
	Amount        decimal.Decimal `json:"amount"`
	RefundDate    time.Time       `json:"refundDate"`
	GLHeaderID    string          `json:"glHeaderID"`
}

// CreditNote reduces a customer's receivable; its remaining credit can be applied to invoices or refunded.
type CreditNote struct {
	CreditNoteID   string                  `json:"creditNoteID"`
	OrgID          string                  `json:"orgID"`
	Number         string                  `json:"number"`
	CustomerID     string                  `json:"customerID"`
	NoteDate       time.Time               `json:"noteDate"`
	CurrencyCode   string                  `json:"currencyCode"`
	ExchangeRate   decimal.Decimal         `json:"exchangeRate"`
	Memo           string                  `json:"memo"`
	Lines          []DocumentLine          `json:"lines"`
	Total          decimal.Decimal         `json:"total"`
	AmountApplied  decimal.Decimal         `json:"amountApplied"`
	AmountRefunded decimal.Decimal         `json:"amountRefunded"`
	Applications   []CreditNoteApplication `json:"applications"`
	Refunds        []CreditNoteRefund      `json:"refunds"`
	Status         DocumentStatus          `json:"status"`
	GLHeaderID     *string                 `json:"glHeaderID,omitempty"`
	AuditFields
}

// Available is the credit not yet applied or refunded.
func (c CreditNote) Available() decimal.Decimal {
	return c.Total.Sub(c.AmountApplied).Sub(c.AmountRefunded).Round(2)
}

// OpeningBalanceLine is one account balance brought forward.
type OpeningBalanceLine struct {
	AccountID   string          `json:"accountID"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	CustomerID  *string         `json:"customerID,omitempty"`
	VendorID    *string         `json:"vendorID,omitempty"`
}

// OpeningBalanceBatch holds balances brought forward as of a cut-over date.
type OpeningBalanceBatch struct {
	BatchID      string               `json:"batchID"`
	OrgID        string               `json:"orgID"`
	Number       string               `json:"number"`
	AsOfDate     time.Time            `json:"asOfDate"`
	CurrencyCode string               `json:"currencyCode"`
	Memo         string               `json:"memo"`
	Lines        []OpeningBalanceLine `json:"lines"`
	Status       DocumentStatus       `json:"status"`
	GLHeaderID   *string              `json:"glHeaderID,omitempty"`
	AuditFields
}

// DocumentSummary is the document part of a post or void result.
type DocumentSummary struct {
	DocumentType DocumentType    `json:"documentType"`
	DocumentID   string          `json:"documentID"`
	Number       string          `json:"number"`
	Status       DocumentStatus  `json:"status"`
	Amount       decimal.Decimal `json:"amount"`
}
