package dto

import (
	"time"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCreditNoteRequest creates a draft credit note.
type CreateCreditNoteRequest struct {
	CustomerID   string              `json:"customerID" binding:"required"`
	NoteDate     time.Time           `json:"noteDate" binding:"required"`
	CurrencyCode string              `json:"currencyCode" binding:"required,len=3"`
	ExchangeRate decimal.Decimal     `json:"exchangeRate"`
	Memo         string              `json:"memo" binding:"max=500"`
	Lines        []DocumentLineInput `json:"lines" binding:"required,min=1,dive"`
}

// ApplyCreditNoteRequest applies available credit to posted invoices.
type ApplyCreditNoteRequest struct {
	Allocations []AllocationInput `json:"allocations" binding:"required,min=1,dive"`
}

// RefundCreditNoteRequest pays available credit back to the customer.
type RefundCreditNoteRequest struct {
	BankAccountID string          `json:"bankAccountID" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	RefundDate    time.Time       `json:"refundDate" binding:"required"`
}

// CreditNoteResult is returned by apply and refund. Header is set for refunds.
type CreditNoteResult struct {
	CreditNote domain.CreditNote `json:"creditNote"`
	Header     *domain.GLHeader  `json:"header,omitempty"`
	Replayed   bool              `json:"-"`
	Body       []byte            `json:"-"`
}
