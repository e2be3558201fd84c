package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePaymentRequest creates a draft customer payment or vendor payment.
type CreatePaymentRequest struct {
	PartyID       string            `json:"partyID" binding:"required"`
	BankAccountID string            `json:"bankAccountID" binding:"required"`
	PaymentDate   time.Time         `json:"paymentDate" binding:"required"`
	CurrencyCode  string            `json:"currencyCode" binding:"required,len=3"`
	ExchangeRate  decimal.Decimal   `json:"exchangeRate"`
	Amount        decimal.Decimal   `json:"amount"`
	Memo          string            `json:"memo" binding:"max=500"`
	Allocations   []AllocationInput `json:"allocations" binding:"required,min=1,dive"`
}

// UpdatePaymentRequest replaces the editable fields of a draft payment.
type UpdatePaymentRequest = CreatePaymentRequest
