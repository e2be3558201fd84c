package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentLineInput is one revenue or expense line.
type DocumentLineInput struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Description string          `json:"description" binding:"max=500"`
	Amount      decimal.Decimal `json:"amount"`
}

// CreateSalesDocumentRequest creates a draft invoice or bill.
type CreateSalesDocumentRequest struct {
	PartyID      string              `json:"partyID" binding:"required"`
	DocumentDate time.Time           `json:"documentDate" binding:"required"`
	DueDate      *time.Time          `json:"dueDate,omitempty"`
	CurrencyCode string              `json:"currencyCode" binding:"required,len=3"`
	ExchangeRate decimal.Decimal     `json:"exchangeRate"`
	Memo         string              `json:"memo" binding:"max=500"`
	Lines        []DocumentLineInput `json:"lines" binding:"required,min=1,dive"`
}
