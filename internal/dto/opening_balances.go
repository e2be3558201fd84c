package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpeningBalanceLineInput is one account balance brought forward.
type OpeningBalanceLineInput struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Description string          `json:"description" binding:"max=500"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	CustomerID  *string         `json:"customerID,omitempty"`
	VendorID    *string         `json:"vendorID,omitempty"`
}

// CreateOpeningBalanceRequest creates a draft opening balance batch.
type CreateOpeningBalanceRequest struct {
	AsOfDate     time.Time                 `json:"asOfDate" binding:"required"`
	CurrencyCode string                    `json:"currencyCode" binding:"required,len=3"`
	Memo         string                    `json:"memo" binding:"max=500"`
	Lines        []OpeningBalanceLineInput `json:"lines" binding:"required,min=1,dive"`
}
