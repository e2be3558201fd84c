package dto

import "github.com/shopspring/decimal"

// AllocationInput applies part of a document amount to one invoice or bill.
type AllocationInput struct {
	TargetID string          `json:"targetID" binding:"required"`
	Amount   decimal.Decimal `json:"amount"`
}
