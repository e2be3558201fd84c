package dto

import (
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListGLHeadersParams defines parameters for listing GL headers.
type ListGLHeadersParams struct {
	SourceType *domain.SourceType `form:"sourceType"`
	SourceID   *string            `form:"sourceID"`
	Limit      int                `form:"limit" binding:"omitempty,min=1,max=200"`
	NextToken  *string            `form:"nextToken"`
}

// ListGLHeadersResponse is one page of GL headers.
type ListGLHeadersResponse struct {
	Headers   []domain.GLHeader `json:"headers"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// AccountNet is the debit minus credit movement of one account.
type AccountNet struct {
	AccountID string          `json:"accountID"`
	Net       decimal.Decimal `json:"net"`
}

// TrialCheckResponse summarises every header of an organization.
type TrialCheckResponse struct {
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Balanced    bool            `json:"balanced"`
	Accounts    []AccountNet    `json:"accounts"`
}
