package dto

import (
	"time"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePDCRequest registers a post-dated cheque in DRAFT.
type CreatePDCRequest struct {
	Direction         domain.PDCDirection `json:"direction" binding:"required,oneof=INCOMING OUTGOING"`
	PartyID           string              `json:"partyID" binding:"required"`
	BankAccountID     string              `json:"bankAccountID" binding:"required"`
	ChequeNumber      string              `json:"chequeNumber" binding:"required,max=64"`
	ChequeDate        time.Time           `json:"chequeDate" binding:"required"`
	ExpectedClearDate *time.Time          `json:"expectedClearDate,omitempty"`
	CurrencyCode      string              `json:"currencyCode" binding:"required,len=3"`
	ExchangeRate      decimal.Decimal     `json:"exchangeRate"`
	Amount            decimal.Decimal     `json:"amount"`
	Memo              string              `json:"memo" binding:"max=500"`
	Allocations       []AllocationInput   `json:"allocations" binding:"required,min=1,dive"`
}

// UpdatePDCRequest replaces the editable fields of a cheque that has not cleared.
type UpdatePDCRequest struct {
	BankAccountID     string            `json:"bankAccountID" binding:"required"`
	ChequeNumber      string            `json:"chequeNumber" binding:"required,max=64"`
	ChequeDate        time.Time         `json:"chequeDate" binding:"required"`
	ExpectedClearDate *time.Time        `json:"expectedClearDate,omitempty"`
	Amount            decimal.Decimal   `json:"amount"`
	Memo              string            `json:"memo" binding:"max=500"`
	Allocations       []AllocationInput `json:"allocations" binding:"required,min=1,dive"`
}

// TransitionPDCRequest moves a cheque through its lifecycle.
type TransitionPDCRequest struct {
	OrgID            string           `json:"-"`
	PDCID            string           `json:"-"`
	Action           domain.PDCAction `json:"-"`
	ActionDate       *time.Time       `json:"actionDate,omitempty"`
	ActorID          string           `json:"-"`
	IdempotencyToken string           `json:"-"`
}

// TransitionPDCBody is the optional JSON body of a cheque action.
type TransitionPDCBody struct {
	ActionDate *time.Time `json:"actionDate,omitempty"`
}

// PDCTransitionResult carries the cheque after the transition and any GL headers it produced.
type PDCTransitionResult struct {
	PDC            domain.PDC       `json:"pdc"`
	Header         *domain.GLHeader `json:"header,omitempty"`
	ReversalHeader *domain.GLHeader `json:"reversalHeader,omitempty"`
	Replayed       bool             `json:"-"`
	Body           []byte           `json:"-"`
}
