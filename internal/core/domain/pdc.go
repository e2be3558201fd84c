package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PDCDirection tells whether the cheque was received from a customer or issued to a vendor.
type PDCDirection string

const (
	PDCIncoming PDCDirection = "INCOMING"
	PDCOutgoing PDCDirection = "OUTGOING"
)

// SourceType returns the GL source type used when the cheque clears.
func (d PDCDirection) SourceType() SourceType {
	if d == PDCOutgoing {
		return SourcePDCOutgoing
	}
	return SourcePDCIncoming
}

// TargetKind returns the kind of document the cheque settles.
func (d PDCDirection) TargetKind() TargetKind {
	if d == PDCOutgoing {
		return TargetBill
	}
	return TargetInvoice
}

// PDCStatus is the cheque lifecycle state.
type PDCStatus string

const (
	PDCDraft     PDCStatus = "DRAFT"
	PDCScheduled PDCStatus = "SCHEDULED"
	PDCDeposited PDCStatus = "DEPOSITED"
	PDCCleared   PDCStatus = "CLEARED"
	PDCBounced   PDCStatus = "BOUNCED"
	PDCCancelled PDCStatus = "CANCELLED"
)

// PDCAction is a requested lifecycle transition.
type PDCAction string

const (
	PDCActionSchedule PDCAction = "schedule"
	PDCActionDeposit  PDCAction = "deposit"
	PDCActionClear    PDCAction = "clear"
	PDCActionBounce   PDCAction = "bounce"
	PDCActionCancel   PDCAction = "cancel"
)

// Target returns the state an action moves the cheque to.
func (a PDCAction) Target() (PDCStatus, bool) {
	switch a {
	case PDCActionSchedule:
		return PDCScheduled, true
	case PDCActionDeposit:
		return PDCDeposited, true
	case PDCActionClear:
		return PDCCleared, true
	case PDCActionBounce:
		return PDCBounced, true
	case PDCActionCancel:
		return PDCCancelled, true
	}
	return "", false
}

var pdcTransitions = map[PDCStatus][]PDCStatus{
	PDCDraft:     {PDCScheduled, PDCCancelled},
	PDCScheduled: {PDCDeposited, PDCCleared, PDCBounced, PDCCancelled},
	PDCDeposited: {PDCCleared, PDCBounced, PDCCancelled},
	PDCCleared:   {PDCBounced},
	PDCBounced:   {},
	PDCCancelled: {},
}

// CanTransition reports whether the cheque may move from one state to another.
func CanTransition(from, to PDCStatus) bool {
	for _, s := range pdcTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsEditable reports whether the cheque details and allocations may still change.
func (s PDCStatus) IsEditable() bool {
	return s == PDCDraft || s == PDCScheduled || s == PDCDeposited
}

// PDC is a post-dated cheque.
type PDC struct {
	PDCID             string          `json:"pdcID"`
	OrgID             string          `json:"orgID"`
	Direction         PDCDirection    `json:"direction"`
	Number            string          `json:"number"`
	Status            PDCStatus       `json:"status"`
	PartyID           string          `json:"partyID"`
	BankAccountID     string          `json:"bankAccountID"`
	ChequeNumber      string          `json:"chequeNumber"`
	ChequeDate        time.Time       `json:"chequeDate"`
	ExpectedClearDate *time.Time      `json:"expectedClearDate,omitempty"`
	CurrencyCode      string          `json:"currencyCode"`
	ExchangeRate      decimal.Decimal `json:"exchangeRate"`
	Amount            decimal.Decimal `json:"amount"`
	Memo              string          `json:"memo"`
	Allocations       []Allocation    `json:"allocations"`
	ClearingHeaderID  *string         `json:"clearingHeaderID,omitempty"`
	ReversalHeaderID  *string         `json:"reversalHeaderID,omitempty"`
	ScheduledAt       *time.Time      `json:"scheduledAt,omitempty"`
	DepositedAt       *time.Time      `json:"depositedAt,omitempty"`
	ClearedAt         *time.Time      `json:"clearedAt,omitempty"`
	BouncedAt         *time.Time      `json:"bouncedAt,omitempty"`
	CancelledAt       *time.Time      `json:"cancelledAt,omitempty"`
	AuditFields
}
