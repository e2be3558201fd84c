package domain

import "github.com/shopspring/decimal"

// TargetKind is the type of open document an allocation settles.
type TargetKind string

const (
	TargetInvoice TargetKind = "INVOICE"
	TargetBill    TargetKind = "BILL"
)

// PaymentStatus is derived from AmountPaid against Total.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "UNPAID"
	PaymentPartial PaymentStatus = "PARTIAL"
	PaymentPaid    PaymentStatus = "PAID"
)

// DerivePaymentStatus returns UNPAID when nothing is paid, PAID when paid reaches total, PARTIAL otherwise.
func DerivePaymentStatus(amountPaid, total decimal.Decimal) PaymentStatus {
	switch {
	case amountPaid.LessThanOrEqual(decimal.Zero):
		return PaymentUnpaid
	case amountPaid.GreaterThanOrEqual(total):
		return PaymentPaid
	default:
		return PaymentPartial
	}
}

// Allocation applies part of a payment, cheque or credit note to one target document.
type Allocation struct {
	TargetID string          `json:"targetID"`
	Amount   decimal.Decimal `json:"amount"`
}

// TargetDocument is the allocation view of an invoice or bill, read under a row lock.
type TargetDocument struct {
	DocumentID    string          `json:"documentID"`
	OrgID         string          `json:"orgID"`
	Kind          TargetKind      `json:"kind"`
	PartyID       string          `json:"partyID"`
	Status        DocumentStatus  `json:"status"`
	CurrencyCode  string          `json:"currencyCode"`
	Total         decimal.Decimal `json:"total"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
}

// Outstanding is Total minus AmountPaid, never negative.
func (t TargetDocument) Outstanding() decimal.Decimal {
	out := t.Total.Sub(t.AmountPaid).Round(2)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}
