package services

import (
	"time"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// PostingSource is everything a posting rule needs to know about a document.
type PostingSource struct {
	OrgID         string
	ActorID       string
	SourceType    domain.SourceType
	SourceID      string
	PostingDate   time.Time
	CurrencyCode  string
	ExchangeRate  decimal.Decimal
	Memo          string
	PartyID       string
	Amount        decimal.Decimal
	BankAccountID string
	Lines         []SourceLine
	Allocations   []domain.Allocation
	TargetKind    domain.TargetKind
}

// SourceLine is a document line. Invoice, bill and credit note lines use Amount;
// opening balance lines use Debit and Credit.
type SourceLine struct {
	AccountID   string
	Description string
	Amount      decimal.Decimal
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	CustomerID  *string
	VendorID    *string
}

// AccountSet holds the accounts resolved for one posting.
type AccountSet struct {
	bySubtype map[domain.AccountSubtype]domain.Account
	byID      map[string]domain.Account
}

func (s AccountSet) subtype(st domain.AccountSubtype) string {
	return s.bySubtype[st].AccountID
}

// postingRule is one variant of the posting table: the system accounts it needs
// and a pure function from source to lines.
type postingRule struct {
	subtypes  []domain.AccountSubtype
	needsBank bool
	build     func(src PostingSource, accts AccountSet) ([]domain.GLLine, error)
}

var postingRules = map[domain.SourceType]postingRule{
	domain.SourceInvoice: {
		subtypes: []domain.AccountSubtype{domain.SubtypeAccountsReceivable},
		build:    buildInvoiceLines,
	},
	domain.SourceBill: {
		subtypes: []domain.AccountSubtype{domain.SubtypeAccountsPayable},
		build:    buildBillLines,
	},
	domain.SourcePaymentReceived: {
		subtypes:  []domain.AccountSubtype{domain.SubtypeAccountsReceivable},
		needsBank: true,
		build:     buildReceiptLines,
	},
	domain.SourceVendorPayment: {
		subtypes:  []domain.AccountSubtype{domain.SubtypeAccountsPayable},
		needsBank: true,
		build:     buildDisbursementLines,
	},
	domain.SourcePDCIncoming: {
		subtypes:  []domain.AccountSubtype{domain.SubtypeAccountsReceivable},
		needsBank: true,
		build:     buildReceiptLines,
	},
	domain.SourcePDCOutgoing: {
		subtypes:  []domain.AccountSubtype{domain.SubtypeAccountsPayable},
		needsBank: true,
		build:     buildDisbursementLines,
	},
	domain.SourceCreditNote: {
		subtypes: []domain.AccountSubtype{domain.SubtypeAccountsReceivable},
		build:    buildCreditNoteLines,
	},
	domain.SourceCreditNoteRefund: {
		subtypes:  []domain.AccountSubtype{domain.SubtypeAccountsReceivable},
		needsBank: true,
		build:     buildRefundLines,
	},
	domain.SourceOpeningBalance: {
		subtypes: []domain.AccountSubtype{domain.SubtypeOpeningBalanceAdjustment},
		build:    buildOpeningBalanceLines,
	},
}

func debitLine(accountID string, amount decimal.Decimal, description string) domain.GLLine {
	return domain.GLLine{AccountID: accountID, Debit: accounting.Round2(amount), Credit: decimal.Zero, Description: description}
}

func creditLine(accountID string, amount decimal.Decimal, description string) domain.GLLine {
	return domain.GLLine{AccountID: accountID, Debit: decimal.Zero, Credit: accounting.Round2(amount), Description: description}
}

func withCustomer(l domain.GLLine, customerID string) domain.GLLine {
	id := customerID
	l.CustomerID = &id
	return l
}

func withVendor(l domain.GLLine, vendorID string) domain.GLLine {
	id := vendorID
	l.VendorID = &id
	return l
}

func positiveAmount(src PostingSource) (decimal.Decimal, error) {
	amount := accounting.Round2(src.Amount)
	if !amount.IsPositive() {
		return decimal.Zero, apperrors.NewValidationError("%s %s amount must be positive", src.SourceType, src.SourceID)
	}
	return amount, nil
}

func lineTotal(src PostingSource) (decimal.Decimal, error) {
	if len(src.Lines) == 0 {
		return decimal.Zero, apperrors.NewValidationError("%s %s has no lines", src.SourceType, src.SourceID)
	}
	amounts := make([]decimal.Decimal, len(src.Lines))
	for i, l := range src.Lines {
		amounts[i] = accounting.Round2(l.Amount)
		if !amounts[i].IsPositive() {
			return decimal.Zero, apperrors.NewValidationError("%s %s line %d amount must be positive", src.SourceType, src.SourceID, i+1)
		}
	}
	return accounting.Sum2(amounts...), nil
}

// Dr receivable for the total; Cr each revenue line.
func buildInvoiceLines(src PostingSource, accts AccountSet) ([]domain.GLLine, error) {
	total, err := lineTotal(src)
	if err != nil {
		return nil, err
	}
	lines := []domain.GLLine{withCustomer(debitLine(accts.subtype(domain.SubtypeAccountsReceivable), total, src.Memo), src.PartyID)}
	for _, l := range src.Lines {
		lines = append(lines, creditLine(l.AccountID, l.Amount, l.Description))
	}
	return lines, nil
}

// Dr each expense line; Cr payable for the total.
func buildBillLines(src PostingSource, accts AccountSet) ([]domain.GLLine, error) {
	total, err := lineTotal(src)
	if err != nil {
		return nil, err
	}
	lines := make([]domain.GLLine, 0, len(src.Lines)+1)
	for _, l := range src.Lines {
		lines = append(lines, debitLine(l.AccountID, l.Amount, l.Description))
	}
	lines = append(lines, withVendor(creditLine(accts.subtype(domain.SubtypeAccountsPayable), total, src.Memo), src.PartyID))
	return lines, nil
}

// Dr bank; Cr receivable.
func buildReceiptLines(src PostingSource, accts AccountSet) ([]domain.GLLine, error) {
	amount, err := positiveAmount(src)
	if err != nil {
		return nil, err
	}
	return []domain.GLLine{
		debitLine(src.BankAccountID, amount, src.Memo),
		withCustomer(creditLine(accts.subtype(domain.SubtypeAccountsReceivable), amount, src.Memo), src.PartyID),
	}, nil
}

// Dr payable; Cr bank.
func buildDisbursementLines(src PostingSource, accts AccountSet) ([]domain.GLLine, error) {
	amount, err := positiveAmount(src)
	if err != nil {
		return nil, err
	}
	return []domain.GLLine{
		withVendor(debitLine(accts.subtype(domain.SubtypeAccountsPayable), amount, src.Memo), src.PartyID),
		creditLine(src.BankAccountID, amount, src.Memo),
	}, nil
}

// Dr each revenue line; Cr receivable for the total.
func buildCreditNoteLines(src PostingSource, accts AccountSet) ([]domain.GLLine, error) {
	total, err := lineTotal(src)
	if err != nil {
		return nil, err
	}
	lines := make([]domain.GLLine, 0, len(src.Lines)+1)
	for _, l := range src.Lines {
		lines = append(lines, debitLine(l.AccountID, l.Amount, l.Description))
	}
	lines = append(lines, withCustomer(creditLine(accts.subtype(domain.SubtypeAccountsReceivable), total, src.Memo), src.PartyID))
	return lines, nil
}

// Dr receivable; Cr bank.
func buildRefundLines(src PostingSource, accts AccountSet) ([]domain.GLLine, error) {
	amount, err := positiveAmount(src)
	if err != nil {
		return nil, err
	}
	return []domain.GLLine{
		withCustomer(debitLine(accts.subtype(domain.SubtypeAccountsReceivable), amount, src.Memo), src.PartyID),
		creditLine(src.BankAccountID, amount, src.Memo),
	}, nil
}

// Lines as entered; any difference goes to the opening balance adjustment account.
func buildOpeningBalanceLines(src PostingSource, accts AccountSet) ([]domain.GLLine, error) {
	if len(src.Lines) == 0 {
		return nil, apperrors.NewValidationError("opening balance %s has no lines", src.SourceID)
	}
	lines := make([]domain.GLLine, 0, len(src.Lines)+1)
	diff := decimal.Zero
	for i, l := range src.Lines {
		debit, credit := accounting.Round2(l.Debit), accounting.Round2(l.Credit)
		if debit.IsNegative() || credit.IsNegative() || debit.IsPositive() == credit.IsPositive() {
			return nil, apperrors.NewValidationError("opening balance line %d must have exactly one positive side", i+1)
		}
		lines = append(lines, domain.GLLine{
			AccountID:   l.AccountID,
			Debit:       debit,
			Credit:      credit,
			Description: l.Description,
			CustomerID:  l.CustomerID,
			VendorID:    l.VendorID,
		})
		diff = diff.Add(debit).Sub(credit)
	}

	adjustment := accts.subtype(domain.SubtypeOpeningBalanceAdjustment)
	switch {
	case diff.IsPositive():
		lines = append(lines, creditLine(adjustment, diff, "Opening balance adjustment"))
	case diff.IsNegative():
		lines = append(lines, debitLine(adjustment, diff.Neg(), "Opening balance adjustment"))
	}
	return lines, nil
}
