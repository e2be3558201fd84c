package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// AccountSubtype identifies system accounts the posting rules look up per organization.
type AccountSubtype string

const (
	SubtypeBank                     AccountSubtype = "BANK"
	SubtypeAccountsReceivable       AccountSubtype = "ACCOUNTS_RECEIVABLE"
	SubtypeAccountsPayable          AccountSubtype = "ACCOUNTS_PAYABLE"
	SubtypeOpeningBalanceAdjustment AccountSubtype = "OPENING_BALANCE_ADJUSTMENT"
	SubtypeSales                    AccountSubtype = "SALES"
	SubtypeExpense                  AccountSubtype = "EXPENSE"
	SubtypeOther                    AccountSubtype = "OTHER"
)

// Account is the read-only view of a chart-of-accounts entry. Account CRUD lives outside the engine.
type Account struct {
	AccountID   string         `json:"accountID"`
	OrgID       string         `json:"orgID"`
	Code        string         `json:"code"`
	Name        string         `json:"name"`
	AccountType AccountType    `json:"accountType"`
	Subtype     AccountSubtype `json:"subtype"`
	IsActive    bool           `json:"isActive"`
}
