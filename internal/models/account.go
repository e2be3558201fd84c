package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

// Account represents a row of the chart of accounts.
type Account struct {
	AccountID   string      `db:"account_id"`
	OrgID       string      `db:"org_id"`
	Code        string      `db:"code"`
	Name        string      `db:"name"`
	AccountType AccountType `db:"account_type"`
	Subtype     string      `db:"subtype"`
	IsActive    bool        `db:"is_active"`
}
