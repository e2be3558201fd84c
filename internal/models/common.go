package models

import "time"

// AuditFields holds the standard audit columns shared by document tables.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

// Organization is a tenant row.
type Organization struct {
	OrgID        string     `db:"org_id"`
	Name         string     `db:"name"`
	BaseCurrency string     `db:"base_currency"`
	LockDate     *time.Time `db:"lock_date"` // Nullable
}
