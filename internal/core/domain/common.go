package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // actor id
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // actor id
}

// NewAuditFields stamps creation and update fields with the same actor and time.
func NewAuditFields(actorID string, at time.Time) AuditFields {
	return AuditFields{CreatedAt: at, CreatedBy: actorID, LastUpdatedAt: at, LastUpdatedBy: actorID}
}

// Touch updates the last-updated fields.
func (a *AuditFields) Touch(actorID string, at time.Time) {
	a.LastUpdatedAt = at
	a.LastUpdatedBy = actorID
}

// DateOnly truncates t to midnight UTC of its calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Organization is the tenant. Only the fields the ledger engine reads are modelled here.
type Organization struct {
	OrgID        string     `json:"orgID"`
	Name         string     `json:"name"`
	BaseCurrency string     `json:"baseCurrency"`
	LockDate     *time.Time `json:"lockDate,omitempty"`
}
