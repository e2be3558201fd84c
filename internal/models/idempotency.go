package models

import (
	"encoding/json"
	"time"
)

// IdempotencyRecord is a row of idempotency_keys.
type IdempotencyRecord struct {
	OrgID       string          `db:"org_id"`
	Scope       string          `db:"scope"`
	ActorID     string          `db:"actor_id"`
	Token       string          `db:"token"`
	RequestHash string          `db:"request_hash"`
	Response    []byte          `db:"response"` // Exact bytes served on replay
	StatusCode  int             `db:"status_code"`
	CreatedAt   time.Time       `db:"created_at"`
}

// AuditLog is a row of audit_logs.
type AuditLog struct {
	AuditID    string            `db:"audit_id"`
	OrgID      string            `db:"org_id"`
	ActorID    string            `db:"actor_id"`
	Action     string            `db:"action"`
	EntityType string            `db:"entity_type"`
	EntityID   string            `db:"entity_id"`
	Before     json.RawMessage   `db:"before"`
	After      json.RawMessage   `db:"after"`
	Meta       map[string]string `db:"meta"`
	Blocked    bool              `db:"blocked"`
	Hash       string            `db:"hash"`
	CreatedAt  time.Time         `db:"created_at"`
}
