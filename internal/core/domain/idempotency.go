package domain

import (
	"encoding/json"
	"time"
)

// IdempotencyKey identifies one client-declared unit of work.
type IdempotencyKey struct {
	OrgID   string `json:"orgID"`
	Scope   string `json:"scope"`
	ActorID string `json:"actorID"`
	Token   string `json:"token"`
}

// IdempotencyRecord is the stored outcome for a key.
type IdempotencyRecord struct {
	IdempotencyKey
	RequestHash string          `json:"requestHash"`
	Response    json.RawMessage `json:"response"`
	StatusCode  int             `json:"statusCode"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// AuditLog is an append-only trail entry. Blocked entries record attempts refused by the lock date.
type AuditLog struct {
	AuditID    string            `json:"auditID"`
	OrgID      string            `json:"orgID"`
	ActorID    string            `json:"actorID"`
	Action     string            `json:"action"`
	EntityType string            `json:"entityType"`
	EntityID   string            `json:"entityID"`
	Before     json.RawMessage   `json:"before,omitempty"`
	After      json.RawMessage   `json:"after,omitempty"`
	Meta       map[string]string `json:"meta,omitempty"`
	Blocked    bool              `json:"blocked"`
	Hash       string            `json:"hash"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// BlockedAction is the audit action recorded for attempts refused by the lock date.
const BlockedAction = "blockedAction"
