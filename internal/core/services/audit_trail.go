package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	portsrepo "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/repositories"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/utils/canonical"
)

// AuditChange describes one audited mutation. Before and After are JSON encoded as-is.
type AuditChange struct {
	Action     string
	EntityType string
	EntityID   string
	Before     any
	After      any
	Meta       map[string]string
}

// AuditTrail builds sealed audit entries.
type AuditTrail struct {
	now Clock
}

// NewAuditTrail creates an AuditTrail.
func NewAuditTrail(now Clock) *AuditTrail {
	return &AuditTrail{now: now}
}

// Entry builds an audit entry and seals it with a content hash.
func (a *AuditTrail) Entry(orgID, actorID string, change AuditChange) (domain.AuditLog, error) {
	entry := domain.AuditLog{
		AuditID:    uuid.NewString(),
		OrgID:      orgID,
		ActorID:    actorID,
		Action:     change.Action,
		EntityType: change.EntityType,
		EntityID:   change.EntityID,
		Meta:       change.Meta,
		Blocked:    change.Action == domain.BlockedAction,
		CreatedAt:  a.now(),
	}
	var err error
	if entry.Before, err = encodeSnapshot(change.Before); err != nil {
		return domain.AuditLog{}, err
	}
	if entry.After, err = encodeSnapshot(change.After); err != nil {
		return domain.AuditLog{}, err
	}
	if entry.Hash, err = canonical.Hash(entry); err != nil {
		return domain.AuditLog{}, fmt.Errorf("seal audit entry: %w", err)
	}
	return entry, nil
}

// Record writes an entry inside the caller's transaction.
func (a *AuditTrail) Record(ctx context.Context, tx portsrepo.AuditTxRepository, orgID, actorID string, change AuditChange) error {
	entry, err := a.Entry(orgID, actorID, change)
	if err != nil {
		return err
	}
	if err := tx.InsertAuditLog(ctx, entry); err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

func encodeSnapshot(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode audit snapshot: %w", err)
	}
	return b, nil
}
