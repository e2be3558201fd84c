package mapping

import (
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/models"
)

// ToModelIdempotencyRecord converts a domain IdempotencyRecord to a model IdempotencyRecord
func ToModelIdempotencyRecord(d domain.IdempotencyRecord) models.IdempotencyRecord {
	return models.IdempotencyRecord{
		OrgID:       d.OrgID,
		Scope:       d.Scope,
		ActorID:     d.ActorID,
		Token:       d.Token,
		RequestHash: d.RequestHash,
		Response:    d.Response,
		StatusCode:  d.StatusCode,
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainIdempotencyRecord converts a model IdempotencyRecord to a domain IdempotencyRecord
func ToDomainIdempotencyRecord(m models.IdempotencyRecord) domain.IdempotencyRecord {
	return domain.IdempotencyRecord{
		IdempotencyKey: domain.IdempotencyKey{
			OrgID:   m.OrgID,
			Scope:   m.Scope,
			ActorID: m.ActorID,
			Token:   m.Token,
		},
		RequestHash: m.RequestHash,
		Response:    m.Response,
		StatusCode:  m.StatusCode,
		CreatedAt:   m.CreatedAt,
	}
}

// ToModelAuditLog converts a domain AuditLog to a model AuditLog
func ToModelAuditLog(d domain.AuditLog) models.AuditLog {
	return models.AuditLog{
		AuditID:    d.AuditID,
		OrgID:      d.OrgID,
		ActorID:    d.ActorID,
		Action:     d.Action,
		EntityType: d.EntityType,
		EntityID:   d.EntityID,
		Before:     d.Before,
		After:      d.After,
		Meta:       d.Meta,
		Blocked:    d.Blocked,
		Hash:       d.Hash,
		CreatedAt:  d.CreatedAt,
	}
}
