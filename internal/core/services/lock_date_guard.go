package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	portsrepo "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/repositories"
)

const dateLayout = "2006-01-02"

// LockDateGuard rejects mutations dated on or before the organization's lock date.
type LockDateGuard struct {
	BaseService
	auditWriter portsrepo.AuditWriter
	audit       *AuditTrail
}

// NewLockDateGuard creates a LockDateGuard. Blocked attempts are written through
// auditWriter, outside the caller's transaction.
func NewLockDateGuard(auditWriter portsrepo.AuditWriter, audit *AuditTrail) *LockDateGuard {
	return &LockDateGuard{auditWriter: auditWriter, audit: audit}
}

// EnsureOpen checks each date against the lock date. The first locked date is
// recorded as a blocked attempt and returned as a *apperrors.PeriodLockedError.
func (g *LockDateGuard) EnsureOpen(ctx context.Context, org *domain.Organization, actorID, action, entityType, entityID string, dates ...time.Time) error {
	if org == nil || org.LockDate == nil {
		return nil
	}
	lockDate := domain.DateOnly(*org.LockDate)
	for _, d := range dates {
		attempted := domain.DateOnly(d)
		if attempted.After(lockDate) {
			continue
		}
		g.recordBlocked(ctx, org.OrgID, actorID, action, entityType, entityID, attempted, lockDate)
		return &apperrors.PeriodLockedError{Action: action, AttemptedDate: attempted, LockDate: lockDate}
	}
	return nil
}

func (g *LockDateGuard) recordBlocked(ctx context.Context, orgID, actorID, action, entityType, entityID string, attempted, lockDate time.Time) {
	g.LogWarn(ctx, "Mutation blocked by lock date",
		slog.String("org_id", orgID),
		slog.String("action", action),
		slog.String("attempted_date", attempted.Format(dateLayout)),
		slog.String("lock_date", lockDate.Format(dateLayout)))

	entry, err := g.audit.Entry(orgID, actorID, AuditChange{
		Action:     domain.BlockedAction,
		EntityType: entityType,
		EntityID:   entityID,
		Meta: map[string]string{
			"action":        action,
			"attemptedDate": attempted.Format(dateLayout),
			"lockDate":      lockDate.Format(dateLayout),
		},
	})
	if err == nil {
		err = g.auditWriter.WriteAuditLog(ctx, entry)
	}
	if err != nil {
		// the lock error is returned either way
		g.LogError(ctx, err, "Failed to record blocked action", slog.String("org_id", orgID), slog.String("action", action))
	}
}
