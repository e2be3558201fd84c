package pgsql

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/models"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/utils/mapping"
)

const accountColumns = `account_id, org_id, code, name, account_type, subtype, is_active`

// GetOrganization reads the tenant row and takes a share lock so the lock date
// cannot move while the transaction is posting.
func (s *pgxTxStore) GetOrganization(ctx context.Context, orgID string) (*domain.Organization, error) {
	query := `
		SELECT org_id, name, base_currency, lock_date
		FROM organizations
		WHERE org_id = $1
		FOR SHARE;
	`
	rows, err := s.tx.Query(ctx, query, orgID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query organization "+orgID, err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Organization])
	if err != nil {
		return nil, mapReadError(err, "organization", orgID)
	}
	org := mapping.ToDomainOrganization(m)
	return &org, nil
}

// FindAccountBySubtype returns the active account with the lowest code for the subtype.
func (s *pgxTxStore) FindAccountBySubtype(ctx context.Context, orgID string, subtype domain.AccountSubtype) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE org_id = $1 AND subtype = $2 AND is_active
		ORDER BY code
		LIMIT 1;
	`
	rows, err := s.tx.Query(ctx, query, orgID, string(subtype))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account by subtype", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, mapReadError(err, "account subtype", string(subtype))
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountsByIDs returns the requested accounts keyed by id.
func (s *pgxTxStore) FindAccountsByIDs(ctx context.Context, orgID string, accountIDs []string) (map[string]domain.Account, error) {
	ids := uniqueSorted(accountIDs)
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE org_id = $1 AND account_id = ANY($2);
	`
	rows, err := s.tx.Query(ctx, query, orgID, ids)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan accounts", err)
	}

	out := make(map[string]domain.Account, len(ms))
	for _, m := range ms {
		out[m.AccountID] = mapping.ToDomainAccount(m)
	}
	for _, id := range ids {
		if _, ok := out[id]; !ok {
			return nil, apperrors.NewNotFoundError("account", id)
		}
	}
	return out, nil
}

// uniqueSorted returns the distinct ids in ascending order, the order row locks are taken in.
func uniqueSorted(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
