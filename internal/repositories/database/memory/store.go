// Package memory is a process-local implementation of the repository ports.
// Transactions are serialized by one mutex and work on a copy of the state
// that replaces the committed state only when the unit of work succeeds.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	portsrepo "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/repositories"
)

type state struct {
	orgs        map[string]domain.Organization
	accounts    map[string]domain.Account
	headers     map[string]domain.GLHeader
	sales       map[string]domain.SalesDocument
	payments    map[string]domain.Payment
	creditNotes map[string]domain.CreditNote
	openings    map[string]domain.OpeningBalanceBatch
	pdcs        map[string]domain.PDC
	sequences   map[string]int64
	idempotency map[domain.IdempotencyKey]domain.IdempotencyRecord
}

func newState() *state {
	return &state{
		orgs:        map[string]domain.Organization{},
		accounts:    map[string]domain.Account{},
		headers:     map[string]domain.GLHeader{},
		sales:       map[string]domain.SalesDocument{},
		payments:    map[string]domain.Payment{},
		creditNotes: map[string]domain.CreditNote{},
		openings:    map[string]domain.OpeningBalanceBatch{},
		pdcs:        map[string]domain.PDC{},
		sequences:   map[string]int64{},
		idempotency: map[domain.IdempotencyKey]domain.IdempotencyRecord{},
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// clone copies the maps. Stored values are never mutated in place, so sharing
// them between the committed and working state is safe.
func (s *state) clone() *state {
	return &state{
		orgs:        cloneMap(s.orgs),
		accounts:    cloneMap(s.accounts),
		headers:     cloneMap(s.headers),
		sales:       cloneMap(s.sales),
		payments:    cloneMap(s.payments),
		creditNotes: cloneMap(s.creditNotes),
		openings:    cloneMap(s.openings),
		pdcs:        cloneMap(s.pdcs),
		sequences:   cloneMap(s.sequences),
		idempotency: cloneMap(s.idempotency),
	}
}

// Store holds every ledger table in memory.
type Store struct {
	mu sync.Mutex
	st *state

	auditMu sync.Mutex
	audit   []domain.AuditLog
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Provider exposes the store through the repository ports.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:   s,
		GLReader:    s,
		DocReader:   s,
		AuditWriter: s,
	}
}

var (
	_ portsrepo.TransactionManager = (*Store)(nil)
	_ portsrepo.GLReader           = (*Store)(nil)
	_ portsrepo.DocumentReader     = (*Store)(nil)
	_ portsrepo.AuditWriter        = (*Store)(nil)
)

// WithinTx runs fn against a private copy of the state and commits the copy,
// together with the audit entries fn recorded, only if fn returns nil.
func (s *Store) WithinTx(ctx context.Context, fn portsrepo.TxFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txStore{st: s.st.clone()}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	s.st = tx.st

	s.auditMu.Lock()
	s.audit = append(s.audit, tx.audit...)
	s.auditMu.Unlock()
	return nil
}

// WriteAuditLog appends an entry outside any transaction.
func (s *Store) WriteAuditLog(_ context.Context, entry domain.AuditLog) error {
	s.auditMu.Lock()
	defer s.auditMu.Unlock()
	s.audit = append(s.audit, entry)
	return nil
}

// AuditLogs returns a copy of every committed audit entry in write order.
func (s *Store) AuditLogs() []domain.AuditLog {
	s.auditMu.Lock()
	defer s.auditMu.Unlock()
	return append([]domain.AuditLog(nil), s.audit...)
}

// PutOrganization creates or replaces an organization.
func (s *Store) PutOrganization(org domain.Organization) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.orgs[org.OrgID] = org
}

// SetLockDate changes an organization's lock date. A nil date unlocks every period.
func (s *Store) SetLockDate(orgID string, lockDate *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	org := s.st.orgs[orgID]
	org.OrgID = orgID
	org.LockDate = lockDate
	s.st.orgs[orgID] = org
}

// PutAccount creates or replaces an account.
func (s *Store) PutAccount(acct domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.accounts[acct.AccountID] = acct
}

// PutSalesDocument creates or replaces an invoice or bill as-is.
func (s *Store) PutSalesDocument(doc domain.SalesDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.sales[doc.DocumentID] = copySales(doc)
}

// HeaderCount returns the number of GL headers of an organization, reversals included.
func (s *Store) HeaderCount(orgID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, h := range s.st.headers {
		if h.OrgID == orgID {
			n++
		}
	}
	return n
}

func copyHeader(h domain.GLHeader) domain.GLHeader {
	h.Lines = append([]domain.GLLine(nil), h.Lines...)
	return h
}

func copySales(d domain.SalesDocument) domain.SalesDocument {
	d.Lines = append([]domain.DocumentLine(nil), d.Lines...)
	return d
}

func copyPayment(p domain.Payment) domain.Payment {
	p.Allocations = append([]domain.Allocation(nil), p.Allocations...)
	return p
}

func copyCreditNote(n domain.CreditNote) domain.CreditNote {
	n.Lines = append([]domain.DocumentLine(nil), n.Lines...)
	n.Applications = append([]domain.CreditNoteApplication(nil), n.Applications...)
	n.Refunds = append([]domain.CreditNoteRefund(nil), n.Refunds...)
	return n
}

func copyOpening(b domain.OpeningBalanceBatch) domain.OpeningBalanceBatch {
	b.Lines = append([]domain.OpeningBalanceLine(nil), b.Lines...)
	return b
}

func copyPDC(p domain.PDC) domain.PDC {
	p.Allocations = append([]domain.Allocation(nil), p.Allocations...)
	return p
}

// sortHeaders orders headers by posting date, creation time and id.
func sortHeaders(headers []domain.GLHeader) {
	sort.Slice(headers, func(i, j int) bool {
		a, b := headers[i], headers[j]
		if !a.PostingDate.Equal(b.PostingDate) {
			return a.PostingDate.Before(b.PostingDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.HeaderID < b.HeaderID
	})
}
