package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	portsrepo "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// txStore is the working copy handed to one unit of work.
type txStore struct {
	st    *state
	audit []domain.AuditLog
}

var _ portsrepo.TxStore = (*txStore)(nil)

func notFound(entity, id string) error {
	return apperrors.NewNotFoundError(entity, id)
}

func (t *txStore) GetOrganization(_ context.Context, orgID string) (*domain.Organization, error) {
	org, ok := t.st.orgs[orgID]
	if !ok {
		return nil, notFound("organization", orgID)
	}
	return &org, nil
}

func (t *txStore) FindAccountBySubtype(_ context.Context, orgID string, subtype domain.AccountSubtype) (*domain.Account, error) {
	var matches []domain.Account
	for _, a := range t.st.accounts {
		if a.OrgID == orgID && a.Subtype == subtype && a.IsActive {
			matches = append(matches, a)
		}
	}
	if len(matches) == 0 {
		return nil, notFound("account subtype", string(subtype))
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Code < matches[j].Code })
	return &matches[0], nil
}

func (t *txStore) FindAccountsByIDs(_ context.Context, orgID string, accountIDs []string) (map[string]domain.Account, error) {
	out := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		a, ok := t.st.accounts[id]
		if !ok || a.OrgID != orgID {
			return nil, notFound("account", id)
		}
		out[id] = a
	}
	return out, nil
}

func (t *txStore) ExistsActiveHeader(_ context.Context, orgID string, sourceType domain.SourceType, sourceID string) (bool, error) {
	_, ok := t.activeHeader(orgID, sourceType, sourceID)
	return ok, nil
}

func (t *txStore) activeHeader(orgID string, sourceType domain.SourceType, sourceID string) (domain.GLHeader, bool) {
	for _, h := range t.st.headers {
		if h.OrgID == orgID && h.SourceType == sourceType && h.SourceID == sourceID && h.IsActive() {
			return h, true
		}
	}
	return domain.GLHeader{}, false
}

func (t *txStore) InsertHeader(_ context.Context, header domain.GLHeader) error {
	if _, exists := t.st.headers[header.HeaderID]; exists {
		return fmt.Errorf("%w: gl header %s", apperrors.ErrDuplicate, header.HeaderID)
	}
	if header.IsActive() {
		if _, exists := t.activeHeader(header.OrgID, header.SourceType, header.SourceID); exists {
			return fmt.Errorf("%w: active gl header for %s %s", apperrors.ErrDuplicate, header.SourceType, header.SourceID)
		}
	}
	t.st.headers[header.HeaderID] = copyHeader(header)
	return nil
}

func (t *txStore) FindHeaderForUpdate(_ context.Context, orgID, headerID string) (*domain.GLHeader, error) {
	h, ok := t.st.headers[headerID]
	if !ok || h.OrgID != orgID {
		return nil, notFound("gl header", headerID)
	}
	h = copyHeader(h)
	return &h, nil
}

func (t *txStore) FindActiveHeaderForSource(_ context.Context, orgID string, sourceType domain.SourceType, sourceID string) (*domain.GLHeader, error) {
	h, ok := t.activeHeader(orgID, sourceType, sourceID)
	if !ok {
		return nil, notFound("gl header for source", sourceID)
	}
	h = copyHeader(h)
	return &h, nil
}

func (t *txStore) SetReversedBy(_ context.Context, orgID, headerID, reversalHeaderID string) error {
	h, ok := t.st.headers[headerID]
	if !ok || h.OrgID != orgID {
		return notFound("gl header", headerID)
	}
	id := reversalHeaderID
	h.ReversedByHeaderID = &id
	t.st.headers[headerID] = h
	return nil
}

func (t *txStore) LockTargetDocuments(_ context.Context, orgID string, kind domain.TargetKind, ids []string) (map[string]domain.TargetDocument, error) {
	out := make(map[string]domain.TargetDocument, len(ids))
	for _, id := range ids {
		d, ok := t.st.sales[id]
		if !ok || d.OrgID != orgID || d.Kind != kind {
			return nil, notFound(string(kind), id)
		}
		out[id] = d.AsTarget()
	}
	return out, nil
}

func (t *txStore) UpdateTargetPayment(_ context.Context, orgID string, kind domain.TargetKind, id string, amountPaid decimal.Decimal, status domain.PaymentStatus) error {
	d, ok := t.st.sales[id]
	if !ok || d.OrgID != orgID || d.Kind != kind {
		return notFound(string(kind), id)
	}
	d.AmountPaid = amountPaid
	d.PaymentStatus = status
	t.st.sales[id] = d
	return nil
}

func (t *txStore) InsertSalesDocument(_ context.Context, doc domain.SalesDocument) error {
	if _, exists := t.st.sales[doc.DocumentID]; exists {
		return fmt.Errorf("%w: document %s", apperrors.ErrDuplicate, doc.DocumentID)
	}
	t.st.sales[doc.DocumentID] = copySales(doc)
	return nil
}

func (t *txStore) FindSalesDocumentForUpdate(_ context.Context, orgID string, kind domain.TargetKind, id string) (*domain.SalesDocument, error) {
	d, ok := t.st.sales[id]
	if !ok || d.OrgID != orgID || d.Kind != kind {
		return nil, notFound(string(kind), id)
	}
	d = copySales(d)
	return &d, nil
}

func (t *txStore) UpdateSalesDocument(_ context.Context, doc domain.SalesDocument) error {
	if _, ok := t.st.sales[doc.DocumentID]; !ok {
		return notFound(string(doc.Kind), doc.DocumentID)
	}
	t.st.sales[doc.DocumentID] = copySales(doc)
	return nil
}

func (t *txStore) InsertPayment(_ context.Context, payment domain.Payment) error {
	if _, exists := t.st.payments[payment.PaymentID]; exists {
		return fmt.Errorf("%w: payment %s", apperrors.ErrDuplicate, payment.PaymentID)
	}
	t.st.payments[payment.PaymentID] = copyPayment(payment)
	return nil
}

func (t *txStore) FindPaymentForUpdate(_ context.Context, orgID string, direction domain.PaymentDirection, id string) (*domain.Payment, error) {
	p, ok := t.st.payments[id]
	if !ok || p.OrgID != orgID || p.Direction != direction {
		return nil, notFound("payment", id)
	}
	p = copyPayment(p)
	return &p, nil
}

func (t *txStore) UpdatePayment(_ context.Context, payment domain.Payment) error {
	if _, ok := t.st.payments[payment.PaymentID]; !ok {
		return notFound("payment", payment.PaymentID)
	}
	t.st.payments[payment.PaymentID] = copyPayment(payment)
	return nil
}

func (t *txStore) InsertCreditNote(_ context.Context, note domain.CreditNote) error {
	if _, exists := t.st.creditNotes[note.CreditNoteID]; exists {
		return fmt.Errorf("%w: credit note %s", apperrors.ErrDuplicate, note.CreditNoteID)
	}
	t.st.creditNotes[note.CreditNoteID] = copyCreditNote(note)
	return nil
}

func (t *txStore) FindCreditNoteForUpdate(_ context.Context, orgID, id string) (*domain.CreditNote, error) {
	n, ok := t.st.creditNotes[id]
	if !ok || n.OrgID != orgID {
		return nil, notFound("credit note", id)
	}
	n = copyCreditNote(n)
	return &n, nil
}

func (t *txStore) UpdateCreditNote(_ context.Context, note domain.CreditNote) error {
	if _, ok := t.st.creditNotes[note.CreditNoteID]; !ok {
		return notFound("credit note", note.CreditNoteID)
	}
	t.st.creditNotes[note.CreditNoteID] = copyCreditNote(note)
	return nil
}

func (t *txStore) InsertOpeningBalance(_ context.Context, batch domain.OpeningBalanceBatch) error {
	if _, exists := t.st.openings[batch.BatchID]; exists {
		return fmt.Errorf("%w: opening balance %s", apperrors.ErrDuplicate, batch.BatchID)
	}
	t.st.openings[batch.BatchID] = copyOpening(batch)
	return nil
}

func (t *txStore) FindOpeningBalanceForUpdate(_ context.Context, orgID, id string) (*domain.OpeningBalanceBatch, error) {
	b, ok := t.st.openings[id]
	if !ok || b.OrgID != orgID {
		return nil, notFound("opening balance", id)
	}
	b = copyOpening(b)
	return &b, nil
}

func (t *txStore) UpdateOpeningBalance(_ context.Context, batch domain.OpeningBalanceBatch) error {
	if _, ok := t.st.openings[batch.BatchID]; !ok {
		return notFound("opening balance", batch.BatchID)
	}
	t.st.openings[batch.BatchID] = copyOpening(batch)
	return nil
}

func (t *txStore) InsertPDC(_ context.Context, pdc domain.PDC) error {
	if _, exists := t.st.pdcs[pdc.PDCID]; exists {
		return fmt.Errorf("%w: pdc %s", apperrors.ErrDuplicate, pdc.PDCID)
	}
	t.st.pdcs[pdc.PDCID] = copyPDC(pdc)
	return nil
}

func (t *txStore) FindPDCForUpdate(_ context.Context, orgID, id string) (*domain.PDC, error) {
	p, ok := t.st.pdcs[id]
	if !ok || p.OrgID != orgID {
		return nil, notFound("pdc", id)
	}
	p = copyPDC(p)
	return &p, nil
}

func (t *txStore) UpdatePDC(_ context.Context, pdc domain.PDC) error {
	if _, ok := t.st.pdcs[pdc.PDCID]; !ok {
		return notFound("pdc", pdc.PDCID)
	}
	t.st.pdcs[pdc.PDCID] = copyPDC(pdc)
	return nil
}

func (t *txStore) NextDocumentNumber(_ context.Context, orgID, key string) (int64, error) {
	k := orgID + "|" + key
	t.st.sequences[k]++
	return t.st.sequences[k], nil
}

func (t *txStore) FindIdempotencyRecord(_ context.Context, key domain.IdempotencyKey) (*domain.IdempotencyRecord, error) {
	rec, ok := t.st.idempotency[key]
	if !ok {
		return nil, nil
	}
	rec.Response = append([]byte(nil), rec.Response...)
	return &rec, nil
}

func (t *txStore) InsertIdempotencyRecord(_ context.Context, record domain.IdempotencyRecord) error {
	if _, exists := t.st.idempotency[record.IdempotencyKey]; exists {
		return fmt.Errorf("%w: idempotency key %s", apperrors.ErrDuplicate, record.Scope)
	}
	record.Response = append([]byte(nil), record.Response...)
	t.st.idempotency[record.IdempotencyKey] = record
	return nil
}

func (t *txStore) InsertAuditLog(_ context.Context, entry domain.AuditLog) error {
	t.audit = append(t.audit, entry)
	return nil
}
