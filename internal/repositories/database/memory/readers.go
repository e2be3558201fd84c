package memory

import (
	"context"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	portsrepo "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/repositories"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/utils/pagination"
)

func (s *Store) FindHeaderByID(_ context.Context, orgID, headerID string) (*domain.GLHeader, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.st.headers[headerID]
	if !ok || h.OrgID != orgID {
		return nil, notFound("gl header", headerID)
	}
	h = copyHeader(h)
	return &h, nil
}

func (s *Store) ListHeaders(_ context.Context, orgID string, filter portsrepo.ListHeadersFilter) ([]domain.GLHeader, *string, error) {
	var cursor *pagination.Cursor
	if filter.NextToken != nil {
		c, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("%s", err.Error())
		}
		cursor = &c
	}
	limit := pagination.ClampLimit(filter.Limit)

	s.mu.Lock()
	matched := make([]domain.GLHeader, 0)
	for _, h := range s.st.headers {
		if h.OrgID != orgID {
			continue
		}
		if filter.SourceType != nil && h.SourceType != *filter.SourceType {
			continue
		}
		if filter.SourceID != nil && h.SourceID != *filter.SourceID {
			continue
		}
		if cursor != nil && !cursor.After(h.PostingDate, h.CreatedAt, h.HeaderID) {
			continue
		}
		matched = append(matched, copyHeader(h))
	}
	s.mu.Unlock()

	sortHeaders(matched)
	if len(matched) <= limit {
		return matched, nil, nil
	}
	page := matched[:limit]
	last := page[len(page)-1]
	next := pagination.EncodeToken(pagination.Cursor{PostingDate: last.PostingDate, CreatedAt: last.CreatedAt, HeaderID: last.HeaderID})
	return page, &next, nil
}

func (s *Store) FindSalesDocumentByID(_ context.Context, orgID string, kind domain.TargetKind, id string) (*domain.SalesDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.st.sales[id]
	if !ok || d.OrgID != orgID || d.Kind != kind {
		return nil, notFound(string(kind), id)
	}
	d = copySales(d)
	return &d, nil
}

func (s *Store) FindPaymentByID(_ context.Context, orgID string, direction domain.PaymentDirection, id string) (*domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.st.payments[id]
	if !ok || p.OrgID != orgID || p.Direction != direction {
		return nil, notFound("payment", id)
	}
	p = copyPayment(p)
	return &p, nil
}

func (s *Store) FindCreditNoteByID(_ context.Context, orgID, id string) (*domain.CreditNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.st.creditNotes[id]
	if !ok || n.OrgID != orgID {
		return nil, notFound("credit note", id)
	}
	n = copyCreditNote(n)
	return &n, nil
}

func (s *Store) FindOpeningBalanceByID(_ context.Context, orgID, id string) (*domain.OpeningBalanceBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.st.openings[id]
	if !ok || b.OrgID != orgID {
		return nil, notFound("opening balance", id)
	}
	b = copyOpening(b)
	return &b, nil
}

func (s *Store) FindPDCByID(_ context.Context, orgID, id string) (*domain.PDC, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.st.pdcs[id]
	if !ok || p.OrgID != orgID {
		return nil, notFound("pdc", id)
	}
	p = copyPDC(p)
	return &p, nil
}
