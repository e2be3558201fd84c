package mapping

import (
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/models"
)

// ToModelGLHeader converts a domain GLHeader, lines included, to a model GLHeader
func ToModelGLHeader(d domain.GLHeader) models.GLHeader {
	lines := make([]models.GLLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = ToModelGLLine(l)
	}
	return models.GLHeader{
		HeaderID:           d.HeaderID,
		OrgID:              d.OrgID,
		SourceType:         string(d.SourceType),
		SourceID:           d.SourceID,
		PostingDate:        d.PostingDate,
		CurrencyCode:       d.CurrencyCode,
		ExchangeRate:       d.ExchangeRate,
		TotalDebit:         d.TotalDebit,
		TotalCredit:        d.TotalCredit,
		Status:             string(d.Status),
		Memo:               d.Memo,
		ReversedByHeaderID: d.ReversedByHeaderID,
		IsReversal:         d.IsReversal,
		AuditFields:        ToModelAuditFields(d.AuditFields),
		Lines:              lines,
	}
}

// ToDomainGLHeader converts a model GLHeader to a domain GLHeader
func ToDomainGLHeader(m models.GLHeader) domain.GLHeader {
	lines := make([]domain.GLLine, len(m.Lines))
	for i, l := range m.Lines {
		lines[i] = ToDomainGLLine(l)
	}
	return domain.GLHeader{
		HeaderID:           m.HeaderID,
		OrgID:              m.OrgID,
		SourceType:         domain.SourceType(m.SourceType),
		SourceID:           m.SourceID,
		PostingDate:        m.PostingDate,
		CurrencyCode:       m.CurrencyCode,
		ExchangeRate:       m.ExchangeRate,
		TotalDebit:         m.TotalDebit,
		TotalCredit:        m.TotalCredit,
		Status:             domain.GLStatus(m.Status),
		Memo:               m.Memo,
		ReversedByHeaderID: m.ReversedByHeaderID,
		IsReversal:         m.IsReversal,
		Lines:              lines,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelGLLine converts a domain GLLine to a model GLLine
func ToModelGLLine(d domain.GLLine) models.GLLine {
	return models.GLLine{
		LineID:      d.LineID,
		HeaderID:    d.HeaderID,
		LineNo:      d.LineNo,
		AccountID:   d.AccountID,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: d.Description,
		CustomerID:  d.CustomerID,
		VendorID:    d.VendorID,
	}
}

// ToDomainGLLine converts a model GLLine to a domain GLLine
func ToDomainGLLine(m models.GLLine) domain.GLLine {
	return domain.GLLine{
		LineID:      m.LineID,
		HeaderID:    m.HeaderID,
		LineNo:      m.LineNo,
		AccountID:   m.AccountID,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
		CustomerID:  m.CustomerID,
		VendorID:    m.VendorID,
	}
}

// ToDomainGLHeaderSlice converts a slice of model GLHeaders to a slice of domain GLHeaders
func ToDomainGLHeaderSlice(ms []models.GLHeader) []domain.GLHeader {
	ds := make([]domain.GLHeader, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainGLHeader(m)
	}
	return ds
}
