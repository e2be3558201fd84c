package mapping

import (
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/models"
)

// jsonb columns are NOT NULL, so slices are always allocated even when empty.

func toModelDocumentLines(ds []domain.DocumentLine) []models.DocumentLine {
	ms := make([]models.DocumentLine, len(ds))
	for i, d := range ds {
		ms[i] = models.DocumentLine{AccountID: d.AccountID, Description: d.Description, Amount: d.Amount}
	}
	return ms
}

func toDomainDocumentLines(ms []models.DocumentLine) []domain.DocumentLine {
	ds := make([]domain.DocumentLine, len(ms))
	for i, m := range ms {
		ds[i] = domain.DocumentLine{AccountID: m.AccountID, Description: m.Description, Amount: m.Amount}
	}
	return ds
}

func toModelAllocations(ds []domain.Allocation) []models.Allocation {
	ms := make([]models.Allocation, len(ds))
	for i, d := range ds {
		ms[i] = models.Allocation{TargetID: d.TargetID, Amount: d.Amount}
	}
	return ms
}

func toDomainAllocations(ms []models.Allocation) []domain.Allocation {
	ds := make([]domain.Allocation, len(ms))
	for i, m := range ms {
		ds[i] = domain.Allocation{TargetID: m.TargetID, Amount: m.Amount}
	}
	return ds
}

// ToModelSalesDocument converts a domain SalesDocument to a model SalesDocument
func ToModelSalesDocument(d domain.SalesDocument) models.SalesDocument {
	return models.SalesDocument{
		DocumentID:    d.DocumentID,
		OrgID:         d.OrgID,
		Kind:          string(d.Kind),
		Number:        d.Number,
		PartyID:       d.PartyID,
		DocumentDate:  d.DocumentDate,
		DueDate:       d.DueDate,
		CurrencyCode:  d.CurrencyCode,
		ExchangeRate:  d.ExchangeRate,
		Memo:          d.Memo,
		Lines:         toModelDocumentLines(d.Lines),
		Total:         d.Total,
		AmountPaid:    d.AmountPaid,
		PaymentStatus: string(d.PaymentStatus),
		Status:        string(d.Status),
		GLHeaderID:    d.GLHeaderID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSalesDocument converts a model SalesDocument to a domain SalesDocument
func ToDomainSalesDocument(m models.SalesDocument) domain.SalesDocument {
	return domain.SalesDocument{
		DocumentID:    m.DocumentID,
		OrgID:         m.OrgID,
		Kind:          domain.TargetKind(m.Kind),
		Number:        m.Number,
		PartyID:       m.PartyID,
		DocumentDate:  m.DocumentDate,
		DueDate:       m.DueDate,
		CurrencyCode:  m.CurrencyCode,
		ExchangeRate:  m.ExchangeRate,
		Memo:          m.Memo,
		Lines:         toDomainDocumentLines(m.Lines),
		Total:         m.Total,
		AmountPaid:    m.AmountPaid,
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		Status:        domain.DocumentStatus(m.Status),
		GLHeaderID:    m.GLHeaderID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:     d.PaymentID,
		OrgID:         d.OrgID,
		Direction:     string(d.Direction),
		Number:        d.Number,
		PartyID:       d.PartyID,
		BankAccountID: d.BankAccountID,
		PaymentDate:   d.PaymentDate,
		CurrencyCode:  d.CurrencyCode,
		ExchangeRate:  d.ExchangeRate,
		Amount:        d.Amount,
		Memo:          d.Memo,
		Allocations:   toModelAllocations(d.Allocations),
		Status:        string(d.Status),
		GLHeaderID:    d.GLHeaderID,
		VoidedAt:      d.VoidedAt,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:     m.PaymentID,
		OrgID:         m.OrgID,
		Direction:     domain.PaymentDirection(m.Direction),
		Number:        m.Number,
		PartyID:       m.PartyID,
		BankAccountID: m.BankAccountID,
		PaymentDate:   m.PaymentDate,
		CurrencyCode:  m.CurrencyCode,
		ExchangeRate:  m.ExchangeRate,
		Amount:        m.Amount,
		Memo:          m.Memo,
		Allocations:   toDomainAllocations(m.Allocations),
		Status:        domain.DocumentStatus(m.Status),
		GLHeaderID:    m.GLHeaderID,
		VoidedAt:      m.VoidedAt,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCreditNote converts a domain CreditNote to a model CreditNote
func ToModelCreditNote(d domain.CreditNote) models.CreditNote {
	apps := make([]models.CreditNoteApplication, len(d.Applications))
	for i, a := range d.Applications {
		apps[i] = models.CreditNoteApplication{ApplicationID: a.ApplicationID, InvoiceID: a.InvoiceID, Amount: a.Amount, AppliedAt: a.AppliedAt}
	}
	refunds := make([]models.CreditNoteRefund, len(d.Refunds))
	for i, r := range d.Refunds {
		refunds[i] = models.CreditNoteRefund{RefundID: r.RefundID, BankAccountID: r.BankAccountID, Amount: r.Amount, RefundDate: r.RefundDate, GLHeaderID: r.GLHeaderID}
	}
	return models.CreditNote{
		CreditNoteID:   d.CreditNoteID,
		OrgID:          d.OrgID,
		Number:         d.Number,
		CustomerID:     d.CustomerID,
		NoteDate:       d.NoteDate,
		CurrencyCode:   d.CurrencyCode,
		ExchangeRate:   d.ExchangeRate,
		Memo:           d.Memo,
		Lines:          toModelDocumentLines(d.Lines),
		Total:          d.Total,
		AmountApplied:  d.AmountApplied,
		AmountRefunded: d.AmountRefunded,
		Applications:   apps,
		Refunds:        refunds,
		Status:         string(d.Status),
		GLHeaderID:     d.GLHeaderID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCreditNote converts a model CreditNote to a domain CreditNote
func ToDomainCreditNote(m models.CreditNote) domain.CreditNote {
	apps := make([]domain.CreditNoteApplication, len(m.Applications))
	for i, a := range m.Applications {
		apps[i] = domain.CreditNoteApplication{ApplicationID: a.ApplicationID, InvoiceID: a.InvoiceID, Amount: a.Amount, AppliedAt: a.AppliedAt}
	}
	refunds := make([]domain.CreditNoteRefund, len(m.Refunds))
	for i, r := range m.Refunds {
		refunds[i] = domain.CreditNoteRefund{RefundID: r.RefundID, BankAccountID: r.BankAccountID, Amount: r.Amount, RefundDate: r.RefundDate, GLHeaderID: r.GLHeaderID}
	}
	return domain.CreditNote{
		CreditNoteID:   m.CreditNoteID,
		OrgID:          m.OrgID,
		Number:         m.Number,
		CustomerID:     m.CustomerID,
		NoteDate:       m.NoteDate,
		CurrencyCode:   m.CurrencyCode,
		ExchangeRate:   m.ExchangeRate,
		Memo:           m.Memo,
		Lines:          toDomainDocumentLines(m.Lines),
		Total:          m.Total,
		AmountApplied:  m.AmountApplied,
		AmountRefunded: m.AmountRefunded,
		Applications:   apps,
		Refunds:        refunds,
		Status:         domain.DocumentStatus(m.Status),
		GLHeaderID:     m.GLHeaderID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelOpeningBalance converts a domain OpeningBalanceBatch to a model OpeningBalanceBatch
func ToModelOpeningBalance(d domain.OpeningBalanceBatch) models.OpeningBalanceBatch {
	lines := make([]models.OpeningBalanceLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = models.OpeningBalanceLine{
			AccountID:   l.AccountID,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
			CustomerID:  l.CustomerID,
			VendorID:    l.VendorID,
		}
	}
	return models.OpeningBalanceBatch{
		BatchID:      d.BatchID,
		OrgID:        d.OrgID,
		Number:       d.Number,
		AsOfDate:     d.AsOfDate,
		CurrencyCode: d.CurrencyCode,
		Memo:         d.Memo,
		Lines:        lines,
		Status:       string(d.Status),
		GLHeaderID:   d.GLHeaderID,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOpeningBalance converts a model OpeningBalanceBatch to a domain OpeningBalanceBatch
func ToDomainOpeningBalance(m models.OpeningBalanceBatch) domain.OpeningBalanceBatch {
	lines := make([]domain.OpeningBalanceLine, len(m.Lines))
	for i, l := range m.Lines {
		lines[i] = domain.OpeningBalanceLine{
			AccountID:   l.AccountID,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
			CustomerID:  l.CustomerID,
			VendorID:    l.VendorID,
		}
	}
	return domain.OpeningBalanceBatch{
		BatchID:      m.BatchID,
		OrgID:        m.OrgID,
		Number:       m.Number,
		AsOfDate:     m.AsOfDate,
		CurrencyCode: m.CurrencyCode,
		Memo:         m.Memo,
		Lines:        lines,
		Status:       domain.DocumentStatus(m.Status),
		GLHeaderID:   m.GLHeaderID,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPDC converts a domain PDC to a model PDC
func ToModelPDC(d domain.PDC) models.PDC {
	return models.PDC{
		PDCID:             d.PDCID,
		OrgID:             d.OrgID,
		Direction:         string(d.Direction),
		Number:            d.Number,
		Status:            string(d.Status),
		PartyID:           d.PartyID,
		BankAccountID:     d.BankAccountID,
		ChequeNumber:      d.ChequeNumber,
		ChequeDate:        d.ChequeDate,
		ExpectedClearDate: d.ExpectedClearDate,
		CurrencyCode:      d.CurrencyCode,
		ExchangeRate:      d.ExchangeRate,
		Amount:            d.Amount,
		Memo:              d.Memo,
		Allocations:       toModelAllocations(d.Allocations),
		ClearingHeaderID:  d.ClearingHeaderID,
		ReversalHeaderID:  d.ReversalHeaderID,
		ScheduledAt:       d.ScheduledAt,
		DepositedAt:       d.DepositedAt,
		ClearedAt:         d.ClearedAt,
		BouncedAt:         d.BouncedAt,
		CancelledAt:       d.CancelledAt,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPDC converts a model PDC to a domain PDC
func ToDomainPDC(m models.PDC) domain.PDC {
	return domain.PDC{
		PDCID:             m.PDCID,
		OrgID:             m.OrgID,
		Direction:         domain.PDCDirection(m.Direction),
		Number:            m.Number,
		Status:            domain.PDCStatus(m.Status),
		PartyID:           m.PartyID,
		BankAccountID:     m.BankAccountID,
		ChequeNumber:      m.ChequeNumber,
		ChequeDate:        m.ChequeDate,
		ExpectedClearDate: m.ExpectedClearDate,
		CurrencyCode:      m.CurrencyCode,
		ExchangeRate:      m.ExchangeRate,
		Amount:            m.Amount,
		Memo:              m.Memo,
		Allocations:       toDomainAllocations(m.Allocations),
		ClearingHeaderID:  m.ClearingHeaderID,
		ReversalHeaderID:  m.ReversalHeaderID,
		ScheduledAt:       m.ScheduledAt,
		DepositedAt:       m.DepositedAt,
		ClearedAt:         m.ClearedAt,
		BouncedAt:         m.BouncedAt,
		CancelledAt:       m.CancelledAt,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
