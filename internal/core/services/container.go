package services

import (
	portsrepo "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/repositories"
	portssvc "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/services"
)

// Option configures the service container.
type Option func(*containerOptions)

type containerOptions struct {
	clock Clock
}

// WithClock overrides the clock used for dates and audit timestamps.
func WithClock(clock Clock) Option {
	return func(o *containerOptions) {
		o.clock = clock
	}
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, opts ...Option) *portssvc.ServiceContainer {
	options := containerOptions{clock: systemClock}
	for _, opt := range opts {
		opt(&options)
	}

	// All writers share one engine so they see the same guard, audit trail and idempotency ledger
	engine := newLedgerEngine(repos, options.clock)

	payments := newPaymentService(engine)
	sales := newSalesDocumentService(engine)
	notes := newCreditNoteService(engine)
	openings := newOpeningBalanceService(engine)

	return &portssvc.ServiceContainer{
		Document:       newDocumentService(engine, payments, sales, notes, openings),
		Payment:        payments,
		SalesDocument:  sales,
		CreditNote:     notes,
		OpeningBalance: openings,
		PDC:            newPDCService(engine),
		GL:             newGLService(repos.GLReader),
	}
}
