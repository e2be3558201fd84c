package services_test

import (
	"context"
	"testing"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostDocument_Errors(t *testing.T) {
	f := newLedgerFixture()

	_, err := f.postDocument("RECEIPT", "doc-1", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.postDocument(domain.DocInvoice, "", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.postDocument(domain.DocInvoice, "missing", "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = f.svc.Document.PostDocument(context.Background(), dto.PostDocumentRequest{
		OrgID: "org-unknown", DocumentType: domain.DocInvoice, DocumentID: "x", ActorID: testActorID,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestVoidDocument_DefaultsToToday(t *testing.T) {
	f := newLedgerFixture()
	invoice := f.postedInvoice(t, "cust-1", "10.00", day(1))

	voided, err := f.svc.Document.VoidDocument(context.Background(), dto.VoidDocumentRequest{
		OrgID:        testOrgID,
		DocumentType: domain.DocInvoice,
		DocumentID:   invoice.DocumentID,
		ActorID:      testActorID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DateOnly(f.now), voided.ReversalHeader.PostingDate)
	assert.Contains(t, voided.ReversalHeader.Memo, "Reversal of")
}

func TestVoidDocument_ReplayedWithToken(t *testing.T) {
	f := newLedgerFixture()
	invoice := f.postedInvoice(t, "cust-1", "10.00", day(1))
	voidDate := day(2)
	req := dto.VoidDocumentRequest{
		OrgID:            testOrgID,
		DocumentType:     domain.DocInvoice,
		DocumentID:       invoice.DocumentID,
		VoidDate:         &voidDate,
		ActorID:          testActorID,
		IdempotencyToken: "void-1",
	}

	first, err := f.svc.Document.VoidDocument(context.Background(), req)
	require.NoError(t, err)
	second, err := f.svc.Document.VoidDocument(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.Replayed)
	assert.Equal(t, first.ReversalHeader.HeaderID, second.ReversalHeader.HeaderID)
	assert.Equal(t, 2, f.store.HeaderCount(testOrgID))

	// same token, different actor: a separate key
	req.ActorID = "user-2"
	_, err = f.svc.Document.VoidDocument(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyReversed)
}

func TestAuditTrail_RecordsPostedChanges(t *testing.T) {
	f := newLedgerFixture()
	invoice := f.postedInvoice(t, "cust-1", "10.00", day(1))

	var actions []string
	for _, entry := range f.store.AuditLogs() {
		if entry.EntityID == invoice.DocumentID {
			actions = append(actions, entry.Action)
			assert.NotEmpty(t, entry.Hash)
			assert.Equal(t, testActorID, entry.ActorID)
			assert.False(t, entry.Blocked)
		}
	}
	assert.Equal(t, []string{"create", "post"}, actions)
}
