package dto

import (
	"time"

	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
)

// PostDocumentRequest asks the engine to post a draft document to the GL.
type PostDocumentRequest struct {
	OrgID            string              `json:"-"`
	DocumentType     domain.DocumentType `json:"documentType" binding:"required"`
	DocumentID       string              `json:"documentID" binding:"required"`
	ActorID          string              `json:"-"`
	IdempotencyToken string              `json:"-"`
}

// PostDocumentResult is the outcome of posting. Body holds the stored JSON form
// of the result; Replayed is set when it came from the idempotency ledger.
type PostDocumentResult struct {
	Header   domain.GLHeader        `json:"header"`
	Document domain.DocumentSummary `json:"document"`
	Replayed bool                   `json:"-"`
	Body     []byte                 `json:"-"`
}

// VoidDocumentRequest asks the engine to reverse a posted document.
type VoidDocumentRequest struct {
	OrgID            string              `json:"-"`
	DocumentType     domain.DocumentType `json:"documentType" binding:"required"`
	DocumentID       string              `json:"documentID" binding:"required"`
	VoidDate         *time.Time          `json:"voidDate,omitempty"`
	Memo             string              `json:"memo,omitempty"`
	ActorID          string              `json:"-"`
	IdempotencyToken string              `json:"-"`
}

// VoidDocumentResult is the outcome of voiding.
type VoidDocumentResult struct {
	Document       domain.DocumentSummary `json:"document"`
	ReversalHeader domain.GLHeader        `json:"reversalHeader"`
	Replayed       bool                   `json:"-"`
	Body           []byte                 `json:"-"`
}

// VoidDocumentBody is the optional JSON body of a void call.
type VoidDocumentBody struct {
	VoidDate *time.Time `json:"voidDate,omitempty"`
	Memo     string     `json:"memo,omitempty" binding:"max=500"`
}
