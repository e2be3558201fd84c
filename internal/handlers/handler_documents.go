package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	portssvc "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/services"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/dto"
)

// documentHandler posts and voids documents of any type.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
}

func newDocumentHandler(documentService portssvc.DocumentSvcFacade) *documentHandler {
	return &documentHandler{documentService: documentService}
}

// postDocument godoc
// @Summary Post a draft document to the general ledger
// @Description Creates exactly one balanced GL header for the document and applies its allocations. Retry-safe with an Idempotency-Key header.
// @Tags documents
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param documentType path string true "Document type" Enums(invoice, bill, payment-received, vendor-payment, credit-note, opening-balance)
// @Param documentID path string true "Document ID"
// @Param Idempotency-Key header string false "Idempotency token"
// @Success 200 {object} dto.PostDocumentResult
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 409 {object} map[string]string "Already posted, locked period or idempotency conflict"
// @Failure 500 {object} map[string]string "Failed to post document"
// @Security BearerAuth
// @Router /orgs/{orgID}/documents/{documentType}/{documentID}/post [post]
func (h *documentHandler) postDocument(c *gin.Context) {
	scope, ok := scopeFromRequest(c)
	if !ok {
		return
	}
	req := dto.PostDocumentRequest{
		OrgID:            scope.orgID,
		DocumentType:     domain.DocumentType(pathEnum(c.Param("documentType"))),
		DocumentID:       c.Param("documentID"),
		ActorID:          scope.actorID,
		IdempotencyToken: scope.token,
	}
	logger := scope.logger.With(slog.String("document_type", string(req.DocumentType)), slog.String("document_id", req.DocumentID))

	result, err := h.documentService.PostDocument(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to post document")
		return
	}

	logger.Info("Document posted", slog.String("header_id", result.Header.HeaderID), slog.Bool("replayed", result.Replayed))
	respondStored(c, http.StatusOK, result.Body, result.Replayed)
}

// voidDocument godoc
// @Summary Void a posted document
// @Description Writes a mirrored reversal header and unwinds the document's allocations. The void date defaults to today.
// @Tags documents
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param documentType path string true "Document type" Enums(invoice, bill, payment-received, vendor-payment, credit-note)
// @Param documentID path string true "Document ID"
// @Param Idempotency-Key header string false "Idempotency token"
// @Param body body dto.VoidDocumentBody false "Void options"
// @Success 200 {object} dto.VoidDocumentResult
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 409 {object} map[string]string "Already reversed, locked period or idempotency conflict"
// @Failure 500 {object} map[string]string "Failed to void document"
// @Security BearerAuth
// @Router /orgs/{orgID}/documents/{documentType}/{documentID}/void [post]
func (h *documentHandler) voidDocument(c *gin.Context) {
	scope, ok := scopeFromRequest(c)
	if !ok {
		return
	}

	var body dto.VoidDocumentBody
	// The body is optional
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		scope.logger.Warn("Failed to bind JSON for void", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	req := dto.VoidDocumentRequest{
		OrgID:            scope.orgID,
		DocumentType:     domain.DocumentType(pathEnum(c.Param("documentType"))),
		DocumentID:       c.Param("documentID"),
		VoidDate:         body.VoidDate,
		Memo:             body.Memo,
		ActorID:          scope.actorID,
		IdempotencyToken: scope.token,
	}
	logger := scope.logger.With(slog.String("document_type", string(req.DocumentType)), slog.String("document_id", req.DocumentID))

	result, err := h.documentService.VoidDocument(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to void document")
		return
	}

	logger.Info("Document voided", slog.String("reversal_header_id", result.ReversalHeader.HeaderID), slog.Bool("replayed", result.Replayed))
	respondStored(c, http.StatusOK, result.Body, result.Replayed)
}

// RegisterDocumentRoutes registers the post and void routes under an org-scoped group.
func RegisterDocumentRoutes(org *gin.RouterGroup, documentService portssvc.DocumentSvcFacade) {
	h := newDocumentHandler(documentService)

	documents := org.Group("/documents/:documentType/:documentID")
	{
		documents.POST("/post", h.postDocument)
		documents.POST("/void", h.voidDocument)
	}
}
