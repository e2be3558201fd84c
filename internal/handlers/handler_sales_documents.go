package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	portssvc "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/services"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/dto"
)

type salesDocumentHandler struct {
	salesService portssvc.SalesDocumentSvcFacade
	kind         domain.TargetKind
}

// createSalesDocument godoc
// @Summary Create a draft invoice or bill
// @Description Numbers are assigned when the document is posted.
// @Tags invoices
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param document body dto.CreateSalesDocumentRequest true "Document details"
// @Success 201 {object} domain.SalesDocument
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 500 {object} map[string]string "Failed to create document"
// @Security BearerAuth
// @Router /orgs/{orgID}/invoices [post]
// @Router /orgs/{orgID}/bills [post]
func (h *salesDocumentHandler) createSalesDocument(c *gin.Context) {
	scope, ok := scopeFromRequest(c)
	if !ok {
		return
	}
	var req dto.CreateSalesDocumentRequest
	if !bindJSON(c, scope.logger, &req) {
		return
	}

	doc, err := h.salesService.CreateSalesDocument(c.Request.Context(), scope.orgID, h.kind, req, scope.actorID)
	if err != nil {
		respondError(c, scope.logger, err, "Failed to create document")
		return
	}

	scope.logger.Info("Draft document created", slog.String("kind", string(h.kind)), slog.String("document_id", doc.DocumentID))
	c.JSON(http.StatusCreated, doc)
}

// getSalesDocument godoc
// @Summary Get an invoice or bill
// @Tags invoices
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param documentID path string true "Document ID"
// @Success 200 {object} domain.SalesDocument
// @Failure 404 {object} map[string]string "Document not found"
// @Security BearerAuth
// @Router /orgs/{orgID}/invoices/{documentID} [get]
// @Router /orgs/{orgID}/bills/{documentID} [get]
func (h *salesDocumentHandler) getSalesDocument(c *gin.Context) {
	scope, ok := scopeFromRequest(c)
	if !ok {
		return
	}
	documentID := c.Param("documentID")

	doc, err := h.salesService.GetSalesDocument(c.Request.Context(), scope.orgID, h.kind, documentID)
	if err != nil {
		respondError(c, scope.logger.With(slog.String("document_id", documentID)), err, "Failed to retrieve document")
		return
	}
	c.JSON(http.StatusOK, doc)
}

// RegisterSalesDocumentRoutes registers invoice and bill drafts.
func RegisterSalesDocumentRoutes(org *gin.RouterGroup, salesService portssvc.SalesDocumentSvcFacade) {
	for path, kind := range map[string]domain.TargetKind{
		"/invoices": domain.TargetInvoice,
		"/bills":    domain.TargetBill,
	} {
		h := &salesDocumentHandler{salesService: salesService, kind: kind}
		docs := org.Group(path)
		docs.POST("", h.createSalesDocument)
		docs.GET("/:documentID", h.getSalesDocument)
	}
}
