package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/services"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/dto"
)

type creditNoteHandler struct {
	creditNoteService portssvc.CreditNoteSvcFacade
}

// createCreditNote godoc
// @Summary Create a draft credit note
// @Tags credit-notes
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param note body dto.CreateCreditNoteRequest true "Credit note details"
// @Success 201 {object} domain.CreditNote
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /orgs/{orgID}/credit-notes [post]
func (h *creditNoteHandler) createCreditNote(c *gin.Context) {
	scope, ok := scopeFromRequest(c)
	if !ok {
		return
	}
	var req dto.CreateCreditNoteRequest
	if !bindJSON(c, scope.logger, &req) {
		return
	}

	note, err := h.creditNoteService.CreateCreditNote(c.Request.Context(), scope.orgID, req, scope.actorID)
	if err != nil {
		respondError(c, scope.logger, err, "Failed to create credit note")
		return
	}
	scope.logger.Info("Credit note created", slog.String("credit_note_id", note.CreditNoteID))
	c.JSON(http.StatusCreated, note)
}

// getCreditNote godoc
// @Summary Get a credit note
// @Tags credit-notes
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param creditNoteID path string true "Credit note ID"
// @Success 200 {object} domain.CreditNote
// @Failure 404 {object} map[string]string "Credit note not found"
// @Security BearerAuth
// @Router /orgs/{orgID}/credit-notes/{creditNoteID} [get]
func (h *creditNoteHandler) getCreditNote(c *gin.Context) {
	scope, ok := scopeFromRequest(c)
	if !ok {
		return
	}
	id := c.Param("creditNoteID")

	note, err := h.creditNoteService.GetCreditNote(c.Request.Context(), scope.orgID, id)
	if err != nil {
		respondError(c, scope.logger.With(slog.String("credit_note_id", id)), err, "Failed to retrieve credit note")
		return
	}
	c.JSON(http.StatusOK, note)
}

// applyCreditNote godoc
// @Summary Apply credit to posted invoices
// @Description Settles invoices from the note's available credit. No GL entry is written.
// @Tags credit-notes
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param creditNoteID path string true "Credit note ID"
// @Param Idempotency-Key header string false "Idempotency token"
// @Param body body dto.ApplyCreditNoteRequest true "Allocations"
// @Success 200 {object} dto.CreditNoteResult
// @Failure 400 {object} map[string]string "Allocation exceeds available credit or outstanding amount"
// @Failure 409 {object} map[string]string "Credit note not posted or idempotency conflict"
// @Security BearerAuth
// @Router /orgs/{orgID}/credit-notes/{creditNoteID}/apply [post]
func (h *creditNoteHandler) applyCreditNote(c *gin.Context) {
	scope, ok := scopeFromRequest(c)
	if !ok {
		return
	}
	id := c.Param("creditNoteID")
	var req dto.ApplyCreditNoteRequest
	if !bindJSON(c, scope.logger, &req) {
		return
	}

	result, err := h.creditNoteService.ApplyCreditNote(c.Request.Context(), scope.orgID, id, req, scope.actorID, scope.token)
	if err != nil {
		respondError(c, scope.logger.With(slog.String("credit_note_id", id)), err, "Failed to apply credit note")
		return
	}
	respondStored(c, http.StatusOK, result.Body, result.Replayed)
}

// refundCreditNote godoc
// @Summary Refund available credit
// @Description Pays credit back to the customer and posts a CREDIT_NOTE_REFUND header.
// @Tags credit-notes
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param creditNoteID path string true "Credit note ID"
// @Param Idempotency-Key header string false "Idempotency token"
// @Param body body dto.RefundCreditNoteRequest true "Refund details"
// @Success 200 {object} dto.CreditNoteResult
// @Failure 400 {object} map[string]string "Refund exceeds available credit"
// @Failure 409 {object} map[string]string "Period locked or idempotency conflict"
// @Security BearerAuth
// @Router /orgs/{orgID}/credit-notes/{creditNoteID}/refund [post]
func (h *creditNoteHandler) refundCreditNote(c *gin.Context) {
	scope, ok := scopeFromRequest(c)
	if !ok {
		return
	}
	id := c.Param("creditNoteID")
	var req dto.RefundCreditNoteRequest
	if !bindJSON(c, scope.logger, &req) {
		return
	}

	result, err := h.creditNoteService.RefundCreditNote(c.Request.Context(), scope.orgID, id, req, scope.actorID, scope.token)
	if err != nil {
		respondError(c, scope.logger.With(slog.String("credit_note_id", id)), err, "Failed to refund credit note")
		return
	}
	respondStored(c, http.StatusOK, result.Body, result.Replayed)
}

// RegisterCreditNoteRoutes registers credit note drafts, applications and refunds.
func RegisterCreditNoteRoutes(org *gin.RouterGroup, creditNoteService portssvc.CreditNoteSvcFacade) {
	h := &creditNoteHandler{creditNoteService: creditNoteService}

	notes := org.Group("/credit-notes")
	{
		notes.POST("", h.createCreditNote)
		notes.GET("/:creditNoteID", h.getCreditNote)
		notes.POST("/:creditNoteID/apply", h.applyCreditNote)
		notes.POST("/:creditNoteID/refund", h.refundCreditNote)
	}
}
