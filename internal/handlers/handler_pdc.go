package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	portssvc "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/services"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/dto"
)

type pdcHandler struct {
	pdcService portssvc.PDCSvcFacade
}

// createPDC godoc
// @Summary Register a post-dated cheque
// @Tags pdcs
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param pdc body dto.CreatePDCRequest true "Cheque details"
// @Success 201 {object} domain.PDC
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /orgs/{orgID}/pdcs [post]
func (h *pdcHandler) createPDC(c *gin.Context) {
	scope, ok := scopeFromRequest(c)
	if !ok {
		return
	}
	var req dto.CreatePDCRequest
	if !bindJSON(c, scope.logger, &req) {
		return
	}

	pdc, err := h.pdcService.CreatePDC(c.Request.Context(), scope.orgID, req, scope.actorID)
	if err != nil {
		respondError(c, scope.logger, err, "Failed to create cheque")
		return
	}
	scope.logger.Info("Cheque registered", slog.String("pdc_id", pdc.PDCID), slog.String("number", pdc.Number))
	c.JSON(http.StatusCreated, pdc)
}

// updatePDC godoc
// @Summary Update a cheque that has not cleared
// @Tags pdcs
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param pdcID path string true "Cheque ID"
// @Param pdc body dto.UpdatePDCRequest true "Cheque details"
// @Success 200 {object} domain.PDC
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 409 {object} map[string]string "Cheque can no longer be edited"
// @Security BearerAuth
// @Router /orgs/{orgID}/pdcs/{pdcID} [put]
func (h *pdcHandler) updatePDC(c *gin.Context) {
	scope, ok := scopeFromRequest(c)
	if !ok {
		return
	}
	pdcID := c.Param("pdcID")
	var req dto.UpdatePDCRequest
	if !bindJSON(c, scope.logger, &req) {
		return
	}

	pdc, err := h.pdcService.UpdatePDC(c.Request.Context(), scope.orgID, pdcID, req, scope.actorID)
	if err != nil {
		respondError(c, scope.logger.With(slog.String("pdc_id", pdcID)), err, "Failed to update cheque")
		return
	}
	c.JSON(http.StatusOK, pdc)
}

// getPDC godoc
// @Summary Get a post-dated cheque
// @Tags pdcs
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param pdcID path string true "Cheque ID"
// @Success 200 {object} domain.PDC
// @Failure 404 {object} map[string]string "Cheque not found"
// @Security BearerAuth
// @Router /orgs/{orgID}/pdcs/{pdcID} [get]
func (h *pdcHandler) getPDC(c *gin.Context) {
	scope, ok := scopeFromRequest(c)
	if !ok {
		return
	}
	pdcID := c.Param("pdcID")

	pdc, err := h.pdcService.GetPDC(c.Request.Context(), scope.orgID, pdcID)
	if err != nil {
		respondError(c, scope.logger.With(slog.String("pdc_id", pdcID)), err, "Failed to retrieve cheque")
		return
	}
	c.JSON(http.StatusOK, pdc)
}

// transitionPDC godoc
// @Summary Move a cheque through its lifecycle
// @Description Actions: schedule, deposit, clear, bounce, cancel. Clearing posts to the GL; bouncing a cleared cheque reverses that posting.
// @Tags pdcs
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param pdcID path string true "Cheque ID"
// @Param action path string true "Lifecycle action" Enums(schedule, deposit, clear, bounce, cancel)
// @Param Idempotency-Key header string false "Idempotency token"
// @Param body body dto.TransitionPDCBody false "Action date (defaults to today)"
// @Success 200 {object} dto.PDCTransitionResult
// @Failure 400 {object} map[string]string "Unknown action"
// @Failure 409 {object} map[string]string "Invalid transition or period locked"
// @Security BearerAuth
// @Router /orgs/{orgID}/pdcs/{pdcID}/{action} [post]
func (h *pdcHandler) transitionPDC(c *gin.Context) {
	scope, ok := scopeFromRequest(c)
	if !ok {
		return
	}

	var body dto.TransitionPDCBody
	// The body is optional
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		scope.logger.Warn("Failed to bind JSON for cheque transition", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	req := dto.TransitionPDCRequest{
		OrgID:            scope.orgID,
		PDCID:            c.Param("pdcID"),
		Action:           domain.PDCAction(strings.ToLower(c.Param("action"))),
		ActionDate:       body.ActionDate,
		ActorID:          scope.actorID,
		IdempotencyToken: scope.token,
	}
	logger := scope.logger.With(slog.String("pdc_id", req.PDCID), slog.String("action", string(req.Action)))

	result, err := h.pdcService.TransitionPDC(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to apply cheque action")
		return
	}

	logger.Info("Cheque transitioned", slog.String("status", string(result.PDC.Status)), slog.Bool("replayed", result.Replayed))
	respondStored(c, http.StatusOK, result.Body, result.Replayed)
}

// RegisterPDCRoutes registers cheque maintenance and lifecycle routes.
func RegisterPDCRoutes(org *gin.RouterGroup, pdcService portssvc.PDCSvcFacade) {
	h := &pdcHandler{pdcService: pdcService}

	pdcs := org.Group("/pdcs")
	{
		pdcs.POST("", h.createPDC)
		pdcs.GET("/:pdcID", h.getPDC)
		pdcs.PUT("/:pdcID", h.updatePDC)
		pdcs.POST("/:pdcID/:action", h.transitionPDC)
	}
}
