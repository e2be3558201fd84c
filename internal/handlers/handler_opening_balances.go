package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/services"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/dto"
)

type openingBalanceHandler struct {
	openingBalanceService portssvc.OpeningBalanceSvcFacade
}

// createOpeningBalance godoc
// @Summary Create a draft opening balance batch
// @Description Any debit/credit difference is absorbed by the opening balance adjustment account when posted.
// @Tags opening-balances
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param batch body dto.CreateOpeningBalanceRequest true "Opening balances"
// @Success 201 {object} domain.OpeningBalanceBatch
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /orgs/{orgID}/opening-balances [post]
func (h *openingBalanceHandler) createOpeningBalance(c *gin.Context) {
	scope, ok := scopeFromRequest(c)
	if !ok {
		return
	}
	var req dto.CreateOpeningBalanceRequest
	if !bindJSON(c, scope.logger, &req) {
		return
	}

	batch, err := h.openingBalanceService.CreateOpeningBalance(c.Request.Context(), scope.orgID, req, scope.actorID)
	if err != nil {
		respondError(c, scope.logger, err, "Failed to create opening balance")
		return
	}
	scope.logger.Info("Opening balance batch created", slog.String("batch_id", batch.BatchID), slog.String("number", batch.Number))
	c.JSON(http.StatusCreated, batch)
}

// getOpeningBalance godoc
// @Summary Get an opening balance batch
// @Tags opening-balances
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param batchID path string true "Batch ID"
// @Success 200 {object} domain.OpeningBalanceBatch
// @Failure 404 {object} map[string]string "Batch not found"
// @Security BearerAuth
// @Router /orgs/{orgID}/opening-balances/{batchID} [get]
func (h *openingBalanceHandler) getOpeningBalance(c *gin.Context) {
	scope, ok := scopeFromRequest(c)
	if !ok {
		return
	}
	batchID := c.Param("batchID")

	batch, err := h.openingBalanceService.GetOpeningBalance(c.Request.Context(), scope.orgID, batchID)
	if err != nil {
		respondError(c, scope.logger.With(slog.String("batch_id", batchID)), err, "Failed to retrieve opening balance")
		return
	}
	c.JSON(http.StatusOK, batch)
}

// RegisterOpeningBalanceRoutes registers opening balance drafts.
func RegisterOpeningBalanceRoutes(org *gin.RouterGroup, openingBalanceService portssvc.OpeningBalanceSvcFacade) {
	h := &openingBalanceHandler{openingBalanceService: openingBalanceService}
	org.POST("/opening-balances", h.createOpeningBalance)
	org.GET("/opening-balances/:batchID", h.getOpeningBalance)
}
