package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/services"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/dto"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/middleware"
)

type glHandler struct {
	glService portssvc.GLSvcFacade
}

// listHeaders godoc
// @Summary List GL headers
// @Description Headers with their lines in posting order, paginated with an opaque token.
// @Tags gl
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param sourceType query string false "Filter by source type"
// @Param sourceID query string false "Filter by source document ID"
// @Param limit query int false "Page size (max 200)"
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListGLHeadersResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Security BearerAuth
// @Router /orgs/{orgID}/gl/headers [get]
func (h *glHandler) listHeaders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")

	var params dto.ListGLHeadersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid query parameters for ListHeaders", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.glService.ListHeaders(c.Request.Context(), orgID, params)
	if err != nil {
		respondError(c, logger.With(slog.String("org_id", orgID)), err, "Failed to list GL headers")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getHeader godoc
// @Summary Get a GL header with its lines
// @Tags gl
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param headerID path string true "Header ID"
// @Success 200 {object} domain.GLHeader
// @Failure 404 {object} map[string]string "Header not found"
// @Security BearerAuth
// @Router /orgs/{orgID}/gl/headers/{headerID} [get]
func (h *glHandler) getHeader(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")
	headerID := c.Param("headerID")

	header, err := h.glService.GetHeader(c.Request.Context(), orgID, headerID)
	if err != nil {
		respondError(c, logger.With(slog.String("org_id", orgID), slog.String("header_id", headerID)), err, "Failed to retrieve GL header")
		return
	}
	c.JSON(http.StatusOK, header)
}

// trialCheck godoc
// @Summary Check that the organization's ledger balances
// @Tags gl
// @Produce json
// @Param orgID path string true "Organization ID"
// @Success 200 {object} dto.TrialCheckResponse
// @Security BearerAuth
// @Router /orgs/{orgID}/gl/trial-check [get]
func (h *glHandler) trialCheck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")

	resp, err := h.glService.TrialCheck(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, logger.With(slog.String("org_id", orgID)), err, "Failed to run trial check")
		return
	}
	if !resp.Balanced {
		logger.Error("Trial check found an unbalanced ledger", slog.String("org_id", orgID),
			slog.String("total_debit", resp.TotalDebit.String()), slog.String("total_credit", resp.TotalCredit.String()))
	}
	c.JSON(http.StatusOK, resp)
}

// RegisterGLRoutes registers the read-only GL routes.
func RegisterGLRoutes(org *gin.RouterGroup, glService portssvc.GLSvcFacade) {
	h := &glHandler{glService: glService}

	gl := org.Group("/gl")
	{
		gl.GET("/headers", h.listHeaders)
		gl.GET("/headers/:headerID", h.getHeader)
		gl.GET("/trial-check", h.trialCheck)
	}
}
