package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/apperrors"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/middleware"
)

// requestScope is what every org-scoped mutation needs from the request.
type requestScope struct {
	logger  *slog.Logger
	orgID   string
	actorID string
	token   string
}

// scopeFromRequest resolves the org, actor and idempotency token. It writes the
// error response itself and returns false when the request cannot proceed.
func scopeFromRequest(c *gin.Context) (requestScope, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")
	if orgID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Organization ID is required"})
		return requestScope{}, false
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return requestScope{}, false
	}

	token, err := middleware.IdempotencyKeyFromRequest(c)
	if err != nil {
		logger.Warn("Rejected idempotency key", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return requestScope{}, false
	}

	return requestScope{
		logger:  logger.With(slog.String("org_id", orgID), slog.String("actor_id", actorID)),
		orgID:   orgID,
		actorID: actorID,
		token:   token,
	}, true
}

// respondError maps err to the status of its class. Client errors echo the
// message; server errors return a fixed one.
func respondError(c *gin.Context, logger *slog.Logger, err error, message string) {
	status := apperrors.HTTPStatus(err)
	switch {
	case errors.Is(err, apperrors.ErrInvariant):
		logger.Error("Ledger invariant violated", slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": message})
	case status >= http.StatusInternalServerError:
		logger.Error(message, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": message})
	default:
		logger.Warn(message, slog.String("error", err.Error()), slog.Int("status", status))
		c.JSON(status, gin.H{"error": err.Error()})
	}
}

// respondStored writes the stored JSON body of an idempotent operation so a
// replay is byte-identical to the first response.
func respondStored(c *gin.Context, status int, body []byte, replayed bool) {
	if replayed {
		c.Header(middleware.IdempotentReplayedHeader, "true")
	}
	c.Data(status, "application/json; charset=utf-8", body)
}

// bindJSON binds the request body and reports a 400 on failure.
func bindJSON(c *gin.Context, logger *slog.Logger, target any) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		logger.Warn("Failed to bind JSON", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return false
	}
	return true
}

// pathEnum turns a path segment such as "payment-received" into PAYMENT_RECEIVED.
func pathEnum(segment string) string {
	return strings.ToUpper(strings.ReplaceAll(segment, "-", "_"))
}
