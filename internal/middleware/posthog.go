package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/utils"
)

// PosthogMiddleware reports successful ledger mutations as usage events.
// Reads and replayed responses are not reported.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		if c.Writer.Header().Get(IdempotentReplayedHeader) == "true" {
			return
		}

		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		eventName := usageEventName(c.Request.Method, c.FullPath(), c.Param)
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		}
		for _, param := range c.Params {
			props[param.Key] = param.Value
		}

		posthogClient.Enqueue(userID, eventName, props)
	}
}

// usageEventName turns "/api/v1/orgs/:orgID/pdcs/:pdcID/:action" into
// "post_pdcs_clear". Id segments are dropped, other parameters are replaced by
// their value. Routes outside an organization yield "".
func usageEventName(method, fullPath string, param func(string) string) string {
	_, route, ok := strings.Cut(fullPath, "/orgs/:orgID/")
	if !ok || route == "" {
		return ""
	}
	parts := []string{strings.ToLower(method)}
	for _, segment := range strings.Split(route, "/") {
		if name, isParam := strings.CutPrefix(segment, ":"); isParam {
			if strings.HasSuffix(name, "ID") {
				continue
			}
			segment = strings.ToLower(param(name))
		}
		if segment == "" {
			continue
		}
		parts = append(parts, strings.ReplaceAll(segment, "-", "_"))
	}
	return strings.Join(parts, "_")
}
