package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestUsageEventName(t *testing.T) {
	params := map[string]string{"documentType": "payment-received", "action": "CLEAR"}
	lookup := func(name string) string { return params[name] }

	tests := []struct {
		method, path, want string
	}{
		{http.MethodPost, "/api/v1/orgs/:orgID/documents/:documentType/:documentID/post", "post_documents_payment_received_post"},
		{http.MethodPost, "/api/v1/orgs/:orgID/pdcs/:pdcID/:action", "post_pdcs_clear"},
		{http.MethodPut, "/api/v1/orgs/:orgID/payments/:paymentID", "put_payments"},
		{http.MethodPost, "/api/v1/orgs/:orgID/credit-notes/:creditNoteID/apply", "post_credit_notes_apply"},
		{http.MethodGet, "/health", ""},
		{http.MethodPost, "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, usageEventName(tt.method, tt.path, lookup), tt.path)
	}
}

func TestPosthogMiddleware_DisabledClientPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(PosthogMiddleware(&utils.PosthogClientWrapper{}))
	r.POST("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/ping", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
