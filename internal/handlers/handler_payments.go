package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	portssvc "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/services"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/dto"
)

// paymentHandler serves customer payments or vendor payments, depending on direction.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
	direction      domain.PaymentDirection
}

func newPaymentHandler(paymentService portssvc.PaymentSvcFacade, direction domain.PaymentDirection) *paymentHandler {
	return &paymentHandler{paymentService: paymentService, direction: direction}
}

// createPayment godoc
// @Summary Create a draft payment
// @Description Creates a draft customer payment (/payments) or vendor payment (/vendor-payments) with its allocations.
// @Tags payments
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param payment body dto.CreatePaymentRequest true "Payment details"
// @Success 201 {object} domain.Payment
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 409 {object} map[string]string "Period locked"
// @Failure 500 {object} map[string]string "Failed to create payment"
// @Security BearerAuth
// @Router /orgs/{orgID}/payments [post]
// @Router /orgs/{orgID}/vendor-payments [post]
func (h *paymentHandler) createPayment(c *gin.Context) {
	scope, ok := scopeFromRequest(c)
	if !ok {
		return
	}
	var req dto.CreatePaymentRequest
	if !bindJSON(c, scope.logger, &req) {
		return
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), scope.orgID, h.direction, req, scope.actorID)
	if err != nil {
		respondError(c, scope.logger, err, "Failed to create payment")
		return
	}

	scope.logger.Info("Payment created", slog.String("payment_id", payment.PaymentID), slog.String("number", payment.Number))
	c.JSON(http.StatusCreated, payment)
}

// updatePayment godoc
// @Summary Update a draft payment
// @Tags payments
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param paymentID path string true "Payment ID"
// @Param payment body dto.UpdatePaymentRequest true "Payment details"
// @Success 200 {object} domain.Payment
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 409 {object} map[string]string "Payment is not a draft or period locked"
// @Security BearerAuth
// @Router /orgs/{orgID}/payments/{paymentID} [put]
// @Router /orgs/{orgID}/vendor-payments/{paymentID} [put]
func (h *paymentHandler) updatePayment(c *gin.Context) {
	scope, ok := scopeFromRequest(c)
	if !ok {
		return
	}
	paymentID := c.Param("paymentID")
	var req dto.UpdatePaymentRequest
	if !bindJSON(c, scope.logger, &req) {
		return
	}

	payment, err := h.paymentService.UpdatePayment(c.Request.Context(), scope.orgID, h.direction, paymentID, req, scope.actorID)
	if err != nil {
		respondError(c, scope.logger.With(slog.String("payment_id", paymentID)), err, "Failed to update payment")
		return
	}
	c.JSON(http.StatusOK, payment)
}

// getPayment godoc
// @Summary Get a payment
// @Tags payments
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param paymentID path string true "Payment ID"
// @Success 200 {object} domain.Payment
// @Failure 404 {object} map[string]string "Payment not found"
// @Security BearerAuth
// @Router /orgs/{orgID}/payments/{paymentID} [get]
// @Router /orgs/{orgID}/vendor-payments/{paymentID} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	scope, ok := scopeFromRequest(c)
	if !ok {
		return
	}
	paymentID := c.Param("paymentID")

	payment, err := h.paymentService.GetPayment(c.Request.Context(), scope.orgID, h.direction, paymentID)
	if err != nil {
		respondError(c, scope.logger.With(slog.String("payment_id", paymentID)), err, "Failed to retrieve payment")
		return
	}
	c.JSON(http.StatusOK, payment)
}

// RegisterPaymentRoutes registers draft maintenance for both payment directions.
func RegisterPaymentRoutes(org *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	for path, direction := range map[string]domain.PaymentDirection{
		"/payments":        domain.PaymentReceived,
		"/vendor-payments": domain.PaymentMade,
	} {
		h := newPaymentHandler(paymentService, direction)
		payments := org.Group(path)
		payments.POST("", h.createPayment)
		payments.GET("/:paymentID", h.getPayment)
		payments.PUT("/:paymentID", h.updatePayment)
	}
}
