package controllers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"rodneysbrain/internal/models/request_models"
	"rodneysbrain/internal/services"
	"rodneysbrain/pkg/utils"
)

const webhookSignatureHeader = "X-Checkout-Signature"

type PaymentController struct {
	paymentService services.PaymentServiceInterface
}

func NewPaymentController(paymentService services.PaymentServiceInterface) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

// ListPlans godoc
// @Summary List purchasable plans
// @Tags Payments
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /payments/plans [get]
func (p *PaymentController) ListPlans(c *gin.Context) {
	utils.RespondSuccess(c, p.paymentService.ListPlans(), "Plans fetched successfully")
}

// CreateCheckoutSession godoc
// @Summary Create a checkout session for a plan
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.CreateCheckoutRequest true "Checkout payload"
// @Success 200 {object} utils.APIResponse
// @Router /payments/checkout/session [post]
func (p *PaymentController) CreateCheckoutSession(c *gin.Context) {
	var req request_models.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	checkout, err := p.paymentService.CreateCheckout(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, checkout, "Checkout session created successfully")
}

// GetCheckoutStatus godoc
// @Summary Poll a checkout session's reconciled status
// @Tags Payments
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /payments/checkout/status/{sessionId} [get]
func (p *PaymentController) GetCheckoutStatus(c *gin.Context) {
	sessionID := c.Param("sessionId")
	if sessionID == "" {
		utils.RespondError(c, http.StatusBadRequest, "session id is required")
		return
	}

	status, err := p.paymentService.GetCheckoutStatus(c.Request.Context(), sessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, status, "Checkout status fetched successfully")
}

// HandleWebhook always acknowledges deliveries that pass the signature
// check, even when processing fails, so the gateway does not retry-storm.
// Only tampered payloads get a non-2xx.
func (p *PaymentController) HandleWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Printf("webhook: failed to read request body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	err = p.paymentService.HandleWebhook(c.Request.Context(), body, c.GetHeader(webhookSignatureHeader))
	if err != nil {
		if errors.Is(err, utils.ErrInvalidSignature) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
			return
		}
		log.Printf("webhook: processing failed: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
