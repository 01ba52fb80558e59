package api

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"pinmarket/internal/adapter/payment"
	reqdto "pinmarket/internal/handler/dto/request"
	resdto "pinmarket/internal/handler/dto/response"
	"pinmarket/internal/pkg/config"
	"pinmarket/internal/usecase"

	"github.com/gin-gonic/gin"
)

const webhookSignatureHeader = "X-Paystack-Signature"

type PaymentHandler struct {
	checkoutUseCase usecase.CheckoutUseCase
	secretKey       string
}

func NewPaymentHandler(checkoutUseCase usecase.CheckoutUseCase, cfg config.PaymentConfig) *PaymentHandler {
	return &PaymentHandler{checkoutUseCase: checkoutUseCase, secretKey: cfg.SecretKey}
}

// @Summary Verify payment
// @Description Verify a payment with the gateway and settle the order
// @Tags payments
// @Accept json
// @Produce json
// @Param request body reqdto.VerifyPaymentRequest true "Payment reference"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /payments/verify [post]
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req reqdto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	o, err := h.checkoutUseCase.ConfirmPayment(c.Request.Context(), req.Reference)
	if err != nil {
		h.respondConfirmError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromOrder(o))
}

// Webhook receives gateway notifications. The payload is authenticated by
// HMAC-SHA512 over the raw body; the verdict itself still comes from a fresh
// Verify call inside the use case.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}

	if !h.validSignature(body, c.GetHeader(webhookSignatureHeader)) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
		return
	}

	var event struct {
		Event string `json:"event"`
		Data  struct {
			Reference string `json:"reference"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &event); err != nil || event.Data.Reference == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook payload"})
		return
	}

	if _, err := h.checkoutUseCase.ConfirmPayment(c.Request.Context(), event.Data.Reference); err != nil {
		// Always acknowledge an authenticated webhook; settlement failures
		// are retried via verify or reconciliation, not gateway redelivery.
		slog.Warn("webhook settlement did not complete",
			"event", event.Event, "reference", event.Data.Reference, "error", err)
	}

	c.Status(http.StatusOK)
}

func (h *PaymentHandler) validSignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha512.New, []byte(h.secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (h *PaymentHandler) respondConfirmError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found for reference"})
	case errors.Is(err, usecase.ErrPaymentNotSuccessful):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Payment was not successful"})
	case errors.Is(err, usecase.ErrPaymentPending):
		c.JSON(http.StatusAccepted, gin.H{"status": "pending", "message": "Payment is still pending"})
	case errors.Is(err, usecase.ErrPaymentAmountMismatch):
		c.JSON(http.StatusConflict, gin.H{"error": "Paid amount does not match order total"})
	case errors.Is(err, usecase.ErrOrderNotPayable):
		c.JSON(http.StatusConflict, gin.H{"error": "Order is no longer payable"})
	case errors.Is(err, usecase.ErrClaimExpired):
		c.JSON(http.StatusConflict, gin.H{"error": "Order units expired before payment completed; support has been notified"})
	case errors.Is(err, payment.ErrGatewayUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway unavailable"})
	case errors.Is(err, payment.ErrGatewayRejected):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway rejected the verification"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
