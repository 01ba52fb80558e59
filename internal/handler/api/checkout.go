package api

import (
	"errors"
	"net/http"

	reqdto "pinmarket/internal/handler/dto/request"
	resdto "pinmarket/internal/handler/dto/response"
	"pinmarket/internal/handler/middleware"
	"pinmarket/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CheckoutHandler struct {
	checkoutUseCase usecase.CheckoutUseCase
}

func NewCheckoutHandler(checkoutUseCase usecase.CheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{checkoutUseCase: checkoutUseCase}
}

// @Summary Checkout
// @Description Claim stock for the requested items and initialize payment
// @Tags checkout
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key for duplicate prevention"
// @Param X-User-ID header string true "Caller user ID"
// @Param request body reqdto.CheckoutRequest true "Checkout request"
// @Success 201 {object} resdto.CheckoutResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	idempotencyKey, err := getIdempotencyKey(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req reqdto.CheckoutRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.checkoutUseCase.Checkout(c.Request.Context(), req, userID, idempotencyKey)
	if err != nil {
		h.respondCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCheckoutResult(result))
}

func (h *CheckoutHandler) respondCheckoutError(c *gin.Context, err error) {
	var shortfall *usecase.StockShortfallError
	var insufficient *usecase.InsufficientStockError

	switch {
	case errors.Is(err, usecase.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, usecase.ErrProductInactive):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Product is not available for sale"})
	case errors.Is(err, usecase.ErrEmptyOrder):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order has no items"})
	case errors.As(err, &shortfall):
		details := make([]gin.H, 0, len(shortfall.Shortfalls))
		for _, s := range shortfall.Shortfalls {
			details = append(details, gin.H{
				"product_id": s.ProductID,
				"requested":  s.Requested,
				"available":  s.Available,
			})
		}
		c.JSON(http.StatusConflict, gin.H{"error": "Insufficient stock", "shortfalls": details})
	case errors.As(err, &insufficient):
		c.JSON(http.StatusConflict, gin.H{
			"error":      "Insufficient stock",
			"product_id": insufficient.ProductID,
			"requested":  insufficient.Requested,
			"available":  insufficient.Available,
		})
	case errors.Is(err, usecase.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": "Insufficient stock"})
	case errors.Is(err, usecase.ErrIdempotencyConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Idempotency key reused with a different request"})
	case errors.Is(err, usecase.ErrCheckoutInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": "Checkout request is currently being processed"})
	case errors.Is(err, usecase.ErrPaymentInitFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment initialization failed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func getIdempotencyKey(c *gin.Context) (uuid.UUID, error) {
	keyStr := c.GetHeader("Idempotency-Key")
	if keyStr == "" {
		return uuid.Nil, errors.New("idempotency-key header required")
	}

	key, err := uuid.Parse(keyStr)
	if err != nil {
		return uuid.Nil, errors.New("invalid idempotency key format")
	}
	return key, nil
}
