package api

import (
	"errors"
	"net/http"
	"strconv"

	resdto "pinmarket/internal/handler/dto/response"
	"pinmarket/internal/handler/middleware"
	"pinmarket/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	checkoutUseCase usecase.CheckoutUseCase
	queryUseCase    usecase.OrderQueryUseCase
}

func NewOrderHandler(checkoutUseCase usecase.CheckoutUseCase, queryUseCase usecase.OrderQueryUseCase) *OrderHandler {
	return &OrderHandler{checkoutUseCase: checkoutUseCase, queryUseCase: queryUseCase}
}

// @Summary Get order
// @Description Get one of the caller's orders by ID
// @Tags orders
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, orderID, ok := h.callerAndOrder(c)
	if !ok {
		return
	}

	o, err := h.queryUseCase.GetOrder(c.Request.Context(), orderID, userID)
	if err != nil {
		h.respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrder(o))
}

// @Summary List orders
// @Description List the caller's orders, newest first
// @Tags orders
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} resdto.OrderResponse
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	limit := queryInt32(c, "limit", 20)
	offset := queryInt32(c, "offset", 0)

	orders, err := h.queryUseCase.ListOrders(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]*resdto.OrderResponse, len(orders))
	for i, o := range orders {
		response[i] = resdto.FromOrder(o)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Get fulfilled units
// @Description Get the serial numbers and secrets delivered by a paid order
// @Tags orders
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param id path string true "Order ID"
// @Success 200 {array} resdto.FulfilledUnitResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/units [get]
func (h *OrderHandler) GetFulfilledUnits(c *gin.Context) {
	userID, orderID, ok := h.callerAndOrder(c)
	if !ok {
		return
	}

	units, err := h.queryUseCase.GetFulfilledUnits(c.Request.Context(), orderID, userID)
	if err != nil {
		h.respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromFulfilledUnits(units))
}

// @Summary Cancel order
// @Description Cancel a not-yet-paid order and return its stock
// @Tags orders
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	userID, orderID, ok := h.callerAndOrder(c)
	if !ok {
		return
	}

	o, err := h.checkoutUseCase.Cancel(c.Request.Context(), orderID, userID)
	if err != nil {
		h.respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrder(o))
}

func (h *OrderHandler) callerAndOrder(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return uuid.Nil, uuid.Nil, false
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return uuid.Nil, uuid.Nil, false
	}
	return userID, orderID, true
}

func (h *OrderHandler) respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, usecase.ErrOrderNotPaid):
		c.JSON(http.StatusConflict, gin.H{"error": "Order is not paid"})
	case errors.Is(err, usecase.ErrOrderNotCancellable):
		c.JSON(http.StatusConflict, gin.H{"error": "Order can no longer be cancelled"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func queryInt32(c *gin.Context, name string, fallback int32) int32 {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return fallback
	}
	return int32(v)
}
