package api

import (
	"errors"
	"net/http"

	reqdto "pinmarket/internal/handler/dto/request"
	resdto "pinmarket/internal/handler/dto/response"
	"pinmarket/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	inventoryUseCase usecase.InventoryUseCase
}

func NewAdminHandler(inventoryUseCase usecase.InventoryUseCase) *AdminHandler {
	return &AdminHandler{inventoryUseCase: inventoryUseCase}
}

// @Summary Restock product
// @Description Add a unit batch or counter quantity to a product
// @Tags admin
// @Accept json
// @Produce json
// @Param request body reqdto.RestockRequest true "Restock payload"
// @Success 201 {object} resdto.RestockResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/restock [post]
func (h *AdminHandler) Restock(c *gin.Context) {
	var req reqdto.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	added, err := h.inventoryUseCase.Restock(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, usecase.ErrEmptyRestockBatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Restock batch has no units"})
		case errors.Is(err, usecase.ErrRestockKindMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Restock payload does not match product stock kind"})
		case errors.Is(err, usecase.ErrDuplicateSerialNumber):
			c.JSON(http.StatusConflict, gin.H{"error": "Serial number already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.RestockResponse{ProductID: req.ProductID, Added: added})
}

// @Summary Revoke unit
// @Description Return a sold unit to the available pool
// @Tags admin
// @Produce json
// @Param id path string true "Unit ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/units/{id}/revoke [post]
func (h *AdminHandler) RevokeUnit(c *gin.Context) {
	unitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid unit ID format"})
		return
	}

	if err := h.inventoryUseCase.RevokeUnit(c.Request.Context(), unitID); err != nil {
		switch {
		case errors.Is(err, usecase.ErrUnitNotSold):
			c.JSON(http.StatusConflict, gin.H{"error": "Unit is not in sold state"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Product stock
// @Description Current availability for a product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} resdto.StockResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id}/stock [get]
func (h *AdminHandler) ProductStock(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID format"})
		return
	}

	info, err := h.inventoryUseCase.StockLevel(c.Request.Context(), productID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromStockInfo(info))
}
