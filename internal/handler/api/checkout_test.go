//go:build unit

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"pinmarket/internal/domain/order"
	"pinmarket/internal/domain/unit"
	reqdto "pinmarket/internal/handler/dto/request"
	"pinmarket/internal/handler/middleware"
	"pinmarket/internal/usecase"
	commonhttp "pinmarket/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrderFlow struct {
	gotUserID uuid.UUID
	gotKey    uuid.UUID
	gotReq    reqdto.CheckoutRequest

	checkoutResult *usecase.CheckoutResult
	checkoutErr    error
	getOrder       *order.Order
	getErr         error
	listOrders     []*order.Order
	units          []*unit.Unit
	unitsErr       error
	cancelOrder    *order.Order
	cancelErr      error
}

func (s *stubOrderFlow) Checkout(_ context.Context, req reqdto.CheckoutRequest, userID, key uuid.UUID) (*usecase.CheckoutResult, error) {
	s.gotReq = req
	s.gotUserID = userID
	s.gotKey = key
	return s.checkoutResult, s.checkoutErr
}

func (s *stubOrderFlow) ConfirmPayment(context.Context, string) (*order.Order, error) {
	return nil, nil
}

func (s *stubOrderFlow) Cancel(_ context.Context, _ uuid.UUID, userID uuid.UUID) (*order.Order, error) {
	s.gotUserID = userID
	return s.cancelOrder, s.cancelErr
}

func (s *stubOrderFlow) GetOrder(_ context.Context, _ uuid.UUID, userID uuid.UUID) (*order.Order, error) {
	s.gotUserID = userID
	return s.getOrder, s.getErr
}

func (s *stubOrderFlow) ListOrders(context.Context, uuid.UUID, int32, int32) ([]*order.Order, error) {
	return s.listOrders, nil
}

func (s *stubOrderFlow) GetFulfilledUnits(_ context.Context, _ uuid.UUID, userID uuid.UUID) ([]*unit.Unit, error) {
	s.gotUserID = userID
	return s.units, s.unitsErr
}

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	items := []order.LineItem{{ProductID: uuid.New(), ProductName: "Gift Card", UnitPriceCents: 2500, Quantity: 2, LineTotalCents: 5000}}
	o, err := order.Reconstruct(uuid.New(), "ORD-1724928000123-4F6A2C9B", uuid.New(), items, 5000, order.StatusPending, nil, nil, now, nil, nil)
	require.NoError(t, err)
	return o
}

func newOrderRouter(stub *stubOrderFlow) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	checkout := NewCheckoutHandler(stub)
	orders := NewOrderHandler(stub, stub)

	authed := engine.Group("/api", middleware.RequireUser())
	authed.POST("/checkout", checkout.Checkout)
	authed.GET("/orders/:id", orders.GetOrder)
	authed.GET("/orders/:id/units", orders.GetFulfilledUnits)
	authed.POST("/orders/:id/cancel", orders.CancelOrder)
	return engine
}

func TestCheckoutHandler_Checkout(t *testing.T) {
	userID := uuid.New()
	key := uuid.New()
	body := reqdto.CheckoutRequest{
		Email: "buyer@example.com",
		Items: []reqdto.CheckoutItem{{ProductID: uuid.New(), Quantity: 2}},
	}

	t.Run("successful checkout is created", func(t *testing.T) {
		stub := &stubOrderFlow{checkoutResult: &usecase.CheckoutResult{
			Order:            pendingOrder(t),
			PaymentRef:       "ORD-1724928000123-4F6A2C9B",
			AuthorizationURL: "https://checkout.paystack.com/abc123",
		}}
		router := newOrderRouter(stub)

		w := commonhttp.PerformRequest(t, router, http.MethodPost, "/api/checkout",
			body, commonhttp.CheckoutHeaders(userID, key))

		var resp struct {
			PaymentRef       string `json:"payment_ref"`
			AuthorizationURL string `json:"authorization_url"`
		}
		commonhttp.AssertSuccessResponse(t, w, http.StatusCreated, &resp)
		assert.Equal(t, "ORD-1724928000123-4F6A2C9B", resp.PaymentRef)
		assert.Equal(t, "https://checkout.paystack.com/abc123", resp.AuthorizationURL)
		assert.Equal(t, userID, stub.gotUserID)
		assert.Equal(t, key, stub.gotKey)
		assert.Equal(t, "buyer@example.com", stub.gotReq.Email)
	})

	t.Run("missing identity header is unauthorized", func(t *testing.T) {
		stub := &stubOrderFlow{}
		router := newOrderRouter(stub)

		w := commonhttp.PerformRequest(t, router, http.MethodPost, "/api/checkout", body, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed identity header is unauthorized", func(t *testing.T) {
		stub := &stubOrderFlow{}
		router := newOrderRouter(stub)

		w := commonhttp.PerformRequest(t, router, http.MethodPost, "/api/checkout",
			body, map[string]string{"X-User-ID": "not-a-uuid"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing idempotency key is a bad request", func(t *testing.T) {
		stub := &stubOrderFlow{}
		router := newOrderRouter(stub)

		w := commonhttp.PerformRequest(t, router, http.MethodPost, "/api/checkout",
			body, commonhttp.UserHeaders(userID))
		commonhttp.AssertErrorResponse(t, w, http.StatusBadRequest, "idempotency-key")
	})

	t.Run("invalid body is a bad request", func(t *testing.T) {
		stub := &stubOrderFlow{}
		router := newOrderRouter(stub)

		w := commonhttp.PerformRequest(t, router, http.MethodPost, "/api/checkout",
			json.RawMessage(`{"email":"buyer@example.com","items":[]}`), commonhttp.CheckoutHeaders(userID, key))
		commonhttp.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid request")
	})

	t.Run("insufficient stock maps to conflict with detail", func(t *testing.T) {
		productID := uuid.New()
		stub := &stubOrderFlow{checkoutErr: &usecase.InsufficientStockError{
			ProductID: productID, Requested: 3, Available: 1,
		}}
		router := newOrderRouter(stub)

		w := commonhttp.PerformRequest(t, router, http.MethodPost, "/api/checkout",
			body, commonhttp.CheckoutHeaders(userID, key))

		assert.Equal(t, http.StatusConflict, w.Code)
		var resp struct {
			ProductID uuid.UUID `json:"product_id"`
			Requested int32     `json:"requested"`
			Available int64     `json:"available"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, productID, resp.ProductID)
		assert.Equal(t, int32(3), resp.Requested)
		assert.Equal(t, int64(1), resp.Available)
	})

	t.Run("multi-line shortfall lists every short line", func(t *testing.T) {
		poolID := uuid.New()
		counterID := uuid.New()
		stub := &stubOrderFlow{checkoutErr: &usecase.StockShortfallError{
			Shortfalls: []*usecase.InsufficientStockError{
				{ProductID: poolID, Requested: 2, Available: 1},
				{ProductID: counterID, Requested: 5, Available: 3},
			},
		}}
		router := newOrderRouter(stub)

		w := commonhttp.PerformRequest(t, router, http.MethodPost, "/api/checkout",
			body, commonhttp.CheckoutHeaders(userID, key))

		assert.Equal(t, http.StatusConflict, w.Code)
		var resp struct {
			Shortfalls []struct {
				ProductID uuid.UUID `json:"product_id"`
				Requested int32     `json:"requested"`
				Available int64     `json:"available"`
			} `json:"shortfalls"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Shortfalls, 2)
		assert.Equal(t, poolID, resp.Shortfalls[0].ProductID)
		assert.Equal(t, counterID, resp.Shortfalls[1].ProductID)
		assert.Equal(t, int64(3), resp.Shortfalls[1].Available)
	})

	t.Run("inactive product maps to unprocessable", func(t *testing.T) {
		stub := &stubOrderFlow{checkoutErr: usecase.ErrProductInactive}
		router := newOrderRouter(stub)

		w := commonhttp.PerformRequest(t, router, http.MethodPost, "/api/checkout",
			body, commonhttp.CheckoutHeaders(userID, key))
		commonhttp.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "not available")
	})
}

func TestOrderHandler_GetOrder(t *testing.T) {
	userID := uuid.New()

	t.Run("caller's order is returned", func(t *testing.T) {
		o := pendingOrder(t)
		stub := &stubOrderFlow{getOrder: o}
		router := newOrderRouter(stub)

		w := commonhttp.PerformRequest(t, router, http.MethodGet, "/api/orders/"+o.ID().String(),
			nil, commonhttp.UserHeaders(userID))

		var resp struct {
			Status string `json:"status"`
		}
		commonhttp.AssertSuccessResponse(t, w, http.StatusOK, &resp)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, userID, stub.gotUserID)
	})

	t.Run("unknown order is not found", func(t *testing.T) {
		stub := &stubOrderFlow{getErr: usecase.ErrOrderNotFound}
		router := newOrderRouter(stub)

		w := commonhttp.PerformRequest(t, router, http.MethodGet, "/api/orders/"+uuid.New().String(),
			nil, commonhttp.UserHeaders(userID))
		commonhttp.AssertErrorResponse(t, w, http.StatusNotFound, "not found")
	})

	t.Run("malformed order id is a bad request", func(t *testing.T) {
		stub := &stubOrderFlow{}
		router := newOrderRouter(stub)

		w := commonhttp.PerformRequest(t, router, http.MethodGet, "/api/orders/not-a-uuid",
			nil, commonhttp.UserHeaders(userID))
		commonhttp.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid order ID")
	})
}

func TestOrderHandler_GetFulfilledUnits(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()

	t.Run("delivered secrets are returned for a paid order", func(t *testing.T) {
		now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		u, err := unit.Reconstruct(uuid.New(), uuid.New(), "SN-1", "PIN-1234", unit.StateSold, &orderID, &now, &now, nil, now)
		require.NoError(t, err)

		stub := &stubOrderFlow{units: []*unit.Unit{u}}
		router := newOrderRouter(stub)

		w := commonhttp.PerformRequest(t, router, http.MethodGet, "/api/orders/"+orderID.String()+"/units",
			nil, commonhttp.UserHeaders(userID))

		var resp []struct {
			SerialNumber string `json:"serial_number"`
			Secret       string `json:"secret"`
		}
		commonhttp.AssertSuccessResponse(t, w, http.StatusOK, &resp)
		require.Len(t, resp, 1)
		assert.Equal(t, "SN-1", resp[0].SerialNumber)
		assert.Equal(t, "PIN-1234", resp[0].Secret)
	})

	t.Run("unpaid order conflicts", func(t *testing.T) {
		stub := &stubOrderFlow{unitsErr: usecase.ErrOrderNotPaid}
		router := newOrderRouter(stub)

		w := commonhttp.PerformRequest(t, router, http.MethodGet, "/api/orders/"+orderID.String()+"/units",
			nil, commonhttp.UserHeaders(userID))
		commonhttp.AssertErrorResponse(t, w, http.StatusConflict, "not paid")
	})
}

func TestOrderHandler_CancelOrder(t *testing.T) {
	userID := uuid.New()

	t.Run("pending order is cancelled", func(t *testing.T) {
		now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		ref := "ORD-1724928000123-4F6A2C9B"
		items := []order.LineItem{{ProductID: uuid.New(), ProductName: "Gift Card", UnitPriceCents: 2500, Quantity: 2, LineTotalCents: 5000}}
		cancelled, err := order.Reconstruct(uuid.New(), ref, userID, items, 5000, order.StatusCancelled, nil, nil, now, nil, nil)
		require.NoError(t, err)

		stub := &stubOrderFlow{cancelOrder: cancelled}
		router := newOrderRouter(stub)

		w := commonhttp.PerformRequest(t, router, http.MethodPost, "/api/orders/"+cancelled.ID().String()+"/cancel",
			nil, commonhttp.UserHeaders(userID))

		var resp struct {
			Status string `json:"status"`
		}
		commonhttp.AssertSuccessResponse(t, w, http.StatusOK, &resp)
		assert.Equal(t, "cancelled", resp.Status)
	})

	t.Run("paid order can no longer be cancelled", func(t *testing.T) {
		stub := &stubOrderFlow{cancelErr: usecase.ErrOrderNotCancellable}
		router := newOrderRouter(stub)

		w := commonhttp.PerformRequest(t, router, http.MethodPost, "/api/orders/"+uuid.New().String()+"/cancel",
			nil, commonhttp.UserHeaders(userID))
		commonhttp.AssertErrorResponse(t, w, http.StatusConflict, "cancelled")
	})
}
